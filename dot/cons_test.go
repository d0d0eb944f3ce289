package dot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rst "github.com/growler/go-rst2html5"
)

func TestEl(t *testing.T) {
	p := Paragraph(IDs("a"), "some ", Emphasis("text"), rst.Attrs{{Key: "classes", Value: rst.List{"x"}}})
	assert.Equal(t, rst.ParagraphTag, p.Tag)
	assert.Equal(t, []string{"a"}, p.IDs())
	assert.Equal(t, []string{"x"}, p.Classes())
	require.Len(t, p.Children, 2)
	assert.True(t, p.First().IsText())
	assert.Same(t, p, p.Children[1].Parent())
	assert.Equal(t, "some text", p.AsText())

	assert.Panics(t, func() { El(rst.ParagraphTag, 42) })
}

func TestAttr(t *testing.T) {
	assert.Equal(t, rst.KV{Key: "k", Value: rst.String("v")}, Attr("k", "v"))
	assert.Equal(t, rst.KV{Key: "k", Value: rst.List{"a", "b"}}, Attr("k", []string{"a", "b"}))
	assert.Equal(t, rst.KV{Key: "k", Value: rst.Flag(true)}, Attr("k", true))
	assert.Equal(t, rst.KV{Key: "k", Value: rst.String("3")}, Attr("k", 3))
	assert.Panics(t, func() { Attr("k", 1.5) })
}

func TestConstructors(t *testing.T) {
	ol := EnumeratedList("arabic", "", ".", ListItem())
	assert.Equal(t, "arabic", ol.Attrs.Str("enumtype"))
	assert.Equal(t, ".", ol.Attrs.Str("suffix"))
	assert.False(t, ol.Attrs.Has("prefix"))
	assert.Len(t, ol.Children, 1)

	col := Colspec(20, true)
	assert.Equal(t, "20", col.Attrs.Str("colwidth"))
	assert.True(t, col.Attrs.Has("stub"))
	assert.False(t, Colspec(20, false).Attrs.Has("stub"))

	img := Image("a.png", Attr("alt", "A"))
	assert.Equal(t, "a.png", img.Attrs.Str("uri"))
	assert.Equal(t, "A", img.Attrs.Str("alt"))

	arg := OptionArgument("=", "FILE")
	assert.Equal(t, "=FILE", arg.AsText())

	raw := Raw("html", "<br>")
	assert.Equal(t, "html", raw.Attrs.Str("format"))
	assert.Equal(t, "<br>", raw.AsText())
}
