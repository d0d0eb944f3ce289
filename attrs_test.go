package rst2html5

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/growler/go-rst2html5/markup"
)

func TestMapAttrs(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		in   Attrs
		fold bool
		out  markup.Attrs
	}{
		{
			name: "renames",
			tag:  ReferenceTag,
			in:   Attrs{{"refuri", String("http://x")}, {"names", List{"x"}}},
			out:  markup.Attrs{{Key: "href", Value: "http://x"}},
		},
		{
			name: "refid",
			tag:  ReferenceTag,
			in:   Attrs{{"refid", String("sec")}},
			out:  markup.Attrs{{Key: "href", Value: "#sec"}},
		},
		{
			name: "first id only",
			tag:  ParagraphTag,
			in:   Attrs{{"ids", List{"a", "b"}}, {"classes", List{"x", "y"}}},
			out:  markup.Attrs{{Key: "id", Value: "a"}, {Key: "class", Value: "x y"}},
		},
		{
			name: "spans",
			tag:  EntryTag,
			in:   Attrs{{"morerows", String("1")}, {"morecols", String("2")}},
			out:  markup.Attrs{{Key: "rowspan", Value: "2"}, {Key: "colspan", Value: "3"}},
		},
		{
			name: "zero values and bookkeeping",
			tag:  BulletListTag,
			in:   Attrs{{"bullet", String("-")}, {"classes", List{}}, {"ids", List(nil)}},
			out:  markup.Attrs{},
		},
		{
			name: "flag",
			tag:  RawTag,
			in:   Attrs{{"defer", Flag(true)}, {"async", Flag(false)}},
			out:  markup.Attrs{{Key: "defer", Value: "defer"}},
		},
		{
			name: "fold without classes",
			tag:  FootnoteReferenceTag,
			in:   Attrs{{"ids", List{"r1"}}, {"refid", String("f1")}},
			fold: true,
			out: markup.Attrs{
				{Key: "class", Value: "footnote_reference"},
				{Key: "id", Value: "r1"},
				{Key: "href", Value: "#f1"},
			},
		},
		{
			name: "fold into classes",
			tag:  AdmonitionTag,
			in:   Attrs{{"ids", List{"a"}}, {"classes", List{"tip"}}},
			fold: true,
			out:  markup.Attrs{{Key: "id", Value: "a"}, {Key: "class", Value: "admonition tip"}},
		},
		{
			name: "fold into empty classes",
			tag:  AdmonitionTag,
			in:   Attrs{{"classes", List{}}},
			fold: true,
			out:  markup.Attrs{{Key: "class", Value: "admonition"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, mapAttrs(tt.tag, tt.in, tt.fold))
		})
	}
}
