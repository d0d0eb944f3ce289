package rst2html5_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rst "github.com/growler/go-rst2html5"
	. "github.com/growler/go-rst2html5/dot"
)

var flat = rst.DefaultSettings().WithIndent(false)

func translate(t *testing.T, doc *rst.Node, s rst.Settings, opts ...rst.Option) (*rst.Document, *rst.Translator) {
	t.Helper()
	tr := rst.NewTranslator(s, opts...)
	d, err := tr.Translate(doc)
	require.NoError(t, err)
	return d, tr
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		doc      *rst.Node
		settings *rst.Settings
		want     string
	}{
		{
			name: "document title",
			doc:  Document(Attr("title", "Title"), IDs("title"), Names("title"), Title("Title")),
			want: `<h1>Title</h1>`,
		},
		{
			name: "paragraph whitespace",
			doc:  Document(Paragraph("Lorem    ipsum\nVestibulum")),
			want: `<p>Lorem ipsum Vestibulum</p>`,
		},
		{
			name: "inline markup",
			doc: Document(Paragraph("a ", Emphasis("b"), " ", Strong("c"), " ",
				Subscript("d"), Superscript("e"), " ", TitleReference("f"), " ", Abbreviation("g"))),
			want: `<p>a <em>b</em> <strong>c</strong> <sub>d</sub><sup>e</sup> <cite>f</cite> <abbr>g</abbr></p>`,
		},
		{
			name: "escaping",
			doc:  Document(Paragraph("a < b & c")),
			want: `<p>a &lt; b &amp; c</p>`,
		},
		{
			name: "sections",
			doc: Document(Section(IDs("a"), Names("a"), Title("A"), Paragraph("x"),
				Section(IDs("b"), Names("b"), Title("B"), Paragraph("y")))),
			want: `<section id="a"><h1>A</h1><p>x</p><section id="b"><h2>B</h2><p>y</p></section></section>`,
		},
		{
			name:     "initial header level",
			doc:      Document(Section(Title("A"), Section(Title("B")))),
			settings: ptr(flat.WithInitialHeaderLevel(3)),
			want:     `<section><h3>A</h3><section><h4>B</h4></section></section>`,
		},
		{
			name: "headings stop at h6",
			doc: Document(Section(Title("1"), Section(Title("2"), Section(Title("3"),
				Section(Title("4"), Section(Title("5"), Section(Title("6"), Section(Title("7"))))))))),
			want: `<section><h1>1</h1><section><h2>2</h2><section><h3>3</h3><section><h4>4</h4>` +
				`<section><h5>5</h5><section><h6>6</h6><section><h6>7</h6>` +
				`</section></section></section></section></section></section></section>`,
		},
		{
			name: "title backref",
			doc:  Document(Section(IDs("s"), Title(Refid("toc-s"), "S"))),
			want: `<section id="s"><h1><a class="toc-backref" href="#toc-s">S</a></h1></section>`,
		},
		{
			name: "title referring to its section",
			doc:  Document(Section(IDs("s"), Title(Refid("s"), "S"))),
			want: `<section id="s"><h1>S</h1></section>`,
		},
		{
			name: "subtitle",
			doc:  Document(Attr("title", "T"), Title("T"), Subtitle("Sub"), Paragraph("p")),
			want: `<hgroup><h1>T</h1><h2>Sub</h2></hgroup><p>p</p>`,
		},
		{
			name: "subtitle with ids",
			doc:  Document(Attr("title", "T"), Title("T"), Subtitle(IDs("sub"), "Sub")),
			want: `<hgroup><h1>T</h1><h2 id="sub">Sub</h2></hgroup>`,
		},
		{
			name:     "subtitle with ids hidden",
			doc:      Document(Attr("title", "T"), Title("T"), Subtitle(IDs("sub"), "Sub")),
			settings: ptr(flat.WithShowIDs(false)),
			want:     `<hgroup><h1>T</h1><h2>Sub</h2></hgroup>`,
		},
		{
			name: "transition",
			doc:  Document(Paragraph("a"), Transition(), Paragraph("b")),
			want: `<p>a</p><hr /><p>b</p>`,
		},
		{
			name: "rubric",
			doc:  Document(Rubric(Classes("x"), "R")),
			want: `<p class="rubric">R</p>`,
		},
		{
			name: "block quote",
			doc:  Document(BlockQuote(Paragraph("q"), Attribution("me"))),
			want: `<blockquote><p>q</p><p class="attribution">me</p></blockquote>`,
		},
		{
			name: "bullet list",
			doc: Document(BulletList(Attr("bullet", "-"),
				ListItem(Paragraph("one")),
				ListItem(Paragraph("two"), Paragraph("more")),
				ListItem(Paragraph(Classes("x"), "three")))),
			want: `<ul><li>one</li><li>two<p>more</p></li><li><p class="x">three</p></li></ul>`,
		},
		{
			name: "enumerated list",
			doc: Document(EnumeratedList("loweralpha", "(", ")",
				ListItem(Paragraph("item 1")), ListItem(Paragraph("item 2")), ListItem(Paragraph("item 3")))),
			want: `<ol prefix="(" suffix=")" type="a"><li>item 1</li><li>item 2</li><li>item 3</li></ol>`,
		},
		{
			name: "enumerated list with a plain suffix",
			doc:  Document(EnumeratedList("upperroman", "", ".", ListItem(Paragraph("x")))),
			want: `<ol type="I"><li>x</li></ol>`,
		},
		{
			name: "definition list with classifier",
			doc: Document(DefinitionList(DefinitionListItem(
				Term("term"), Classifier("cls"), Definition(Paragraph("def"))))),
			want: `<dl><dt>term <span class="classifier-delimiter">:</span> <span class="classifier">cls</span></dt><dd>def</dd></dl>`,
		},
		{
			name: "table",
			doc: Document(Table(Tgroup(Attr("cols", "2"),
				Colspec(1, true), Colspec(1, false),
				Thead(Row(Entry(Paragraph("h1")), Entry(Paragraph("h2")))),
				Tbody(Row(Entry(Paragraph("a")), Entry(Paragraph("b"))))))),
			want: `<table><thead><tr><th>h1</th><th>h2</th></tr></thead>` +
				`<tbody><tr><th>a</th><td>b</td></tr></tbody></table>`,
		},
		{
			name: "table caption and spans",
			doc: Document(Table(Title("Cap"), Tgroup(Colspec(10, false), Colspec(10, false),
				Tbody(
					Row(Entry(Attr("morerows", 1), Paragraph("a")), Entry(Paragraph("b"))),
					Row(Entry(Paragraph("c"))),
					Row(Entry(Attr("morecols", 1), Paragraph("d"))))))),
			want: `<table><caption>Cap</caption><tbody>` +
				`<tr><td rowspan="2">a</td><td>b</td></tr><tr><td>c</td></tr><tr><td colspan="2">d</td></tr>` +
				`</tbody></table>`,
		},
		{
			name: "chained identifiers",
			doc:  Document(Paragraph(IDs("a", "b"), "text")),
			want: `<a id="b"></a><p id="a">text</p>`,
		},
		{
			name:     "identifiers hidden",
			doc:      Document(Paragraph(IDs("a", "b"), "text")),
			settings: ptr(flat.WithShowIDs(false)),
			want:     `<p>text</p>`,
		},
		{
			name: "standalone target",
			doc:  Document(Target(IDs("t"), Names("t")), Paragraph(IDs("p"), "x")),
			want: `<a id="t"></a><p id="p">x</p>`,
		},
		{
			name: "target sharing an id with the next node",
			doc:  Document(Target(IDs("t1", "t2")), Paragraph(IDs("t1"), "x")),
			want: `<a id="t2"></a><p id="t1">x</p>`,
		},
		{
			name: "external target",
			doc:  Document(Target(Names("go"), Refuri("https://go.dev")), Paragraph("x")),
			want: `<p>x</p>`,
		},
		{
			name: "target without ids",
			doc:  Document(Target(Refid("sec")), Paragraph("x")),
			want: `<p>x</p>`,
		},
		{
			name: "indirect targets",
			doc: Document(
				Paragraph("Link to ", Reference(Names("one"), Refid("three"), "one"), "."),
				Target(IDs("one"), Names("one"), Refid("three")),
				Target(IDs("two"), Names("two"), Refid("three")),
				Target(Refid("three")),
				Paragraph(IDs("three"), Names("three"), "Target paragraph.")),
			want: `<p>Link to <a href="#three">one</a>.</p><p id="three">Target paragraph.</p>`,
		},
		{
			name: "inline target",
			doc:  Document(Paragraph("see ", Target(IDs("here"), Names("here"), "here"), ".")),
			want: `<p>see <a id="here">here</a>.</p>`,
		},
		{
			name: "references",
			doc: Document(Paragraph(
				Reference(Names("go"), Refuri("https://go.dev"), "Go"), " ",
				Reference(IDs("r1"), Refid("sec"), "sec"))),
			want: `<p><a href="https://go.dev">Go</a> <a href="#sec">sec</a></p>`,
		},
		{
			name: "footnote",
			doc: Document(
				Paragraph(FootnoteReference(IDs("r1"), Refid("f1"), "1")),
				Footnote(IDs("f1"), Names("1"), Backrefs("r1"), Label("1"), Paragraph("Note."))),
			want: `<p><a class="footnote_reference" id="r1" href="#f1">[1]</a></p>` +
				`<table class="footnote" id="f1"><tbody><tr><th>[1]</th><td>Note.</td></tr></tbody></table>`,
		},
		{
			name: "citation",
			doc: Document(
				Paragraph(CitationReference(IDs("c1"), Refid("cit"), "CIT")),
				Citation(IDs("cit"), Backrefs("c1"), Label("CIT"), Paragraph("Book."), Paragraph("More."))),
			want: `<p><a class="citation_reference" id="c1" href="#cit">[CIT]</a></p>` +
				`<table class="citation" id="cit"><tbody><tr><th>[CIT]</th><td><p>Book.</p><p>More.</p></td></tr></tbody></table>`,
		},
		{
			name: "option list",
			doc: Document(OptionList(
				OptionListItem(OptionGroup(Option(OptionString("-a"))), Description(Paragraph("all"))),
				OptionListItem(
					OptionGroup(
						Option(OptionString("-f"), OptionArgument(" ", "FILE")),
						Option(OptionString("--file"), OptionArgument("=", "FILE"))),
					Description(Paragraph("file"))))),
			want: `<table class="option_list"><tbody>` +
				`<tr><td><kbd>-a</kbd></td><td>all</td></tr>` +
				`<tr><td><kbd>-f <var>FILE</var></kbd>, <kbd>--file=<var>FILE</var></kbd></td><td>file</td></tr>` +
				`</tbody></table>`,
		},
		{
			name: "option limit",
			doc: Document(OptionList(
				OptionListItem(OptionGroup(Option(OptionString("-a"))), Description(Paragraph("all"))),
				OptionListItem(OptionGroup(Option(OptionString("--very-long-option"))), Description(Paragraph("long"))))),
			settings: ptr(flat.WithOptionLimit(10)),
			want: `<table class="option_list"><tbody>` +
				`<tr><td><kbd>-a</kbd></td><td>all</td></tr>` +
				`<tr><td colspan="2"><kbd>--very-long-option</kbd></td></tr><tr><td></td><td>long</td></tr>` +
				`</tbody></table>`,
		},
		{
			name: "literal",
			doc:  Document(Paragraph("use ", Literal(Classes("code", "go"), "x  :=  1"))),
			want: `<p>use <code class="go">x  :=  1</code></p>`,
		},
		{
			name: "literal block",
			doc:  Document(LiteralBlock(Classes("code", "language-go"), Attr("xml:space", "preserve"), "a\n  b")),
			want: "<pre data-language=\"go\">a\n  b</pre>",
		},
		{
			name: "doctest block",
			doc:  Document(DoctestBlock(">>> 1 + 1\n2")),
			want: "<pre class=\"doctest_block\">&gt;&gt;&gt; 1 + 1\n2</pre>",
		},
		{
			name: "line block",
			doc:  Document(LineBlock(Line("a"), Line("b"), LineBlock(Line("c")))),
			want: "<pre class=\"line_block\">a\nb\n    c</pre>",
		},
		{
			name: "math",
			doc:  Document(Paragraph("a ", Math("x^2"), " b"), MathBlock(`a \\ b`), MathBlock("c")),
			want: `<p>a <span class="math">\(x^2\)</span> b</p>` +
				"<div class=\"math\">\\begin{align*}\na \\\\ b\n\\end{align*}</div>" +
				`<div class="math">\(c\)</div>`,
		},
		{
			name: "raw",
			doc:  Document(Raw("html", `<hr class="x">`), Raw("latex", `\newpage`)),
			want: `<hr class="x">`,
		},
		{
			name: "comment",
			doc:  Document(Comment("note & x"), Paragraph("p")),
			want: `<!-- note &amp; x --><p>p</p>`,
		},
		{
			name: "substitution definition",
			doc:  Document(El(rst.SubstitutionDefinitionTag, Names("s"), "x"), Paragraph("p")),
			want: `<p>p</p>`,
		},
		{
			name: "system message",
			doc: Document(
				Paragraph(Problematic(IDs("p1"), Refid("m1"), "`x")),
				SystemMessage(IDs("m1"), Backrefs("p1"), Attr("level", "2"), Attr("line", "3"),
					Attr("source", "t.rst"), Attr("type", "WARNING"), Paragraph("Unknown target."))),
			want: `<p><a class="problematic" id="p1" href="#m1">` + "`x</a></p>" +
				`<div id="m1"><h1>System Message: WARNING/2 (t.rst line 3) <a href="#p1">p1</a></h1>` +
				`<p>Unknown target.</p></div>`,
		},
		{
			name: "note",
			doc:  Document(Section(Title("S"), Note(Paragraph("n")))),
			want: `<section><h1>S</h1><aside class="note">n</aside></section>`,
		},
		{
			name: "admonition",
			doc: Document(Section(Title("S"), Section(Title("T"),
				Admonition(Classes("admonition-foo"), Title("Foo"), Paragraph("x")), Section(Title("U"))))),
			want: `<section><h1>S</h1><section><h2>T</h2>` +
				`<aside class="admonition"><h1>Foo</h1><p>x</p></aside>` +
				`<section><h3>U</h3></section></section></section>`,
		},
		{
			name: "container and compound",
			doc:  Document(Container(Classes("box"), Paragraph("a")), Compound(Paragraph("b"))),
			want: `<div class="box">a</div><div><p>b</p></div>`,
		},
		{
			name: "figure",
			doc:  Document(Figure(Image("a.png"), Caption("Cap"))),
			want: `<figure><img src="a.png" alt="" /><figcaption>Cap</figcaption></figure>`,
		},
		{
			name: "figure with legend and image ids",
			doc:  Document(Figure(Image("a.png", IDs("img")), Caption("Cap"), Legend(Paragraph("Leg")))),
			want: `<figure id="img"><img src="a.png" alt="" /><figcaption><p>Cap</p><p>Leg</p></figcaption></figure>`,
		},
		{
			name: "target at the end of a rearranged figure",
			doc: Document(
				Figure(Image("a.png", IDs("img")), Caption("C"), Target(IDs("t1", "t2"))),
				Paragraph(IDs("t1"), "x")),
			want: `<figure id="img"><img src="a.png" alt="" /><figcaption>C</figcaption></figure>` +
				`<a id="t2"></a><p id="t1">x</p>`,
		},
		{
			name: "image dimensions",
			doc:  Document(Image("a.png", Attr("alt", "A"), Attr("width", "200px"), Attr("height", "50"))),
			want: `<img src="a.png" alt="A" width="200" height="50" />`,
		},
		{
			name: "docinfo is not rendered",
			doc: Document(Docinfo(Author("Jane"), Field(FieldName("tags"), FieldBody(Paragraph("a"))))),
			want: ``,
		},
		{
			name: "footer is moved to the bottom",
			doc:  Document(Decoration(Header(Paragraph("h")), Footer(Paragraph("f"))), Paragraph("x")),
			want: `<header>h</header><p>x</p><footer>f</footer>`,
		},
		{
			name:     "top title wrapped in a section",
			doc:      Document(Attr("title", "T"), IDs("t"), Names("t"), Title("T"), Paragraph("x")),
			settings: ptr(flat.WithWrapTopTitle(true)),
			want:     `<section id="t"><h1>T</h1><p>x</p></section>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := flat
			if tt.settings != nil {
				s = *tt.settings
			}
			d, _ := translate(t, tt.doc, s)
			assert.Equal(t, tt.want, d.Body)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestTranslateIndented(t *testing.T) {
	doc := Document(Attr("title", "Title"), IDs("title"), Names("title"),
		Title("Title"),
		Subtitle("Sub"),
		Section(IDs("a"), Title("A"), Paragraph("a ", Emphasis("b"))),
	)
	d, _ := translate(t, doc, rst.DefaultSettings())
	const body = "\n" +
		"    <hgroup>\n" +
		"        <h1>Title</h1>\n" +
		"        <h2>Sub</h2>\n" +
		"    </hgroup>\n" +
		"    <section id=\"a\">\n" +
		"        <h1>A</h1>\n" +
		"        <p>a <em>b</em></p>\n" +
		"    </section>\n"
	assert.Equal(t, body, d.Body)
	assert.Equal(t, "\n    <meta charset=\"utf-8\" />\n    <title>Title</title>\n", d.Head)
}

func TestTranslateFootnoteIndented(t *testing.T) {
	doc := Document(Footnote(IDs("f1"), Label("1"), Paragraph("Note.")))
	d, _ := translate(t, doc, rst.DefaultSettings())
	const body = "\n" +
		"    <table class=\"footnote\" id=\"f1\">\n" +
		"        <tbody>\n" +
		"            <tr>\n" +
		"                <th>[1]</th>\n" +
		"                <td>Note.</td>\n" +
		"            </tr>\n" +
		"        </tbody>\n" +
		"    </table>\n"
	assert.Equal(t, body, d.Body)
}

func TestTranslateWarnings(t *testing.T) {
	doc := Document(
		EnumeratedList("greek", "", ".", ListItem(Paragraph("x"))),
		Image("a.png", Attr("align", "left"), Attr("width", "5em")),
	)
	d, tr := translate(t, doc, flat)
	assert.Equal(t, 3, tr.Warnings())
	assert.Equal(t, `<ol type="1"><li>x</li></ol><img src="a.png" width="5em" alt="" />`, d.Body)
}

func TestMathScript(t *testing.T) {
	doc := Document(Paragraph(Math("a")), MathBlock("b"))
	d, _ := translate(t, doc, flat)
	assert.Equal(t, 1, strings.Count(d.Head, "<script"))
	assert.Contains(t, d.Head, `<script src="`+rst.DefaultMathScript+`"></script>`)

	d, _ = translate(t, doc, flat.WithMathScript(""))
	assert.NotContains(t, d.Head, "<script")

	d, _ = translate(t, Document(Paragraph("no math")), flat)
	assert.NotContains(t, d.Head, "<script")
}

type fakeHighlighter struct {
	err error
}

func (f fakeHighlighter) Highlight(code, language string, linenos bool) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return `<span class="` + language + `">` + code + `</span>`, nil
}

func TestHighlighter(t *testing.T) {
	doc := Document(LiteralBlock(Attr("language", "go"), "x < y"))

	d, tr := translate(t, doc, flat, rst.WithHighlighter(fakeHighlighter{}))
	assert.Equal(t, `<pre data-language="go"><span class="go">x < y</span></pre>`, d.Body)
	assert.Zero(t, tr.Warnings())

	d, tr = translate(t, doc, flat, rst.WithHighlighter(fakeHighlighter{err: errors.New("boom")}))
	assert.Equal(t, `<pre data-language="go">x &lt; y</pre>`, d.Body)
	assert.Equal(t, 1, tr.Warnings())
}

func TestDocinfo(t *testing.T) {
	doc := Document(Docinfo(
		Author("Jane\n  Doe"),
		Authors(Author("A B"), Author("C")),
		Address("1 Main\nTown"),
		Field(FieldName("tags"), FieldBody(Paragraph("a,\n b"))),
	), Meta(Attr("content", "kw"), Attr("name", "keywords")))
	d, _ := translate(t, doc, flat)
	assert.Equal(t, map[string]string{
		"author":  "Jane Doe",
		"authors": "A B; C",
		"address": "1 Main, Town",
		"tags":    "a, b",
	}, d.Docinfo)
	assert.Equal(t, `<meta charset="utf-8" />`+
		`<meta content="kw" name="keywords" />`+
		`<meta content="Jane Doe" name="author" />`+
		`<meta content="A B; C" name="authors" />`+
		`<meta content="1 Main, Town" name="address" />`+
		`<meta content="a, b" name="tags" />`, d.Head)
}

func TestExtensions(t *testing.T) {
	doc := Document(Paragraph(El("kbd", "Ctrl")))

	_, err := rst.Convert(doc, flat)
	assert.True(t, errors.Is(err, rst.ErrUnknownNode), "got %v", err)

	d, err := rst.Convert(doc, flat, rst.WithExtensions(rst.Extensions{
		"kbd": {NoIndent: true},
	}))
	require.NoError(t, err)
	assert.Equal(t, `<p><kbd>Ctrl</kbd></p>`, d.Body)
}

func TestTranslatorErrors(t *testing.T) {
	tr := rst.NewTranslator(flat)
	_, err := tr.Translate(Document(Paragraph("x")))
	require.NoError(t, err)
	_, err = tr.Translate(Document(Paragraph("x")))
	assert.True(t, errors.Is(err, rst.ErrTranslatorReused), "got %v", err)

	_, err = rst.Convert(Paragraph("x"), flat)
	assert.True(t, errors.Is(err, rst.ErrBadDocument), "got %v", err)

	_, err = rst.NewTranslator(flat.WithTabWidth(-1)).Translate(Document(Paragraph("x")))
	assert.ErrorContains(t, err, "TabWidth")
}

func TestTranslateKeepsInput(t *testing.T) {
	doc := Document(Attr("title", "T"), IDs("t"), Title("T"),
		Decoration(Footer(Paragraph("f"))), Paragraph("x"))
	_, _ = translate(t, doc, flat.WithWrapTopTitle(true))
	require.Len(t, doc.Children, 3)
	assert.Equal(t, rst.DecorationTag, doc.Children[1].Tag)
	assert.Len(t, doc.Children[1].Children, 1)
	assert.Equal(t, []string{"t"}, doc.IDs())
}
