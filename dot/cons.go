// Package dot provides terse constructors for docutils node trees.
//
// Every constructor accepts a mix of arguments:
//   - *rst2html5.Node: appended as a child;
//   - string: appended as a text child;
//   - rst2html5.KV: set as an attribute;
//   - rst2html5.Attrs: every attribute is set.
//
// Example:
//
//	doc := dot.Document(
//	    dot.Section(dot.IDs("intro"),
//	        dot.Title("Intro"),
//	        dot.Paragraph("Some ", dot.Emphasis("text"), "."),
//	    ),
//	)
package dot

import (
	"fmt"

	rst "github.com/growler/go-rst2html5"
)

// Makes a node of any kind.
func El(tag rst.Tag, args ...any) *rst.Node {
	n := rst.NewNode(tag, nil)
	for _, arg := range args {
		switch a := arg.(type) {
		case *rst.Node:
			n.Append(a)
		case string:
			n.Append(rst.NewText(a))
		case rst.KV:
			n.Attrs.Set(a.Key, a.Value)
		case rst.Attrs:
			for _, kv := range a {
				n.Attrs.Set(kv.Key, kv.Value)
			}
		default:
			panic(fmt.Sprintf("dot: unexpected argument %T", arg))
		}
	}
	return n
}

// Attribute. The value may be a string, a []string or a bool.
func Attr(key string, value any) rst.KV {
	switch v := value.(type) {
	case string:
		return rst.KV{Key: key, Value: rst.String(v)}
	case []string:
		return rst.KV{Key: key, Value: rst.List(v)}
	case bool:
		return rst.KV{Key: key, Value: rst.Flag(v)}
	case int:
		return rst.KV{Key: key, Value: rst.String(fmt.Sprint(v))}
	case rst.Value:
		return rst.KV{Key: key, Value: v}
	}
	panic(fmt.Sprintf("dot: unexpected attribute value %T", value))
}

// Identifiers (list of strings)
func IDs(ids ...string) rst.KV { return rst.KV{Key: "ids", Value: rst.List(ids)} }

// Names (list of strings)
func Names(names ...string) rst.KV { return rst.KV{Key: "names", Value: rst.List(names)} }

// Classes (list of strings)
func Classes(classes ...string) rst.KV { return rst.KV{Key: "classes", Value: rst.List(classes)} }

// Back references (list of strings)
func Backrefs(ids ...string) rst.KV { return rst.KV{Key: "backrefs", Value: rst.List(ids)} }

// Internal reference target (id)
func Refid(id string) rst.KV { return Attr("refid", id) }

// External reference target (URI)
func Refuri(uri string) rst.KV { return Attr("refuri", uri) }

// Text node
func Text(s string) *rst.Node { return rst.NewText(s) }

// Document root
func Document(args ...any) *rst.Node { return El(rst.DocumentTag, args...) }

// Structure

func Section(args ...any) *rst.Node    { return El(rst.SectionTag, args...) }
func Title(args ...any) *rst.Node      { return El(rst.TitleTag, args...) }
func Subtitle(args ...any) *rst.Node   { return El(rst.SubtitleTag, args...) }
func Transition(args ...any) *rst.Node { return El(rst.TransitionTag, args...) }
func Rubric(args ...any) *rst.Node     { return El(rst.RubricTag, args...) }
func Topic(args ...any) *rst.Node      { return El(rst.TopicTag, args...) }
func Sidebar(args ...any) *rst.Node    { return El(rst.SidebarTag, args...) }
func Note(args ...any) *rst.Node       { return El(rst.NoteTag, args...) }
func Warning(args ...any) *rst.Node    { return El(rst.WarningTag, args...) }
func Admonition(args ...any) *rst.Node { return El(rst.AdmonitionTag, args...) }
func Container(args ...any) *rst.Node  { return El(rst.ContainerTag, args...) }
func Compound(args ...any) *rst.Node   { return El(rst.CompoundTag, args...) }
func Decoration(args ...any) *rst.Node { return El(rst.DecorationTag, args...) }
func Header(args ...any) *rst.Node     { return El(rst.HeaderTag, args...) }
func Footer(args ...any) *rst.Node     { return El(rst.FooterTag, args...) }

// Body elements

func Paragraph(args ...any) *rst.Node    { return El(rst.ParagraphTag, args...) }
func BlockQuote(args ...any) *rst.Node   { return El(rst.BlockQuoteTag, args...) }
func Attribution(args ...any) *rst.Node  { return El(rst.AttributionTag, args...) }
func LiteralBlock(args ...any) *rst.Node { return El(rst.LiteralBlockTag, args...) }
func DoctestBlock(args ...any) *rst.Node { return El(rst.DoctestBlockTag, args...) }
func LineBlock(args ...any) *rst.Node    { return El(rst.LineBlockTag, args...) }
func Line(args ...any) *rst.Node         { return El(rst.LineTag, args...) }
func MathBlock(args ...any) *rst.Node    { return El(rst.MathBlockTag, args...) }
func Raw(format, text string) *rst.Node  { return El(rst.RawTag, Attr("format", format), text) }
func Comment(args ...any) *rst.Node      { return El(rst.CommentTag, args...) }

// Lists

func BulletList(args ...any) *rst.Node { return El(rst.BulletListTag, args...) }
func ListItem(args ...any) *rst.Node   { return El(rst.ListItemTag, args...) }

// Enumerated list. enumtype is one of arabic, loweralpha, upperalpha,
// lowerroman and upperroman.
func EnumeratedList(enumtype, prefix, suffix string, args ...any) *rst.Node {
	attrs := rst.Attrs{{Key: "enumtype", Value: rst.String(enumtype)}}
	attrs.Set("prefix", rst.String(prefix))
	attrs.Set("suffix", rst.String(suffix))
	return El(rst.EnumeratedListTag, append([]any{attrs}, args...)...)
}

func DefinitionList(args ...any) *rst.Node     { return El(rst.DefinitionListTag, args...) }
func DefinitionListItem(args ...any) *rst.Node { return El(rst.DefinitionListItemTag, args...) }
func Term(args ...any) *rst.Node               { return El(rst.TermTag, args...) }
func Classifier(args ...any) *rst.Node         { return El(rst.ClassifierTag, args...) }
func Definition(args ...any) *rst.Node         { return El(rst.DefinitionTag, args...) }

func FieldList(args ...any) *rst.Node { return El(rst.FieldListTag, args...) }
func Field(args ...any) *rst.Node     { return El(rst.FieldTag, args...) }
func FieldName(args ...any) *rst.Node { return El(rst.FieldNameTag, args...) }
func FieldBody(args ...any) *rst.Node { return El(rst.FieldBodyTag, args...) }

func OptionList(args ...any) *rst.Node     { return El(rst.OptionListTag, args...) }
func OptionListItem(args ...any) *rst.Node { return El(rst.OptionListItemTag, args...) }
func OptionGroup(args ...any) *rst.Node    { return El(rst.OptionGroupTag, args...) }
func Option(args ...any) *rst.Node         { return El(rst.OptionTag, args...) }
func OptionString(s string) *rst.Node      { return El(rst.OptionStringTag, s) }
func Description(args ...any) *rst.Node    { return El(rst.DescriptionTag, args...) }

// Option argument with its delimiter, e.g. "=" or " ".
func OptionArgument(delimiter, s string) *rst.Node {
	return El(rst.OptionArgumentTag, Attr("delimiter", delimiter), s)
}

// Docinfo

func Docinfo(args ...any) *rst.Node { return El(rst.DocinfoTag, args...) }
func Author(args ...any) *rst.Node  { return El(rst.AuthorTag, args...) }
func Authors(args ...any) *rst.Node { return El(rst.AuthorsTag, args...) }
func Address(args ...any) *rst.Node { return El(rst.AddressTag, args...) }
func Date(args ...any) *rst.Node    { return El(rst.DateTag, args...) }
func Version(args ...any) *rst.Node { return El(rst.VersionTag, args...) }
func Meta(args ...any) *rst.Node    { return El(rst.MetaTag, args...) }

// Tables

func Table(args ...any) *rst.Node  { return El(rst.TableTag, args...) }
func Tgroup(args ...any) *rst.Node { return El(rst.TgroupTag, args...) }
func Thead(args ...any) *rst.Node  { return El(rst.TheadTag, args...) }
func Tbody(args ...any) *rst.Node  { return El(rst.TbodyTag, args...) }
func Row(args ...any) *rst.Node    { return El(rst.RowTag, args...) }
func Entry(args ...any) *rst.Node  { return El(rst.EntryTag, args...) }

// Column specification; a stub column holds header cells.
func Colspec(width int, stub bool) *rst.Node {
	n := El(rst.ColspecTag, Attr("colwidth", width))
	if stub {
		n.Attrs.Set("stub", rst.Flag(true))
	}
	return n
}

// Footnotes and citations

func Footnote(args ...any) *rst.Node          { return El(rst.FootnoteTag, args...) }
func FootnoteReference(args ...any) *rst.Node { return El(rst.FootnoteReferenceTag, args...) }
func Citation(args ...any) *rst.Node          { return El(rst.CitationTag, args...) }
func CitationReference(args ...any) *rst.Node { return El(rst.CitationReferenceTag, args...) }
func Label(args ...any) *rst.Node             { return El(rst.LabelTag, args...) }

// Figures

func Figure(args ...any) *rst.Node  { return El(rst.FigureTag, args...) }
func Caption(args ...any) *rst.Node { return El(rst.CaptionTag, args...) }
func Legend(args ...any) *rst.Node  { return El(rst.LegendTag, args...) }

// Image (uri)
func Image(uri string, args ...any) *rst.Node {
	return El(rst.ImageTag, append([]any{Attr("uri", uri)}, args...)...)
}

// Inlines

func Emphasis(args ...any) *rst.Node       { return El(rst.EmphasisTag, args...) }
func Strong(args ...any) *rst.Node         { return El(rst.StrongTag, args...) }
func Literal(args ...any) *rst.Node        { return El(rst.LiteralTag, args...) }
func Subscript(args ...any) *rst.Node      { return El(rst.SubscriptTag, args...) }
func Superscript(args ...any) *rst.Node    { return El(rst.SuperscriptTag, args...) }
func TitleReference(args ...any) *rst.Node { return El(rst.TitleReferenceTag, args...) }
func Abbreviation(args ...any) *rst.Node   { return El(rst.AbbreviationTag, args...) }
func Inline(args ...any) *rst.Node         { return El(rst.InlineTag, args...) }
func Math(args ...any) *rst.Node           { return El(rst.MathTag, args...) }
func Reference(args ...any) *rst.Node      { return El(rst.ReferenceTag, args...) }
func Target(args ...any) *rst.Node         { return El(rst.TargetTag, args...) }
func Problematic(args ...any) *rst.Node    { return El(rst.ProblematicTag, args...) }

// Diagnostics

func SystemMessage(args ...any) *rst.Node { return El(rst.SystemMessageTag, args...) }
