// Package rst2html5 translates [docutils] document trees into HTML5.
//
// A document tree is usually obtained from the docutils XML writer
// (see [LoadFile] and [ReadFrom]) or built in memory with the
// constructors of the dot package. [Convert] turns it into a complete
// HTML5 document.
//
// [docutils]: https://docutils.sourceforge.io/
package rst2html5

import (
	"strings"
	"unicode"
)

// Docutils node kind
type Tag string

func (t Tag) Tag() Tag       { return t }
func (t Tag) String() string { return string(t) }

// Node kinds known to the translator.
const (
	TextTag = Tag("#text")

	AbbreviationTag           = Tag("abbreviation")
	AcronymTag                = Tag("acronym")
	AddressTag                = Tag("address")
	AdmonitionTag             = Tag("admonition")
	AttentionTag              = Tag("attention")
	AttributionTag            = Tag("attribution")
	AuthorTag                 = Tag("author")
	AuthorsTag                = Tag("authors")
	BlockQuoteTag             = Tag("block_quote")
	BulletListTag             = Tag("bullet_list")
	CaptionTag                = Tag("caption")
	CautionTag                = Tag("caution")
	CitationTag               = Tag("citation")
	CitationReferenceTag      = Tag("citation_reference")
	ClassifierTag             = Tag("classifier")
	ColspecTag                = Tag("colspec")
	CommentTag                = Tag("comment")
	CompoundTag               = Tag("compound")
	ContactTag                = Tag("contact")
	ContainerTag              = Tag("container")
	CopyrightTag              = Tag("copyright")
	DangerTag                 = Tag("danger")
	DateTag                   = Tag("date")
	DecorationTag             = Tag("decoration")
	DefinitionTag             = Tag("definition")
	DefinitionListTag         = Tag("definition_list")
	DefinitionListItemTag     = Tag("definition_list_item")
	DescriptionTag            = Tag("description")
	DocinfoTag                = Tag("docinfo")
	DoctestBlockTag           = Tag("doctest_block")
	DocumentTag               = Tag("document")
	EmphasisTag               = Tag("emphasis")
	EntryTag                  = Tag("entry")
	EnumeratedListTag         = Tag("enumerated_list")
	ErrorTag                  = Tag("error")
	FieldTag                  = Tag("field")
	FieldBodyTag              = Tag("field_body")
	FieldListTag              = Tag("field_list")
	FieldNameTag              = Tag("field_name")
	FigureTag                 = Tag("figure")
	FooterTag                 = Tag("footer")
	FootnoteTag               = Tag("footnote")
	FootnoteReferenceTag      = Tag("footnote_reference")
	GeneratedTag              = Tag("generated")
	HeaderTag                 = Tag("header")
	HintTag                   = Tag("hint")
	ImageTag                  = Tag("image")
	ImportantTag              = Tag("important")
	InlineTag                 = Tag("inline")
	LabelTag                  = Tag("label")
	LegendTag                 = Tag("legend")
	LineTag                   = Tag("line")
	LineBlockTag              = Tag("line_block")
	ListItemTag               = Tag("list_item")
	LiteralTag                = Tag("literal")
	LiteralBlockTag           = Tag("literal_block")
	MathTag                   = Tag("math")
	MathBlockTag              = Tag("math_block")
	MetaTag                   = Tag("meta")
	NoteTag                   = Tag("note")
	OptionTag                 = Tag("option")
	OptionArgumentTag         = Tag("option_argument")
	OptionGroupTag            = Tag("option_group")
	OptionListTag             = Tag("option_list")
	OptionListItemTag         = Tag("option_list_item")
	OptionStringTag           = Tag("option_string")
	OrganizationTag           = Tag("organization")
	ParagraphTag              = Tag("paragraph")
	PendingTag                = Tag("pending")
	ProblematicTag            = Tag("problematic")
	RawTag                    = Tag("raw")
	ReferenceTag              = Tag("reference")
	RevisionTag               = Tag("revision")
	RowTag                    = Tag("row")
	RubricTag                 = Tag("rubric")
	SectionTag                = Tag("section")
	SidebarTag                = Tag("sidebar")
	StatusTag                 = Tag("status")
	StrongTag                 = Tag("strong")
	SubscriptTag              = Tag("subscript")
	SubstitutionDefinitionTag = Tag("substitution_definition")
	SubstitutionReferenceTag  = Tag("substitution_reference")
	SubtitleTag               = Tag("subtitle")
	SuperscriptTag            = Tag("superscript")
	SystemMessageTag          = Tag("system_message")
	TableTag                  = Tag("table")
	TargetTag                 = Tag("target")
	TbodyTag                  = Tag("tbody")
	TermTag                   = Tag("term")
	TgroupTag                 = Tag("tgroup")
	TheadTag                  = Tag("thead")
	TipTag                    = Tag("tip")
	TitleTag                  = Tag("title")
	TitleReferenceTag         = Tag("title_reference")
	TopicTag                  = Tag("topic")
	TransitionTag             = Tag("transition")
	VersionTag                = Tag("version")
	WarningTag                = Tag("warning")
)

// Kinds whose children may be text. Whitespace between children of any
// other kind carries no meaning.
var textElements = map[Tag]bool{
	AbbreviationTag: true, AcronymTag: true, AddressTag: true,
	AttributionTag: true, AuthorTag: true, CaptionTag: true,
	CitationReferenceTag: true, ClassifierTag: true, CommentTag: true,
	ContactTag: true, CopyrightTag: true, DateTag: true,
	DoctestBlockTag: true, EmphasisTag: true, FieldNameTag: true,
	FootnoteReferenceTag: true, GeneratedTag: true, InlineTag: true,
	LabelTag: true, LineTag: true, LiteralTag: true, LiteralBlockTag: true,
	MathTag: true, MathBlockTag: true, OptionArgumentTag: true,
	OptionStringTag: true, OrganizationTag: true, ParagraphTag: true,
	ProblematicTag: true, RawTag: true, ReferenceTag: true,
	RevisionTag: true, RubricTag: true, StatusTag: true, StrongTag: true,
	SubscriptTag: true, SubstitutionDefinitionTag: true,
	SubstitutionReferenceTag: true, SubtitleTag: true,
	SuperscriptTag: true, TargetTag: true, TermTag: true, TitleTag: true,
	TitleReferenceTag: true, VersionTag: true,
}

// Kinds that produce no visible output of their own.
var invisible = map[Tag]bool{
	CommentTag:                true,
	SubstitutionDefinitionTag: true,
	TargetTag:                 true,
	PendingTag:                true,
}

// Separators used by AsText between the children of a kind. Text
// elements join with "", everything else with a blank line.
var textSeparators = map[Tag]string{
	OptionTag:      "",
	OptionGroupTag: ", ",
}

// Attributes holding space separated lists in docutils XML.
var listAttributes = map[string]bool{
	"ids":      true,
	"names":    true,
	"dupnames": true,
	"classes":  true,
	"backrefs": true,
}

// Value is a node attribute value: String, List or Flag.
type Value interface {
	value()
	// IsZero reports whether the value renders to nothing.
	IsZero() bool
	String() string
}

// Single string attribute value.
type String string

// Ordered list of strings.
type List []string

// Boolean attribute value.
type Flag bool

func (String) value() {}
func (List) value()   {}
func (Flag) value()   {}

func (s String) IsZero() bool { return s == "" }
func (l List) IsZero() bool   { return len(l) == 0 }
func (f Flag) IsZero() bool   { return !bool(f) }

func (s String) String() string { return string(s) }
func (l List) String() string   { return strings.Join(l, " ") }
func (f Flag) String() string {
	if f {
		return "1"
	}
	return ""
}

// Node attribute
type KV struct {
	Key   string
	Value Value
}

// Ordered node attributes.
type Attrs []KV

// Returns a value of the given key or nil if the key is not present.
func (a Attrs) Get(key string) Value {
	for i := range a {
		if a[i].Key == key {
			return a[i].Value
		}
	}
	return nil
}

// Reports whether key is present with a non-zero value.
func (a Attrs) Has(key string) bool {
	v := a.Get(key)
	return v != nil && !v.IsZero()
}

// Returns a string form of the given key or "" if absent.
func (a Attrs) Str(key string) string {
	if v := a.Get(key); v != nil {
		return v.String()
	}
	return ""
}

// Returns a list value of the given key. A String value is returned as a
// one-element list.
func (a Attrs) List(key string) []string {
	switch v := a.Get(key).(type) {
	case List:
		return v
	case String:
		if v != "" {
			return []string{string(v)}
		}
	}
	return nil
}

// Sets a value for the given key. If the value is nil, the key is removed.
func (a *Attrs) Set(key string, value Value) {
	for i := range *a {
		if (*a)[i].Key == key {
			if value == nil {
				*a = append((*a)[:i], (*a)[i+1:]...)
			} else {
				(*a)[i].Value = value
			}
			return
		}
	}
	if value != nil {
		*a = append(*a, KV{key, value})
	}
}

// Removes the given keys.
func (a *Attrs) Delete(keys ...string) {
	for _, k := range keys {
		a.Set(k, nil)
	}
}

// Returns a copy of the attributes. List values are copied as well, so the
// result can be changed freely.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	c := make(Attrs, len(a))
	for i, kv := range a {
		if l, ok := kv.Value.(List); ok {
			kv.Value = append(List(nil), l...)
		}
		c[i] = kv
	}
	return c
}

// Docutils document tree node. Text nodes carry Text and have no
// attributes or children.
type Node struct {
	Tag      Tag
	Attrs    Attrs
	Children []*Node
	Text     string

	parent *Node
}

// Makes a new element node and adopts the children.
func NewNode(tag Tag, attrs Attrs, children ...*Node) *Node {
	n := &Node{Tag: tag, Attrs: attrs}
	return n.Append(children...)
}

// Makes a new text node.
func NewText(text string) *Node {
	return &Node{Tag: TextTag, Text: text}
}

// Appends children and makes n their parent.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
	}
	n.Children = append(n.Children, children...)
	return n
}

// Returns the parent node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Reports whether the node is of one of the kinds.
func (n *Node) Is(tags ...Tag) bool {
	if n == nil {
		return false
	}
	for _, t := range tags {
		if n.Tag == t {
			return true
		}
	}
	return false
}

func (n *Node) IsText() bool { return n.Tag == TextTag }

// Reports whether the node is an invisible kind (comment, target, ...).
func (n *Node) IsInvisible() bool { return invisible[n.Tag] }

func (n *Node) IDs() []string     { return n.Attrs.List("ids") }
func (n *Node) Classes() []string { return n.Attrs.List("classes") }

// Returns the first child or nil.
func (n *Node) First() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

func (n *Node) index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// Returns the next sibling or nil.
func (n *Node) NextSibling() *Node {
	i := n.index()
	if i < 0 || i+1 >= len(n.parent.Children) {
		return nil
	}
	return n.parent.Children[i+1]
}

// Returns the node following n in document order without descending
// into n: the next sibling, or the next sibling of the nearest ancestor
// that has one.
func (n *Node) Next() *Node {
	for c := n; c != nil; c = c.parent {
		if s := c.NextSibling(); s != nil {
			return s
		}
	}
	return nil
}

// Returns the text content of the node the way docutils does.
func (n *Node) AsText() string {
	if n.IsText() {
		return n.Text
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	if n.IsText() {
		sb.WriteString(n.Text)
		return
	}
	if n.Tag == OptionArgumentTag {
		if d := n.Attrs.Get("delimiter"); d != nil {
			sb.WriteString(d.String())
		} else {
			sb.WriteByte(' ')
		}
	}
	sep, ok := textSeparators[n.Tag]
	if !ok && !textElements[n.Tag] {
		sep = "\n\n"
	}
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteString(sep)
		}
		c.writeText(sb)
	}
}

// Returns a deep copy of the subtree. The copy has no parent.
func (n *Node) DeepCopy() *Node {
	c := &Node{Tag: n.Tag, Attrs: n.Attrs.Clone(), Text: n.Text}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			cc := ch.DeepCopy()
			cc.parent = c
			c.Children[i] = cc
		}
	}
	return c
}

// Collapses every run of whitespace into a single space.
func collapseSpace(s string) string {
	var (
		sb    strings.Builder
		space bool
	)
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				sb.WriteByte(' ')
				space = true
			}
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}
