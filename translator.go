package rst2html5

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/growler/go-rst2html5/markup"
)

// Highlighter turns source code into HTML markup to be placed inside a
// pre element.
type Highlighter interface {
	Highlight(code, language string, linenos bool) (string, error)
}

// Translator option
type Option func(*Translator)

// Sets the logger receiving translation warnings.
func WithLogger(log *zap.Logger) Option {
	return func(t *Translator) {
		if log != nil {
			t.log = log
		}
	}
}

// Sets the highlighter for literal blocks carrying a language attribute.
func WithHighlighter(h Highlighter) Option {
	return func(t *Translator) { t.highlighter = h }
}

// Adds dispatch entries for extension node kinds.
func WithExtensions(ext Extensions) Option {
	return func(t *Translator) { t.ext = ext }
}

// per table header bookkeeping
type tableState struct {
	thRequired  int
	thAvailable int
	inThead     bool
}

// Translator turns one document tree into HTML5. A Translator holds the
// state of a single translation and must not be reused.
type Translator struct {
	settings    Settings
	table       map[Tag]DispatchEntry
	ext         Extensions
	log         *zap.Logger
	highlighter Highlighter

	stack *markup.ElemStack
	head  head
	used  bool
	err   error

	heading        int
	savedHeadings  []int
	preserve       int
	tables         []tableState
	optionLevel    int
	lineBlockLevel int
	lineLevel      int
	mathScript     bool
	warnings       int

	// output ids decided on enter; absent means the node's own ids
	ids map[*Node][]string
	// ids folded onto a node by a preceding target
	extraIDs map[*Node][]string
}

// Makes a Translator for one document.
func NewTranslator(settings Settings, opts ...Option) *Translator {
	t := &Translator{
		settings: settings,
		log:      zap.NewNop(),
		ids:      make(map[*Node][]string),
		extraIDs: make(map[*Node][]string),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.table = mergeDispatch(t.ext)
	t.stack = markup.NewElemStack(settings.IndentOutput, settings.TabWidth)
	t.heading = settings.InitialHeaderLevel
	if t.heading > 0 {
		t.heading--
	}
	t.head.init(settings)
	return t
}

// Number of warnings logged so far.
func (t *Translator) Warnings() int { return t.warnings }

// Translate walks the document and assembles the HTML5 output.
func (t *Translator) Translate(doc *Node) (d *Document, err error) {
	if t.used {
		return nil, ErrTranslatorReused
	}
	t.used = true
	if err := t.settings.Validate(); err != nil {
		return nil, err
	}
	if !doc.Is(DocumentTag) {
		return nil, fmt.Errorf("%w: root node is %q", ErrBadDocument, doc.Tag)
	}
	doc, err = Apply(doc, t.transforms()...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			var se *markup.StackError
			if e, ok := r.(error); ok && errors.As(e, &se) {
				d, err = nil, fmt.Errorf("translating %s: %w", doc.Attrs.Str("source"), se)
				return
			}
			panic(r)
		}
	}()
	if err = Walk(doc, t); err != nil {
		return nil, err
	}
	return t.assemble(doc)
}

func (t *Translator) transforms() []Transform {
	tr := []Transform{FooterToBottom}
	if t.settings.WrapTopTitle {
		tr = append(tr, WrapTopTitle)
	}
	return tr
}

// Enter implements Visitor.
func (t *Translator) Enter(n *Node) (WalkResult, error) {
	e, ok := t.table[n.Tag]
	if !ok {
		return WalkStop, fmt.Errorf("%w: %q", ErrUnknownNode, n.Tag)
	}
	var res WalkResult
	if e.Enter == nil {
		res = t.enterDefault(n)
	} else {
		res = e.Enter(t, n)
	}
	if t.err != nil {
		return WalkStop, t.err
	}
	return res, nil
}

// Exit implements Visitor.
func (t *Translator) Exit(n *Node) error {
	if e := t.table[n.Tag]; e.Exit != nil {
		e.Exit(t, n)
	} else {
		t.exitDefault(n)
	}
	return t.err
}

func (t *Translator) warn(n *Node, msg string, fields ...zap.Field) {
	t.warnings++
	t.log.Warn(msg, append([]zap.Field{
		zap.String("node", n.Tag.String()),
		zap.String("source", t.source(n)),
	}, fields...)...)
}

func (t *Translator) source(n *Node) string {
	for c := n; c != nil; c = c.parent {
		if s := c.Attrs.Str("source"); s != "" {
			return s
		}
	}
	return ""
}

// Returns the identifiers of n: its own plus those folded onto it.
func (t *Translator) nodeIDs(n *Node) []string {
	ids := n.IDs()
	extra := t.extraIDs[n]
	if len(extra) == 0 {
		return ids
	}
	out := append([]string(nil), ids...)
	for _, id := range extra {
		if !contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// Returns a copy of the node attributes with the output ids in place.
func (t *Translator) attrsOf(n *Node) Attrs {
	a := n.Attrs.Clone()
	if ids, ok := t.ids[n]; ok {
		a.Set("ids", List(ids))
	} else if len(t.extraIDs[n]) > 0 {
		a.Set("ids", List(t.nodeIDs(n)))
	}
	return a
}

// Maps the node to its output tag, indentation and attributes.
func (t *Translator) parse(n *Node, a Attrs) (string, bool, markup.Attrs) {
	e := t.table[n.Tag]
	name := e.Tag
	if name == "" {
		name = string(n.Tag)
	}
	return name, !e.NoIndent, mapAttrs(n.Tag, a, e.FoldTypeIntoClass)
}

// Commits the top frame as the node's element.
func (t *Translator) commit(n *Node, a Attrs) *markup.Element {
	name, indent, attrs := t.parse(n, a)
	return t.stack.Commit(name, attrs, indent)
}

// Opens the node's frame. When anchors is set, every identifier beyond the
// first becomes a standalone anchor in front of the node and only the
// first one is kept for the node itself.
func (t *Translator) begin(n *Node, anchors bool) {
	if ids := t.nodeIDs(n); len(ids) > 0 && anchors {
		if t.settings.ShowIDs {
			for _, id := range ids[1:] {
				t.stack.Begin()
				t.stack.Commit("a", markup.Attrs{{Key: "id", Value: id}}, true)
			}
			t.ids[n] = ids[:1]
		} else {
			t.ids[n] = nil
		}
	}
	t.stack.Begin()
}

func (t *Translator) enterDefault(n *Node) WalkResult {
	t.begin(n, true)
	return WalkContinue
}

func (t *Translator) exitDefault(n *Node) {
	t.commit(n, t.attrsOf(n))
}

func (t *Translator) skipNode(*Node) WalkResult    { return WalkSkip }
func (t *Translator) transparent(*Node) WalkResult { return WalkSkipExit }
func (t *Translator) enterNothing(*Node) WalkResult { return WalkContinue }
func (t *Translator) exitNothing(*Node)            {}

func (t *Translator) enterText(n *Node) WalkResult {
	text := n.Text
	if t.preserve == 0 {
		text = collapseSpace(text)
	}
	t.stack.Append(markup.Text(text), false)
	return WalkSkipExit
}

func (t *Translator) enterDocument(n *Node) WalkResult {
	if title := n.Attrs.Str("title"); title != "" {
		t.head.setTitle(title)
	}
	return WalkContinue
}

// Reports whether the paragraph is rendered without its p element.
func (t *Translator) compactParagraph(n *Node) bool {
	parent := n.Parent()
	if parent == nil || parent.Is(DocumentTag, CompoundTag, BlockQuoteTag, SystemMessageTag) {
		return false
	}
	if len(n.Classes()) > 0 || len(t.nodeIDs(n)) > 0 {
		return false
	}
	children := parent.Children
	if first := parent.First(); first != nil && first.Is(LabelTag) {
		children = children[1:]
	}
	for _, c := range children {
		if c.IsInvisible() {
			continue
		}
		if c == n {
			break
		}
		return false
	}
	if parent.Is(ListItemTag) {
		return true
	}
	visible := 0
	for _, c := range parent.Children {
		if !c.IsInvisible() && !c.Is(LabelTag) {
			visible++
		}
	}
	return visible == 1
}

func (t *Translator) enterParagraph(n *Node) WalkResult {
	if t.compactParagraph(n) {
		return WalkSkipExit
	}
	return t.enterDefault(n)
}

func (t *Translator) enterBlockQuote(n *Node) WalkResult {
	if n.Parent().Is(ListItemTag) {
		return WalkSkipExit
	}
	return t.enterDefault(n)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
