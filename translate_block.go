package rst2html5

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/growler/go-rst2html5/markup"
)

func (t *Translator) enterSection(n *Node) WalkResult {
	t.heading++
	return t.enterDefault(n)
}

func (t *Translator) exitSection(n *Node) {
	if t.heading > 0 {
		t.heading--
	}
	t.exitDefault(n)
}

func (t *Translator) headingName(level int) string {
	return fmt.Sprintf("h%d", min(max(level, 1), 6))
}

func (t *Translator) exitTitle(n *Node) {
	a := t.attrsOf(n)
	refid := a.Str("refid")
	a.Delete("refid")
	parent := n.Parent()
	if parent.Is(TableTag) {
		t.stack.Commit("caption", mapAttrs(n.Tag, a, false), true)
		return
	}
	if t.heading == 0 {
		t.heading = 1
	}
	if refid != "" && !contains(n.IDs(), refid) && (parent == nil || !contains(parent.IDs(), refid)) {
		t.stack.Commit("a", markup.Attrs{
			{Key: "class", Value: "toc-backref"},
			{Key: "href", Value: "#" + refid},
		}, false)
		link := t.stack.Pop(1)
		t.stack.Begin()
		t.stack.Append(link[0], false)
	}
	t.stack.Commit(t.headingName(t.heading), mapAttrs(n.Tag, a, false), true)
}

func (t *Translator) enterSubtitle(n *Node) WalkResult {
	if n.AsText() == "" {
		return WalkSkip
	}
	if !t.settings.ShowIDs {
		t.ids[n] = nil
	}
	t.begin(n, false)
	return WalkContinue
}

// The subtitle is one level below the title; both end up in an hgroup.
func (t *Translator) exitSubtitle(n *Node) {
	t.stack.Commit(t.headingName(t.heading+1), mapAttrs(n.Tag, t.attrsOf(n), false), true)
	if t.stack.Len() >= 2 {
		pair := t.stack.Pop(2)
		t.stack.Begin()
		for _, f := range pair {
			t.stack.Append(f, true)
		}
		t.stack.Commit("hgroup", nil, true)
	}
	if t.heading > 0 {
		t.heading--
	}
}

// Saves the heading depth: titles inside asides always start at h1.
func (t *Translator) enterAside(n *Node) WalkResult {
	t.savedHeadings = append(t.savedHeadings, t.heading)
	t.heading = 1
	return t.enterDefault(n)
}

func (t *Translator) exitAside(n *Node) {
	if k := len(t.savedHeadings); k > 0 {
		t.heading = t.savedHeadings[k-1]
		t.savedHeadings = t.savedHeadings[:k-1]
	}
	a := t.attrsOf(n)
	if classes := a.List("classes"); len(classes) > 0 && strings.HasPrefix(classes[0], "admonition-") {
		a.Set("classes", List(classes[1:]))
	}
	t.commit(n, a)
}

func (t *Translator) exitRubric(n *Node) {
	a := t.attrsOf(n)
	a.Delete("classes")
	t.commit(n, a)
}

var enumTypes = map[string]string{
	"arabic":     "1",
	"loweralpha": "a",
	"upperalpha": "A",
	"lowerroman": "i",
	"upperroman": "I",
}

func (t *Translator) exitEnumeratedList(n *Node) {
	a := t.attrsOf(n)
	if enum := a.Str("enumtype"); enum != "" {
		typ, ok := enumTypes[enum]
		if !ok {
			t.warn(n, "unknown enumeration style", zap.String("attr", "enumtype"), zap.String("value", enum))
			typ = "1"
		}
		a.Set("type", String(typ))
	}
	if a.Str("suffix") == "." && !a.Has("prefix") {
		a.Delete("suffix")
	}
	t.commit(n, a)
}

// A term followed by a classifier gets it appended in place.
func (t *Translator) enterClassifier(n *Node) WalkResult {
	if t.stack.Len() == 0 {
		return WalkSkip
	}
	prev := t.stack.Pop(1)[0]
	if term, ok := prev.(*markup.Element); ok {
		term.Append(
			markup.Text(" "),
			markup.E("span", markup.Attrs{{Key: "class", Value: "classifier-delimiter"}}, markup.Text(":")),
			markup.Text(" "),
			markup.E("span", markup.Attrs{{Key: "class", Value: "classifier"}}, markup.Text(collapseSpace(n.AsText()))),
		)
	}
	t.stack.Append(prev, true)
	return WalkSkip
}

// Returns the header state of the innermost table.
func (t *Translator) tableTop() *tableState {
	if len(t.tables) == 0 {
		t.tables = append(t.tables, tableState{})
	}
	return &t.tables[len(t.tables)-1]
}

func (t *Translator) enterTable(n *Node) WalkResult {
	t.tables = append(t.tables, tableState{})
	return t.enterDefault(n)
}

func (t *Translator) exitTable(n *Node) {
	if k := len(t.tables); k > 0 {
		t.tables = t.tables[:k-1]
	}
	t.exitDefault(n)
}

func (t *Translator) exitColspec(n *Node) {
	if n.Attrs.Has("stub") {
		t.tableTop().thRequired++
	}
}

func (t *Translator) enterThead(n *Node) WalkResult {
	t.tableTop().inThead = true
	return t.enterDefault(n)
}

func (t *Translator) exitThead(n *Node) {
	t.tableTop().inThead = false
	t.exitDefault(n)
}

func (t *Translator) enterRow(n *Node) WalkResult {
	ts := t.tableTop()
	ts.thAvailable = ts.thRequired
	return t.enterDefault(n)
}

func (t *Translator) exitEntry(n *Node) {
	ts := t.tableTop()
	name := "td"
	if ts.inThead || ts.thAvailable > 0 {
		name = "th"
		if ts.thAvailable > 0 {
			ts.thAvailable--
		}
	}
	t.stack.Commit(name, mapAttrs(n.Tag, t.attrsOf(n), false), true)
}

// Option lists and footnotes are tables; the tbody frame is opened here.
func (t *Translator) enterOptionList(n *Node) WalkResult {
	t.stack.Begin()
	t.stack.Begin()
	return WalkContinue
}

func (t *Translator) exitOptionList(n *Node) {
	t.stack.Commit("tbody", nil, true)
	t.stack.Commit("table", mapAttrs(n.Tag, t.attrsOf(n), true), true)
}

func (t *Translator) enterOptionGroup(n *Node) WalkResult {
	t.optionLevel = 0
	return t.enterDefault(n)
}

// A group wider than the option limit takes the whole row; its
// description moves to a row of its own.
func (t *Translator) exitOptionGroup(n *Node) {
	a := t.attrsOf(n)
	limit := t.settings.OptionLimit
	if limit == 0 || utf8.RuneCountInString(n.AsText()) <= limit {
		t.commit(n, a)
		return
	}
	a.Set("morecols", String("1"))
	t.commit(n, a)
	t.stack.Commit("tr", nil, true)
	t.stack.Begin()
	t.stack.Append(markup.E("td", nil), true)
}

func (t *Translator) enterOption(n *Node) WalkResult {
	if t.optionLevel > 0 {
		t.stack.Append(markup.Text(", "), false)
	}
	t.optionLevel++
	return t.enterDefault(n)
}

func (t *Translator) enterOptionArgument(n *Node) WalkResult {
	delim := " "
	if d := n.Attrs.Get("delimiter"); d != nil {
		delim = d.String()
	}
	t.stack.Append(markup.Text(delim), false)
	return t.enterDefault(n)
}

func (t *Translator) exitOptionArgument(n *Node) {
	a := t.attrsOf(n)
	a.Delete("delimiter")
	t.commit(n, a)
}

func (t *Translator) enterCitation(n *Node) WalkResult {
	t.stack.Begin() // table
	t.stack.Begin() // tbody
	t.stack.Begin() // tr
	if !n.First().Is(LabelTag) {
		t.stack.Begin() // td
	}
	return WalkContinue
}

func (t *Translator) exitCitation(n *Node) {
	t.stack.Commit("td", nil, true)
	t.stack.Commit("tr", nil, true)
	t.stack.Commit("tbody", nil, true)
	t.stack.Commit("table", mapAttrs(n.Tag, t.attrsOf(n), true), true)
}

func (t *Translator) enterLabel(n *Node) WalkResult {
	t.ids[n] = nil
	t.stack.Begin()
	t.stack.Append(markup.Text("["), false)
	return WalkContinue
}

// The label cell is closed and the body cell of the same row opened.
func (t *Translator) exitLabel(n *Node) {
	t.stack.Append(markup.Text("]"), false)
	t.commit(n, t.attrsOf(n))
	t.stack.Begin()
}

func (t *Translator) enterLineBlock(n *Node) WalkResult {
	t.lineBlockLevel++
	if t.lineBlockLevel == 1 {
		t.lineLevel = -1
		return t.enterDefault(n)
	}
	return WalkContinue
}

func (t *Translator) exitLineBlock(n *Node) {
	t.lineBlockLevel--
	if t.lineBlockLevel == 0 {
		t.exitDefault(n)
	}
}

func (t *Translator) enterLine(n *Node) WalkResult {
	t.lineLevel++
	if t.lineLevel > 0 {
		width := t.settings.TabWidth * max(t.lineBlockLevel-1, 0)
		t.stack.Append(markup.Text("\n"+strings.Repeat(" ", width)), false)
	}
	return WalkSkipExit
}

func (t *Translator) enterSystemMessage(n *Node) WalkResult {
	t.enterDefault(n)
	t.stack.Begin()
	t.stack.Append(markup.Text(fmt.Sprintf("System Message: %s/%s (%s line %s)",
		n.Attrs.Str("type"), n.Attrs.Str("level"), n.Attrs.Str("source"), n.Attrs.Str("line"))), false)
	for _, ref := range n.Attrs.List("backrefs") {
		t.stack.Append(markup.Text(" "), false)
		t.stack.Append(markup.E("a", markup.Attrs{{Key: "href", Value: "#" + ref}}, markup.Text(ref)), false)
	}
	t.stack.Commit("h1", nil, true)
	return WalkContinue
}

func (t *Translator) exitSystemMessage(n *Node) {
	var a Attrs
	if ids := t.attrsOf(n).List("ids"); len(ids) > 0 {
		a.Set("ids", List(ids))
	}
	t.commit(n, a)
}

// A figure whose image has ids or that has a legend is translated from a
// rearranged copy: image ids move to the figure and the legend joins the
// caption.
func (t *Translator) enterFigure(n *Node) WalkResult {
	image, caption, legend := childAt(n, 0), childAt(n, 1), childAt(n, 2)
	moveIDs := image.Is(ImageTag) && len(image.IDs()) > 0
	merge := legend.Is(LegendTag) && caption.Is(CaptionTag)
	if !moveIDs && !merge {
		return t.enterDefault(n)
	}
	fig := n.DeepCopy()
	// The copy stands in for n while it is walked, so Next works from
	// inside it. The tree being walked is already a private copy.
	if p := n.parent; p != nil {
		i := n.index()
		fig.parent = p
		p.Children[i] = fig
		defer func() { p.Children[i] = n }()
	}
	if extra, ok := t.extraIDs[n]; ok {
		t.extraIDs[fig] = extra
	}
	if moveIDs {
		img := fig.Children[0]
		fig.Attrs.Set("ids", List(append(fig.IDs(), img.IDs()...)))
		img.Attrs.Delete("ids")
	}
	if merge {
		capt, leg := fig.Children[1], fig.Children[2]
		if first := capt.First(); first != nil && first.IsText() {
			inline := capt.Children
			capt.Children = nil
			capt.Append(NewNode(ParagraphTag, nil, inline...))
		}
		capt.Append(leg.Children...)
		fig.Children = append(fig.Children[:2], fig.Children[3:]...)
	}
	if err := Walk(fig, t); err != nil {
		t.err = err
	}
	return WalkSkip
}

func childAt(n *Node, i int) *Node {
	if i < len(n.Children) {
		return n.Children[i]
	}
	return nil
}

var dimension = regexp.MustCompile(`^(\d+)(px)?$`)

func (t *Translator) exitImage(n *Node) {
	a := t.attrsOf(n)
	for _, key := range []string{"align", "scale"} {
		if a.Has(key) {
			t.warn(n, "image attribute ignored", zap.String("attr", key))
			a.Delete(key)
		}
	}
	for _, key := range []string{"height", "width"} {
		v := a.Str(key)
		if v == "" {
			continue
		}
		if m := dimension.FindStringSubmatch(v); m != nil {
			a.Set(key, String(m[1]))
		} else {
			t.warn(n, `image dimension must use "px" or no unit`, zap.String("attr", key), zap.String("value", v))
		}
	}
	name, indent, attrs := t.parse(n, a)
	attrs.Default("alt", "")
	t.stack.Commit(name, attrs, indent)
}
