package rst2html5

import (
	"strings"

	"go.uber.org/zap"

	"github.com/growler/go-rst2html5/markup"
)

// A reference is not an anchor itself, so its ids are dropped.
func (t *Translator) enterReference(n *Node) WalkResult {
	t.ids[n] = nil
	t.stack.Begin()
	return WalkContinue
}

func (t *Translator) exitReference(n *Node) {
	a := t.attrsOf(n)
	a.Delete("name")
	t.commit(n, a)
}

func (t *Translator) enterProblematic(n *Node) WalkResult {
	t.begin(n, false)
	return WalkContinue
}

func (t *Translator) enterCitationReference(n *Node) WalkResult {
	t.begin(n, false)
	t.stack.Append(markup.Text("["), false)
	return WalkContinue
}

func (t *Translator) exitCitationReference(n *Node) {
	t.stack.Append(markup.Text("]"), false)
	t.exitReference(n)
}

// Targets with text are inline anchors. Empty targets pointing elsewhere
// vanish; the others lend their ids to the node that follows or become
// one empty anchor.
func (t *Translator) enterTarget(n *Node) WalkResult {
	if n.AsText() != "" {
		t.begin(n, false)
		return WalkContinue
	}
	ids := t.nodeIDs(n)
	if n.Attrs.Has("refuri") || n.Attrs.Has("refid") || len(ids) == 0 {
		return WalkSkip
	}
	if next := n.Next(); next != nil {
		nextIDs := t.nodeIDs(next)
		shared := false
		for _, id := range ids {
			if contains(nextIDs, id) {
				shared = true
				break
			}
		}
		if shared {
			extra := t.extraIDs[next]
			for _, id := range ids {
				if !contains(nextIDs, id) && !contains(extra, id) {
					extra = append(extra, id)
				}
			}
			if len(extra) > 0 {
				t.extraIDs[next] = extra
			}
			return WalkSkip
		}
	}
	t.stack.Begin()
	t.stack.Commit("a", markup.Attrs{{Key: "id", Value: ids[0]}}, true)
	return WalkSkip
}

func (t *Translator) enterLiteral(n *Node) WalkResult {
	t.preserve++
	return t.enterDefault(n)
}

func (t *Translator) exitLiteral(n *Node) {
	t.preserve--
	a := t.attrsOf(n)
	if classes := a.List("classes"); len(classes) > 1 {
		a.Set("classes", List(classes[len(classes)-1:]))
	}
	t.commit(n, a)
}

// Moves a "code language-X" class pair into data-language.
func literalAttrs(a Attrs) Attrs {
	classes := a.List("classes")
	if !contains(classes, "code") {
		return a
	}
	for _, c := range classes {
		lang, ok := strings.CutPrefix(c, "language-")
		if !ok {
			continue
		}
		rest := make([]string, 0, len(classes))
		for _, cc := range classes {
			if cc != "code" && cc != c {
				rest = append(rest, cc)
			}
		}
		a.Set("classes", List(rest))
		a.Set("data-language", String(lang))
		break
	}
	return a
}

func (t *Translator) enterLiteralBlock(n *Node) WalkResult {
	lang := n.Attrs.Str("language")
	if lang != "" && t.highlighter != nil {
		code, err := t.highlighter.Highlight(n.AsText(), lang, n.Attrs.Has("linenos"))
		if err == nil {
			t.begin(n, true)
			t.stack.Append(markup.Raw(code), false)
			a := literalAttrs(t.attrsOf(n))
			a.Delete("language", "linenos")
			a.Set("data-language", String(lang))
			t.commit(n, a)
			return WalkSkip
		}
		t.warn(n, "highlighting failed", zap.String("language", lang), zap.Error(err))
	}
	t.preserve++
	return t.enterDefault(n)
}

func (t *Translator) exitLiteralBlock(n *Node) {
	t.preserve--
	a := literalAttrs(t.attrsOf(n))
	if lang := a.Str("language"); lang != "" {
		a.Delete("language", "linenos")
		a.Set("data-language", String(lang))
	}
	t.commit(n, a)
}

// Returns the LaTeX environment for displayed math: align when the top
// level code has line breaks, equation otherwise. Both are unnumbered.
func pickMathEnvironment(code string) string {
	var top strings.Builder
	for _, chunk := range strings.Split(code, `\begin{`) {
		parts := strings.Split(chunk, `\end{`)
		top.WriteString(parts[len(parts)-1])
	}
	if strings.Contains(top.String(), `\\`) {
		return "align*"
	}
	return "equation*"
}

// Math is left to MathJax; the script is added to the head once.
func (t *Translator) enterMath(n *Node) WalkResult {
	code := n.AsText()
	a := t.attrsOf(n)
	a.Set("classes", List(append([]string{"math"}, a.List("classes")...)))
	name, text, indent := "span", `\(`+code+`\)`, false
	if n.Is(MathBlockTag) {
		name, indent = "div", true
		if env := pickMathEnvironment(code); strings.HasPrefix(env, "align") {
			text = `\begin{` + env + "}\n" + code + "\n" + `\end{` + env + "}"
		}
	}
	t.stack.Begin()
	t.stack.Append(markup.Text(text), false)
	t.stack.Commit(name, mapAttrs(n.Tag, a, false), indent)
	if t.settings.MathScript != "" {
		t.mathScript = true
	}
	return WalkSkip
}

func (t *Translator) enterRaw(n *Node) WalkResult {
	if strings.Contains(n.Attrs.Str("format"), "html") {
		t.stack.Append(markup.Raw(n.AsText()), false)
	}
	return WalkSkip
}

func (t *Translator) enterComment(n *Node) WalkResult {
	if text := n.AsText(); text != "" {
		t.stack.Append(markup.Raw("<!-- "+markup.EscapeText(text)+" -->"), true)
	}
	return WalkSkip
}
