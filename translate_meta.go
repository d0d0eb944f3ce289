package rst2html5

import (
	"strings"
)

// Docinfo entries are not rendered in the body; they become head
// metadata.

func (t *Translator) enterBibliographic(n *Node) WalkResult {
	t.head.setDocinfo(string(n.Tag), collapseSpace(n.AsText()))
	return WalkSkip
}

func (t *Translator) enterAddress(n *Node) WalkResult {
	t.head.setDocinfo(string(n.Tag), strings.Join(strings.Split(n.AsText(), "\n"), ", "))
	return WalkSkip
}

func (t *Translator) enterAuthors(n *Node) WalkResult {
	names := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if name := strings.TrimSpace(collapseSpace(c.AsText())); name != "" {
			names = append(names, name)
		}
	}
	t.head.setDocinfo(string(n.Tag), strings.Join(names, "; "))
	return WalkSkip
}

func (t *Translator) enterField(n *Node) WalkResult {
	name, body := childAt(n, 0), childAt(n, 1)
	if name == nil {
		return WalkSkip
	}
	var value string
	if body != nil {
		value = collapseSpace(body.AsText())
	}
	t.head.setDocinfo(name.AsText(), value)
	return WalkSkip
}

func (t *Translator) enterMeta(n *Node) WalkResult {
	t.head.addMeta(mapAttrs(n.Tag, n.Attrs, false))
	return WalkSkip
}
