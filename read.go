package rst2html5

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// Reads a docutils XML document, as written by rst2xml or
// "docutils --writer=xml".
func ReadFrom(r io.Reader) (*Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading docutils XML: %w", err)
	}
	return fromDocument(doc)
}

// Reads a docutils XML file.
func ReadFile(path string) (*Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("reading docutils XML: %w", err)
	}
	return fromDocument(doc)
}

// Reads a docutils XML document from a string.
func ReadString(s string) (*Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		return nil, fmt.Errorf("reading docutils XML: %w", err)
	}
	return fromDocument(doc)
}

func fromDocument(doc *etree.Document) (*Node, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrBadDocument)
	}
	if Tag(root.Tag) != DocumentTag {
		return nil, fmt.Errorf("%w: root element is <%s>", ErrBadDocument, root.FullTag())
	}
	return readElement(root), nil
}

func readElement(el *etree.Element) *Node {
	n := &Node{Tag: Tag(el.Tag)}
	if len(el.Attr) > 0 {
		n.Attrs = make(Attrs, 0, len(el.Attr))
		for _, a := range el.Attr {
			key := a.FullKey()
			if listAttributes[key] {
				n.Attrs = append(n.Attrs, KV{key, List(splitList(a.Value))})
			} else {
				n.Attrs = append(n.Attrs, KV{key, String(a.Value)})
			}
		}
	}
	keepSpace := textElements[n.Tag]
	for _, tok := range el.Child {
		switch tok := tok.(type) {
		case *etree.Element:
			n.Append(readElement(tok))
		case *etree.CharData:
			if keepSpace || !tok.IsWhitespace() {
				n.Append(NewText(tok.Data))
			}
		}
	}
	return n
}

// Splits a docutils name list. Names are separated by spaces; a space
// inside a name is escaped as "\ " and a backslash as "\\".
func splitList(s string) []string {
	var (
		out  []string
		cur  strings.Builder
		esc  bool
		used bool
	)
	for _, r := range s {
		switch {
		case esc:
			cur.WriteRune(r)
			esc = false
		case r == '\\':
			esc, used = true, true
		case r == ' ':
			if cur.Len() > 0 || used {
				out = append(out, cur.String())
			}
			cur.Reset()
			used = false
		default:
			cur.WriteRune(r)
			used = true
		}
	}
	if cur.Len() > 0 || used {
		out = append(out, cur.String())
	}
	return out
}
