package rst2html5

// Transform rearranges a document tree before translation. It works on
// a private copy and may change it freely.
type Transform func(doc *Node) error

// Apply runs the transforms over a deep copy of doc and returns the
// copy. doc itself is left untouched. With no transforms doc is
// returned as is.
func Apply(doc *Node, transforms ...Transform) (*Node, error) {
	if len(transforms) == 0 {
		return doc, nil
	}
	c := doc.DeepCopy()
	for _, tr := range transforms {
		if err := tr(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// FooterToBottom moves the footer out of the document decoration to the
// end of the document, where it is rendered.
func FooterToBottom(doc *Node) error {
	for _, c := range doc.Children {
		if !c.Is(DecorationTag) {
			continue
		}
		kept := c.Children[:0]
		var footers []*Node
		for _, f := range c.Children {
			if f.Is(FooterTag) {
				footers = append(footers, f)
			} else {
				kept = append(kept, f)
			}
		}
		c.Children = kept
		doc.Append(footers...)
		break
	}
	return nil
}

// WrapTopTitle wraps the children of a titled document in a section that
// takes over the document ids and names. Targets pointing at those ids
// are dropped, since the section is now their anchor.
func WrapTopTitle(doc *Node) error {
	if !doc.Attrs.Has("title") {
		return nil
	}
	ids := doc.IDs()
	section := NewNode(SectionTag, Attrs{
		{"ids", List(ids)},
		{"names", List(doc.Attrs.List("names"))},
	})
	for _, c := range doc.Children {
		if c.Is(TargetTag) && c.Attrs.Has("refid") && contains(ids, c.Attrs.Str("refid")) {
			continue
		}
		section.Append(c)
	}
	doc.Attrs.Delete("ids", "names")
	doc.Children = nil
	doc.Append(section)
	return nil
}
