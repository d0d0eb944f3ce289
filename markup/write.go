package markup

import (
	"io"
	"strings"

	"golang.org/x/net/html/atom"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&#34;")
)

// Attributes written as name="name" whatever their value.
var booleanAttrs = map[string]bool{
	"checked": true, "compact": true, "declare": true, "defer": true,
	"disabled": true, "ismap": true, "multiple": true, "nohref": true,
	"noresize": true, "noshade": true, "nowrap": true, "selected": true,
}

// Escapes &, < and > in character data.
func EscapeText(s string) string { return textEscaper.Replace(s) }

// Escapes &, <, > and " in attribute values.
func EscapeAttr(s string) string { return attrEscaper.Replace(s) }

func isVoid(a atom.Atom) bool {
	switch a {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr,
		atom.Img, atom.Input, atom.Link, atom.Meta, atom.Param,
		atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}

// whitespace inside these is kept as is
func preservesSpace(a atom.Atom) bool {
	return a == atom.Pre || a == atom.Textarea
}

// text inside these is not escaped
func rawText(a atom.Atom) bool {
	return a == atom.Script || a == atom.Style
}

// Write writes the fragments as XHTML: void elements are closed with
// " />", other elements always get an end tag.
//
// Outside pre and textarea, spaces before a line break are dropped and
// consecutive line breaks are collapsed into one.
func Write(w io.Writer, frags ...Fragment) error {
	s := serializer{w: w}
	for _, f := range frags {
		if err := s.fragment(f); err != nil {
			return err
		}
	}
	return s.flush()
}

// Render returns the XHTML form of the fragments.
func Render(frags ...Fragment) string {
	var sb strings.Builder
	_ = Write(&sb, frags...)
	return sb.String()
}

type serializer struct {
	w        io.Writer
	text     []Fragment
	preserve int
	noescape bool
}

func (s *serializer) fragment(f Fragment) error {
	switch f := f.(type) {
	case Text, Raw:
		s.text = append(s.text, f)
	case *Element:
		return s.element(f)
	}
	return nil
}

func (s *serializer) flush() error {
	if len(s.text) == 0 {
		return nil
	}
	var sb strings.Builder
	for _, t := range s.text {
		switch t := t.(type) {
		case Text:
			if s.noescape {
				sb.WriteString(string(t))
			} else {
				sb.WriteString(EscapeText(string(t)))
			}
		case Raw:
			sb.WriteString(string(t))
		}
	}
	s.text = s.text[:0]
	out := sb.String()
	if s.preserve == 0 {
		out = collapseLines(out)
	}
	return writeString(s.w, out)
}

func (s *serializer) element(e *Element) error {
	if err := s.flush(); err != nil {
		return err
	}
	a := atom.Lookup([]byte(e.Name))
	if err := s.startTag(e); err != nil {
		return err
	}
	if len(e.Children) == 0 && isVoid(a) {
		return writeString(s.w, " />")
	}
	if err := writeDelim(s.w, '>'); err != nil {
		return err
	}
	preserved := s.preserve > 0 || preservesSpace(a)
	if preserved {
		s.preserve++
	}
	if rawText(a) {
		s.noescape = true
	}
	for _, c := range e.Children {
		if err := s.fragment(c); err != nil {
			return err
		}
	}
	if err := s.flush(); err != nil {
		return err
	}
	s.noescape = false
	if preserved {
		s.preserve--
	}
	return writeString(s.w, "</"+e.Name+">")
}

func (s *serializer) startTag(e *Element) error {
	if err := writeDelim(s.w, '<'); err != nil {
		return err
	}
	if err := writeString(s.w, e.Name); err != nil {
		return err
	}
	for _, attr := range e.Attrs {
		if attr.Key == "xml:space" {
			continue
		}
		value := attr.Value
		if booleanAttrs[attr.Key] {
			value = attr.Key
		}
		if err := writeString(s.w, " "+attr.Key+`="`+EscapeAttr(value)+`"`); err != nil {
			return err
		}
	}
	return nil
}

// Drops spaces and tabs in front of a line break and collapses runs of
// line breaks into one.
func collapseLines(s string) string {
	if strings.IndexByte(s, '\n') < 0 {
		return s
	}
	var (
		sb      strings.Builder
		spaces  = -1
		newline bool
	)
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case ' ', '\t':
			if spaces < 0 {
				spaces = i
			}
		case '\n':
			spaces = -1
			if !newline {
				sb.WriteByte('\n')
				newline = true
			}
		default:
			if spaces >= 0 {
				sb.WriteString(s[spaces:i])
				spaces = -1
			}
			sb.WriteByte(c)
			newline = false
		}
	}
	if spaces >= 0 {
		sb.WriteString(s[spaces:])
	}
	return sb.String()
}

func writeDelim(w io.Writer, d byte) error {
	_, err := w.Write([]byte{d})
	return err
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
