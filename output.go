package rst2html5

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/growler/go-rst2html5/markup"
)

// DefaultTemplate is the document template used unless one is configured.
const DefaultTemplate = "<!DOCTYPE html>\n<html{html_attr}>\n<head>{head}</head>\n<body>{body}</body>\n</html>"

// Document is a translated document. Head and Body are the serialized
// fragments for callers embedding them in their own pages.
type Document struct {
	Title    string
	HTMLAttr string
	Head     string
	Body     string
	Docinfo  map[string]string

	template string
	encoding string
	log      *zap.Logger
}

func (t *Translator) assemble(doc *Node) (*Document, error) {
	d := &Document{
		Title:    doc.Attrs.Str("title"),
		Docinfo:  make(map[string]string, len(t.head.docinfo)),
		template: t.settings.Template,
		encoding: t.settings.OutputEncoding,
		log:      t.log,
	}
	if d.template == "" {
		d.template = DefaultTemplate
	}
	if len(t.settings.HTMLTagAttrs) > 0 {
		d.HTMLAttr = " " + strings.Join(t.settings.HTMLTagAttrs, " ")
	}
	for _, kv := range t.head.docinfo {
		d.Docinfo[kv.Key] = kv.Value
	}
	var math string
	if t.mathScript {
		math = t.settings.MathScript
	}
	d.Head = t.head.render(math, t.settings.IndentOutput, t.settings.TabWidth)
	d.Body = markup.Render(t.stack.Root()...)
	return d, nil
}

// Returns the complete document: the template with {html_attr}, {head}
// and {body} substituted. "{{" and "}}" stand for literal braces; other
// placeholders are kept as they are.
func (d *Document) String() string {
	var sb strings.Builder
	s := d.template
	for len(s) > 0 {
		i := strings.IndexAny(s, "{}")
		if i < 0 {
			sb.WriteString(s)
			break
		}
		sb.WriteString(s[:i])
		s = s[i:]
		if strings.HasPrefix(s, "{{") || strings.HasPrefix(s, "}}") {
			sb.WriteByte(s[0])
			s = s[2:]
			continue
		}
		if s[0] == '}' {
			sb.WriteByte('}')
			s = s[1:]
			continue
		}
		end := strings.IndexByte(s, '}')
		if end < 0 {
			sb.WriteString(s)
			break
		}
		switch key := s[1:end]; key {
		case "html_attr":
			sb.WriteString(d.HTMLAttr)
		case "head":
			sb.WriteString(d.Head)
		case "body":
			sb.WriteString(d.Body)
		case "title":
			sb.WriteString(markup.EscapeText(d.Title))
		default:
			if d.log != nil {
				d.log.Warn("unknown template placeholder", zap.String("placeholder", key))
			}
			sb.WriteString(s[:end+1])
		}
		s = s[end+1:]
	}
	return sb.String()
}

// Writes the document in the output encoding. Characters the encoding
// lacks are written as character references.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	out := d.String()
	name := d.encoding
	if name == "" {
		name = "utf-8"
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return 0, fmt.Errorf("output encoding %q: %w", name, err)
	}
	if out, err = encoding.HTMLEscapeUnsupported(enc.NewEncoder()).String(out); err != nil {
		return 0, fmt.Errorf("encoding output: %w", err)
	}
	n, err := io.WriteString(w, out)
	return int64(n), err
}
