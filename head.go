package rst2html5

import (
	"strings"

	"github.com/growler/go-rst2html5/markup"
)

// head collects the content of the document head. Items come from the
// settings and from anywhere in the body walk.
type head struct {
	charset     string
	title       string
	hasTitle    bool
	metas       []*markup.Element
	stylesheets []*markup.Element
	scripts     []*markup.Element
	docinfo     []markup.Attr
}

func (h *head) init(s Settings) {
	h.charset = s.OutputEncoding
	if h.charset == "" {
		h.charset = "utf-8"
	}
	for _, href := range s.Stylesheets {
		h.stylesheets = append(h.stylesheets, markup.E("link", markup.Attrs{
			{Key: "href", Value: href},
			{Key: "rel", Value: "stylesheet"},
		}))
	}
	if len(s.InlineStyles) > 0 {
		h.stylesheets = append(h.stylesheets, markup.E("style", nil, markup.Raw(strings.Join(s.InlineStyles, ""))))
	}
	for _, sc := range s.Scripts {
		attrs := markup.Attrs{{Key: "src", Value: sc.Src}}
		if sc.Attr != "" {
			attrs.Set(sc.Attr, sc.Attr)
		}
		h.scripts = append(h.scripts, markup.E("script", attrs))
	}
}

func (h *head) setTitle(title string) {
	h.title, h.hasTitle = title, true
}

func (h *head) addMeta(attrs markup.Attrs) {
	h.metas = append(h.metas, markup.E("meta", attrs))
}

// Records a docinfo entry. A repeated name keeps its first position.
func (h *head) setDocinfo(name, value string) {
	for i := range h.docinfo {
		if h.docinfo[i].Key == name {
			h.docinfo[i].Value = value
			return
		}
	}
	h.docinfo = append(h.docinfo, markup.Attr{Key: name, Value: value})
}

// Returns the head items in output order.
func (h *head) items(mathScript string) []markup.Fragment {
	out := []markup.Fragment{markup.E("meta", markup.Attrs{{Key: "charset", Value: h.charset}})}
	if h.hasTitle {
		out = append(out, markup.E("title", nil, markup.Text(h.title)))
	}
	for _, m := range h.metas {
		out = append(out, m)
	}
	for _, l := range h.stylesheets {
		out = append(out, l)
	}
	for _, s := range h.scripts {
		out = append(out, s)
	}
	if mathScript != "" {
		out = append(out, markup.E("script", markup.Attrs{{Key: "src", Value: mathScript}}))
	}
	for _, kv := range h.docinfo {
		out = append(out, markup.E("meta", markup.Attrs{
			{Key: "content", Value: kv.Value},
			{Key: "name", Value: kv.Key},
		}))
	}
	return out
}

// Renders the head. With indentation every item is on its own line.
func (h *head) render(mathScript string, indent bool, width int) string {
	items := h.items(mathScript)
	if !indent {
		return markup.Render(items...)
	}
	lead := markup.Text("\n" + strings.Repeat(" ", width))
	frags := make([]markup.Fragment, 0, 2*len(items)+1)
	for _, it := range items {
		frags = append(frags, lead, it)
	}
	frags = append(frags, markup.Text("\n"))
	return markup.Render(frags...)
}
