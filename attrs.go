package rst2html5

import (
	"strconv"

	"github.com/growler/go-rst2html5/markup"
)

// Docutils attribute names renamed on output.
var attrRenames = map[string]string{
	"refuri":   "href",
	"uri":      "src",
	"refid":    "href",
	"morerows": "rowspan",
	"morecols": "colspan",
	"classes":  "class",
	"ids":      "id",
}

// Docutils bookkeeping attributes never written.
var attrIgnored = map[string]bool{
	"names":     true,
	"dupnames":  true,
	"bullet":    true,
	"enumtype":  true,
	"colwidth":  true,
	"stub":      true,
	"backrefs":  true,
	"auto":      true,
	"anonymous": true,
	"xml:space": true,
}

// mapAttrs returns the output attributes of a node of kind tag with the
// attributes in. When fold is set, the kind name becomes the first class.
//
// Zero values are dropped, lists are space joined, refid gets a leading
// "#", ids keeps the first identifier only and morerows/morecols are
// turned into total spans.
func mapAttrs(tag Tag, in Attrs, fold bool) markup.Attrs {
	out := make(markup.Attrs, 0, len(in)+1)
	folded := !fold
	if fold && in.Get("classes") == nil {
		out = append(out, markup.Attr{Key: "class", Value: string(tag)})
		folded = true
	}
	for _, kv := range in {
		if attrIgnored[kv.Key] {
			continue
		}
		if kv.Key == "classes" && !folded {
			classes := append([]string{string(tag)}, in.List("classes")...)
			out = append(out, markup.Attr{Key: "class", Value: List(classes).String()})
			folded = true
			continue
		}
		if kv.Value == nil || kv.Value.IsZero() {
			continue
		}
		key, value := kv.Key, kv.Value.String()
		if r, ok := attrRenames[key]; ok {
			key = r
		}
		switch kv.Key {
		case "ids":
			value = in.List("ids")[0]
		case "refid":
			value = "#" + value
		case "morerows", "morecols":
			if n, err := strconv.Atoi(value); err == nil {
				value = strconv.Itoa(n + 1)
			}
		}
		if f, ok := kv.Value.(Flag); ok && bool(f) {
			value = key
		}
		out.Set(key, value)
	}
	return out
}
