// Package markup holds the output side of the translator: HTML fragments,
// the element stack used to build them and their XHTML serialization.
package markup

// Fragment is one piece of output: Text, Raw or *Element.
type Fragment interface {
	fragment()
}

// Text is character data, escaped on output.
type Text string

// Raw is markup written verbatim.
type Raw string

// Element is an HTML element with ordered attributes.
type Element struct {
	Name     string
	Attrs    Attrs
	Children []Fragment
}

func (Text) fragment()     {}
func (Raw) fragment()      {}
func (*Element) fragment() {}

// Makes a new element.
func E(name string, attrs Attrs, children ...Fragment) *Element {
	return &Element{Name: name, Attrs: attrs, Children: children}
}

// Appends children to the element.
func (e *Element) Append(children ...Fragment) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Output attribute
type Attr struct {
	Key   string
	Value string
}

// Ordered output attributes.
type Attrs []Attr

// Returns the value of key and whether it is present.
func (a Attrs) Get(key string) (string, bool) {
	for i := range a {
		if a[i].Key == key {
			return a[i].Value, true
		}
	}
	return "", false
}

// Sets the value of key, keeping its position if already present.
func (a *Attrs) Set(key, value string) {
	for i := range *a {
		if (*a)[i].Key == key {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attr{key, value})
}

// Sets the value of key unless it is already present.
func (a *Attrs) Default(key, value string) {
	if _, ok := a.Get(key); !ok {
		*a = append(*a, Attr{key, value})
	}
}

func (a *Attrs) Delete(key string) {
	for i := range *a {
		if (*a)[i].Key == key {
			*a = append((*a)[:i], (*a)[i+1:]...)
			return
		}
	}
}
