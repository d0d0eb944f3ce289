package rst2html5

import (
	"io"
)

// Convert translates a document tree with a fresh Translator.
func Convert(doc *Node, settings Settings, opts ...Option) (*Document, error) {
	return NewTranslator(settings, opts...).Translate(doc)
}

// ConvertXML reads a docutils XML document and translates it.
func ConvertXML(r io.Reader, settings Settings, opts ...Option) (*Document, error) {
	doc, err := ReadFrom(r)
	if err != nil {
		return nil, err
	}
	return Convert(doc, settings, opts...)
}

// ConvertRST parses reStructuredText with the docutils front end
// described by conf and translates the result.
func ConvertRST(r io.Reader, conf Conf, settings Settings, opts ...Option) (*Document, error) {
	doc, err := LoadFrom(r, conf)
	if err != nil {
		return nil, err
	}
	return Convert(doc, settings, opts...)
}
