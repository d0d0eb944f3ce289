package rst2html5

import (
	"errors"

	"github.com/growler/go-rst2html5/markup"
)

var (
	// A node kind has no dispatch entry.
	ErrUnknownNode = errors.New("unknown node kind")
	// An element was committed or popped without an open frame.
	ErrStackUnderflow = markup.ErrStackUnderflow
	// The docutils front end could not be located.
	ErrParserNotFound = errors.New("docutils executable is not found")
	// The input is not a docutils document.
	ErrBadDocument = errors.New("not a docutils document")
	// A Translator was asked to translate a second document.
	ErrTranslatorReused = errors.New("translator already used")
)
