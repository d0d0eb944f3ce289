// Package highlight marks up source code for literal blocks with chroma.
package highlight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrNoLexer is returned for languages chroma does not know.
var ErrNoLexer = errors.New("no lexer for language")

// Chroma highlights code with class based spans. The matching
// stylesheet is written by CSS.
type Chroma struct {
	style *chroma.Style
}

// Makes a highlighter using the named chroma style, or the fallback
// style when the name is unknown.
func New(style string) *Chroma {
	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}
	return &Chroma{style: s}
}

func (c *Chroma) formatter(linenos bool) *html.Formatter {
	return html.New(
		html.WithClasses(true),
		html.PreventSurroundingPre(true),
		html.WithLineNumbers(linenos),
	)
}

// Highlight returns the markup to be placed inside a pre element.
func (c *Chroma) Highlight(code, language string, linenos bool) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("%w %q", ErrNoLexer, language)
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenising %s: %w", language, err)
	}
	var sb strings.Builder
	if err := c.formatter(linenos).Format(&sb, c.style, it); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// CSS returns the stylesheet for the highlighted markup.
func (c *Chroma) CSS() (string, error) {
	var sb strings.Builder
	if err := c.formatter(false).WriteCSS(&sb, c.style); err != nil {
		return "", err
	}
	return sb.String(), nil
}
