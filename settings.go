package rst2html5

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"
)

// DefaultMathScript is the MathJax loader added to documents with math.
const DefaultMathScript = "http://cdn.mathjax.org/mathjax/latest/MathJax.js?config=TeX-AMS-MML_HTMLorMML"

// A script element added to the head.
type Script struct {
	Src  string `yaml:"src" validate:"required"`
	Attr string `yaml:"attr" validate:"omitempty,oneof=defer async"`
}

// Settings of a translation.
type Settings struct {
	IndentOutput       bool     `yaml:"indent_output"`
	TabWidth           int      `yaml:"tab_width" validate:"min=0,max=16"`
	ShowIDs            bool     `yaml:"show_ids"`
	OptionLimit        int      `yaml:"option_limit" validate:"min=0"`
	InitialHeaderLevel int      `yaml:"initial_header_level" validate:"min=0,max=6"`
	OutputEncoding     string   `yaml:"output_encoding" validate:"encoding"`
	Stylesheets        []string `yaml:"stylesheet"`
	StylesheetInline   []string `yaml:"stylesheet_inline" validate:"dive,required"`
	Scripts            []Script `yaml:"script" validate:"dive"`
	HTMLTagAttrs       []string `yaml:"html_tag_attr"`
	Template           string   `yaml:"template"`
	MathScript         string   `yaml:"math_script"`
	WrapTopTitle       bool     `yaml:"wrap_top_title"`

	// Contents of the stylesheet_inline files, filled by Resolve.
	InlineStyles []string `yaml:"-"`
}

// Returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		IndentOutput:       true,
		TabWidth:           4,
		ShowIDs:            true,
		InitialHeaderLevel: 1,
		OutputEncoding:     "utf-8",
		MathScript:         DefaultMathScript,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("encoding", validateEncoding)
	return v
}

func validateEncoding(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return true
	}
	_, err := htmlindex.Get(name)
	return err == nil
}

// Checks the settings.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Decodes YAML settings over the defaults. An empty input gives the
// defaults.
func ParseSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return s, fmt.Errorf("parsing settings: %w", err)
	}
	return s, s.Validate()
}

// Loads YAML settings from a file.
func LoadSettings(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultSettings(), err
	}
	defer f.Close()
	s, err := ParseSettings(f)
	if err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Reads the files the settings refer to: the template, when it names an
// existing file, and the stylesheet_inline files. Resolve is meant to be
// called once.
func (s Settings) Resolve() (Settings, error) {
	if s.Template != "" {
		if fi, err := os.Stat(s.Template); err == nil && fi.Mode().IsRegular() {
			data, err := os.ReadFile(s.Template)
			if err != nil {
				return s, fmt.Errorf("reading template: %w", err)
			}
			s.Template = string(data)
		}
	}
	styles := s.InlineStyles[:len(s.InlineStyles):len(s.InlineStyles)]
	for _, path := range s.StylesheetInline {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("reading stylesheet: %w", err)
		}
		styles = append(styles, string(data))
	}
	s.InlineStyles = styles
	return s, nil
}

func (s Settings) WithIndent(indent bool) Settings {
	s.IndentOutput = indent
	return s
}

func (s Settings) WithTabWidth(width int) Settings {
	s.TabWidth = width
	return s
}

func (s Settings) WithShowIDs(show bool) Settings {
	s.ShowIDs = show
	return s
}

func (s Settings) WithOptionLimit(limit int) Settings {
	s.OptionLimit = limit
	return s
}

func (s Settings) WithInitialHeaderLevel(level int) Settings {
	s.InitialHeaderLevel = level
	return s
}

func (s Settings) WithOutputEncoding(enc string) Settings {
	s.OutputEncoding = enc
	return s
}

// Adds stylesheet links.
func (s Settings) WithStylesheet(href ...string) Settings {
	s.Stylesheets = append(s.Stylesheets[:len(s.Stylesheets):len(s.Stylesheets)], href...)
	return s
}

// Adds CSS text to the inline style element.
func (s Settings) WithInlineStyle(css string) Settings {
	s.InlineStyles = append(s.InlineStyles[:len(s.InlineStyles):len(s.InlineStyles)], css)
	return s
}

// Adds a script. attr is "", "defer" or "async".
func (s Settings) WithScript(src, attr string) Settings {
	s.Scripts = append(s.Scripts[:len(s.Scripts):len(s.Scripts)], Script{Src: src, Attr: attr})
	return s
}

// Adds attributes to the html element, e.g. `lang="en"`.
func (s Settings) WithHTMLAttr(attr ...string) Settings {
	s.HTMLTagAttrs = append(s.HTMLTagAttrs[:len(s.HTMLTagAttrs):len(s.HTMLTagAttrs)], attr...)
	return s
}

func (s Settings) WithTemplate(tmpl string) Settings {
	s.Template = tmpl
	return s
}

func (s Settings) WithMathScript(src string) Settings {
	s.MathScript = src
	return s
}

func (s Settings) WithWrapTopTitle(wrap bool) Settings {
	s.WrapTopTitle = wrap
	return s
}
