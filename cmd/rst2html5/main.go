// Command rst2html5 translates reStructuredText documents into HTML5.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	rst "github.com/growler/go-rst2html5"
	"github.com/growler/go-rst2html5/highlight"
	"github.com/growler/go-rst2html5/internal/logging"
)

type options struct {
	config      string
	output      string
	outDir      string
	logLevel    string
	docutils    string
	template    string
	encoding    string
	style       string
	xml         bool
	watch       bool
	indent      bool
	noIndent    bool
	showIDs     bool
	highlight   bool
	wrapTitle   bool
	tabWidth    int
	optionLimit int
	headerLevel int
	jobs        int
	stylesheets []string
	inlineCSS   []string
	scripts     []string
	htmlAttrs   []string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "rst2html5 [flags] [input ...]",
		Short: "Translate reStructuredText into HTML5",
		Long: `rst2html5 translates reStructuredText documents into HTML5.

Inputs are parsed with the docutils front end (rst2xml or docutils).
Inputs ending in .xml, or all inputs with --xml, are read as docutils XML.
With no input, or "-", the document is read from stdin and written to stdout.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &o, args)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.config, "config", "c", "", "YAML settings file")
	f.StringVarP(&o.output, "output", "o", "", "output file for a single input")
	f.StringVarP(&o.outDir, "out-dir", "d", "", "output directory for many inputs")
	f.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.StringVar(&o.docutils, "docutils", "", "path to the docutils front end")
	f.StringVar(&o.template, "template", "", "template file or text with {head} and {body} placeholders")
	f.StringVar(&o.encoding, "output-encoding", "utf-8", "output encoding")
	f.StringVar(&o.style, "highlight-style", "github", "chroma style used with --highlight")
	f.BoolVar(&o.xml, "xml", false, "inputs are docutils XML")
	f.BoolVarP(&o.watch, "watch", "w", false, "re-convert inputs when they change")
	f.BoolVar(&o.indent, "indent", true, "indent the output")
	f.BoolVar(&o.noIndent, "no-indent", false, "don't indent the output")
	f.BoolVar(&o.showIDs, "show-ids", true, "render extra identifiers as anchors")
	f.BoolVar(&o.highlight, "highlight", false, "highlight literal blocks with a language")
	f.BoolVar(&o.wrapTitle, "wrap-top-title", false, "wrap a titled document in a section")
	f.IntVar(&o.tabWidth, "tab-width", 4, "indentation width")
	f.IntVar(&o.optionLimit, "option-limit", 0, "width of an option group above which it takes the whole row; 0 means no limit")
	f.IntVar(&o.headerLevel, "initial-header-level", 1, "heading level of top level sections")
	f.IntVarP(&o.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of documents converted in parallel")
	f.StringArrayVar(&o.stylesheets, "stylesheet", nil, "stylesheet URL (repeatable)")
	f.StringArrayVar(&o.inlineCSS, "stylesheet-inline", nil, "stylesheet file embedded in the output (repeatable)")
	f.StringArrayVar(&o.scripts, "script", nil, "script URL, optionally followed by :defer or :async (repeatable)")
	f.StringArrayVar(&o.htmlAttrs, "html-tag-attr", nil, `attribute of the html element, e.g. lang="en" (repeatable)`)
	cmd.MarkFlagsMutuallyExclusive("output", "out-dir")
	return cmd
}

// Returns the settings: defaults, then the config file, then the flags
// given on the command line.
func settings(cmd *cobra.Command, o *options) (rst.Settings, error) {
	s := rst.DefaultSettings()
	if o.config != "" {
		var err error
		if s, err = rst.LoadSettings(o.config); err != nil {
			return s, err
		}
	}
	f := cmd.Flags()
	if f.Changed("indent") {
		s = s.WithIndent(o.indent)
	}
	if f.Changed("no-indent") {
		s = s.WithIndent(!o.noIndent)
	}
	if f.Changed("tab-width") {
		s = s.WithTabWidth(o.tabWidth)
	}
	if f.Changed("show-ids") {
		s = s.WithShowIDs(o.showIDs)
	}
	if f.Changed("option-limit") {
		s = s.WithOptionLimit(o.optionLimit)
	}
	if f.Changed("initial-header-level") {
		s = s.WithInitialHeaderLevel(o.headerLevel)
	}
	if f.Changed("output-encoding") {
		s = s.WithOutputEncoding(o.encoding)
	}
	if f.Changed("template") {
		s = s.WithTemplate(o.template)
	}
	if f.Changed("wrap-top-title") {
		s = s.WithWrapTopTitle(o.wrapTitle)
	}
	s = s.WithStylesheet(o.stylesheets...)
	s.StylesheetInline = append(s.StylesheetInline, o.inlineCSS...)
	for _, sc := range o.scripts {
		src, attr := parseScript(sc)
		s = s.WithScript(src, attr)
	}
	s = s.WithHTMLAttr(o.htmlAttrs...)
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s.Resolve()
}

// Splits "src:defer" and "src:async"; anything else is a plain source.
func parseScript(s string) (string, string) {
	for _, attr := range []string{"defer", "async"} {
		if src, ok := strings.CutSuffix(s, ":"+attr); ok {
			return src, attr
		}
	}
	return s, ""
}

func run(cmd *cobra.Command, o *options, args []string) error {
	log, err := logging.New(o.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	s, err := settings(cmd, o)
	if err != nil {
		return err
	}
	c := &converter{
		settings: s,
		conf:     rst.Conf{}.WithDocutils(o.docutils),
		xml:      o.xml,
		log:      log,
	}
	if o.highlight {
		h := highlight.New(o.style)
		css, err := h.CSS()
		if err != nil {
			return fmt.Errorf("highlight stylesheet: %w", err)
		}
		c.settings = c.settings.WithInlineStyle(css)
		c.highlighter = h
	}
	jobs, err := plan(args, o.output, o.outDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = c.convertAll(ctx, jobs, o.jobs)
	if w := c.warnings.Load(); w > 0 {
		log.Info("conversion finished with warnings", zap.Int64("warnings", w))
	}
	if !o.watch {
		return err
	}
	if err != nil {
		log.Error("conversion failed", zap.Error(err))
	}
	return c.watch(ctx, jobs)
}
