package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	rst "github.com/growler/go-rst2html5"
)

// One document to convert. An empty input is stdin, an empty output
// stdout.
type job struct {
	in  string
	out string
}

func (j job) name() string {
	if j.in == "" {
		return "<stdin>"
	}
	return j.in
}

// Maps inputs to outputs.
func plan(args []string, output, outDir string) ([]job, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return []job{{out: output}}, nil
	}
	if len(args) == 1 && outDir == "" {
		return []job{{in: args[0], out: output}}, nil
	}
	if output != "" {
		return nil, errors.New("--output takes a single input; use --out-dir")
	}
	jobs := make([]job, 0, len(args))
	for _, in := range args {
		if in == "-" {
			return nil, errors.New("stdin can't be combined with other inputs")
		}
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".html"
		dir := outDir
		if dir == "" {
			dir = filepath.Dir(in)
		}
		jobs = append(jobs, job{in: in, out: filepath.Join(dir, base)})
	}
	return jobs, nil
}

type converter struct {
	settings    rst.Settings
	conf        rst.Conf
	xml         bool
	highlighter rst.Highlighter
	log         *zap.Logger
	warnings    atomic.Int64
}

// Converts the jobs, at most limit at a time.
func (c *converter) convertAll(ctx context.Context, jobs []job, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return c.convert(j)
		})
	}
	return g.Wait()
}

func (c *converter) read(j job) (*rst.Node, error) {
	xml := c.xml || strings.EqualFold(filepath.Ext(j.in), ".xml")
	switch {
	case j.in == "" && xml:
		return rst.ReadFrom(os.Stdin)
	case j.in == "":
		return rst.LoadFrom(os.Stdin, c.conf)
	case xml:
		return rst.ReadFile(j.in)
	default:
		return rst.LoadFile(j.in, c.conf)
	}
}

func (c *converter) convert(j job) error {
	log := c.log.With(zap.String("input", j.name()))
	doc, err := c.read(j)
	if err != nil {
		return fmt.Errorf("%s: %w", j.name(), err)
	}
	opts := []rst.Option{rst.WithLogger(log)}
	if c.highlighter != nil {
		opts = append(opts, rst.WithHighlighter(c.highlighter))
	}
	t := rst.NewTranslator(c.settings, opts...)
	d, err := t.Translate(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", j.name(), err)
	}
	c.warnings.Add(int64(t.Warnings()))
	if err := write(j.out, d); err != nil {
		return fmt.Errorf("%s: %w", j.name(), err)
	}
	log.Debug("converted", zap.String("output", j.out), zap.Int("warnings", t.Warnings()))
	return nil
}

func write(path string, d *rst.Document) (err error) {
	var w io.Writer = os.Stdout
	if path != "" {
		if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		var f *os.File
		if f, err = os.Create(path); err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	_, err = d.WriteTo(w)
	return err
}
