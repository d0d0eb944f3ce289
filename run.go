package rst2html5

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// A configuration for running the docutils front end that turns
// reStructuredText into docutils XML.
type Conf struct {
	Docutils string    // Path to the front end; searched for when empty
	Dir      string    // Working directory
	Opts     []string  // Additional options
	Stderr   io.Writer // Diagnostics of the front end; os.Stderr when nil
}

// Front ends tried in order. The generic docutils command needs the
// writer to be selected.
var frontEnds = []struct {
	name string
	args []string
}{
	{"rst2xml", nil},
	{"rst2xml.py", nil},
	{"docutils", []string{"--writer=xml"}},
}

// Returns a Conf with a specified path to the front end executable.
func (c Conf) WithDocutils(path string) Conf {
	c.Docutils = path
	return c
}

func (c Conf) WithDir(dir string) Conf {
	c.Dir = dir
	return c
}

func (c Conf) WithStderr(w io.Writer) Conf {
	c.Stderr = w
	return c
}

// Add an option to the configuration. Accepts:
//   - single-letter option, e.g. "q"
//   - long option, e.g. "no-doc-title"
//   - long option with value, e.g. "report", "2"
func (c Conf) WithOpt(opt string, val ...string) Conf {
	if opt == "" {
		return c
	}
	switch {
	case len(opt) == 1:
		c.Opts = append(c.Opts, "-"+opt)
		if len(val) > 0 {
			c.Opts = append(c.Opts, val[0])
		}
	case len(val) == 0:
		c.Opts = append(c.Opts, "--"+opt)
	default:
		c.Opts = append(c.Opts, "--"+opt+"="+val[0])
	}
	return c
}

// Returns the front end path and the arguments it needs.
func (c *Conf) executable() (string, []string, error) {
	if c.Docutils != "" {
		name := filepath.Base(c.Docutils)
		for _, fe := range frontEnds {
			if fe.name == name {
				return c.Docutils, fe.args, nil
			}
		}
		return c.Docutils, nil, nil
	}
	var dir string
	if this, err := os.Executable(); err == nil {
		dir = filepath.Dir(this)
	}
	for _, fe := range frontEnds {
		if dir != "" {
			path, err := exec.LookPath(filepath.Join(dir, fe.name))
			if err == nil || errors.Is(err, exec.ErrDot) {
				return path, fe.args, nil
			}
		}
		if path, err := exec.LookPath(fe.name); err == nil {
			return path, fe.args, nil
		}
	}
	return "", nil, ErrParserNotFound
}

func (c *Conf) loadCmd(files ...string) (*exec.Cmd, error) {
	path, args, err := c.executable()
	if err != nil {
		return nil, err
	}
	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	argv := append([]string{filepath.Base(path)}, args...)
	argv = append(argv, c.Opts...)
	return &exec.Cmd{
		Path:   path,
		Dir:    c.Dir,
		Args:   append(argv, files...),
		Stderr: stderr,
	}, nil
}

// Reads the front end output and waits for it to finish.
func readCmd(cmd *exec.Cmd, op io.ReadCloser) (*Node, error) {
	doc, err := ReadFrom(op)
	if err != nil {
		_, _ = io.Copy(io.Discard, op)
		_ = cmd.Wait()
		return nil, err
	}
	if err = cmd.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Args[0], err)
	}
	return doc, nil
}

// Parses reStructuredText read from r.
func LoadFrom(r io.Reader, conf Conf) (*Node, error) {
	cmd, err := conf.loadCmd()
	if err != nil {
		return nil, err
	}
	ip, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	op, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	go func() {
		_, _ = io.Copy(ip, r)
		_ = ip.Close()
	}()
	return readCmd(cmd, op)
}

// Parses a reStructuredText file.
func LoadFile(f string, conf Conf) (*Node, error) {
	cmd, err := conf.loadCmd(f)
	if err != nil {
		return nil, err
	}
	op, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return readCmd(cmd, op)
}
