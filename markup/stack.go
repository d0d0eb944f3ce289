package markup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStackUnderflow is wrapped by the StackError an ElemStack panics with.
var ErrStackUnderflow = errors.New("element stack underflow")

// StackError describes a misuse of an ElemStack: committing without an
// open frame or popping more fragments than the frame holds.
type StackError struct {
	Op   string
	Need int
	Have int
}

func (e *StackError) Error() string {
	return fmt.Sprintf("%s: %s needs %d, has %d", ErrStackUnderflow, e.Op, e.Need, e.Have)
}

func (e *StackError) Unwrap() error { return ErrStackUnderflow }

// a fragment with the indentation synthesized around it
type entry struct {
	lead  string
	frag  Fragment
	trail string
}

// ElemStack accumulates the children of the elements being built. Every
// Begin opens a frame; Commit folds the top frame into one element and
// appends it to the frame below.
//
// The stack is created with a root frame that is never committed; Root
// returns its content. Misuse panics with a *StackError.
type ElemStack struct {
	frames [][]entry
	level  int
	indent bool
	width  int
}

// Makes a stack. When indent is true, every fragment appended with
// indentation gets a newline and width spaces per nesting level before
// it and the closing-tag indentation after it.
func NewElemStack(indent bool, width int) *ElemStack {
	return &ElemStack{
		frames: [][]entry{nil},
		level:  1,
		indent: indent,
		width:  max(width, 0),
	}
}

// Opens a new frame.
func (s *ElemStack) Begin() {
	s.frames = append(s.frames, nil)
	s.level++
}

// Appends a fragment to the top frame.
func (s *ElemStack) Append(f Fragment, indent bool) {
	e := entry{frag: f}
	if indent && s.indent {
		e.lead = "\n" + strings.Repeat(" ", s.width*s.level)
		e.trail = "\n" + strings.Repeat(" ", s.width*max(s.level-1, 0))
	}
	top := len(s.frames) - 1
	s.frames[top] = append(s.frames[top], e)
}

// Closes the top frame into an element named name and appends the
// element to the frame below.
func (s *ElemStack) Commit(name string, attrs Attrs, indent bool) *Element {
	if len(s.frames) < 2 {
		panic(&StackError{Op: "commit <" + name + ">", Need: 2, Have: len(s.frames)})
	}
	top := len(s.frames) - 1
	el := &Element{Name: name, Attrs: attrs, Children: flatten(s.frames[top])}
	s.frames = s.frames[:top]
	s.level--
	s.Append(el, indent)
	return el
}

// Removes the last n fragments from the top frame and returns them
// without their indentation.
func (s *ElemStack) Pop(n int) []Fragment {
	top := len(s.frames) - 1
	if n > len(s.frames[top]) {
		panic(&StackError{Op: "pop", Need: n, Have: len(s.frames[top])})
	}
	rest := len(s.frames[top]) - n
	out := make([]Fragment, 0, n)
	for _, e := range s.frames[top][rest:] {
		out = append(out, e.frag)
	}
	s.frames[top] = s.frames[top][:rest]
	return out
}

// Number of fragments in the top frame.
func (s *ElemStack) Len() int {
	return len(s.frames[len(s.frames)-1])
}

// Number of open frames above the root frame.
func (s *ElemStack) Depth() int {
	return len(s.frames) - 1
}

// Returns the content of the root frame.
func (s *ElemStack) Root() []Fragment {
	return flatten(s.frames[0])
}

func flatten(entries []entry) []Fragment {
	out := make([]Fragment, 0, len(entries))
	for _, e := range entries {
		if e.lead != "" {
			out = append(out, Text(e.lead))
		}
		out = append(out, e.frag)
		if e.trail != "" {
			out = append(out, Text(e.trail))
		}
	}
	return out
}
