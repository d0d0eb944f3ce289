package rst2html5

// WalkResult is the result of a walk operation.
type WalkResult int

const (
	// WalkContinue indicates that the walk operation should continue.
	WalkContinue WalkResult = iota
	// WalkSkip indicates that the current node's children and its Exit
	// call should be skipped.
	WalkSkip
	// WalkSkipExit indicates that the children should be visited but the
	// current node's Exit call should be skipped.
	WalkSkipExit
	// WalkStop indicates that the walk operation should stop immediately.
	WalkStop
)

func (r WalkResult) String() string {
	switch r {
	case WalkContinue:
		return "continue"
	case WalkSkip:
		return "skip"
	case WalkSkipExit:
		return "skip-exit"
	case WalkStop:
		return "stop"
	}
	return "unknown"
}

// Visitor receives paired Enter and Exit calls from Walk.
type Visitor interface {
	// Enter is called before the node's children are visited.
	Enter(n *Node) (WalkResult, error)
	// Exit is called after the node's children were visited, unless
	// Enter returned WalkSkip or WalkSkipExit.
	Exit(n *Node) error
}

// Walk traverses the tree rooted at n depth-first, calling v.Enter on the
// way down and v.Exit on the way up. A non-nil error returned by the
// visitor stops the walk and is returned.
//
// Example:
//
//	err := rst2html5.Walk(doc, visitor)
func Walk(n *Node, v Visitor) error {
	_, err := walk(n, v)
	return err
}

func walk(n *Node, v Visitor) (bool, error) {
	res, err := v.Enter(n)
	if err != nil {
		return true, err
	}
	switch res {
	case WalkStop:
		return true, nil
	case WalkSkip:
		return false, nil
	}
	for _, c := range n.Children {
		if stop, err := walk(c, v); stop || err != nil {
			return true, err
		}
	}
	if res == WalkSkipExit {
		return false, nil
	}
	if err := v.Exit(n); err != nil {
		return true, err
	}
	return false, nil
}

// Query applies the specified function 'fun' to each descendant of the
// node 'n' in document order. The function is not applied to 'n' itself.
//
// The function 'fun' returns a WalkResult to control the traversal process:
//
//   - WalkStop: Terminates the traversal process immediately.
//   - WalkSkip: Skips the children of the current node.
//   - WalkContinue, WalkSkipExit: Continues to the next node.
//
// Example:
//
//	var sections int
//	rst2html5.Query(doc, func(n *rst2html5.Node) rst2html5.WalkResult {
//	    if n.Is(rst2html5.SectionTag) {
//	        sections++
//	    }
//	    return rst2html5.WalkContinue
//	})
func Query(n *Node, fun func(*Node) WalkResult) {
	queryChildren(n, fun)
}

func queryChildren(n *Node, fun func(*Node) WalkResult) bool {
	for _, c := range n.Children {
		switch fun(c) {
		case WalkStop:
			return true
		case WalkSkip:
			continue
		}
		if queryChildren(c, fun) {
			return true
		}
	}
	return false
}

// Find returns the first descendant of n of one of the given kinds, or nil.
func Find(n *Node, tags ...Tag) *Node {
	var found *Node
	Query(n, func(c *Node) WalkResult {
		if c.Is(tags...) {
			found = c
			return WalkStop
		}
		return WalkContinue
	})
	return found
}
