package tagtree

import (
	"errors"
	"fmt"
)

// ErrMalformedHierarchy is returned by Build when the element stream does not
// describe a valid tree.
var ErrMalformedHierarchy = errors.New("malformed element hierarchy")

// HierarchyError reports the position of the offending element.
type HierarchyError struct {
	Index  int // position in the input stream
	Depth  int // depth carried by the element
	Parent int // depth of the element before it, -1 at the start
	Reason string
}

func (e *HierarchyError) Error() string {
	return fmt.Sprintf("%s: element %d at depth %d: %s", ErrMalformedHierarchy, e.Index, e.Depth, e.Reason)
}

func (e *HierarchyError) Unwrap() error {
	return ErrMalformedHierarchy
}
