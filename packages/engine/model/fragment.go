package model

import (
	"errors"
	"fmt"
)

// ErrCyclicStructure reports a fragment whose element graph is not a tree.
// Such fragments come from misbehaving front-end parsers; the resolution
// engine skips them instead of failing the whole merge.
var ErrCyclicStructure = errors.New("fragment structure contains a cycle")

// Fragment is one independently parsed structural model root, representing
// a single source file or component in isolation.
type Fragment struct {
	SourceID string
	Root     *Element
}

// NewFragment creates a fragment from a parsed root element. It wires the
// non-owning parent back-references and rejects cyclic structures.
func NewFragment(sourceID string, root *Element) (*Fragment, error) {
	if root == nil {
		return nil, fmt.Errorf("fragment %q: nil root element", sourceID)
	}
	if err := wireParents(root, nil, map[*Element]bool{}); err != nil {
		return nil, fmt.Errorf("fragment %q: %w", sourceID, err)
	}
	return &Fragment{SourceID: sourceID, Root: root}, nil
}

func wireParents(el *Element, parent *Element, seen map[*Element]bool) error {
	if seen[el] {
		return ErrCyclicStructure
	}
	seen[el] = true
	el.Parent = parent
	for _, child := range el.Children {
		if childEl, ok := child.(*Element); ok {
			if err := wireParents(childEl, el, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// Validate re-checks the fragment's structure. The resolution engine calls
// this on every input fragment so one malformed fragment degrades the run
// instead of corrupting it.
func (f *Fragment) Validate() error {
	if f.Root == nil {
		return fmt.Errorf("fragment %q: nil root element", f.SourceID)
	}
	seen := map[*Element]bool{}
	var walk func(el *Element) error
	walk = func(el *Element) error {
		if seen[el] {
			return ErrCyclicStructure
		}
		seen[el] = true
		for _, child := range el.Children {
			if childEl, ok := child.(*Element); ok {
				if err := walk(childEl); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(f.Root); err != nil {
		return fmt.Errorf("fragment %q: %w", f.SourceID, err)
	}
	return nil
}

// Elements returns every element of the fragment in document order.
func (f *Fragment) Elements() []*Element {
	var out []*Element
	WalkElements(f.Root, func(el *Element) bool {
		out = append(out, el)
		return true
	})
	return out
}

// ElementByID returns the first element carrying the given id, or nil.
func (f *Fragment) ElementByID(id string) *Element {
	var found *Element
	WalkElements(f.Root, func(el *Element) bool {
		if el.ID() == id {
			found = el
			return false
		}
		return true
	})
	return found
}
