package snode

import (
	"errors"
	"fmt"
	"slices"

	"github.com/signadot/backloop/kpath"
)

type refShape uint8

const (
	leafShape refShape = iota
	sequenceShape
	mappingShape
)

// Ref is a placeholder in a shadow tree built by CreateBackloopReference.
//
// A Ref mirrors the shape of the node it stands for: sequence nodes yield
// a Ref whose elements are reached with Index, mapping nodes a Ref whose
// members are reached with Field, and leaves an empty Ref.  A Ref holds no
// reference to its node; only the Resolver built alongside it can map it
// back.  Refs are compared by pointer identity, so two empty Refs are never
// interchangeable.
//
// All methods accept a nil receiver, so chains such as
// ref.Field("a").Index(2) never panic; a missing step yields nil, which
// no Resolver resolves.
type Ref struct {
	shape  refShape
	elems  []*Ref
	keys   []string
	fields map[string]*Ref
}

// IsSequence reports whether r stands for a sequence node.
func (r *Ref) IsSequence() bool {
	return r != nil && r.shape == sequenceShape
}

// IsMapping reports whether r stands for a mapping node.
func (r *Ref) IsMapping() bool {
	return r != nil && r.shape == mappingShape
}

// IsEmpty reports whether r has no elements or members, as is the case
// for the placeholders of leaves and of empty composite nodes.
func (r *Ref) IsEmpty() bool {
	return r.Len() == 0
}

// Len returns the number of elements or members of r.
func (r *Ref) Len() int {
	if r == nil {
		return 0
	}
	switch r.shape {
	case sequenceShape:
		return len(r.elems)
	case mappingShape:
		return len(r.keys)
	}
	return 0
}

// Index returns the placeholder of element i, or nil.
func (r *Ref) Index(i int) *Ref {
	if !r.IsSequence() || i < 0 || i >= len(r.elems) {
		return nil
	}
	return r.elems[i]
}

// Field returns the placeholder of member key, or nil.
func (r *Ref) Field(key string) *Ref {
	if !r.IsMapping() {
		return nil
	}
	return r.fields[key]
}

// Keys returns the member keys of r in order.
func (r *Ref) Keys() []string {
	if !r.IsMapping() {
		return nil
	}
	return slices.Clone(r.keys)
}

// Get navigates from r along kinded path kp.  The empty path denotes r.
func (r *Ref) Get(kp string) (*Ref, error) {
	p, err := kpath.Parse(kp)
	if err != nil {
		return nil, err
	}
	res := r
	for x := p; x != nil; x = x.Next {
		var next *Ref
		switch {
		case x.Index != nil:
			next = res.Index(*x.Index)
		case x.Field != nil:
			next = res.Field(*x.Field)
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %q at %s", ErrPathNotFound, kp, x.SegmentString())
		}
		res = next
	}
	return res, nil
}

// MustGet is like Get but panics on error.
func (r *Ref) MustGet(kp string) *Ref {
	res, err := r.Get(kp)
	if err != nil {
		panic(err)
	}
	return res
}

// Visit calls f for r and each placeholder below it in depth first
// pre-order with the kinded path relative to r.
func (r *Ref) Visit(f func(path string, ref *Ref) error) error {
	return r.visit("", f)
}

func (r *Ref) visit(path string, f func(string, *Ref) error) error {
	if r == nil {
		return nil
	}
	if err := f(path, r); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	switch r.shape {
	case sequenceShape:
		for i, elem := range r.elems {
			if err := elem.visit(fmt.Sprintf("%s[%d]", path, i), f); err != nil {
				return err
			}
		}
	case mappingShape:
		for _, k := range r.keys {
			if err := r.fields[k].visit(joinField(path, k), f); err != nil {
				return err
			}
		}
	}
	return nil
}
