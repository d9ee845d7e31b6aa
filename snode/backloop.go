package snode

import (
	"fmt"

	"github.com/signadot/backloop/debug"
)

// Resolver maps the placeholders of one shadow tree back to the nodes they
// stand for.  It is read only once built and may be used concurrently.
type Resolver struct {
	nodes map[*Ref]*Node
}

// CreateBackloopReference builds the shadow tree of n and the Resolver for
// its placeholders.
//
// Every node below n, n included, gets exactly one freshly allocated
// placeholder, and every placeholder reachable from the returned root
// resolves to the node at the same position.  Placeholders are keyed by
// identity, so those from another call, even on an equal tree, do not
// resolve.  n is not modified.
func (n *Node) CreateBackloopReference() (*Ref, *Resolver) {
	r := &Resolver{nodes: make(map[*Ref]*Node)}
	tree := r.createReference(n)
	if debug.Refs() {
		debug.Logf("backloop %s: %d placeholders\n", n, len(r.nodes))
	}
	return tree, r
}

// createReference builds the placeholder of n after those of its children,
// so that when it returns n and all its descendants are registered.
func (r *Resolver) createReference(n *Node) *Ref {
	var ref *Ref
	switch n.kind {
	case SequenceKind:
		ref = &Ref{shape: sequenceShape, elems: make([]*Ref, len(n.elems))}
		for i, elem := range n.elems {
			ref.elems[i] = r.createReference(elem)
		}
	case MappingKind:
		ref = &Ref{
			shape:  mappingShape,
			keys:   make([]string, len(n.members)),
			fields: make(map[string]*Ref, len(n.members)),
		}
		for i, m := range n.members {
			ref.keys[i] = m.Key
			ref.fields[m.Key] = r.createReference(m.Node)
		}
	default:
		ref = &Ref{shape: leafShape}
	}
	r.nodes[ref] = n
	return ref
}

// Resolve returns the node ref stands for.  It fails with an error
// wrapping ErrReferenceNotFound if ref was not produced alongside r.
func (r *Resolver) Resolve(ref *Ref) (*Node, error) {
	n, ok := r.nodes[ref]
	if !ok {
		if debug.Resolve() {
			debug.Logf("resolve %p: not found among %d\n", ref, len(r.nodes))
		}
		if ref == nil {
			return nil, fmt.Errorf("%w: nil placeholder", ErrReferenceNotFound)
		}
		return nil, fmt.Errorf("%w: placeholder %p", ErrReferenceNotFound, ref)
	}
	if debug.Resolve() {
		debug.Logf("resolve %p: %s\n", ref, n)
	}
	return n, nil
}

// MustResolve is like Resolve but panics on error.
func (r *Resolver) MustResolve(ref *Ref) *Node {
	n, err := r.Resolve(ref)
	if err != nil {
		panic(err)
	}
	return n
}

// ResolveKPath resolves the placeholder at kinded path kp below root.
func (r *Resolver) ResolveKPath(root *Ref, kp string) (*Node, error) {
	ref, err := root.Get(kp)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ref)
}

// Len returns the number of placeholders r knows about.
func (r *Resolver) Len() int {
	return len(r.nodes)
}
