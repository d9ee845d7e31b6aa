package snode

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/signadot/backloop/kpath"
)

// SkipChildren may be returned by a Visit callback to skip the children
// of the node being visited.
var SkipChildren = errors.New("skip children")

// GetKPath returns the node at kinded path kp below n.  The empty path
// denotes n itself.
func (n *Node) GetKPath(kp string) (*Node, error) {
	p, err := kpath.Parse(kp)
	if err != nil {
		return nil, err
	}
	return n.Get(p)
}

// Get is like GetKPath with a parsed path.
func (n *Node) Get(p *kpath.KPath) (*Node, error) {
	res := n
	var at *kpath.KPath
	for x := p; x != nil; x = x.Next {
		seg := &kpath.KPath{Field: x.Field, Index: x.Index}
		at = at.Append(seg)
		switch {
		case x.Index != nil:
			if res.kind != SequenceKind {
				return nil, fmt.Errorf("%w: %s: expected sequence, got %s", ErrPathNotFound, at, res.kind)
			}
			next := res.Elem(*x.Index)
			if next == nil {
				return nil, fmt.Errorf("%w: %s: index out of bounds (len %d)", ErrPathNotFound, at, len(res.elems))
			}
			res = next
		case x.Field != nil:
			if res.kind != MappingKind {
				return nil, fmt.Errorf("%w: %s: expected mapping, got %s", ErrPathNotFound, at, res.kind)
			}
			next, ok := res.Field(*x.Field)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, at)
			}
			res = next
		}
	}
	return res, nil
}

// Visit calls f for n and each of its descendants in depth first pre-order,
// passing the kinded path of each node relative to n.  If f returns
// SkipChildren the node's children are not visited; any other error stops
// the walk and is returned.
func (n *Node) Visit(f func(path string, node *Node) error) error {
	return n.visit("", f)
}

func (n *Node) visit(path string, f func(string, *Node) error) error {
	if err := f(path, n); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	switch n.kind {
	case SequenceKind:
		for i, elem := range n.elems {
			if err := elem.visit(path+"["+strconv.Itoa(i)+"]", f); err != nil {
				return err
			}
		}
	case MappingKind:
		for _, m := range n.members {
			if err := m.Node.visit(joinField(path, m.Key), f); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinField(path, key string) string {
	if path == "" {
		return kpath.QuoteField(key)
	}
	return path + "." + kpath.QuoteField(key)
}
