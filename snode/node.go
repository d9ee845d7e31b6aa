package snode

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind is the shape of a Node's value.
type Kind int

const (
	UndefinedKind Kind = iota
	NullKind
	StringKind
	NumberKind
	BoolKind
	SequenceKind
	MappingKind
)

var kindNames = [...]string{
	UndefinedKind: "undefined",
	NullKind:      "null",
	StringKind:    "string",
	NumberKind:    "number",
	BoolKind:      "bool",
	SequenceKind:  "sequence",
	MappingKind:   "mapping",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsLeaf reports whether nodes of kind k hold a primitive or no value.
func (k Kind) IsLeaf() bool {
	return k != SequenceKind && k != MappingKind
}

// Kinds returns all node kinds in declaration order.
func Kinds() []Kind {
	return []Kind{UndefinedKind, NullKind, StringKind, NumberKind, BoolKind, SequenceKind, MappingKind}
}

// Default type names given to values whose Go type is not a defined type.
const (
	StringTypeName  = "String"
	NumberTypeName  = "Number"
	BooleanTypeName = "Boolean"
	ArrayTypeName   = "Array"
	ObjectTypeName  = "Object"
)

// Member is one key of a mapping node.
type Member struct {
	Key  string
	Node *Node
}

// Node is an immutable serialization node: a runtime type name paired with
// a value which is a primitive, absent, an ordered sequence of nodes or an
// ordered mapping from keys to nodes.
//
// Nodes are only built by From and are never modified afterwards; every
// accessor returning a slice returns a copy.
type Node struct {
	typ     string
	kind    Kind
	prim    any
	elems   []*Node
	members []Member
	index   map[string]int
}

func newLeaf(typ string, kind Kind, prim any) *Node {
	return &Node{typ: typ, kind: kind, prim: prim}
}

func newUndefined() *Node {
	return &Node{kind: UndefinedKind}
}

func newNull() *Node {
	return &Node{kind: NullKind}
}

func newSequence(typ string, elems []*Node) *Node {
	if elems == nil {
		elems = []*Node{}
	}
	return &Node{typ: typ, kind: SequenceKind, elems: elems}
}

// newMapping takes ownership of members, which must have distinct keys.
func newMapping(typ string, members []Member) *Node {
	if members == nil {
		members = []Member{}
	}
	index := make(map[string]int, len(members))
	for i := range members {
		index[members[i].Key] = i
	}
	return &Node{typ: typ, kind: MappingKind, members: members, index: index}
}

// Type returns the runtime type name of the value n was built from, or ""
// if that value was null or undefined.
func (n *Node) Type() string {
	return n.typ
}

// HasType reports whether n carries a type name, which is the case for
// every node except null and undefined ones.
func (n *Node) HasType() bool {
	return n.typ != ""
}

func (n *Node) Kind() Kind {
	return n.kind
}

// IsLeaf reports whether n is a primitive, null or undefined node.
func (n *Node) IsLeaf() bool {
	return n.kind.IsLeaf()
}

// Primitive returns the primitive value of a leaf node.  It returns nil
// for null, undefined and composite nodes.
func (n *Node) Primitive() any {
	return n.prim
}

// Value returns n's value: the primitive for a leaf, nil for null and
// undefined, a copy of the elements for a sequence and a copy of the
// members for a mapping.
func (n *Node) Value() any {
	switch n.kind {
	case SequenceKind:
		return n.Elems()
	case MappingKind:
		return n.Members()
	default:
		return n.prim
	}
}

// Len returns the number of elements or members of a composite node, and 0
// for leaves.
func (n *Node) Len() int {
	switch n.kind {
	case SequenceKind:
		return len(n.elems)
	case MappingKind:
		return len(n.members)
	}
	return 0
}

// Elem returns element i of a sequence node, or nil if n is not a
// sequence or i is out of range.
func (n *Node) Elem(i int) *Node {
	if n.kind != SequenceKind || i < 0 || i >= len(n.elems) {
		return nil
	}
	return n.elems[i]
}

// Elems returns a copy of the elements of a sequence node, or nil.
func (n *Node) Elems() []*Node {
	if n.kind != SequenceKind {
		return nil
	}
	return slices.Clone(n.elems)
}

// Field returns the node stored under key in a mapping node.
func (n *Node) Field(key string) (*Node, bool) {
	if n.kind != MappingKind {
		return nil, false
	}
	i, ok := n.index[key]
	if !ok {
		return nil, false
	}
	return n.members[i].Node, true
}

// Keys returns the keys of a mapping node in order, or nil.
func (n *Node) Keys() []string {
	if n.kind != MappingKind {
		return nil
	}
	res := make([]string, len(n.members))
	for i := range n.members {
		res[i] = n.members[i].Key
	}
	return res
}

// Members returns a copy of the members of a mapping node, or nil.
func (n *Node) Members() []Member {
	if n.kind != MappingKind {
		return nil
	}
	return slices.Clone(n.members)
}

// String returns a compact one line description of n, such as
// `String("x")`, `Array[2]` or `Object{a, b}`.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case UndefinedKind:
		return "undefined"
	case NullKind:
		return "null"
	case StringKind:
		if s, ok := n.prim.(string); ok {
			return n.typ + "(" + strconv.Quote(s) + ")"
		}
		return fmt.Sprintf("%s(%q)", n.typ, n.prim)
	case NumberKind, BoolKind:
		return fmt.Sprintf("%s(%v)", n.typ, n.prim)
	case SequenceKind:
		return n.typ + "[" + strconv.Itoa(len(n.elems)) + "]"
	case MappingKind:
		return n.typ + "{" + strings.Join(n.Keys(), ", ") + "}"
	}
	return n.kind.String()
}
