// Package snode provides serialization nodes and their shadow trees.
//
// # Overview
//
// A serialization node tree is an explicit tagged representation of a Go
// value: every node pairs the runtime type name of the value it was built
// from with that value, recursively.  It is an in-memory intermediate
// representation only; snode neither encodes nodes to a wire format nor
// rebuilds Go values from them.
//
// # Node Structure
//
// A Node has a Kind:
//
//   - UndefinedKind, NullKind: no value and no type name
//   - StringKind, NumberKind, BoolKind: a primitive value
//   - SequenceKind: an ordered list of nodes
//   - MappingKind: an ordered list of distinct keys, each with a node
//
// Nodes are immutable.  They are created by From:
//
//	node, err := snode.From(snode.Doc{
//	    {Key: "a", Value: "Hello World"},
//	    {Key: "b", Value: []string{"x", "y"}},
//	})
//	node.Type()                // "Object"
//	a, _ := node.Field("a")    // String("Hello World")
//
// # Type Names
//
// Values of predeclared and unnamed types get the names "String",
// "Number", "Boolean", "Array" and "Object".  Values of defined types,
// structs in particular, get the name of their type.  Values implementing
// encoding.TextMarshaler become strings named after their type.  Struct
// fields may be renamed or omitted with a `backloop:"field=name"` or
// `backloop:"omit"` tag.
//
// Go has no undefined value, so the Undefined sentinel stands for it; nil
// pointers, maps, slices and interfaces map to null.
//
// # Shadow Trees
//
// CreateBackloopReference builds a shadow tree of placeholders (Ref)
// parallel to a node tree, and a Resolver mapping each placeholder back to
// its node by identity:
//
//	tree, resolver := node.CreateBackloopReference()
//	b1, err := resolver.Resolve(tree.Field("b").Index(1)) // String("y")
//
// Placeholders carry no data, so they may be handed to code which should
// navigate the structure of a tree without seeing its values.  A Resolver
// only resolves placeholders built alongside it; any other placeholder
// yields ErrReferenceNotFound.
//
// # Paths
//
// Both trees can be navigated by kinded path, see package kpath:
//
//	n, err := node.GetKPath("b[1]")
//	ref, err := tree.Get("b[1]")
//
// # Related Packages
//
//   - github.com/signadot/backloop/kpath - kinded paths
//   - github.com/signadot/backloop/encode - text rendering of node and shadow trees
package snode
