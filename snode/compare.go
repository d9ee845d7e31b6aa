package snode

import (
	"math"
	"reflect"
)

// Equal reports whether a and b have the same type names and values,
// recursively.  Mapping members must appear in the same order.  NaN
// leaves of the same Go type are equal.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind != b.kind || a.typ != b.typ {
		return false
	}
	switch a.kind {
	case SequenceKind:
		return equalElems(a.elems, b.elems)
	case MappingKind:
		return equalMembers(a.members, b.members)
	}
	return equalPrim(a.prim, b.prim)
}

func equalPrim(a, b any) bool {
	if a == b {
		return true
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(va.Float()) && math.IsNaN(vb.Float())
	}
	return false
}

func equalElems(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalMembers(a, b []Member) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key {
			return false
		}
		if !Equal(a[i].Node, b[i].Node) {
			return false
		}
	}
	return true
}
