package snode

import (
	"cmp"
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/backloop/debug"
	"github.com/signadot/backloop/kpath"
)

// KeyValue is one entry of a Doc.
type KeyValue struct {
	Key   string
	Value any
}

// Doc is an ordered collection of key/value pairs.  From maps a Doc to an
// "Object" mapping node whose keys keep the Doc's order, which plain Go maps
// cannot provide.
type Doc []KeyValue

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined is the absent value.  From maps it to an undefined node, which
// is distinct from the null node that nil maps to.
var Undefined any = undefined{}

var (
	docType          = reflect.TypeFor[Doc]()
	undefinedType    = reflect.TypeFor[undefined]()
	textMarshalerTyp = reflect.TypeFor[encoding.TextMarshaler]()
)

// From builds the serialization node tree of v.
//
// Strings, numbers and booleans become leaves tagged "String", "Number" and
// "Boolean"; slices and arrays become "Array" sequences; maps and Docs
// become "Object" mappings; structs become mappings tagged with the struct
// type name.  Values of defined types are tagged with the type's name.  nil
// maps to a null node and Undefined to an undefined node, both untyped.
//
// From fails with ErrUnsupportedKind for functions, channels, unsafe
// pointers, complex numbers and maps whose keys are neither strings nor
// integers, and with ErrCycle for pointers, maps and slices which
// reference themselves.
func From(v any) (*Node, error) {
	m := &mapper{visited: map[visitKey]string{}}
	node, err := m.from(reflect.ValueOf(v), nil)
	if err != nil {
		if debug.From() {
			debug.Logf("from %T: %v\n", v, err)
		}
		return nil, err
	}
	if debug.From() {
		debug.Logf("from %T: %s\n", v, node)
	}
	return node, nil
}

// MustFrom is like From but panics on error.
func MustFrom(v any) *Node {
	node, err := From(v)
	if err != nil {
		panic(err)
	}
	return node
}

type mapper struct {
	// visited tracks the pointers, maps and slices being mapped on the
	// current branch, with the path where they were first seen.
	visited map[visitKey]string
}

// visitKey includes the type so that a struct and its first field, which
// share an address, are told apart.
type visitKey struct {
	addr uintptr
	typ  reflect.Type
}

func (m *mapper) from(val reflect.Value, path *kpath.KPath) (*Node, error) {
	if !val.IsValid() {
		return newNull(), nil
	}
	typ := val.Type()
	if typ == undefinedType {
		return newUndefined(), nil
	}

	switch typ.Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			return newNull(), nil
		}
		if tm, ok := textMarshaler(val); ok {
			return m.fromText(tm, typ.Elem(), path)
		}
		return m.enter(val, path, func() (*Node, error) {
			return m.from(val.Elem(), path)
		})
	case reflect.Interface:
		if val.IsNil() {
			return newNull(), nil
		}
		return m.from(val.Elem(), path)
	}

	if tm, ok := textMarshaler(val); ok {
		return m.fromText(tm, typ, path)
	}

	switch typ.Kind() {
	case reflect.String:
		return newLeaf(typeName(typ, StringTypeName), StringKind, primitive(val)), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return newLeaf(typeName(typ, NumberTypeName), NumberKind, primitive(val)), nil

	case reflect.Bool:
		return newLeaf(typeName(typ, BooleanTypeName), BoolKind, primitive(val)), nil

	case reflect.Slice:
		if val.IsNil() {
			return newNull(), nil
		}
		f := func() (*Node, error) {
			if typ == docType {
				return m.fromDoc(val, path)
			}
			return m.fromSequence(val, path)
		}
		if val.Len() == 0 {
			return f()
		}
		return m.enter(val, path, f)

	case reflect.Array:
		return m.fromSequence(val, path)

	case reflect.Map:
		if val.IsNil() {
			return newNull(), nil
		}
		return m.enter(val, path, func() (*Node, error) {
			return m.fromMap(val, path)
		})

	case reflect.Struct:
		members, err := m.structMembers(val, path, nil)
		if err != nil {
			return nil, err
		}
		return newMapping(typeName(typ, ObjectTypeName), members), nil
	}

	return nil, &MapError{
		Path:    path.String(),
		Message: fmt.Sprintf("cannot map %s", typ),
		Err:     ErrUnsupportedKind,
	}
}

// enter maps a pointer, map or slice value, failing if it is already being
// mapped further up the current branch.  The same value may appear on
// distinct branches.
func (m *mapper) enter(val reflect.Value, path *kpath.KPath, f func() (*Node, error)) (*Node, error) {
	addr := visitKey{addr: val.Pointer(), typ: val.Type()}
	if prev, seen := m.visited[addr]; seen {
		return nil, &MapError{
			Path:    path.String(),
			Message: fmt.Sprintf("%s refers back to %q", val.Type(), prev),
			Err:     ErrCycle,
		}
	}
	m.visited[addr] = path.String()
	node, err := f()
	delete(m.visited, addr)
	return node, err
}

func (m *mapper) fromSequence(val reflect.Value, path *kpath.KPath) (*Node, error) {
	n := val.Len()
	elems := make([]*Node, n)
	for i := range n {
		elem, err := m.from(val.Index(i), path.Append(kpath.Index(i)))
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}
	return newSequence(typeName(val.Type(), ArrayTypeName), elems), nil
}

// fromDoc maps a Doc, read through reflection as it may have been reached
// through an unexported field.
func (m *mapper) fromDoc(val reflect.Value, path *kpath.KPath) (*Node, error) {
	n := val.Len()
	members := make([]Member, 0, n)
	seen := make(map[string]bool, n)
	for i := range n {
		kv := val.Index(i)
		key := kv.Field(0).String()
		childPath := path.Append(kpath.Field(key))
		if seen[key] {
			return nil, &MapError{
				Path:    childPath.String(),
				Message: fmt.Sprintf("key %q appears more than once", key),
				Err:     ErrDuplicateKey,
			}
		}
		seen[key] = true
		node, err := m.from(kv.Field(1), childPath)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Key: key, Node: node})
	}
	return newMapping(ObjectTypeName, members), nil
}

func (m *mapper) fromMap(val reflect.Value, path *kpath.KPath) (*Node, error) {
	typ := val.Type()
	var compare func(a, b reflect.Value) int
	switch typ.Key().Kind() {
	case reflect.String:
		compare = func(a, b reflect.Value) int { return cmp.Compare(a.String(), b.String()) }
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		compare = func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		compare = func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) }
	default:
		return nil, &MapError{
			Path:    path.String(),
			Message: fmt.Sprintf("cannot map %s: key type %s", typ, typ.Key()),
			Err:     ErrUnsupportedKind,
		}
	}
	keys := val.MapKeys()
	slices.SortFunc(keys, compare)

	members := make([]Member, len(keys))
	for i, k := range keys {
		key := mapKeyString(k)
		node, err := m.from(val.MapIndex(k), path.Append(kpath.Field(key)))
		if err != nil {
			return nil, err
		}
		members[i] = Member{Key: key, Node: node}
	}
	return newMapping(typeName(typ, ObjectTypeName), members), nil
}

func mapKeyString(k reflect.Value) string {
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	default:
		return strconv.FormatUint(k.Uint(), 10)
	}
}

// structMembers appends the members of struct value val to dst, flattening
// embedded structs in place.
func (m *mapper) structMembers(val reflect.Value, path *kpath.KPath, dst []Member) ([]Member, error) {
	typ := val.Type()
	fields, err := structFields(typ)
	if err != nil {
		return nil, &MapError{Path: path.String(), Message: err.Error(), Err: err}
	}
	for _, f := range fields {
		fv := val.Field(f.index)
		if f.embedded {
			if fv.Kind() != reflect.Pointer {
				dst, err = m.structMembers(fv, path, dst)
			} else if !fv.IsNil() {
				_, err = m.enter(fv, path, func() (*Node, error) {
					var err error
					dst, err = m.structMembers(fv.Elem(), path, dst)
					return nil, err
				})
			}
			if err != nil {
				return nil, err
			}
			continue
		}
		childPath := path.Append(kpath.Field(f.name))
		if slices.ContainsFunc(dst, func(mb Member) bool { return mb.Key == f.name }) {
			return nil, &MapError{
				Path:    childPath.String(),
				Message: fmt.Sprintf("field name conflict in %s: %q", typ, f.name),
				Err:     ErrDuplicateKey,
			}
		}
		node, err := m.from(fv, childPath)
		if err != nil {
			return nil, err
		}
		dst = append(dst, Member{Key: f.name, Node: node})
	}
	return dst, nil
}

func (m *mapper) fromText(tm encoding.TextMarshaler, typ reflect.Type, path *kpath.KPath) (*Node, error) {
	text, err := tm.MarshalText()
	if err != nil {
		return nil, &MapError{
			Path:    path.String(),
			Message: fmt.Sprintf("MarshalText on %s: %v", typ, err),
			Err:     err,
		}
	}
	return newLeaf(typeName(typ, StringTypeName), StringKind, string(text)), nil
}

// textMarshaler returns val as an encoding.TextMarshaler, also trying
// val's address for pointer receivers.
func textMarshaler(val reflect.Value) (encoding.TextMarshaler, bool) {
	if !val.CanInterface() {
		return nil, false
	}
	if !val.Type().Implements(textMarshalerTyp) {
		if val.Kind() == reflect.Pointer || !val.CanAddr() || !reflect.PointerTo(val.Type()).Implements(textMarshalerTyp) {
			return nil, false
		}
		val = val.Addr()
	}
	if val.Kind() == reflect.Pointer && val.IsNil() {
		return nil, false
	}
	tm, ok := val.Interface().(encoding.TextMarshaler)
	return tm, ok
}

// typeName returns the name of defined type typ, without type arguments,
// or def for predeclared and unnamed types.
func typeName(typ reflect.Type, def string) string {
	if typ.PkgPath() == "" || typ.Name() == "" {
		return def
	}
	name, _, _ := strings.Cut(typ.Name(), "[")
	return name
}

// primitive returns the value held by val with val's own type when
// possible, falling back to the underlying predeclared type for values read
// through unexported fields.
func primitive(val reflect.Value) any {
	if val.CanInterface() {
		return val.Interface()
	}
	switch val.Kind() {
	case reflect.String:
		return val.String()
	case reflect.Bool:
		return val.Bool()
	case reflect.Float32, reflect.Float64:
		return val.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int()
	default:
		return val.Uint()
	}
}
