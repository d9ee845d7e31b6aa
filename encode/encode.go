package encode

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/backloop/kpath"
	"github.com/signadot/backloop/snode"
)

type EncState struct {
	depth, indent int
	types         bool

	Color func(snode.Kind, ColorAttr, string) string
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{
		indent: 2,
		types:  true,
	}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

func (es *EncState) color(k snode.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

// Encode writes an indented rendering of node tree n to w, one node per
// line, each node written as its type name followed by its value:
//
//	Object {
//	  a: String "Hello World"
//	  b: Array [
//	    String "x"
//	  ]
//	  e: null
//	}
func Encode(n *snode.Node, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	if err := encode(n, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func encode(n *snode.Node, w io.Writer, es *EncState) error {
	k := n.Kind()
	if err := writeString(w, header(n, es)); err != nil {
		return err
	}
	switch k {
	case snode.SequenceKind:
		if n.Len() == 0 {
			return writeString(w, es.color(k, SepColor, "[]"))
		}
		if err := writeString(w, es.color(k, SepColor, "[")+"\n"); err != nil {
			return err
		}
		es.depth++
		for _, elem := range n.Elems() {
			if err := writeString(w, es.pad()); err != nil {
				return err
			}
			if err := encode(elem, w, es); err != nil {
				return err
			}
			if err := writeString(w, "\n"); err != nil {
				return err
			}
		}
		es.depth--
		return writeString(w, es.pad()+es.color(k, SepColor, "]"))

	case snode.MappingKind:
		if n.Len() == 0 {
			return writeString(w, es.color(k, SepColor, "{}"))
		}
		if err := writeString(w, es.color(k, SepColor, "{")+"\n"); err != nil {
			return err
		}
		es.depth++
		for _, m := range n.Members() {
			field := es.color(k, FieldColor, kpath.QuoteField(m.Key)) + es.color(k, SepColor, ":") + " "
			if err := writeString(w, es.pad()+field); err != nil {
				return err
			}
			if err := encode(m.Node, w, es); err != nil {
				return err
			}
			if err := writeString(w, "\n"); err != nil {
				return err
			}
		}
		es.depth--
		return writeString(w, es.pad()+es.color(k, SepColor, "}"))
	}
	return writeString(w, es.color(k, ValueColor, leafValue(n)))
}

// header returns the type name prefix of n, empty for untyped nodes or
// when types are not written.
func header(n *snode.Node, es *EncState) string {
	if !es.types || !n.HasType() {
		return ""
	}
	return es.color(n.Kind(), TypeColor, n.Type()) + " "
}

func leafValue(n *snode.Node) string {
	switch n.Kind() {
	case snode.UndefinedKind:
		return "undefined"
	case snode.NullKind:
		return "null"
	case snode.StringKind:
		if s, ok := n.Primitive().(string); ok {
			return strconv.Quote(s)
		}
		return fmt.Sprintf("%q", n.Primitive())
	}
	return fmt.Sprintf("%v", n.Primitive())
}

func (es *EncState) pad() string {
	return strings.Repeat(" ", es.depth*es.indent)
}

// EncodeRefs writes one line per placeholder of the shadow tree rooted at
// ref, in depth first pre-order, giving its kinded path ("$" for the root)
// and the type of the node res resolves it to.
func EncodeRefs(ref *snode.Ref, res *snode.Resolver, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	return ref.Visit(func(path string, r *snode.Ref) error {
		n, err := res.Resolve(r)
		if err != nil {
			return fmt.Errorf("placeholder at %q: %w", path, err)
		}
		if path == "" {
			path = "$"
		}
		line := es.pad() + es.color(n.Kind(), PathColor, path) + " " + es.color(n.Kind(), SepColor, "->") + " "
		if n.HasType() {
			line += es.color(n.Kind(), TypeColor, n.Type())
		} else {
			line += es.color(n.Kind(), ValueColor, n.Kind().String())
		}
		return writeString(w, line+"\n")
	})
}

// MustString returns the rendering of n without the trailing newline.
func MustString(n *snode.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(n, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
