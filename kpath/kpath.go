package kpath

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is wrapped by every error returned from Parse.
var ErrSyntax = errors.New("kpath syntax error")

// KPath represents a kinded path.  Kinded paths encode the kind of each
// step in the path syntax itself:
//   - "a.b" → mapping accessed via ".b"
//   - "a[0]" → sequence accessed via "[0]"
//   - `a."b c"` → mapping accessed via a quoted field
//
// Exactly one of Field and Index is set on each segment.
type KPath struct {
	Field *string // mapping key
	Index *int    // sequence index
	Next  *KPath  // nil for the last segment
}

// Field returns a single segment path selecting the mapping key name.
func Field(name string) *KPath {
	return &KPath{Field: &name}
}

// Index returns a single segment path selecting sequence element i.
func Index(i int) *KPath {
	return &KPath{Index: &i}
}

// String returns the kinded path string representation of p.
//
//	KPath{Field: &"a", Next: &KPath{Field: &"b"}} → "a.b"
//	KPath{Field: &"a", Next: &KPath{Index: &0}} → "a[0]"
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(QuoteField(*x.Field))
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

// SegmentString returns the representation of p's first segment only.
func (p *KPath) SegmentString() string {
	if p == nil {
		return ""
	}
	if p.Field != nil {
		return QuoteField(*p.Field)
	}
	if p.Index != nil {
		return fmt.Sprintf("[%d]", *p.Index)
	}
	return ""
}

// Len returns the number of segments in p.
func (p *KPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// Append returns a copy of p with q's segments added at the end.
// Neither p nor q is modified.
func (p *KPath) Append(q *KPath) *KPath {
	if p == nil {
		return q.clone()
	}
	res := p.clone()
	last := res
	for last.Next != nil {
		last = last.Next
	}
	last.Next = q.clone()
	return res
}

func (p *KPath) clone() *KPath {
	if p == nil {
		return nil
	}
	res := &KPath{}
	if p.Field != nil {
		f := *p.Field
		res.Field = &f
	}
	if p.Index != nil {
		i := *p.Index
		res.Index = &i
	}
	res.Next = p.Next.clone()
	return res
}

// Parse parses a kinded path string into a KPath.
//
// Examples:
//   - "a.b.c" → 3 field segments
//   - "a[0][1]" → field then two indices
//   - "[2].name" → index then field
//   - `"field name".x` → quoted field then field
//   - "" → root path (nil, nil)
func Parse(kpath string) (*KPath, error) {
	if kpath == "" {
		return nil, nil
	}
	root := &KPath{}
	if err := parseFrag(kpath, root, true); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSyntax, kpath, err)
	}
	return root, nil
}

// MustParse is like Parse but panics on error.
func MustParse(kpath string) *KPath {
	p, err := Parse(kpath)
	if err != nil {
		panic(err)
	}
	return p
}

func parseFrag(frag string, parent *KPath, first bool) error {
	switch frag[0] {
	case '.':
		if first {
			return fmt.Errorf("unexpected leading '.'")
		}
		field, rest, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		return parseNext(rest, parent)
	case '[':
		i := strings.IndexByte(frag, ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, err := parseIndex(frag[1:i])
		if err != nil {
			return err
		}
		parent.Index = &index
		return parseNext(frag[i+1:], parent)
	default:
		if !first {
			return fmt.Errorf("expected '.' or '[', got %q", frag[0])
		}
		field, rest, err := parseField(frag)
		if err != nil {
			return err
		}
		parent.Field = &field
		return parseNext(rest, parent)
	}
}

func parseNext(rest string, parent *KPath) error {
	if len(rest) == 0 {
		return nil
	}
	next := &KPath{}
	if err := parseFrag(rest, next, false); err != nil {
		return err
	}
	parent.Next = next
	return nil
}

func parseIndex(is string) (int, error) {
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", is, err)
	}
	return int(u64), nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] == '"' {
		n, err := quotedEnd(frag)
		if err != nil {
			return "", "", err
		}
		field, err = strconv.Unquote(frag[:n])
		if err != nil {
			return "", "", fmt.Errorf("invalid quoted field %s: %w", frag[:n], err)
		}
		return field, frag[n:], nil
	}
	i := strings.IndexAny(frag, ".[]\"")
	if i == -1 {
		return frag, "", nil
	}
	if i == 0 || frag[i] == ']' || frag[i] == '"' {
		return "", "", fmt.Errorf("unexpected %q in field", frag[i])
	}
	return frag[:i], frag[i:], nil
}

// quotedEnd returns the length of the double quoted string prefixing d,
// closing quote included.
func quotedEnd(d string) (int, error) {
	escaped := false
	for i := 1; i < len(d); i++ {
		switch {
		case escaped:
			escaped = false
		case d[i] == '\\':
			escaped = true
		case d[i] == '"':
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unterminated quoted field")
}

// QuoteField returns f as it appears in a kinded path, quoting it if
// it is empty or contains path syntax, spaces or non-printable runes.
func QuoteField(f string) string {
	if needsQuote(f) {
		return strconv.Quote(f)
	}
	return f
}

func needsQuote(f string) bool {
	if f == "" {
		return true
	}
	for _, r := range f {
		switch r {
		case '.', '[', ']', '"', ' ', '\\':
			return true
		}
		if !strconv.IsPrint(r) {
			return true
		}
	}
	return false
}
