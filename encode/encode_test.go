package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/backloop/snode"
)

func sample() *snode.Node {
	return snode.MustFrom(snode.Doc{
		{Key: "a", Value: "Hello World"},
		{Key: "b", Value: []string{"x", "y"}},
		{Key: "c", Value: snode.Doc{
			{Key: "d", Value: true},
			{Key: "e", Value: nil},
			{Key: "f", Value: snode.Undefined},
		}},
	})
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		node *snode.Node
		opts []EncodeOption
		want string
	}{
		{
			name: "sample",
			node: sample(),
			want: `Object {
  a: String "Hello World"
  b: Array [
    String "x"
    String "y"
  ]
  c: Object {
    d: Boolean true
    e: null
    f: undefined
  }
}
`,
		},
		{
			name: "no types",
			node: snode.MustFrom(snode.Doc{{Key: "n", Value: 1.5}, {Key: "s", Value: []int{}}}),
			opts: []EncodeOption{EncodeTypes(false)},
			want: "{\n  n: 1.5\n  s: []\n}\n",
		},
		{
			name: "indent",
			node: snode.MustFrom([]any{map[string]int{"k": 1}}),
			opts: []EncodeOption{EncodeIndent(4)},
			want: "Array [\n    Object {\n        k: Number 1\n    }\n]\n",
		},
		{
			name: "quoted keys",
			node: snode.MustFrom(snode.Doc{{Key: "a b", Value: "q\""}}),
			want: "Object {\n  \"a b\": String \"q\\\"\"\n}\n",
		},
		{
			name: "empty mapping",
			node: snode.MustFrom(snode.Doc{}),
			want: "Object {}\n",
		},
		{
			name: "null root",
			node: snode.MustFrom(nil),
			want: "null\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			if err := Encode(tt.node, buf, tt.opts...); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeRefs(t *testing.T) {
	tree, resolver := sample().CreateBackloopReference()
	buf := bytes.NewBuffer(nil)
	if err := EncodeRefs(tree, resolver, buf); err != nil {
		t.Fatalf("EncodeRefs() error = %v", err)
	}
	want := []string{
		"$ -> Object",
		"a -> String",
		"b -> Array",
		"b[0] -> String",
		"b[1] -> String",
		"c -> Object",
		"c.d -> Boolean",
		"c.e -> null",
		"c.f -> undefined",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EncodeRefs() mismatch (-want +got):\n%s", diff)
	}

	_, other := sample().CreateBackloopReference()
	if err := EncodeRefs(tree, other, bytes.NewBuffer(nil)); err == nil {
		t.Errorf("EncodeRefs() with a foreign resolver succeeded")
	}
}

func TestMustString(t *testing.T) {
	if got := MustString(snode.MustFrom(true)); got != "Boolean true" {
		t.Errorf("MustString() = %q", got)
	}
	if got := MustString(snode.MustFrom("x"), EncodeTypes(false)); got != `"x"` {
		t.Errorf("MustString() = %q", got)
	}
}

func TestEncodeColors(t *testing.T) {
	mark := func(s string, _ ...any) string { return "<" + s + ">" }
	c := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Kind: snode.StringKind, Attr: ValueColor}: mark,
			{Kind: snode.StringKind, Attr: TypeColor}:  mark,
		},
	}
	got := MustString(snode.MustFrom("x"), EncodeColors(c))
	if got != `<String> <"x">` {
		t.Errorf("MustString() = %q", got)
	}

	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()
	got = MustString(snode.MustFrom("100%"), EncodeColors(NewColors()))
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected escape sequences in %q", got)
	}
	if !strings.Contains(got, `"100%"`) {
		t.Errorf("percent sign mangled in %q", got)
	}
}
