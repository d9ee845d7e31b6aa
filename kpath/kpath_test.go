package kpath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func stringPtr(s string) *string { return &s }
func intPtr(i int) *int          { return &i }

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *KPath
		wantErr bool
	}{
		{
			name:  "empty path",
			input: "",
			want:  nil,
		},
		{
			name:  "simple field",
			input: "a",
			want:  &KPath{Field: stringPtr("a")},
		},
		{
			name:  "nested fields",
			input: "a.b.c",
			want: &KPath{
				Field: stringPtr("a"),
				Next: &KPath{
					Field: stringPtr("b"),
					Next:  &KPath{Field: stringPtr("c")},
				},
			},
		},
		{
			name:  "field then index",
			input: "b[1]",
			want: &KPath{
				Field: stringPtr("b"),
				Next:  &KPath{Index: intPtr(1)},
			},
		},
		{
			name:  "leading index",
			input: "[0].name",
			want: &KPath{
				Index: intPtr(0),
				Next:  &KPath{Field: stringPtr("name")},
			},
		},
		{
			name:  "consecutive indices",
			input: "[0][12]",
			want: &KPath{
				Index: intPtr(0),
				Next:  &KPath{Index: intPtr(12)},
			},
		},
		{
			name:  "quoted field",
			input: `a."b.c d"[2]`,
			want: &KPath{
				Field: stringPtr("a"),
				Next: &KPath{
					Field: stringPtr("b.c d"),
					Next:  &KPath{Index: intPtr(2)},
				},
			},
		},
		{
			name:  "quoted escape",
			input: `"say \"hi\""`,
			want:  &KPath{Field: stringPtr(`say "hi"`)},
		},
		{name: "leading dot", input: ".a", wantErr: true},
		{name: "trailing dot", input: "a.", wantErr: true},
		{name: "empty index", input: "a[]", wantErr: true},
		{name: "negative index", input: "a[-1]", wantErr: true},
		{name: "unterminated index", input: "a[1", wantErr: true},
		{name: "unterminated quote", input: `a."b`, wantErr: true},
		{name: "field after index", input: "[0]a", wantErr: true},
		{name: "stray bracket", input: "a]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrSyntax) {
					t.Errorf("Parse(%q) error %v does not wrap ErrSyntax", tt.input, err)
				}
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestString_RoundTrip(t *testing.T) {
	paths := []string{
		"a",
		"a.b.c",
		"a[0]",
		"[3]",
		"[0][1].x",
		`a."b c"`,
		`"x.y"[0]`,
		`""`,
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			kp, err := Parse(p)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", p, err)
			}
			if got := kp.String(); got != p {
				t.Errorf("String() = %q, want %q", got, p)
			}
		})
	}
}

func TestAppend(t *testing.T) {
	base := MustParse("a.b")
	got := base.Append(Index(2)).Append(Field("c d"))
	if s := got.String(); s != `a.b[2]."c d"` {
		t.Errorf("Append() = %q", s)
	}
	if s := base.String(); s != "a.b" {
		t.Errorf("Append modified receiver: %q", s)
	}
	var root *KPath
	if s := root.Append(Field("x")).String(); s != "x" {
		t.Errorf("nil.Append() = %q, want %q", s, "x")
	}
	if n := got.Len(); n != 4 {
		t.Errorf("Len() = %d, want 4", n)
	}
}

func TestSegmentString(t *testing.T) {
	kp := MustParse(`[7]."a b"`)
	if got := kp.SegmentString(); got != "[7]" {
		t.Errorf("SegmentString() = %q, want [7]", got)
	}
	if got := kp.Next.SegmentString(); got != `"a b"` {
		t.Errorf("SegmentString() = %q, want %q", got, `"a b"`)
	}
}
