package snode

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/backloop/kpath"
)

func TestGetKPath(t *testing.T) {
	node := MustFrom(Doc{
		{Key: "a", Value: []any{1, Doc{{Key: "x y", Value: "sp"}}}},
		{Key: "b", Value: "s"},
	})
	tests := []struct {
		kp      string
		want    string
		wantErr error
	}{
		{kp: "", want: "Object{a, b}"},
		{kp: "a", want: "Array[2]"},
		{kp: "a[0]", want: "Number(1)"},
		{kp: `a[1]."x y"`, want: `String("sp")`},
		{kp: "b", want: `String("s")`},
		{kp: "c", wantErr: ErrPathNotFound},
		{kp: "a[2]", wantErr: ErrPathNotFound},
		{kp: "b[0]", wantErr: ErrPathNotFound},
		{kp: "a.x", wantErr: ErrPathNotFound},
		{kp: "a[", wantErr: kpath.ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.kp, func(t *testing.T) {
			got, err := node.GetKPath(tt.kp)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetKPath(%q) error = %v, want %v", tt.kp, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetKPath(%q) error = %v", tt.kp, err)
			}
			if got.String() != tt.want {
				t.Errorf("GetKPath(%q) = %s, want %s", tt.kp, got, tt.want)
			}
		})
	}
}

func TestVisit(t *testing.T) {
	node := MustFrom(Doc{
		{Key: "a", Value: []int{1, 2}},
		{Key: "b", Value: Doc{{Key: "c", Value: true}}},
		{Key: "d", Value: nil},
	})
	var paths []string
	err := node.Visit(func(path string, n *Node) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"", "a", "a[0]", "a[1]", "b", "b.c", "d"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	paths = nil
	node.Visit(func(path string, n *Node) error {
		paths = append(paths, path)
		if path == "a" {
			return SkipChildren
		}
		return nil
	})
	want = []string{"", "a", "b", "b.c", "d"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("SkipChildren paths mismatch (-want +got):\n%s", diff)
	}

	stop := errors.New("stop")
	paths = nil
	err = node.Visit(func(path string, n *Node) error {
		paths = append(paths, path)
		if path == "a[0]" {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("Visit() error = %v, want stop", err)
	}
	if len(paths) != 3 {
		t.Errorf("Visit kept walking after error: %v", paths)
	}
}

func TestEqual(t *testing.T) {
	type Name string
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "same doc", a: Doc{{Key: "a", Value: 1}}, b: Doc{{Key: "a", Value: 1}}, want: true},
		{name: "key order", a: Doc{{Key: "a", Value: 1}, {Key: "b", Value: 2}}, b: Doc{{Key: "b", Value: 2}, {Key: "a", Value: 1}}},
		{name: "type name", a: "x", b: Name("x")},
		{name: "null vs undefined", a: nil, b: Undefined},
		{name: "number types", a: 1, b: int64(1)},
		{name: "slices", a: []string{"x"}, b: [1]string{"x"}, want: true},
		{name: "lengths", a: []int{1}, b: []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(MustFrom(tt.a), MustFrom(tt.b)); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
	if Equal(nil, MustFrom(1)) {
		t.Errorf("Equal(nil, node) = true")
	}
}

func TestEqual_NaN(t *testing.T) {
	nan := math.NaN()
	if !Equal(MustFrom(nan), MustFrom(nan)) {
		t.Errorf("Equal(NaN, NaN) = false")
	}
	if !Equal(MustFrom([]float32{float32(nan)}), MustFrom([]float32{float32(nan)})) {
		t.Errorf("Equal([NaN], [NaN]) = false")
	}
	if Equal(MustFrom(nan), MustFrom(1.0)) {
		t.Errorf("Equal(NaN, 1) = true")
	}
}

func TestNode_CopiesAreIndependent(t *testing.T) {
	node := MustFrom(Doc{{Key: "a", Value: 1}, {Key: "b", Value: 2}})
	keys := node.Keys()
	keys[0] = "z"
	members := node.Members()
	members[1].Key = "y"
	if diff := cmp.Diff([]string{"a", "b"}, node.Keys()); diff != "" {
		t.Errorf("node mutated (-want +got):\n%s", diff)
	}
	if _, ok := node.Field("a"); !ok {
		t.Errorf("Field(a) lost")
	}
}

func TestKind_String(t *testing.T) {
	var got []string
	for _, k := range Kinds() {
		got = append(got, k.String())
	}
	want := []string{"undefined", "null", "string", "number", "bool", "sequence", "mapping"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("kind names mismatch (-want +got):\n%s", diff)
	}
	if s := Kind(42).String(); s != "Kind(42)" {
		t.Errorf("Kind(42).String() = %q", s)
	}
}

func TestRef_Navigation(t *testing.T) {
	tree, _ := MustFrom(Doc{
		{Key: "a", Value: []int{1}},
		{Key: "b", Value: 2},
	}).CreateBackloopReference()
	if !tree.IsMapping() || tree.IsSequence() || tree.Len() != 2 {
		t.Fatalf("root shape wrong")
	}
	if diff := cmp.Diff([]string{"a", "b"}, tree.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if a := tree.Field("a"); !a.IsSequence() || a.Len() != 1 || a.Index(0) == nil {
		t.Errorf("a shape wrong")
	}
	if tree.Field("b").Index(0) != nil || tree.Index(0) != nil {
		t.Errorf("navigating a non-sequence should give nil")
	}
	var missing *Ref
	if missing.Field("x").Index(3).Len() != 0 || missing.Keys() != nil {
		t.Errorf("nil placeholders should navigate to nil")
	}
	if _, err := tree.Get("a[1]"); !errors.Is(err, ErrPathNotFound) {
		t.Errorf("Get(a[1]) error = %v, want ErrPathNotFound", err)
	}
}
