package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/backloop/snode"

	"github.com/goccy/go-yaml"
)

// loadDocs reads every yaml (or json) document of file, "-" meaning r.
func loadDocs(file string, r io.Reader) ([]*snode.Node, error) {
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	return decodeDocs(r)
}

func decodeDocs(r io.Reader) ([]*snode.Node, error) {
	dec := yaml.NewDecoder(r, yaml.UseOrderedMap())
	var res []*snode.Node
	for i := 0; ; i++ {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, fmt.Errorf("error decoding document %d: %w", i, err)
		}
		node, err := snode.From(toValue(v))
		if err != nil {
			return nil, fmt.Errorf("error mapping document %d: %w", i, err)
		}
		res = append(res, node)
	}
}

// toValue replaces the ordered maps produced by the decoder with Docs so
// that From keeps document key order.
func toValue(v any) any {
	switch x := v.(type) {
	case yaml.MapSlice:
		doc := make(snode.Doc, len(x))
		for i, item := range x {
			doc[i] = snode.KeyValue{Key: fmt.Sprint(item.Key), Value: toValue(item.Value)}
		}
		return doc
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = toValue(x[i])
		}
		return res
	default:
		return v
	}
}

// forEachDoc calls f with each document of files, or of r when files is
// empty.
func forEachDoc(files []string, r io.Reader, f func(file string, i int, node *snode.Node) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		docs, err := loadDocs(file, r)
		if err != nil {
			return err
		}
		for i, doc := range docs {
			if err := f(file, i, doc); err != nil {
				return fmt.Errorf("error processing %s document %d: %w", file, i, err)
			}
		}
	}
	return nil
}
