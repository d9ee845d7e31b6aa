package snode

import (
	"errors"
	"fmt"
)

var (
	// ErrReferenceNotFound is returned by Resolver.Resolve for placeholders
	// which were not produced alongside the resolver.
	ErrReferenceNotFound = errors.New("reference not found")

	ErrUnsupportedKind = errors.New("unsupported value kind")
	ErrCycle           = errors.New("circular reference")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrPathNotFound    = errors.New("path not found")
)

// MapError reports a value which From could not map to a node.
type MapError struct {
	Path    string // kinded path of the offending value, "" for the root
	Message string
	Err     error
}

func (e *MapError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("map error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("map error: %s", e.Message)
}

func (e *MapError) Unwrap() error {
	return e.Err
}
