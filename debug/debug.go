package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	From    bool
	Refs    bool
	Resolve bool
}

var d *debug

func init() {
	d = fromEnv()
}

func fromEnv() *debug {
	return &debug{
		From:    boolEnv("BACKLOOP_DEBUG_FROM"),
		Refs:    boolEnv("BACKLOOP_DEBUG_REFS"),
		Resolve: boolEnv("BACKLOOP_DEBUG_RESOLVE"),
	}
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// From reports whether node tree construction is logged.
func From() bool {
	return d.From
}

// Refs reports whether shadow tree construction is logged.
func Refs() bool {
	return d.Refs
}

// Resolve reports whether placeholder resolution is logged.
func Resolve() bool {
	return d.Resolve
}

// Logf writes a formatted message to stderr.
func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
