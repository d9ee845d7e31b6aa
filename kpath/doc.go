// Package kpath provides kinded path parsing.
//
// Kinded paths encode both navigation and the kind of container being
// navigated:
//   - field or .field - mapping key access
//   - [index] - sequence element access
//   - "quoted field" - mapping key containing path syntax or spaces
//
// # Usage
//
//	kp, err := kpath.Parse(`users[0]."display name"`)
//	for x := kp; x != nil; x = x.Next {
//	    fmt.Println(x.SegmentString())
//	}
//
// The empty string is the root path and parses to a nil *KPath.
//
// # Related Packages
//
//   - github.com/signadot/backloop/snode - node and shadow trees navigated by kinded paths
package kpath
