// Package testutil provides testing utilities for docgo.
//
// This package is intended for use in tests only. It provides a seeded,
// thread-safe random generator for identifiers, strings, and document
// shapes that survive a JSON round trip unchanged (numbers are generated
// as float64, collections as []any and map[string]any).
package testutil
