// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert maps identifiers between namespaces: HPO ids and names,
// NCBI gene ids and symbols, gene aliases and OMIM numbers. Each converter
// parses its reference file once at construction and answers lookups from
// immutable tables.
package convert

import (
	"fmt"
	"sort"
)

// NA is the placeholder emitted for a missing key when a batch lookup is
// asked to keep positions.
const NA = "NA"

// Table maps a key to its converted value. It is never modified after the
// owning converter is constructed.
type Table map[string]string

// KeySet is an unordered set of keys that had no conversion value.
type KeySet map[string]struct{}

// Add inserts key into the set.
func (s KeySet) Add(key string) {
	s[key] = struct{}{}
}

// Has reports whether key is in the set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Update inserts every key of other into s.
func (s KeySet) Update(other KeySet) {
	for k := range other {
		s[k] = struct{}{}
	}
}

// Sorted returns the keys in lexical order.
func (s KeySet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the set like {a, b} with keys sorted.
func (s KeySet) String() string {
	return fmt.Sprintf("%v", s.Sorted())
}

// BatchFunc converts an ordered list of keys. Every converter exposes its
// batch conversions with this shape so runners can pass them around.
type BatchFunc func(keys []string, includeNA bool) ([]string, KeySet)

// Lookup returns the value stored for key. The boolean is false when the
// table has no entry.
func (t Table) Lookup(key string) (string, bool) {
	v, ok := t[key]
	return v, ok
}

// LookupAll converts keys in order. Values for missing keys are omitted,
// or replaced by NA when includeNA is set. The returned set holds every
// distinct key without a value.
func (t Table) LookupAll(keys []string, includeNA bool) ([]string, KeySet) {
	values := make([]string, 0, len(keys))
	missing := KeySet{}
	for _, key := range keys {
		v, ok := t[key]
		if !ok {
			if includeNA {
				values = append(values, NA)
			}
			missing.Add(key)
			continue
		}
		values = append(values, v)
	}
	return values, missing
}

// ContentError reports a reference file whose content does not have the
// expected layout.
type ContentError struct {
	Path string
	Msg  string
}

func (e *ContentError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}
