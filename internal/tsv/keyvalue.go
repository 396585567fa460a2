// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tsv reads and writes the tab-separated files the runners
// exchange: benchmark files, two-column extractions, and the normalized
// result files.
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	// DefaultSeparator separates columns.
	DefaultSeparator = "\t"

	maxLineSize = 4 << 20
)

// KeyValueOptions selects the two columns ReadKeyValues turns into a
// mapping.
type KeyValueOptions struct {
	KeyColumn   int
	ValueColumn int
	// Separator splits columns; DefaultSeparator when empty.
	Separator string
	// ValuesSeparator, when set, splits the value column into a list.
	ValuesSeparator string
	// KeepHeader includes the first line as data. By default it is skipped.
	KeepHeader bool
}

// KeyValues is an insertion-ordered mapping read from a separated-values
// file. A repeated key keeps its first position and its last value.
type KeyValues struct {
	keys   []string
	values map[string][]string
}

// Keys returns the keys in the order they first appeared.
func (kv *KeyValues) Keys() []string {
	return kv.keys
}

// Len returns the number of distinct keys.
func (kv *KeyValues) Len() int {
	return len(kv.keys)
}

// Get returns the values stored for key, or nil.
func (kv *KeyValues) Get(key string) []string {
	return kv.values[key]
}

// Value returns the unsplit value stored for key.
func (kv *KeyValues) Value(key string) (string, bool) {
	v, ok := kv.values[key]
	if !ok || len(v) == 0 {
		return "", ok
	}
	return v[0], true
}

func (kv *KeyValues) put(key string, values []string) {
	if _, ok := kv.values[key]; !ok {
		kv.keys = append(kv.keys, key)
	}
	kv.values[key] = values
}

// ReadKeyValues reads r and maps the key column to the value column. Both
// cells are whitespace-trimmed. Blank lines are ignored; a line lacking
// either column is an error.
func ReadKeyValues(r io.Reader, opts KeyValueOptions) (*KeyValues, error) {
	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	need := max(opts.KeyColumn, opts.ValueColumn) + 1

	kv := &KeyValues{values: map[string][]string{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		if lineNo == 1 && !opts.KeepHeader {
			continue
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, sep)
		if len(fields) < need {
			return nil, fmt.Errorf("line %d: expected at least %d columns, found %d", lineNo, need, len(fields))
		}

		key := strings.TrimSpace(fields[opts.KeyColumn])
		value := strings.TrimSpace(fields[opts.ValueColumn])
		if opts.ValuesSeparator == "" {
			kv.put(key, []string{value})
		} else {
			kv.put(key, strings.Split(value, opts.ValuesSeparator))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return kv, nil
}

// ReadKeyValuesFile opens path (decompressing if needed) and reads it with
// ReadKeyValues.
func ReadKeyValuesFile(path string, opts KeyValueOptions) (*KeyValues, error) {
	f, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	kv, err := ReadKeyValues(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return kv, nil
}
