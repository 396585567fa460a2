// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestTableLookup(t *testing.T) {
	table := Table{"9": "NAT1", "10": "NAT2"}

	v, ok := table.Lookup("9")
	assert.True(t, ok)
	assert.Equal(t, "NAT1", v)

	v, ok = table.Lookup("3")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestTableLookupAll(t *testing.T) {
	table := Table{"a": "1", "b": "2", "c": "3"}

	tests := []struct {
		name        string
		keys        []string
		includeNA   bool
		wantValues  []string
		wantMissing []string
	}{
		{
			name:        "all present keeps order",
			keys:        []string{"c", "a", "b"},
			wantValues:  []string{"3", "1", "2"},
			wantMissing: []string{},
		},
		{
			name:        "missing keys omitted",
			keys:        []string{"a", "x", "b"},
			wantValues:  []string{"1", "2"},
			wantMissing: []string{"x"},
		},
		{
			name:        "missing keys as NA",
			keys:        []string{"a", "x", "b"},
			includeNA:   true,
			wantValues:  []string{"1", NA, "2"},
			wantMissing: []string{"x"},
		},
		{
			name:        "duplicate missing keys collapse",
			keys:        []string{"y", "x", "y", "x"},
			includeNA:   true,
			wantValues:  []string{NA, NA, NA, NA},
			wantMissing: []string{"x", "y"},
		},
		{
			name:        "empty input",
			keys:        nil,
			wantValues:  []string{},
			wantMissing: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, missing := table.LookupAll(tt.keys, tt.includeNA)
			assert.Equal(t, tt.wantValues, values)
			assert.Equal(t, tt.wantMissing, missing.Sorted())
		})
	}
}

func TestKeySet(t *testing.T) {
	s := KeySet{}
	s.Add("b")
	s.Add("a")
	s.Update(KeySet{"c": {}, "a": {}})

	assert.True(t, s.Has("c"))
	assert.False(t, s.Has("d"))
	assert.Equal(t, []string{"a", "b", "c"}, s.Sorted())
	assert.Equal(t, "[a b c]", s.String())
}

func TestContentErrorMessage(t *testing.T) {
	assert.Equal(t, "bad", (&ContentError{Msg: "bad"}).Error())
	assert.Equal(t, "/tmp/f.tsv: bad", (&ContentError{Path: "/tmp/f.tsv", Msg: "bad"}).Error())
}

func TestPropertyLookupAllReturnsStoredValues(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		table := Table(rapid.MapOf(rapid.StringMatching(`[A-Z]{1,3}`), rapid.StringMatching(`[0-9]{1,4}`)).Draw(t, "table"))
		keys := rapid.SliceOf(rapid.StringMatching(`[A-Z]{1,3}`)).Draw(t, "keys")

		values, missing := table.LookupAll(keys, false)

		var want []string
		for _, k := range keys {
			if v, ok := table[k]; ok {
				want = append(want, v)
			} else if !missing.Has(k) {
				t.Fatalf("absent key %q not reported missing", k)
			}
		}
		if len(want) != len(values) {
			t.Fatalf("got %d values, want %d", len(values), len(want))
		}
		for i := range want {
			if want[i] != values[i] {
				t.Fatalf("value %d = %q, want %q (order not preserved)", i, values[i], want[i])
			}
		}
		for k := range missing {
			if _, ok := table[k]; ok {
				t.Fatalf("present key %q reported missing", k)
			}
		}
	})
}

func TestPropertyLookupAllWithNAKeepsPositions(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		table := Table(rapid.MapOf(rapid.StringMatching(`[a-c]`), rapid.StringMatching(`[A-Z]{2}`)).Draw(t, "table"))
		keys := rapid.SliceOf(rapid.StringMatching(`[a-f]`)).Draw(t, "keys")

		values, _ := table.LookupAll(keys, true)
		if len(values) != len(keys) {
			t.Fatalf("got %d values for %d keys", len(values), len(keys))
		}
		for i, k := range keys {
			want, ok := table[k]
			if !ok {
				want = NA
			}
			if values[i] != want {
				t.Fatalf("position %d: got %q, want %q", i, values[i], want)
			}
		}
	})
}

func TestPropertyPhenotypeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		c := &PhenotypeConverter{namesByID: Table{}, idByNames: Table{}}
		for i := 0; i < n; i++ {
			id := rapid.StringMatching(`HP:[0-9]{7}`).Draw(t, "id")
			name := rapid.StringMatching(`[A-Z][a-z]{3,12}`).Draw(t, "name")
			if _, taken := c.idByNames[name]; taken {
				continue
			}
			if _, taken := c.namesByID[id]; taken {
				continue
			}
			c.namesByID[id] = name
			c.idByNames[name] = id
		}

		for id := range c.namesByID {
			name, ok := c.IDToName(id)
			if !ok {
				t.Fatalf("id %q not found", id)
			}
			back, ok := c.NameToID(name)
			if !ok || back != id {
				t.Fatalf("round trip %q -> %q -> %q", id, name, back)
			}
		}
	})
}
