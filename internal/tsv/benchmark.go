// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tsv

import (
	"github.com/molgenis/biobesu/pkg/types"
)

const (
	benchmarkIDColumn        = 0
	benchmarkPhenotypeColumn = 2
	listSeparator            = ","
)

// ReadBenchmark reads a benchmark TSV: a header line, then one case per
// line with the case id in column 0 and comma-separated HPO ids in
// column 2. Cases keep file order.
func ReadBenchmark(path string) ([]types.BenchmarkCase, error) {
	kv, err := ReadKeyValuesFile(path, KeyValueOptions{
		KeyColumn:       benchmarkIDColumn,
		ValueColumn:     benchmarkPhenotypeColumn,
		ValuesSeparator: listSeparator,
	})
	if err != nil {
		return nil, err
	}

	cases := make([]types.BenchmarkCase, 0, kv.Len())
	for _, id := range kv.Keys() {
		cases = append(cases, types.BenchmarkCase{ID: id, Phenotypes: nonEmpty(kv.Get(id))})
	}
	return cases, nil
}

// ReadListColumn reads a two-column "id<TAB>a,b,c" file, as written by
// Writer, into an ordered mapping of id to list.
func ReadListColumn(path string) (*KeyValues, error) {
	return ReadKeyValuesFile(path, KeyValueOptions{
		KeyColumn:       0,
		ValueColumn:     1,
		ValuesSeparator: listSeparator,
	})
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
