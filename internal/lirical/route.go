// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lirical

import (
	"github.com/molgenis/biobesu/internal/convert"
	"github.com/molgenis/biobesu/internal/tsv"
)

// ConvertFile converts the value list of every row of a two-column
// "id<TAB>a,b,c" file with fn and writes the converted rows, under header,
// to out. Missing keys are dropped from the rows and collected over the
// whole file. out must not exist yet. It returns the missing keys and the
// number of rows written.
func ConvertFile(fn convert.BatchFunc, in, out string, header ...string) (convert.KeySet, int, error) {
	rows, err := tsv.ReadListColumn(in)
	if err != nil {
		return nil, 0, err
	}

	w, err := tsv.Create(out, header...)
	if err != nil {
		return nil, 0, err
	}
	defer w.Close()

	all := convert.KeySet{}
	for _, id := range rows.Keys() {
		converted, missing := fn(nonEmpty(rows.Get(id)), false)
		all.Update(missing)
		if err := w.WriteList(id, converted); err != nil {
			return all, w.Rows(), err
		}
	}
	return all, w.Rows(), w.Close()
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
