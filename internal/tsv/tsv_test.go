// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tsv

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molgenis/biobesu/pkg/types"
)

func TestReadKeyValues(t *testing.T) {
	input := "id\tomim\n" +
		"0001\t012345,543210\n" +
		"0002\t456789,987654\n"

	kv, err := ReadKeyValues(strings.NewReader(input), KeyValueOptions{KeyColumn: 0, ValueColumn: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"0001", "0002"}, kv.Keys())
	v, ok := kv.Value("0001")
	assert.True(t, ok)
	assert.Equal(t, "012345,543210", v)

	kv, err = ReadKeyValues(strings.NewReader(input), KeyValueOptions{KeyColumn: 0, ValueColumn: 1, ValuesSeparator: ","})
	require.NoError(t, err)
	assert.Equal(t, []string{"012345", "543210"}, kv.Get("0001"))
	assert.Equal(t, []string{"456789", "987654"}, kv.Get("0002"))
	assert.Nil(t, kv.Get("0003"))
}

func TestReadKeyValues_Options(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     KeyValueOptions
		wantKeys []string
		errMsg   string
	}{
		{
			name:     "keep header",
			input:    "a;1\nb;2\n",
			opts:     KeyValueOptions{KeyColumn: 0, ValueColumn: 1, Separator: ";", KeepHeader: true},
			wantKeys: []string{"a", "b"},
		},
		{
			name:     "blank lines skipped and cells trimmed",
			input:    "h\th\n\n  x \t 1 \n\n",
			opts:     KeyValueOptions{KeyColumn: 0, ValueColumn: 1},
			wantKeys: []string{"x"},
		},
		{
			name:     "repeated key keeps first position",
			input:    "h\th\nb\t1\na\t2\nb\t3\n",
			opts:     KeyValueOptions{KeyColumn: 0, ValueColumn: 1},
			wantKeys: []string{"b", "a"},
		},
		{
			name:   "missing column",
			input:  "h\th\th\ncase1\tx\n",
			opts:   KeyValueOptions{KeyColumn: 0, ValueColumn: 2},
			errMsg: "line 2: expected at least 3 columns, found 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, err := ReadKeyValues(strings.NewReader(tt.input), tt.opts)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, kv.Keys())
		})
	}
}

func TestReadBenchmark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmark.tsv")
	content := "id\tgene\tphenotypes\n" +
		"case2\tNAT2\tHP:0000015,HP:0000008\n" +
		"case1\tA2M\tHP:0000008\n" +
		"case3\t-\t\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cases, err := ReadBenchmark(path)
	require.NoError(t, err)
	assert.Equal(t, []types.BenchmarkCase{
		{ID: "case2", Phenotypes: []string{"HP:0000015", "HP:0000008"}},
		{ID: "case1", Phenotypes: []string{"HP:0000008"}},
		{ID: "case3", Phenotypes: []string{}},
	}, cases)
}

func TestWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")

	w, err := Create(path, "id", "gene_symbol")
	require.NoError(t, err)
	require.NoError(t, w.WriteList("case1", []string{"NAT1", "NAT2"}))
	require.NoError(t, w.WriteList("case2", nil))
	assert.Equal(t, 2, w.Rows())
	assert.Equal(t, path, w.Path())
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id\tgene_symbol\ncase1\tNAT1,NAT2\ncase2\t\n", string(data))

	kv, err := ReadListColumn(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"NAT1", "NAT2"}, kv.Get("case1"))

	_, err = Create(path, "id")
	assert.ErrorIs(t, err, fs.ErrExist)
}

func TestOpen_Compressed(t *testing.T) {
	dir := t.TempDir()
	const content = "line one\nline two\n"

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, err := gw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.gz"), gzBuf.Bytes(), 0o644))

	var zstBuf bytes.Buffer
	zw, err := zstd.NewWriter(&zstBuf)
	require.NoError(t, err)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.zst"), zstBuf.Bytes(), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte(content), 0o644))

	for _, name := range []string{"f.gz", "f.zst", "f.txt"} {
		t.Run(name, func(t *testing.T) {
			r, err := Open(filepath.Join(dir, name))
			require.NoError(t, err)
			defer r.Close()

			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, content, string(data))
		})
	}

	_, err = Open(filepath.Join(dir, "missing.gz"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpen_CorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening gzip stream")
}
