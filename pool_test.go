package main

import (
	"os"
	"path/filepath"
	"testing"

	gzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPoolPath(t *testing.T) {
	pool := NewOutputPool("out", "run1_", gzip.DefaultCompression)
	assert.Equal(t, filepath.Join("out", "run1_S1.fastq.gz"), pool.Path("S1"))
	assert.Equal(t, filepath.Join("out", ".fastq.gz"), NewOutputPool("out", "", 1).Path(""))
}

func TestOutputPoolGetOrCreate(t *testing.T) {
	dir := t.TempDir()
	pool := NewOutputPool(dir, "", gzip.DefaultCompression)

	w1, err := pool.GetOrCreate("S1")
	require.NoError(t, err)
	w2, err := pool.GetOrCreate("S1")
	require.NoError(t, err)
	assert.Same(t, w1, w2, "one writer per label")

	_, err = pool.GetOrCreate("S2")
	require.NoError(t, err)
	assert.Equal(t, 2, pool.Len())

	require.NoError(t, pool.CloseAll())
	assert.FileExists(t, filepath.Join(dir, "S1.fastq.gz"))
	assert.FileExists(t, filepath.Join(dir, "S2.fastq.gz"))
}

func TestOutputPoolTruncatesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "S1.fastq.gz")
	writeGzip(t, path, fastq("old1", "old2"))

	pool := NewOutputPool(dir, "", gzip.DefaultCompression)
	w, err := pool.GetOrCreate("S1")
	require.NoError(t, err)
	require.NoError(t, w.WriteRecord(Record{Header: "@new", Sequence: "A", Separator: "+", Quality: "I"}))
	require.NoError(t, pool.CloseAll())

	assert.Equal(t, []string{"@new", "A", "+", "I"}, readGzipLines(t, path))
}

func TestSampleWriterWriteRecord(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		records []Record
		want    []string
	}{
		{
			name:    "Single record",
			level:   gzip.DefaultCompression,
			records: []Record{{"@r1 d", "ACGT", "+r1", "IIII"}},
			want:    []string{"@r1 d", "ACGT", "+r1", "IIII"},
		},
		{
			name:    "Order preserved, no compression",
			level:   gzip.NoCompression,
			records: []Record{{"@r1", "A", "+", "I"}, {"@r2", "C", "+", "J"}},
			want:    []string{"@r1", "A", "+", "I", "@r2", "C", "+", "J"},
		},
		{
			name:    "Empty lines kept",
			level:   gzip.BestCompression,
			records: []Record{{"@r1", "", "+", ""}},
			want:    []string{"@r1", "", "+", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			pool := NewOutputPool(dir, "p_", tt.level)
			w, err := pool.GetOrCreate("S1")
			require.NoError(t, err)
			for _, rec := range tt.records {
				require.NoError(t, w.WriteRecord(rec))
			}
			require.NoError(t, pool.CloseAll())

			path := filepath.Join(dir, "p_S1.fastq.gz")
			assert.Equal(t, tt.want, readGzipLines(t, path))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, byte('\n'), lastDecompressedByte(t, path), "trailing newline")
			assert.NotEmpty(t, raw)
		})
	}
}

func lastDecompressedByte(t *testing.T, path string) byte {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gr.Close()

	var last byte
	buf := make([]byte, 4096)
	for {
		n, err := gr.Read(buf)
		if n > 0 {
			last = buf[n-1]
		}
		if err != nil {
			break
		}
	}
	return last
}

func TestOutputPoolCloseAll(t *testing.T) {
	pool := NewOutputPool(t.TempDir(), "", gzip.DefaultCompression)
	_, err := pool.GetOrCreate("S1")
	require.NoError(t, err)

	require.NoError(t, pool.CloseAll())
	assert.NoError(t, pool.CloseAll(), "second CloseAll is a no-op")

	_, err = pool.GetOrCreate("S1")
	assert.Error(t, err, "closed pool hands out no writers")
}

func TestOutputPoolCreateError(t *testing.T) {
	pool := NewOutputPool(filepath.Join(t.TempDir(), "missing"), "", gzip.DefaultCompression)
	_, err := pool.GetOrCreate("S1")
	assert.Error(t, err)
	assert.Equal(t, 0, pool.Len())
	assert.NoError(t, pool.CloseAll())
}
