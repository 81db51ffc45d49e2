package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	gzip "github.com/klauspost/pgzip"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// writeGzip writes each member as an independent gzip stream, one after the
// other, into path
func writeGzip(t *testing.T, path string, members ...string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	for _, member := range members {
		gw := gzip.NewWriter(f)
		_, err := gw.Write([]byte(member))
		require.NoError(t, err)
		require.NoError(t, gw.Close())
	}
}

// readGzipLines returns all lines of a gzip-compressed file
func readGzipLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gr.Close()

	var lines []string
	scanner := bufio.NewScanner(gr)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	return lines
}

// countFastqRecords parses path as FASTQ and returns the read names in order
func countFastqRecords(t *testing.T, path string) []string {
	t.Helper()
	reader, err := fastx.NewDefaultReader(path)
	require.NoError(t, err)
	defer reader.Close()

	var names []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, string(record.ID))
	}
	return names
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// fastq builds FASTQ text for reads named after ids
func fastq(ids ...string) string {
	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString("@" + id + " 1:N:0:1\nACGTN\n+\nIIIII\n")
	}
	return sb.String()
}

func barcodeTable(rows ...[2]string) string {
	var sb strings.Builder
	sb.WriteString("index\tread_id\tsample\n")
	for i, row := range rows {
		sb.WriteString(string(rune('0'+i%10)) + "\t" + row[0] + "\t" + row[1] + "\n")
	}
	return sb.String()
}

func tempPath(t *testing.T, name string) string {
	return filepath.Join(t.TempDir(), name)
}
