package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shenwei356/xopen"
)

// BarcodeTable maps read identifiers to sample labels.
// It is built once and never modified afterwards
type BarcodeTable struct {
	samples map[string]string
}

// LoadBarcodeTable reads a tab-separated assignment table from path.
// The file may be plain text or compressed (gzip, xz, zstd, bzip2)
//
// The first row is a header and is skipped. For every other row the second
// column is the read identifier and the third the sample label; rows with
// fewer than three columns are ignored. A repeated identifier keeps the label
// of its last row
func LoadBarcodeTable(path string) (*BarcodeTable, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error opening barcode table: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("error opening barcode table: %s is a directory", path)
	}
	// xopen refuses empty files
	if info.Size() == 0 {
		return &BarcodeTable{samples: map[string]string{}}, nil
	}

	fh, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("error opening barcode table: %w", err)
	}
	defer fh.Close()

	table, err := ParseBarcodeTable(fh)
	if err != nil {
		return nil, fmt.Errorf("error reading barcode table %s: %w", path, err)
	}
	return table, nil
}

// ParseBarcodeTable parses an uncompressed assignment table from r
func ParseBarcodeTable(r io.Reader) (*BarcodeTable, error) {
	table := &BarcodeTable{samples: make(map[string]string)}
	reader := bufio.NewReader(r)

	for lineNo := 0; ; lineNo++ {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if lineNo > 0 && (line != "" || err == nil) {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			fields := strings.Split(line, "\t")
			if len(fields) >= 3 {
				table.samples[fields[1]] = fields[2]
			}
		}
		if err == io.EOF {
			return table, nil
		}
	}
}

// Lookup returns the sample label assigned to a read identifier
func (t *BarcodeTable) Lookup(id string) (string, bool) {
	label, ok := t.samples[id]
	return label, ok
}

// Len returns the number of identifiers in the table
func (t *BarcodeTable) Len() int { return len(t.samples) }
