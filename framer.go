// Positional FASTQ framing: a decompressed line stream is cut into 4-line records

package main

import (
	"bufio"
	"io"
	"strings"
)

// LINES_PER_RECORD is the number of lines in one FASTQ read
const LINES_PER_RECORD = 4

// Record holds the four lines of one FASTQ read, without line terminators
type Record struct {
	Header    string
	Sequence  string
	Separator string
	Quality   string
}

// ID returns the read identifier used as the join key with the barcode table:
// the header up to the first space, with a single leading '@' removed
//
// Example:
//
//	Record{Header: "@A00123:8:1 1:N:0"}.ID() // "A00123:8:1"
func (r Record) ID() string {
	return readID(r.Header)
}

func readID(header string) string {
	if i := strings.IndexByte(header, ' '); i >= 0 {
		header = header[:i]
	}
	return strings.TrimPrefix(header, "@")
}

// RecordFramer groups lines of a decompressed FASTQ stream into records.
// Framing is purely positional: every 4 consecutive lines form one record,
// in arrival order. A trailing group of 1-3 lines is never returned as a
// record; its size is available from Leftover once Next returns false
//
// Usage follows bufio.Scanner:
//
//	framer := NewRecordFramer(r)
//	for framer.Next() {
//		rec := framer.Record()
//	}
//	if err := framer.Err(); err != nil { ... }
type RecordFramer struct {
	reader   *bufio.Reader
	lines    [LINES_PER_RECORD]string
	record   Record
	leftover int
	err      error
	done     bool
}

// NewRecordFramer wraps r, which must already be decompressed
func NewRecordFramer(r io.Reader) *RecordFramer {
	return &RecordFramer{reader: bufio.NewReaderSize(r, 1<<20)}
}

// Next advances to the next complete record. It returns false at the end of
// the stream or on the first read error
func (f *RecordFramer) Next() bool {
	if f.done {
		return false
	}
	for i := 0; i < LINES_PER_RECORD; i++ {
		line, ok := f.readLine()
		if !ok {
			f.done = true
			if f.err == nil {
				f.leftover = i
			}
			return false
		}
		f.lines[i] = line
	}
	f.record = Record{
		Header:    f.lines[0],
		Sequence:  f.lines[1],
		Separator: f.lines[2],
		Quality:   f.lines[3],
	}
	return true
}

// readLine returns the next line without its terminator. A final line lacking
// a newline is still returned
func (f *RecordFramer) readLine() (string, bool) {
	line, err := f.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			f.err = err
			return "", false
		}
		if line == "" {
			return "", false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true
}

// Record returns the record produced by the last successful call to Next
func (f *RecordFramer) Record() Record { return f.record }

// Err returns the first non-EOF read error
func (f *RecordFramer) Err() error { return f.err }

// Leftover returns the number of lines of an incomplete trailing group
// (0 when the stream held a whole number of records)
func (f *RecordFramer) Leftover() int { return f.leftover }
