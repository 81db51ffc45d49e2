package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	gzip "github.com/klauspost/pgzip"
)

const (
	OUTPUT_SUFFIX = ".fastq.gz"

	// Compression blocks per output writer; the pool may hold one writer per
	// sample so the block buffers are kept small
	outputBlockSize = 256 << 10
	outputBlocks    = 2
)

// SampleWriter is the compressed output stream of one sample label.
// It is owned by the OutputPool that created it
type SampleWriter struct {
	Label string
	Path  string

	file *os.File
	gz   *gzip.Writer
	buf  *bufio.Writer
}

// WriteRecord appends one record as four newline-terminated lines
func (w *SampleWriter) WriteRecord(rec Record) error {
	for _, line := range [LINES_PER_RECORD]string{rec.Header, rec.Sequence, rec.Separator, rec.Quality} {
		if _, err := w.buf.WriteString(line); err != nil {
			return fmt.Errorf("error writing to %s: %w", w.Path, err)
		}
		if err := w.buf.WriteByte('\n'); err != nil {
			return fmt.Errorf("error writing to %s: %w", w.Path, err)
		}
	}
	return nil
}

// close flushes the buffer, writes the gzip trailer and closes the file
func (w *SampleWriter) close() error {
	err := w.buf.Flush()
	if gzErr := w.gz.Close(); err == nil {
		err = gzErr
	}
	if fileErr := w.file.Close(); err == nil {
		err = fileErr
	}
	if err != nil {
		return fmt.Errorf("error closing %s: %w", w.Path, err)
	}
	return nil
}

// OutputPool lazily opens one SampleWriter per sample label. Files are named
// <dir>/<prefix><label>.fastq.gz and are truncated when first opened
//
// There is no eviction: every label seen keeps one file descriptor open
// until CloseAll
type OutputPool struct {
	dir     string
	prefix  string
	level   int
	writers map[string]*SampleWriter
	closed  bool
}

// NewOutputPool creates an empty pool. level is a gzip compression level
// (gzip.DefaultCompression, or 0-9)
func NewOutputPool(dir, prefix string, level int) *OutputPool {
	return &OutputPool{
		dir:     dir,
		prefix:  prefix,
		level:   level,
		writers: make(map[string]*SampleWriter),
	}
}

// Path returns the output file name used for label
func (p *OutputPool) Path(label string) string {
	return filepath.Join(p.dir, p.prefix+label+OUTPUT_SUFFIX)
}

// GetOrCreate returns the writer of label, creating its file on first use
func (p *OutputPool) GetOrCreate(label string) (*SampleWriter, error) {
	if p.closed {
		return nil, fmt.Errorf("output pool is closed, cannot open writer for %q", label)
	}
	if w, ok := p.writers[label]; ok {
		return w, nil
	}

	path := p.Path(label)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("error creating output file: %w", err)
	}
	gz, err := gzip.NewWriterLevel(file, p.level)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("error creating gzip writer for %s: %w", path, err)
	}
	if err := gz.SetConcurrency(outputBlockSize, outputBlocks); err != nil {
		gz.Close()
		file.Close()
		return nil, fmt.Errorf("error configuring gzip writer for %s: %w", path, err)
	}

	w := &SampleWriter{
		Label: label,
		Path:  path,
		file:  file,
		gz:    gz,
		buf:   bufio.NewWriterSize(gz, 64<<10),
	}
	p.writers[label] = w
	return w, nil
}

// Len returns the number of open writers
func (p *OutputPool) Len() int { return len(p.writers) }

// CloseAll finalizes every writer. All writers are closed even when one of
// them fails; the first error is returned. Calling it again does nothing
func (p *OutputPool) CloseAll() error {
	if p.closed {
		return nil
	}
	p.closed = true

	var first error
	for _, w := range p.writers {
		if err := w.close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
