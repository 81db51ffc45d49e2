// Demultiplexing engine: reads compressed FASTQ inputs one after another and
// routes every record to the output file of its sample

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	gzip "github.com/klauspost/pgzip"
	"github.com/shenwei356/util/bytesize"
)

// UNKNOWN_LABEL receives reads without a barcode under MissingToUnknown
const UNKNOWN_LABEL = "unknown"

// MissingPolicy decides what happens to a read absent from the barcode table
type MissingPolicy int

const (
	MissingToUnknown MissingPolicy = iota // write it to the "unknown" sample
	MissingSkip                           // count it, write nothing
)

func (p MissingPolicy) String() string {
	switch p {
	case MissingToUnknown:
		return "unknown"
	case MissingSkip:
		return "skip"
	default:
		return "invalid"
	}
}

func parseMissingPolicy(s string) (MissingPolicy, error) {
	switch s {
	case "unknown":
		return MissingToUnknown, nil
	case "skip":
		return MissingSkip, nil
	default:
		return 0, fmt.Errorf("invalid missing-barcode policy: %s (use 'unknown' or 'skip')", s)
	}
}

// Options configures a Demultiplexer
type Options struct {
	Missing         MissingPolicy
	TrackDuplicates bool
	Progress        bool      // show a progress bar per input file
	Out             io.Writer // progress messages, os.Stdout when nil
	Log             io.Writer // warnings and progress bars, os.Stderr when nil
}

// Demultiplexer drives a run. It is single-use and not safe for concurrent use
type Demultiplexer struct {
	table *BarcodeTable
	pool  *OutputPool
	stats *Stats
	opts  Options
}

func NewDemultiplexer(table *BarcodeTable, pool *OutputPool, opts Options) *Demultiplexer {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Log == nil {
		opts.Log = os.Stderr
	}
	return &Demultiplexer{
		table: table,
		pool:  pool,
		stats: NewStats(opts.TrackDuplicates),
		opts:  opts,
	}
}

// Run processes inputs in order and closes the output pool. Any read or write
// error stops the run; the pool is closed in that case too and the first
// error is returned together with the statistics gathered so far
func (d *Demultiplexer) Run(inputs []string) (*Stats, error) {
	start := time.Now()

	var runErr error
	for _, path := range inputs {
		if runErr = d.processFile(path); runErr != nil {
			break
		}
	}
	if err := d.pool.CloseAll(); err != nil && runErr == nil {
		runErr = err
	}

	d.stats.Elapsed = time.Since(start)
	return d.stats, runErr
}

func (d *Demultiplexer) processFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening input file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("error reading input file %s: %w", path, err)
	}
	fmt.Fprintf(d.opts.Out, "Processing %s (%s)\n", path, bytesize.ByteSize(float64(info.Size())))
	d.stats.AddFile()

	var src io.Reader = file
	if d.opts.Progress {
		bar := pb.New64(info.Size()).
			SetTemplate(pb.Full).
			SetWriter(d.opts.Log).
			Set(pb.Bytes, true).
			Start()
		defer bar.Finish()
		src = bar.NewProxyReader(file)
	}

	gz, err := gzip.NewReader(src)
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(d.opts.Log, yellow(fmt.Sprintf("Warning: %s is empty", path)))
			return nil
		}
		return fmt.Errorf("error decompressing %s: %w", path, err)
	}
	defer gz.Close()
	// Concatenated gzip members form one FASTQ stream
	gz.Multistream(true)

	framer := NewRecordFramer(gz)
	for framer.Next() {
		if err := d.route(framer.Record()); err != nil {
			return err
		}
	}
	if err := framer.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	if n := framer.Leftover(); n > 0 {
		d.stats.AddIncomplete()
		fmt.Fprintln(d.opts.Log, yellow(fmt.Sprintf("Warning: incomplete read at end of %s (%d trailing lines skipped)", path, n)))
	}
	return nil
}

// route writes one record to the output of its sample and updates the counts
func (d *Demultiplexer) route(rec Record) error {
	id := rec.ID()
	d.stats.Observe(id)

	label, ok := d.table.Lookup(id)
	if !ok {
		if d.opts.Missing == MissingSkip {
			d.stats.AddWithoutBarcode(true)
			return nil
		}
		d.stats.AddWithoutBarcode(false)
		label = UNKNOWN_LABEL
	}

	w, err := d.pool.GetOrCreate(label)
	if err != nil {
		return err
	}
	if err := w.WriteRecord(rec); err != nil {
		return err
	}
	d.stats.AddRouted(label)
	return nil
}
