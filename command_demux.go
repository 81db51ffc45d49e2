// Main command (`fqdemux`): load the barcode table, demultiplex every input
// file of the input folder and report the counts

package main

import (
	"fmt"
	"io"
)

// runDemux wires the components of one run together
//
// Steps:
//   - load the barcode table
//   - list input files of cfg.InputDir ending in cfg.Suffix
//   - create the output folder when missing
//   - route every record, then close all sample files
//   - print the summary and optionally write the statistics table
//
// Any I/O failure aborts the run and is returned
func runDemux(cfg *runConfig, out, errOut io.Writer) error {
	table, err := LoadBarcodeTable(cfg.BarcodeFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Loaded %s read IDs from %s\n", comma(int64(table.Len())), cfg.BarcodeFile)

	inputs, err := discoverInputs(cfg.InputDir, cfg.Suffix)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Fprintln(errOut, yellow(fmt.Sprintf("Warning: no files ending in %s found in %s", cfg.Suffix, cfg.InputDir)))
	}

	if err := prepareOutputDir(cfg.OutputDir); err != nil {
		return err
	}

	pool := NewOutputPool(cfg.OutputDir, cfg.Prefix, cfg.Level)
	demux := NewDemultiplexer(table, pool, Options{
		Missing:         cfg.missingValue,
		TrackDuplicates: cfg.Duplicates,
		Progress:        cfg.Progress,
		Out:             out,
		Log:             errOut,
	})

	stats, err := demux.Run(inputs)
	if err != nil {
		return err
	}

	writeSummary(out, stats)

	if cfg.StatsFile != "" {
		if err := writeStatsTable(cfg.StatsFile, stats, pool); err != nil {
			return err
		}
	}
	return nil
}
