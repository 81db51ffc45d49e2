package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Custom help function used for the root command
func helpFunc(cmd *cobra.Command, args []string) {
	fmt.Fprintf(cmd.OutOrStdout(), `
%s

%s
  %s

%s
  %s
  %s
  %s
  %s

%s
  Tab-separated, first row is a header. Column 2 holds the read ID
  (FASTQ header up to the first space, without '@'), column 3 the sample.

%s
  %s
  %s
  %s
  %s
  %s
  %s
  %s
  %s

%s
  %s
  %s
  %s

`,
		bold(cyan("fqdemux")+" v."+VERSION+" - Demultiplex compressed FASTQ files by read ID"),
		bold(yellow("Usage:")),
		"fqdemux <barcode_table> <input_folder> [output_folder] [prefix]",
		bold(yellow("Arguments:")),
		cyan("barcode_table")+" : Read-to-sample assignment table (TSV, may be compressed)",
		cyan("input_folder")+"  : Folder with input FASTQ files (*.gz, not recursive)",
		cyan("output_folder")+" : Where <prefix><sample>.fastq.gz files are written (default, '.')",
		cyan("prefix")+"        : Prefix of output file names (default, empty)",
		bold(yellow("Barcode table:")),
		bold(yellow("Flags:")),
		cyan("-m, --missing")+" <string> : Reads without barcode: 'unknown' writes them to unknown.fastq.gz, 'skip' drops them (default, 'unknown')",
		cyan("-d, --duplicates")+" <bool> : Count read IDs seen more than once (default, true)",
		cyan("-l, --level")+" <int>      : Gzip compression level of output files (-1 = default, 0-9)",
		cyan("-x, --suffix")+" <string>  : Name suffix of input files (default, '.gz')",
		cyan("-s, --stats")+" <string>   : Write per-sample read counts to a TSV file (optional)",
		cyan("-p, --progress")+"         : Show a progress bar for each input file",
		cyan("-h, --help")+"             : Show help message",
		cyan("-v, --version")+"          : Show version information",
		bold(yellow("Usage examples:")),
		cyan("fqdemux barcodes.tsv raw/ demux/"),
		cyan("fqdemux barcodes.tsv raw/ demux/ run42_ --missing skip --stats demux/stats.tsv"),
		cyan("fqdemux barcodes.tsv.gz raw/ . --duplicates=false --level 1"),
	)
}
