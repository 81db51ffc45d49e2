// Run summary for the console and the optional statistics table

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/shenwei356/xopen"
)

var (
	green   = color.New(color.FgHiGreen).SprintFunc()
	magenta = color.New(color.FgHiMagenta).SprintFunc()
)

// writeSummary prints the final counts of a run, one line per sample with
// its share of all reads
func writeSummary(w io.Writer, stats *Stats) {
	fmt.Fprintf(w, "\n%s\n", bold("Demultiplexing complete. Summary:"))
	fmt.Fprintf(w, "Input files: %d\n", stats.Files)
	fmt.Fprintf(w, "Total reads: %s\n", comma(stats.Total))
	for _, label := range stats.Labels() {
		fmt.Fprintf(w, "%s: %s (%d reads)\n", cyan(label), green(fmt.Sprintf("%.2f%%", stats.Percent(label))), stats.Count(label))
	}

	if stats.TracksDuplicates() {
		fmt.Fprintf(w, "\n%s\n", magenta(fmt.Sprintf("Duplicate read IDs: %s", comma(int64(stats.Duplicates())))))
	} else {
		fmt.Fprintf(w, "\n%s\n", magenta("Duplicate read IDs: not tracked"))
	}
	fmt.Fprintf(w, "%s\n", magenta(fmt.Sprintf("Reads without barcode: %s", comma(stats.WithoutBarcode))))
	fmt.Fprintf(w, "%s\n", magenta(fmt.Sprintf("Incomplete reads: %s", comma(stats.Incomplete))))
	fmt.Fprintf(w, "\nElapsed time: %s\n", stats.Elapsed)
}

// writeStatsTable writes per-sample counts as TSV to path.
// The file is compressed when its name ends in a compression suffix
func writeStatsTable(path string, stats *Stats, pool *OutputPool) error {
	outfh, err := xopen.Wopen(path)
	if err != nil {
		return fmt.Errorf("error creating stats file: %w", err)
	}

	fmt.Fprintln(outfh, "sample\treads\tpercent\tfile")
	for _, label := range stats.Labels() {
		fmt.Fprintf(outfh, "%s\t%d\t%.4f\t%s\n", label, stats.Count(label), stats.Percent(label), pool.Path(label))
	}

	if err := outfh.Close(); err != nil {
		return fmt.Errorf("error writing stats file: %w", err)
	}
	return nil
}

// comma formats an integer with thousands separators
func comma(value int64) string {
	if value < 0 {
		return "-" + comma(-value)
	}
	str := fmt.Sprintf("%d", value)
	result := make([]byte, 0, len(str)+len(str)/3)
	for i := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, str[i])
	}
	return string(result)
}
