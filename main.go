package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	gzip "github.com/klauspost/pgzip"
	"github.com/spf13/cobra"
)

const VERSION = "1.0.0"

// Define color functions
var (
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// Replaced in tests
var exitFunc = os.Exit

// runConfig collects positional arguments and flags of one invocation
type runConfig struct {
	BarcodeFile  string
	InputDir     string
	OutputDir    string
	Prefix       string
	Missing      string
	Duplicates   bool
	Level        int
	Suffix       string
	StatsFile    string
	Progress     bool
	ShowVersion  bool
	missingValue MissingPolicy
}

// validateConfig checks flag values before any file is opened
func validateConfig(cfg *runConfig) error {
	policy, err := parseMissingPolicy(cfg.Missing)
	if err != nil {
		return err
	}
	cfg.missingValue = policy

	if cfg.Level != gzip.DefaultCompression && (cfg.Level < gzip.NoCompression || cfg.Level > gzip.BestCompression) {
		return fmt.Errorf("compression level must be -1 (default) or between 0 and 9, got %d", cfg.Level)
	}
	if cfg.Suffix == "" {
		return fmt.Errorf("input suffix must not be empty")
	}
	return nil
}

// rootCommand builds the command line interface:
//
//	fqdemux <barcode_table> <input_folder> [output_folder] [prefix]
func rootCommand() *cobra.Command {
	cfg := &runConfig{}

	cmd := &cobra.Command{
		Use:           "fqdemux <barcode_table> <input_folder> [output_folder] [prefix]",
		Short:         "Split compressed FASTQ files into per-sample files using a read-to-sample table",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if cfg.ShowVersion {
				return nil
			}
			return cobra.RangeArgs(2, 4)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.ShowVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "fqdemux %s\n", VERSION)
				return nil
			}

			cfg.BarcodeFile = args[0]
			cfg.InputDir = args[1]
			cfg.OutputDir = "."
			if len(args) > 2 {
				cfg.OutputDir = args[2]
			}
			if len(args) > 3 {
				cfg.Prefix = args[3]
			}

			if err := validateConfig(cfg); err != nil {
				return err
			}
			return runDemux(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetHelpFunc(helpFunc)

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Missing, "missing", "m", "unknown", "What to do with reads absent from the barcode table (unknown, skip)")
	flags.BoolVarP(&cfg.Duplicates, "duplicates", "d", true, "Count read IDs seen more than once")
	flags.IntVarP(&cfg.Level, "level", "l", gzip.DefaultCompression, "Gzip compression level of output files (-1 = default, 0-9)")
	flags.StringVarP(&cfg.Suffix, "suffix", "x", INPUT_SUFFIX, "Name suffix of input FASTQ files")
	flags.StringVarP(&cfg.StatsFile, "stats", "s", "", "Write per-sample read counts to this TSV file")
	flags.BoolVarP(&cfg.Progress, "progress", "p", false, "Show a progress bar for each input file")
	flags.BoolVarP(&cfg.ShowVersion, "version", "v", false, "Show version information")

	return cmd
}

func main() {
	rootCmd := rootCommand()

	// Custom error handling
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
		fmt.Fprintln(os.Stderr, "Usage: fqdemux <barcode_table> <input_folder> [output_folder] [prefix]")
		fmt.Fprintln(os.Stderr, red("Try 'fqdemux --help' for more information"))
		exitFunc(1)
	}
}
