package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shenwei356/util/pathutil"
)

// INPUT_SUFFIX is the default name suffix of input FASTQ files
const INPUT_SUFFIX = ".gz"

// discoverInputs lists the entries of dir whose name ends with suffix.
// Directories are skipped and never descended into. The result is sorted by
// file name, so runs over the same folder write reads in the same order
func discoverInputs(dir, suffix string) ([]string, error) {
	exists, err := pathutil.DirExists(dir)
	if err != nil {
		return nil, fmt.Errorf("error checking input folder: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("input folder does not exist or is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading input folder: %w", err)
	}

	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		inputs = append(inputs, filepath.Join(dir, entry.Name()))
	}
	return inputs, nil
}

// prepareOutputDir creates dir when it does not exist yet
func prepareOutputDir(dir string) error {
	exists, err := pathutil.DirExists(dir)
	if err != nil {
		return fmt.Errorf("error checking output folder: %w", err)
	}
	if exists {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output folder: %w", err)
	}
	return nil
}
