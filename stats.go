package main

import (
	"sort"
	"time"

	"github.com/maruel/natural"
)

// Stats accumulates read counts over a demultiplexing run.
// Counters only grow; they are meant to be read once the run is over
type Stats struct {
	Total          int64 // Records framed from all inputs
	WithoutBarcode int64 // Records whose identifier is absent from the barcode table
	Incomplete     int64 // Trailing groups of 1-3 lines that were skipped
	Files          int   // Input files processed
	Elapsed        time.Duration

	perLabel   map[string]int64
	seen       map[string]struct{} // nil when duplicate tracking is off
	duplicates map[string]struct{}
}

// NewStats creates an empty accumulator. trackDuplicates enables the set of
// seen identifiers, whose size grows with the number of distinct reads
func NewStats(trackDuplicates bool) *Stats {
	s := &Stats{
		perLabel:   make(map[string]int64),
		duplicates: make(map[string]struct{}),
	}
	if trackDuplicates {
		s.seen = make(map[string]struct{})
	}
	return s
}

// TracksDuplicates reports whether Observe records identifiers
func (s *Stats) TracksDuplicates() bool { return s.seen != nil }

// Observe registers a read identifier and reports whether it was seen before
// in this run. An identifier seen any number of times beyond the first is
// counted once in Duplicates
func (s *Stats) Observe(id string) bool {
	if s.seen == nil {
		return false
	}
	if _, ok := s.seen[id]; ok {
		s.duplicates[id] = struct{}{}
		return true
	}
	s.seen[id] = struct{}{}
	return false
}

// AddRouted counts a record written to label
func (s *Stats) AddRouted(label string) {
	s.perLabel[label]++
	s.Total++
}

// AddWithoutBarcode counts a lookup miss. When skipped is true the record is
// not written anywhere and is added to Total here
func (s *Stats) AddWithoutBarcode(skipped bool) {
	s.WithoutBarcode++
	if skipped {
		s.Total++
	}
}

func (s *Stats) AddIncomplete() { s.Incomplete++ }

func (s *Stats) AddFile() { s.Files++ }

// Count returns the number of records written to label
func (s *Stats) Count(label string) int64 { return s.perLabel[label] }

// Labels returns all labels with at least one record, in natural order
// (S2 before S10)
func (s *Stats) Labels() []string {
	labels := make([]string, 0, len(s.perLabel))
	for label := range s.perLabel {
		labels = append(labels, label)
	}
	sort.Sort(natural.StringSlice(labels))
	return labels
}

// Routed returns the sum of all per-label counts
func (s *Stats) Routed() int64 {
	var sum int64
	for _, n := range s.perLabel {
		sum += n
	}
	return sum
}

// Duplicates returns the number of distinct identifiers seen more than once
func (s *Stats) Duplicates() int { return len(s.duplicates) }

// Percent returns the share of Total written to label, in percent.
// It is 0 when no record was read
func (s *Stats) Percent(label string) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.perLabel[label]) / float64(s.Total) * 100
}
