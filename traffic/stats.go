package traffic

import (
	"fmt"
	"math"
	"time"
)

// noTransit marks MinElapsed before the first retirement
const noTransit = time.Duration(math.MaxInt64)

// Stats accumulates over the whole run
type Stats struct {
	// Vehicles that left the canvas
	Passed int
	// Blocked moves; a vehicle held for three ticks counts three times
	GiveWays int

	MaxElapsed time.Duration
	MinElapsed time.Duration
}

func newStats() Stats {
	return Stats{MinElapsed: noTransit}
}

func (s *Stats) record(elapsed time.Duration) {
	s.Passed++
	if elapsed > s.MaxElapsed {
		s.MaxElapsed = elapsed
	}
	if elapsed < s.MinElapsed {
		s.MinElapsed = elapsed
	}
}

// HasTransits reports whether any vehicle has completed a transit
func (s Stats) HasTransits() bool {
	return s.Passed > 0
}

const noDataReport = "Crashes: 0\n" +
	"Near misses: 0\n" +
	"Give ways: 0\n" +
	"Cars passed: 0\n" +
	"Max time: N/A\n" +
	"Min time: N/A"

// Report formats the statistics for display
// Crashes and near misses are always zero since footprints never overlap
func (s Stats) Report() string {
	if !s.HasTransits() {
		return noDataReport
	}
	return fmt.Sprintf("Crashes: 0\n"+
		"Near misses: 0\n"+
		"Give ways: %d\n"+
		"Cars passed: %d\n"+
		"Max time: %.2fs\n"+
		"Min time: %.2fs",
		s.GiveWays, s.Passed, s.MaxElapsed.Seconds(), s.MinElapsed.Seconds())
}
