package entities

import "fmt"

// Period is an index into the planning horizon. Periods are totally ordered
// and contiguous between the horizon start and end.
type Period int

// TimeGrid defines the discrete planning horizon shared by all components
// of a run.
type TimeGrid struct {
	Start       Period
	End         Period
	Granularity string // informational label: "day", "week", ...
}

// NewTimeGrid creates a validated TimeGrid
func NewTimeGrid(start, end Period, granularity string) (*TimeGrid, error) {
	if end < start {
		return nil, fmt.Errorf("horizon end %d precedes start %d", end, start)
	}
	return &TimeGrid{Start: start, End: end, Granularity: granularity}, nil
}

// Len returns the number of periods in the horizon.
func (g *TimeGrid) Len() int {
	return int(g.End-g.Start) + 1
}

// Contains reports whether p falls inside the horizon.
func (g *TimeGrid) Contains(p Period) bool {
	return p >= g.Start && p <= g.End
}

// Index maps a period to its zero-based offset from the horizon start.
// Callers must check Contains first.
func (g *TimeGrid) Index(p Period) int {
	return int(p - g.Start)
}

// Periods returns every period in horizon order.
func (g *TimeGrid) Periods() []Period {
	out := make([]Period, 0, g.Len())
	for p := g.Start; p <= g.End; p++ {
		out = append(out, p)
	}
	return out
}
