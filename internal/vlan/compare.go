package vlan

import (
	"math"
	"sort"
)

// Comparison is a lightweight day-over-day annotation for one table cell.
type Comparison struct {
	Difference float64 `json:"difference"`
	Percentage float64 `json:"percentage"`
	Direction  string  `json:"direction"`
}

// Compare annotates one VLAN's reading on date against the immediately
// preceding known date. Returns nil when there is no earlier date, either
// day has no reading, or the change is under one megabyte (sub-unit noise
// is shown as "no change").
func Compare(hist History, date string, knownDates []string) *Comparison {
	dates := append([]string(nil), knownDates...)
	sort.Strings(dates)

	idx := -1
	for i, d := range dates {
		if d == date {
			idx = i
			break
		}
	}
	if idx < 1 {
		return nil
	}

	curr, hasCurr := hist.Days[date]
	prev, hasPrev := hist.Days[dates[idx-1]]
	if !hasCurr || !hasPrev {
		return nil
	}

	diff := curr.MB - prev.MB
	if math.Abs(diff) < 1 {
		return nil
	}

	percentage := 100.0
	if prev.MB > 0 {
		percentage = math.Round(math.Abs(diff)/prev.MB*100*10) / 10
	}

	direction := "down"
	if diff > 0 {
		direction = "up"
	}

	return &Comparison{
		Difference: math.Round(diff*10) / 10,
		Percentage: percentage,
		Direction:  direction,
	}
}
