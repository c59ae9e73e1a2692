package vlan

import (
	"sort"
	"time"

	"vlantrack/internal/report"
)

// All mutations below are copy-on-write: they never touch the input
// Network and return a fully-formed replacement the caller persists as a
// unit. That keeps a save atomic at whole-network granularity.

func (n Network) clone() Network {
	c := n
	c.VlanData = make(map[int]History, len(n.VlanData))
	for num, h := range n.VlanData {
		days := make(map[string]Day, len(h.Days))
		for d, day := range h.Days {
			days[d] = day
		}
		h.Days = days
		c.VlanData[num] = h
	}
	c.DailyReports = make(map[string]Snapshot, len(n.DailyReports))
	for d, s := range n.DailyReports {
		s.Readings = append([]report.Reading(nil), s.Readings...)
		s.Down = append([]int(nil), s.Down...)
		c.DailyReports[d] = s
	}
	c.Dates = append([]string(nil), n.Dates...)
	return c
}

// sortedDates recomputes the date index from the snapshot key set.
// Dates are ISO YYYY-MM-DD strings, so lexicographic order is
// chronological order.
func (n Network) sortedDates() []string {
	dates := make([]string, 0, len(n.DailyReports))
	for d := range n.DailyReports {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// SaveSnapshot merges a freshly parsed report into the network under date.
// An existing snapshot for the same date is replaced wholesale. Returns
// ok=false and the network unchanged when there are no readings to save;
// a report that parsed to nothing must never erase a day.
func SaveSnapshot(n Network, date string, readings []report.Reading, now time.Time) (Network, bool) {
	if len(readings) == 0 {
		return n, false
	}

	c := n.clone()
	stamp := now.UTC().Format(time.RFC3339)

	snap := Snapshot{
		Date:     date,
		Readings: append([]report.Reading(nil), readings...),
		Down:     []int{},
		ParsedAt: stamp,
	}
	for _, r := range readings {
		if r.Status.Down() {
			snap.Down = append(snap.Down, r.Number)
		}
	}
	c.DailyReports[date] = snap

	for _, r := range readings {
		h, ok := c.VlanData[r.Number]
		if !ok {
			h = History{
				Number:           r.Number,
				Name:             r.Name,
				OriginalName:     r.Name,
				FirstSeen:        date,
				LastReportedName: r.Name,
				Days:             map[string]Day{},
			}
		}
		h.Days[date] = Day{
			Full:         r.Display,
			Short:        r.ShortDisplay,
			Level:        r.Status,
			MB:           float64(r.MB),
			ReportedName: r.Name,
			ReportDate:   date,
		}
		// The display name follows the most recent report, not the first.
		h.Name = r.Name
		h.LastReportedName = r.Name
		c.VlanData[r.Number] = h
	}

	c.Dates = c.sortedDates()
	c.LastModified = stamp
	return c, true
}

// RenameVlan sets an operator-chosen display name. No-op when the VLAN is
// unknown or the name is empty.
func RenameVlan(n Network, number int, name string) Network {
	h, ok := n.VlanData[number]
	if !ok || name == "" {
		return n
	}
	c := n.clone()
	h = c.VlanData[number]
	h.Name = name
	c.VlanData[number] = h
	return c
}

// DeleteVlan removes a VLAN's history and strips it from every stored
// snapshot's reading list and down-set.
func DeleteVlan(n Network, number int) Network {
	c := n.clone()
	delete(c.VlanData, number)
	for date, snap := range c.DailyReports {
		readings := snap.Readings[:0]
		for _, r := range snap.Readings {
			if r.Number != number {
				readings = append(readings, r)
			}
		}
		snap.Readings = readings
		down := snap.Down[:0]
		for _, num := range snap.Down {
			if num != number {
				down = append(down, num)
			}
		}
		snap.Down = down
		c.DailyReports[date] = snap
	}
	return c
}

// DeleteReport drops one date's snapshot. VLAN histories keep their other
// days; the per-day entry for the dropped date is removed with it.
func DeleteReport(n Network, date string) Network {
	c := n.clone()
	delete(c.DailyReports, date)
	for num, h := range c.VlanData {
		delete(h.Days, date)
		if len(h.Days) == 0 {
			// History entries exist only for VLANs present in some snapshot.
			delete(c.VlanData, num)
			continue
		}
		c.VlanData[num] = h
	}
	c.Dates = c.sortedDates()
	return c
}

// DeleteAllReports clears every snapshot and VLAN history.
func DeleteAllReports(n Network) Network {
	c := n.clone()
	c.VlanData = map[int]History{}
	c.DailyReports = map[string]Snapshot{}
	c.Dates = []string{}
	return c
}
