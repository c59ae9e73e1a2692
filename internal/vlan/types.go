package vlan

import (
	"vlantrack/internal/report"
)

// Day is one VLAN's stored reading for one report date.
type Day struct {
	Full         string        `json:"full"`
	Short        string        `json:"short"`
	Level        report.Status `json:"level"`
	MB           float64       `json:"mb"`
	ReportedName string        `json:"reportedName"`
	ReportDate   string        `json:"reportDate"`
}

// History is the per-VLAN time series for one network. An entry exists
// exactly when the VLAN number has appeared in at least one snapshot.
type History struct {
	Number           int            `json:"number"`
	Name             string         `json:"name"`
	OriginalName     string         `json:"originalName"`
	FirstSeen        string         `json:"firstSeen"`
	LastReportedName string         `json:"lastReportedName"`
	Days             map[string]Day `json:"days"`
}

// Snapshot is the full set of readings captured for one date, plus the
// VLAN numbers whose status was down that day.
type Snapshot struct {
	Date     string           `json:"date"`
	Readings []report.Reading `json:"vlans"`
	Down     []int            `json:"weak"`
	ParsedAt string           `json:"parsedAt"`
}

// Network holds everything tracked for one router: all snapshots keyed by
// date, all VLAN histories keyed by number, and the sorted date list.
// dates is always exactly the sorted key set of DailyReports.
type Network struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	VlanData     map[int]History     `json:"vlanData"`
	DailyReports map[string]Snapshot `json:"dailyReports"`
	Dates        []string            `json:"dates"`
	Created      string              `json:"created"`
	LastModified string              `json:"lastModified"`
}

// AlertItem is one classified day-over-day finding for a single VLAN.
type AlertItem struct {
	Type           string  `json:"type"`
	Vlan           int     `json:"vlan"`
	Name           string  `json:"name"`
	Point          string  `json:"point"`
	From           float64 `json:"from"`
	To             float64 `json:"to"`
	Percent        int     `json:"percent"`
	Size           string  `json:"size"`
	OriginalSize   float64 `json:"originalSize"`
	DropAmount     float64 `json:"dropAmount,omitempty"`
	IncreaseAmount float64 `json:"increaseAmount,omitempty"`
}

// AlertRecord is the result of analyzing one saved date against the
// nearest earlier date with data.
type AlertRecord struct {
	Urgent       []AlertItem `json:"urgent"`
	Warning      []AlertItem `json:"warning"`
	Info         []AlertItem `json:"info"`
	Timestamp    string      `json:"timestamp"`
	Date         string      `json:"date"`
	ComparedWith string      `json:"comparedWith"`
}

// Size tiers derived from the prior day's reading.
const (
	SizeBig    = "big"
	SizeMedium = "medium"
	SizeSmall  = "small"
)

func sizeTier(priorMB float64) string {
	switch {
	case priorMB >= 3000:
		return SizeBig
	case priorMB >= 1000:
		return SizeMedium
	default:
		return SizeSmall
	}
}

// NewNetwork returns an empty network shell.
func NewNetwork(id, name, created string) Network {
	return Network{
		ID:           id,
		Name:         name,
		VlanData:     map[int]History{},
		DailyReports: map[string]Snapshot{},
		Dates:        []string{},
		Created:      created,
		LastModified: created,
	}
}
