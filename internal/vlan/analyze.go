package vlan

import (
	"math"
	"sort"
	"time"

	"vlantrack/internal/portlabel"
)

// delta is the day-over-day state of one VLAN, handed to the alert rules.
type delta struct {
	hist  History
	prior Day
	curr  Day
	diff  float64
	pct   float64
	size  string
	point string
}

func (d delta) item(subtype string) AlertItem {
	return AlertItem{
		Type:         subtype,
		Vlan:         d.hist.Number,
		Name:         d.hist.Name,
		Point:        d.point,
		From:         d.prior.MB,
		To:           d.curr.MB,
		Percent:      int(math.Round(d.pct)),
		Size:         d.size,
		OriginalSize: d.prior.MB,
	}
}

// alertRules is the classification policy, evaluated in priority order.
// The first rule that fires consumes the VLAN; at most one alert item per
// VLAN per analysis.
var alertRules = []struct {
	match func(d delta) bool
	emit  func(d delta, rec *AlertRecord)
}{
	// New outage: the VLAN went down since the compared date. Treated as
	// total loss, so percent is pinned to 100 whatever the raw delta was.
	{
		match: func(d delta) bool { return d.curr.Level.Down() && !d.prior.Level.Down() },
		emit: func(d delta, rec *AlertRecord) {
			it := d.item("new_float_" + d.size)
			it.Percent = 100
			switch d.size {
			case SizeBig:
				rec.Urgent = append(rec.Urgent, it)
			case SizeMedium:
				rec.Warning = append(rec.Warning, it)
			default:
				rec.Info = append(rec.Info, it)
			}
		},
	},
	// Big VLAN lost more than half its consumption.
	{
		match: func(d delta) bool { return d.diff < 0 && d.size == SizeBig && d.pct > 50 },
		emit: func(d delta, rec *AlertRecord) {
			it := d.item("big_drop_critical")
			it.DropAmount = -d.diff
			rec.Urgent = append(rec.Urgent, it)
		},
	},
	// Big VLAN lost more than a fifth.
	{
		match: func(d delta) bool { return d.diff < 0 && d.size == SizeBig && d.pct > 20 },
		emit: func(d delta, rec *AlertRecord) {
			it := d.item("big_drop_significant")
			it.DropAmount = -d.diff
			rec.Warning = append(rec.Warning, it)
		},
	},
	// Medium VLAN collapsed.
	{
		match: func(d delta) bool { return d.diff < 0 && d.size == SizeMedium && d.pct > 70 },
		emit: func(d delta, rec *AlertRecord) {
			rec.Warning = append(rec.Warning, d.item("medium_drop"))
		},
	},
	// Big VLAN more than doubled.
	{
		match: func(d delta) bool { return d.diff > 0 && d.size == SizeBig && d.pct > 100 },
		emit: func(d delta, rec *AlertRecord) {
			it := d.item("big_increase")
			it.IncreaseAmount = d.diff
			rec.Info = append(rec.Info, it)
		},
	},
}

// Analyze compares savedDate against the nearest earlier date with data
// and classifies every VLAN present on both days. Returns nil when there
// is nothing to compare against; that is a normal outcome, not an error.
// Small VLANs never alert on drops or increases (noise floor).
func Analyze(n Network, savedDate string, now time.Time) *AlertRecord {
	dates := append([]string(nil), n.Dates...)
	sort.Strings(dates)
	if len(dates) < 2 {
		return nil
	}

	idx := -1
	for i, d := range dates {
		if d == savedDate {
			idx = i
			break
		}
	}
	if idx < 1 {
		return nil
	}
	comparedWith := dates[idx-1]

	rec := &AlertRecord{
		Urgent:       []AlertItem{},
		Warning:      []AlertItem{},
		Info:         []AlertItem{},
		Timestamp:    now.UTC().Format(time.RFC3339),
		Date:         savedDate,
		ComparedWith: comparedWith,
	}

	numbers := make([]int, 0, len(n.VlanData))
	for num := range n.VlanData {
		numbers = append(numbers, num)
	}
	sort.Ints(numbers)

	for _, num := range numbers {
		hist := n.VlanData[num]
		curr, hasCurr := hist.Days[savedDate]
		prior, hasPrior := hist.Days[comparedWith]
		if !hasCurr || !hasPrior {
			continue
		}

		diff := curr.MB - prior.MB
		base := prior.MB
		if base == 0 {
			base = 1
		}
		d := delta{
			hist:  hist,
			prior: prior,
			curr:  curr,
			diff:  diff,
			pct:   math.Abs(diff) / base * 100,
			size:  sizeTier(prior.MB),
			point: portlabel.Classify(hist.Name),
		}

		for _, rule := range alertRules {
			if rule.match(d) {
				rule.emit(d, rec)
				break
			}
		}
	}

	return rec
}
