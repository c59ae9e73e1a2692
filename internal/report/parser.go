package report

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Reading is one parsed VLAN line from a daily usage report.
type Reading struct {
	Number       int    `json:"number"`
	Name         string `json:"name"`
	Status       Status `json:"level"`
	MB           int    `json:"mb"`
	Display      string `json:"display"`
	ShortDisplay string `json:"shortDisplay"`
}

// Stats summarizes one parse run.
type Stats struct {
	TotalLines  int  `json:"totalLines"`
	ParsedCount int  `json:"parsedCount"`
	Success     bool `json:"success"`
}

// lineRe matches one report line, e.g. "🟣 V123: 500 MB - Name".
// Separators are any mix of spaces, hyphens and colons.
var lineRe = regexp.MustCompile(`(` + glyphAlternation() + `)[\s\-:]*V(\d+)[\s\-:]*(\d+)[\s\-]*MB[\s\-]*(.+)`)

// Parse extracts VLAN readings from a raw report blob. Lines that do not
// match the grammar are skipped silently; that is how headers, separators
// and placeholder text are ignored. Input order is preserved and duplicate
// VLAN numbers are kept as-is (merge policy belongs to the caller).
func Parse(text string) ([]Reading, Stats) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var readings []Reading

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if len(line) < 5 {
			continue
		}

		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		status, ok := canonicalStatus([]rune(m[1])[0])
		if !ok {
			continue
		}
		number, err := strconv.Atoi(m[2])
		if err != nil || number <= 0 || number > math.MaxInt32 {
			continue
		}
		mb, err := strconv.Atoi(m[3])
		if err != nil || mb < 0 || mb > math.MaxInt32 {
			continue
		}
		name := strings.TrimSpace(m[4])

		readings = append(readings, Reading{
			Number:       number,
			Name:         name,
			Status:       status,
			MB:           mb,
			Display:      fmt.Sprintf("%s %dMB", status, mb),
			ShortDisplay: fmt.Sprintf("%s%d", status, mb),
		})
	}

	return readings, Stats{
		TotalLines:  len(lines),
		ParsedCount: len(readings),
		Success:     len(readings) > 0,
	}
}
