package portlabel

import "regexp"

// General is the grouping label for VLANs whose name carries no port hint.
const General = "عام"

type Rule struct {
	Regex   *regexp.Regexp
	Handler func(match []string) string
}

var Rules = []Rule{
	// Explicit port token: "E4 - مركز" → "E4"
	{
		regexp.MustCompile(`(?i)E(\d+)`),
		func(m []string) string { return "E" + m[1] },
	},
	// RouterOS interface names: "ether4 uplink" → "E4"
	{
		regexp.MustCompile(`(?i)ether(\d+)`),
		func(m []string) string { return "E" + m[1] },
	},
}

// Classify derives a coarse port/group label from a VLAN display name.
// First matching rule wins; names with no match fall back to General.
func Classify(name string) string {
	for _, rule := range Rules {
		if match := rule.Regex.FindStringSubmatch(name); len(match) > 1 {
			return rule.Handler(match)
		}
	}
	return General
}
