package report

// Status is the canonical health tier of a VLAN in a daily report. The
// value is the canonical glyph itself so stored snapshots render the same
// way the source reports do.
type Status string

const (
	StatusDown   Status = "❌" // service interruption
	StatusPurple Status = "🟣" // nominal tier A
	StatusGreen  Status = "🟢" // nominal tier B
	StatusOrange Status = "🟠" // degraded tier
)

// glyphClass maps every accepted status glyph to its canonical class.
// Reports arrive from multiple sources that render the same tier with
// circles, squares or legacy marks, so each variant resolves here.
var glyphClass = map[rune]Status{
	'❌': StatusDown,
	'🔴': StatusDown,
	'🟥': StatusDown,

	'🟣': StatusPurple,
	'🟪': StatusPurple,
	'🔵': StatusPurple,
	'🟦': StatusPurple,

	'🟢': StatusGreen,
	'🟩': StatusGreen,
	'✅': StatusGreen,

	'🟠': StatusOrange,
	'🟧': StatusOrange,
	'🟡': StatusOrange,
	'🟨': StatusOrange,
}

// Down reports whether the status denotes a service interruption.
func (s Status) Down() bool { return s == StatusDown }

// canonicalStatus resolves a glyph to its canonical class. ok is false for
// glyphs outside the accepted set.
func canonicalStatus(r rune) (Status, bool) {
	s, ok := glyphClass[r]
	return s, ok
}

// glyphAlternation builds the glyph part of the line pattern from the
// accepted set, so the pattern and the lookup table cannot drift apart.
func glyphAlternation() string {
	alt := ""
	for r := range glyphClass {
		if alt != "" {
			alt += "|"
		}
		alt += string(r)
	}
	return alt
}
