package repair

import (
	"strings"
	"unicode"
)

// Classifier decides whether a task name denotes a top-level schedule entry
// (a construction phase) rather than a child task within a phase.
type Classifier interface {
	IsTopLevel(name string) bool
}

// ClassifierFunc adapts a plain function to Classifier.
type ClassifierFunc func(name string) bool

func (f ClassifierFunc) IsTopLevel(name string) bool { return f(name) }

// DefaultPhases is the phase vocabulary used by PhaseClassifier when none is
// given. Matching is against the whole name, so "Plumbing" is a phase while
// "Rough Plumbing" is not.
var DefaultPhases = []string{
	"preconstruction", "pre-construction", "design", "permits",
	"site work", "sitework", "site preparation", "demolition", "excavation",
	"foundation", "foundations", "framing", "roofing", "exterior",
	"rough-in", "rough in", "mechanical", "electrical", "plumbing", "hvac",
	"insulation", "drywall", "interior finishes", "finishes",
	"landscaping", "punch list", "closeout",
}

// PhaseClassifier treats a name as top-level when, ignoring case and any
// leading list numbering, it equals a known phase, starts with "Phase N", or
// is written in capitals like "FRAMING".
type PhaseClassifier struct {
	phases map[string]struct{}
}

// NewPhaseClassifier builds a classifier over phases, or DefaultPhases when
// none are passed.
func NewPhaseClassifier(phases ...string) *PhaseClassifier {
	if len(phases) == 0 {
		phases = DefaultPhases
	}
	c := &PhaseClassifier{phases: make(map[string]struct{}, len(phases))}
	for _, p := range phases {
		c.phases[normalizeName(p)] = struct{}{}
	}
	return c
}

func (c *PhaseClassifier) IsTopLevel(name string) bool {
	trimmed := stripNumbering(strings.TrimSpace(name))
	if trimmed == "" {
		return false
	}
	if isShouted(trimmed) {
		return true
	}
	norm := normalizeName(trimmed)
	if _, ok := c.phases[norm]; ok {
		return true
	}
	return isPhaseHeading(norm)
}

// isPhaseHeading matches "phase 2", "phase 2 - framing" and similar.
func isPhaseHeading(norm string) bool {
	rest, ok := strings.CutPrefix(norm, "phase")
	if !ok {
		return false
	}
	rest = strings.TrimLeft(rest, " ")
	return rest != "" && rest[0] >= '0' && rest[0] <= '9'
}

// isShouted reports whether s has at least three letters and none of them
// lowercase.
func isShouted(s string) bool {
	letters := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if unicode.IsLower(r) {
			return false
		}
		letters++
	}
	return letters >= 3
}

// stripNumbering drops a leading "1.", "2)" or "3 -" list marker.
func stripNumbering(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i == len(s) {
		return s
	}
	rest := strings.TrimLeft(s[i:], " ")
	if rest == "" {
		return s
	}
	switch rest[0] {
	case '.', ')', '-', ':':
		return strings.TrimSpace(rest[1:])
	}
	return s
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
