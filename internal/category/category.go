// Package category is the single source of truth for construction-phase
// ordering. Every category comparison in the gate and forecast paths goes
// through this package; the table must not be duplicated elsewhere.
package category

import "strings"

// PhaseOrder is the canonical construction phase sequence. Index position
// is the phase ordinal used for all "earlier phase" comparisons.
var PhaseOrder = []string{
	"Preliminary work",
	"Foundation",
	"Structural",
	"Interior finishes / exterior rough work",
	"Finals punches and inspections.",
	"Pre-sale completion package",
}

// UnrankedIndex sorts unmatched, empty, and "Uncategorized" labels after
// every real phase.
const UnrankedIndex = 999

// Normalize lowercases and trims a category label and corrects the
// historical "prelliminary" misspelling, which must still match
// "Preliminary work".
func Normalize(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	return strings.ReplaceAll(s, "prelliminary", "preliminary")
}

// Index returns the ordinal position of a category label in PhaseOrder,
// or UnrankedIndex if the label does not match any phase.
func Index(label string) int {
	n := Normalize(label)
	if n == "" || n == "uncategorized" {
		return UnrankedIndex
	}
	for i, phase := range PhaseOrder {
		if Normalize(phase) == n {
			return i
		}
	}
	return UnrankedIndex
}

// Same reports whether two labels name the same category after
// normalization. Stored gate names and task categories may differ in case
// and spacing, so raw string equality is never used.
func Same(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// DisplayName returns the label suitable for user-facing messages: the
// canonical phase spelling when the label matches a phase, otherwise the
// trimmed label with the misspelling corrected.
func DisplayName(label string) string {
	if i := Index(label); i != UnrankedIndex {
		return PhaseOrder[i]
	}
	s := strings.TrimSpace(label)
	s = strings.ReplaceAll(s, "prelliminary", "preliminary")
	s = strings.ReplaceAll(s, "Prelliminary", "Preliminary")
	return s
}
