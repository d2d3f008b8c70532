package schema

import (
	"fmt"
	"sort"
)

// DriverSpec describes one candidate explanatory variable. Kind and Levels are
// decided once at input validation and never re-inferred mid-computation.
type DriverSpec struct {
	Name   string     `json:"name"`
	Label  string     `json:"label"`
	Kind   DriverKind `json:"kind"`
	Levels []string   `json:"levels,omitempty"` // sorted; first level is the dummy reference
}

// DisplayLabel returns the configured label, falling back to the column name.
func (s DriverSpec) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Name
}

// Term is one column of the numeric design matrix. A numeric driver
// contributes a single term; a k-level categorical driver contributes k-1
// dummy terms. Each term belongs to exactly one driver.
type Term struct {
	Driver string `json:"driver"`
	Label  string `json:"label"` // e.g. "price" or "region=North"
}

// NumericSpec builds a numeric driver spec.
func NumericSpec(name, label string) DriverSpec {
	return DriverSpec{Name: name, Label: label, Kind: NumericKind}
}

// CategoricalSpec builds a categorical driver spec from the observed level
// set. Levels are sorted so dummy coding is deterministic across runs.
func CategoricalSpec(name, label string, levels []string) DriverSpec {
	sorted := make([]string, len(levels))
	copy(sorted, levels)
	sort.Strings(sorted)
	return DriverSpec{Name: name, Label: label, Kind: CategoricalKind, Levels: sorted}
}

// TermsFor expands a driver spec into its model terms.
func TermsFor(spec DriverSpec) []Term {
	if spec.Kind == NumericKind {
		return []Term{{Driver: spec.Name, Label: spec.Name}}
	}
	terms := make([]Term, 0, len(spec.Levels)-1)
	for _, level := range spec.Levels[1:] { // first level is the reference
		terms = append(terms, Term{
			Driver: spec.Name,
			Label:  fmt.Sprintf("%s=%s", spec.Name, level),
		})
	}
	return terms
}

// MixedKinds reports whether the spec list contains any categorical driver.
func MixedKinds(specs []DriverSpec) bool {
	for _, s := range specs {
		if s.Kind == CategoricalKind {
			return true
		}
	}
	return false
}
