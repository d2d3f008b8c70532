package schema

import (
	"errors"
	"fmt"
	"strings"
)

// RefusalCode identifies a fatal precondition failure.
type RefusalCode string

// All refusal codes raised by the engine.
const (
	InputValidationCode     RefusalCode = "input_validation"
	ZeroVarianceDriverCode  RefusalCode = "zero_variance_driver"
	ZeroVarianceOutcomeCode RefusalCode = "zero_variance_outcome"
	AliasedCoefficientCode  RefusalCode = "aliased_coefficient"
	SingularCorrelationCode RefusalCode = "singular_correlation_matrix"
	TooManyDriversCode      RefusalCode = "too_many_drivers"
	InsufficientSampleCode  RefusalCode = "insufficient_sample_size"
)

// Refusal is a structured, user-facing precondition failure. Every refusal is
// fatal to the run: no partial importance table is ever returned. The
// Diagnosis names the variables and values that triggered it, and Remediation
// lists concrete actions a caller can display verbatim.
type Refusal struct {
	Code        RefusalCode `json:"code"`
	Diagnosis   string      `json:"diagnosis"`
	Variables   []string    `json:"variables,omitempty"`
	Remediation []string    `json:"remediation"`
}

// Error implements the error interface.
func (r *Refusal) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", r.Code, r.Diagnosis)
	if len(r.Remediation) > 0 {
		fmt.Fprintf(&b, " (remediation: %s)", strings.Join(r.Remediation, "; "))
	}
	return b.String()
}

// AsRefusal unwraps err into a Refusal if one is present.
func AsRefusal(err error) (*Refusal, bool) {
	var r *Refusal
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// AllRefusals collects every Refusal reachable through err, including those
// folded together with errors.Join. A nil or refusal-free error yields nil.
func AllRefusals(err error) []*Refusal {
	if err == nil {
		return nil
	}
	if r, ok := err.(*Refusal); ok {
		return []*Refusal{r}
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		var out []*Refusal
		for _, sub := range u.Unwrap() {
			out = append(out, AllRefusals(sub)...)
		}
		return out
	case interface{ Unwrap() error }:
		return AllRefusals(u.Unwrap())
	}
	return nil
}

// NewInputValidation reports a malformed or missing outcome/driver specification.
func NewInputValidation(diagnosis string, variables ...string) *Refusal {
	return &Refusal{
		Code:      InputValidationCode,
		Diagnosis: diagnosis,
		Variables: variables,
		Remediation: []string{
			"check the outcome, driver and weight column names against the dataset",
		},
	}
}

// NewZeroVarianceDriver reports a driver with no variation in the complete-case sample.
func NewZeroVarianceDriver(driver string) *Refusal {
	return &Refusal{
		Code:      ZeroVarianceDriverCode,
		Diagnosis: fmt.Sprintf("driver %q has zero variance; its importance is undefined", driver),
		Variables: []string{driver},
		Remediation: []string{
			fmt.Sprintf("remove driver %q from the analysis", driver),
			"check for constant or single-level columns after listwise deletion",
		},
	}
}

// NewZeroVarianceOutcome reports an outcome with no variation.
func NewZeroVarianceOutcome(outcome string) *Refusal {
	return &Refusal{
		Code:      ZeroVarianceOutcomeCode,
		Diagnosis: fmt.Sprintf("outcome %q has zero variance; there is nothing to explain", outcome),
		Variables: []string{outcome},
		Remediation: []string{
			"verify the outcome column holds the intended measurements",
		},
	}
}

// NewAliasedCoefficient reports non-identifiable coefficients from a
// rank-deficient design, naming the implicated drivers.
func NewAliasedCoefficient(drivers []string) *Refusal {
	return &Refusal{
		Code: AliasedCoefficientCode,
		Diagnosis: fmt.Sprintf(
			"coefficients for %s are not identifiable: the design matrix is rank deficient",
			strings.Join(drivers, ", ")),
		Variables: drivers,
		Remediation: []string{
			"remove or combine these variables",
			"check for duplicated or perfectly collinear columns",
		},
	}
}

// NewSingularCorrelation reports a predictor correlation matrix too close to
// singular for a stable orthogonal decomposition.
func NewSingularCorrelation(minEigenvalue float64) *Refusal {
	return &Refusal{
		Code: SingularCorrelationCode,
		Diagnosis: fmt.Sprintf(
			"predictor correlation matrix is nearly singular (smallest eigenvalue %.3g); severe multicollinearity makes the orthogonal transform unstable",
			minEigenvalue),
		Remediation: []string{
			"remove or combine highly correlated drivers",
		},
	}
}

// NewTooManyDrivers reports a driver count beyond the exact-enumeration ceiling.
func NewTooManyDrivers(count int) *Refusal {
	return &Refusal{
		Code: TooManyDriversCode,
		Diagnosis: fmt.Sprintf(
			"%d drivers exceed the limit of %d for exact Shapley enumeration (2^%d reduced fits)",
			count, MaxShapleyDrivers, MaxShapleyDrivers),
		Remediation: []string{
			fmt.Sprintf("reduce the driver count to %d or fewer", MaxShapleyDrivers),
			"group related drivers into composite variables",
		},
	}
}

// NewInsufficientSample reports a complete-case count below the minimum for
// the requested model size.
func NewInsufficientSample(rows, drivers int) *Refusal {
	required := MinSampleFloor
	if perDriver := MinSamplePerDriver * drivers; perDriver > required {
		required = perDriver
	}
	return &Refusal{
		Code: InsufficientSampleCode,
		Diagnosis: fmt.Sprintf(
			"%d complete cases are below the minimum of %d for %d drivers",
			rows, required, drivers),
		Remediation: []string{
			"collect more observations",
			"reduce the number of drivers",
		},
	}
}
