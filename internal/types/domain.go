// Package types defines the shared domain model for the aquacheck platform:
// standard definitions, measurements, per-parameter results, and the typed
// error model used by every layer.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// StandardDefinition is the regulatory reference for one water-quality
// parameter: its acceptable range, reporting unit, and violation severity.
//
// At least one of Minimum/Maximum is always set; a nil bound means the range
// is unbounded on that side. When both are set, Minimum <= Maximum. Both
// invariants are enforced at catalog load time, never at lookup time.
type StandardDefinition struct {
	Name     string   `json:"name"`
	Unit     string   `json:"unit"`
	Minimum  *float64 `json:"minimum,omitempty"`
	Maximum  *float64 `json:"maximum,omitempty"`
	Severity Severity `json:"severity"`
}

// LimitString renders the acceptable range for display, e.g. "6.5 - 8.5",
// "Max 0.01" or "Min 6.5".
func (d StandardDefinition) LimitString() string {
	switch {
	case d.Minimum != nil && d.Maximum != nil:
		return FormatValue(*d.Minimum) + " - " + FormatValue(*d.Maximum)
	case d.Maximum != nil:
		return "Max " + FormatValue(*d.Maximum)
	case d.Minimum != nil:
		return "Min " + FormatValue(*d.Minimum)
	default:
		return "No numeric limit"
	}
}

// Measurement is one submitted reading. Measurements flagged Invalid carry
// the reason and keep their raw text so the report can echo the bad input;
// Value is only meaningful when Invalid is false.
type Measurement struct {
	Parameter     string
	RawValue      string
	Value         float64
	Unit          string
	Invalid       bool
	InvalidReason string
}

// ParameterResult is the classification of a single measurement against its
// standard. Standard is nil when the parameter is unknown to the catalog.
// Results are derived values and are never mutated after creation.
type ParameterResult struct {
	Parameter string              `json:"parameter"`
	RawValue  string              `json:"raw_value,omitempty"`
	Value     float64             `json:"value"`
	Unit      string              `json:"unit,omitempty"`
	Standard  *StandardDefinition `json:"standard,omitempty"`
	Status    ComplianceStatus    `json:"status"`
	Detail    string              `json:"detail"`
}

// DisplayValue returns the value as submitted: the raw text for invalid
// entries, the parsed number otherwise.
func (r ParameterResult) DisplayValue() string {
	if r.Status == StatusInvalidValue && strings.TrimSpace(r.RawValue) != "" {
		return r.RawValue
	}
	return FormatValue(r.Value)
}

// FormatValue formats a measurement or limit value for detail messages and
// report display. Six significant digits absorb float64 subtraction noise
// (0.02 - 0.01 must print as 0.01, not 0.010000000000000002).
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'g', 6, 64)
	// FormatFloat keeps exponent notation for very large/small magnitudes,
	// which is fine for report output.
	return s
}

// NormalizeParameter canonicalizes a parameter name for catalog lookup:
// whitespace-trimmed, case-insensitive.
func NormalizeParameter(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// UnitsMatch reports whether a submitted unit matches the standard's unit,
// ignoring case and surrounding whitespace. An empty submitted unit matches
// anything: unit submission is optional.
func UnitsMatch(submitted, standard string) bool {
	submitted = strings.TrimSpace(submitted)
	if submitted == "" {
		return true
	}
	return strings.EqualFold(submitted, strings.TrimSpace(standard))
}

// String implements fmt.Stringer for log output.
func (r ParameterResult) String() string {
	return fmt.Sprintf("%s=%s [%s]", r.Parameter, r.DisplayValue(), r.Status)
}
