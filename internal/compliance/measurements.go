// Package compliance implements the evaluation engine: it turns a batch of
// submitted measurements plus a loaded standards catalog into an ordered set
// of per-parameter classifications and an aggregate report.
//
// Everything in this package is pure and stateless per call. A malformed or
// unrecognized individual measurement is classified, never raised: one bad
// field must not abort the batch.
package compliance

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"aquacheck/internal/types"
)

// Sample is one raw name/value/unit triple from the input-collection layer,
// pre-split into fields but not yet validated as numeric. Value is untyped
// because submissions arrive as either JSON numbers or strings.
type Sample struct {
	Parameter string
	Value     any
	Unit      string
}

// MeasurementSet is the validated input batch. Insertion order is submission
// order and is preserved through evaluation for report display. Duplicate
// parameter names are kept as-is: repeated samples for the same parameter
// may be legitimate and are evaluated independently.
type MeasurementSet struct {
	measurements []types.Measurement
}

// NewMeasurementSet builds a MeasurementSet from raw samples. Each value is
// checked for presence, numeric form, and finiteness; a failing entry is
// retained flagged invalid (with the reason) rather than dropped, so it
// still appears in the report as invalid_value.
func NewMeasurementSet(samples []Sample) MeasurementSet {
	ms := MeasurementSet{
		measurements: make([]types.Measurement, 0, len(samples)),
	}
	for _, s := range samples {
		ms.measurements = append(ms.measurements, coerce(s))
	}
	return ms
}

// Measurements returns the ordered measurements. The returned slice is a
// copy so callers cannot mutate the set.
func (ms MeasurementSet) Measurements() []types.Measurement {
	out := make([]types.Measurement, len(ms.measurements))
	copy(out, ms.measurements)
	return out
}

// Len returns the number of measurements in the set.
func (ms MeasurementSet) Len() int {
	return len(ms.measurements)
}

// coerce converts one raw sample into a Measurement, flagging it invalid
// when the value is missing, non-numeric, or non-finite.
func coerce(s Sample) types.Measurement {
	m := types.Measurement{
		Parameter: strings.TrimSpace(s.Parameter),
		Unit:      strings.TrimSpace(s.Unit),
	}

	var (
		value float64
		ok    bool
	)
	switch v := s.Value.(type) {
	case nil:
		m.RawValue = ""
	case float64:
		m.RawValue = types.FormatValue(v)
		value, ok = v, true
	case float32:
		m.RawValue = types.FormatValue(float64(v))
		value, ok = float64(v), true
	case int:
		m.RawValue = strconv.Itoa(v)
		value, ok = float64(v), true
	case int64:
		m.RawValue = strconv.FormatInt(v, 10)
		value, ok = float64(v), true
	case string:
		m.RawValue = strings.TrimSpace(v)
		if m.RawValue != "" {
			parsed, err := strconv.ParseFloat(m.RawValue, 64)
			if err == nil {
				value, ok = parsed, true
			}
		}
	default:
		m.RawValue = fmt.Sprintf("%v", v)
	}

	switch {
	case m.RawValue == "":
		m.Invalid = true
		m.InvalidReason = "no value provided"
	case !ok:
		m.Invalid = true
		m.InvalidReason = fmt.Sprintf("value %q is not a valid number", m.RawValue)
	case math.IsNaN(value) || math.IsInf(value, 0):
		m.Invalid = true
		m.InvalidReason = "value must be a finite real number"
	default:
		m.Value = value
	}

	return m
}
