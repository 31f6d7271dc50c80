package compliance

import (
	"fmt"

	"aquacheck/internal/catalog"
	"aquacheck/internal/types"
)

// Evaluator classifies measurements against a loaded standards catalog.
//
// An Evaluator can only be constructed around a successfully loaded catalog;
// evaluating against an absent catalog is a programming-contract violation
// prevented here by construction. The evaluator holds no other state and is
// safe for concurrent use: the catalog is read-only and each call works on
// its own MeasurementSet.
type Evaluator struct {
	catalog *catalog.Catalog
}

// NewEvaluator creates an Evaluator over the given catalog.
func NewEvaluator(c *catalog.Catalog) (*Evaluator, error) {
	if c == nil {
		return nil, fmt.Errorf("evaluator requires a loaded standards catalog")
	}
	return &Evaluator{catalog: c}, nil
}

// Evaluate classifies every measurement in the set, in submission order,
// producing exactly one ParameterResult per input measurement.
//
// Classification precedence per measurement:
//  1. Flagged invalid at construction -> invalid_value.
//  2. Parameter not in the catalog -> unknown_parameter (nil standard).
//  3. Submitted unit differs from the standard's unit -> invalid_value.
//     A numeric comparison across mismatched units is never performed.
//  4. Inclusive [minimum, maximum] comparison, an absent bound being
//     unbounded on that side -> compliant or non_compliant, the detail
//     naming the violated bound and the signed difference.
//
// Evaluate is a pure function: deterministic for identical inputs, and it
// mutates neither the catalog nor the measurement set.
func (e *Evaluator) Evaluate(set MeasurementSet) []types.ParameterResult {
	results := make([]types.ParameterResult, 0, set.Len())
	for _, m := range set.measurements {
		results = append(results, e.classify(m))
	}
	return results
}

func (e *Evaluator) classify(m types.Measurement) types.ParameterResult {
	res := types.ParameterResult{
		Parameter: m.Parameter,
		RawValue:  m.RawValue,
		Value:     m.Value,
		Unit:      m.Unit,
	}

	if m.Invalid {
		res.Status = types.StatusInvalidValue
		res.Detail = m.InvalidReason
		return res
	}

	std := e.catalog.Lookup(m.Parameter)
	if std == nil {
		res.Status = types.StatusUnknownParameter
		res.Detail = fmt.Sprintf("parameter %q not found in standards catalog", m.Parameter)
		return res
	}
	res.Standard = std

	if !types.UnitsMatch(m.Unit, std.Unit) {
		res.Status = types.StatusInvalidValue
		res.Detail = fmt.Sprintf("unit %q does not match standard unit %q", m.Unit, std.Unit)
		return res
	}

	if std.Minimum != nil && m.Value < *std.Minimum {
		res.Status = types.StatusNonCompliant
		res.Detail = fmt.Sprintf("below minimum %s by %s",
			types.FormatValue(*std.Minimum), types.FormatValue(*std.Minimum-m.Value))
		return res
	}
	if std.Maximum != nil && m.Value > *std.Maximum {
		res.Status = types.StatusNonCompliant
		res.Detail = fmt.Sprintf("exceeds maximum %s by %s",
			types.FormatValue(*std.Maximum), types.FormatValue(m.Value-*std.Maximum))
		return res
	}

	res.Status = types.StatusCompliant
	res.Detail = fmt.Sprintf("within limit (%s)", std.LimitString())
	return res
}
