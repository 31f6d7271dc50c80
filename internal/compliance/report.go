package compliance

import (
	"time"

	"github.com/google/uuid"

	"aquacheck/internal/types"
)

// Report aggregates per-parameter results into an overall verdict. It is
// immutable once built and is the entire contract a rendering collaborator
// needs: renderers must never re-derive compliance logic.
type Report struct {
	// ID uniquely identifies one generated report, for log correlation and
	// download filenames.
	ID string `json:"id"`

	// Results preserves evaluation (= submission) order.
	Results []types.ParameterResult `json:"results"`

	Overall types.OverallStatus `json:"overall_status"`

	// SkippedParameters lists parameters that were unknown to the catalog,
	// so renderers can surface the caveat even when the overall verdict is
	// compliant.
	SkippedParameters []string `json:"skipped_parameters,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// BuildReport derives the overall verdict from an ordered result sequence.
//
// Precedence, first match wins:
//  1. Any non-compliant result against a critical standard -> non_compliant.
//  2. Any non-compliant (any severity) or invalid result -> non_compliant.
//  3. Only unknown parameters, nothing classified -> inconclusive.
//  4. Otherwise -> compliant; unknown parameters are ignored for the verdict
//     but flagged in SkippedParameters.
//
// The verdict is a pure function of the result sequence; only ID and
// GeneratedAt differ between two builds over identical results.
func BuildReport(results []types.ParameterResult) Report {
	rep := Report{
		ID:          uuid.NewString(),
		Results:     results,
		GeneratedAt: time.Now().UTC(),
	}

	var (
		criticalFailure bool
		anyFailure      bool
		anyInvalid      bool
		anyClassified   bool
	)

	for _, r := range results {
		switch r.Status {
		case types.StatusNonCompliant:
			anyClassified = true
			anyFailure = true
			if r.Standard != nil && r.Standard.Severity == types.SeverityCritical {
				criticalFailure = true
			}
		case types.StatusCompliant:
			anyClassified = true
		case types.StatusInvalidValue:
			anyInvalid = true
		case types.StatusUnknownParameter:
			rep.SkippedParameters = append(rep.SkippedParameters, r.Parameter)
		}
	}

	switch {
	case criticalFailure:
		rep.Overall = types.OverallNonCompliant
	case anyFailure || anyInvalid:
		rep.Overall = types.OverallNonCompliant
	case !anyClassified && len(rep.SkippedParameters) > 0:
		rep.Overall = types.OverallInconclusive
	default:
		rep.Overall = types.OverallCompliant
	}

	return rep
}
