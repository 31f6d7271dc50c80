package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquacheck/internal/types"
)

func critical(min, max *float64) *types.StandardDefinition {
	return &types.StandardDefinition{Name: "x", Unit: "u", Minimum: min, Maximum: max, Severity: types.SeverityCritical}
}

func advisory(min, max *float64) *types.StandardDefinition {
	return &types.StandardDefinition{Name: "x", Unit: "u", Minimum: min, Maximum: max, Severity: types.SeverityAdvisory}
}

func ptr(v float64) *float64 { return &v }

func result(param string, status types.ComplianceStatus, std *types.StandardDefinition) types.ParameterResult {
	return types.ParameterResult{Parameter: param, Status: status, Standard: std}
}

func TestBuildReport_CriticalFailureWins(t *testing.T) {
	// One critical failure makes the verdict non-compliant no matter how
	// many other parameters pass.
	results := []types.ParameterResult{
		result("a", types.StatusCompliant, advisory(nil, ptr(1))),
		result("b", types.StatusCompliant, advisory(nil, ptr(1))),
		result("lead", types.StatusNonCompliant, critical(nil, ptr(0.01))),
		result("c", types.StatusCompliant, advisory(nil, ptr(1))),
	}

	rep := BuildReport(results)
	assert.Equal(t, types.OverallNonCompliant, rep.Overall)
}

func TestBuildReport_AdvisoryFailureStillNonCompliant(t *testing.T) {
	results := []types.ParameterResult{
		result("a", types.StatusCompliant, critical(ptr(6.5), ptr(8.5))),
		result("turbidity", types.StatusNonCompliant, advisory(nil, ptr(5))),
	}

	rep := BuildReport(results)
	assert.Equal(t, types.OverallNonCompliant, rep.Overall)
}

func TestBuildReport_InvalidValueIsNonCompliant(t *testing.T) {
	results := []types.ParameterResult{
		result("a", types.StatusCompliant, advisory(nil, ptr(1))),
		result("b", types.StatusInvalidValue, nil),
	}

	rep := BuildReport(results)
	assert.Equal(t, types.OverallNonCompliant, rep.Overall)
}

func TestBuildReport_OnlyUnknownsIsInconclusive(t *testing.T) {
	results := []types.ParameterResult{
		result("chlorine", types.StatusUnknownParameter, nil),
	}

	rep := BuildReport(results)
	assert.Equal(t, types.OverallInconclusive, rep.Overall)
	assert.Equal(t, []string{"chlorine"}, rep.SkippedParameters)
}

func TestBuildReport_MixedCompliantAndUnknownIsCompliantWithCaveat(t *testing.T) {
	results := []types.ParameterResult{
		result("ph", types.StatusCompliant, critical(ptr(6.5), ptr(8.5))),
		result("chlorine", types.StatusUnknownParameter, nil),
		result("fluoride", types.StatusUnknownParameter, nil),
	}

	rep := BuildReport(results)
	assert.Equal(t, types.OverallCompliant, rep.Overall)
	assert.Equal(t, []string{"chlorine", "fluoride"}, rep.SkippedParameters,
		"skipped parameters must be flagged so the renderer can surface the caveat")
}

func TestBuildReport_AllCompliant(t *testing.T) {
	results := []types.ParameterResult{
		result("a", types.StatusCompliant, critical(ptr(6.5), ptr(8.5))),
		result("b", types.StatusCompliant, advisory(nil, ptr(5))),
	}

	rep := BuildReport(results)
	assert.Equal(t, types.OverallCompliant, rep.Overall)
	assert.Empty(t, rep.SkippedParameters)
}

func TestBuildReport_UnknownPlusFailureIsNonCompliantNotInconclusive(t *testing.T) {
	results := []types.ParameterResult{
		result("chlorine", types.StatusUnknownParameter, nil),
		result("lead", types.StatusNonCompliant, advisory(nil, ptr(0.01))),
	}

	rep := BuildReport(results)
	assert.Equal(t, types.OverallNonCompliant, rep.Overall)
}

func TestBuildReport_PreservesResultOrder(t *testing.T) {
	results := []types.ParameterResult{
		result("z", types.StatusCompliant, advisory(nil, ptr(1))),
		result("a", types.StatusUnknownParameter, nil),
		result("m", types.StatusCompliant, advisory(nil, ptr(1))),
	}

	rep := BuildReport(results)
	require.Len(t, rep.Results, 3)
	assert.Equal(t, "z", rep.Results[0].Parameter)
	assert.Equal(t, "a", rep.Results[1].Parameter)
	assert.Equal(t, "m", rep.Results[2].Parameter)
}

func TestBuildReport_DeterministicModuloIDAndTimestamp(t *testing.T) {
	results := []types.ParameterResult{
		result("a", types.StatusCompliant, advisory(nil, ptr(1))),
		result("b", types.StatusUnknownParameter, nil),
	}

	first := BuildReport(results)
	second := BuildReport(results)

	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, first.Overall, second.Overall)
	assert.Equal(t, first.SkippedParameters, second.SkippedParameters)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBuildReport_StampsMetadata(t *testing.T) {
	rep := BuildReport([]types.ParameterResult{
		result("a", types.StatusCompliant, advisory(nil, ptr(1))),
	})

	assert.NotEmpty(t, rep.ID)
	assert.False(t, rep.GeneratedAt.IsZero())
	assert.Equal(t, "UTC", rep.GeneratedAt.Location().String())
}
