package compliance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquacheck/internal/catalog"
	"aquacheck/internal/types"
)

// testCatalog loads the fixture standards table used across evaluator tests:
// pH (6.5-8.5, critical), Lead (max 0.01, critical), Turbidity (max 5,
// advisory), Dissolved Oxygen (min 5, advisory).
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	src := `{
  "parameters": [
    {"name": "pH", "unit": "pH", "minimum": 6.5, "maximum": 8.5, "severity": "critical"},
    {"name": "Lead", "unit": "mg/L", "maximum": 0.01, "severity": "critical"},
    {"name": "Turbidity", "unit": "NTU", "maximum": 5, "severity": "advisory"},
    {"name": "Dissolved Oxygen", "unit": "mg/L", "minimum": 5, "severity": "advisory"}
  ]
}`
	path := filepath.Join(t.TempDir(), "standards.json")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	cat, err := catalog.Load(path)
	require.NoError(t, err)
	return cat
}

func testEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	eval, err := NewEvaluator(testCatalog(t))
	require.NoError(t, err)
	return eval
}

func TestNewEvaluator_RequiresCatalog(t *testing.T) {
	_, err := NewEvaluator(nil)
	require.Error(t, err, "an evaluator must not exist without a loaded catalog")
}

func TestEvaluate_LengthAndOrderPreserving(t *testing.T) {
	eval := testEvaluator(t)

	set := NewMeasurementSet([]Sample{
		{Parameter: "Lead", Value: 0.005},
		{Parameter: "pH", Value: "abc"},
		{Parameter: "Chlorine", Value: 1.0},
		{Parameter: "Lead", Value: 0.2},
	})

	results := eval.Evaluate(set)
	require.Len(t, results, 4, "exactly one result per input measurement")
	assert.Equal(t, "Lead", results[0].Parameter)
	assert.Equal(t, "pH", results[1].Parameter)
	assert.Equal(t, "Chlorine", results[2].Parameter)
	assert.Equal(t, "Lead", results[3].Parameter)
}

func TestEvaluate_InclusiveBounds(t *testing.T) {
	eval := testEvaluator(t)

	tests := []struct {
		name  string
		value float64
		want  types.ComplianceStatus
	}{
		{"exactly at minimum", 6.5, types.StatusCompliant},
		{"exactly at maximum", 8.5, types.StatusCompliant},
		{"just below minimum", 6.4, types.StatusNonCompliant},
		{"just above maximum", 8.6, types.StatusNonCompliant},
		{"inside range", 7.0, types.StatusCompliant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewMeasurementSet([]Sample{{Parameter: "pH", Value: tt.value}})
			results := eval.Evaluate(set)
			require.Len(t, results, 1)
			assert.Equal(t, tt.want, results[0].Status)
		})
	}
}

func TestEvaluate_OneSidedBounds(t *testing.T) {
	eval := testEvaluator(t)

	// Minimum only: anything at or above passes, regardless of magnitude.
	set := NewMeasurementSet([]Sample{
		{Parameter: "Dissolved Oxygen", Value: 5.0},
		{Parameter: "Dissolved Oxygen", Value: 1e9},
		{Parameter: "Dissolved Oxygen", Value: 4.9},
	})
	results := eval.Evaluate(set)
	assert.Equal(t, types.StatusCompliant, results[0].Status)
	assert.Equal(t, types.StatusCompliant, results[1].Status)
	assert.Equal(t, types.StatusNonCompliant, results[2].Status)
	assert.Contains(t, results[2].Detail, "below minimum 5")

	// Maximum only: anything at or below passes.
	set = NewMeasurementSet([]Sample{
		{Parameter: "Lead", Value: 0.0},
		{Parameter: "Lead", Value: -1.0},
		{Parameter: "Lead", Value: 0.01},
	})
	results = eval.Evaluate(set)
	assert.Equal(t, types.StatusCompliant, results[0].Status)
	assert.Equal(t, types.StatusCompliant, results[1].Status)
	assert.Equal(t, types.StatusCompliant, results[2].Status)
}

func TestEvaluate_ViolationDetailNamesBoundAndDelta(t *testing.T) {
	eval := testEvaluator(t)

	set := NewMeasurementSet([]Sample{{Parameter: "Lead", Value: 0.02, Unit: "mg/L"}})
	results := eval.Evaluate(set)
	require.Len(t, results, 1)

	assert.Equal(t, types.StatusNonCompliant, results[0].Status)
	assert.Equal(t, "exceeds maximum 0.01 by 0.01", results[0].Detail)
}

func TestEvaluate_UnknownParameter(t *testing.T) {
	eval := testEvaluator(t)

	set := NewMeasurementSet([]Sample{{Parameter: "Chlorine", Value: 1.0, Unit: "mg/L"}})
	results := eval.Evaluate(set)
	require.Len(t, results, 1)

	assert.Equal(t, types.StatusUnknownParameter, results[0].Status)
	assert.Nil(t, results[0].Standard)
	assert.Contains(t, results[0].Detail, "Chlorine")
}

func TestEvaluate_InvalidValue(t *testing.T) {
	eval := testEvaluator(t)

	set := NewMeasurementSet([]Sample{{Parameter: "pH", Value: "abc", Unit: "pH"}})
	results := eval.Evaluate(set)
	require.Len(t, results, 1)

	assert.Equal(t, types.StatusInvalidValue, results[0].Status)
	assert.Contains(t, results[0].Detail, "not a valid number")
}

func TestEvaluate_UnitMismatchOverridesRange(t *testing.T) {
	eval := testEvaluator(t)

	// 7.0 would be compliant for pH, but the submitted unit disagrees with
	// the standard's: the comparison must never be performed silently.
	set := NewMeasurementSet([]Sample{
		{Parameter: "pH", Value: 7.0, Unit: "mg/L"},
		{Parameter: "Lead", Value: 99.0, Unit: "ug/L"},
	})
	results := eval.Evaluate(set)

	for _, res := range results {
		assert.Equal(t, types.StatusInvalidValue, res.Status)
		assert.Contains(t, res.Detail, "does not match standard unit")
	}
}

func TestEvaluate_UnitMatching(t *testing.T) {
	eval := testEvaluator(t)

	// Case-insensitive match and omitted unit are both acceptable.
	set := NewMeasurementSet([]Sample{
		{Parameter: "Lead", Value: 0.005, Unit: "MG/L"},
		{Parameter: "Lead", Value: 0.005},
	})
	results := eval.Evaluate(set)
	assert.Equal(t, types.StatusCompliant, results[0].Status)
	assert.Equal(t, types.StatusCompliant, results[1].Status)
}

func TestEvaluate_Deterministic(t *testing.T) {
	eval := testEvaluator(t)

	samples := []Sample{
		{Parameter: "pH", Value: 7.0, Unit: "pH"},
		{Parameter: "Lead", Value: 0.02, Unit: "mg/L"},
		{Parameter: "Chlorine", Value: 1.0},
		{Parameter: "Turbidity", Value: "bogus"},
	}

	first := eval.Evaluate(NewMeasurementSet(samples))
	second := eval.Evaluate(NewMeasurementSet(samples))
	assert.Equal(t, first, second)
}

func TestEvaluate_SpecimenScenario(t *testing.T) {
	eval := testEvaluator(t)

	set := NewMeasurementSet([]Sample{
		{Parameter: "pH", Value: 7.0, Unit: "pH"},
		{Parameter: "Lead", Value: 0.02, Unit: "mg/L"},
	})
	results := eval.Evaluate(set)
	require.Len(t, results, 2)

	assert.Equal(t, types.StatusCompliant, results[0].Status)
	assert.Equal(t, types.StatusNonCompliant, results[1].Status)
	assert.Equal(t, "exceeds maximum 0.01 by 0.01", results[1].Detail)

	rep := BuildReport(results)
	assert.Equal(t, types.OverallNonCompliant, rep.Overall)
}
