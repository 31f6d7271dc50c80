// Package handlers contains the HTTP handler implementations for the
// aquacheck API. It covers:
//   - Parameter listing for the frontend selector (GET /v1/parameters)
//   - Batch compliance analysis (POST /v1/analysis)
//   - PDF report generation (POST /v1/reports)
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"aquacheck/internal/compliance"
	"aquacheck/internal/core"
	"aquacheck/internal/types"
)

// CatalogReader is the read-only catalog view the handler needs. Defined
// locally to avoid tight coupling per the handler injection pattern.
type CatalogReader interface {
	Parameters() []types.StandardDefinition
	Version() string
}

// Evaluator classifies a measurement set into ordered per-parameter results.
type Evaluator interface {
	Evaluate(set compliance.MeasurementSet) []types.ParameterResult
}

// Renderer turns a compliance report into a PDF document.
type Renderer interface {
	Render(rep compliance.Report, catalogVersion string) ([]byte, error)
}

// AnalysisHandler maps HTTP requests to the compliance evaluation core.
type AnalysisHandler struct {
	catalog   CatalogReader
	evaluator Evaluator
	renderer  Renderer
	validator *core.Validator
	logger    *slog.Logger

	// maxBatchSize caps samples per request; per-sample problems are never
	// request errors, but unbounded batches are.
	maxBatchSize int
}

// NewAnalysisHandler creates an AnalysisHandler with the provided dependencies.
func NewAnalysisHandler(
	cat CatalogReader,
	eval Evaluator,
	rend Renderer,
	val *core.Validator,
	logger *slog.Logger,
	maxBatchSize int,
) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBatchSize <= 0 {
		maxBatchSize = 100
	}
	return &AnalysisHandler{
		catalog:      cat,
		evaluator:    eval,
		renderer:     rend,
		validator:    val,
		logger:       logger,
		maxBatchSize: maxBatchSize,
	}
}

// RegisterRoutes mounts the analysis endpoints onto the mux.
func (h *AnalysisHandler) RegisterRoutes(r chi.Router) {
	r.Get("/parameters", h.HandleListParameters)
	r.Post("/analysis", h.HandleAnalyze)
	r.Post("/reports", h.HandleGenerateReport)
}

// --- DTOs ---

// sampleInput is one submitted name/value/unit triple. Value is untyped:
// clients send JSON numbers or strings, and non-numeric strings must reach
// the evaluation core to be classified invalid_value instead of rejected.
type sampleInput struct {
	Parameter string `json:"parameter" validate:"required"`
	Value     any    `json:"value"`
	Unit      string `json:"unit,omitempty"`
}

// analyzeRequest is the shared body for /v1/analysis and /v1/reports.
type analyzeRequest struct {
	Samples []sampleInput `json:"samples" validate:"required,dive"`
}

type parameterInfo struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

type parametersResponse struct {
	Parameters     []parameterInfo `json:"parameters"`
	CatalogVersion string          `json:"catalog_version,omitempty"`
}

type analysisResponse struct {
	ReportID          string                  `json:"report_id"`
	OverallStatus     types.OverallStatus     `json:"overall_status"`
	Results           []types.ParameterResult `json:"results"`
	SkippedParameters []string                `json:"skipped_parameters,omitempty"`
	GeneratedAt       string                  `json:"generated_at"`
	CatalogVersion    string                  `json:"catalog_version,omitempty"`
}

// --- Handlers ---

// HandleListParameters handles GET /v1/parameters.
// Returns all parameter names and units for the frontend selector, plus the
// catalog version for display.
func (h *AnalysisHandler) HandleListParameters(w http.ResponseWriter, r *http.Request) {
	defs := h.catalog.Parameters()
	params := make([]parameterInfo, 0, len(defs))
	for _, d := range defs {
		params = append(params, parameterInfo{Name: d.Name, Unit: d.Unit})
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{
		Data: parametersResponse{
			Parameters:     params,
			CatalogVersion: h.catalog.Version(),
		},
	})
}

// HandleAnalyze handles POST /v1/analysis.
// Accepts a JSON batch of {parameter, value, unit} samples, evaluates it
// against the standards catalog, and returns the structured report.
func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.evaluateRequest(w, r)
	if !ok {
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{
		Data: analysisResponse{
			ReportID:          rep.ID,
			OverallStatus:     rep.Overall,
			Results:           rep.Results,
			SkippedParameters: rep.SkippedParameters,
			GeneratedAt:       rep.GeneratedAt.Format(time.RFC3339),
			CatalogVersion:    h.catalog.Version(),
		},
	})
}

// HandleGenerateReport handles POST /v1/reports.
// Uses the same body as /v1/analysis, renders the PDF in memory, and streams
// it to the client as a download; nothing is persisted server-side.
func (h *AnalysisHandler) HandleGenerateReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.evaluateRequest(w, r)
	if !ok {
		return
	}

	pdfBytes, err := h.renderer.Render(rep, h.catalog.Version())
	if err != nil {
		h.logger.Error("report rendering failed",
			slog.String("report_id", rep.ID),
			slog.String("error", err.Error()),
		)
		core.Error(w, r, types.NewAppError(
			types.ErrCodeInternalRender,
			"report generation failed",
			err,
		))
		return
	}

	filename := "Water_Quality_Report_" + rep.GeneratedAt.Format("20060102_150405") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

// evaluateRequest decodes and validates the shared analysis body, runs the
// evaluation, and builds the report. It writes the error response itself and
// returns ok=false when the request is rejected.
func (h *AnalysisHandler) evaluateRequest(w http.ResponseWriter, r *http.Request) (compliance.Report, bool) {
	var req analyzeRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return compliance.Report{}, false
	}

	if len(req.Samples) == 0 {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationBatchEmpty,
			"samples must be a non-empty array",
			nil,
		))
		return compliance.Report{}, false
	}
	if len(req.Samples) > h.maxBatchSize {
		core.Error(w, r, types.NewAppErrorWithDetails(
			types.ErrCodeValidationBatchSize,
			fmt.Sprintf("at most %d samples are accepted per request", h.maxBatchSize),
			nil,
			map[string]any{"max": h.maxBatchSize, "got": len(req.Samples)},
		))
		return compliance.Report{}, false
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return compliance.Report{}, false
	}

	samples := make([]compliance.Sample, 0, len(req.Samples))
	for _, s := range req.Samples {
		samples = append(samples, compliance.Sample{
			Parameter: s.Parameter,
			Value:     s.Value,
			Unit:      s.Unit,
		})
	}

	set := compliance.NewMeasurementSet(samples)
	results := h.evaluator.Evaluate(set)
	rep := compliance.BuildReport(results)

	h.logger.Info("batch evaluated",
		slog.String("report_id", rep.ID),
		slog.Int("samples", set.Len()),
		slog.String("overall", string(rep.Overall)),
	)

	return rep, true
}
