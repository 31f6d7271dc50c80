package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"aquacheck/internal/compliance"
	"aquacheck/internal/config"
	"aquacheck/internal/types"
)

// statusColor is the RGB triple used for a per-parameter status line.
type statusColor struct{ r, g, b int }

var (
	colorFail    = statusColor{200, 0, 0}
	colorPass    = statusColor{0, 150, 0}
	colorUnknown = statusColor{0, 0, 200}
	colorInvalid = statusColor{180, 100, 0}
	colorNotice  = statusColor{180, 100, 0}
	colorBody    = statusColor{50, 50, 50}
	colorFooter  = statusColor{120, 120, 120}
)

// Renderer produces PDF documents from compliance reports. It is stateless
// and safe for concurrent use; each Render call builds its own document.
type Renderer struct {
	title      string
	footerNote string
}

// NewRenderer creates a Renderer with the configured title and footer text.
func NewRenderer(cfg config.ReportConfig) *Renderer {
	return &Renderer{
		title:      cfg.Title,
		footerNote: cfg.FooterNote,
	}
}

// Render builds the PDF document for a compliance report and returns its
// bytes. Nothing is written to disk; callers stream the bytes to the client.
// catalogVersion is the human-readable standards version line, empty when
// the catalog source carried no metadata.
func (rn *Renderer) Render(rep compliance.Report, catalogVersion string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	rn.writeTitleBlock(pdf, rep, catalogVersion)
	rn.writeNotices(pdf, rep)
	rn.writeSummaryTable(pdf, rep)
	rn.writeDetails(pdf, rep)
	rn.writeFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering report %s: %w", rep.ID, err)
	}
	return buf.Bytes(), nil
}

func (rn *Renderer) writeTitleBlock(pdf *gofpdf.Fpdf, rep compliance.Report, catalogVersion string) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, sanitize(rn.title), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "Generated: "+rep.GeneratedAt.Format("2006-01-02 15:04:05")+" UTC", "", 1, "C", false, 0, "")
	if catalogVersion != "" {
		pdf.CellFormat(0, 6, sanitize("Standards database: "+catalogVersion), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 6, "Report ID: "+rep.ID, "", 1, "C", false, 0, "")

	// Overall verdict banner.
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 12)
	switch rep.Overall {
	case types.OverallNonCompliant:
		pdf.SetTextColor(colorFail.r, colorFail.g, colorFail.b)
		pdf.CellFormat(0, 8, "OVERALL: NON-COMPLIANT", "", 1, "C", false, 0, "")
	case types.OverallInconclusive:
		pdf.SetTextColor(colorUnknown.r, colorUnknown.g, colorUnknown.b)
		pdf.CellFormat(0, 8, "OVERALL: INCONCLUSIVE", "", 1, "C", false, 0, "")
	default:
		pdf.SetTextColor(colorPass.r, colorPass.g, colorPass.b)
		pdf.CellFormat(0, 8, "OVERALL: COMPLIANT", "", 1, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

// writeNotices lists skipped (unknown) parameters and invalid entries so the
// reader sees the caveats before the result tables.
func (rn *Renderer) writeNotices(pdf *gofpdf.Fpdf, rep compliance.Report) {
	var notices []string
	for _, res := range rep.Results {
		switch res.Status {
		case types.StatusUnknownParameter:
			notices = append(notices, fmt.Sprintf("%s: not found in the standards database -- skipped.", res.Parameter))
		case types.StatusInvalidValue:
			notices = append(notices, fmt.Sprintf("%s: %s", res.Parameter, res.Detail))
		}
	}
	if len(notices) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(colorNotice.r, colorNotice.g, colorNotice.b)
	pdf.CellFormat(0, 8, "NOTICES:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, n := range notices {
		pdf.MultiCell(0, 5, sanitize("  - "+n), "", "L", false)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func (rn *Renderer) writeSummaryTable(pdf *gofpdf.Fpdf, rep compliance.Report) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "1. SUMMARY OF RESULTS", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(65, 8, "Parameter", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Value", "1", 0, "C", true, 0, "")
	pdf.CellFormat(85, 8, "Status", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, res := range rep.Results {
		label := res.DisplayValue()
		if res.Unit != "" {
			label += " " + res.Unit
		} else if res.Standard != nil {
			label += " " + res.Standard.Unit
		}

		pdf.CellFormat(65, 8, sanitize(res.Parameter), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, sanitize(label), "1", 0, "C", false, 0, "")

		c, text := summaryCell(res.Status)
		pdf.SetTextColor(c.r, c.g, c.b)
		pdf.CellFormat(85, 8, text, "1", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(8)
}

// summaryCell maps a status to its summary-row color and label.
func summaryCell(status types.ComplianceStatus) (statusColor, string) {
	switch status {
	case types.StatusNonCompliant:
		return colorFail, "NON-COMPLIANT -- see details below"
	case types.StatusUnknownParameter:
		return colorUnknown, "UNKNOWN PARAMETER -- skipped"
	case types.StatusInvalidValue:
		return colorInvalid, "INVALID VALUE -- see notices"
	default:
		return colorPass, "COMPLIANT"
	}
}

func (rn *Renderer) writeDetails(pdf *gofpdf.Fpdf, rep compliance.Report) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "2. DETAILED ANALYSIS", "", 1, "L", false, 0, "")

	for _, res := range rep.Results {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(200, 150, 0)
		heading := fmt.Sprintf("  %s  (Result: %s", res.Parameter, res.DisplayValue())
		if res.Unit != "" {
			heading += " " + res.Unit
		}
		heading += ")"
		pdf.CellFormat(0, 8, sanitize(heading), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)

		c, _ := summaryCell(res.Status)
		pdf.SetTextColor(c.r, c.g, c.b)
		pdf.SetFont("Arial", "B", 10)

		line := "    " + statusLabel(res.Status)
		if res.Standard != nil {
			line += fmt.Sprintf("  --  Limit: %s %s  (severity: %s)",
				res.Standard.LimitString(), res.Standard.Unit, res.Standard.Severity)
		}
		pdf.CellFormat(0, 6, sanitize(line), "", 1, "L", false, 0, "")

		pdf.SetTextColor(colorBody.r, colorBody.g, colorBody.b)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, sanitize("        "+res.Detail), "", "L", false)

		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(3)
	}
}

// statusLabel is the uppercase status word used in the detailed breakdown.
func statusLabel(status types.ComplianceStatus) string {
	switch status {
	case types.StatusNonCompliant:
		return "FAIL"
	case types.StatusUnknownParameter:
		return "UNKNOWN"
	case types.StatusInvalidValue:
		return "INVALID"
	default:
		return "PASS"
	}
}

func (rn *Renderer) writeFooter(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(colorFooter.r, colorFooter.g, colorFooter.b)
	// MultiCell so long footer text wraps instead of being clipped.
	pdf.MultiCell(0, 5, sanitize(rn.footerNote), "", "C", false)
	pdf.SetTextColor(0, 0, 0)
}
