package types

// Severity classifies how serious a violation of a standard is. It drives
// the overall-verdict precedence: a single failed critical standard makes
// the whole report non-compliant regardless of other results.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityAdvisory Severity = "advisory"
)

// IsValid reports whether s is one of the recognized severity levels.
func (s Severity) IsValid() bool {
	return s == SeverityCritical || s == SeverityAdvisory
}

// ComplianceStatus is the per-parameter classification outcome. The set is
// closed: every evaluated measurement lands in exactly one of these states.
type ComplianceStatus string

const (
	StatusCompliant        ComplianceStatus = "compliant"
	StatusNonCompliant     ComplianceStatus = "non_compliant"
	StatusUnknownParameter ComplianceStatus = "unknown_parameter"
	StatusInvalidValue     ComplianceStatus = "invalid_value"
)

// OverallStatus is the aggregate verdict for a whole report.
type OverallStatus string

const (
	OverallCompliant    OverallStatus = "compliant"
	OverallNonCompliant OverallStatus = "non_compliant"
	// OverallInconclusive means nothing could be classified: every submitted
	// parameter was unknown to the standards catalog.
	OverallInconclusive OverallStatus = "inconclusive"
)
