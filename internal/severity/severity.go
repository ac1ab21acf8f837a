// Package severity provides severity level constants for issues reported
// by the extractor and scaffold packages.
//
// The severity levels are exported by each public package that uses them:
//   - SeverityInfo: Informational messages about choices made
//   - SeverityWarning: Best-effort fallbacks and skipped work
//   - SeverityError: Problems that make a generation run incomplete
//   - SeverityCritical: Problems that prevent processing entirely
package severity

// Severity indicates the severity level of an issue found during
// extraction or generation.
type Severity int

const (
	// SeverityError indicates a problem that left the generation run incomplete,
	// such as a layer that could not be written.
	SeverityError Severity = iota

	// SeverityWarning indicates best-effort behavior the user should review:
	// a skipped patch anchor, a dropped duplicate endpoint, or a verb fallback.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	// These are non-actionable notices that may be useful for debugging.
	SeverityInfo

	// SeverityCritical indicates features that cannot be processed at all.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
