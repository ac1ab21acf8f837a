// Package issues provides a unified issue type for extraction and generation problems.
package issues

import (
	"fmt"

	"github.com/MohamadsFakih/flutter-feature-generator/internal/severity"
)

// Issue represents a single problem found during extraction or generation.
type Issue struct {
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// File is the generated file the issue relates to (empty when not file-specific)
	File string
	// Method is the HTTP method of the endpoint the issue relates to (optional)
	Method string
	// Path is the URL path of the endpoint the issue relates to (optional)
	Path string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	context := i.Context()
	if context != "" {
		return fmt.Sprintf("%s %s: %s", symbol, context, i.Message)
	}
	return fmt.Sprintf("%s %s", symbol, i.Message)
}

// Context returns the endpoint or file context of the issue, or the empty
// string when the issue has neither.
func (i Issue) Context() string {
	switch {
	case i.Method != "" && i.Path != "" && i.File != "":
		return fmt.Sprintf("[%s %s] %s", i.Method, i.Path, i.File)
	case i.Method != "" && i.Path != "":
		return fmt.Sprintf("[%s %s]", i.Method, i.Path)
	case i.File != "":
		return i.File
	default:
		return ""
	}
}
