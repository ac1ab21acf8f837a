package scaffold

import (
	"time"

	"github.com/MohamadsFakih/flutter-feature-generator/internal/issues"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/severity"
)

// Issue represents a single problem recorded during a generation run.
type Issue = issues.Issue

// Severity is the issue severity scale shared across packages.
type Severity = severity.Severity

// Severity levels for Issue values recorded on a Result.
const (
	SeverityError    = severity.SeverityError
	SeverityWarning  = severity.SeverityWarning
	SeverityInfo     = severity.SeverityInfo
	SeverityCritical = severity.SeverityCritical
)

// FileAction describes what a generation run did with one file.
type FileAction string

const (
	// ActionCreated marks a file written fresh.
	ActionCreated FileAction = "created"
	// ActionAppended marks an existing file extended in place.
	ActionAppended FileAction = "appended"
	// ActionSkipped marks a file deliberately left untouched, such as a
	// patch target whose anchor was missing or a model file that already
	// exists.
	ActionSkipped FileAction = "skipped"
)

// GeneratedFile records one file touched by a generation run.
type GeneratedFile struct {
	// Path is the project-root-relative path, slash-separated. Directory
	// entries end with a trailing slash.
	Path string
	// Action is what happened at the path
	Action FileAction
}

// SkippedEndpoint records a selected endpoint dropped before rendering
// because the existing service file already contains it.
type SkippedEndpoint struct {
	// Method is the lowercase HTTP method
	Method string
	// Path is the endpoint path template
	Path string
	// Reason explains why the endpoint was dropped
	Reason string
}

// Result contains the outcome of one generation or append run.
type Result struct {
	// FeatureName is the validated snake_case feature name
	FeatureName string
	// Location is the project-relative feature directory
	Location string
	// IsUpdate is true when the feature already existed before the run
	IsUpdate bool
	// Cancelled is true when the exists choice cancelled the run; no
	// files were touched
	Cancelled bool
	// Message is a one-line summary of the run suitable for display
	Message string
	// Files lists every path touched, in write order
	Files []GeneratedFile
	// SkippedEndpoints lists selected endpoints dropped because the
	// existing service file already contains them
	SkippedEndpoints []SkippedEndpoint
	// Issues contains rendering and patching issues
	Issues []Issue
	// EndpointCount is the number of endpoints actually rendered
	EndpointCount int
	// CreatedCount is the number of files written fresh
	CreatedCount int
	// AppendedCount is the number of files extended in place
	AppendedCount int
	// SkippedCount is the number of files deliberately left untouched
	SkippedCount int
	// WarningCount is the number of warning-severity issues
	WarningCount int
	// Success is false when the run was cancelled or recorded
	// error-severity issues
	Success bool
	// GenerateTime is the time taken by the run
	GenerateTime time.Duration
}

// HasWarnings reports whether any warning-severity issues were recorded.
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the recorded entry for a path, or nil when the run did
// not touch it.
func (r *Result) GetFile(path string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Path == path {
			return &r.Files[i]
		}
	}
	return nil
}

// updateCounts tallies Files by action and Issues by severity and derives
// Success.
func (r *Result) updateCounts() {
	r.CreatedCount, r.AppendedCount, r.SkippedCount, r.WarningCount = 0, 0, 0, 0
	errorCount := 0
	for _, f := range r.Files {
		switch f.Action {
		case ActionCreated:
			r.CreatedCount++
		case ActionAppended:
			r.AppendedCount++
		case ActionSkipped:
			r.SkippedCount++
		}
	}
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityWarning:
			r.WarningCount++
		case SeverityError, SeverityCritical:
			errorCount++
		}
	}
	r.Success = !r.Cancelled && errorCount == 0
}
