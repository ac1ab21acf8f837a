// Package generrors provides structured error types for the feature generator.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and choose the right exit behavior.
//
// # Error Categories
//
//   - ExtractError: specification parsing and structural failures
//   - ManifestError: project manifest (pubspec) failures
//   - ReferenceError: $ref resolution failures
//   - SelectionError: invalid feature names, empty selections, bad indices
//   - PatchError: append-mode anchors that could not be located
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	result, err := extractor.Extract("swagger.json")
//	if err != nil {
//	    if errors.Is(err, generrors.ErrExtract) {
//	        // fatal startup error: report and exit non-zero
//	    }
//	}
package generrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrExtract indicates a specification extraction failure.
	ErrExtract = errors.New("extraction error")

	// ErrManifest indicates a project manifest failure.
	ErrManifest = errors.New("manifest error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrSelection indicates an invalid endpoint or feature selection.
	ErrSelection = errors.New("selection error")

	// ErrPatch indicates an append-mode anchor could not be located.
	ErrPatch = errors.New("patch anchor not found")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ExtractError represents a failure to extract endpoints from a specification.
// This includes YAML/JSON deserialization errors and structural issues such
// as a missing paths section or a malformed operation object.
type ExtractError struct {
	// Path is the file path or source identifier
	Path string
	// Section locates the problem inside the document (e.g. "paths./users.get")
	Section string
	// Message describes the extraction failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ExtractError) Error() string {
	msg := "extraction error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Section != "" {
		msg += " at " + e.Section
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ExtractError) Is(target error) bool {
	return target == ErrExtract
}

// ManifestError represents a failure to load the project manifest.
// A missing pubspec.yaml or an empty name key is a fatal startup error.
type ManifestError struct {
	// Path is the manifest path that was read
	Path string
	// Message describes the manifest failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ManifestError) Error() string {
	msg := "manifest error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ManifestError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ManifestError) Is(target error) bool {
	return target == ErrManifest
}

// ReferenceError represents a failure to resolve a $ref against the
// document's schema sections.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference
}

// SelectionError represents an invalid feature or endpoint selection:
// a restricted or non-snake_case feature name, an empty selection, or an
// index outside the listing range. Selection errors abort the operation
// cleanly before any file is touched.
type SelectionError struct {
	// Feature is the feature name involved (may be empty)
	Feature string
	// Index is the offending 1-based endpoint index (0 when not index-related)
	Index int
	// Message describes the selection problem
	Message string
}

// Error returns a human-readable error message.
func (e *SelectionError) Error() string {
	msg := "selection error"
	if e.Feature != "" {
		msg += " for feature " + e.Feature
	}
	if e.Index > 0 {
		msg += fmt.Sprintf(" (index %d)", e.Index)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as SelectionError has no underlying cause.
func (e *SelectionError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *SelectionError) Is(target error) bool {
	return target == ErrSelection
}

// PatchError represents an append-mode anchor that could not be located in
// an existing file. Patch errors are recorded as warnings on the generation
// result; they never abort the batch.
type PatchError struct {
	// File is the file that was being patched
	File string
	// Anchor names the textual anchor that was not found
	// (e.g. "last import", "closing brace", "class UserUsecase")
	Anchor string
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *PatchError) Error() string {
	msg := "patch anchor not found"
	if e.Anchor != "" {
		msg += ": " + e.Anchor
	}
	if e.File != "" {
		msg += " in " + e.File
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as PatchError has no underlying cause.
func (e *PatchError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *PatchError) Is(target error) bool {
	return target == ErrPatch
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
