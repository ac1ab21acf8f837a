// This file implements name derivation from endpoint descriptors to Dart
// identifiers, including reserved word escaping and feature name validation.

package render

import (
	"strings"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/generrors"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/httputil"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/naming"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/stringutil"
)

// dartReservedWords contains Dart reserved keywords that cannot be used as
// identifiers. Built-in identifiers like "dynamic" or "late" are not listed
// because Dart allows them as plain identifiers.
var dartReservedWords = map[string]bool{
	"assert": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "default": true, "do": true, "else": true,
	"enum": true, "extends": true, "false": true, "final": true, "finally": true,
	"for": true, "if": true, "in": true, "is": true, "new": true,
	"null": true, "rethrow": true, "return": true, "super": true, "switch": true,
	"this": true, "throw": true, "true": true, "try": true, "var": true,
	"void": true, "while": true, "with": true,
}

// escapeReservedWord checks if a name is a Dart reserved keyword and escapes
// it by appending an underscore. The check is case-sensitive because Dart
// keywords are all lowercase and a capitalized form is a valid identifier.
func escapeReservedWord(name string) string {
	if dartReservedWords[name] {
		return name + "_"
	}
	return name
}

// MethodName derives the Dart method name for an endpoint.
//
// A non-empty OperationID wins and is converted to camelCase. Otherwise the
// name is built from the path: split on "/", drop empty segments and
// placeholder segments starting with "{", and take the last remaining
// segment. When no segment remains the lowercased verb itself is the name.
// Otherwise the verb keys a prefix: GET produces "get"+Pascal(segment),
// POST "create"+..., PUT "update"+..., DELETE "delete"+..., PATCH
// "patch"+... Any other verb yields camelCase(segment).
func MethodName(e extractor.Endpoint) string {
	if e.OperationID != "" {
		return escapeReservedWord(naming.ToCamelCase(e.OperationID))
	}

	base := lastPathSegment(e.Path)
	if base == "" {
		return strings.ToLower(e.Method)
	}

	switch strings.ToLower(e.Method) {
	case httputil.MethodGet:
		return "get" + naming.ToPascalCase(base)
	case httputil.MethodPost:
		return "create" + naming.ToPascalCase(base)
	case httputil.MethodPut:
		return "update" + naming.ToPascalCase(base)
	case httputil.MethodDelete:
		return "delete" + naming.ToPascalCase(base)
	case httputil.MethodPatch:
		return "patch" + naming.ToPascalCase(base)
	default:
		return escapeReservedWord(naming.ToCamelCase(base))
	}
}

// lastPathSegment returns the last path segment that is neither empty nor a
// "{param}" placeholder, or "" when no such segment exists.
func lastPathSegment(path string) string {
	var base string
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || strings.HasPrefix(seg, "{") {
			continue
		}
		base = seg
	}
	return base
}

// RequestModelName derives the request model class name for an endpoint.
// The name is always Pascal(MethodName)+"Request", synthesized from the
// method name rather than the referenced schema's own name, so that the
// service and repository renderings can never disagree about it.
func RequestModelName(e extractor.Endpoint) string {
	return naming.ToPascalCase(MethodName(e)) + "Request"
}

// ResponseModelName derives the response model class name for an endpoint
// as Pascal(MethodName)+"Response".
func ResponseModelName(e extractor.Endpoint) string {
	return naming.ToPascalCase(MethodName(e)) + "Response"
}

// StateFieldName derives the per-endpoint state field name as
// MethodName+"Response" (camelCase).
func StateFieldName(e extractor.Endpoint) string {
	return MethodName(e) + "Response"
}

// EventClassName derives the BLoC event subclass name for an endpoint as
// Pascal(MethodName)+"Event".
func EventClassName(e extractor.Endpoint) string {
	return naming.ToPascalCase(MethodName(e)) + "Event"
}

// handlerName derives the private BLoC handler method name for an endpoint,
// e.g. "_onGetUsers".
func handlerName(e extractor.Endpoint) string {
	return "_on" + naming.ToPascalCase(MethodName(e))
}

// SuccessResponse returns the endpoint's success response, checking status
// keys "200", "201" and "204" in that order. The second return value is
// false when none of the three is present; the generated return type then
// falls back to dynamic rather than failing.
func SuccessResponse(e extractor.Endpoint) (*extractor.Response, bool) {
	for _, status := range []string{"200", "201", "204"} {
		if resp, ok := e.Responses[status]; ok {
			return resp, true
		}
	}
	return nil, false
}

// ValidateFeatureName checks that name is a usable snake_case feature name.
// Violations are selection errors: the operation aborts cleanly before any
// file is touched.
func ValidateFeatureName(name string) error {
	if name == "" {
		return &generrors.SelectionError{
			Message: "feature name cannot be empty",
		}
	}
	if !stringutil.IsSnakeCase(name) {
		return &generrors.SelectionError{
			Feature: name,
			Message: "feature name must be snake_case (lowercase letters, digits and underscores, starting with a letter)",
		}
	}
	if dartReservedWords[name] {
		return &generrors.SelectionError{
			Feature: name,
			Message: "feature name is a Dart reserved word",
		}
	}
	return nil
}

// paramName converts a specification parameter name to a valid Dart
// parameter name (camelCase), escaping reserved words.
func paramName(s string) string {
	name := naming.ToCamelCase(s)
	if name == "" {
		return "param"
	}
	return escapeReservedWord(name)
}
