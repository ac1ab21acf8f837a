// This file implements specification type to Dart type mapping, the
// type-keyed default policy and fromJson extraction expressions.

package render

import (
	"fmt"
	"strings"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/httputil"
)

// paramDartType maps a normalized parameter type to its Dart declaration type.
func paramDartType(t extractor.ParamType) string {
	switch t {
	case extractor.ParamTypeInt:
		return "int"
	case extractor.ParamTypeDouble:
		return "double"
	case extractor.ParamTypeBool:
		return "bool"
	case extractor.ParamTypeList:
		return "List<String>"
	default:
		return "String"
	}
}

// schemaDartType maps a resolved schema to a Dart type. An absent type, an
// unresolved nested $ref, or an unknown type keyword all map to dynamic.
func schemaDartType(s *extractor.Schema) string {
	if s == nil || s.IsRef() {
		return "dynamic"
	}
	switch s.Type {
	case "integer":
		return "int"
	case "number":
		return "double"
	case "boolean":
		return "bool"
	case "string":
		return "String"
	case "array":
		return "List<" + schemaDartType(s.Items) + ">"
	case "object":
		return "Map<String, dynamic>"
	default:
		return "dynamic"
	}
}

// dartDefault returns the default value expression for an optional field of
// the given Dart type. Numeric types default to zero, bool to false, lists
// and maps to empty const literals, everything else to the empty string.
// The policy keeps every generated model constructible without arguments
// for its optional fields.
func dartDefault(dartType string) string {
	switch {
	case dartType == "int" || dartType == "double":
		return "0"
	case dartType == "bool":
		return "false"
	case strings.HasPrefix(dartType, "List<"):
		return "const []"
	case strings.HasPrefix(dartType, "Map<"):
		return "const {}"
	default:
		return "''"
	}
}

// fromJSONExpr builds the fromJson extraction expression for a model field.
// Required fields cast directly; optional fields cast through a nullable
// type and fall back to the field's default.
func fromJSONExpr(jsonKey, dartType string, required bool) string {
	access := fmt.Sprintf("json['%s']", jsonKey)

	switch {
	case dartType == "dynamic":
		return access
	case dartType == "double":
		if required {
			return fmt.Sprintf("(%s as num).toDouble()", access)
		}
		return fmt.Sprintf("(%s as num?)?.toDouble() ?? 0", access)
	case strings.HasPrefix(dartType, "List<"):
		if required {
			return fmt.Sprintf("%s.from(%s as List)", dartType, access)
		}
		return fmt.Sprintf("%s.from(%s ?? const [])", dartType, access)
	case strings.HasPrefix(dartType, "Map<"):
		if required {
			return fmt.Sprintf("%s.from(%s as Map)", dartType, access)
		}
		return fmt.Sprintf("%s.from(%s ?? const {})", dartType, access)
	default:
		if required {
			return fmt.Sprintf("%s as %s", access, dartType)
		}
		return fmt.Sprintf("%s as %s? ?? %s", access, dartType, dartDefault(dartType))
	}
}

// nullableType returns the nullable form of a Dart type for state fields.
// dynamic is already nullable and stays unchanged.
func nullableType(dartType string) string {
	if dartType == "dynamic" {
		return "dynamic"
	}
	return dartType + "?"
}

// verbAnnotation maps an HTTP verb to its Retrofit annotation name. The
// second return value is false when the verb has no matching annotation and
// GET was substituted; callers surface that as a warning.
func verbAnnotation(method string) (string, bool) {
	switch strings.ToLower(method) {
	case httputil.MethodGet:
		return "GET", true
	case httputil.MethodPost:
		return "POST", true
	case httputil.MethodPut:
		return "PUT", true
	case httputil.MethodDelete:
		return "DELETE", true
	case httputil.MethodPatch:
		return "PATCH", true
	default:
		return "GET", false
	}
}

// paramAnnotation maps a parameter location to its Retrofit annotation.
// The annotation carries the original wire name; the Dart parameter name is
// derived separately and may differ.
func paramAnnotation(p extractor.Parameter) string {
	switch p.Location {
	case extractor.InPath:
		return fmt.Sprintf("@Path('%s')", p.Name)
	case extractor.InQuery:
		return fmt.Sprintf("@Query('%s')", p.Name)
	case extractor.InHeader:
		return fmt.Sprintf("@Header('%s')", p.Name)
	default:
		return fmt.Sprintf("@Query('%s')", p.Name)
	}
}
