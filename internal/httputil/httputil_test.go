package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEndpointVerb(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		expected bool
	}{
		// Verbs that produce endpoints
		{"get", MethodGet, true},
		{"post", MethodPost, true},
		{"put", MethodPut, true},
		{"delete", MethodDelete, true},
		{"patch", MethodPatch, true},

		// Verbs the generator skips
		{"options", "options", false},
		{"head", "head", false},
		{"trace", "trace", false},

		// Non-verb path item keys
		{"parameters key", "parameters", false},
		{"servers key", "servers", false},
		{"summary key", "summary", false},
		{"extension key", "x-internal", false},

		// Callers lowercase before asking
		{"uppercase GET", "GET", false},
		{"mixed case Post", "Post", false},

		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsEndpointVerb(tt.method)
			assert.Equal(t, tt.expected, result, "IsEndpointVerb(%q) = %v, want %v", tt.method, result, tt.expected)
		})
	}
}

func TestIsStatusKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected bool
	}{
		// Valid: "default" keyword
		{"default keyword", "default", true},

		// Valid: numeric codes of any length, matching the lenient
		// treatment of response keys in real-world documents
		{"valid 200", "200", true},
		{"valid 201", "201", true},
		{"valid 204", "204", true},
		{"valid 404", "404", true},
		{"valid 500", "500", true},
		{"short numeric 20", "20", true},
		{"long numeric 2000", "2000", true},

		// Invalid: wildcard patterns
		{"wildcard 2XX", "2XX", false},
		{"wildcard 4XX", "4XX", false},
		{"lowercase wildcard 2xx", "2xx", false},

		// Invalid: extensions and other keys
		{"extension x-200", "x-200", false},
		{"alphabetic", "abc", false},
		{"mixed 20a", "20a", false},
		{"negative", "-200", false},
		{"whitespace", " 200", false},
		{"empty", "", false},
		{"Default capitalized", "Default", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsStatusKey(tt.key)
			assert.Equal(t, tt.expected, result, "IsStatusKey(%q) = %v, want %v", tt.key, result, tt.expected)
		})
	}
}

// TestMethodConstants verifies the constants stay lowercase, the form the
// extractor normalizes path item keys to.
func TestMethodConstants(t *testing.T) {
	assert.Equal(t, "get", MethodGet)
	assert.Equal(t, "post", MethodPost)
	assert.Equal(t, "put", MethodPut)
	assert.Equal(t, "delete", MethodDelete)
	assert.Equal(t, "patch", MethodPatch)
}
