// Package httputil provides HTTP method and response-key helpers shared by
// the extractor and the Dart renderers.
package httputil

// Lowercase HTTP method names as they appear as OpenAPI path item keys.
// The extractor lowercases document keys before comparing, so these are
// the canonical spelling throughout the module; display layers uppercase
// on output.
const (
	MethodGet    = "get"
	MethodPost   = "post"
	MethodPut    = "put"
	MethodDelete = "delete"
	MethodPatch  = "patch"
)

// endpointVerbs lists the methods that produce endpoints. OPTIONS, HEAD,
// and TRACE never map to a generated client call, so their path item keys
// are skipped along with the non-verb keys (parameters, servers, summary,
// x-...).
var endpointVerbs = map[string]bool{
	MethodGet:    true,
	MethodPost:   true,
	MethodPut:    true,
	MethodDelete: true,
	MethodPatch:  true,
}

// IsEndpointVerb reports whether the lowercase method produces an endpoint.
func IsEndpointVerb(method string) bool {
	return endpointVerbs[method]
}

// IsStatusKey reports whether a responses key is acceptable: all digits or
// the literal "default". Wildcard patterns like "2XX" are rejected; the
// generated Dart inspects exact status codes only.
func IsStatusKey(key string) bool {
	if key == "default" {
		return true
	}
	if key == "" {
		return false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
