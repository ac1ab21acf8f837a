package extractor

// DefaultTag groups operations that declare no tags of their own.
const DefaultTag = "default"

// ParamLocation identifies where a parameter is carried in the request.
// Only path and query parameters affect generated method signatures; other
// locations are extracted but ignored by the renderers.
type ParamLocation string

// Parameter locations from the OpenAPI "in" field.
const (
	InPath   ParamLocation = "path"
	InQuery  ParamLocation = "query"
	InHeader ParamLocation = "header"
)

// ParamType is the normalized scalar type of a parameter, reduced from the
// OpenAPI type field to the small set the generated signatures distinguish.
// Anything unrecognized normalizes to ParamTypeString.
type ParamType string

// Normalized parameter types.
const (
	ParamTypeInt    ParamType = "int"
	ParamTypeDouble ParamType = "double"
	ParamTypeBool   ParamType = "bool"
	ParamTypeList   ParamType = "list"
	ParamTypeString ParamType = "string"
)

// Endpoint is one extracted (path, verb) operation. Endpoints are built once
// per extraction and immutable thereafter.
type Endpoint struct {
	// Path is the URL template including {param} placeholders, e.g. "/users/{id}"
	Path string
	// Method is the HTTP verb, normalized to lowercase.
	// Always one of get, post, put, delete, patch.
	Method string
	// Summary is the operation's summary text, if any
	Summary string
	// OperationID is the declared operationId; authoritative for method
	// naming when non-empty
	OperationID string
	// Parameters holds path/query/header parameters in declaration order
	Parameters []Parameter
	// RequestBody is nil when the operation has no request body.
	// Downstream templates branch on nil versus present.
	RequestBody *RequestBody
	// Responses maps status-code strings ("200", "404", "default") to
	// response descriptors
	Responses map[string]*Response
	// Tags holds the operation's declared tags. Empty means the operation
	// is grouped under DefaultTag in the tag index.
	Tags []string
}

// HasRequestBody reports whether the operation carries a request body.
func (e *Endpoint) HasRequestBody() bool {
	return e.RequestBody != nil
}

// Parameter describes a single operation parameter.
type Parameter struct {
	// Name is the parameter name as declared
	Name string
	// Location is the "in" value (path, query, header, ...)
	Location ParamLocation
	// Required defaults to false when the document omits it
	Required bool
	// Type is the normalized parameter type
	Type ParamType
}

// RequestBody describes an operation's request body.
type RequestBody struct {
	// Required defaults to false when the document omits it
	Required bool
	// Schema is the application/json schema with one level of $ref
	// resolved, or nil when the body declares no JSON schema
	Schema *Schema
}

// Response describes a single status-code response.
type Response struct {
	// Description is the response description text
	Description string
	// Schema is the application/json schema (OAS 3.x content or the
	// Swagger 2.0 schema field) with one level of $ref resolved, or nil
	Schema *Schema
}

// TagGroup collects the endpoints listed under one tag. Endpoints holds
// indexes into Result.Endpoints so an operation tagged twice is stored once
// and listed under each of its tags.
type TagGroup struct {
	// Name is the tag name, or DefaultTag for untagged operations
	Name string
	// Endpoints indexes into Result.Endpoints in listing order
	Endpoints []int
}

// ListEntry is one numbered row of the tag-grouped endpoint listing, the
// form shown to users for selection.
type ListEntry struct {
	// Index is the 1-based listing number
	Index int
	// Tag is the group the row appears under
	Tag string
	// Endpoint indexes into Result.Endpoints
	Endpoint int
}
