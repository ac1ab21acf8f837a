package extractor

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	featuregen "github.com/MohamadsFakih/flutter-feature-generator"
	"github.com/MohamadsFakih/flutter-feature-generator/generrors"
)

// TestExtract_BasicOAS3 tests extraction of a minimal OAS 3.x document with
// path and query parameters and a referenced response schema
func TestExtract_BasicOAS3(t *testing.T) {
	doc := []byte(`
openapi: 3.0.3
info:
  title: Users API
  version: 1.0.0
paths:
  /users/{id}:
    get:
      summary: Fetch a single user
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: integer
        - name: verbose
          in: query
          schema:
            type: boolean
      responses:
        '200':
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/User'
components:
  schemas:
    User:
      type: object
      properties:
        id:
          type: integer
        name:
          type: string
      required:
        - id
`)
	result, err := New().ExtractBytes(doc)
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", result.Version)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, "ExtractBytes.yaml", result.SourcePath)
	assert.Equal(t, int64(len(doc)), result.SourceSize)
	assert.Equal(t, DocumentStats{PathCount: 1, EndpointCount: 1, TagCount: 1, SchemaCount: 1}, result.Stats)

	require.Len(t, result.Endpoints, 1)
	e := result.Endpoints[0]
	assert.Equal(t, "/users/{id}", e.Path)
	assert.Equal(t, "get", e.Method)
	assert.Equal(t, "Fetch a single user", e.Summary)
	assert.Empty(t, e.OperationID)
	assert.Empty(t, e.Tags)
	assert.False(t, e.HasRequestBody())

	require.Len(t, e.Parameters, 2)
	assert.Equal(t, Parameter{Name: "id", Location: InPath, Required: true, Type: ParamTypeInt}, e.Parameters[0])
	assert.Equal(t, Parameter{Name: "verbose", Location: InQuery, Required: false, Type: ParamTypeBool}, e.Parameters[1])

	resp := e.Responses["200"]
	require.NotNil(t, resp)
	assert.Equal(t, "OK", resp.Description)
	require.NotNil(t, resp.Schema)
	assert.Equal(t, "object", resp.Schema.Type)
	require.Len(t, resp.Schema.Properties, 2)
	assert.Equal(t, "id", resp.Schema.Properties[0].Name)
	assert.Equal(t, "name", resp.Schema.Properties[1].Name)
	assert.True(t, resp.Schema.IsRequired("id"))

	// untagged operations group under the synthetic default tag
	require.Len(t, result.Tags, 1)
	assert.Equal(t, DefaultTag, result.Tags[0].Name)
	assert.Equal(t, []int{0}, result.Tags[0].Endpoints)
}

// TestExtract_RequestBodyRefResolution tests that a $ref request body is
// replaced by the referenced schema definition
func TestExtract_RequestBodyRefResolution(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
info:
  title: Orders API
  version: 1.0.0
paths:
  /orders:
    post:
      operationId: placeOrder
      tags: [orders]
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/OrderRequest'
      responses:
        '201':
          description: Created
components:
  schemas:
    OrderRequest:
      type: object
      properties:
        productId:
          type: integer
        quantity:
          type: integer
      required:
        - productId
`)
	result, err := New().ExtractBytes(doc)
	require.NoError(t, err)

	require.Len(t, result.Endpoints, 1)
	e := result.Endpoints[0]
	assert.Equal(t, "placeOrder", e.OperationID)
	assert.Equal(t, []string{"orders"}, e.Tags)

	require.True(t, e.HasRequestBody())
	assert.True(t, e.RequestBody.Required)
	schema := e.RequestBody.Schema
	require.NotNil(t, schema)
	assert.False(t, schema.IsRef(), "one level of resolution should consume the ref")
	assert.Equal(t, "object", schema.Type)
	require.Len(t, schema.Properties, 2)
	assert.Equal(t, "productId", schema.Properties[0].Name)
	assert.Equal(t, "quantity", schema.Properties[1].Name)

	// a response without content has no schema
	require.NotNil(t, e.Responses["201"])
	assert.Nil(t, e.Responses["201"].Schema)
}

// TestExtract_RefRoundTripIdentity tests that resolving a $ref yields
// exactly the schema that inlining the definition would yield, including
// nested refs staying unresolved
func TestExtract_RefRoundTripIdentity(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
info:
  title: Widgets API
  version: 1.0.0
paths:
  /referenced:
    post:
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Widget'
      responses: {}
  /inlined:
    post:
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name:
                  type: string
                parts:
                  type: array
                  items:
                    $ref: '#/components/schemas/Part'
      responses: {}
components:
  schemas:
    Widget:
      type: object
      properties:
        name:
          type: string
        parts:
          type: array
          items:
            $ref: '#/components/schemas/Part'
    Part:
      type: object
`)
	result, err := New().ExtractBytes(doc)
	require.NoError(t, err)
	require.Len(t, result.Endpoints, 2)

	resolved := result.Endpoints[0].RequestBody.Schema
	inlined := result.Endpoints[1].RequestBody.Schema
	assert.Equal(t, inlined, resolved)

	parts := resolved.Property("parts")
	require.NotNil(t, parts)
	require.NotNil(t, parts.Items)
	assert.Equal(t, "#/components/schemas/Part", parts.Items.Ref, "nested refs stay unresolved")
}

// TestExtract_UnsupportedVerbsDropped tests that options/head/trace
// operations are skipped silently rather than failing extraction
func TestExtract_UnsupportedVerbsDropped(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
info:
  title: Things API
  version: 1.0.0
paths:
  /things:
    get:
      responses: {}
    options:
      responses: {}
    head:
      responses: {}
    trace:
      responses: {}
    post:
      responses: {}
`)
	result, err := New().ExtractBytes(doc)
	require.NoError(t, err)

	require.Len(t, result.Endpoints, 2)
	assert.Equal(t, "get", result.Endpoints[0].Method)
	assert.Equal(t, "post", result.Endpoints[1].Method)
	assert.Equal(t, 2, result.Stats.EndpointCount)
}

// TestExtract_DocumentOrderStable tests that endpoint order follows the
// source document and is identical across repeated runs
func TestExtract_DocumentOrderStable(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
info:
  title: Ordered API
  version: 1.0.0
paths:
  /gamma:
    get: {responses: {}}
  /alpha:
    put: {responses: {}}
    get: {responses: {}}
    delete: {responses: {}}
  /beta:
    post: {responses: {}}
`)
	first, err := New().ExtractBytes(doc)
	require.NoError(t, err)

	type pair struct{ path, method string }
	want := []pair{
		{"/gamma", "get"},
		{"/alpha", "put"},
		{"/alpha", "get"},
		{"/alpha", "delete"},
		{"/beta", "post"},
	}
	require.Len(t, first.Endpoints, len(want))
	for i, w := range want {
		assert.Equal(t, w.path, first.Endpoints[i].Path, "endpoint %d path", i)
		assert.Equal(t, w.method, first.Endpoints[i].Method, "endpoint %d method", i)
	}

	second, err := New().ExtractBytes(doc)
	require.NoError(t, err)
	assert.Equal(t, first.Endpoints, second.Endpoints)
	assert.Equal(t, first.Tags, second.Tags)
}

// TestExtract_MultiTagSingleStore tests that a multi-tagged operation is
// listed under each tag but stored exactly once
func TestExtract_MultiTagSingleStore(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
info:
  title: Admin API
  version: 1.0.0
paths:
  /reports:
    get:
      tags: [admin, analytics]
      responses: {}
  /health:
    get:
      tags: [admin]
      responses: {}
`)
	result, err := New().ExtractBytes(doc)
	require.NoError(t, err)

	require.Len(t, result.Endpoints, 2)
	require.Len(t, result.Tags, 2)
	assert.Equal(t, TagGroup{Name: "admin", Endpoints: []int{0, 1}}, result.Tags[0])
	assert.Equal(t, TagGroup{Name: "analytics", Endpoints: []int{0}}, result.Tags[1])

	listing := result.Listing()
	require.Len(t, listing, 3)
	assert.Equal(t, ListEntry{Index: 1, Tag: "admin", Endpoint: 0}, listing[0])
	assert.Equal(t, ListEntry{Index: 2, Tag: "admin", Endpoint: 1}, listing[1])
	assert.Equal(t, ListEntry{Index: 3, Tag: "analytics", Endpoint: 0}, listing[2])

	// selecting the same endpoint through two tags yields it once
	selected, err := result.Select([]int{1, 3})
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "/reports", selected[0].Path)

	selected, err = result.Select([]int{3, 2})
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, "/reports", selected[0].Path)
	assert.Equal(t, "/health", selected[1].Path)
}

// TestExtract_DefaultTagGrouping tests the synthetic default group ordering
// alongside declared tags
func TestExtract_DefaultTagGrouping(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
info:
  title: Mixed API
  version: 1.0.0
paths:
  /untagged:
    get: {responses: {}}
  /files:
    get:
      tags: [files]
      responses: {}
`)
	result, err := New().ExtractBytes(doc)
	require.NoError(t, err)

	require.Len(t, result.Tags, 2)
	assert.Equal(t, DefaultTag, result.Tags[0].Name)
	assert.Equal(t, "files", result.Tags[1].Name)

	endpoints, ok := result.EndpointsForTag("files")
	require.True(t, ok)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "/files", endpoints[0].Path)

	_, ok = result.EndpointsForTag("missing")
	assert.False(t, ok)
}

// TestExtract_ParameterTypes tests the OpenAPI type to normalized parameter
// type mapping, including the string default for unknown types
func TestExtract_ParameterTypes(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
info:
  title: Search API
  version: 1.0.0
paths:
  /search:
    get:
      parameters:
        - {name: page, in: query, schema: {type: integer}}
        - {name: score, in: query, schema: {type: number}}
        - {name: exact, in: query, schema: {type: boolean}}
        - {name: fields, in: query, schema: {type: array, items: {type: string}}}
        - {name: q, in: query, schema: {type: string}}
        - {name: blob, in: query, schema: {type: whatever}}
        - {name: untyped, in: query}
      responses: {}
`)
	result, err := New().ExtractBytes(doc)
	require.NoError(t, err)

	require.Len(t, result.Endpoints, 1)
	params := result.Endpoints[0].Parameters
	require.Len(t, params, 7)
	want := []ParamType{
		ParamTypeInt, ParamTypeDouble, ParamTypeBool,
		ParamTypeList, ParamTypeString, ParamTypeString, ParamTypeString,
	}
	for i, w := range want {
		assert.Equal(t, w, params[i].Type, "parameter %s", params[i].Name)
	}
}

// TestExtract_Swagger2Document tests the OAS 2.0 accommodations: an
// "in: body" parameter becomes the request body, response schemas live
// directly under schema, and refs resolve against definitions
func TestExtract_Swagger2Document(t *testing.T) {
	doc := []byte(`
swagger: "2.0"
info:
  title: Legacy API
  version: 1.0.0
paths:
  /accounts:
    post:
      operationId: createAccount
      parameters:
        - name: X-Trace
          in: header
          type: string
        - name: body
          in: body
          required: true
          schema:
            $ref: '#/definitions/Account'
      responses:
        '200':
          description: OK
          schema:
            $ref: '#/definitions/Account'
definitions:
  Account:
    type: object
    properties:
      iban:
        type: string
`)
	result, err := New().ExtractBytes(doc)
	require.NoError(t, err)

	assert.Equal(t, "2.0", result.Version)
	assert.Equal(t, 1, result.Stats.SchemaCount)

	require.Len(t, result.Endpoints, 1)
	e := result.Endpoints[0]

	// the body parameter feeds the request body, not the parameter list
	require.Len(t, e.Parameters, 1)
	assert.Equal(t, "X-Trace", e.Parameters[0].Name)
	assert.Equal(t, InHeader, e.Parameters[0].Location)

	require.True(t, e.HasRequestBody())
	assert.True(t, e.RequestBody.Required)
	require.NotNil(t, e.RequestBody.Schema)
	assert.Equal(t, "object", e.RequestBody.Schema.Type)

	resp := e.Responses["200"]
	require.NotNil(t, resp)
	require.NotNil(t, resp.Schema)
	require.Len(t, resp.Schema.Properties, 1)
	assert.Equal(t, "iban", resp.Schema.Properties[0].Name)
}

// TestExtract_JSONDocument tests that JSON sources parse through the same
// path with order preserved
func TestExtract_JSONDocument(t *testing.T) {
	doc := []byte(`{
  "openapi": "3.0.0",
  "info": {"title": "JSON API", "version": "1.0.0"},
  "paths": {
    "/zebras": {"get": {"responses": {}}},
    "/ants": {"get": {"responses": {}}}
  }
}`)
	result, err := New().ExtractBytes(doc)
	require.NoError(t, err)

	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "ExtractBytes.json", result.SourcePath)
	require.Len(t, result.Endpoints, 2)
	assert.Equal(t, "/zebras", result.Endpoints[0].Path)
	assert.Equal(t, "/ants", result.Endpoints[1].Path)
}

// TestExtract_UppercaseVerbKeys tests that sloppily cased verb keys still
// extract with a lowercase method
func TestExtract_UppercaseVerbKeys(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
info:
  title: Shouty API
  version: 1.0.0
paths:
  /loud:
    GET: {responses: {}}
`)
	result, err := New().ExtractBytes(doc)
	require.NoError(t, err)
	require.Len(t, result.Endpoints, 1)
	assert.Equal(t, "get", result.Endpoints[0].Method)
}

// TestExtract_EmptyPaths tests that an empty paths mapping yields zero
// endpoints without error
func TestExtract_EmptyPaths(t *testing.T) {
	result, err := New().ExtractBytes([]byte("openapi: 3.0.0\npaths: {}\n"))
	require.NoError(t, err)
	assert.Empty(t, result.Endpoints)
	assert.Empty(t, result.Tags)
	assert.Empty(t, result.Listing())
}

// TestExtract_MissingPaths tests the hard-stop failure policy for documents
// without a paths section
func TestExtract_MissingPaths(t *testing.T) {
	_, err := New().ExtractBytes([]byte("openapi: 3.0.0\ninfo:\n  title: No paths\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, generrors.ErrExtract))
	assert.Contains(t, err.Error(), "no paths section")

	var xerr *generrors.ExtractError
	require.True(t, errors.As(err, &xerr))
	assert.Equal(t, "ExtractBytes.yaml", xerr.Path)
}

// TestExtract_MalformedOperation tests the hard-stop failure policy for an
// operation that is not a mapping
func TestExtract_MalformedOperation(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
paths:
  /bad:
    get: not-a-mapping
`)
	_, err := New().ExtractBytes(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generrors.ErrExtract))
	assert.Contains(t, err.Error(), "paths./bad.get")
	assert.Contains(t, err.Error(), "operation must be a mapping")
}

// TestExtract_InvalidStatusCode tests that wildcard response keys are
// treated as malformed operations
func TestExtract_InvalidStatusCode(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
paths:
  /flaky:
    get:
      responses:
        2XX:
          description: nope
`)
	_, err := New().ExtractBytes(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generrors.ErrExtract))
	assert.Contains(t, err.Error(), `invalid status code "2XX"`)
}

// TestExtract_UnresolvableRef tests that a dangling $ref fails extraction
// with a reference error
func TestExtract_UnresolvableRef(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
paths:
  /ghosts:
    post:
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Ghost'
      responses: {}
`)
	_, err := New().ExtractBytes(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generrors.ErrReference))
	assert.Contains(t, err.Error(), "#/components/schemas/Ghost")
}

// TestExtract_NonMappingRoot tests rejection of documents whose root is not
// a mapping
func TestExtract_NonMappingRoot(t *testing.T) {
	_, err := New().ExtractBytes([]byte("- just\n- a\n- list\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document root must be a mapping")
}

// TestExtract_RequestBodyWithoutJSONContent tests that a request body
// declaring no application/json content still reports a body with no schema
func TestExtract_RequestBodyWithoutJSONContent(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
paths:
  /upload:
    post:
      requestBody:
        required: true
        content:
          text/plain:
            schema:
              type: string
      responses: {}
`)
	result, err := New().ExtractBytes(doc)
	require.NoError(t, err)
	require.Len(t, result.Endpoints, 1)
	e := result.Endpoints[0]
	require.True(t, e.HasRequestBody())
	assert.True(t, e.RequestBody.Required)
	assert.Nil(t, e.RequestBody.Schema)
}

// TestExtract_FromFile tests loading from a file path with extension-based
// format detection
func TestExtract_FromFile(t *testing.T) {
	doc := []byte("openapi: 3.0.0\npaths:\n  /ping:\n    get: {responses: {}}\n")
	path := filepath.Join(t.TempDir(), "api.yaml")
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	result, err := New().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, int64(len(doc)), result.SourceSize)
	require.Len(t, result.Endpoints, 1)
}

// TestExtract_FileNotFound tests the error for a missing input file
func TestExtract_FileNotFound(t *testing.T) {
	_, err := New().Extract(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extractor: failed to read file")
}

// TestExtract_FromURL tests fetching a document over HTTP with the default
// User-Agent header
func TestExtract_FromURL(t *testing.T) {
	receivedUA := ""
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/x-yaml")
		_, _ = w.Write([]byte("openapi: 3.0.0\npaths:\n  /remote:\n    get: {responses: {}}\n"))
	}))
	defer server.Close()

	result, err := New().Extract(server.URL)
	require.NoError(t, err)
	assert.Equal(t, featuregen.UserAgent(), receivedUA)
	assert.Equal(t, server.URL, result.SourcePath)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	require.Len(t, result.Endpoints, 1)
	assert.Equal(t, "/remote", result.Endpoints[0].Path)
}

// TestExtract_URLErrorStatus tests that a non-200 response fails the fetch
func TestExtract_URLErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New().Extract(server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

// TestExtractWithOptions_CustomUserAgent tests that the user agent option
// is applied to HTTP fetches
func TestExtractWithOptions_CustomUserAgent(t *testing.T) {
	receivedUA := ""
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("openapi: 3.0.0\npaths: {}\n"))
	}))
	defer server.Close()

	customUA := "custom-user-agent/1.0"
	_, err := ExtractWithOptions(
		WithFilePath(server.URL),
		WithUserAgent(customUA),
	)
	require.NoError(t, err)
	assert.Equal(t, customUA, receivedUA)
}

// TestExtractWithOptions_Reader tests the functional options API with io.Reader
func TestExtractWithOptions_Reader(t *testing.T) {
	result, err := ExtractWithOptions(
		WithReader(strings.NewReader("openapi: 3.0.0\npaths: {}\n")),
	)
	require.NoError(t, err)
	assert.Equal(t, "ExtractReader.yaml", result.SourcePath)
}

// TestExtractWithOptions_SourceName tests the source name override for
// byte-slice inputs
func TestExtractWithOptions_SourceName(t *testing.T) {
	result, err := ExtractWithOptions(
		WithBytes([]byte("openapi: 3.0.0\npaths: {}\n")),
		WithSourceName("users-api"),
	)
	require.NoError(t, err)
	assert.Equal(t, "users-api", result.SourcePath)
}

// TestExtractWithOptions_NoInputSource tests the error when no input source
// is specified
func TestExtractWithOptions_NoInputSource(t *testing.T) {
	_, err := ExtractWithOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify an input source")
}

// TestExtractWithOptions_MultipleInputSources tests the error when several
// input sources are specified
func TestExtractWithOptions_MultipleInputSources(t *testing.T) {
	_, err := ExtractWithOptions(
		WithBytes([]byte("openapi: 3.0.0")),
		WithReader(strings.NewReader("openapi: 3.0.0")),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one input source")
}

// TestExtractWithOptions_InvalidInputs tests nil and empty option arguments
func TestExtractWithOptions_InvalidInputs(t *testing.T) {
	_, err := ExtractWithOptions(WithReader(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reader cannot be nil")

	_, err = ExtractWithOptions(WithBytes(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bytes cannot be nil")

	_, err = ExtractWithOptions(
		WithBytes([]byte("openapi: 3.0.0")),
		WithSourceName(""),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source name cannot be empty")
}

// TestResult_SelectOutOfRange tests selection bounds checking
func TestResult_SelectOutOfRange(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
paths:
  /a:
    get: {responses: {}}
  /b:
    get: {responses: {}}
`)
	result, err := New().ExtractBytes(doc)
	require.NoError(t, err)

	_, err = result.Select([]int{3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, generrors.ErrSelection))
	assert.Contains(t, err.Error(), "listing has 2 entries")

	_, err = result.Select([]int{0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, generrors.ErrSelection))
}
