package webserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/project"
)

// testProject builds a two-endpoint project rooted in a scratch
// directory. The listing order follows the tag groups: index 1 is the
// orders POST, index 2 the users GET.
func testProject(t *testing.T) *project.Context {
	t.Helper()
	return &project.Context{
		Root:     t.TempDir(),
		Name:     "shopapp",
		SpecPath: "swagger.json",
		Spec: &extractor.Result{
			Endpoints: []extractor.Endpoint{
				{
					Path:    "/users/{id}",
					Method:  "get",
					Summary: "Fetch a user",
					Parameters: []extractor.Parameter{
						{Name: "id", Location: extractor.InPath, Required: true, Type: extractor.ParamTypeInt},
					},
					Responses: map[string]*extractor.Response{"200": {}},
					Tags:      []string{"users"},
				},
				{
					Path:        "/orders",
					Method:      "post",
					OperationID: "placeOrder",
					RequestBody: &extractor.RequestBody{Required: true},
					Responses:   map[string]*extractor.Response{"201": {}},
					Tags:        []string{"orders"},
				},
			},
			Tags: []extractor.TagGroup{
				{Name: "orders", Endpoints: []int{1}},
				{Name: "users", Endpoints: []int{0}},
			},
		},
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func postJSON(t *testing.T, h http.Handler, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(string(data)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func TestEndpoints_ListsAll(t *testing.T) {
	h := New(testProject(t), DefaultConfig(), nil).Handler()

	rec := get(t, h, "/api/endpoints")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	entries := decodeBody[[]endpointEntry](t, rec)
	require.Len(t, entries, 2)
	assert.Equal(t, endpointEntry{
		Index:          1,
		Tag:            "orders",
		Method:         "post",
		Path:           "/orders",
		OperationID:    "placeOrder",
		HasRequestBody: true,
		ResponseCount:  1,
	}, entries[0])
	assert.Equal(t, endpointEntry{
		Index:         2,
		Tag:           "users",
		Method:        "get",
		Path:          "/users/{id}",
		Summary:       "Fetch a user",
		ResponseCount: 1,
	}, entries[1])
}

func TestEndpoints_Filters(t *testing.T) {
	h := New(testProject(t), DefaultConfig(), nil).Handler()

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "by tag", query: "?tag=users", want: []int{2}},
		{name: "method is case insensitive", query: "?method=POST", want: []int{1}},
		{name: "tag and method together", query: "?tag=orders&method=get", want: nil},
		{name: "unknown parameters ignored", query: "?bogus=1", want: []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, "/api/endpoints"+tt.query)

			require.Equal(t, http.StatusOK, rec.Code)
			entries := decodeBody[[]endpointEntry](t, rec)
			var got []int
			for _, e := range entries {
				got = append(got, e.Index)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEndpoints_NoMatchIsEmptyArray(t *testing.T) {
	h := New(testProject(t), DefaultConfig(), nil).Handler()

	rec := get(t, h, "/api/endpoints?tag=payments")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGenerate_CreatesFeature(t *testing.T) {
	proj := testProject(t)
	h := New(proj, DefaultConfig(), nil).Handler()

	rec := postJSON(t, h, "/api/generate", map[string]any{
		"featureName":     "user_profile",
		"selectedIndices": []int{1, 2},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[generateResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "user_profile", resp.FeatureName)
	assert.Equal(t, 2, resp.EndpointCount)
	assert.Equal(t, "lib/features/user_profile", resp.Location)
	assert.False(t, resp.IsUpdate)
	assert.Equal(t, []string{"data", "domain", "presentation"}, resp.GeneratedLayers)
	assert.Empty(t, resp.Warnings)
	assert.Contains(t, resp.Message, `generated with 2 endpoint(s)`)

	service, err := os.ReadFile(filepath.Join(proj.Root,
		"lib/features/user_profile/data/remote/service/user_profile_service.dart"))
	require.NoError(t, err)
	assert.Contains(t, string(service), "@POST('/orders')")
	assert.Contains(t, string(service), "@GET('/users/{id}')")

	_, err = os.Stat(filepath.Join(proj.Root, "lib/core/resources/data_state.dart"))
	assert.NoError(t, err)
	info, err := os.Stat(filepath.Join(proj.Root, "lib/features/user_profile/presentation/widget"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGenerate_LayerSelection(t *testing.T) {
	proj := testProject(t)
	h := New(proj, DefaultConfig(), nil).Handler()

	rec := postJSON(t, h, "/api/generate", map[string]any{
		"featureName":     "orders",
		"selectedIndices": []int{1},
		"layers":          map[string]any{"data": true},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[generateResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"data"}, resp.GeneratedLayers)

	_, err := os.Stat(filepath.Join(proj.Root, "lib/features/orders/data/remote/service/orders_service.dart"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(proj.Root, "lib/features/orders/domain"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerate_PresentationDefaultsToAllComponents(t *testing.T) {
	proj := testProject(t)
	h := New(proj, DefaultConfig(), nil).Handler()

	rec := postJSON(t, h, "/api/generate", map[string]any{
		"featureName":     "orders",
		"selectedIndices": []int{1},
		"layers":          map[string]any{"presentation": true},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[generateResponse](t, rec)
	assert.Equal(t, []string{"presentation"}, resp.GeneratedLayers)

	for _, rel := range []string{
		"lib/features/orders/presentation/bloc/orders_bloc.dart",
		"lib/features/orders/presentation/screen/orders_screen.dart",
		"lib/features/orders/presentation/widget",
	} {
		_, err := os.Stat(filepath.Join(proj.Root, rel))
		assert.NoError(t, err, rel)
	}
}

func TestGenerate_RequestValidation(t *testing.T) {
	h := New(testProject(t), DefaultConfig(), nil).Handler()

	tests := []struct {
		name    string
		body    map[string]any
		wantErr string
	}{
		{
			name:    "missing feature name",
			body:    map[string]any{"selectedIndices": []int{1}},
			wantErr: "FeatureName",
		},
		{
			name:    "missing indices",
			body:    map[string]any{"featureName": "orders"},
			wantErr: "SelectedIndices",
		},
		{
			name:    "empty indices",
			body:    map[string]any{"featureName": "orders", "selectedIndices": []int{}},
			wantErr: "SelectedIndices",
		},
		{
			name:    "zero index",
			body:    map[string]any{"featureName": "orders", "selectedIndices": []int{0}},
			wantErr: "SelectedIndices",
		},
		{
			name:    "index out of range",
			body:    map[string]any{"featureName": "orders", "selectedIndices": []int{99}},
			wantErr: "out of range",
		},
		{
			name:    "feature name not snake_case",
			body:    map[string]any{"featureName": "UserProfile", "selectedIndices": []int{1}},
			wantErr: "snake_case",
		},
		{
			name:    "unknown exists choice",
			body:    map[string]any{"featureName": "orders", "selectedIndices": []int{1}, "onExists": "merge"},
			wantErr: "on-exists",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h, "/api/generate", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody[errorResponse](t, rec)
			assert.Contains(t, body.Error, tt.wantErr)
		})
	}
}

func TestGenerate_MalformedBody(t *testing.T) {
	h := New(testProject(t), DefaultConfig(), nil).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[errorResponse](t, rec)
	assert.Contains(t, body.Error, "invalid request body")
}

func TestGenerate_ExistingFeatureChoices(t *testing.T) {
	proj := testProject(t)
	h := New(proj, DefaultConfig(), nil).Handler()

	rec := postJSON(t, h, "/api/generate", map[string]any{
		"featureName":     "user_profile",
		"selectedIndices": []int{1},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Cancel leaves the tree alone and reports a non-success outcome.
	rec = postJSON(t, h, "/api/generate", map[string]any{
		"featureName":     "user_profile",
		"selectedIndices": []int{1, 2},
		"onExists":        "cancel",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[generateResponse](t, rec)
	assert.False(t, resp.Success)
	assert.True(t, resp.IsUpdate)
	assert.Contains(t, resp.Message, "generation cancelled")

	// The default choice appends the endpoints not already present.
	rec = postJSON(t, h, "/api/generate", map[string]any{
		"featureName":     "user_profile",
		"selectedIndices": []int{1, 2},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody[generateResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "updated with 1 new endpoint(s)")

	// Overwrite regenerates from scratch.
	rec = postJSON(t, h, "/api/generate", map[string]any{
		"featureName":     "user_profile",
		"selectedIndices": []int{1, 2},
		"onExists":        "overwrite",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody[generateResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "regenerated with 2 endpoint(s)")
}

func TestHealth(t *testing.T) {
	h := New(testProject(t), DefaultConfig(), nil).Handler()

	rec := get(t, h, "/api/health")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
}

func TestIndexPage(t *testing.T) {
	h := New(testProject(t), DefaultConfig(), nil).Handler()

	rec := get(t, h, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "featuregen")
	assert.Contains(t, rec.Body.String(), "/api/generate")
}

func TestUnknownPath(t *testing.T) {
	h := New(testProject(t), DefaultConfig(), nil).Handler()

	rec := get(t, h, "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h := New(testProject(t), DefaultConfig(), nil).Handler()

	req := httptest.NewRequest(http.MethodDelete, "/api/endpoints", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = get(t, h, "/api/generate")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second
	srv := New(testProject(t), cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, srv.Run(ctx))
}

func TestRun_ListenError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:-1"
	srv := New(testProject(t), cfg, nil)

	err := srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "web server failed")
}
