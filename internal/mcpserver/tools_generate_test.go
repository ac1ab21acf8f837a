package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
)

// errText asserts that result is an error result and returns its text.
func errText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return text.Text
}

func TestGenerateFeatureTool_AllEndpoints(t *testing.T) {
	proj := testProject(t)
	h := &toolHandlers{proj: proj, logger: extractor.NopLogger{}}

	input := generateFeatureInput{FeatureName: "user_profile", All: true}
	result, output, err := h.handleGenerateFeature(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.True(t, output.Success)
	assert.Equal(t, "user_profile", output.FeatureName)
	assert.Equal(t, "lib/features/user_profile", output.Location)
	assert.Equal(t, 2, output.EndpointCount)
	assert.False(t, output.IsUpdate)
	assert.Equal(t, []string{"data", "domain", "presentation"}, output.GeneratedLayers)
	assert.Len(t, output.Files, 15)
	assert.Equal(t, 15, output.CreatedCount)
	assert.Empty(t, output.Warnings)
	assert.Contains(t, output.Message, "generated with 2 endpoint(s)")

	service, err := os.ReadFile(filepath.Join(proj.Root,
		"lib/features/user_profile/data/remote/service/user_profile_service.dart"))
	require.NoError(t, err)
	assert.Contains(t, string(service), "@POST('/orders')")
	assert.Contains(t, string(service), "@GET('/users/{id}')")
}

func TestGenerateFeatureTool_IndicesSelection(t *testing.T) {
	proj := testProject(t)
	h := &toolHandlers{proj: proj, logger: extractor.NopLogger{}}

	input := generateFeatureInput{FeatureName: "orders", Indices: []int{1}}
	result, output, err := h.handleGenerateFeature(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.True(t, output.Success)
	assert.Equal(t, 1, output.EndpointCount)

	service, err := os.ReadFile(filepath.Join(proj.Root,
		"lib/features/orders/data/remote/service/orders_service.dart"))
	require.NoError(t, err)
	assert.Contains(t, string(service), "@POST('/orders')")
	assert.NotContains(t, string(service), "@GET(")
}

func TestGenerateFeatureTool_LayerToggles(t *testing.T) {
	proj := testProject(t)
	h := &toolHandlers{proj: proj, logger: extractor.NopLogger{}}

	input := generateFeatureInput{FeatureName: "orders", Indices: []int{1}, Data: true}
	result, output, err := h.handleGenerateFeature(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, []string{"data"}, output.GeneratedLayers)
	_, statErr := os.Stat(filepath.Join(proj.Root, "lib/features/orders/domain"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateFeatureTool_PresentationComponentDefaults(t *testing.T) {
	proj := testProject(t)
	h := &toolHandlers{proj: proj, logger: extractor.NopLogger{}}

	input := generateFeatureInput{FeatureName: "orders", Indices: []int{1}, Presentation: true}
	result, output, err := h.handleGenerateFeature(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, []string{"presentation"}, output.GeneratedLayers)
	for _, rel := range []string{
		"lib/features/orders/presentation/bloc/orders_bloc.dart",
		"lib/features/orders/presentation/screen/orders_screen.dart",
		"lib/features/orders/presentation/widget",
	} {
		_, statErr := os.Stat(filepath.Join(proj.Root, rel))
		assert.NoError(t, statErr, rel)
	}
}

func TestGenerateFeatureTool_InputValidation(t *testing.T) {
	h := testHandlers(t)

	tests := []struct {
		name    string
		input   generateFeatureInput
		wantErr string
	}{
		{
			name:    "missing feature name",
			input:   generateFeatureInput{All: true},
			wantErr: "feature_name is required",
		},
		{
			name:    "indices and all together",
			input:   generateFeatureInput{FeatureName: "orders", All: true, Indices: []int{1}},
			wantErr: "mutually exclusive",
		},
		{
			name:    "no endpoint source",
			input:   generateFeatureInput{FeatureName: "orders"},
			wantErr: "either indices or all is required",
		},
		{
			name:    "index out of range",
			input:   generateFeatureInput{FeatureName: "orders", Indices: []int{99}},
			wantErr: "out of range",
		},
		{
			name:    "feature name not snake_case",
			input:   generateFeatureInput{FeatureName: "UserProfile", All: true},
			wantErr: "snake_case",
		},
		{
			name:    "unknown exists choice",
			input:   generateFeatureInput{FeatureName: "orders", All: true, OnExists: "merge"},
			wantErr: "on-exists",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, output, err := h.handleGenerateFeature(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)

			assert.Contains(t, errText(t, result), tt.wantErr)
			assert.Zero(t, output)
		})
	}
}

func TestGenerateFeatureTool_ExistingFeature(t *testing.T) {
	proj := testProject(t)
	h := &toolHandlers{proj: proj, logger: extractor.NopLogger{}}

	_, output, err := h.handleGenerateFeature(context.Background(), &mcp.CallToolRequest{},
		generateFeatureInput{FeatureName: "user_profile", Indices: []int{1}})
	require.NoError(t, err)
	require.True(t, output.Success)

	// The default choice appends whatever is not already present.
	_, output, err = h.handleGenerateFeature(context.Background(), &mcp.CallToolRequest{},
		generateFeatureInput{FeatureName: "user_profile", All: true})
	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.True(t, output.IsUpdate)
	assert.Equal(t, 1, output.EndpointCount)
	assert.Equal(t, 1, output.CreatedCount)
	assert.Equal(t, 9, output.AppendedCount)
	assert.Equal(t, []string{"post /orders: already present"}, output.SkippedEndpoints)
	assert.Contains(t, output.Message, "updated with 1 new endpoint(s)")

	// Cancel reports a non-success outcome without touching files.
	_, output, err = h.handleGenerateFeature(context.Background(), &mcp.CallToolRequest{},
		generateFeatureInput{FeatureName: "user_profile", All: true, OnExists: "cancel"})
	require.NoError(t, err)
	assert.False(t, output.Success)
	assert.True(t, output.Cancelled)
	assert.Empty(t, output.Files)
	assert.Contains(t, output.Message, "generation cancelled")

	// Overwrite regenerates from scratch.
	_, output, err = h.handleGenerateFeature(context.Background(), &mcp.CallToolRequest{},
		generateFeatureInput{FeatureName: "user_profile", All: true, OnExists: "overwrite"})
	require.NoError(t, err)
	assert.True(t, output.Success)
	assert.Contains(t, output.Message, "regenerated with 2 endpoint(s)")
}
