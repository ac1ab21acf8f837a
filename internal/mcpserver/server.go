// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes feature generation as MCP tools over stdio.
//
// The server is started for one loaded project and serves that project's
// endpoint listing for its whole lifetime. Logging goes to stderr; stdout
// carries only the MCP protocol.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	featuregen "github.com/MohamadsFakih/flutter-feature-generator"
	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/project"
)

const serverInstructions = `featuregen MCP server — scaffolds Flutter clean-architecture features from the project's OpenAPI specification.

Workflow: call list_endpoints to browse the numbered endpoint listing, then call generate_feature with a snake_case feature name and the listing indices (or all=true). Generated code lands under lib/features/<feature_name>/ in the project this server was started for. An existing feature is appended to by default; set on_exists to overwrite or cancel to change that.

Key settings (FEATUREGEN_* environment variables in your MCP client config; the Go MCP SDK does not support initializationOptions):
- FEATUREGEN_LIST_LIMIT (default: 100) — default page size for list_endpoints`

// toolHandlers carries the per-project state shared by every tool call.
// The project context is immutable, so handlers read it without locking.
type toolHandlers struct {
	proj   *project.Context
	logger extractor.Logger
}

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context, proj *project.Context, logger extractor.Logger) error {
	if logger == nil {
		logger = extractor.NopLogger{}
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "featuregen", Version: featuregen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server, &toolHandlers{proj: proj, logger: logger})

	logger.Info("mcp server starting",
		"project", proj.Name, "spec", proj.SpecPath, "endpoints", len(proj.Spec.Endpoints))
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server, h *toolHandlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_endpoints",
		Description: "List the endpoints of the project's OpenAPI specification as a numbered listing grouped by tag. Filter by tag or method (both case insensitive). Each entry carries the 1-based index that generate_feature expects in its indices array. Use offset/limit to paginate large listings; the default limit is configurable via the FEATUREGEN_LIST_LIMIT env var.",
	}, h.handleListEndpoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_feature",
		Description: "Generate a Flutter clean-architecture feature from selected endpoints: model classes, Retrofit service, remote data source pair, repository, use case, BLoC, and view stubs under lib/features/<feature_name>/. feature_name must be snake_case. Select endpoints with indices (1-based numbers from list_endpoints) or all=true, never both. Layer toggles data/domain/presentation (plus bloc/screens/widgets within presentation) narrow the output; leaving every toggle unset generates all layers. An existing feature is appended to with the endpoints not yet present; set on_exists to overwrite or cancel to change that.",
	}, h.handleGenerateFeature)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
