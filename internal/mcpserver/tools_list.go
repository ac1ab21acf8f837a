package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listEndpointsInput struct {
	Tag    string `json:"tag,omitempty"    jsonschema:"Only list endpoints in this tag group (case insensitive)"`
	Method string `json:"method,omitempty" jsonschema:"Only list endpoints with this HTTP method (case insensitive)"`
	Offset int    `json:"offset,omitempty" jsonschema:"Number of matching endpoints to skip"`
	Limit  int    `json:"limit,omitempty"  jsonschema:"Maximum endpoints to return (default FEATUREGEN_LIST_LIMIT)"`
}

// endpointInfo is one listing row. Index is the 1-based selection number
// generate_feature expects.
type endpointInfo struct {
	Index          int    `json:"index"`
	Tag            string `json:"tag"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	Summary        string `json:"summary,omitempty"`
	OperationID    string `json:"operation_id,omitempty"`
	HasRequestBody bool   `json:"has_request_body"`
	ResponseCount  int    `json:"response_count"`
}

type listEndpointsOutput struct {
	Project   string         `json:"project"`
	Total     int            `json:"total"`
	Returned  int            `json:"returned"`
	Endpoints []endpointInfo `json:"endpoints,omitempty"`
}

func (h *toolHandlers) handleListEndpoints(_ context.Context, _ *mcp.CallToolRequest, input listEndpointsInput) (*mcp.CallToolResult, listEndpointsOutput, error) {
	entries := h.proj.Spec.Listing()
	matches := makeSlice[endpointInfo](len(entries))
	for _, row := range entries {
		e := h.proj.Spec.Endpoints[row.Endpoint]
		if input.Tag != "" && !strings.EqualFold(input.Tag, row.Tag) {
			continue
		}
		if input.Method != "" && !strings.EqualFold(input.Method, e.Method) {
			continue
		}
		matches = append(matches, endpointInfo{
			Index:          row.Index,
			Tag:            row.Tag,
			Method:         e.Method,
			Path:           e.Path,
			Summary:        e.Summary,
			OperationID:    e.OperationID,
			HasRequestBody: e.HasRequestBody(),
			ResponseCount:  len(e.Responses),
		})
	}

	page := paginate(matches, input.Offset, input.Limit)
	output := listEndpointsOutput{
		Project:   h.proj.Name,
		Total:     len(matches),
		Returned:  len(page),
		Endpoints: page,
	}
	return nil, output, nil
}
