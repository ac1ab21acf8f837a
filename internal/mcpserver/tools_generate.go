package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/scaffold"
)

type generateFeatureInput struct {
	FeatureName string `json:"feature_name"       jsonschema:"The snake_case feature name, e.g. user_profile"`
	Indices     []int  `json:"indices,omitempty"  jsonschema:"1-based listing indices of the endpoints to include (from list_endpoints)"`
	All         bool   `json:"all,omitempty"      jsonschema:"Include every endpoint in the listing instead of indices"`

	Data         bool `json:"data,omitempty"         jsonschema:"Generate the data layer (models, service, source pair, repository implementation)"`
	Domain       bool `json:"domain,omitempty"       jsonschema:"Generate the domain layer (repository interface, use case)"`
	Presentation bool `json:"presentation,omitempty" jsonschema:"Generate the presentation layer"`
	Bloc         bool `json:"bloc,omitempty"         jsonschema:"Within presentation, generate the event, state, and bloc files"`
	Screens      bool `json:"screens,omitempty"      jsonschema:"Within presentation, generate the screen stub"`
	Widgets      bool `json:"widgets,omitempty"      jsonschema:"Within presentation, create the widget directory"`

	OnExists string `json:"on_exists,omitempty" jsonschema:"What to do when the feature already exists: append (default), overwrite, or cancel"`
}

// scaffoldLayers maps the flat layer toggles to the scaffold selection.
// All toggles unset means every layer; presentation with no component
// toggles means every component.
func (in generateFeatureInput) scaffoldLayers() scaffold.Layers {
	if !in.Data && !in.Domain && !in.Presentation {
		return scaffold.AllLayers()
	}
	l := scaffold.Layers{Data: in.Data, Domain: in.Domain, Presentation: in.Presentation}
	if l.Presentation {
		if !in.Bloc && !in.Screens && !in.Widgets {
			l.Components = scaffold.Components{Bloc: true, Screens: true, Widgets: true}
		} else {
			l.Components = scaffold.Components{Bloc: in.Bloc, Screens: in.Screens, Widgets: in.Widgets}
		}
	}
	return l
}

// generatedFile records one path touched by the run, with the action
// taken: created, appended, or skipped.
type generatedFile struct {
	Path   string `json:"path"`
	Action string `json:"action"`
}

type generateFeatureOutput struct {
	Success          bool            `json:"success"`
	Message          string          `json:"message"`
	FeatureName      string          `json:"feature_name"`
	Location         string          `json:"location"`
	EndpointCount    int             `json:"endpoint_count"`
	IsUpdate         bool            `json:"is_update"`
	Cancelled        bool            `json:"cancelled,omitempty"`
	GeneratedLayers  []string        `json:"generated_layers"`
	CreatedCount     int             `json:"created_count"`
	AppendedCount    int             `json:"appended_count"`
	SkippedCount     int             `json:"skipped_count,omitempty"`
	Files            []generatedFile `json:"files,omitempty"`
	SkippedEndpoints []string        `json:"skipped_endpoints,omitempty"`
	Warnings         []string        `json:"warnings,omitempty"`
}

func (h *toolHandlers) handleGenerateFeature(ctx context.Context, _ *mcp.CallToolRequest, input generateFeatureInput) (*mcp.CallToolResult, generateFeatureOutput, error) {
	if input.FeatureName == "" {
		return errResult(fmt.Errorf("feature_name is required")), generateFeatureOutput{}, nil
	}
	if input.All && len(input.Indices) > 0 {
		return errResult(fmt.Errorf("indices and all are mutually exclusive")), generateFeatureOutput{}, nil
	}
	if !input.All && len(input.Indices) == 0 {
		return errResult(fmt.Errorf("either indices or all is required")), generateFeatureOutput{}, nil
	}

	// Endpoints holds every operation exactly once, so "all" avoids the
	// per-tag duplicate rows a multi-tag operation adds to the listing.
	var endpoints []extractor.Endpoint
	if input.All {
		endpoints = h.proj.Spec.Endpoints
	} else {
		var err error
		endpoints, err = h.proj.Spec.Select(input.Indices)
		if err != nil {
			return errResult(err), generateFeatureOutput{}, nil
		}
	}

	sc := scaffold.New()
	sc.Layers = input.scaffoldLayers()
	sc.Logger = h.logger
	if input.OnExists != "" {
		choice, err := scaffold.ParseExistsChoice(input.OnExists)
		if err != nil {
			return errResult(err), generateFeatureOutput{}, nil
		}
		sc.OnExists = func(string) (scaffold.ExistsChoice, error) { return choice, nil }
	}

	result, err := sc.Generate(ctx, h.proj, input.FeatureName, endpoints)
	if err != nil {
		return errResult(err), generateFeatureOutput{}, nil
	}

	output := generateFeatureOutput{
		Success:         result.Success,
		Message:         result.Message,
		FeatureName:     result.FeatureName,
		Location:        result.Location,
		EndpointCount:   result.EndpointCount,
		IsUpdate:        result.IsUpdate,
		Cancelled:       result.Cancelled,
		GeneratedLayers: sc.Layers.Names(),
		CreatedCount:    result.CreatedCount,
		AppendedCount:   result.AppendedCount,
		SkippedCount:    result.SkippedCount,
	}

	output.Files = makeSlice[generatedFile](len(result.Files))
	for _, f := range result.Files {
		output.Files = append(output.Files, generatedFile{Path: f.Path, Action: string(f.Action)})
	}
	output.SkippedEndpoints = makeSlice[string](len(result.SkippedEndpoints))
	for _, s := range result.SkippedEndpoints {
		output.SkippedEndpoints = append(output.SkippedEndpoints,
			fmt.Sprintf("%s %s: %s", s.Method, s.Path, s.Reason))
	}
	for _, issue := range result.Issues {
		if issue.Severity != scaffold.SeverityWarning {
			continue
		}
		msg := issue.Message
		if c := issue.Context(); c != "" {
			msg = c + ": " + msg
		}
		output.Warnings = append(output.Warnings, msg)
	}

	return nil, output, nil
}
