package scaffold

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/generrors"
	"github.com/MohamadsFakih/flutter-feature-generator/project"
	"github.com/MohamadsFakih/flutter-feature-generator/render"
	"github.com/MohamadsFakih/flutter-feature-generator/scaffold/sink"
)

// DefaultBaseDir is the feature tree root relative to the project root.
const DefaultBaseDir = "lib/features"

// DataStatePath is the project-relative path of the shared DataState
// definition. It is written once, when absent, and never overwritten.
const DataStatePath = "lib/core/resources/data_state.dart"

// ExistsChoice is the decision applied when the feature already exists.
type ExistsChoice string

const (
	// ChoiceAppend splices the endpoints not already present into the
	// existing files.
	ChoiceAppend ExistsChoice = "append"
	// ChoiceOverwrite regenerates every selected layer from scratch.
	ChoiceOverwrite ExistsChoice = "overwrite"
	// ChoiceCancel aborts the run without touching any file.
	ChoiceCancel ExistsChoice = "cancel"
)

// ParseExistsChoice maps a string to an ExistsChoice. Interactive
// prompting is a front end concern and is not a choice here.
func ParseExistsChoice(s string) (ExistsChoice, error) {
	switch c := ExistsChoice(strings.ToLower(s)); c {
	case ChoiceAppend, ChoiceOverwrite, ChoiceCancel:
		return c, nil
	default:
		return "", &generrors.ConfigError{
			Option:  "on-exists",
			Value:   s,
			Message: "must be append, overwrite, or cancel",
		}
	}
}

// Components selects the presentation pieces to generate.
type Components struct {
	// Bloc generates the event, state, and bloc files
	Bloc bool
	// Screens generates the screen stub
	Screens bool
	// Widgets creates the empty widget directory
	Widgets bool
}

// Layers selects which architecture layers a run generates.
type Layers struct {
	// Data generates models, service, source pair, and the repository
	// implementation
	Data bool
	// Domain generates the repository interface and the use case
	Domain bool
	// Presentation generates the components selected below
	Presentation bool
	// Components refines the presentation layer; ignored when
	// Presentation is false
	Components Components
}

// AllLayers returns the default selection with every layer enabled.
func AllLayers() Layers {
	return Layers{
		Data:         true,
		Domain:       true,
		Presentation: true,
		Components:   Components{Bloc: true, Screens: true, Widgets: true},
	}
}

// Enabled reports whether the selection generates anything at all.
func (l Layers) Enabled() bool {
	if l.Data || l.Domain {
		return true
	}
	return l.Presentation && (l.Components.Bloc || l.Components.Screens || l.Components.Widgets)
}

// Names returns the enabled layer names in a fixed order, as reported by
// front ends.
func (l Layers) Names() []string {
	var out []string
	if l.Data {
		out = append(out, "data")
	}
	if l.Domain {
		out = append(out, "domain")
	}
	if l.Presentation {
		out = append(out, "presentation")
	}
	return out
}

// Scaffolder runs feature generation. The zero value works; New fills in
// the documented defaults explicitly.
type Scaffolder struct {
	// BaseDir is the feature tree root relative to the project root,
	// slash-separated. Empty means DefaultBaseDir.
	BaseDir string

	// Layers selects what is generated. The zero value means all layers.
	Layers Layers

	// OnExists decides what to do when the feature already exists. When
	// nil, existing features are appended to.
	OnExists func(featureName string) (ExistsChoice, error)

	// Sink receives generated output. When nil, a filesystem sink rooted
	// at the project root is used.
	Sink sink.OutputSink

	// Logger receives structured output during generation. When nil, no
	// logging is performed.
	Logger extractor.Logger
}

// New creates a Scaffolder with default settings.
func New() *Scaffolder {
	return &Scaffolder{
		BaseDir: DefaultBaseDir,
		Layers:  AllLayers(),
	}
}

// log returns the configured logger or a no-op logger.
func (s *Scaffolder) log() extractor.Logger {
	if s.Logger == nil {
		return extractor.NopLogger{}
	}
	return s.Logger
}

func (s *Scaffolder) baseDir() string {
	if s.BaseDir == "" {
		return DefaultBaseDir
	}
	return s.BaseDir
}

func (s *Scaffolder) layers() Layers {
	if s.Layers == (Layers{}) {
		return AllLayers()
	}
	return s.Layers
}

// Generate scaffolds featureName from the selected endpoints into the
// project. A feature whose service file does not exist is generated in
// full; an existing one is appended to, overwritten, or cancelled
// according to OnExists. The returned Result describes every file touched;
// a non-nil error means the run stopped early and may have left a partial
// tree.
func (s *Scaffolder) Generate(ctx context.Context, proj *project.Context, featureName string, endpoints []extractor.Endpoint) (*Result, error) {
	startTime := time.Now()

	if proj == nil {
		return nil, &generrors.ConfigError{Option: "project", Message: "project context is required"}
	}
	if err := render.ValidateFeatureName(featureName); err != nil {
		return nil, err
	}
	if len(endpoints) == 0 {
		return nil, &generrors.SelectionError{Feature: featureName, Message: "no endpoints selected"}
	}
	if !s.layers().Enabled() {
		return nil, &generrors.ConfigError{Option: "layers", Message: "no layers selected"}
	}

	out := s.Sink
	if out == nil {
		if proj.Root == "" {
			return nil, &generrors.ConfigError{Option: "sink", Message: "no sink configured and project has no root directory"}
		}
		out = sink.NewFilesystemSink(proj.Root)
	}

	l := newLayout(s.baseDir(), featureName)
	feature := render.Feature{
		Name:         featureName,
		Project:      proj.Name,
		ImportPrefix: l.ImportPrefix(),
		Endpoints:    endpoints,
	}
	result := &Result{FeatureName: featureName, Location: l.FeatureDir}

	exists, err := out.Exists(ctx, l.Service())
	if err != nil {
		return nil, fmt.Errorf("scaffold: failed to probe %s: %w", l.Service(), err)
	}

	switch {
	case !exists:
		s.log().Info("generating feature",
			"feature", featureName, "endpoints", len(endpoints), "location", l.FeatureDir)
		if err := s.generateAll(ctx, out, feature, l, result); err != nil {
			return nil, err
		}
		result.EndpointCount = len(endpoints)
		result.Message = fmt.Sprintf("feature %q generated with %d endpoint(s)", featureName, len(endpoints))

	default:
		result.IsUpdate = true
		choice := ChoiceAppend
		if s.OnExists != nil {
			choice, err = s.OnExists(featureName)
			if err != nil {
				return nil, fmt.Errorf("scaffold: exists choice for %q: %w", featureName, err)
			}
		}
		switch choice {
		case ChoiceCancel:
			result.Cancelled = true
			result.Message = fmt.Sprintf("feature %q already exists, generation cancelled", featureName)
			s.log().Info("generation cancelled", "feature", featureName)

		case ChoiceOverwrite:
			s.log().Info("overwriting feature",
				"feature", featureName, "endpoints", len(endpoints), "location", l.FeatureDir)
			if err := s.generateAll(ctx, out, feature, l, result); err != nil {
				return nil, err
			}
			result.EndpointCount = len(endpoints)
			result.Message = fmt.Sprintf("feature %q regenerated with %d endpoint(s)", featureName, len(endpoints))

		case ChoiceAppend:
			s.log().Info("appending to feature",
				"feature", featureName, "endpoints", len(endpoints), "location", l.FeatureDir)
			if err := s.appendFeature(ctx, out, feature, l, result); err != nil {
				return nil, err
			}

		default:
			return nil, &generrors.ConfigError{
				Option:  "on-exists",
				Value:   string(choice),
				Message: "unknown choice",
			}
		}
	}

	result.GenerateTime = time.Since(startTime)
	result.updateCounts()
	s.log().Info("generation complete",
		"feature", featureName,
		"created", result.CreatedCount,
		"appended", result.AppendedCount,
		"skipped", result.SkippedCount,
		"warnings", result.WarningCount,
		"duration", result.GenerateTime)
	return result, nil
}
