package scaffold

import (
	"context"
	"fmt"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/generrors"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/options"
	"github.com/MohamadsFakih/flutter-feature-generator/project"
	"github.com/MohamadsFakih/flutter-feature-generator/scaffold/sink"
)

// Option is a function that configures a GenerateWithOptions run.
type Option func(*generateConfig) error

// generateConfig holds configuration for one generation run.
type generateConfig struct {
	proj        *project.Context
	featureName string

	// Endpoint source (exactly one must be set)
	endpoints []extractor.Endpoint
	selection []int
	useAll    bool

	// Scaffolder configuration
	baseDir  string
	layers   *Layers
	sink     sink.OutputSink
	logger   extractor.Logger
	onExists func(string) (ExistsChoice, error)
}

// GenerateWithOptions runs one generation using functional options. It
// combines endpoint selection and scaffolder configuration in a single
// call, resolving 1-based listing numbers against the project's
// specification when WithSelection is used.
//
// Example:
//
//	result, err := scaffold.GenerateWithOptions(ctx,
//	    scaffold.WithProject(proj),
//	    scaffold.WithFeatureName("user_profile"),
//	    scaffold.WithSelection([]int{1, 3}),
//	    scaffold.WithExistsChoice(scaffold.ChoiceAppend),
//	)
func GenerateWithOptions(ctx context.Context, opts ...Option) (*Result, error) {
	cfg := &generateConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("scaffold: invalid options: %w", err)
		}
	}

	if cfg.proj == nil {
		return nil, &generrors.ConfigError{Option: "project", Message: "WithProject is required"}
	}
	if cfg.featureName == "" {
		return nil, &generrors.ConfigError{Option: "feature-name", Message: "WithFeatureName is required"}
	}
	if err := options.ValidateSingleInputSource(
		"scaffold: must specify an endpoint source (use WithEndpoints, WithSelection, or WithAllEndpoints)",
		"scaffold: must specify exactly one endpoint source",
		cfg.endpoints != nil, cfg.selection != nil, cfg.useAll,
	); err != nil {
		return nil, err
	}

	endpoints := cfg.endpoints
	switch {
	case cfg.useAll:
		endpoints = cfg.proj.Spec.Endpoints
	case cfg.selection != nil:
		var err error
		endpoints, err = cfg.proj.Spec.Select(cfg.selection)
		if err != nil {
			return nil, err
		}
	}

	s := New()
	if cfg.baseDir != "" {
		s.BaseDir = cfg.baseDir
	}
	if cfg.layers != nil {
		s.Layers = *cfg.layers
	}
	if cfg.sink != nil {
		s.Sink = cfg.sink
	}
	if cfg.logger != nil {
		s.Logger = cfg.logger
	}
	if cfg.onExists != nil {
		s.OnExists = cfg.onExists
	}
	return s.Generate(ctx, cfg.proj, cfg.featureName, endpoints)
}

// WithProject specifies the project context to generate into.
func WithProject(proj *project.Context) Option {
	return func(cfg *generateConfig) error {
		cfg.proj = proj
		return nil
	}
}

// WithFeatureName specifies the snake_case feature name.
func WithFeatureName(name string) Option {
	return func(cfg *generateConfig) error {
		cfg.featureName = name
		return nil
	}
}

// WithEndpoints specifies the endpoints directly.
func WithEndpoints(endpoints []extractor.Endpoint) Option {
	return func(cfg *generateConfig) error {
		cfg.endpoints = endpoints
		return nil
	}
}

// WithSelection specifies 1-based listing numbers resolved against the
// project's specification.
func WithSelection(numbers []int) Option {
	return func(cfg *generateConfig) error {
		cfg.selection = numbers
		return nil
	}
}

// WithAllEndpoints selects every endpoint in the specification.
func WithAllEndpoints() Option {
	return func(cfg *generateConfig) error {
		cfg.useAll = true
		return nil
	}
}

// WithBaseDir overrides the feature tree root (default lib/features).
func WithBaseDir(dir string) Option {
	return func(cfg *generateConfig) error {
		cfg.baseDir = dir
		return nil
	}
}

// WithLayers selects which layers are generated.
func WithLayers(layers Layers) Option {
	return func(cfg *generateConfig) error {
		cfg.layers = &layers
		return nil
	}
}

// WithSink overrides the output sink.
func WithSink(out sink.OutputSink) Option {
	return func(cfg *generateConfig) error {
		cfg.sink = out
		return nil
	}
}

// WithLogger specifies the logger for the run.
func WithLogger(l extractor.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithOnExists specifies the callback deciding what to do when the
// feature already exists.
func WithOnExists(fn func(featureName string) (ExistsChoice, error)) Option {
	return func(cfg *generateConfig) error {
		cfg.onExists = fn
		return nil
	}
}

// WithExistsChoice fixes the exists decision ahead of time, for
// non-interactive front ends.
func WithExistsChoice(choice ExistsChoice) Option {
	return func(cfg *generateConfig) error {
		cfg.onExists = func(string) (ExistsChoice, error) {
			return choice, nil
		}
		return nil
	}
}
