package extractor

import (
	"fmt"
	"io"
	"net/http"

	featuregen "github.com/MohamadsFakih/flutter-feature-generator"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/options"
)

// Option is a function that configures an extract operation
type Option func(*extractConfig) error

// extractConfig holds configuration for an extract operation
type extractConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	// Configuration options
	logger     Logger
	userAgent  string
	httpClient *http.Client

	// Source identification
	sourceName *string // Override SourcePath in the result
}

// ExtractWithOptions extracts endpoints using functional options.
// This provides a flexible API that combines input source selection and
// configuration in a single function call.
//
// Example:
//
//	result, err := extractor.ExtractWithOptions(
//	    extractor.WithFilePath("swagger.json"),
//	    extractor.WithLogger(logger),
//	)
func ExtractWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("extractor: invalid options: %w", err)
	}

	x := &Extractor{
		Logger:     cfg.logger,
		UserAgent:  cfg.userAgent,
		HTTPClient: cfg.httpClient,
	}

	// Route to the appropriate extraction method based on input source
	var result *Result
	var extractErr error
	switch {
	case cfg.filePath != nil:
		result, extractErr = x.Extract(*cfg.filePath)
	case cfg.reader != nil:
		result, extractErr = x.ExtractReader(cfg.reader)
	case cfg.bytes != nil:
		result, extractErr = x.ExtractBytes(cfg.bytes)
	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("extractor: no input source specified")
	}

	if extractErr != nil {
		return result, extractErr
	}

	// Apply source name override if specified
	if result != nil && cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}

	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*extractConfig, error) {
	cfg := &extractConfig{
		userAgent: featuregen.UserAgent(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	if err := options.ValidateSingleInputSource(
		"extractor: must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"extractor: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies the input source: a file path, an http:// or
// https:// URL, or "-" for standard input
func WithFilePath(path string) Option {
	return func(cfg *extractConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *extractConfig) error {
		if r == nil {
			return fmt.Errorf("extractor: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *extractConfig) error {
		if data == nil {
			return fmt.Errorf("extractor: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithLogger sets a structured logger for debug output during extraction.
// By default, no logging is performed (nil logger).
//
// The logger interface is compatible with log/slog, zap, and zerolog.
// Use NewSlogAdapter to wrap a *slog.Logger.
func WithLogger(l Logger) Option {
	return func(cfg *extractConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "featuregen/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *extractConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URL sources.
// When set, the client is used as-is for all HTTP requests; configure
// timeouts and TLS settings on the client's transport.
//
// If the client is nil, this option has no effect (default client is used).
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *extractConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithSourceName specifies a meaningful name for the source document.
// This is particularly useful when extracting from bytes or reader, where
// the default names ("ExtractBytes.yaml", "ExtractReader.yaml") are not
// descriptive. The name appears in error messages and diagnostic output.
func WithSourceName(name string) Option {
	return func(cfg *extractConfig) error {
		if name == "" {
			return fmt.Errorf("extractor: source name cannot be empty")
		}
		cfg.sourceName = &name
		return nil
	}
}
