package extractor

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	featuregen "github.com/MohamadsFakih/flutter-feature-generator"
	"github.com/MohamadsFakih/flutter-feature-generator/generrors"
)

// Extractor handles endpoint extraction from OpenAPI documents
type Extractor struct {
	// Logger receives structured debug output during extraction.
	// When nil, no logging is performed.
	Logger Logger
	// UserAgent is the User-Agent string sent when fetching documents
	// over HTTP
	UserAgent string
	// HTTPClient overrides the HTTP client used for URL sources.
	// When nil, a default client with a 30 second timeout is used.
	HTTPClient *http.Client
}

// New creates a new Extractor with default settings
func New() *Extractor {
	return &Extractor{
		UserAgent: featuregen.UserAgent(),
	}
}

// log returns the configured logger or a no-op logger
func (x *Extractor) log() Logger {
	if x.Logger == nil {
		return NopLogger{}
	}
	return x.Logger
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates a YAML source document
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates a JSON source document
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// DocumentStats contains statistical information about an extracted document
type DocumentStats struct {
	PathCount     int // number of entries under paths
	EndpointCount int // extracted operations with supported verbs
	TagCount      int // distinct tags, including the synthetic default
	SchemaCount   int // named schemas available for reference resolution
}

// Result contains the outcome of an extraction
type Result struct {
	// SourcePath is the path or URL the document was loaded from
	SourcePath string
	// SourceFormat is the detected format of the source document
	SourceFormat SourceFormat
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Version is the declared specification version (e.g. "2.0", "3.0.3")
	Version string
	// LoadTime is the time taken to load the source data (file, URL, stdin)
	LoadTime time.Duration
	// Stats summarizes the extracted document
	Stats DocumentStats
	// Endpoints holds every extracted endpoint exactly once, in source
	// document order
	Endpoints []Endpoint
	// Tags groups endpoint indexes by tag, in first-appearance order
	Tags []TagGroup
}

// Extract loads and extracts the document at specPath, which may be a local
// file path, an http:// or https:// URL, or "-" for standard input.
func (x *Extractor) Extract(specPath string) (*Result, error) {
	var (
		data      []byte
		err       error
		format    SourceFormat
		loadStart = time.Now()
	)
	switch {
	case specPath == "-":
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("extractor: failed to read stdin: %w", err)
		}
		format = detectFormatFromContent(data)
		specPath = "stdin." + string(format)
	case isURL(specPath):
		var contentType string
		data, contentType, err = x.fetchURL(specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(specPath, contentType)
		if format == SourceFormatUnknown {
			format = detectFormatFromContent(data)
		}
	default:
		data, err = os.ReadFile(specPath)
		if err != nil {
			return nil, fmt.Errorf("extractor: failed to read file: %w", err)
		}
		format = detectFormatFromPath(specPath)
		if format == SourceFormatUnknown {
			format = detectFormatFromContent(data)
		}
	}
	loadTime := time.Since(loadStart)

	res, err := x.extractBytes(data, specPath, format)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ExtractReader extracts a document from an io.Reader.
// Note: since there is no actual source path, Result.SourcePath will be set
// to ExtractReader.yaml or ExtractReader.json.
func (x *Extractor) ExtractReader(r io.Reader) (*Result, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("extractor: failed to read input: %w", err)
	}
	format := detectFormatFromContent(data)
	res, err := x.extractBytes(data, "ExtractReader."+string(format), format)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ExtractBytes extracts a document from a byte slice.
// Note: since there is no actual source path, Result.SourcePath will be set
// to ExtractBytes.yaml or ExtractBytes.json.
func (x *Extractor) ExtractBytes(data []byte) (*Result, error) {
	format := detectFormatFromContent(data)
	return x.extractBytes(data, "ExtractBytes."+string(format), format)
}

// extractBytes decodes the document and walks it into endpoints.
func (x *Extractor) extractBytes(data []byte, sourcePath string, format SourceFormat) (*Result, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &generrors.ExtractError{
			Path:    sourcePath,
			Message: "failed to decode document",
			Cause:   err,
		}
	}

	docRoot := documentRoot(&root)
	version := detectVersion(docRoot)
	x.log().Debug("extracting document",
		"source", sourcePath, "format", format, "version", version)

	w := &documentWalker{source: sourcePath, log: x.log()}
	endpoints, tags, err := w.walk(docRoot)
	if err != nil {
		return nil, err
	}

	res := &Result{
		SourcePath:   sourcePath,
		SourceFormat: format,
		SourceSize:   int64(len(data)),
		Version:      version,
		Endpoints:    endpoints,
		Tags:         tags,
		Stats: DocumentStats{
			PathCount:     w.pathCount,
			EndpointCount: len(endpoints),
			TagCount:      len(tags),
			SchemaCount:   len(w.schemas),
		},
	}
	x.log().Info("extraction complete",
		"source", sourcePath,
		"endpoints", res.Stats.EndpointCount,
		"tags", res.Stats.TagCount)
	return res, nil
}

// Listing flattens the tag index into numbered rows, in the order and with
// the numbering shown for interactive and non-interactive selection. An
// operation with several tags yields one row per tag, all referencing the
// same endpoint.
func (r *Result) Listing() []ListEntry {
	var entries []ListEntry
	n := 1
	for _, g := range r.Tags {
		for _, idx := range g.Endpoints {
			entries = append(entries, ListEntry{Index: n, Tag: g.Name, Endpoint: idx})
			n++
		}
	}
	return entries
}

// EndpointsForTag returns the endpoints grouped under the named tag, in
// listing order. The boolean reports whether the tag exists.
func (r *Result) EndpointsForTag(name string) ([]Endpoint, bool) {
	for _, g := range r.Tags {
		if g.Name != name {
			continue
		}
		endpoints := make([]Endpoint, 0, len(g.Endpoints))
		for _, idx := range g.Endpoints {
			endpoints = append(endpoints, r.Endpoints[idx])
		}
		return endpoints, true
	}
	return nil, false
}

// Select maps 1-based listing numbers to endpoints, deduplicating rows that
// reference the same underlying endpoint: the same operation listed under
// two tags counts once. Order follows the first appearance of each endpoint
// in the selection.
func (r *Result) Select(numbers []int) ([]Endpoint, error) {
	entries := r.Listing()
	seen := make(map[int]bool)
	var selected []Endpoint
	for _, n := range numbers {
		if n < 1 || n > len(entries) {
			return nil, &generrors.SelectionError{
				Index:   n,
				Message: fmt.Sprintf("out of range, listing has %d entries", len(entries)),
			}
		}
		idx := entries[n-1].Endpoint
		if seen[idx] {
			continue
		}
		seen[idx] = true
		selected = append(selected, r.Endpoints[idx])
	}
	return selected, nil
}
