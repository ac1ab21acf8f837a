// Package project loads the target Flutter project's context: the package
// name from pubspec.yaml plus the parsed specification. Front ends load it
// once at startup and share the resulting Context, which is never mutated
// afterwards.
package project

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
)

// DefaultSpecName is the specification file looked up in the project root
// when no explicit path is given.
const DefaultSpecName = "swagger.json"

// Context is the immutable project state shared by every front end. The
// specification is loaded exactly once; concurrent readers never see it
// change.
type Context struct {
	// Root is the project root directory
	Root string
	// Name is the Dart package name from pubspec.yaml
	Name string
	// SpecPath is the resolved path, URL, or "-" the specification was
	// loaded from
	SpecPath string
	// Spec is the extracted specification
	Spec *extractor.Result
	// Manifest is the decoded pubspec subset
	Manifest *Manifest
}

// Loader loads project contexts.
type Loader struct {
	// Logger receives structured output during loading. When nil, no
	// logging is performed.
	Logger extractor.Logger
	// Extractor overrides the extractor used for the specification.
	// When nil, a default extractor sharing Logger is used.
	Extractor *extractor.Extractor
}

// NewLoader creates a Loader with default settings.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the manifest and specification for the project rooted at root
// using a default Loader. See Loader.Load.
func Load(root, specPath string) (*Context, error) {
	return NewLoader().Load(root, specPath)
}

// Load reads the pubspec.yaml under root and extracts the specification at
// specPath, returning the shared Context. A relative specPath is resolved
// against root; URLs, absolute paths, and "-" (stdin) pass through
// unchanged, and an empty specPath means DefaultSpecName in the root.
func (l *Loader) Load(root, specPath string) (*Context, error) {
	if root == "" {
		root = "."
	}

	manifest, err := LoadManifest(root)
	if err != nil {
		return nil, err
	}
	if !dartPackageNameRE.MatchString(manifest.Name) {
		l.log().Warn("project name is not lower_snake_case; generated package: imports may not resolve",
			"name", manifest.Name)
	}
	l.log().Debug("manifest loaded",
		"root", root, "name", manifest.Name, "version", manifest.Version)

	resolved := ResolveSpecPath(root, specPath)
	x := l.Extractor
	if x == nil {
		x = extractor.New()
		x.Logger = l.Logger
	}
	spec, err := x.Extract(resolved)
	if err != nil {
		return nil, err
	}

	return &Context{
		Root:     root,
		Name:     manifest.Name,
		SpecPath: resolved,
		Spec:     spec,
		Manifest: manifest,
	}, nil
}

// log returns the configured logger or a no-op logger.
func (l *Loader) log() extractor.Logger {
	if l.Logger == nil {
		return extractor.NopLogger{}
	}
	return l.Logger
}

// ResolveSpecPath resolves a specification path against the project root.
// Relative file paths join the root; URLs, absolute paths, and "-" are
// returned unchanged. An empty path resolves to DefaultSpecName.
func ResolveSpecPath(root, specPath string) string {
	if specPath == "" {
		specPath = DefaultSpecName
	}
	if specPath == "-" || isURL(specPath) || filepath.IsAbs(specPath) {
		return specPath
	}
	if root == "" {
		return specPath
	}
	return filepath.Join(root, specPath)
}

// Dart package names are lowercase identifiers with underscores.
var dartPackageNameRE = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
