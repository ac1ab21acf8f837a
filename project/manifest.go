package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v4"

	"github.com/MohamadsFakih/flutter-feature-generator/generrors"
)

// ManifestFileName is the manifest file looked up in the project root.
const ManifestFileName = "pubspec.yaml"

// Manifest is the subset of pubspec.yaml the generator reads. Name is the
// Dart package name that prefixes generated package: import paths.
type Manifest struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}

// LoadManifest reads and decodes the pubspec.yaml in the given project
// root. A missing file, a decode failure, or an empty name key returns a
// *generrors.ManifestError; all of these are fatal startup conditions.
func LoadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, ManifestFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &generrors.ManifestError{
			Path:    path,
			Message: "pubspec.yaml not found (is this a Flutter project root?)",
			Cause:   err,
		}
	}
	if err != nil {
		return nil, &generrors.ManifestError{
			Path:    path,
			Message: "failed to read pubspec.yaml",
			Cause:   err,
		}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &generrors.ManifestError{
			Path:    path,
			Message: "failed to decode pubspec.yaml",
			Cause:   err,
		}
	}
	if m.Name == "" {
		return nil, &generrors.ManifestError{
			Path:    path,
			Message: "name key is missing or empty",
		}
	}
	return &m, nil
}
