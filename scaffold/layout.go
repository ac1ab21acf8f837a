package scaffold

import (
	"path"
	"strings"
)

// layout computes the project-relative output paths for one feature. All
// paths are slash-separated; the sink maps them to the platform.
type layout struct {
	// BaseDir is the cleaned feature tree root
	BaseDir string
	// FeatureDir is BaseDir joined with the feature name
	FeatureDir string
	// Name is the snake_case feature name
	Name string
}

func newLayout(baseDir, name string) layout {
	base := path.Clean(strings.TrimSuffix(baseDir, "/"))
	return layout{
		BaseDir:    base,
		FeatureDir: path.Join(base, name),
		Name:       name,
	}
}

// ImportPrefix returns the lib-relative feature directory used in
// package: import URIs. A base dir outside lib/ mirrors the directory
// layout as-is.
func (l layout) ImportPrefix() string {
	if after, ok := strings.CutPrefix(l.FeatureDir, "lib/"); ok {
		return after
	}
	return l.FeatureDir
}

func (l layout) Model(fileName string) string {
	return path.Join(l.FeatureDir, "data/model", fileName)
}

func (l layout) Service() string {
	return path.Join(l.FeatureDir, "data/remote/service", l.Name+"_service.dart")
}

func (l layout) Source() string {
	return path.Join(l.FeatureDir, "data/remote/source", l.Name+"_source.dart")
}

func (l layout) SourceImpl() string {
	return path.Join(l.FeatureDir, "data/remote/source", l.Name+"_source_impl.dart")
}

func (l layout) RepositoryImpl() string {
	return path.Join(l.FeatureDir, "data/repository", l.Name+"_repository_impl.dart")
}

func (l layout) Repository() string {
	return path.Join(l.FeatureDir, "domain/repository", l.Name+"_repository.dart")
}

func (l layout) UseCase() string {
	return path.Join(l.FeatureDir, "domain/usecase", l.Name+"_usecase.dart")
}

func (l layout) Event() string {
	return path.Join(l.FeatureDir, "presentation/bloc", l.Name+"_event.dart")
}

func (l layout) State() string {
	return path.Join(l.FeatureDir, "presentation/bloc", l.Name+"_state.dart")
}

func (l layout) Bloc() string {
	return path.Join(l.FeatureDir, "presentation/bloc", l.Name+"_bloc.dart")
}

func (l layout) Screen() string {
	return path.Join(l.FeatureDir, "presentation/screen", l.Name+"_screen.dart")
}

func (l layout) WidgetDir() string {
	return path.Join(l.FeatureDir, "presentation/widget")
}
