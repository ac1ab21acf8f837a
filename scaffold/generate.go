package scaffold

import (
	"context"
	"fmt"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/render"
	"github.com/MohamadsFakih/flutter-feature-generator/scaffold/sink"
)

// writer records sink writes on the result as it performs them.
type writer struct {
	ctx    context.Context
	sink   sink.OutputSink
	result *Result
	log    extractor.Logger
}

func (w *writer) create(path, content string) error {
	if err := w.sink.WriteFile(w.ctx, path, []byte(content)); err != nil {
		return fmt.Errorf("scaffold: failed to write %s: %w", path, err)
	}
	w.result.Files = append(w.result.Files, GeneratedFile{Path: path, Action: ActionCreated})
	w.log.Debug("file written", "path", path)
	return nil
}

// createRendered renders a full-file template and writes it.
func (w *writer) createRendered(path string, renderFile func(render.Feature) (string, error), f render.Feature) error {
	content, err := renderFile(f)
	if err != nil {
		return err
	}
	return w.create(path, content)
}

// generateAll writes every file of the selected layers from scratch.
// Existing files at the target paths are replaced.
func (s *Scaffolder) generateAll(ctx context.Context, out sink.OutputSink, f render.Feature, l layout, result *Result) error {
	w := &writer{ctx: ctx, sink: out, result: result, log: s.log()}
	layers := s.layers()

	result.Issues = append(result.Issues, render.Warnings(f)...)

	if layers.Data {
		models, err := render.ModelFiles(f)
		if err != nil {
			return err
		}
		for _, m := range models {
			if err := w.create(l.Model(m.FileName), m.Content); err != nil {
				return err
			}
		}
		if err := w.createRendered(l.Service(), render.ServiceFile, f); err != nil {
			return err
		}
		if err := w.createRendered(l.Source(), render.SourceFile, f); err != nil {
			return err
		}
		if err := w.createRendered(l.SourceImpl(), render.SourceImplFile, f); err != nil {
			return err
		}
		if err := w.createRendered(l.RepositoryImpl(), render.RepositoryImplFile, f); err != nil {
			return err
		}
	}

	if layers.Domain {
		if err := w.createRendered(l.Repository(), render.RepositoryFile, f); err != nil {
			return err
		}
		if err := w.createRendered(l.UseCase(), render.UseCaseFile, f); err != nil {
			return err
		}
	}

	if layers.Presentation {
		if layers.Components.Bloc {
			if err := w.createRendered(l.Event(), render.EventFile, f); err != nil {
				return err
			}
			if err := w.createRendered(l.State(), render.StateFile, f); err != nil {
				return err
			}
			if err := w.createRendered(l.Bloc(), render.BlocFile, f); err != nil {
				return err
			}
		}
		if layers.Components.Screens {
			if err := w.createRendered(l.Screen(), render.ScreenFile, f); err != nil {
				return err
			}
		}
		if layers.Components.Widgets {
			if err := out.EnsureDir(ctx, l.WidgetDir()); err != nil {
				return fmt.Errorf("scaffold: failed to create %s: %w", l.WidgetDir(), err)
			}
			result.Files = append(result.Files, GeneratedFile{Path: l.WidgetDir() + "/", Action: ActionCreated})
		}
	}

	return s.ensureDataState(ctx, w)
}

// ensureDataState writes the shared DataState definition when absent. It
// is never overwritten; projects customize it.
func (s *Scaffolder) ensureDataState(ctx context.Context, w *writer) error {
	exists, err := w.sink.Exists(ctx, DataStatePath)
	if err != nil {
		return fmt.Errorf("scaffold: failed to probe %s: %w", DataStatePath, err)
	}
	if exists {
		return nil
	}
	content, err := render.DataStateFile()
	if err != nil {
		return err
	}
	return w.create(DataStatePath, content)
}
