package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/generrors"
	"github.com/MohamadsFakih/flutter-feature-generator/patcher"
	"github.com/MohamadsFakih/flutter-feature-generator/render"
	"github.com/MohamadsFakih/flutter-feature-generator/scaffold/sink"
)

// presentEndpointRE matches the verb annotations the service template
// renders, e.g. @GET('/users/{id}').
var presentEndpointRE = regexp.MustCompile(`@(GET|POST|PUT|DELETE|PATCH)\('([^']*)'\)`)

type endpointKey struct {
	method string
	path   string
}

// presentEndpoints scans existing service text for rendered verb
// annotations and returns the (lowercase method, path) pairs found. This
// is a textual scan of the annotation format, not a Dart parse.
func presentEndpoints(serviceContent string) map[endpointKey]bool {
	present := make(map[endpointKey]bool)
	for _, m := range presentEndpointRE.FindAllStringSubmatch(serviceContent, -1) {
		present[endpointKey{method: strings.ToLower(m[1]), path: m[2]}] = true
	}
	return present
}

// filePatch describes how one layer file is extended in place.
type filePatch struct {
	// path is the project-relative file path
	path string
	// fresh renders the whole file when it is missing
	fresh func(render.Feature) (string, error)
	// imports are the import lines the new endpoints need
	imports []string
	// apply splices the new fragments into the file
	apply func(*patcher.File) error
}

// appendFeature splices the endpoints not already present into the
// existing feature files. Layers are updated independently; a missing
// anchor skips that file with a warning and the batch continues.
func (s *Scaffolder) appendFeature(ctx context.Context, out sink.OutputSink, f render.Feature, l layout, result *Result) error {
	serviceContent, err := out.ReadFile(ctx, l.Service())
	if err != nil {
		return fmt.Errorf("scaffold: failed to read %s: %w", l.Service(), err)
	}

	present := presentEndpoints(string(serviceContent))
	remaining := make([]extractor.Endpoint, 0, len(f.Endpoints))
	for _, e := range f.Endpoints {
		if present[endpointKey{method: e.Method, path: e.Path}] {
			result.SkippedEndpoints = append(result.SkippedEndpoints, SkippedEndpoint{
				Method: e.Method,
				Path:   e.Path,
				Reason: "already present",
			})
			s.log().Debug("endpoint already present", "method", e.Method, "path", e.Path)
			continue
		}
		remaining = append(remaining, e)
	}
	if len(remaining) == 0 {
		result.Message = fmt.Sprintf("nothing to do: all %d selected endpoint(s) already present in %s",
			len(f.Endpoints), l.FeatureDir)
		s.log().Info("nothing to do", "feature", f.Name)
		return nil
	}

	f.Endpoints = remaining
	result.EndpointCount = len(remaining)
	result.Issues = append(result.Issues, render.Warnings(f)...)

	w := &writer{ctx: ctx, sink: out, result: result, log: s.log()}
	layers := s.layers()
	classes := render.FeatureClassNames(f)

	if layers.Data {
		if err := s.appendModels(ctx, out, f, l, w); err != nil {
			return err
		}
	}

	var patches []filePatch
	if layers.Data {
		patches = append(patches,
			filePatch{
				path:    l.Service(),
				fresh:   render.ServiceFile,
				imports: render.ModelImportLines(f),
				apply:   spliceLastBrace(render.ServiceMethodsFragment, f),
			},
			filePatch{
				path:    l.Source(),
				fresh:   render.SourceFile,
				imports: render.ModelImportLines(f),
				apply:   spliceLastBrace(render.SourceMethodsFragment, f),
			},
			filePatch{
				path:    l.SourceImpl(),
				fresh:   render.SourceImplFile,
				imports: render.ModelImportLines(f),
				apply:   spliceLastBrace(render.SourceImplMethodsFragment, f),
			},
			filePatch{
				path:    l.RepositoryImpl(),
				fresh:   render.RepositoryImplFile,
				imports: render.ModelImportLines(f),
				apply:   spliceLastBrace(render.RepositoryImplMethodsFragment, f),
			},
		)
	}
	if layers.Domain {
		patches = append(patches,
			filePatch{
				path:    l.Repository(),
				fresh:   render.RepositoryFile,
				imports: render.ModelImportLines(f),
				apply:   spliceLastBrace(render.RepositoryMethodsFragment, f),
			},
			filePatch{
				path:    l.UseCase(),
				fresh:   render.UseCaseFile,
				imports: render.ModelImportLines(f),
				apply:   spliceInClass(classes.UseCase, render.UseCaseMethodsFragment, f),
			},
		)
	}
	if layers.Presentation && layers.Components.Bloc {
		patches = append(patches,
			filePatch{
				path:    l.Event(),
				fresh:   render.EventFile,
				imports: render.RequestModelImportLines(f),
				apply:   eventPatch(classes, f),
			},
			filePatch{
				path:    l.State(),
				fresh:   render.StateFile,
				imports: render.ResponseModelImportLines(f),
				apply:   statePatch(classes, f),
			},
			filePatch{
				path:  l.Bloc(),
				fresh: render.BlocFile,
				apply: blocPatch(classes, f),
			},
		)
	}

	for _, p := range patches {
		if err := s.applyPatch(ctx, out, f, result, p); err != nil {
			return err
		}
	}

	if n := len(result.SkippedEndpoints); n > 0 {
		result.Message = fmt.Sprintf("feature %q updated with %d new endpoint(s) (%d already present)",
			f.Name, len(remaining), n)
	} else {
		result.Message = fmt.Sprintf("feature %q updated with %d new endpoint(s)", f.Name, len(remaining))
	}

	return s.ensureDataState(ctx, w)
}

// appendModels writes the model files for the new endpoints. A model file
// that already exists is left untouched so prior edits survive.
func (s *Scaffolder) appendModels(ctx context.Context, out sink.OutputSink, f render.Feature, l layout, w *writer) error {
	models, err := render.ModelFiles(f)
	if err != nil {
		return err
	}
	for _, m := range models {
		p := l.Model(m.FileName)
		exists, err := out.Exists(ctx, p)
		if err != nil {
			return fmt.Errorf("scaffold: failed to probe %s: %w", p, err)
		}
		if exists {
			w.result.Files = append(w.result.Files, GeneratedFile{Path: p, Action: ActionSkipped})
			w.result.Issues = append(w.result.Issues, Issue{
				Severity: SeverityWarning,
				File:     p,
				Message:  fmt.Sprintf("model %s already exists, left untouched", m.ClassName),
			})
			s.log().Warn("model already exists", "path", p, "class", m.ClassName)
			continue
		}
		if err := w.create(p, m.Content); err != nil {
			return err
		}
	}
	return nil
}

// applyPatch extends one layer file in place. A missing file is rendered
// fresh with only the new endpoints; a missing anchor records a warning
// and skips the file.
func (s *Scaffolder) applyPatch(ctx context.Context, out sink.OutputSink, f render.Feature, result *Result, p filePatch) error {
	content, err := out.ReadFile(ctx, p.path)
	if errors.Is(err, fs.ErrNotExist) {
		text, rerr := p.fresh(f)
		if rerr != nil {
			return rerr
		}
		if werr := out.WriteFile(ctx, p.path, []byte(text)); werr != nil {
			return fmt.Errorf("scaffold: failed to write %s: %w", p.path, werr)
		}
		result.Files = append(result.Files, GeneratedFile{Path: p.path, Action: ActionCreated})
		result.Issues = append(result.Issues, Issue{
			Severity: SeverityInfo,
			File:     p.path,
			Message:  "layer file was missing, created with the new endpoints only",
		})
		s.log().Info("layer file missing, created fresh", "path", p.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("scaffold: failed to read %s: %w", p.path, err)
	}

	file := patcher.NewFile(p.path, string(content))
	file.AddImports(p.imports)
	if err := p.apply(file); err != nil {
		var patchErr *generrors.PatchError
		if errors.As(err, &patchErr) {
			result.Files = append(result.Files, GeneratedFile{Path: p.path, Action: ActionSkipped})
			result.Issues = append(result.Issues, Issue{
				Severity: SeverityWarning,
				File:     p.path,
				Message:  fmt.Sprintf("append skipped, anchor not found: %s", patchErr.Anchor),
			})
			s.log().Warn("append skipped, anchor not found", "path", p.path, "anchor", patchErr.Anchor)
			return nil
		}
		return err
	}
	if !file.Changed {
		return nil
	}
	if err := out.WriteFile(ctx, p.path, []byte(file.Content)); err != nil {
		return fmt.Errorf("scaffold: failed to write %s: %w", p.path, err)
	}
	result.Files = append(result.Files, GeneratedFile{Path: p.path, Action: ActionAppended})
	s.log().Debug("file appended", "path", p.path)
	return nil
}

// spliceLastBrace splices a method fragment before the file's final
// closing brace.
func spliceLastBrace(fragment func(render.Feature) (string, error), f render.Feature) func(*patcher.File) error {
	return func(file *patcher.File) error {
		text, err := fragment(f)
		if err != nil {
			return err
		}
		return file.InsertBeforeLastBrace(text)
	}
}

// spliceInClass splices a method fragment at the closing brace of the
// named class.
func spliceInClass(className string, fragment func(render.Feature) (string, error), f render.Feature) func(*patcher.File) error {
	return func(file *patcher.File) error {
		text, err := fragment(f)
		if err != nil {
			return err
		}
		return file.InsertInClass(className, text)
	}
}

// eventPatch extends the event union: factory variants when the existing
// file uses the factory pattern, plain subclasses otherwise.
func eventPatch(classes render.ClassNames, f render.Feature) func(*patcher.File) error {
	return func(file *patcher.File) error {
		if file.HasFactoryMarkers(classes.EventBase) {
			text, err := render.EventFactoryFragment(f)
			if err != nil {
				return err
			}
			return file.InsertAfterLastLine("factory "+classes.EventBase+".", text)
		}
		text, err := render.EventSubclassFragment(f)
		if err != nil {
			return err
		}
		return file.InsertBeforeLastBrace(text)
	}
}

// statePatch extends the state: factory variants for factory-pattern
// files; otherwise a nullable field plus its constructor parameter, so the
// spliced bloc handlers can set the new field by name.
func statePatch(classes render.ClassNames, f render.Feature) func(*patcher.File) error {
	return func(file *patcher.File) error {
		if file.HasFactoryMarkers(classes.State) {
			text, err := render.StateFactoryFragment(f)
			if err != nil {
				return err
			}
			return file.InsertAfterLastLine("factory "+classes.State+".", text)
		}
		params, err := render.StateCtorParamsFragment(f)
		if err != nil {
			return err
		}
		if err := file.InsertAfterLastLine("    this.", params); err != nil {
			return err
		}
		fields, err := render.StateFieldsFragment(f)
		if err != nil {
			return err
		}
		return file.InsertBeforeLastBrace(fields)
	}
}

// blocPatch registers the new events and splices their handler methods.
// The bloc imports are endpoint-independent, so no import patch is needed.
func blocPatch(classes render.ClassNames, f render.Feature) func(*patcher.File) error {
	return func(file *patcher.File) error {
		regs, err := render.BlocRegistrationsFragment(f)
		if err != nil {
			return err
		}
		if err := file.InsertAfterLastLine("on<", regs); err != nil {
			return err
		}
		handlers, err := render.BlocHandlersFragment(f)
		if err != nil {
			return err
		}
		return file.InsertInClass(classes.Bloc, handlers)
	}
}
