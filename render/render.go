package render

import (
	"fmt"
	"strings"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/issues"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/naming"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/severity"
)

// Issue represents a single rendering issue or limitation
type Issue = issues.Issue

// Severity is the issue severity scale shared across packages.
type Severity = severity.Severity

// Severity levels for Issue values returned by Warnings.
const (
	SeverityError    = severity.SeverityError
	SeverityWarning  = severity.SeverityWarning
	SeverityInfo     = severity.SeverityInfo
	SeverityCritical = severity.SeverityCritical
)

// Feature describes one feature to render. Renderers are pure functions
// over this value; the same Feature always renders the same text.
type Feature struct {
	// Name is the snake_case feature name, e.g. "user_profile"
	Name string

	// Project is the Dart package name from the project manifest, used in
	// package: import URIs
	Project string

	// ImportPrefix is the lib-relative path of the feature directory used
	// in import URIs. Empty means "features/<Name>".
	ImportPrefix string

	// Endpoints are the selected endpoints in listing order
	Endpoints []extractor.Endpoint
}

// ModelFile is one rendered model class file.
type ModelFile struct {
	// ClassName is the model class name, e.g. "GetUsersResponse"
	ClassName string
	// FileName is the snake_case file name, e.g. "get_users_response.dart"
	FileName string
	// Content is the rendered Dart source
	Content string
}

// importPrefix returns the lib-relative feature directory for import URIs.
func (f Feature) importPrefix() string {
	if f.ImportPrefix != "" {
		return strings.Trim(f.ImportPrefix, "/")
	}
	return "features/" + f.Name
}

// packageURI builds a package: import URI for a path inside the feature
// directory.
func (f Feature) packageURI(rel string) string {
	return fmt.Sprintf("package:%s/%s/%s", f.Project, f.importPrefix(), rel)
}

func (f Feature) modelURI(className string) string {
	return f.packageURI("data/model/" + naming.ToSnakeCase(className) + ".dart")
}

func (f Feature) serviceURI() string {
	return f.packageURI("data/remote/service/" + f.Name + "_service.dart")
}

func (f Feature) sourceURI() string {
	return f.packageURI("data/remote/source/" + f.Name + "_source.dart")
}

func (f Feature) repositoryURI() string {
	return f.packageURI("domain/repository/" + f.Name + "_repository.dart")
}

func (f Feature) usecaseURI() string {
	return f.packageURI("domain/usecase/" + f.Name + "_usecase.dart")
}

func (f Feature) eventURI() string {
	return f.packageURI("presentation/bloc/" + f.Name + "_event.dart")
}

func (f Feature) stateURI() string {
	return f.packageURI("presentation/bloc/" + f.Name + "_state.dart")
}

func (f Feature) blocURI() string {
	return f.packageURI("presentation/bloc/" + f.Name + "_bloc.dart")
}

// dataStateURI builds the import URI of the shared DataState definition.
// The core path is fixed and does not follow ImportPrefix.
func (f Feature) dataStateURI() string {
	return fmt.Sprintf("package:%s/core/resources/data_state.dart", f.Project)
}

// ModelFiles renders the deduplicated model class files for a feature in
// endpoint order: the request model (when a body is present) then the
// response model (when a success response is present) per endpoint. Model
// names are synthesized from method names, so two endpoints referencing the
// same schema get distinct model classes.
func ModelFiles(f Feature) ([]ModelFile, error) {
	datas := buildModelDatas(f)
	files := make([]ModelFile, 0, len(datas))
	for _, data := range datas {
		content, err := executeTemplate("model.tmpl", data)
		if err != nil {
			return nil, err
		}
		files = append(files, ModelFile{
			ClassName: data.ClassName,
			FileName:  naming.ToSnakeCase(data.ClassName) + ".dart",
			Content:   content,
		})
	}
	return files, nil
}

// ServiceFile renders the Retrofit network service for a feature.
func ServiceFile(f Feature) (string, error) {
	return executeTemplate("service.tmpl", buildServiceFileData(f))
}

// SourceFile renders the data source interface for a feature.
func SourceFile(f Feature) (string, error) {
	return executeTemplate("source.tmpl", buildSourceFileData(f))
}

// SourceImplFile renders the data source implementation for a feature.
func SourceImplFile(f Feature) (string, error) {
	return executeTemplate("source_impl.tmpl", buildSourceImplFileData(f))
}

// RepositoryFile renders the domain repository interface for a feature.
func RepositoryFile(f Feature) (string, error) {
	return executeTemplate("repository.tmpl", buildRepositoryFileData(f))
}

// RepositoryImplFile renders the repository implementation for a feature.
// Thrown errors are mapped into DataState: DataSuccess on a completed call,
// DataFailed carrying the error message otherwise.
func RepositoryImplFile(f Feature) (string, error) {
	return executeTemplate("repository_impl.tmpl", buildRepositoryImplFileData(f))
}

// UseCaseFile renders the use case aggregate for a feature.
func UseCaseFile(f Feature) (string, error) {
	return executeTemplate("usecase.tmpl", buildUseCaseFileData(f))
}

// EventFile renders the BLoC event file: an abstract base class plus one
// subclass per endpoint carrying that endpoint's parameters and body.
func EventFile(f Feature) (string, error) {
	return executeTemplate("event.tmpl", buildEventFileData(f))
}

// StateFile renders the BLoC state file: one nullable field per endpoint
// plus isLoading and error.
func StateFile(f Feature) (string, error) {
	return executeTemplate("state.tmpl", buildStateFileData(f))
}

// BlocFile renders the BLoC with one registration and one handler per
// endpoint, emitting loading, success and failure states.
func BlocFile(f Feature) (string, error) {
	return executeTemplate("bloc.tmpl", buildBlocFileData(f))
}

// ScreenFile renders the view stub: a StatelessWidget with a BlocBuilder
// rendering the loading, error and success sub-states.
func ScreenFile(f Feature) (string, error) {
	return executeTemplate("screen.tmpl", buildScreenFileData(f))
}

// DataStateFile renders the shared DataState definition written to
// lib/core/resources/data_state.dart when it does not already exist.
func DataStateFile() (string, error) {
	return executeTemplate("data_state.tmpl", nil)
}

// ClassNames carries the feature-level Dart class names append mode needs
// to locate insertion anchors in existing files.
type ClassNames struct {
	// UseCase is the use case aggregate class, e.g. "UserProfileUseCase"
	UseCase string
	// Bloc is the bloc class, e.g. "UserProfileBloc"
	Bloc string
	// EventBase is the abstract event base class, e.g. "UserProfileEvent"
	EventBase string
	// State is the state class, e.g. "UserProfileState"
	State string
}

// FeatureClassNames returns the class names the rendered files declare for
// a feature. Appends anchor on these names, so they must stay in lockstep
// with the file templates.
func FeatureClassNames(f Feature) ClassNames {
	names := buildFeatureNames(f)
	return ClassNames{
		UseCase:   names.Pascal + "UseCase",
		Bloc:      names.Pascal + "Bloc",
		EventBase: names.Pascal + "Event",
		State:     names.Pascal + "State",
	}
}

// Fragment renderers used by append mode. Each executes the same method
// sub-template as the corresponding full-file renderer, so spliced text is
// byte-identical to freshly generated text.

// methodsFragment concatenates a per-method template over all endpoints.
func methodsFragment(f Feature, tmpl string) (string, error) {
	var b strings.Builder
	for _, e := range f.Endpoints {
		text, err := executeTemplate(tmpl, buildMethodData(f, e))
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// ServiceMethodsFragment renders the annotated service methods for
// insertion into an existing service file.
func ServiceMethodsFragment(f Feature) (string, error) {
	return methodsFragment(f, "service_method.tmpl")
}

// SourceMethodsFragment renders the data source method signatures for
// insertion into an existing source interface.
func SourceMethodsFragment(f Feature) (string, error) {
	return methodsFragment(f, "source_method.tmpl")
}

// SourceImplMethodsFragment renders the delegating method bodies for
// insertion into an existing source implementation.
func SourceImplMethodsFragment(f Feature) (string, error) {
	return methodsFragment(f, "source_impl_method.tmpl")
}

// RepositoryMethodsFragment renders the repository method signatures for
// insertion into an existing repository interface.
func RepositoryMethodsFragment(f Feature) (string, error) {
	return methodsFragment(f, "repository_method.tmpl")
}

// RepositoryImplMethodsFragment renders the DataState-mapping method bodies
// for insertion into an existing repository implementation.
func RepositoryImplMethodsFragment(f Feature) (string, error) {
	return methodsFragment(f, "repository_impl_method.tmpl")
}

// UseCaseMethodsFragment renders the delegating methods for insertion into
// an existing use case aggregate.
func UseCaseMethodsFragment(f Feature) (string, error) {
	return methodsFragment(f, "usecase_method.tmpl")
}

// EventSubclassFragment renders plain event subclasses for insertion
// before the final closing brace of an existing event file. Each piece
// closes the preceding declaration and leaves its own final brace to the
// file's existing one.
func EventSubclassFragment(f Feature) (string, error) {
	var b strings.Builder
	for _, e := range f.Endpoints {
		body, err := executeTemplate("event_subclass_body.tmpl", buildEventData(f, e))
		if err != nil {
			return "", err
		}
		b.WriteString("}\n\n")
		b.WriteString(body)
	}
	return b.String(), nil
}

// EventFactoryFragment renders factory-style event variants for insertion
// after the last variant constructor of a factory-pattern event file.
func EventFactoryFragment(f Feature) (string, error) {
	var b strings.Builder
	for _, e := range f.Endpoints {
		line, err := executeTemplate("event_factory_variant.tmpl", buildEventData(f, e))
		if err != nil {
			return "", err
		}
		b.WriteString(line)
	}
	return b.String(), nil
}

// StateFieldsFragment renders nullable state field declarations for
// insertion before the final closing brace of an existing state class.
func StateFieldsFragment(f Feature) (string, error) {
	var b strings.Builder
	b.WriteString("\n")
	for _, e := range f.Endpoints {
		b.WriteString(stateFieldLine(buildStateFieldData(f, e)))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// StateCtorParamsFragment renders constructor parameters for the new state
// fields, for insertion after the last this.-initializing parameter of an
// existing state constructor. Spliced alongside StateFieldsFragment so the
// bloc handlers can set the new fields by name.
func StateCtorParamsFragment(f Feature) (string, error) {
	var b strings.Builder
	for _, e := range f.Endpoints {
		b.WriteString(stateCtorParamLine(buildStateFieldData(f, e)))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// StateFactoryFragment renders factory-style state variants for insertion
// after the last variant constructor of a factory-pattern state file.
func StateFactoryFragment(f Feature) (string, error) {
	var b strings.Builder
	for _, e := range f.Endpoints {
		line, err := executeTemplate("state_factory_variant.tmpl", buildStateFieldData(f, e))
		if err != nil {
			return "", err
		}
		b.WriteString(line)
	}
	return b.String(), nil
}

// BlocHandlersFragment renders event handler methods for insertion at the
// closing brace of an existing bloc class.
func BlocHandlersFragment(f Feature) (string, error) {
	return methodsFragment(f, "bloc_handler.tmpl")
}

// BlocRegistrationsFragment renders on<Event> registration statements for
// insertion after the last existing registration line.
func BlocRegistrationsFragment(f Feature) (string, error) {
	var b strings.Builder
	for _, e := range f.Endpoints {
		b.WriteString(registrationLine(buildMethodData(f, e)))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Import line helpers used by append mode. Lines already present verbatim
// in the target file are skipped by the patcher.

// ModelImportLines returns the import statements for all model classes of
// the feature's endpoints, in first-appearance order.
func ModelImportLines(f Feature) []string {
	return modelImports(f, featureModelNames(f, true, true))
}

// RequestModelImportLines returns the import statements for request model
// classes only, as needed by the event file.
func RequestModelImportLines(f Feature) []string {
	return modelImports(f, featureModelNames(f, true, false))
}

// ResponseModelImportLines returns the import statements for response model
// classes only, as needed by the state file.
func ResponseModelImportLines(f Feature) []string {
	return modelImports(f, featureModelNames(f, false, true))
}

// Warnings inspects a feature for conditions that render with documented
// fallbacks: HTTP verbs without a Retrofit annotation (rendered as @GET)
// and duplicate method names across endpoints.
func Warnings(f Feature) []Issue {
	var out []Issue
	seen := make(map[string]extractor.Endpoint)
	for _, e := range f.Endpoints {
		if _, known := verbAnnotation(e.Method); !known {
			out = append(out, Issue{
				Severity: severity.SeverityWarning,
				Message:  fmt.Sprintf("verb %q has no Retrofit annotation, falling back to @GET", e.Method),
				Method:   e.Method,
				Path:     e.Path,
			})
		}
		name := MethodName(e)
		if prev, dup := seen[name]; dup {
			out = append(out, Issue{
				Severity: severity.SeverityWarning,
				Message: fmt.Sprintf("method name %q already used by %s %s; set an operationId to disambiguate",
					name, strings.ToUpper(prev.Method), prev.Path),
				Method: e.Method,
				Path:   e.Path,
			})
			continue
		}
		seen[name] = e
	}
	return out
}
