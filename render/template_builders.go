// This file implements the builders that convert a Feature and its
// endpoints into template data structures. All naming flows through the
// naming engine so every layer agrees on identifiers.

package render

import (
	"fmt"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/naming"
)

// buildFeatureNames computes the case variants of the feature name.
func buildFeatureNames(f Feature) FeatureNames {
	return FeatureNames{
		Raw:    f.Name,
		Pascal: naming.ToPascalCase(f.Name),
		Camel:  naming.ToCamelCase(f.Name),
	}
}

// buildMethodData assembles the per-endpoint method description shared by
// every layer template.
func buildMethodData(f Feature, e extractor.Endpoint) MethodData {
	name := MethodName(e)
	verb, _ := verbAnnotation(e.Method)

	returnType := "dynamic"
	if _, ok := SuccessResponse(e); ok {
		returnType = ResponseModelName(e)
	}

	params := buildParams(e)
	m := MethodData{
		Name:       name,
		Summary:    e.Summary,
		Verb:       verb,
		Path:       e.Path,
		ReturnType: returnType,
		StateField: StateFieldName(e),
		StateClass: naming.ToPascalCase(f.Name) + "State",
		EventClass: EventClassName(e),
		Handler:    handlerName(e),
	}
	for _, p := range params {
		m.AnnotatedParams = append(m.AnnotatedParams, p.Annotation+" "+p.Type+" "+p.Name)
		m.ParamList = append(m.ParamList, p.Type+" "+p.Name)
		m.ArgList = append(m.ArgList, p.Name)
		m.EventArgs = append(m.EventArgs, "event."+p.Name)
	}
	return m
}

// buildParams maps endpoint parameters to Dart parameters in declaration
// order: path, query and header parameters as extracted, then the request
// body last.
func buildParams(e extractor.Endpoint) []ParamData {
	var params []ParamData
	for _, p := range e.Parameters {
		params = append(params, ParamData{
			Name:       paramName(p.Name),
			Type:       paramDartType(p.Type),
			Annotation: paramAnnotation(p),
		})
	}
	if e.HasRequestBody() {
		params = append(params, ParamData{
			Name:       "body",
			Type:       RequestModelName(e),
			Annotation: "@Body()",
		})
	}
	return params
}

// buildMethods assembles method data for every endpoint of a feature.
func buildMethods(f Feature) []MethodData {
	methods := make([]MethodData, 0, len(f.Endpoints))
	for _, e := range f.Endpoints {
		methods = append(methods, buildMethodData(f, e))
	}
	return methods
}

// buildEventData assembles the event subclass description for an endpoint.
func buildEventData(f Feature, e extractor.Endpoint) EventData {
	return EventData{
		ClassName:      EventClassName(e),
		BaseClass:      naming.ToPascalCase(f.Name) + "Event",
		Fields:         buildParams(e),
		FactoryVariant: MethodName(e),
	}
}

// buildStateFieldData assembles the state field description for an endpoint.
func buildStateFieldData(f Feature, e extractor.Endpoint) StateFieldData {
	bare := "dynamic"
	if _, ok := SuccessResponse(e); ok {
		bare = ResponseModelName(e)
	}
	return StateFieldData{
		Name:           StateFieldName(e),
		Type:           nullableType(bare),
		StateClass:     naming.ToPascalCase(f.Name) + "State",
		FactoryVariant: MethodName(e) + "Success",
		VariantClass:   naming.ToPascalCase(MethodName(e)) + "Success",
		BareType:       bare,
	}
}

// buildModelData assembles a model class description from a resolved schema.
// A nil schema, an unresolved reference or a schema without properties all
// produce an empty model class that is still constructible.
func buildModelData(className string, s *extractor.Schema) ModelData {
	data := ModelData{ClassName: className}
	if s == nil || s.IsRef() {
		return data
	}
	for _, prop := range s.Properties {
		dartType := schemaDartType(prop.Schema)
		required := s.IsRequired(prop.Name)
		data.Fields = append(data.Fields, ModelFieldData{
			Name:     paramName(prop.Name),
			JSONKey:  prop.Name,
			Type:     dartType,
			Required: required,
			Default:  dartDefault(dartType),
			FromJSON: fromJSONExpr(prop.Name, dartType, required),
		})
	}
	return data
}

// buildModelDatas collects the deduplicated model classes for a feature in
// endpoint order: the request model (when a body is present) then the
// response model (when a success response is present) per endpoint. The
// first occurrence of a class name wins.
func buildModelDatas(f Feature) []ModelData {
	var models []ModelData
	seen := make(map[string]bool)

	add := func(className string, s *extractor.Schema) {
		if seen[className] {
			return
		}
		seen[className] = true
		models = append(models, buildModelData(className, s))
	}

	for _, e := range f.Endpoints {
		if e.HasRequestBody() {
			add(RequestModelName(e), e.RequestBody.Schema)
		}
		if resp, ok := SuccessResponse(e); ok {
			add(ResponseModelName(e), resp.Schema)
		}
	}
	return models
}

// Import line helpers. ImportLines carry complete statements; an empty
// string renders as a blank separator line between import groups.

func importLine(uri string) string {
	return fmt.Sprintf("import '%s';", uri)
}

func appendUnique(lines []string, line string) []string {
	for _, l := range lines {
		if l == line {
			return lines
		}
	}
	return append(lines, line)
}

// modelImports returns the import lines for the given model classes in
// first-appearance order.
func modelImports(f Feature, classNames []string) []string {
	var lines []string
	for _, name := range classNames {
		lines = appendUnique(lines, importLine(f.modelURI(name)))
	}
	return lines
}

// featureModelNames returns the deduplicated model class names for the
// feature's endpoints, optionally restricted to request or response models.
func featureModelNames(f Feature, includeRequest, includeResponse bool) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, e := range f.Endpoints {
		if includeRequest && e.HasRequestBody() {
			add(RequestModelName(e))
		}
		if includeResponse {
			if _, ok := SuccessResponse(e); ok {
				add(ResponseModelName(e))
			}
		}
	}
	return names
}

// withSDKGroup prepends SDK imports and a blank separator to package
// imports. The separator is omitted when either group is empty.
func withSDKGroup(sdk, pkg []string) []string {
	if len(pkg) == 0 {
		return sdk
	}
	if len(sdk) == 0 {
		return pkg
	}
	lines := make([]string, 0, len(sdk)+1+len(pkg))
	lines = append(lines, sdk...)
	lines = append(lines, "")
	return append(lines, pkg...)
}

// buildServiceFileData assembles the Retrofit service file data.
func buildServiceFileData(f Feature) ServiceFileData {
	names := buildFeatureNames(f)
	return ServiceFileData{
		Names: names,
		ImportLines: withSDKGroup(
			[]string{
				importLine("package:dio/dio.dart"),
				importLine("package:retrofit/retrofit.dart"),
			},
			modelImports(f, featureModelNames(f, true, true)),
		),
		FileStem:  f.Name + "_service",
		ClassName: names.Pascal + "Service",
		Methods:   buildMethods(f),
	}
}

// buildSourceFileData assembles the data source interface file data.
func buildSourceFileData(f Feature) SourceFileData {
	names := buildFeatureNames(f)
	return SourceFileData{
		Names:       names,
		ImportLines: modelImports(f, featureModelNames(f, true, true)),
		ClassName:   names.Pascal + "Source",
		Methods:     buildMethods(f),
	}
}

// buildSourceImplFileData assembles the data source implementation file data.
func buildSourceImplFileData(f Feature) SourceImplFileData {
	names := buildFeatureNames(f)
	lines := modelImports(f, featureModelNames(f, true, true))
	lines = append(lines, importLine(f.serviceURI()), importLine(f.sourceURI()))
	return SourceImplFileData{
		Names:        names,
		ImportLines:  lines,
		ClassName:    names.Pascal + "SourceImpl",
		SourceClass:  names.Pascal + "Source",
		ServiceClass: names.Pascal + "Service",
		Methods:      buildMethods(f),
	}
}

// buildRepositoryFileData assembles the domain repository interface data.
func buildRepositoryFileData(f Feature) RepositoryFileData {
	names := buildFeatureNames(f)
	lines := []string{importLine(f.dataStateURI())}
	lines = append(lines, modelImports(f, featureModelNames(f, true, true))...)
	return RepositoryFileData{
		Names:       names,
		ImportLines: lines,
		ClassName:   names.Pascal + "Repository",
		Methods:     buildMethods(f),
	}
}

// buildRepositoryImplFileData assembles the repository implementation data.
func buildRepositoryImplFileData(f Feature) RepositoryImplFileData {
	names := buildFeatureNames(f)
	lines := []string{importLine(f.dataStateURI())}
	lines = append(lines, modelImports(f, featureModelNames(f, true, true))...)
	lines = append(lines, importLine(f.sourceURI()), importLine(f.repositoryURI()))
	return RepositoryImplFileData{
		Names:           names,
		ImportLines:     lines,
		ClassName:       names.Pascal + "RepositoryImpl",
		RepositoryClass: names.Pascal + "Repository",
		SourceClass:     names.Pascal + "Source",
		Methods:         buildMethods(f),
	}
}

// buildUseCaseFileData assembles the use case aggregate file data.
func buildUseCaseFileData(f Feature) UseCaseFileData {
	names := buildFeatureNames(f)
	lines := []string{importLine(f.dataStateURI())}
	lines = append(lines, modelImports(f, featureModelNames(f, true, true))...)
	lines = append(lines, importLine(f.repositoryURI()))
	return UseCaseFileData{
		Names:           names,
		ImportLines:     lines,
		ClassName:       names.Pascal + "UseCase",
		RepositoryClass: names.Pascal + "Repository",
		Methods:         buildMethods(f),
	}
}

// buildEventFileData assembles the BLoC event file data. Only request
// models are imported; events never carry response payloads.
func buildEventFileData(f Feature) EventFileData {
	names := buildFeatureNames(f)
	events := make([]EventData, 0, len(f.Endpoints))
	for _, e := range f.Endpoints {
		events = append(events, buildEventData(f, e))
	}
	return EventFileData{
		Names:       names,
		ImportLines: modelImports(f, featureModelNames(f, true, false)),
		BaseClass:   names.Pascal + "Event",
		Events:      events,
	}
}

// buildStateFileData assembles the BLoC state file data. Only response
// models are imported.
func buildStateFileData(f Feature) StateFileData {
	names := buildFeatureNames(f)
	fields := make([]StateFieldData, 0, len(f.Endpoints))
	for _, e := range f.Endpoints {
		fields = append(fields, buildStateFieldData(f, e))
	}
	return StateFileData{
		Names:       names,
		ImportLines: modelImports(f, featureModelNames(f, false, true)),
		ClassName:   names.Pascal + "State",
		Fields:      fields,
	}
}

// buildBlocFileData assembles the BLoC file data.
func buildBlocFileData(f Feature) BlocFileData {
	names := buildFeatureNames(f)
	return BlocFileData{
		Names: names,
		ImportLines: withSDKGroup(
			[]string{importLine("package:flutter_bloc/flutter_bloc.dart")},
			[]string{
				importLine(f.dataStateURI()),
				importLine(f.usecaseURI()),
				importLine(f.eventURI()),
				importLine(f.stateURI()),
			},
		),
		ClassName:    names.Pascal + "Bloc",
		EventBase:    names.Pascal + "Event",
		StateClass:   names.Pascal + "State",
		UseCaseClass: names.Pascal + "UseCase",
		Methods:      buildMethods(f),
	}
}

// buildScreenFileData assembles the view stub file data.
func buildScreenFileData(f Feature) ScreenFileData {
	names := buildFeatureNames(f)
	return ScreenFileData{
		Names: names,
		ImportLines: withSDKGroup(
			[]string{
				importLine("package:flutter/material.dart"),
				importLine("package:flutter_bloc/flutter_bloc.dart"),
			},
			[]string{
				importLine(f.blocURI()),
				importLine(f.stateURI()),
			},
		),
		ClassName:  names.Pascal + "Screen",
		BlocClass:  names.Pascal + "Bloc",
		StateClass: names.Pascal + "State",
	}
}

// registrationLine renders one bloc event registration statement.
func registrationLine(m MethodData) string {
	return fmt.Sprintf("    on<%s>(%s);", m.EventClass, m.Handler)
}

// stateFieldLine renders one state field declaration.
func stateFieldLine(sf StateFieldData) string {
	return fmt.Sprintf("  %s %s;", sf.Type, sf.Name)
}

// stateCtorParamLine renders one optional named parameter of the state
// constructor.
func stateCtorParamLine(sf StateFieldData) string {
	return fmt.Sprintf("    this.%s,", sf.Name)
}
