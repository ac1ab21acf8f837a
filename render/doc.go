// Package render produces Dart source text for clean-architecture feature
// scaffolding from extracted endpoint descriptors.
//
// Every renderer is a pure function from a Feature value to source text.
// There is no I/O and no shared mutable state; the scaffold package decides
// where the rendered text lands on disk.
//
// # Quick Start
//
//	f := render.Feature{
//	    Name:      "user_profile",
//	    Project:   "shopapp",
//	    Endpoints: selected,
//	}
//
//	service, err := render.ServiceFile(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(service)
//
// # Naming
//
// All renderers derive identifiers through the same naming engine
// (MethodName, RequestModelName, ResponseModelName, StateFieldName), so the
// service, repository and use case renderings always agree on model class
// names. Request and response model names are synthesized from the method
// name, never taken from a referenced schema's own name.
//
// # Full Files and Fragments
//
// Each layer has a full-file renderer (ServiceFile, RepositoryFile, ...)
// and a fragment renderer (ServiceMethodsFragment, ...) used by append
// mode. Both execute the same method sub-templates, so text spliced into an
// existing file is byte-identical to the text a fresh generation would have
// produced for the same endpoint.
//
// # Verb Fallback
//
// An HTTP verb without a matching Retrofit annotation is rendered as @GET.
// The fallback is reported by Warnings as a warning issue rather than
// silently applied.
package render
