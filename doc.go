// Package featuregen provides tooling to scaffold Flutter clean-architecture
// features from OpenAPI/Swagger specifications.
//
// Given a specification, featuregen lets a user pick endpoints and emits the
// boilerplate Dart source for a feature: request/response models, a
// Retrofit-style network service, a data source, repository interface and
// implementation, a use-case aggregate, BLoC state management (event, state,
// bloc) and a view stub, laid out under lib/features/<name>/ in the target
// project.
//
// # Overview
//
// The library consists of the following packages:
//
//   - extractor: Parse a specification into endpoint descriptors with one
//     level of $ref resolution and a tag index for display grouping
//   - render: Produce Dart source text for every generated artifact
//   - patcher: Splice new methods, fields and imports into previously
//     generated files (append mode)
//   - scaffold: Orchestrate full generation and append runs, writing the
//     feature tree through an output sink
//   - project: Load the target project's context (pubspec name plus parsed
//     specification) once at startup
//   - generrors: Error taxonomy shared by all packages
//
// Front ends live under cmd/featuregen (CLI) and internal/ (HTTP JSON API
// and MCP stdio server); all of them call the same scaffold orchestrator
// against an immutable project context.
//
// # Installation
//
//	go install github.com/MohamadsFakih/flutter-feature-generator/cmd/featuregen@latest
//
// # Quick Start
//
// Load a project and list its endpoints:
//
//	import (
//	    "github.com/MohamadsFakih/flutter-feature-generator/project"
//	)
//
//	ctx, err := project.Load(".", "swagger.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, group := range ctx.Spec.Tags {
//	    for _, idx := range group.Endpoints {
//	        ep := ctx.Spec.Endpoints[idx]
//	        fmt.Printf("%s %s\n", ep.Method, ep.Path)
//	    }
//	}
//
// Generate a feature from a selection of endpoints:
//
//	import "github.com/MohamadsFakih/flutter-feature-generator/scaffold"
//
//	s := scaffold.New()
//	result, err := s.Generate(context.Background(), ctx, "user", ctx.Spec.Endpoints[:2])
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %d files under %s\n", len(result.Files), result.Location)
//
// # Command Line
//
// The featuregen binary exposes the same operations:
//
//	featuregen list                      # numbered endpoint listing
//	featuregen generate user 1,3,5      # generate feature "user" from endpoints 1, 3 and 5
//	featuregen generate user all        # generate from every endpoint
//	featuregen serve                     # HTTP JSON API + selection form
//	featuregen mcp                       # MCP stdio server
//
// Generation is additive by default: scaffolding into an existing feature
// appends only the endpoints not already present, splicing new methods into
// the existing files rather than overwriting them.
package featuregen
