// Package extractor converts OpenAPI specification documents into the flat
// endpoint model that the code generators consume.
//
// The extractor supports OAS 2.0 (Swagger) and OAS 3.x documents in YAML and
// JSON formats, loaded from local files, remote URLs (http:// or https://),
// standard input, byte slices, or readers. It walks the document's paths
// section in source order, builds one Endpoint per (path, verb) pair for the
// five supported HTTP verbs (get, post, put, delete, patch), and groups the
// results into a tag index for display and selection.
//
// # Quick Start
//
// Extract a file using functional options:
//
//	result, err := extractor.ExtractWithOptions(
//		extractor.WithFilePath("swagger.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, entry := range result.Listing() {
//		e := &result.Endpoints[entry.Endpoint]
//		fmt.Printf("%d) [%s] %s %s\n", entry.Index, entry.Tag, e.Method, e.Path)
//	}
//
// Or create a reusable Extractor instance:
//
//	x := extractor.New()
//	result1, _ := x.Extract("api.yaml")
//	result2, _ := x.Extract("https://example.com/openapi.json")
//
// # Ordering
//
// Endpoint order follows the source document: paths appear in the order the
// document declares them, and verbs within a path item likewise. The document
// is decoded through yaml.Node trees rather than Go maps so that repeated
// runs against an unchanged specification always number endpoints
// identically. Tags are ordered by first appearance.
//
// # Deduplication
//
// An operation declaring multiple tags is listed once per tag but stored
// exactly once: TagGroup and ListEntry reference endpoints by index into
// Result.Endpoints. Code that counts or selects endpoints for generation
// must use the store, never the listing, to avoid double generation.
//
// # Reference Resolution
//
// Request and response schemas referencing #/components/schemas/<name> (or
// the Swagger 2.0 #/definitions/<name> form) are resolved exactly one level:
// the $ref node is replaced by the referenced schema definition, while any
// $ref nested inside that definition stays unresolved. Downstream type
// mapping renders unresolved references as dynamic fields.
//
// # Failure Policy
//
// A missing paths section, a malformed operation object, or an unresolvable
// reference fails the whole extraction with a descriptive error and no
// partial results. Generating code from a half-parsed specification would
// produce silently wrong output, so the cost of a malformed document is a
// hard stop. Errors carry generrors types for programmatic handling:
//
//	result, err := extractor.ExtractWithOptions(extractor.WithFilePath(path))
//	if errors.Is(err, generrors.ErrExtract) {
//		// structural problem in the document itself
//	}
package extractor
