// Package scaffold orchestrates feature generation runs: it decides
// between full generation and append, renders every selected layer, and
// writes the feature tree through an output sink.
//
// # Quick Start
//
// Generate with a reusable Scaffolder:
//
//	s := scaffold.New()
//	result, err := s.Generate(ctx, proj, "user_profile", endpoints)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Message)
//
// Or with functional options, resolving a numbered selection in the same
// call:
//
//	result, err := scaffold.GenerateWithOptions(ctx,
//		scaffold.WithProject(proj),
//		scaffold.WithFeatureName("user_profile"),
//		scaffold.WithSelection([]int{1, 3}),
//		scaffold.WithExistsChoice(scaffold.ChoiceAppend),
//	)
//
// # Generate vs Append
//
// The existence probe is the feature's service file. A missing service
// file means full generation; an existing one asks the OnExists callback
// to append (the default), overwrite, or cancel. Append first scans the
// existing service text for the verb annotations already rendered and
// silently drops selected endpoints that are present, then splices the
// remaining endpoints into each layer file. A missing layer file is
// created fresh with only the new endpoints.
//
// # Layers
//
// The Layers selection controls what is generated: data (models, service,
// source, repository implementation), domain (repository interface, use
// case), and presentation (bloc triple, screen stub, widget directory).
// Partial selections are allowed and update independently.
//
// Writes are not transactional across files: a mid-run failure leaves the
// files already written in place.
package scaffold
