// Package patcher splices newly rendered text into existing Dart files
// using purely textual anchors. It powers append mode: when a feature
// already exists on disk, new endpoint methods, event subclasses, state
// fields and imports are inserted into the files in place instead of
// regenerating them.
//
// # Quick Start
//
// Wrap a file's text in a File and apply edits in order:
//
//	f := patcher.NewFile("user_service.dart", existing)
//	f.AddImports(render.ModelImportLines(feature))
//	if err := f.InsertBeforeLastBrace(methods); err != nil {
//		// anchor missing: record a warning and keep the file untouched
//	}
//	if f.Changed {
//		// write f.Content back
//	}
//
// # Anchors
//
// Each edit locates its insertion point with a string scan:
//
//   - AddImports inserts after the last line starting with "import ",
//     skipping lines already present verbatim. A file without imports gets
//     the block at the very top.
//   - InsertBeforeLastBrace inserts immediately before the file's last "}".
//   - InsertInClass finds "class <Name>", counts brace depth to that class's
//     own closing brace and inserts there. This is the anchor for files that
//     may hold more than one top-level declaration.
//   - InsertAfterLastLine inserts after the last line containing a token,
//     used for bloc "on<" registrations and factory variant lists.
//
// # Structural Assumptions
//
// The anchors are heuristics over generated code, not a parser. Insertion
// before the last brace is correct only when the file's last top-level
// construct is the class being extended. Brace counting treats every "{"
// and "}" alike; path templates like "{id}" stay balanced so the count
// still lands on the class's closing brace, but a string literal holding an
// unbalanced brace will throw it off. A missing anchor returns a
// [generrors.PatchError]; callers record it as a warning and continue with
// the remaining files, never aborting the batch.
package patcher
