package patcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MohamadsFakih/flutter-feature-generator/generrors"
)

// importLineRE matches one whole import line. Generated files keep import
// statements at line starts, so line-anchored matching avoids tripping over
// the word "import" inside doc comments.
var importLineRE = regexp.MustCompile(`(?m)^import .*$`)

// File is one existing file's text undergoing append-mode edits. Edits
// modify Content in place; Changed reports whether any edit took effect, so
// callers can skip rewriting untouched files.
type File struct {
	// Name is the file name used in patch error context
	Name string
	// Content is the current text
	Content string
	// Changed reports whether any edit modified Content
	Changed bool
}

// NewFile wraps a file's text for patching.
func NewFile(name, content string) *File {
	return &File{Name: name, Content: content}
}

// splice inserts fragment at the byte offset and marks the file changed.
func (f *File) splice(at int, fragment string) {
	f.Content = f.Content[:at] + fragment + f.Content[at:]
	f.Changed = true
}

// AddImports inserts the given import lines after the file's last import
// line, preserving their order. Lines already present verbatim and blank
// separator lines are skipped. A file without any import line receives the
// block at the very top, followed by a blank line. AddImports cannot fail:
// there is always a top of file.
func (f *File) AddImports(lines []string) {
	var missing []string
	for _, line := range lines {
		if line == "" || strings.Contains(f.Content, line) {
			continue
		}
		missing = append(missing, line)
	}
	if len(missing) == 0 {
		return
	}
	block := strings.Join(missing, "\n") + "\n"

	locs := importLineRE.FindAllStringIndex(f.Content, -1)
	if locs == nil {
		f.splice(0, block+"\n")
		return
	}

	at := locs[len(locs)-1][1]
	if at < len(f.Content) && f.Content[at] == '\n' {
		at++
	} else {
		// last import line sits at EOF without a newline
		block = "\n" + block
	}
	f.splice(at, block)
}

// InsertBeforeLastBrace inserts fragment immediately before the file's last
// closing brace. Correct only when the file's last top-level construct is
// the class being extended.
func (f *File) InsertBeforeLastBrace(fragment string) error {
	idx := strings.LastIndexByte(f.Content, '}')
	if idx < 0 {
		return &generrors.PatchError{File: f.Name, Anchor: "closing brace"}
	}
	f.splice(idx, fragment)
	return nil
}

// InsertInClass inserts fragment immediately before the named class's own
// closing brace, found by scanning forward from "class <name>" and counting
// brace depth. Unlike InsertBeforeLastBrace this stays correct when other
// declarations follow the class in the same file.
func (f *File) InsertInClass(name, fragment string) error {
	re := regexp.MustCompile(`\bclass\s+` + regexp.QuoteMeta(name) + `\b`)
	loc := re.FindStringIndex(f.Content)
	if loc == nil {
		return &generrors.PatchError{File: f.Name, Anchor: "class " + name}
	}

	depth := 0
	for i := loc[1]; i < len(f.Content); i++ {
		switch f.Content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				f.splice(i, fragment)
				return nil
			}
		}
	}
	return &generrors.PatchError{
		File:    f.Name,
		Anchor:  "class " + name,
		Message: "no matching closing brace",
	}
}

// InsertAfterLastLine inserts fragment after the last line containing
// token. The fragment supplies its own trailing newline.
func (f *File) InsertAfterLastLine(token, fragment string) error {
	idx := strings.LastIndex(f.Content, token)
	if idx < 0 {
		return &generrors.PatchError{
			File:   f.Name,
			Anchor: fmt.Sprintf("line containing %q", token),
		}
	}

	end := strings.IndexByte(f.Content[idx:], '\n')
	if end < 0 {
		f.splice(len(f.Content), "\n"+fragment)
		return nil
	}
	f.splice(idx+end+1, fragment)
	return nil
}

// HasFactoryMarkers reports whether the file uses the factory-variant
// union pattern for the named base class, either via a freezed annotation
// or an explicit "factory <name>." variant constructor. Event and state
// patching picks the factory fragment when this is true and the plain
// subclass fragment otherwise.
func (f *File) HasFactoryMarkers(name string) bool {
	return strings.Contains(f.Content, "@freezed") ||
		strings.Contains(f.Content, "factory "+name+".")
}
