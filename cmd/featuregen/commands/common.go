// Package commands provides CLI command handlers for featuregen.
package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	featuregen "github.com/MohamadsFakih/flutter-feature-generator"
	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/cliutil"
	"github.com/MohamadsFakih/flutter-feature-generator/project"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
)

// StdinSpecPath is the special specification path used to indicate reading
// from stdin.
const StdinSpecPath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatText, FormatJSON)
	}
	return nil
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinSpecPath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinSpecPath {
		return "<stdin>"
	}
	return specPath
}

// OutputJSON marshals data with indentation and prints it to stdout.
// Returns an error if marshaling fails.
func OutputJSON(data any) error {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling to json: %w", err)
	}
	fmt.Println(string(bytes))
	return nil
}

// ProjectFlags are the flags shared by every command that loads a project
// context before doing its work.
type ProjectFlags struct {
	Project string
	Spec    string
	Verbose bool
}

// AddProjectFlags registers the shared project flags on fs.
func AddProjectFlags(fs *flag.FlagSet, flags *ProjectFlags) {
	fs.StringVar(&flags.Project, "project", ".", "Flutter project root (the directory containing pubspec.yaml)")
	fs.StringVar(&flags.Spec, "spec", "", "specification file, URL, or '-' for stdin (default swagger.json in the project root)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging on stderr")
}

// Logger builds the stderr logger implied by the flags. Logging always
// goes to stderr so stdout stays clean for command output.
func (f *ProjectFlags) Logger() extractor.Logger {
	level := slog.LevelInfo
	if f.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return extractor.NewSlogAdapter(slog.New(handler))
}

// Load reads the project manifest and specification named by the flags.
func (f *ProjectFlags) Load(logger extractor.Logger) (*project.Context, error) {
	loader := project.NewLoader()
	loader.Logger = logger
	return loader.Load(f.Project, f.Spec)
}

// OutputSpecHeader writes the common project and specification header.
// This includes featuregen version, project name, specification path, and
// OAS version.
func OutputSpecHeader(w io.Writer, proj *project.Context) {
	cliutil.Writef(w, "featuregen version: %s\n", featuregen.Version())
	cliutil.Writef(w, "Project: %s\n", proj.Name)
	cliutil.Writef(w, "Specification: %s\n", FormatSpecPath(proj.SpecPath))
	cliutil.Writef(w, "OAS Version: %s\n", proj.Spec.Version)
}

// OutputSpecStats writes the common specification statistics.
// This includes source size, path count, endpoint count, tag count, schema
// count, and load time.
func OutputSpecStats(w io.Writer, spec *extractor.Result) {
	cliutil.Writef(w, "Source Size: %s\n", extractor.FormatBytes(spec.SourceSize))
	cliutil.Writef(w, "Paths: %d\n", spec.Stats.PathCount)
	cliutil.Writef(w, "Endpoints: %d\n", spec.Stats.EndpointCount)
	cliutil.Writef(w, "Tags: %d\n", spec.Stats.TagCount)
	cliutil.Writef(w, "Schemas: %d\n", spec.Stats.SchemaCount)
	cliutil.Writef(w, "Load Time: %v\n", spec.LoadTime)
}
