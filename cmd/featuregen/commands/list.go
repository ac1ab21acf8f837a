package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/cliutil"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/naming"
	"github.com/MohamadsFakih/flutter-feature-generator/project"
)

// ListFlags contains flags for the list command
type ListFlags struct {
	ProjectFlags
	Tag    string
	Method string
	Format string
}

// SetupListFlags creates and configures the flag set for the list command
func SetupListFlags() (*flag.FlagSet, *ListFlags) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	flags := &ListFlags{}

	AddProjectFlags(fs, &flags.ProjectFlags)
	fs.StringVar(&flags.Tag, "tag", "", "only list endpoints grouped under this tag")
	fs.StringVar(&flags.Method, "method", "", "only list endpoints using this HTTP method")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text or json")

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: featuregen list [flags]\n\n")
		cliutil.Writef(output, "List the specification's endpoints with their selection numbers.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  featuregen list\n")
		cliutil.Writef(output, "  featuregen list -spec api/swagger.yaml\n")
		cliutil.Writef(output, "  featuregen list -tag users -method get\n")
		cliutil.Writef(output, "  featuregen list -format json\n")
	}

	return fs, flags
}

// HandleList executes the list command
func HandleList(args []string) error {
	fs, flags := SetupListFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	proj, err := flags.Load(flags.Logger())
	if err != nil {
		return err
	}

	if flags.Format == FormatJSON {
		return OutputJSON(listedEndpoints(proj.Spec, flags.Tag, flags.Method))
	}
	writeListing(os.Stdout, proj, flags.Tag, flags.Method)
	return nil
}

// listedEndpoint mirrors one row of the web API's endpoint listing so the
// two front ends stay interchangeable for scripting.
type listedEndpoint struct {
	Index          int    `json:"index"`
	Tag            string `json:"tag"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	Summary        string `json:"summary,omitempty"`
	OperationID    string `json:"operationId,omitempty"`
	HasRequestBody bool   `json:"hasRequestBody"`
	ResponseCount  int    `json:"responseCount"`
}

// listedEndpoints flattens the listing into JSON rows, applying the tag
// and method filters case-insensitively. The result is never nil.
func listedEndpoints(spec *extractor.Result, tag, method string) []listedEndpoint {
	entries := make([]listedEndpoint, 0)
	for _, row := range spec.Listing() {
		e := spec.Endpoints[row.Endpoint]
		if tag != "" && !strings.EqualFold(tag, row.Tag) {
			continue
		}
		if method != "" && !strings.EqualFold(method, e.Method) {
			continue
		}
		entries = append(entries, listedEndpoint{
			Index:          row.Index,
			Tag:            row.Tag,
			Method:         e.Method,
			Path:           e.Path,
			Summary:        e.Summary,
			OperationID:    e.OperationID,
			HasRequestBody: e.HasRequestBody(),
			ResponseCount:  len(e.Responses),
		})
	}
	return entries
}

// writeListing writes the text report: the specification summary followed
// by the numbered selection rows.
func writeListing(w io.Writer, proj *project.Context, tag, method string) {
	cliutil.Writef(w, "Endpoint Listing\n")
	cliutil.Writef(w, "================\n\n")
	OutputSpecHeader(w, proj)
	OutputSpecStats(w, proj.Spec)
	cliutil.Writef(w, "\n")
	writeEndpointRows(w, proj.Spec, tag, method)
}

// writeEndpointRows writes the numbered selection rows grouped by tag.
// Listing numbers stay stable under filtering so a filtered row can still
// be passed to generate.
func writeEndpointRows(w io.Writer, spec *extractor.Result, tag, method string) {
	matched := 0
	lastTag := ""
	for _, row := range spec.Listing() {
		e := spec.Endpoints[row.Endpoint]
		if tag != "" && !strings.EqualFold(tag, row.Tag) {
			continue
		}
		if method != "" && !strings.EqualFold(method, e.Method) {
			continue
		}
		if row.Tag != lastTag {
			if matched > 0 {
				cliutil.Writef(w, "\n")
			}
			cliutil.Writef(w, "%s:\n", naming.ToTitleCase(row.Tag))
			lastTag = row.Tag
		}
		desc := e.Summary
		if desc == "" {
			desc = e.OperationID
		}
		line := fmt.Sprintf("%4d. %-6s %-40s %s", row.Index, strings.ToUpper(e.Method), e.Path, desc)
		cliutil.Writef(w, "%s\n", strings.TrimRight(line, " "))
		matched++
	}
	if matched == 0 {
		cliutil.Writef(w, "No endpoints matched.\n")
	}
}
