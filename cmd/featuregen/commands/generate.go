package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/MohamadsFakih/flutter-feature-generator/extractor"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/cliutil"
	"github.com/MohamadsFakih/flutter-feature-generator/project"
	"github.com/MohamadsFakih/flutter-feature-generator/scaffold"
)

// OnExistsPrompt asks interactively when the feature already exists. The
// other accepted -on-exists values are the scaffold choices themselves.
const OnExistsPrompt = "prompt"

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	ProjectFlags
	BaseDir  string
	Layers   string
	Bloc     bool
	Screens  bool
	Widgets  bool
	OnExists string
}

// SetupGenerateFlags creates and configures the flag set for the generate command
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	AddProjectFlags(fs, &flags.ProjectFlags)
	fs.StringVar(&flags.BaseDir, "base-dir", "", "feature output directory relative to the project root (default lib/features)")
	fs.StringVar(&flags.Layers, "layers", "", "comma-separated layers to generate: data, domain, presentation (default all)")
	fs.BoolVar(&flags.Bloc, "bloc", false, "limit presentation output to the bloc component")
	fs.BoolVar(&flags.Screens, "screens", false, "limit presentation output to the screen component")
	fs.BoolVar(&flags.Widgets, "widgets", false, "limit presentation output to the widget directory")
	fs.StringVar(&flags.OnExists, "on-exists", OnExistsPrompt, "existing-feature handling: append, overwrite, cancel, or prompt")

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: featuregen generate [flags] <feature-name> <numbers|all>\n\n")
		cliutil.Writef(output, "Scaffold a clean-architecture feature from selected endpoints.\n\n")
		cliutil.Writef(output, "The feature name must be snake_case. Endpoints are selected by their\n")
		cliutil.Writef(output, "listing numbers (see 'featuregen list'), comma-separated, or 'all'.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  featuregen generate user_profile 1,4,7\n")
		cliutil.Writef(output, "  featuregen generate orders all\n")
		cliutil.Writef(output, "  featuregen generate -layers data,domain orders 2,3\n")
		cliutil.Writef(output, "  featuregen generate -bloc orders 2,3\n")
		cliutil.Writef(output, "  featuregen generate -on-exists append user_profile 1\n")
		cliutil.Writef(output, "  featuregen generate -spec api/swagger.yaml -project ./app checkout all\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("too many arguments: %v", fs.Args()[2:])
	}

	choice, interactive, err := parseOnExists(flags.OnExists)
	if err != nil {
		return err
	}
	layers, err := parseLayers(flags)
	if err != nil {
		return err
	}

	logger := flags.Logger()
	proj, err := flags.Load(logger)
	if err != nil {
		return err
	}

	// Without a feature name and selection there is nothing to generate;
	// show the listing the selection numbers refer to.
	if fs.NArg() < 2 {
		fs.Usage()
		cliutil.Writef(os.Stdout, "\nSelect endpoints by their listing numbers:\n\n")
		writeEndpointRows(os.Stdout, proj.Spec, "", "")
		return nil
	}

	featureName := fs.Arg(0)
	endpoints, err := selectEndpoints(proj.Spec, fs.Arg(1))
	if err != nil {
		return err
	}

	sc := scaffold.New()
	sc.BaseDir = flags.BaseDir
	sc.Layers = layers
	sc.Logger = logger
	if interactive {
		sc.OnExists = promptExistsChoice(os.Stdin, os.Stdout)
	} else {
		sc.OnExists = func(string) (scaffold.ExistsChoice, error) { return choice, nil }
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := sc.Generate(ctx, proj, featureName, endpoints)
	if err != nil {
		return fmt.Errorf("generating feature: %w", err)
	}

	writeGenerateResult(os.Stdout, proj, layers, result)
	if !result.Success && !result.Cancelled {
		return fmt.Errorf("generation completed with errors")
	}
	return nil
}

// parseOnExists resolves the -on-exists flag. The boolean reports the
// interactive prompt mode, in which the returned choice is unset.
func parseOnExists(s string) (scaffold.ExistsChoice, bool, error) {
	if strings.EqualFold(s, OnExistsPrompt) {
		return "", true, nil
	}
	choice, err := scaffold.ParseExistsChoice(s)
	if err != nil {
		return "", false, fmt.Errorf("invalid on-exists '%s'. Valid choices: %s, %s, %s, %s",
			s, scaffold.ChoiceAppend, scaffold.ChoiceOverwrite, scaffold.ChoiceCancel, OnExistsPrompt)
	}
	return choice, false, nil
}

// parseLayers maps the layer flags onto the scaffold selection. An empty
// -layers means every layer; component flags narrow the presentation
// layer and require it to be enabled.
func parseLayers(flags *GenerateFlags) (scaffold.Layers, error) {
	layers := scaffold.AllLayers()
	if flags.Layers != "" {
		layers = scaffold.Layers{}
		for _, name := range strings.Split(flags.Layers, ",") {
			switch strings.ToLower(strings.TrimSpace(name)) {
			case "data":
				layers.Data = true
			case "domain":
				layers.Domain = true
			case "presentation":
				layers.Presentation = true
				layers.Components = scaffold.Components{Bloc: true, Screens: true, Widgets: true}
			case "":
			default:
				return scaffold.Layers{}, fmt.Errorf("invalid layer '%s'. Valid layers: data, domain, presentation", strings.TrimSpace(name))
			}
		}
	}
	if flags.Bloc || flags.Screens || flags.Widgets {
		if !layers.Presentation {
			return scaffold.Layers{}, fmt.Errorf("-bloc, -screens, and -widgets require the presentation layer")
		}
		layers.Components = scaffold.Components{Bloc: flags.Bloc, Screens: flags.Screens, Widgets: flags.Widgets}
	}
	if !layers.Enabled() {
		return scaffold.Layers{}, fmt.Errorf("no layers selected")
	}
	return layers, nil
}

// selectEndpoints resolves the selection argument. "all" means every
// endpoint once, in document order; anything else is comma-separated
// 1-based listing numbers.
func selectEndpoints(spec *extractor.Result, arg string) ([]extractor.Endpoint, error) {
	if strings.EqualFold(arg, "all") {
		return spec.Endpoints, nil
	}
	parts := strings.Split(arg, ",")
	numbers := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid selection '%s': entries must be listing numbers or 'all'", part)
		}
		numbers = append(numbers, n)
	}
	if len(numbers) == 0 {
		return nil, fmt.Errorf("empty selection: use comma-separated listing numbers or 'all'")
	}
	return spec.Select(numbers)
}

// promptExistsChoice returns an OnExists callback that asks on out which
// choice to take, reading answers from in. An unanswerable prompt (EOF)
// cancels; so does a bare enter.
func promptExistsChoice(in io.Reader, out io.Writer) func(feature string) (scaffold.ExistsChoice, error) {
	reader := bufio.NewReader(in)
	return func(feature string) (scaffold.ExistsChoice, error) {
		for {
			cliutil.Writef(out, "Feature %q already exists. [a]ppend, [o]verwrite, or [c]ancel? ", feature)
			answer, err := reader.ReadString('\n')
			if err != nil && answer == "" {
				cliutil.Writef(out, "\n")
				return scaffold.ChoiceCancel, nil
			}
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "a", "append":
				return scaffold.ChoiceAppend, nil
			case "o", "overwrite":
				return scaffold.ChoiceOverwrite, nil
			case "c", "cancel", "":
				return scaffold.ChoiceCancel, nil
			}
		}
	}
}

// writeGenerateResult writes the text report for a completed run.
func writeGenerateResult(w io.Writer, proj *project.Context, layers scaffold.Layers, result *scaffold.Result) {
	cliutil.Writef(w, "Flutter Feature Generator\n")
	cliutil.Writef(w, "=========================\n\n")
	OutputSpecHeader(w, proj)
	cliutil.Writef(w, "Feature: %s\n", result.FeatureName)
	cliutil.Writef(w, "Location: %s\n", result.Location)

	if result.Cancelled {
		cliutil.Writef(w, "\n✗ %s\n", result.Message)
		return
	}

	cliutil.Writef(w, "Endpoints: %d\n", result.EndpointCount)
	cliutil.Writef(w, "Layers: %s\n", strings.Join(layers.Names(), ", "))
	cliutil.Writef(w, "Total Time: %v\n\n", result.GenerateTime)

	cliutil.Writef(w, "Files (%d):\n", len(result.Files))
	for _, f := range result.Files {
		cliutil.Writef(w, "  - %-8s %s\n", f.Action, f.Path)
	}

	if len(result.SkippedEndpoints) > 0 {
		cliutil.Writef(w, "\nSkipped Endpoints (%d):\n", len(result.SkippedEndpoints))
		for _, s := range result.SkippedEndpoints {
			cliutil.Writef(w, "  - %s %s: %s\n", s.Method, s.Path, s.Reason)
		}
	}

	if len(result.Issues) > 0 {
		cliutil.Writef(w, "\nGeneration Issues (%d):\n", len(result.Issues))
		for _, issue := range result.Issues {
			cliutil.Writef(w, "  %s\n", issue.String())
		}
	}

	cliutil.Writef(w, "\n")
	if result.Success {
		cliutil.Writef(w, "✓ %s", result.Message)
		if result.WarningCount > 0 {
			cliutil.Writef(w, " (%d warning(s))", result.WarningCount)
		}
		cliutil.Writef(w, "\n")
		return
	}
	cliutil.Writef(w, "✗ %s\n", result.Message)
}
