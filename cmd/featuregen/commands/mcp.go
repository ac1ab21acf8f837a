package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MohamadsFakih/flutter-feature-generator/internal/cliutil"
	"github.com/MohamadsFakih/flutter-feature-generator/internal/mcpserver"
)

// MCPFlags contains flags for the mcp command
type MCPFlags struct {
	ProjectFlags
}

// SetupMCPFlags creates and configures the flag set for the mcp command
func SetupMCPFlags() (*flag.FlagSet, *MCPFlags) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	flags := &MCPFlags{}

	AddProjectFlags(fs, &flags.ProjectFlags)

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: featuregen mcp [flags]\n\n")
		cliutil.Writef(output, "Run the Model Context Protocol server on stdin/stdout.\n\n")
		cliutil.Writef(output, "The server exposes list_endpoints and generate_feature tools for the\n")
		cliutil.Writef(output, "loaded project. All logging goes to stderr; stdout carries the protocol.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  featuregen mcp\n")
		cliutil.Writef(output, "  featuregen mcp -project ./app -spec api/swagger.yaml\n")
	}

	return fs, flags
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs, flags := SetupMCPFlags()
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

	logger := flags.Logger()
	proj, err := flags.Load(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcpserver.Run(ctx, proj, logger)
}
