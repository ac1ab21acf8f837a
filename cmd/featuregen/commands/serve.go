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
	"github.com/MohamadsFakih/flutter-feature-generator/internal/webserver"
)

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	ProjectFlags
	Addr string
}

// SetupServeFlags creates and configures the flag set for the serve command
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	AddProjectFlags(fs, &flags.ProjectFlags)
	fs.StringVar(&flags.Addr, "addr", "", "listen address (host:port), overrides FEATUREGEN_ADDR (default :8080)")

	fs.Usage = func() {
		output := fs.Output()
		cliutil.Writef(output, "Usage: featuregen serve [flags]\n\n")
		cliutil.Writef(output, "Serve the endpoint selection form and generation API over HTTP.\n\n")
		cliutil.Writef(output, "The specification is loaded once at startup; restart the server to\n")
		cliutil.Writef(output, "pick up changes. Timeouts are configured through FEATUREGEN_READ_TIMEOUT,\n")
		cliutil.Writef(output, "FEATUREGEN_WRITE_TIMEOUT, and FEATUREGEN_SHUTDOWN_TIMEOUT.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  featuregen serve\n")
		cliutil.Writef(output, "  featuregen serve -addr 127.0.0.1:3000\n")
		cliutil.Writef(output, "  featuregen serve -project ./app -spec api/swagger.yaml\n")
	}

	return fs, flags
}

// HandleServe executes the serve command
func HandleServe(args []string) error {
	fs, flags := SetupServeFlags()
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

	cfg := webserver.LoadConfig()
	if flags.Addr != "" {
		cfg.Addr = flags.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return webserver.New(proj, cfg, logger).Run(ctx)
}
