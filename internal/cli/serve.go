package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/config"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/logging"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/server"
)

// serveFlags holds the flag values for the serve command.
type serveFlags struct {
	Addr string
}

func newServeCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve filtered tasks and statistics over HTTP",
		Long: `Start a JSON API that answers filter and statistics queries for any
project the configured source can load.

Endpoints:
  GET /healthz
  GET /api/v1/projects/{id}/tasks       ?search=&status=&progress=&dateFrom=&dateTo=
  GET /api/v1/projects/{id}/statistics  same query parameters
  GET /api/v1/projects/{id}/gantt       tasks and statistics in one payload

The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  # Listen on the configured [server].addr
  gantry serve

  # Serve local JSON files on another port
  gantry serve --source file --tasks-glob 'data/*.json' --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, &flags)
		},
	}

	cmd.Flags().StringVar(&flags.Addr, "addr", "", "Listen address (env: GANTRY_SERVER_ADDR)")
	return cmd
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}

func runServe(cmd *cobra.Command, flags *serveFlags) error {
	overrides := baseOverrides(nil)
	if cmd.Flags().Changed("addr") {
		overrides.ServerAddr = &flags.Addr
	}

	resolved, meta, err := loadAndResolveConfig(overrides)
	if err != nil {
		return err
	}

	result := config.Validate(resolved.Config, meta)
	if result.HasErrors() {
		printValidationResult(cmd, result)
		return fmt.Errorf("configuration has %d error(s)", len(result.Errors()))
	}

	src, err := buildSource(resolved)
	if err != nil {
		return err
	}
	env := &commandEnv{Resolved: resolved, Source: src}
	defer env.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	addr := resolved.Config.Server.Addr
	logging.New("serve").Info("starting server",
		"addr", addr,
		"source", resolved.Config.Source.Kind,
	)
	return server.New(src).ListenAndServe(ctx, addr)
}
