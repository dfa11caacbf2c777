package cli

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/board"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/buildinfo"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/config"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/logging"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/notify"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/tui"
)

// toastBuffer is how many notifications may queue before the dashboard
// drops new ones.
const toastBuffer = 16

// dashboardFlags holds the flag values for the dashboard. They are
// registered on both the root command and "gantry dashboard".
type dashboardFlags struct {
	filterFlags
	View string
}

func (f *dashboardFlags) register(cmd *cobra.Command) {
	f.filterFlags.register(cmd)
	cmd.Flags().StringVar(&f.View, "view", "", "Initial view: basic (task list) or d3 (Gantt chart)")
}

// runTUI starts the terminal UI. Replaced in tests.
var runTUI = tui.RunTUI

func newDashboardCmd() *cobra.Command {
	var flags dashboardFlags

	cmd := &cobra.Command{
		Use:   "dashboard [project-id]",
		Short: "Launch the interactive task dashboard",
		Long: `Launch the interactive Gantry dashboard.

The dashboard loads the project, shows the filtered task list or the Gantt
chart next to the progress statistics, and reports load failures as toasts.
Use keyboard shortcuts (press ? for help) to filter, toggle the view and
reload.

Running gantry without a subcommand opens the dashboard as well.`,
		Example: `  # Open the configured project
  gantry dashboard

  # Start on the chart with only in-progress tasks
  gantry dashboard 42 --view d3 --status IN_PROGRESS`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, args, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func init() {
	rootCmd.AddCommand(newDashboardCmd())
}

// runDashboard resolves configuration, builds the board store and source,
// redirects logging away from the terminal and runs the TUI.
func runDashboard(cmd *cobra.Command, args []string, flags *dashboardFlags) error {
	env, err := prepareCommand(cmd, args, &flags.filterFlags, func(o *config.CLIOverrides) {
		if cmd.Flags().Changed("view") {
			o.View = &flags.View
		}
	})
	if err != nil {
		return err
	}
	defer env.Close()

	cfg := env.Resolved.Config
	view, err := board.ParseViewMode(cfg.View.Default)
	if err != nil {
		return err
	}

	// The TUI owns the terminal from here on.
	logPath := cfg.View.LogFile
	if env.Resolved.Path != "" {
		logPath = relativeTo(filepath.Dir(env.Resolved.Path), logPath)
	}
	restore, err := logging.ToFile(logPath)
	if err != nil {
		return err
	}
	defer restore()

	logger := logging.New("dashboard")

	toasts := notify.NewChanNotifier(toastBuffer)
	store := board.NewStore(
		board.NewState(env.Criteria, view),
		notify.Multi(toasts, notify.NewLogNotifier(logger)),
	)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	info := buildinfo.GetInfo()
	logger.Info("launching dashboard",
		"version", info.Version,
		"project", env.ProjectID,
		"view", view,
		"log_file", logPath,
	)

	return runTUI(ctx, tui.AppConfig{
		Version:       info.Version,
		ProjectID:     env.ProjectID,
		ProjectName:   cfg.Project.Name,
		Store:         store,
		Source:        env.Source,
		Toasts:        toasts.C(),
		ToastDuration: cfg.View.ToastDurationValue(),
	})
}
