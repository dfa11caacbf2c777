package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose   bool
	flagQuiet     bool
	flagConfig    string
	flagDir       string
	flagNoColor   bool
	flagSource    string
	flagAPIURL    string
	flagTasksGlob string
)

// rootCmd is the base command for Gantry.
var rootCmd = &cobra.Command{
	Use:   "gantry",
	Short: "Gantt project task explorer",
	Long: `Gantry loads a Gantt project from the Gantt REST API or local JSON files
and lets you filter its tasks, inspect progress statistics, and switch between
a task list and a text Gantt chart, in a terminal dashboard, on the command
line, or over a small JSON API.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	// When invoked with no subcommand, launch the interactive dashboard.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd, args, rootDashboardFlags)
	},
	PersistentPreRunE: persistentPreRun,
}

// rootDashboardFlags holds the dashboard flags registered on the root
// command so `gantry --status COMPLETED` behaves like `gantry dashboard`.
var rootDashboardFlags = &dashboardFlags{}

// persistentPreRun applies environment fallbacks, sets up logging and
// handles --no-color and --dir. Commands that must not touch the
// configuration (init) reuse it directly.
func persistentPreRun(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	if !flags.Changed("verbose") && os.Getenv("GANTRY_VERBOSE") != "" {
		flagVerbose = true
	}
	if !flags.Changed("quiet") && os.Getenv("GANTRY_QUIET") != "" {
		flagQuiet = true
	}
	if !flags.Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("GANTRY_NO_COLOR") != "") {
		flagNoColor = true
	}

	jsonFormat := os.Getenv("GANTRY_LOG_FORMAT") == "json"
	logging.Setup(flagVerbose, flagQuiet, jsonFormat)

	if flagNoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if flagDir != "" {
		if err := os.Chdir(flagDir); err != nil {
			return fmt.Errorf("changing directory to %s: %w", flagDir, err)
		}
	}
	return nil
}

func init() {
	registerPersistentFlags(rootCmd)
	rootDashboardFlags.register(rootCmd)
}

// registerPersistentFlags binds the global flags to the package variables.
func registerPersistentFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: GANTRY_VERBOSE)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: GANTRY_QUIET)")
	pf.StringVar(&flagConfig, "config", "", "Path to gantry.toml config file")
	pf.StringVar(&flagDir, "dir", "", "Override working directory")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: GANTRY_NO_COLOR, NO_COLOR)")
	pf.StringVar(&flagSource, "source", "", "Data source: http or file (env: GANTRY_SOURCE)")
	pf.StringVar(&flagAPIURL, "api-url", "", "Gantt API base URL (env: GANTRY_API_URL)")
	pf.StringVar(&flagTasksGlob, "tasks-glob", "", "Task file pattern for the file source")
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// NewRootCmd returns a new instance of the root command for use in external
// tools such as the shell completion generator and man page generator. It
// carries the same persistent flags as the global rootCmd, bound to local
// variables, and shares its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               rootCmd.Use,
		Short:             rootCmd.Short,
		Long:              rootCmd.Long,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rootCmd.PersistentPreRunE,
	}

	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose (debug) output (env: GANTRY_VERBOSE)")
	pf.BoolP("quiet", "q", false, "Suppress all output except errors (env: GANTRY_QUIET)")
	pf.String("config", "", "Path to gantry.toml config file")
	pf.String("dir", "", "Override working directory")
	pf.Bool("no-color", false, "Disable colored output (env: GANTRY_NO_COLOR, NO_COLOR)")
	pf.String("source", "", "Data source: http or file (env: GANTRY_SOURCE)")
	pf.String("api-url", "", "Gantt API base URL (env: GANTRY_API_URL)")
	pf.String("tasks-glob", "", "Task file pattern for the file source")

	for _, child := range rootCmd.Commands() {
		cmd.AddCommand(child)
	}
	return cmd
}
