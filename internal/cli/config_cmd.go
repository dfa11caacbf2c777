package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/config"
)

// configCmd is the parent "config" namespace command. It has no action of its
// own; it groups the debug and validate subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  "Inspect, validate, and debug Gantry configuration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// configDebugCmd implements "gantry config debug".
var configDebugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Show resolved configuration with source annotations",
	Long: `Display the fully-resolved configuration showing each value and
the source where it came from (cli flag, environment variable, config file, or default).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, _, err := loadAndResolveConfig(baseOverrides(nil))
		if err != nil {
			return err
		}
		printResolvedConfig(cmd, resolved)
		return nil
	},
}

// configValidateCmd implements "gantry config validate".
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and report issues",
	Long:  "Check the configuration for errors and warnings.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, meta, err := loadAndResolveConfig(baseOverrides(nil))
		if err != nil {
			return err
		}
		result := config.Validate(resolved.Config, meta)
		printValidationResult(cmd, result)
		if result.HasErrors() {
			return fmt.Errorf("configuration has %d error(s)", len(result.Errors()))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDebugCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

// loadAndResolveConfig loads and resolves the configuration from all sources
// (file, env, CLI flags). It returns the resolved config, the TOML metadata
// (nil when no file was found), and any loading error.
//
// When flagConfig is set, that path is used directly. Otherwise,
// config.FindConfigFile searches upward from the current directory.
func loadAndResolveConfig(overrides *config.CLIOverrides) (*config.ResolvedConfig, *toml.MetaData, error) {
	var (
		fileCfg *config.Config
		meta    *toml.MetaData
		cfgPath string
	)

	if flagConfig != "" {
		cfgPath = flagConfig
	} else {
		found, err := config.FindConfigFile(".")
		if err != nil {
			return nil, nil, fmt.Errorf("finding config file: %w", err)
		}
		cfgPath = found
	}

	if cfgPath != "" {
		fc, md, err := config.LoadFromFile(cfgPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		fileCfg = fc
		meta = &md
	}

	resolved := config.Resolve(config.NewDefaults(), fileCfg, os.LookupEnv, overrides)
	resolved.Path = cfgPath

	return resolved, meta, nil
}

// sourceStyle colours a "(source: ...)" label. Under --no-color the root
// command switches lipgloss to the Ascii profile and the colour drops out.
func sourceStyle(src config.ConfigSource) lipgloss.Style {
	colour := map[config.ConfigSource]lipgloss.Color{
		config.SourceFile: "12",
		config.SourceEnv:  "11",
		config.SourceCLI:  "9",
	}[src]
	if colour == "" {
		colour = "10"
	}
	return lipgloss.NewStyle().Foreground(colour)
}

var (
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleSection = lipgloss.NewStyle().Bold(true)
	styleBad     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// debugField is one row of "config debug" output. key is the dotted
// path used in ResolvedConfig.Sources.
type debugField struct {
	key   string
	value string
}

// debugSections lists the resolved values grouped by TOML table, in file order.
func debugSections(c *config.Config) [][]debugField {
	return [][]debugField{
		{
			{"project.id", fmtStr(c.Project.ID)},
			{"project.name", fmtStr(c.Project.Name)},
		},
		{
			{"source.kind", fmtStr(c.Source.Kind)},
			{"source.api_url", fmtStr(c.Source.APIURL)},
			{"source.timeout", fmtStr(c.Source.Timeout)},
			{"source.project_file", fmtStr(c.Source.ProjectFile)},
			{"source.tasks_glob", fmtStr(c.Source.TasksGlob)},
			{"source.cache_ttl", fmtStr(c.Source.CacheTTL)},
			{"source.cache_max_bytes", fmtBytes(c.Source.CacheMaxBytes)},
		},
		{
			{"view.default", fmtStr(c.View.Default)},
			{"view.toast_duration", fmtStr(c.View.ToastDuration)},
			{"view.chart_width", strconv.Itoa(c.View.ChartWidth)},
			{"view.log_file", fmtStr(c.View.LogFile)},
		},
		{
			{"filters.search", fmtStr(c.Filters.Search)},
			{"filters.status", fmtStr(c.Filters.Status)},
			{"filters.progress", fmtStr(c.Filters.Progress)},
			{"filters.date_from", fmtStr(c.Filters.DateFrom)},
			{"filters.date_to", fmtStr(c.Filters.DateTo)},
		},
		{
			{"server.addr", fmtStr(c.Server.Addr)},
		},
	}
}

func writeTitle(out io.Writer, title string) {
	fmt.Fprintf(out, "%s\n%s\n\n", styleTitle.Render(title), strings.Repeat("=", len(title)))
}

func printResolvedConfig(cmd *cobra.Command, rc *config.ResolvedConfig) {
	out := cmd.OutOrStdout()
	writeTitle(out, "Configuration Debug")

	path := rc.Path
	if path == "" {
		path = "none found"
	}
	fmt.Fprintf(out, "Config file: %s\n", path)

	for _, fields := range debugSections(rc.Config) {
		table, _, _ := strings.Cut(fields[0].key, ".")
		fmt.Fprintf(out, "\n%s\n", styleSection.Render("["+table+"]"))
		for _, f := range fields {
			_, name, _ := strings.Cut(f.key, ".")
			src := rc.Sources[f.key]
			label := sourceStyle(src).Render("(source: " + string(src) + ")")
			fmt.Fprintf(out, "  %-24s = %-40s %s\n", name, f.value, label)
		}
	}
}

func fmtStr(s string) string { return strconv.Quote(s) }

// fmtBytes appends the IEC size to positive byte counts.
func fmtBytes(n int64) string {
	raw := strconv.FormatInt(n, 10)
	if n <= 0 {
		return raw
	}
	return raw + " (" + humanize.IBytes(uint64(n)) + ")"
}

func printValidationResult(cmd *cobra.Command, result *config.ValidationResult) {
	out := cmd.OutOrStdout()
	writeTitle(out, "Configuration Validation")

	errs, warns := result.Errors(), result.Warnings()
	if len(errs)+len(warns) == 0 {
		fmt.Fprintln(out, styleOK.Render("No issues found."))
		return
	}

	groups := []struct {
		label  string
		style  lipgloss.Style
		issues []config.ValidationIssue
	}{
		{"Errors:", styleBad, errs},
		{"Warnings:", styleWarn, warns},
	}
	for _, g := range groups {
		if len(g.issues) == 0 {
			continue
		}
		fmt.Fprintln(out, g.style.Render(g.label))
		for _, issue := range g.issues {
			fmt.Fprintf(out, "  [%s] %s\n", issue.Field, issue.Message)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d error(s), %d warning(s)\n", len(errs), len(warns))
}
