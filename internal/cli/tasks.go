package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/chart"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/tui"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// tasksFlags holds the flag values for the tasks command.
type tasksFlags struct {
	filterFlags
	Format      string
	Chart       bool
	Interactive bool
}

// tasksOutput is the structured output of the tasks command.
type tasksOutput struct {
	Project  task.Project        `json:"project" yaml:"project"`
	Criteria task.FilterCriteria `json:"criteria" yaml:"criteria"`
	Total    int                 `json:"total" yaml:"total"`
	Tasks    []task.Task         `json:"tasks" yaml:"tasks"`
}

// promptFilters asks for criteria interactively. Replaced in tests.
var promptFilters = tui.PromptFilters

// newTasksCmd creates the "gantry tasks" command.
func newTasksCmd() *cobra.Command {
	var flags tasksFlags

	cmd := &cobra.Command{
		Use:   "tasks [project-id]",
		Short: "List the project's tasks matching the filters",
		Long: `Load a project and print the tasks that satisfy every given filter.
Unset filters fall back to the [filters] section of gantry.toml.

The list is printed as a table by default. Use --format json or yaml for
structured output, or --chart for a text Gantt chart.`,
		Example: `  # All tasks of the configured project
  gantry tasks

  # Completed tasks whose name contains "api"
  gantry tasks 42 --search api --status COMPLETED

  # Tasks inside a date window, as YAML
  gantry tasks --from 2024-01-01 --to 2024-03-31 --format yaml

  # Pick filters in a form, then draw the chart
  gantry tasks --interactive --chart`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTasks(cmd, args, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.Format, "format", "o", formatTable, "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&flags.Chart, "chart", false, "Draw a text Gantt chart instead of a table")
	cmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Choose filters in an interactive form")
	return cmd
}

func init() {
	rootCmd.AddCommand(newTasksCmd())
}

func runTasks(cmd *cobra.Command, args []string, flags *tasksFlags) error {
	switch flags.Format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q: expected table, json or yaml", flags.Format)
	}

	env, err := prepareCommand(cmd, args, &flags.filterFlags)
	if err != nil {
		return err
	}
	defer env.Close()

	criteria := env.Criteria
	if flags.Interactive {
		criteria, err = promptFilters(criteria)
		if err != nil {
			return err
		}
	}

	ds, err := env.Source.Load(cmd.Context(), env.ProjectID)
	if err != nil {
		return err
	}
	filtered := task.ApplyFilters(ds.Tasks, criteria)

	out := cmd.OutOrStdout()
	if flags.Chart {
		width := env.Resolved.Config.View.ChartWidth
		fmt.Fprintln(out, chart.Render(filtered, chart.Options{Width: width, Today: time.Now()}))
		fmt.Fprintln(out)
		fmt.Fprintln(out, chart.Legend())
		return nil
	}

	result := tasksOutput{Project: ds.Project, Criteria: criteria, Total: len(ds.Tasks), Tasks: filtered}
	switch flags.Format {
	case formatJSON:
		return writeJSON(out, result)
	case formatYAML:
		return writeYAML(out, result)
	default:
		fmt.Fprintln(out, renderTaskTable(filtered))
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d tasks shown (filters: %s)\n",
			len(filtered), len(ds.Tasks), tui.FilterSummary(criteria))
		return nil
	}
}

// renderTaskTable draws tasks as a bordered table.
//
//	│ ID │ Name       │ Status      │ Progress │ Start      │ End        │ Days │
func renderTaskTable(tasks []task.Task) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		progress := "-"
		if t.Progress != nil {
			progress = strconv.Itoa(*t.Progress) + "%"
		}
		days := "-"
		if d, ok := chart.DurationDays(t); ok {
			days = strconv.Itoa(d)
		}
		rows = append(rows, []string{
			t.ID,
			t.Name,
			t.Status.Label(),
			progress,
			chart.FormatDate(t.StartDate, ""),
			chart.FormatDate(t.EndDate, ""),
			days,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("ID", "Name", "Status", "Progress", "Start", "End", "Days").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row < len(tasks) {
				return cellStyle.Foreground(chart.StatusColor(tasks[row].Status))
			}
			return cellStyle
		}).
		Render()
}

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML encodes v as YAML.
func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
