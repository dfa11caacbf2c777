package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/chart"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/tui"
)

// statsFlags holds the flag values for the stats command.
type statsFlags struct {
	filterFlags
	Format string
}

// bucketCount is one row of the progress distribution.
type bucketCount struct {
	Bucket task.ProgressBucket `json:"bucket" yaml:"bucket"`
	Count  int                 `json:"count" yaml:"count"`
}

// statsOutput is the structured output of the stats command.
type statsOutput struct {
	Project      task.Project            `json:"project" yaml:"project"`
	Criteria     task.FilterCriteria     `json:"criteria" yaml:"criteria"`
	Total        int                     `json:"total" yaml:"total"`
	Statistics   task.Statistics         `json:"statistics" yaml:"statistics"`
	ByStatus     map[task.TaskStatus]int `json:"byStatus" yaml:"by_status"`
	Distribution []bucketCount           `json:"distribution" yaml:"distribution"`
}

// newStatsCmd creates the "gantry stats" command.
func newStatsCmd() *cobra.Command {
	var flags statsFlags

	cmd := &cobra.Command{
		Use:   "stats [project-id]",
		Short: "Show progress statistics for the filtered tasks",
		Long: `Display summary statistics of the tasks matching the filters: counts,
overall progress, completed and in-progress shares, and how the tasks spread
over the progress buckets.

Use --format json or yaml for structured output suitable for scripting.`,
		Example: `  # Statistics of the whole project
  gantry stats

  # Only tasks ending before April, as JSON
  gantry stats 42 --to 2024-03-31 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.Format, "format", "o", formatTable, "Output format: table, json or yaml")
	return cmd
}

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func runStats(cmd *cobra.Command, args []string, flags *statsFlags) error {
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

	ds, err := env.Source.Load(cmd.Context(), env.ProjectID)
	if err != nil {
		return err
	}
	filtered := task.ApplyFilters(ds.Tasks, env.Criteria)
	result := buildStatsOutput(ds.Project, env.Criteria, len(ds.Tasks), filtered)

	out := cmd.OutOrStdout()
	switch flags.Format {
	case formatJSON:
		return writeJSON(out, result)
	case formatYAML:
		return writeYAML(out, result)
	default:
		fmt.Fprintln(out, renderStats(result))
		return nil
	}
}

func buildStatsOutput(p task.Project, c task.FilterCriteria, total int, filtered []task.Task) statsOutput {
	buckets := task.BucketCounts(filtered)
	dist := make([]bucketCount, 0, len(task.ProgressBuckets()))
	for _, b := range task.ProgressBuckets() {
		dist = append(dist, bucketCount{Bucket: b, Count: buckets[b]})
	}
	return statsOutput{
		Project:      p,
		Criteria:     c,
		Total:        total,
		Statistics:   task.CalculateStatistics(filtered),
		ByStatus:     task.StatusCounts(filtered),
		Distribution: dist,
	}
}

// renderStats returns the human-readable report.
//
//	Gantry Stats - Apollo
//	=====================
//	3 of 5 tasks (filters: status=Completed)
//
//	Overall progress
//	████████████░░░░░░░░ 60%
//	...
func renderStats(s statsOutput) string {
	const barWidth = 40

	headerStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Bold(true)

	title := fmt.Sprintf("Gantry Stats - %s", s.Project.Name)
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", len(title)))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%d of %d tasks (filters: %s)\n\n", s.Statistics.TotalTasks, s.Total, tui.FilterSummary(s.Criteria))

	st := s.Statistics
	meters := []struct {
		label string
		pct   float64
	}{
		{"Overall progress", float64(st.OverallProgress)},
		{fmt.Sprintf("Completed (%d)", st.CompletedTasks), st.CompletedPercent},
		{fmt.Sprintf("In progress (%d)", st.InProgressTasks), st.InProgressPercent},
	}
	for _, m := range meters {
		sb.WriteString(labelStyle.Render(m.label))
		sb.WriteString("\n")
		sb.WriteString(bar.ViewAs(m.pct / 100))
		fmt.Fprintf(&sb, " %.0f%%\n", m.pct)
	}
	fmt.Fprintf(&sb, "Not started: %d\n\n", st.NotStartedTasks)

	sb.WriteString(labelStyle.Render("By status"))
	sb.WriteString("\n")
	for _, status := range task.ValidStatuses() {
		style := lipgloss.NewStyle().Foreground(chart.StatusColor(status))
		fmt.Fprintf(&sb, "  %s %4d\n", style.Render(fmt.Sprintf("%-12s", status.Label())), s.ByStatus[status])
	}
	sb.WriteString("\n")

	sb.WriteString(labelStyle.Render("Progress distribution"))
	sb.WriteString("\n")
	for _, b := range s.Distribution {
		fmt.Fprintf(&sb, "  %-7s %4d\n", string(b.Bucket)+"%", b.Count)
	}

	return strings.TrimRight(sb.String(), "\n")
}
