package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// filterValues holds the fields bound to the huh form. It lives on the heap
// so the form's pointers stay valid while the owning model is copied.
type filterValues struct {
	Search   string
	Status   task.TaskStatus
	Progress task.ProgressBucket
	DateFrom string
	DateTo   string
}

func valuesFrom(c task.FilterCriteria) *filterValues {
	return &filterValues{
		Search:   c.Search,
		Status:   c.Status,
		Progress: c.Progress,
		DateFrom: c.DateFrom,
		DateTo:   c.DateTo,
	}
}

// Criteria returns the trimmed criteria the form currently describes.
func (v *filterValues) Criteria() task.FilterCriteria {
	return task.FilterCriteria{
		Search:   strings.TrimSpace(v.Search),
		Status:   v.Status,
		Progress: v.Progress,
		DateFrom: strings.TrimSpace(v.DateFrom),
		DateTo:   strings.TrimSpace(v.DateTo),
	}
}

// FilterFormModel wraps the huh filter form for use inside the dashboard.
// It emits FilterSubmittedMsg or FilterCancelledMsg when the form ends.
type FilterFormModel struct {
	theme  Theme
	form   *huh.Form
	values *filterValues
	width  int
	height int
	active bool
}

// NewFilterFormModel creates an inactive form model.
func NewFilterFormModel(theme Theme) FilterFormModel {
	return FilterFormModel{theme: theme}
}

// SetDimensions updates the size used to center the form.
func (f *FilterFormModel) SetDimensions(width, height int) {
	f.width = width
	f.height = height
	if f.form != nil && f.active {
		f.form = f.form.WithWidth(formWidth(width))
	}
}

// IsActive reports whether the form is displayed.
func (f FilterFormModel) IsActive() bool {
	return f.active
}

// Start builds a form pre-filled with current and activates it. The returned
// command must be forwarded to the runtime.
func (f *FilterFormModel) Start(current task.FilterCriteria) tea.Cmd {
	f.values = valuesFrom(current)
	f.form = newFilterForm(f.values, f.theme).WithWidth(formWidth(f.width))
	f.active = true
	return f.form.Init()
}

// Update forwards messages to the form while active.
func (f FilterFormModel) Update(msg tea.Msg) (FilterFormModel, tea.Cmd) {
	if !f.active || f.form == nil {
		return f, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		f.active = false
		return f, func() tea.Msg { return FilterCancelledMsg{} }
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	switch f.form.State {
	case huh.StateCompleted:
		f.active = false
		c := f.values.Criteria()
		return f, func() tea.Msg { return FilterSubmittedMsg{Criteria: c} }
	case huh.StateAborted:
		f.active = false
		return f, func() tea.Msg { return FilterCancelledMsg{} }
	default:
	}
	return f, cmd
}

// View renders the form centered in a bordered box, or "" when inactive.
func (f FilterFormModel) View() string {
	if !f.active || f.form == nil {
		return ""
	}
	boxed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Render(f.form.View())

	if f.width > 0 && f.height > 0 {
		return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center, boxed)
	}
	return boxed
}

func formWidth(termWidth int) int {
	if termWidth <= 0 {
		return 60
	}
	return min(termWidth-8, 72)
}

// newFilterForm builds the filter form bound to v. Date inputs are validated
// as the user leaves them, and an inverted range blocks submission.
func newFilterForm(v *filterValues, theme Theme) *huh.Form {
	statusOptions := []huh.Option[task.TaskStatus]{huh.NewOption("Any status", task.TaskStatus(""))}
	for _, s := range task.ValidStatuses() {
		statusOptions = append(statusOptions, huh.NewOption(s.Label(), s))
	}

	progressOptions := []huh.Option[task.ProgressBucket]{huh.NewOption("Any progress", task.BucketAny)}
	for _, b := range task.ProgressBuckets() {
		progressOptions = append(progressOptions, huh.NewOption(bucketLabel(b), b))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search").
				Description("Case-insensitive match on task name.").
				Placeholder("e.g. api").
				Value(&v.Search),
			huh.NewSelect[task.TaskStatus]().
				Title("Status").
				Options(statusOptions...).
				Value(&v.Status),
			huh.NewSelect[task.ProgressBucket]().
				Title("Progress").
				Options(progressOptions...).
				Value(&v.Progress),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("From").
				Description("Tasks starting on or after this date (YYYY-MM-DD).").
				Value(&v.DateFrom).
				Validate(func(s string) error {
					return task.ValidateDateRange("dateFrom", s, "dateTo", v.DateTo)
				}),
			huh.NewInput().
				Title("To").
				Description("Tasks ending on or before this date (YYYY-MM-DD).").
				Value(&v.DateTo).
				Validate(func(s string) error {
					return task.ValidateDateRange("dateFrom", v.DateFrom, "dateTo", s)
				}),
		),
	).
		WithTheme(buildHuhTheme(theme)).
		WithShowHelp(true)
}

// bucketLabel renders a bucket as a percentage range.
func bucketLabel(b task.ProgressBucket) string {
	switch b {
	case task.BucketZero:
		return "0%"
	case task.BucketComplete:
		return "100%"
	default:
		return fmt.Sprintf("%s%%", b)
	}
}

// PromptFilters runs the filter form standalone on the terminal, starting
// from current, and returns the submitted criteria.
func PromptFilters(current task.FilterCriteria) (task.FilterCriteria, error) {
	v := valuesFrom(current)
	if err := newFilterForm(v, DefaultTheme()).Run(); err != nil {
		return current, fmt.Errorf("filter form: %w", err)
	}
	return v.Criteria(), nil
}

// buildHuhTheme maps the dashboard palette onto a huh theme. The focused
// field gets a thick primary rule on its left edge.
func buildHuhTheme(theme Theme) *huh.Theme {
	t := huh.ThemeBase()

	focused := &t.Focused
	focused.Base = lipgloss.NewStyle().PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).BorderLeft(true).BorderForeground(ColorPrimary)
	focused.Title = boldFg(ColorPrimary)
	focused.Description = fg(ColorMuted)
	focused.ErrorMessage = theme.ErrorText
	focused.ErrorIndicator = theme.ErrorText.SetString(" *")
	focused.SelectSelector = fg(ColorAccent).SetString("> ")
	focused.SelectedOption = fg(ColorAccent)
	focused.UnselectedOption = fg(ColorMuted)
	focused.TextInput.Text = fg(lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"})
	focused.TextInput.Placeholder = fg(ColorSubtle)
	focused.TextInput.Cursor = fg(ColorAccent)

	blurred := &t.Blurred
	blurred.Base = lipgloss.NewStyle().PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).BorderLeft(true)
	blurred.Title = fg(ColorMuted)
	blurred.Description = fg(ColorSubtle)
	blurred.SelectSelector = fg(ColorSubtle).SetString("  ")
	blurred.SelectedOption = fg(ColorMuted)
	blurred.UnselectedOption = fg(ColorSubtle)
	blurred.TextInput.Text = fg(ColorMuted)
	blurred.TextInput.Placeholder = fg(ColorSubtle)

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description
	return t
}
