package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/board"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/logging"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/notify"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/source"
)

// tickInterval controls how often relative times are refreshed.
const tickInterval = 15 * time.Second

// AppConfig holds everything the dashboard needs.
type AppConfig struct {
	// Version is the Gantry version shown in the title bar.
	Version string
	// ProjectID is loaded on start and on every reload.
	ProjectID string
	// ProjectName is shown until the project record has loaded.
	ProjectName string
	// Store holds the board state. It must not be nil when running.
	Store *board.Store
	// Source loads project data.
	Source source.Source
	// Toasts delivers notifications to the status bar. May be nil.
	Toasts <-chan notify.Notification
	// ToastDuration is how long a toast stays visible. Zero keeps it until
	// the next one arrives.
	ToastDuration time.Duration
}

// invalidator is implemented by caching sources.
type invalidator interface {
	Invalidate(projectID string)
}

// App is the top-level Bubble Tea model of the dashboard.
type App struct {
	config   AppConfig
	theme    Theme
	keyMap   KeyMap
	layout   Layout
	bridge   EventBridge
	snapshot board.Snapshot
	ready    bool
	quitting bool

	sidebar    SidebarModel
	mainPanel  MainPanelModel
	statusBar  StatusBarModel
	filterForm FilterFormModel
	help       HelpOverlay
}

// NewApp builds the dashboard model. The store watcher is attached here so
// no change between construction and Init is missed; it stops when ctx is
// done.
func NewApp(ctx context.Context, cfg AppConfig) App {
	theme := DefaultTheme()
	keyMap := DefaultKeyMap()

	var snapshots <-chan board.Snapshot
	if cfg.Store != nil {
		snapshots = cfg.Store.Watch(ctx, 1)
	}

	return App{
		config:     cfg,
		theme:      theme,
		keyMap:     keyMap,
		layout:     NewLayout(),
		bridge:     NewEventBridge(ctx, snapshots, cfg.Toasts),
		sidebar:    NewSidebarModel(theme),
		mainPanel:  NewMainPanelModel(theme, keyMap),
		statusBar:  NewStatusBarModel(theme),
		filterForm: NewFilterFormModel(theme),
		help:       NewHelpOverlay(theme, keyMap),
	}
}

// Init starts the channel readers, the first load and the refresh timer.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.bridge.SnapshotCmd(),
		a.bridge.ToastCmd(),
		a.bridge.LoadCmd(a.config.Store, a.config.Source, a.config.ProjectID),
		TickCmd(tickInterval),
	)
}

// Update routes messages to the sub-models.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(m.Width, m.Height)
		return a, nil

	case SnapshotMsg:
		a.applySnapshot(m.Snapshot)
		a.statusBar = a.statusBar.Update(m)
		return a, a.bridge.SnapshotCmd()

	case ToastMsg:
		a.statusBar = a.statusBar.Update(m)
		return a, tea.Batch(a.bridge.ToastCmd(), toastExpiry(m.Notification.ID, a.config.ToastDuration))

	case ToastExpiredMsg:
		a.statusBar = a.statusBar.Update(m)
		return a, nil

	case TickMsg:
		a.statusBar = a.statusBar.Update(m)
		return a, TickCmd(tickInterval)

	case LoadFinishedMsg:
		if m.Err != nil {
			logging.New("tui").Debug("reload failed", "project", a.config.ProjectID, "error", m.Err)
		}
		return a, nil

	case FilterSubmittedMsg:
		if a.config.Store != nil {
			a.config.Store.SetFilters(m.Criteria)
		}
		return a, nil

	case FilterCancelledMsg:
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(m)
	}

	if a.filterForm.IsActive() {
		var cmd tea.Cmd
		a.filterForm, cmd = a.filterForm.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		a.quitting = true
		return a, tea.Quit
	}

	if a.filterForm.IsActive() {
		var cmd tea.Cmd
		a.filterForm, cmd = a.filterForm.Update(msg)
		return a, cmd
	}
	if a.help.IsVisible() {
		a.help, _ = a.help.Update(msg)
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keyMap.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keyMap.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(msg, a.keyMap.ToggleView):
		if a.config.Store != nil {
			a.config.Store.ToggleView()
		}
		return a, nil

	case key.Matches(msg, a.keyMap.Filter):
		return a, a.filterForm.Start(a.snapshot.Criteria)

	case key.Matches(msg, a.keyMap.ClearFilters):
		if a.config.Store != nil {
			a.config.Store.ClearFilters()
		}
		return a, nil

	case key.Matches(msg, a.keyMap.Reload):
		if inv, ok := a.config.Source.(invalidator); ok {
			inv.Invalidate(a.config.ProjectID)
		}
		return a, a.bridge.LoadCmd(a.config.Store, a.config.Source, a.config.ProjectID)
	}

	var cmd tea.Cmd
	a.mainPanel, cmd = a.mainPanel.Update(msg)
	return a, cmd
}

func (a *App) resize(width, height int) {
	a.ready = true
	a.help.SetDimensions(width, height)
	a.filterForm.SetDimensions(width, height)
	if !a.layout.Resize(width, height) {
		return
	}
	a.sidebar.SetDimensions(a.layout.Sidebar.Width, a.layout.Sidebar.Height)
	a.mainPanel.SetDimensions(a.layout.Main.Width, a.layout.Main.Height)
	a.statusBar.SetWidth(a.layout.StatusBar.Width)
}

func (a *App) applySnapshot(snap board.Snapshot) {
	a.snapshot = snap
	a.sidebar.SetStats(snap.Stats, snap.Filtered, len(snap.Tasks), snap.HasData())
	a.mainPanel.SetSnapshot(snap)
}

// View renders the dashboard, or an overlay when the help or filter form is
// open.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	if !a.ready {
		return "Initializing Gantry..."
	}
	if a.filterForm.IsActive() {
		return a.filterForm.View()
	}
	if a.help.IsVisible() {
		return a.help.View()
	}
	if a.layout.IsTooSmall() {
		return a.layout.RenderTooSmall(a.theme)
	}

	return a.layout.Render(
		a.renderTitleBar(),
		a.sidebar.View(),
		a.mainPanel.View(),
		a.statusBar.View(),
	)
}

// renderTitleBar shows the version and the project.
func (a App) renderTitleBar() string {
	name := a.snapshot.Project.Name
	if name == "" {
		name = a.config.ProjectName
	}
	if name == "" {
		name = "project " + a.config.ProjectID
	}

	title := a.theme.TitleText.Render("Gantry") +
		a.theme.TitleVersion.Render(" v"+a.config.Version) +
		a.theme.TitleText.Render("  |  "+name)
	hint := a.theme.TitleHint.Render("? help  q quit")

	inner := max(a.layout.TitleBar.Width-2, 0)
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(hint), 1)
	return a.theme.TitleBar.
		Width(a.layout.TitleBar.Width).
		MaxHeight(1).
		Render(title + fmt.Sprintf("%*s", gap, "") + hint)
}

// RunTUI runs the dashboard full-screen until the user quits or ctx is
// done.
func RunTUI(ctx context.Context, cfg AppConfig) error {
	if cfg.Store == nil {
		return errors.New("running TUI: no board store")
	}

	logger := logging.New("tui")
	logger.Info("starting TUI", "version", cfg.Version, "project", cfg.ProjectID)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		NewApp(ctx, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
