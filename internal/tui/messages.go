package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/board"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/notify"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// ---------------------------------------------------------------------------
// Board Messages
// ---------------------------------------------------------------------------

// SnapshotMsg carries a new board state published by the store.
type SnapshotMsg struct {
	Snapshot board.Snapshot
}

// LoadFinishedMsg reports the end of a reload started from the dashboard.
// Err is nil on success; failures also arrive as a ToastMsg.
type LoadFinishedMsg struct {
	Err error
}

// ---------------------------------------------------------------------------
// Notification Messages
// ---------------------------------------------------------------------------

// ToastMsg delivers a notification to the status bar.
type ToastMsg struct {
	Notification notify.Notification
}

// ToastExpiredMsg hides the toast with the given ID if it is still shown.
type ToastExpiredMsg struct {
	ID string
}

// toastExpiry returns a command that fires ToastExpiredMsg for id after d.
// A non-positive d keeps the toast until it is replaced.
func toastExpiry(id string, d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// ---------------------------------------------------------------------------
// Timer Messages
// ---------------------------------------------------------------------------

// TickMsg is sent periodically so relative times in the status bar stay
// fresh.
type TickMsg struct {
	Time time.Time
}

// TickCmd returns a command that sends a TickMsg after d.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// ---------------------------------------------------------------------------
// Filter Form Messages
// ---------------------------------------------------------------------------

// FilterSubmittedMsg is sent when the filter form completes.
type FilterSubmittedMsg struct {
	Criteria task.FilterCriteria
}

// FilterCancelledMsg is sent when the filter form is dismissed.
type FilterCancelledMsg struct{}
