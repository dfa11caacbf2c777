package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/board"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/notify"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/source"
)

// EventBridge turns backend channels into tea.Cmd values. Each command reads
// exactly one value; the App re-issues the command after handling the
// resulting message so the channel keeps draining.
type EventBridge struct {
	ctx       context.Context
	snapshots <-chan board.Snapshot
	toasts    <-chan notify.Notification
}

// NewEventBridge wires the store watcher and notification channel. Either
// channel may be nil, in which case the matching command returns nil.
func NewEventBridge(ctx context.Context, snapshots <-chan board.Snapshot, toasts <-chan notify.Notification) EventBridge {
	return EventBridge{ctx: ctx, snapshots: snapshots, toasts: toasts}
}

// SnapshotCmd waits for the next board snapshot. It yields nil once the
// channel is closed or the context is done.
func (b EventBridge) SnapshotCmd() tea.Cmd {
	if b.snapshots == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-b.ctx.Done():
			return nil
		case snap, ok := <-b.snapshots:
			if !ok {
				return nil
			}
			return SnapshotMsg{Snapshot: snap}
		}
	}
}

// ToastCmd waits for the next notification.
func (b EventBridge) ToastCmd() tea.Cmd {
	if b.toasts == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-b.ctx.Done():
			return nil
		case n, ok := <-b.toasts:
			if !ok {
				return nil
			}
			return ToastMsg{Notification: n}
		}
	}
}

// LoadCmd runs a store load off the update loop and reports completion.
func (b EventBridge) LoadCmd(store *board.Store, src source.Source, projectID string) tea.Cmd {
	if store == nil || src == nil {
		return nil
	}
	return func() tea.Msg {
		return LoadFinishedMsg{Err: store.Load(b.ctx, src, projectID)}
	}
}
