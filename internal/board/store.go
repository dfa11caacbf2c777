package board

import (
	"context"
	"errors"
	"sync"

	"github.com/AbdelazizMoustafa10m/Gantry/internal/logging"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/notify"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/source"
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// Snapshot is a deep copy of State handed to observers. Observers own it
// and may keep or modify it freely.
type Snapshot struct {
	State
}

// Store owns the current State and publishes a Snapshot to every observer
// after each change. It is safe for concurrent use.
//
// Observers are called in dispatch order. An observer callback must not call
// Dispatch or Load on the same Store.
type Store struct {
	// deliver serialises whole dispatches so observers see changes in order.
	deliver sync.Mutex
	// mu guards the fields below.
	mu       sync.Mutex
	state    State
	nextID   int
	subs     map[int]func(Snapshot)
	watchers map[int]chan Snapshot

	notifier notify.Notifier
}

// NewStore creates a Store holding initial. A nil notifier discards
// notifications.
func NewStore(initial State, n notify.Notifier) *Store {
	if n == nil {
		n = notify.Discard
	}
	return &Store{
		state:    initial,
		subs:     make(map[int]func(Snapshot)),
		watchers: make(map[int]chan Snapshot),
		notifier: n,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state.Clone()}
}

// Dispatch applies action and, when the state changed, publishes the new
// state to every observer before returning. It returns the resulting state.
func (s *Store) Dispatch(action Action) Snapshot {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	prev := s.state.Version
	s.state = Reduce(s.state, action)
	changed := s.state.Version != prev
	snap := Snapshot{State: s.state.Clone()}
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	watchers := make([]chan Snapshot, 0, len(s.watchers))
	for _, ch := range s.watchers {
		watchers = append(watchers, ch)
	}
	s.mu.Unlock()

	if !changed {
		return snap
	}

	for _, fn := range subs {
		fn(Snapshot{State: snap.State.Clone()})
	}
	for _, ch := range watchers {
		offer(ch, Snapshot{State: snap.State.Clone()})
	}
	return snap
}

// offer delivers snap on ch, replacing a pending snapshot the receiver has
// not picked up yet. Only the publisher sends on ch, and it holds the
// deliver lock, so the drain and send cannot race another sender.
func offer(ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned function unregisters it and is safe to call more than once.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Watch returns a channel that receives the current state immediately and
// then a snapshot after every change. The channel holds at most buffer
// snapshots (minimum 1); when it is full the oldest pending snapshot is
// replaced, so a slow reader always ends up with the newest state. The
// channel is closed once ctx is done.
func (s *Store) Watch(ctx context.Context, buffer int) <-chan Snapshot {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Snapshot, buffer)

	s.deliver.Lock()
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	ch <- Snapshot{State: s.state.Clone()}
	s.mu.Unlock()
	s.deliver.Unlock()

	go func() {
		<-ctx.Done()
		s.deliver.Lock()
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
		close(ch)
		s.deliver.Unlock()
	}()
	return ch
}

// Load fetches projectID from src and records the outcome. A failure keeps
// the previous data, is sent to the notifier, and is returned. When another
// Load starts before this one finishes, this result is discarded silently
// and Load returns nil, whether it succeeded or failed.
func (s *Store) Load(ctx context.Context, src source.Source, projectID string) error {
	logger := logging.New("board")

	started := s.Dispatch(LoadStarted{ProjectID: projectID})
	seq := started.LoadSeq

	ds, err := src.Load(ctx, projectID)
	if err != nil {
		if after := s.Dispatch(LoadFailed{Seq: seq, Err: err}); after.LoadSeq != seq {
			logger.Debug("dropping superseded load failure", "project", projectID, "error", err)
			return nil
		}
		logger.Debug("load failed", "project", projectID, "error", err)
		if !errors.Is(err, context.Canceled) {
			s.notifier.Notify(notify.New(notify.SeverityError, "Failed to load project data", err.Error()))
		}
		return err
	}

	s.Dispatch(Loaded{Seq: seq, Project: ds.Project, Tasks: ds.Tasks})
	logger.Debug("project loaded", "project", projectID, "tasks", len(ds.Tasks))
	return nil
}

// SetFilters replaces the active criteria.
func (s *Store) SetFilters(c task.FilterCriteria) Snapshot {
	return s.Dispatch(SetFilters{Criteria: c})
}

// ClearFilters resets every criterion.
func (s *Store) ClearFilters() Snapshot {
	return s.Dispatch(ClearFilters{})
}

// SwitchView sets the view mode and notifies observers even when the mode
// does not change.
func (s *Store) SwitchView(mode ViewMode) Snapshot {
	return s.Dispatch(SwitchView{Mode: mode})
}

// ToggleView switches to the other view mode.
func (s *Store) ToggleView() Snapshot {
	return s.Dispatch(ToggleView{})
}
