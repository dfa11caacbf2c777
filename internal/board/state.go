// Package board holds the dashboard state: the loaded project, the active
// filter criteria, the filtered task list, its statistics, and the current
// view. State changes go through Reduce, a pure function, and Store makes
// the result observable.
package board

import (
	"github.com/AbdelazizMoustafa10m/Gantry/internal/task"
)

// State is the complete dashboard state. Values are treated as immutable:
// Reduce returns a new State and never writes through the slices of its input.
type State struct {
	ProjectID string
	Project   task.Project
	// Tasks is the full, unfiltered task list.
	Tasks    []task.Task
	Criteria task.FilterCriteria
	// Filtered is ApplyFilters(Tasks, Criteria).
	Filtered []task.Task
	// Stats is CalculateStatistics(Filtered).
	Stats task.Statistics
	View  ViewMode

	Loading bool
	// Err is the most recent load failure, cleared by the next successful load.
	Err error

	// Version increases on every change, including a SwitchView to the mode
	// already shown.
	Version uint64
	// Generation increases each time a new task list is loaded.
	Generation uint64
	// LoadSeq identifies the most recent LoadStarted. Results carrying an
	// older sequence are stale and ignored.
	LoadSeq uint64

	// filteredFor records the inputs Filtered was computed from.
	filteredFor filterPass
}

// filterPass identifies a filter run: the criteria and the task list
// generation they were applied to.
type filterPass struct {
	criteria   task.FilterCriteria
	generation uint64
}

// NewState returns the initial state for the given criteria and view.
func NewState(criteria task.FilterCriteria, view ViewMode) State {
	if view == "" {
		view = ViewBasic
	}
	s := State{
		Tasks:    []task.Task{},
		Criteria: criteria,
		View:     view,
	}
	return refilter(s)
}

// Action is a state transition request.
type Action interface {
	isAction()
}

// LoadStarted marks a project load in flight.
type LoadStarted struct {
	ProjectID string
}

// Loaded delivers a successfully loaded project. Seq is the LoadSeq of the
// matching LoadStarted, or zero to apply unconditionally.
type Loaded struct {
	Seq     uint64
	Project task.Project
	Tasks   []task.Task
}

// LoadFailed reports a failed load. Existing data is kept.
type LoadFailed struct {
	Seq uint64
	Err error
}

// SetFilters replaces the active criteria.
type SetFilters struct {
	Criteria task.FilterCriteria
}

// ClearFilters resets every criterion.
type ClearFilters struct{}

// SwitchView sets the view mode.
type SwitchView struct {
	Mode ViewMode
}

// ToggleView switches between the two view modes.
type ToggleView struct{}

func (LoadStarted) isAction()  {}
func (Loaded) isAction()       {}
func (LoadFailed) isAction()   {}
func (SetFilters) isAction()   {}
func (ClearFilters) isAction() {}
func (SwitchView) isAction()   {}
func (ToggleView) isAction()   {}

// Reduce applies action to state and returns the resulting state. It is
// pure: state is not modified, and unchanged slices are shared with the
// result rather than copied. A SetFilters with criteria equal to the active
// ones returns state unchanged.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case LoadStarted:
		state.ProjectID = a.ProjectID
		state.Loading = true
		state.LoadSeq++
		state.Version++
		return state

	case Loaded:
		if a.Seq != 0 && a.Seq != state.LoadSeq {
			return state
		}
		state.Project = a.Project
		state.Tasks = task.CloneTasks(a.Tasks)
		state.Loading = false
		state.Err = nil
		state.Generation++
		state.Version++
		return refilter(state)

	case LoadFailed:
		if a.Seq != 0 && a.Seq != state.LoadSeq {
			return state
		}
		state.Loading = false
		state.Err = a.Err
		state.Version++
		return state

	case SetFilters:
		if state.Filtered != nil && state.filteredFor == (filterPass{a.Criteria, state.Generation}) {
			return state
		}
		state.Criteria = a.Criteria
		state.Version++
		return refilter(state)

	case ClearFilters:
		return Reduce(state, SetFilters{})

	case SwitchView:
		state.View = a.Mode
		state.Version++
		return state

	case ToggleView:
		return Reduce(state, SwitchView{Mode: state.View.Toggle()})
	}
	return state
}

// refilter recomputes Filtered and Stats from Tasks and Criteria.
func refilter(s State) State {
	s.Filtered = task.ApplyFilters(s.Tasks, s.Criteria)
	s.Stats = task.CalculateStatistics(s.Filtered)
	s.filteredFor = filterPass{s.Criteria, s.Generation}
	return s
}

// Clone returns a deep copy of s whose slices share nothing with s.
func (s State) Clone() State {
	s.Tasks = task.CloneTasks(s.Tasks)
	s.Filtered = task.CloneTasks(s.Filtered)
	return s
}

// HasData reports whether a project has been loaded.
func (s State) HasData() bool {
	return s.Generation > 0
}
