// Package cache holds the client-side in-memory mirror of the remote task
// collection. All state transitions go through Reduce, a pure function over a
// closed action set, so the transition table can be tested without any I/O.
package cache

import "taskflow/internal/models"

// State is the full cache state visible to UI consumers.
//
// Loading is true exactly while a full refresh is outstanding. Err holds the
// message of the last failed operation, or "" when there is none.
type State struct {
	Tasks   []models.Task
	Loading bool
	Err     string
}

// Initial returns the cache state before any action has been applied.
func Initial() State {
	return State{Tasks: []models.Task{}}
}

// Action is one cache transition. The set of variants is closed; each carries
// only the fields its transition needs.
type Action interface{ isAction() }

// FetchStart marks a full refresh as outstanding and clears any prior error.
type FetchStart struct{}

// FetchSuccess replaces the whole task list with the server's.
type FetchSuccess struct{ Tasks []models.Task }

// FetchError records why a refresh failed.
type FetchError struct{ Msg string }

// AddTask appends a server-confirmed task. If the id is already present the
// existing entry is replaced in place, keeping ids unique (last dispatch wins).
type AddTask struct{ Task models.Task }

// UpdateTask replaces the entry with the same id. Unknown ids are ignored.
type UpdateTask struct{ Task models.Task }

// DeleteTask removes the entry with the given id. Absent ids are ignored.
type DeleteTask struct{ ID string }

func (FetchStart) isAction()   {}
func (FetchSuccess) isAction() {}
func (FetchError) isAction()   {}
func (AddTask) isAction()      {}
func (UpdateTask) isAction()   {}
func (DeleteTask) isAction()   {}

// Reduce applies one action to a state and returns the next state.
//
// It never mutates its input: task slices are copied before modification, so
// a held snapshot stays valid across later dispatches. Every action is
// defined from every state.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case FetchStart:
		state.Loading = true
		state.Err = ""
		return state

	case FetchSuccess:
		state.Loading = false
		state.Tasks = append([]models.Task{}, a.Tasks...)
		return state

	case FetchError:
		state.Loading = false
		state.Err = a.Msg
		return state

	case AddTask:
		tasks := make([]models.Task, len(state.Tasks), len(state.Tasks)+1)
		copy(tasks, state.Tasks)
		replaced := false
		for i := range tasks {
			if tasks[i].ID == a.Task.ID {
				tasks[i] = a.Task
				replaced = true
				break
			}
		}
		if !replaced {
			tasks = append(tasks, a.Task)
		}
		state.Tasks = tasks
		return state

	case UpdateTask:
		for i := range state.Tasks {
			if state.Tasks[i].ID == a.Task.ID {
				tasks := append([]models.Task(nil), state.Tasks...)
				tasks[i] = a.Task
				state.Tasks = tasks
				break
			}
		}
		return state

	case DeleteTask:
		for i := range state.Tasks {
			if state.Tasks[i].ID == a.ID {
				tasks := append([]models.Task(nil), state.Tasks[:i]...)
				tasks = append(tasks, state.Tasks[i+1:]...)
				state.Tasks = tasks
				break
			}
		}
		return state

	default:
		return state
	}
}
