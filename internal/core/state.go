package core

import "encoding/json"

// State is everything one browser session knows about the employee list.
// It changes only through Reduce.
type State struct {
	Employees []Employee `json:"employees"`
	Params    Params     `json:"params"`
	Page      int        `json:"page"`
	// Mounted is set once a fetch has completed, successfully or not, and
	// cleared by Invalidated. An unmounted state fetches before rendering.
	Mounted bool `json:"mounted"`
	// Notice is a one-shot message shown on the next table render.
	Notice string `json:"notice,omitempty"`
}

// NewState returns the state of a session that has not fetched yet.
func NewState() State {
	return State{Params: DefaultParams(), Page: 1}
}

// View runs the pipeline over the state.
func (s State) View() View {
	return BuildView(s.Employees, s.Params, s.Page)
}

// PageCount is the number of table pages the current filters produce.
func (s State) PageCount() int {
	return TotalPages(len(Apply(s.Employees, s.Params)))
}

// Summary aggregates the full list.
func (s State) Summary() Summary {
	return Summarize(s.Employees)
}

// Action is a state transition.
type Action interface {
	apply(State) State
}

// Loaded replaces the list with a completed fetch.
type Loaded struct{ Employees []Employee }

// FetchFailed records a failed fetch; the list is left as it was.
type FetchFailed struct{}

// Invalidated marks the list stale after a create or update.
type Invalidated struct{}

// SetDepartment changes the department filter.
type SetDepartment struct{ Department string }

// SetStatus changes the status filter.
type SetStatus struct{ Status string }

// SetSort changes the name sort direction.
type SetSort struct{ Sort SortOrder }

// SetPage moves to another page of the current result. Pages past the
// last one land on the last page.
type SetPage struct{ Page int }

// Deleted drops every row with the given id and origin from the list.
type Deleted struct {
	ID    ID
	Local bool
}

// Imported appends parsed CSV rows to the list.
type Imported struct{ Rows []Employee }

// Notify sets the one-shot notice.
type Notify struct{ Message string }

// ClearNotice consumes the one-shot notice.
type ClearNotice struct{}

// Reduce applies a to s and returns the new state. s is not modified.
//
// Any change to the list, a filter or the sort re-runs the pipeline and
// puts the table back on page 1, so a narrowed result never lands on an
// empty page.
func Reduce(s State, a Action) State {
	return a.apply(s)
}

func (a Loaded) apply(s State) State {
	s.Employees = append([]Employee(nil), a.Employees...)
	s.Mounted = true
	s.Page = 1
	return s
}

func (FetchFailed) apply(s State) State {
	s.Mounted = true
	return s
}

func (Invalidated) apply(s State) State {
	s.Mounted = false
	return s
}

func (a SetDepartment) apply(s State) State {
	s.Params.Department = a.Department
	s.Params = s.Params.normalize()
	s.Page = 1
	return s
}

func (a SetStatus) apply(s State) State {
	s.Params.Status = a.Status
	s.Params = s.Params.normalize()
	s.Page = 1
	return s
}

func (a SetSort) apply(s State) State {
	s.Params.Sort = a.Sort
	s.Params = s.Params.normalize()
	s.Page = 1
	return s
}

func (a SetPage) apply(s State) State {
	s.Page = ClampPage(a.Page, s.PageCount())
	return s
}

func (a Deleted) apply(s State) State {
	kept := make([]Employee, 0, len(s.Employees))
	for _, e := range s.Employees {
		if e.ID == a.ID && e.Local == a.Local {
			continue
		}
		kept = append(kept, e)
	}
	s.Employees = kept
	s.Page = 1
	return s
}

func (a Imported) apply(s State) State {
	merged := make([]Employee, 0, len(s.Employees)+len(a.Rows))
	merged = append(merged, s.Employees...)
	merged = append(merged, a.Rows...)
	s.Employees = merged
	s.Page = 1
	return s
}

func (a Notify) apply(s State) State {
	s.Notice = a.Message
	return s
}

func (ClearNotice) apply(s State) State {
	s.Notice = ""
	return s
}

// Find returns the first row with the given id and origin.
func (s State) Find(id ID, local bool) (Employee, bool) {
	for _, e := range s.Employees {
		if e.ID == id && e.Local == local {
			return e, true
		}
	}
	return Employee{}, false
}

// storedEmployee keeps the Local flag when a State is serialized for a
// session backend; the store wire format never carries it.
type storedEmployee struct {
	Employee
	Local bool `json:"local,omitempty"`
}

type stateAlias State

type storedState struct {
	stateAlias
	Employees []storedEmployee `json:"employees"`
}

// MarshalJSON encodes the state for session storage.
func (s State) MarshalJSON() ([]byte, error) {
	st := storedState{stateAlias: stateAlias(s), Employees: make([]storedEmployee, len(s.Employees))}
	for i, e := range s.Employees {
		st.Employees[i] = storedEmployee{Employee: e, Local: e.Local}
	}
	return json.Marshal(st)
}

// UnmarshalJSON decodes a state written by MarshalJSON.
func (s *State) UnmarshalJSON(data []byte) error {
	var st storedState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	*s = State(st.stateAlias)
	s.Employees = make([]Employee, len(st.Employees))
	for i, se := range st.Employees {
		e := se.Employee
		e.Local = se.Local
		s.Employees[i] = e
	}
	return nil
}
