// Package templates holds the panel's templ components and the view models
// they render.
//
// Components live in the .templ files; the _templ.go files next to them are
// generated with `templ generate` and must not be edited by hand.
package templates

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/hrpanel/internal/core"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

// Nav identifies the active sidebar link.
type Nav string

const (
	NavDashboard Nav = "dashboard"
	NavEmployees Nav = "employees"
)

const navLinkClass = "block px-3 py-2 rounded hover:bg-gray-700"

// Alert is an error box with the user-facing text of a core.UserMessage.
type Alert struct {
	Message string
	Action  string
	Code    string
}

// AlertFrom maps err to an Alert. A nil error gives nil.
func AlertFrom(err error) *Alert {
	if err == nil {
		return nil
	}
	m := core.MapError(err)
	return &Alert{Message: m.Message, Action: m.Action, Code: m.Code}
}

// DashboardData feeds the dashboard page.
type DashboardData struct {
	Summary core.Summary
	Pie     []PieSlice
	Alert   *Alert
}

// NewDashboardData lays out the pie for a summary.
func NewDashboardData(s core.Summary, err error) DashboardData {
	return DashboardData{Summary: s, Pie: BuildPie(s.Departments), Alert: AlertFrom(err)}
}

// DeleteConfirmText is asked before a row is deleted.
const DeleteConfirmText = "Are you sure you want to delete this employee?"

// ImportInfo reports the outcome of the last CSV import.
type ImportInfo struct {
	Rows      int
	Malformed []int
}

// MalformedLines lists the malformed line numbers, comma separated.
func (i ImportInfo) MalformedLines() string {
	parts := make([]string, len(i.Malformed))
	for n, line := range i.Malformed {
		parts[n] = strconv.Itoa(line)
	}
	return strings.Join(parts, ", ")
}

// TableData feeds the employee table fragment.
type TableData struct {
	View    core.View
	Loaded  bool
	Notice  string
	Alert   *Alert
	Import  *ImportInfo
	Confirm string
}

// NewTableData builds the fragment data for a session state. err, when set,
// is shown above the table.
func NewTableData(st core.State, err error) TableData {
	return TableData{
		View:    st.View(),
		Loaded:  st.Mounted,
		Notice:  st.Notice,
		Alert:   AlertFrom(err),
		Confirm: DeleteConfirmText,
	}
}

// FormData feeds the create/edit form.
type FormData struct {
	Edit   bool
	ID     core.ID
	Input  core.Input
	Errors map[string]string // form field name -> message
	Alert  *Alert
}

// Action is where the form posts.
func (f FormData) Action() string {
	if f.Edit {
		return employeePath(f.ID)
	}
	return "/employees"
}

func employeePath(id core.ID) string {
	return "/employees/" + url.PathEscape(id.String())
}

func editURL(e core.Employee) templ.SafeURL {
	return templ.URL(employeePath(e.ID) + "/edit")
}

func deleteAction(e core.Employee) templ.SafeURL {
	return templ.URL(employeePath(e.ID) + "/delete")
}

// deleteTarget is the hx-delete URL. Imported rows carry local=1 so the
// handler does not contact the store.
func deleteTarget(e core.Employee) string {
	if e.Local {
		return employeePath(e.ID) + "?local=1"
	}
	return employeePath(e.ID)
}

func pageURL(n int) templ.SafeURL {
	return templ.URL("/employees?page=" + strconv.Itoa(n))
}

func pageFragmentURL(n int) string {
	return "/employees/table?page=" + strconv.Itoa(n)
}

func departmentNames() []string {
	out := make([]string, len(core.Departments))
	for i, d := range core.Departments {
		out[i] = string(d)
	}
	return out
}

func statusNames() []string {
	out := make([]string, len(core.Statuses))
	for i, s := range core.Statuses {
		out[i] = string(s)
	}
	return out
}

// photoURL lets http(s) links and inline image data through as image
// sources. Anything else renders no image.
func photoURL(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "data:image/"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "http://"):
		return s
	}
	return ""
}
