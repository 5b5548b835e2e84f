package web

import (
	"net/http"

	"github.com/JonMunkholm/hrpanel/internal/core"
	"github.com/JonMunkholm/hrpanel/internal/logging"
	"github.com/JonMunkholm/hrpanel/internal/web/middleware"
	"github.com/JonMunkholm/hrpanel/internal/web/templates"
)

// handleDashboard renders the summary cards and department chart.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	st, fetchErr, err := s.loadState(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.render(w, r, page(templates.NavDashboard, templates.DashboardPage(templates.NewDashboardData(st.Summary(), fetchErr))))
}

// handleEmployees renders the table page. htmx requests get only the table.
func (s *Server) handleEmployees(w http.ResponseWriter, r *http.Request) {
	data, ok := s.tableData(w, r)
	if !ok {
		return
	}
	if isHTMX(r) {
		s.render(w, r, templates.EmployeeTable(data))
		return
	}
	s.render(w, r, page(templates.NavEmployees, templates.EmployeesPage(data)))
}

// handleEmployeeTable renders the table fragment for htmx swaps.
func (s *Server) handleEmployeeTable(w http.ResponseWriter, r *http.Request) {
	data, ok := s.tableData(w, r)
	if !ok {
		return
	}
	s.render(w, r, templates.EmployeeTable(data))
}

// tableData applies the query's filter, sort and page changes and prepares
// the table. The one-shot notice is cleared once it has been read.
func (s *Server) tableData(w http.ResponseWriter, r *http.Request) (templates.TableData, bool) {
	st, fetchErr, err := s.loadState(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return templates.TableData{}, false
	}

	sid := middleware.SessionID(r)
	if actions := queryActions(r.URL.Query(), st); len(actions) > 0 {
		if st, err = s.service.Dispatch(r.Context(), sid, actions...); err != nil {
			s.respondError(w, r, err, statusFor(err))
			return templates.TableData{}, false
		}
	}

	data := templates.NewTableData(st, fetchErr)
	s.clearNotice(r, st)
	return data, true
}

func (s *Server) clearNotice(r *http.Request, st core.State) {
	if st.Notice == "" {
		return
	}
	if _, err := s.service.Dispatch(r.Context(), middleware.SessionID(r), core.ClearNotice{}); err != nil {
		logging.FromContext(r.Context()).Warn("clear notice failed", "error", err)
	}
}
