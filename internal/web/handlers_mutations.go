package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/hrpanel/internal/core"
	"github.com/JonMunkholm/hrpanel/internal/web/middleware"
	"github.com/JonMunkholm/hrpanel/internal/web/templates"
)

// handleNewEmployee renders an empty create form.
func (s *Server) handleNewEmployee(w http.ResponseWriter, r *http.Request) {
	form := templates.FormData{Input: core.DefaultInput(s.service.Now())}
	s.render(w, r, page(templates.NavEmployees, templates.EmployeeForm(form)))
}

// handleEditEmployee loads the record and renders the edit form.
func (s *Server) handleEditEmployee(w http.ResponseWriter, r *http.Request) {
	id := core.ID(chi.URLParam(r, "id"))

	e, err := s.service.Get(r.Context(), id, isLocal(r))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	form := templates.FormData{Edit: true, ID: id, Input: core.InputFrom(e, s.service.Now())}
	s.render(w, r, page(templates.NavEmployees, templates.EmployeeForm(form)))
}

// handleCreateEmployee stores a new record and returns to the table.
func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	s.submitForm(w, r, templates.FormData{})
}

// handleUpdateEmployee stores changes to a record and returns to the table.
func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	s.submitForm(w, r, templates.FormData{Edit: true, ID: core.ID(chi.URLParam(r, "id"))})
}

// submitForm validates and submits the create or edit form. Invalid input
// and store failures re-render the form with what the user typed.
func (s *Server) submitForm(w http.ResponseWriter, r *http.Request, form templates.FormData) {
	in, fieldErrs, err := parseEmployeeForm(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	form.Input = in

	if fieldErrs == nil {
		fieldErrs = s.validateInput(in)
	}
	if len(fieldErrs) > 0 {
		form.Errors = fieldErrs
		s.renderStatus(w, r, http.StatusUnprocessableEntity, page(templates.NavEmployees, templates.EmployeeForm(form)))
		return
	}

	sid := middleware.SessionID(r)
	if form.Edit {
		_, err = s.service.Update(r.Context(), sid, form.ID, in)
	} else {
		_, err = s.service.Create(r.Context(), sid, in)
	}
	if err != nil {
		form.Alert = templates.AlertFrom(err)
		s.renderStatus(w, r, statusFor(err), page(templates.NavEmployees, templates.EmployeeForm(form)))
		return
	}

	redirect(w, r, "/employees")
}

// handleDeleteEmployee deletes a row on htmx's confirmed DELETE and swaps in
// the updated table. A failed delete keeps the row and shows the error.
func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := core.ID(chi.URLParam(r, "id"))
	sid := middleware.SessionID(r)

	st, err := s.service.Delete(r.Context(), sid, id, isLocal(r))
	if err != nil {
		cur, _, loadErr := s.loadState(r)
		if loadErr != nil {
			s.respondError(w, r, errors.Join(err, loadErr), statusFor(err))
			return
		}
		s.render(w, r, templates.EmployeeTable(templates.NewTableData(cur, err)))
		return
	}
	s.render(w, r, templates.EmployeeTable(templates.NewTableData(st, nil)))
}

// handleConfirmDelete is the form fallback for deleting without htmx: the
// first post shows a confirmation page, the confirmed post deletes.
func (s *Server) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id := core.ID(chi.URLParam(r, "id"))
	local := isLocal(r)

	if r.FormValue("confirm") != "yes" {
		st, _, err := s.loadState(r)
		if err != nil {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		e, ok := st.Find(id, local)
		if !ok {
			s.respondError(w, r, core.ErrNotFound, http.StatusNotFound)
			return
		}
		s.render(w, r, page(templates.NavEmployees, templates.ConfirmDelete(e)))
		return
	}

	if _, err := s.service.Delete(r.Context(), middleware.SessionID(r), id, local); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	redirect(w, r, "/employees")
}
