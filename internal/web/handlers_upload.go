package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/hrpanel/internal/core"
	"github.com/JonMunkholm/hrpanel/internal/web/middleware"
	"github.com/JonMunkholm/hrpanel/internal/web/templates"
)

// multipartOverhead covers form boundaries and headers around the file.
const multipartOverhead = 1 << 20

// handleImport appends the rows of an uploaded CSV file to the session list.
// Imported rows stay in this browser session and are never sent to the
// store.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize+multipartOverhead)

	file, _, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			err = core.ErrNoFile
		}
		s.respondError(w, r, err, statusFor(err))
		return
	}
	defer file.Close()

	res, err := s.service.Import(r.Context(), middleware.SessionID(r), file)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	st, fetchErr, err := s.loadState(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	data := templates.NewTableData(st, fetchErr)
	data.Import = &templates.ImportInfo{Rows: len(res.Rows), Malformed: res.Malformed}
	if isHTMX(r) {
		s.render(w, r, templates.EmployeeTable(data))
		return
	}
	s.render(w, r, page(templates.NavEmployees, templates.EmployeesPage(data)))
}
