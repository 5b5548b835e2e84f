package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/hrpanel/internal/core"
	"github.com/JonMunkholm/hrpanel/internal/logging"
)

// handleExportCSV downloads every employee in the session list, ignoring
// filters and paging.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	st, _, err := s.loadState(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := core.WriteCSV(&buf, st.Employees); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	logging.FromContext(r.Context()).Info("csv exported", "rows", len(st.Employees))
	writeDownload(w, "text/csv", core.CSVFileName, buf.Bytes())
}

// handleExportPDF downloads the table page currently on screen.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	st, _, err := s.loadState(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	rows := st.View().Rows
	var buf bytes.Buffer
	if err := core.WritePDF(&buf, rows); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	logging.FromContext(r.Context()).Info("pdf exported", "rows", len(rows), "page", st.Page)
	writeDownload(w, "application/pdf", core.PDFFileName, buf.Bytes())
}

func writeDownload(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	_, _ = w.Write(body)
}
