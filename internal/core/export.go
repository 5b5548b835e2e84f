package core

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	// CSVFileName is the download name of the full-list export.
	CSVFileName = "employees.csv"
	// PDFFileName is the download name of the current-page export.
	PDFFileName = "employees.pdf"
)

// CSVHeader is the field-name header row of the CSV export.
var CSVHeader = []string{"id", "name", "number", "position", "department", "dateJoined", "status", "photo"}

// WriteCSV writes every employee, unfiltered and unpaginated, with standard
// CSV quoting.
func WriteCSV(w io.Writer, employees []Employee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range employees {
		record := []string{
			e.ID.String(),
			e.Name,
			e.Number,
			e.Position,
			string(e.Department),
			e.DateJoined,
			string(e.Status),
			e.Photo,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// TableColumns are the headings of the employee table as displayed.
var TableColumns = []string{
	"Nama Karyawan",
	"Nomor Karyawan",
	"Jabatan",
	"Departemen",
	"Tanggal Masuk",
	"Foto",
	"Status",
	"Aksi",
}

// pdfColumnWidths in millimetres; they sum to the printable width of
// landscape A4 with 10mm margins (297 - 2*10).
var pdfColumnWidths = []float64{56, 34, 46, 30, 54, 16, 26, 15}

// tableCells returns the text content of one displayed row. The photo and
// action cells hold an image and buttons on screen, so they carry no text.
func tableCells(e Employee) []string {
	return []string{e.Name, e.Number, e.Position, string(e.Department), e.DateJoined, "", string(e.Status), ""}
}

// WritePDF renders the given rows, normally the page currently on screen, as
// a table document.
func WritePDF(w io.Writer, rows []Employee) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
		for i, col := range TableColumns {
			pdf.CellFormat(pdfColumnWidths[i], 8, tr(col), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.SetHeaderFunc(header)
	pdf.AddPage()

	for n, e := range rows {
		fill := n%2 == 1
		if fill {
			pdf.SetFillColor(245, 245, 245)
		}
		for i, cell := range tableCells(e) {
			pdf.CellFormat(pdfColumnWidths[i], 7, fitText(pdf, tr(cell), pdfColumnWidths[i]-2), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// fitText truncates s so it fits a cell of the given width. s must already
// be translated to the font's single-byte encoding, which is what the core
// fonts measure.
func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	b := []byte(s)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+"...") > width {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}
