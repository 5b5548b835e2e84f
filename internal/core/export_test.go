package core

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/google/go-cmp/cmp"
)

func TestWriteCSV(t *testing.T) {
	employees := []Employee{
		{ID: "1", Name: "Ani", Number: "E001", Position: "Manager, Sales", Department: DepartmentIT, DateJoined: "2024-01-02", Status: StatusTetap},
		{ID: "2", Name: `Budi "B"`, Number: "E002", Department: DepartmentHR, Status: StatusKontrak, Photo: "http://img/b.png"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, employees); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	if !strings.Contains(buf.String(), `"Manager, Sales"`) {
		t.Errorf("comma-containing value not quoted:\n%s", buf.String())
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading export back: %v", err)
	}
	want := [][]string{
		CSVHeader,
		{"1", "Ani", "E001", "Manager, Sales", "IT", "2024-01-02", "Tetap", ""},
		{"2", `Budi "B"`, "E002", "", "HR", "", "Kontrak", "http://img/b.png"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV_EmptyListWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if got, want := buf.String(), strings.Join(CSVHeader, ",")+"\n"; got != want {
		t.Errorf("WriteCSV(nil) = %q, want %q", got, want)
	}
}

func TestWritePDF(t *testing.T) {
	rows := []Employee{
		{ID: "1", Name: "Ani", Number: "E001", Department: DepartmentIT, Status: StatusTetap},
		{ID: "2", Name: strings.Repeat("Panjang ", 30), Department: DepartmentHR, Status: StatusProbation},
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, rows); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestWritePDF_NoRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, nil); err != nil {
		t.Fatalf("WritePDF(nil) error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("WritePDF(nil) wrote nothing")
	}
}

func TestTableCells(t *testing.T) {
	e := Employee{Name: "Ani", Number: "E1", Position: "Staff", Department: "IT", DateJoined: "d", Status: "Tetap", Photo: "http://x"}
	got := tableCells(e)
	if len(got) != len(TableColumns) {
		t.Fatalf("len(tableCells) = %d, want %d", len(got), len(TableColumns))
	}
	if got[5] != "" || got[7] != "" {
		t.Errorf("photo and action cells = %q, %q, want empty", got[5], got[7])
	}
}

func TestPDFColumnWidthsFillPage(t *testing.T) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pw, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()

	var sum float64
	for _, w := range pdfColumnWidths {
		sum += w
	}
	if want := pw - left - right; math.Abs(sum-want) > 0.01 {
		t.Errorf("column widths sum to %v, want %v", sum, want)
	}
	if len(pdfColumnWidths) != len(TableColumns) {
		t.Errorf("%d widths for %d columns", len(pdfColumnWidths), len(TableColumns))
	}
}

func TestFitText(t *testing.T) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 8)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Each é is two bytes in UTF-8 but one glyph in the font encoding.
	accented := tr(strings.Repeat("é", 12))
	if got := fitText(pdf, accented, pdf.GetStringWidth(accented)); got != accented {
		t.Errorf("fitText(accented) = %q, want it unchanged", got)
	}

	long := tr(strings.Repeat("Ménard ", 20))
	got := fitText(pdf, long, 30)
	if !strings.HasSuffix(got, "...") || pdf.GetStringWidth(got) > 30 {
		t.Errorf("fitText(long) = %q (%.1fmm), want a truncated string within 30mm", got, pdf.GetStringWidth(got))
	}
}
