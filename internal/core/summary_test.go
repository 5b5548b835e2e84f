package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSummarize(t *testing.T) {
	employees := []Employee{
		{Department: DepartmentIT, Status: StatusTetap},
		{Department: DepartmentHR, Status: StatusKontrak},
		{Department: DepartmentIT, Status: StatusKontrak},
		{Department: "", Status: StatusProbation},
		{Department: DepartmentFinance, Status: "kontrak"},
	}

	got := Summarize(employees)

	if got.Total != 5 {
		t.Errorf("Total = %d, want 5", got.Total)
	}
	// Status comparison is exact, so "kontrak" is not counted.
	if got.Kontrak != 2 {
		t.Errorf("Kontrak = %d, want 2", got.Kontrak)
	}
	if got.Probation != 1 {
		t.Errorf("Probation = %d, want 1", got.Probation)
	}
	want := []DepartmentCount{{"IT", 2}, {"HR", 1}, {"Finance", 1}}
	if diff := cmp.Diff(want, got.Departments); diff != "" {
		t.Errorf("Departments mismatch (-want +got):\n%s", diff)
	}
	if n := got.Department("IT"); n != 2 {
		t.Errorf("Department(IT) = %d, want 2", n)
	}
	if n := got.Department("Legal"); n != 0 {
		t.Errorf("Department(Legal) = %d, want 0", n)
	}
}

func TestSummarize_StatusMix(t *testing.T) {
	employees := []Employee{
		{Status: StatusTetap},
		{Status: StatusKontrak},
		{Status: StatusKontrak},
		{Status: StatusProbation},
	}
	got := Summarize(employees)
	if got.Total != 4 || got.Kontrak != 2 || got.Probation != 1 {
		t.Errorf("Summarize() = %+v, want total 4, kontrak 2, probation 1", got)
	}
	if len(got.Departments) != 0 {
		t.Errorf("Departments = %v, want none", got.Departments)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	if got.Total != 0 || got.Kontrak != 0 || got.Probation != 0 {
		t.Errorf("Summarize(nil) = %+v, want zero counts", got)
	}
	if len(got.Departments) != 0 {
		t.Errorf("Departments = %v, want none", got.Departments)
	}
}
