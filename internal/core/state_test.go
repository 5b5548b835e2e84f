package core

import (
	"encoding/json"
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReduce_FilterChangesResetPage(t *testing.T) {
	base := NewState()
	base.Page = 3

	tests := []struct {
		name   string
		action Action
	}{
		{"department", SetDepartment{Department: "IT"}},
		{"status", SetStatus{Status: "Kontrak"}},
		{"sort", SetSort{Sort: SortDesc}},
		{"loaded", Loaded{Employees: sampleEmployees()}},
		{"deleted", Deleted{ID: "1"}},
		{"imported", Imported{Rows: []Employee{{ID: "1", Local: true}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(base, tt.action)
			if got.Page != 1 {
				t.Errorf("Page = %d, want 1", got.Page)
			}
			if base.Page != 3 {
				t.Error("Reduce modified its input state")
			}
		})
	}
}

func TestReduce_SetPage(t *testing.T) {
	var list []Employee
	for i := 0; i < 23; i++ {
		list = append(list, Employee{ID: ID(strconv.Itoa(i)), Name: "emp" + strconv.Itoa(i)})
	}
	loaded := Reduce(NewState(), Loaded{Employees: list})

	tests := []struct {
		name  string
		state State
		page  int
		want  int
	}{
		{"in range", loaded, 2, 2},
		{"last page", loaded, 3, 3},
		{"past the end", loaded, 99, 3},
		{"overflowing", loaded, math.MaxInt/PageSize + 2, 3},
		{"zero", loaded, 0, 1},
		{"negative", loaded, -4, 1},
		{"empty list", NewState(), 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.state, SetPage{Page: tt.page})
			if got.Page != tt.want {
				t.Errorf("Page = %d, want %d", got.Page, tt.want)
			}
			if v := got.View(); tt.state.Mounted && len(v.Rows) == 0 {
				t.Error("clamped page renders no rows")
			}
		})
	}
}

func TestReduce_Mounting(t *testing.T) {
	s := NewState()
	if s.Mounted {
		t.Fatal("new state is mounted")
	}

	s = Reduce(s, Loaded{Employees: sampleEmployees()})
	if !s.Mounted || len(s.Employees) != 5 {
		t.Fatalf("after Loaded: Mounted = %v, len = %d", s.Mounted, len(s.Employees))
	}

	s = Reduce(s, Invalidated{})
	if s.Mounted {
		t.Error("Invalidated left the state mounted")
	}

	s = Reduce(s, FetchFailed{})
	if !s.Mounted {
		t.Error("FetchFailed did not mount the state")
	}
	if len(s.Employees) != 5 {
		t.Errorf("FetchFailed changed the list: len = %d", len(s.Employees))
	}
}

func TestReduce_DeletedMatchesOrigin(t *testing.T) {
	s := Reduce(NewState(), Loaded{Employees: []Employee{{ID: "1", Name: "stored"}}})
	s = Reduce(s, Imported{Rows: []Employee{{ID: "1", Name: "imported", Local: true}}})

	got := Reduce(s, Deleted{ID: "1", Local: true})
	if diff := cmp.Diff([]string{"stored"}, names(got.Employees)); diff != "" {
		t.Errorf("after deleting imported row (-want +got):\n%s", diff)
	}

	got = Reduce(s, Deleted{ID: "1"})
	if diff := cmp.Diff([]string{"imported"}, names(got.Employees)); diff != "" {
		t.Errorf("after deleting stored row (-want +got):\n%s", diff)
	}
}

func TestReduce_DeletedRemovesAllMatches(t *testing.T) {
	s := Reduce(NewState(), Loaded{Employees: []Employee{{ID: "7"}, {ID: "8"}, {ID: "7"}}})
	got := Reduce(s, Deleted{ID: "7"})
	if len(got.Employees) != 1 || got.Employees[0].ID != "8" {
		t.Errorf("Employees = %+v, want only id 8", got.Employees)
	}
}

func TestReduce_ImportedAppends(t *testing.T) {
	s := Reduce(NewState(), Loaded{Employees: []Employee{{ID: "1", Name: "a"}}})
	s = Reduce(s, Imported{Rows: []Employee{{ID: "1", Name: "b", Local: true}, {ID: "2", Name: "c", Local: true}}})
	if diff := cmp.Diff([]string{"a", "b", "c"}, names(s.Employees)); diff != "" {
		t.Errorf("Imported mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_Notice(t *testing.T) {
	s := Reduce(NewState(), Notify{Message: SubmittedNotice})
	if s.Notice != SubmittedNotice {
		t.Errorf("Notice = %q, want %q", s.Notice, SubmittedNotice)
	}
	if s = Reduce(s, ClearNotice{}); s.Notice != "" {
		t.Errorf("Notice after ClearNotice = %q", s.Notice)
	}
}

func TestState_JSONKeepsLocalFlag(t *testing.T) {
	s := Reduce(NewState(), Loaded{Employees: []Employee{{ID: "1", Name: "stored"}}})
	s = Reduce(s, Imported{Rows: []Employee{{ID: "1", Name: "imported", Local: true}}})
	s = Reduce(s, SetStatus{Status: "Kontrak"})

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got State
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("state changed through JSON (-want +got):\n%s", diff)
	}
}

func TestState_Find(t *testing.T) {
	s := Reduce(NewState(), Imported{Rows: []Employee{{ID: "3", Name: "x", Local: true}}})
	if _, ok := s.Find("3", false); ok {
		t.Error("Find matched an imported row as stored")
	}
	if e, ok := s.Find("3", true); !ok || e.Name != "x" {
		t.Errorf("Find(3, local) = %+v, %v", e, ok)
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{`"abc"`, "abc"},
		{`12`, "12"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var id ID
		if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
			t.Errorf("Unmarshal(%s) error = %v", tt.in, err)
			continue
		}
		if id != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, id, tt.want)
		}
	}
}
