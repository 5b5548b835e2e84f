package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ID is the Record Store's opaque identifier for an employee.
// The store may hand out numbers or strings; both decode into an ID.
type ID string

// UnmarshalJSON accepts a JSON string or a JSON number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("employee id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("employee id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier as used in store URLs.
func (id ID) String() string { return string(id) }

// Department is the organisational unit an employee belongs to.
type Department string

const (
	DepartmentIT      Department = "IT"
	DepartmentFinance Department = "Finance"
	DepartmentHR      Department = "HR"
)

// Departments lists the values offered on the create/edit form.
var Departments = []Department{DepartmentIT, DepartmentFinance, DepartmentHR}

// Status is the employment status.
type Status string

const (
	StatusTetap     Status = "Tetap"
	StatusKontrak   Status = "Kontrak"
	StatusProbation Status = "Probation"
)

// Statuses lists the values offered on the create/edit form.
var Statuses = []Status{StatusTetap, StatusKontrak, StatusProbation}

// DateJoinedLayout matches the timestamps the browser form produced (Date.toISOString).
const DateJoinedLayout = "2006-01-02T15:04:05.000Z"

// Employee is a single record as exchanged with the Record Store.
type Employee struct {
	ID         ID         `json:"id"`
	Name       string     `json:"name"`
	Number     string     `json:"number"`
	Position   string     `json:"position"`
	Department Department `json:"department"`
	DateJoined string     `json:"dateJoined"`
	Status     Status     `json:"status"`
	Photo      string     `json:"photo"`

	// Local marks rows that came from a CSV import and never reached the store.
	Local bool `json:"-"`
}

// Input carries the editable fields of the create/edit form.
type Input struct {
	Name       string
	Number     string
	Position   string
	Department string `validate:"required,oneof=IT Finance HR"`
	DateJoined string
	Status     string `validate:"required,oneof=Tetap Kontrak Probation"`
	Photo      string
}

// DefaultInput returns the values a fresh create form starts with.
func DefaultInput(now time.Time) Input {
	return Input{
		Department: string(DepartmentIT),
		Status:     string(StatusTetap),
		DateJoined: now.UTC().Format(DateJoinedLayout),
	}
}

// InputFrom prefills an edit form from an existing record.
// Empty department and status fall back to the form defaults.
func InputFrom(e Employee, now time.Time) Input {
	in := DefaultInput(now)
	in.Name = e.Name
	in.Number = e.Number
	in.Position = e.Position
	if e.Department != "" {
		in.Department = string(e.Department)
	}
	if e.DateJoined != "" {
		in.DateJoined = e.DateJoined
	}
	if e.Status != "" {
		in.Status = string(e.Status)
	}
	in.Photo = e.Photo
	return in
}

// CreateRequest is the POST /employees body.
type CreateRequest struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	DateJoined string `json:"dateJoined"`
	Photo      string `json:"photo"`
	Status     string `json:"status"`
	Number     string `json:"number"`
}

// UpdateRequest is the PUT /employees/{id} body. The employee number is
// immutable once a record exists, so it is never sent.
type UpdateRequest struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	DateJoined string `json:"dateJoined"`
	Photo      string `json:"photo"`
	Status     string `json:"status"`
}

// CreateRequest converts form input into a store create body.
func (in Input) CreateRequest(now time.Time) CreateRequest {
	return CreateRequest{
		Name:       in.Name,
		Position:   in.Position,
		Department: in.Department,
		DateJoined: in.dateJoined(now),
		Photo:      in.Photo,
		Status:     in.Status,
		Number:     in.Number,
	}
}

// UpdateRequest converts form input into a store update body.
func (in Input) UpdateRequest(now time.Time) UpdateRequest {
	return UpdateRequest{
		Name:       in.Name,
		Position:   in.Position,
		Department: in.Department,
		DateJoined: in.dateJoined(now),
		Photo:      in.Photo,
		Status:     in.Status,
	}
}

func (in Input) dateJoined(now time.Time) string {
	if in.DateJoined == "" {
		return now.UTC().Format(DateJoinedLayout)
	}
	return in.DateJoined
}

// localID builds the identifier assigned to an imported row.
func localID(lineIndex int) ID {
	return ID(strconv.Itoa(lineIndex + 1))
}
