package core

import "strings"

// importFieldCount is the number of positional fields an import row carries:
// name, number, position, department, dateJoined, status, photo.
const importFieldCount = 7

// ImportResult is the outcome of parsing an uploaded CSV file.
type ImportResult struct {
	Rows []Employee
	// Malformed lists 1-based line numbers whose field count was not 7.
	// Those rows are still present in Rows.
	Malformed []int
}

// ParseImport turns raw file text into employee rows.
//
// Lines are split on "\n" and fields on ",". Quoting is not understood, so a
// quoted value containing a comma is split across two fields. Every line,
// including blank ones, yields a row; fields missing from short lines are
// left empty. Row i gets the identifier i+1 and is marked Local.
func ParseImport(text string) ImportResult {
	lines := strings.Split(text, "\n")
	res := ImportResult{Rows: make([]Employee, 0, len(lines))}

	for i, line := range lines {
		fields := strings.Split(line, ",")
		if len(fields) != importFieldCount {
			res.Malformed = append(res.Malformed, i+1)
		}
		res.Rows = append(res.Rows, Employee{
			ID:         localID(i),
			Name:       field(fields, 0),
			Number:     field(fields, 1),
			Position:   field(fields, 2),
			Department: Department(field(fields, 3)),
			DateJoined: field(fields, 4),
			Status:     Status(field(fields, 5)),
			Photo:      field(fields, 6),
			Local:      true,
		})
	}
	return res
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
