package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "connection refused maps correctly",
			err:         errors.New(`Get "http://localhost:3000/employees": dial tcp 127.0.0.1:3000: connect: connection refused`),
			wantCode:    "STORE001",
			wantMessage: "Unable to reach the employee service",
		},
		{
			name:        "unknown host maps correctly",
			err:         errors.New("dial tcp: lookup store.invalid: no such host"),
			wantCode:    "STORE002",
			wantMessage: "Employee service address could not be resolved",
		},
		{
			name:        "wrapped not found maps correctly",
			err:         fmt.Errorf("get employee 7: %w", ErrNotFound),
			wantCode:    "STORE003",
			wantMessage: "Employee not found",
		},
		{
			name:        "unexpected status maps correctly",
			err:         errors.New("create employee: unexpected status 500 from POST /employees"),
			wantCode:    "STORE004",
			wantMessage: "The employee service rejected the request",
		},
		{
			name:        "local record maps correctly",
			err:         ErrLocalRecord,
			wantCode:    "IMP002",
			wantMessage: "Imported rows cannot be edited",
		},
		{
			name:        "too many imports maps correctly",
			err:         ErrTooManyImports,
			wantCode:    "IMP001",
			wantMessage: "Too many imports in progress",
		},
		{
			name:        "file too large maps correctly",
			err:         fmt.Errorf("%w: limit is 10 bytes", ErrFileTooLarge),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the maximum size",
		},
		{
			name:        "deadline maps to timeout",
			err:         fmt.Errorf("fetch employees: %w", context.DeadlineExceeded),
			wantCode:    "REQ002",
			wantMessage: "Request timed out",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("CONNECTION REFUSED"),
			wantCode:    "STORE001",
			wantMessage: "Unable to reach the employee service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrNoFile)

	expected := "No file was selected (Code: FILE002). Please select a CSV file to import"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error is not user facing", err: nil, want: false},
		{name: "known error is user facing", err: ErrNotFound, want: true},
		{name: "unknown error is not user facing", err: errors.New("random internal error xyz"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
