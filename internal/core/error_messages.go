// Package core provides the employee administration logic.
//
// # Error Codes Reference
//
// Technical errors are mapped to user-facing messages with a code that
// users can quote to support.
//
// # Record Store Errors (STORE001-STORE099)
//
//	STORE001 - Unable to reach the employee service
//	           Patterns: "connection refused"
//	STORE002 - Employee service address could not be resolved
//	           Patterns: "no such host"
//	STORE003 - Employee not found
//	           Patterns: "employee not found"
//	STORE004 - The employee service rejected the request
//	           Patterns: "unexpected status"
//	STORE005 - The employee service sent an unreadable response
//	           Patterns: "invalid response"
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - Too many imports in progress
//	         Patterns: "too many concurrent imports"
//	IMP002 - Imported rows cannot be edited
//	         Patterns: "imported record is not stored"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File exceeds the maximum size
//	          Patterns: "file too large", "request body too large"
//	FILE002 - No file was selected
//	          Patterns: "no file provided"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request was cancelled
//	         Patterns: "context canceled"
//	REQ002 - Request timed out
//	         Patterns: "context deadline exceeded", "timeout"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
// Anything else maps to ERR000; check the logs for the technical error.
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Record Store
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the employee service",
			Action:  "Please try again in a few moments",
			Code:    "STORE001",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "Employee service address could not be resolved",
			Action:  "Check the RECORD_STORE_URL setting",
			Code:    "STORE002",
		},
	},
	{
		pattern: "employee not found",
		msg: UserMessage{
			Message: "Employee not found",
			Action:  "The record may have been deleted. Refresh the list",
			Code:    "STORE003",
		},
	},
	{
		pattern: "unexpected status",
		msg: UserMessage{
			Message: "The employee service rejected the request",
			Action:  "Check the form values and try again",
			Code:    "STORE004",
		},
	},
	{
		pattern: "invalid response",
		msg: UserMessage{
			Message: "The employee service sent an unreadable response",
			Action:  "Please try again or contact support",
			Code:    "STORE005",
		},
	},

	// Import
	{
		pattern: "too many concurrent imports",
		msg: UserMessage{
			Message: "Too many imports in progress",
			Action:  "Please wait a moment and try again",
			Code:    "IMP001",
		},
	},
	{
		pattern: "imported record is not stored",
		msg: UserMessage{
			Message: "Imported rows cannot be edited",
			Action:  "Add the employee through the form to store it",
			Code:    "IMP002",
		},
	},

	// Files
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to import",
			Code:    "FILE002",
		},
	},

	// Requests
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},

	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Unknown errors map to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a specific pattern rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
