package inventory

// error_messages.go maps technical errors to user-facing messages with a
// support code. Codes are grouped by category:
//
//	FILE001-FILE099  file size, format and decoding problems
//	IMP001-IMP099    import gate and pipeline problems
//	UPS001-UPS099    authoritative store round trips
//	REC001-REC099    responses that cannot be applied locally
//	REQ001-REQ099    request and session problems
//	RATE001          request throttling
//	ERR000           fallback
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns must precede general ones.

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
	// File errors
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file has no item rows",
			Action:  "Add a header row and at least one item row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "unknown file format",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Upload a .csv file or an .xlsx workbook",
			Code:    "FILE006",
		},
	},
	{
		pattern: "decode delimited-text",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file is comma-separated with a header row",
			Code:    "FILE002",
		},
	},
	{
		pattern: "decode spreadsheet-binary",
		msg: UserMessage{
			Message: "Workbook could not be read",
			Action:  "Save the file as .xlsx and try again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a file to upload",
			Code:    "FILE004",
		},
	},

	// Import errors
	{
		pattern: "import already in progress",
		msg: UserMessage{
			Message: "Another import is still running for this household",
			Action:  "Wait for it to finish and try again",
			Code:    "IMP001",
		},
	},

	// Reconcile errors
	{
		pattern: "reconcile item",
		msg: UserMessage{
			Message: "The inventory service sent an unexpected answer",
			Action:  "Refresh the inventory list to see the current state",
			Code:    "REC001",
		},
	},

	// Upstream errors
	{
		pattern: "unauthorized",
		msg: UserMessage{
			Message: "Your session is not valid",
			Action:  "Log in again",
			Code:    "UPS003",
		},
	},
	{
		pattern: "forbidden",
		msg: UserMessage{
			Message: "You do not have access to this household",
			Action:  "Check the household address on your account",
			Code:    "UPS004",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the inventory service",
			Action:  "Please try again in a few moments",
			Code:    "UPS001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The inventory service took too long to respond",
			Action:  "Check your connection and try again",
			Code:    "UPS002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The inventory service took too long to respond",
			Action:  "Check your connection and try again",
			Code:    "UPS002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPS005",
		},
	},
	{
		pattern: "upstream",
		msg: UserMessage{
			Message: "The inventory service rejected the request",
			Action:  "Nothing was changed. Please try again",
			Code:    "UPS000",
		},
	},

	// Request errors
	{
		pattern: "item not found",
		msg: UserMessage{
			Message: "Item not found",
			Action:  "Refresh the inventory list",
			Code:    "REQ001",
		},
	},
	{
		pattern: "missing session",
		msg: UserMessage{
			Message: "You are not logged in",
			Action:  "Log in and try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "invalid item",
		msg: UserMessage{
			Message: "Item needs a name and a quantity of zero or more",
			Action:  "Correct the item and save again",
			Code:    "REQ003",
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
// Returns the ERR000 fallback when no pattern matches.
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

// FormatUserError creates a display string: "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
