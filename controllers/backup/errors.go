package backupcontroller

import "fmt"

// FormatError means the uploaded file is not a usable workbook. It is
// always raised before any mutation, so nothing needs rolling back.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return e.Reason }

// ValidationError means a decoded row failed a required-field check.
// Line is the 1-based position among the sheet's data rows.
type ValidationError struct {
	Line   int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}
