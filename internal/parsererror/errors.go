// Package parsererror defines the error taxonomy for statement ingestion.
// Structural errors abort a single import and surface a user-facing message;
// row-level issues are skipped silently by the parser and never reach here.
package parsererror

import (
	"fmt"
	"strings"
)

// EmptyInputError indicates the statement text had fewer than two non-blank
// lines: a header row plus at least one data row are required.
type EmptyInputError struct {
	Lines int
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("statement is empty: need a header and at least one data row, got %d non-blank line(s)", e.Lines)
}

// MissingColumnsError indicates the header row did not contain all required
// columns (date, description, amount).
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("could not find required column(s): %s; check the statement format", strings.Join(e.Missing, ", "))
}

// UnsupportedFormatError indicates the input file is not a text statement
// (e.g. PDF or Excel exports).
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q: export the statement as CSV first", e.Extension)
}

// CategorizationError wraps a failure from the external categorization
// oracle: an empty or unusable response, or a result count mismatch. The
// categorizer fails open on it, so it reaches logs and the needs-review flag
// rather than aborting an import.
type CategorizationError struct {
	Strategy string
	Err      error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization via %s failed: %v", e.Strategy, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}
