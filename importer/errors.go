package importer

import (
	"fmt"
	"strings"
)

// UnreadableFileError means the input could not be decoded as a spreadsheet
// at all. Nothing was imported.
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("unreadable spreadsheet %s: %v", e.Path, e.Err)
}

func (e *UnreadableFileError) Unwrap() error {
	return e.Err
}

// HeaderNotFoundError means no row inside the scan window looked like a
// header row. The whole import is aborted before any row processing.
type HeaderNotFoundError struct {
	RowsScanned int
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("no header row found in the first %d rows", e.RowsScanned)
}

// MissingRequiredColumnsError means a header row was found but mandatory
// logical fields could not be resolved to any column. The header row is
// echoed so the operator can see what the file actually contains.
type MissingRequiredColumnsError struct {
	Missing []Field
	Header  []string
}

func (e *MissingRequiredColumnsError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, field := range e.Missing {
		names = append(names, string(field))
	}
	return fmt.Sprintf(
		"required columns missing: %s (header row: %s)",
		strings.Join(names, ", "),
		strings.Join(e.Header, " | "),
	)
}

// NoValidRecordsError means every data row was dropped by the validity
// checks; zero rows met the minimum bar of a name/ID plus a positive amount.
type NoValidRecordsError struct {
	RowsConsidered int
}

func (e *NoValidRecordsError) Error() string {
	return fmt.Sprintf(
		"no valid payroll rows found: %d rows considered, none had a name or RUT together with a positive amount",
		e.RowsConsidered,
	)
}
