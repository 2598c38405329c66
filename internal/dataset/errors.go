package dataset

import (
	"errors"
	"fmt"
)

// Dataset names used in errors and logs.
const (
	Countries  = "countries"
	Currencies = "currencies"
)

// ErrDataFormat matches every FormatError via errors.Is.
var ErrDataFormat = errors.New("dataset: malformed data")

// ErrNotArray is the cause of a FormatError when the document is valid JSON but not an array.
var ErrNotArray = errors.New("top level is not an array")

// FormatError reports dataset text that cannot be decoded into the expected record shape.
// Record is the zero-based record position, or -1 when the whole document is unreadable.
type FormatError struct {
	Dataset string
	Record  int
	Err     error
}

// NewFormatError wraps err as a FormatError for the given dataset and record.
func NewFormatError(dataset string, record int, err error) *FormatError {
	return &FormatError{Dataset: dataset, Record: record, Err: err}
}

func (e *FormatError) Error() string {
	if e.Record < 0 {
		return fmt.Sprintf("dataset: malformed %s data: %v", e.Dataset, e.Err)
	}
	return fmt.Sprintf("dataset: malformed %s record %d: %v", e.Dataset, e.Record, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDataFormat) true for any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrDataFormat
}

// ValidCode reports whether s is exactly n ASCII letters.
func ValidCode(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
