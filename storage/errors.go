package storage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoFields is returned when Collect is asked for no columns at all.
	ErrNoFields = errors.New("please provide a list of fields")
	// ErrMissingFields is matched by every *MissingFieldsError.
	ErrMissingFields = errors.New("field(s) missing/incorrect")
	// ErrNoData is returned when a file has a header but no records.
	ErrNoData = errors.New("no data rows found")
)

// MissingFieldsError names every requested column absent from a file header.
type MissingFieldsError struct {
	File   string
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	quoted := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	return fmt.Sprintf("(%s) field(s) missing/incorrect in: %q", strings.Join(quoted, ", "), e.File)
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}
