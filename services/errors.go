package services

import "errors"

var (
	// ErrInvalidYear is returned when the target year is not four digits.
	ErrInvalidYear = errors.New("year must be in YYYY format")
	// ErrMissingDate is returned when a dataset has no Date column.
	ErrMissingDate = errors.New(`missing required key "Date"`)
	// ErrNoEntriesForYear is returned when no row falls in the target year.
	ErrNoEntriesForYear = errors.New("data contains no entries for")
	// ErrNoValidRows is returned when every row of the year was rejected.
	ErrNoValidRows = errors.New("data input contains no values for some or all of the following")
)
