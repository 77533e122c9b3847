package models

import "time"

// DateField is the column every dataset must carry. Its value is an ISO date
// (YYYY-MM-DD) and it is never coerced to a number.
const DateField = "Date"

// DateLayout is the layout of the DateField values.
const DateLayout = "2006-01-02"

// Required columns of the two input files.
var (
	WeightFields = []string{DateField, "Weight"}
	MacrosFields = []string{DateField, "Calories", "Protein (g)", "Fat (g)", "Carbs (g)"}
)

// RawRow holds one CSV record projected down to the requested columns,
// values untouched.
type RawRow map[string]string

// RawDataset is what the collector reads from one file.
type RawDataset struct {
	Source string   // base name of the file the rows came from
	Fields []string // requested columns, in request order
	Rows   []RawRow
}

// CleanRow is a RawRow restricted to the target year with every non-date
// column parsed as a number.
type CleanRow struct {
	Date   string
	Values map[string]float64
}

// CleanDataset is the cleaner's output for one RawDataset.
type CleanDataset struct {
	Source string
	Fields []string // numeric columns only, DateField excluded
	Rows   []CleanRow
}

// MonthlyAverages maps a field name to its per-month averages, keyed by the
// full English month name.
type MonthlyAverages map[string]map[string]float64

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the full English name of m, independent of locale.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// MonthIndex returns the position (0-11) of a full month name, or -1.
func MonthIndex(name string) int {
	for i, n := range monthNames {
		if n == name {
			return i
		}
	}
	return -1
}

// SortedMonths returns the months of one field's averages in calendar order.
func SortedMonths(byMonth map[string]float64) []string {
	months := make([]string, 0, len(byMonth))
	for _, name := range monthNames {
		if _, ok := byMonth[name]; ok {
			months = append(months, name)
		}
	}
	return months
}
