package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"macro-averages/models"
	"macro-averages/utils"
)

// verdict tags the outcome of validating one row.
type verdict int

const (
	rowValid verdict = iota
	rowInvalid
)

// rowResult is the outcome of validating one raw row. When the verdict is
// rowInvalid, field names the first column that failed and row is empty.
type rowResult struct {
	verdict verdict
	row     models.CleanRow
	field   string
}

// Cleaner turns raw rows into rows of one year with numeric values.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean keeps the rows of ds dated in year and converts every column but
// Date to float64. A row with any empty or unparseable value is dropped.
func (c *Cleaner) Clean(ds *models.RawDataset, year string) (*models.CleanDataset, error) {
	if !isYear(year) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidYear, year)
	}
	if ds == nil || !hasField(ds.Fields, models.DateField) {
		return nil, ErrMissingDate
	}

	inYear := make([]models.RawRow, 0, len(ds.Rows))
	for _, r := range ds.Rows {
		if date := r[models.DateField]; len(date) >= 4 && date[:4] == year {
			inYear = append(inYear, r)
		}
	}
	if len(inYear) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoEntriesForYear, year)
	}

	out := &models.CleanDataset{
		Source: ds.Source,
		Fields: numericFields(ds.Fields),
		Rows:   make([]models.CleanRow, 0, len(inYear)),
	}
	for _, r := range inYear {
		res := validateRow(r, out.Fields)
		switch res.verdict {
		case rowValid:
			out.Rows = append(out.Rows, res.row)
		case rowInvalid:
			c.logger.Debug("[cleaner] %s: dropping %s (bad %q value %q)",
				ds.Source, r[models.DateField], res.field, r[res.field])
		}
	}

	if len(out.Rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoValidRows, quoteFields(ds.Fields))
	}

	c.logger.Info("[cleaner] %s: %d rows in %s → %d clean (dropped %d)",
		ds.Source, len(inYear), year, len(out.Rows), len(inYear)-len(out.Rows))
	return out, nil
}

// validateRow checks the date and every numeric column of r.
func validateRow(r models.RawRow, numeric []string) rowResult {
	date := r[models.DateField]
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return rowResult{verdict: rowInvalid, field: models.DateField}
	}

	values := make(map[string]float64, len(numeric))
	for _, field := range numeric {
		v, ok := parseNumber(r[field])
		if !ok {
			return rowResult{verdict: rowInvalid, field: field}
		}
		values[field] = v
	}
	return rowResult{
		verdict: rowValid,
		row:     models.CleanRow{Date: date, Values: values},
	}
}

// parseNumber accepts plain decimals with either '.' or ',' as the decimal
// separator, e.g. "74,5" or "1588".
func parseNumber(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func hasField(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}

func numericFields(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != models.DateField {
			out = append(out, f)
		}
	}
	return out
}

func quoteFields(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = strconv.Quote(f)
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}
