package services

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"macro-averages/models"
	"macro-averages/utils"
)

var (
	banner  = color.New(color.FgMagenta, color.Bold)
	heading = color.New(color.FgYellow, color.Bold)
	figure  = color.New(color.FgGreen, color.Bold)
)

// Averager computes per-month means of clean datasets.
type Averager struct {
	logger *utils.Logger
	out    io.Writer
}

// NewAverager creates an Averager that prints summaries to stdout.
func NewAverager(logger *utils.Logger) *Averager {
	return &Averager{logger: logger, out: os.Stdout}
}

// Average groups every numeric field of ds by calendar month and returns the
// mean of each group rounded to one decimal place.
func (a *Averager) Average(ds *models.CleanDataset) (models.MonthlyAverages, error) {
	byMonth := make(map[string]map[string][]float64, len(ds.Fields))
	for _, field := range ds.Fields {
		byMonth[field] = make(map[string][]float64)
	}

	for _, row := range ds.Rows {
		day, err := time.Parse(models.DateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("averager: %s: %w", ds.Source, err)
		}
		month := models.MonthName(day.Month())
		for _, field := range ds.Fields {
			byMonth[field][month] = append(byMonth[field][month], row.Values[field])
		}
	}

	averages := make(models.MonthlyAverages, len(ds.Fields))
	for field, groups := range byMonth {
		averages[field] = make(map[string]float64, len(groups))
		for month, values := range groups {
			mean, err := exactMean(values)
			if err != nil {
				return nil, fmt.Errorf("averager: %s %s %s: %w", ds.Source, field, month, err)
			}
			averages[field][month] = round1(mean)
		}
	}

	a.logger.Debug("[averager] %s: %d fields over %d rows", ds.Source, len(ds.Fields), len(ds.Rows))
	return averages, nil
}

// Print writes a per-month table of averages for fields, months in calendar
// order.
func (a *Averager) Print(title string, fields []string, averages models.MonthlyAverages) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(a.out, "\n%s\n", banner.Sprint(sep))
	fmt.Fprintf(a.out, "%s\n", banner.Sprint("  "+title))
	fmt.Fprintf(a.out, "%s\n\n", banner.Sprint(sep))

	for _, field := range fields {
		fmt.Fprintf(a.out, "%s\n", heading.Sprint("  "+field))
		fmt.Fprintf(a.out, "  %s\n", thin)
		byMonth, ok := averages[field]
		if !ok || len(byMonth) == 0 {
			fmt.Fprintf(a.out, "  No data\n\n")
			continue
		}
		for _, month := range models.SortedMonths(byMonth) {
			fmt.Fprintf(a.out, "  %-12s %s\n", month, figure.Sprint(strconv.FormatFloat(byMonth[month], 'f', 1, 64)))
		}
		fmt.Fprintln(a.out)
	}
}

// exactMean sums values without intermediate rounding, so the result does
// not depend on row order.
func exactMean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.New("mean of no values")
	}
	sum := new(big.Rat)
	for _, v := range values {
		r := new(big.Rat)
		if r.SetFloat64(v) == nil {
			return 0, fmt.Errorf("mean of non-finite value %v", v)
		}
		sum.Add(sum, r)
	}
	mean, _ := sum.Quo(sum, new(big.Rat).SetInt64(int64(len(values)))).Float64()
	return mean, nil
}

// round1 rounds to one decimal place based on the exact binary value, so
// 74.05 (stored as 74.0499…) becomes 74.0 and the exact tie 42.75 becomes 42.8.
func round1(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}
