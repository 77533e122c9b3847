package services

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"macro-averages/models"
)

func macrosClean() *models.CleanDataset {
	return &models.CleanDataset{
		Source: "test_intake.csv",
		Fields: []string{"Calories", "Protein (g)", "Fat (g)", "Carbs (g)"},
		Rows: []models.CleanRow{
			{Date: "2023-01-02", Values: macros(1588, 203, 39, 105)},
			{Date: "2023-01-29", Values: macros(1986, 209, 41, 190)},
			{Date: "2023-01-30", Values: macros(1832, 215, 48, 130)},
			{Date: "2023-01-31", Values: macros(1836, 215, 43, 141)},
			{Date: "2023-02-01", Values: macros(2086, 203, 54, 189)},
			{Date: "2023-02-02", Values: macros(1888, 184, 61, 144)},
		},
	}
}

func TestAverageMacros(t *testing.T) {
	got, err := NewAverager(newTestLogger()).Average(macrosClean())
	if err != nil {
		t.Fatalf("Average: %v", err)
	}

	want := models.MonthlyAverages{
		"Calories":    {"January": 1810.5, "February": 1987.0},
		"Protein (g)": {"January": 210.5, "February": 193.5},
		"Fat (g)":     {"January": 42.8, "February": 57.5},
		"Carbs (g)":   {"January": 141.5, "February": 166.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Average mismatch (-want +got):\n%s", diff)
	}
}

func TestAverageWeight(t *testing.T) {
	ds := &models.CleanDataset{
		Source: "test_weight.csv",
		Fields: []string{"Weight"},
		Rows: []models.CleanRow{
			{Date: "2023-03-27", Values: map[string]float64{"Weight": 74.5}},
			{Date: "2023-03-28", Values: map[string]float64{"Weight": 73.6}},
			{Date: "2023-04-01", Values: map[string]float64{"Weight": 74.1}},
			{Date: "2023-04-02", Values: map[string]float64{"Weight": 74.3}},
		},
	}
	got, err := NewAverager(newTestLogger()).Average(ds)
	if err != nil {
		t.Fatalf("Average: %v", err)
	}

	want := models.MonthlyAverages{"Weight": {"March": 74.0, "April": 74.2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Average mismatch (-want +got):\n%s", diff)
	}
}

func TestAverageMonthsMatchInput(t *testing.T) {
	ds := &models.CleanDataset{
		Source: "spread.csv",
		Fields: []string{"Weight"},
		Rows: []models.CleanRow{
			{Date: "2023-12-31", Values: map[string]float64{"Weight": 70}},
			{Date: "2023-06-15", Values: map[string]float64{"Weight": 71}},
			{Date: "2023-06-16", Values: map[string]float64{"Weight": 72}},
			{Date: "2023-09-01", Values: map[string]float64{"Weight": 73.33}},
		},
	}
	got, err := NewAverager(newTestLogger()).Average(ds)
	if err != nil {
		t.Fatalf("Average: %v", err)
	}
	want := map[string]float64{"June": 71.5, "September": 73.3, "December": 70}
	if diff := cmp.Diff(want, got["Weight"]); diff != "" {
		t.Errorf("months mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got["Date"]; ok {
		t.Error("Date must not be averaged")
	}
}

func TestAverageBadDate(t *testing.T) {
	ds := &models.CleanDataset{
		Source: "bad.csv",
		Fields: []string{"Weight"},
		Rows:   []models.CleanRow{{Date: "2023/01/01", Values: map[string]float64{"Weight": 70}}},
	}
	if _, err := NewAverager(newTestLogger()).Average(ds); err == nil {
		t.Error("expected error for unparseable date")
	}
}

// permutations returns every ordering of xs.
func permutations(xs []float64) [][]float64 {
	if len(xs) <= 1 {
		return [][]float64{append([]float64(nil), xs...)}
	}
	var out [][]float64
	for i := range xs {
		rest := make([]float64, 0, len(xs)-1)
		rest = append(rest, xs[:i]...)
		rest = append(rest, xs[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]float64{xs[i]}, p...))
		}
	}
	return out
}

func TestAverageIgnoresRowOrder(t *testing.T) {
	tests := []struct {
		weights []float64
		want    float64
	}{
		{[]float64{87.4, 83.9, 72.3, 80.6}, 81.0},
		{[]float64{82.3, 86.4, 60.0, 81.1}, 77.5},
		{[]float64{74.1, 74.3}, 74.2},
	}

	for _, tt := range tests {
		for _, order := range permutations(tt.weights) {
			ds := &models.CleanDataset{Source: "weight.csv", Fields: []string{"Weight"}}
			for i, w := range order {
				ds.Rows = append(ds.Rows, models.CleanRow{
					Date:   fmt.Sprintf("2023-05-%02d", i+1),
					Values: map[string]float64{"Weight": w},
				})
			}
			got, err := NewAverager(newTestLogger()).Average(ds)
			if err != nil {
				t.Fatalf("Average(%v): %v", order, err)
			}
			if got["Weight"]["May"] != tt.want {
				t.Errorf("Average(%v) = %v; want %v", order, got["Weight"]["May"], tt.want)
			}
		}
	}
}

func TestExactMean(t *testing.T) {
	if got, err := exactMean([]float64{0.1, 0.2, 0.3}); err != nil || got != 0.2 {
		t.Errorf("exactMean(0.1, 0.2, 0.3) = %v, %v; want 0.2", got, err)
	}
	if _, err := exactMean(nil); err == nil {
		t.Error("expected error for no values")
	}
	if _, err := exactMean([]float64{1, math.Inf(1)}); err == nil {
		t.Error("expected error for infinite value")
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{74.05, 74.0},
		{42.75, 42.8},
		{1810.5, 1810.5},
		{57.49, 57.5},
		{-1.25, -1.2},
		{0, 0},
	}
	for _, tt := range tests {
		if got := round1(tt.in); got != tt.want {
			t.Errorf("round1(%v) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestAveragerPrint(t *testing.T) {
	var buf bytes.Buffer
	a := NewAverager(newTestLogger())
	a.out = &buf

	a.Print("MONTHLY AVERAGES 2023", []string{"Weight", "Missing"}, models.MonthlyAverages{
		"Weight": {"April": 74.2, "March": 74.0},
	})

	out := buf.String()
	for _, want := range []string{"MONTHLY AVERAGES 2023", "Weight", "74.0", "74.2", "No data"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "March") > strings.Index(out, "April") {
		t.Errorf("months not in calendar order:\n%s", out)
	}
}
