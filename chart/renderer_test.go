package chart

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"macro-averages/models"
	"macro-averages/utils"
)

func weightAvg() models.MonthlyAverages {
	return models.MonthlyAverages{"Weight": {"March": 74.0, "April": 74.2}}
}

func macrosAvg() models.MonthlyAverages {
	return models.MonthlyAverages{
		"Calories":    {"January": 1810.5, "February": 1987.0},
		"Protein (g)": {"January": 210.5, "February": 193.5},
		"Fat (g)":     {"January": 42.8, "February": 57.5},
		"Carbs (g)":   {"January": 141.5, "February": 166.5},
	}
}

func TestRenderSwappedTables(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, utils.Discard())

	_, err := r.Render(macrosAvg(), weightAvg(), "2023")
	if !errors.Is(err, ErrTableMismatch) {
		t.Fatalf("got %v, want ErrTableMismatch", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files after failure, found %d", len(entries))
	}
}

func TestRenderMissingMacroField(t *testing.T) {
	m := macrosAvg()
	delete(m, "Fat (g)")
	_, err := NewRenderer(t.TempDir(), utils.Discard()).Render(weightAvg(), m, "2023")
	if !errors.Is(err, ErrTableMismatch) {
		t.Errorf("got %v, want ErrTableMismatch", err)
	}
}

func TestRenderWritesPNG(t *testing.T) {
	dir := t.TempDir()
	msg, err := NewRenderer(dir, utils.Discard()).Render(weightAvg(), macrosAvg(), "2023")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	path, err := filepath.Abs(filepath.Join(dir, "averages_2023.png"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "File saved: " + path; msg != want {
		t.Errorf("message: got %q, want %q", msg, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != figureWidth || b.Dy() != figureHeight {
		t.Errorf("size: got %dx%d, want %dx%d", b.Dx(), b.Dy(), figureWidth, figureHeight)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the png in %s, found %d entries", dir, len(entries))
	}
}

func TestRenderSingleMonth(t *testing.T) {
	tests := []struct {
		name   string
		weight models.MonthlyAverages
		macros models.MonthlyAverages
	}{
		{
			name:   "one month each",
			weight: models.MonthlyAverages{"Weight": {"May": 81.0}},
			macros: models.MonthlyAverages{
				"Calories":    {"May": 2000},
				"Protein (g)": {"May": 150},
				"Fat (g)":     {"May": 60},
				"Carbs (g)":   {"May": 200},
			},
		},
		{
			name:   "flat weight",
			weight: models.MonthlyAverages{"Weight": {"January": 80.0, "February": 80.0, "March": 80.0}},
			macros: macrosAvg(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if _, err := NewRenderer(dir, utils.Discard()).Render(tt.weight, tt.macros, "2023"); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if _, err := os.Stat(filepath.Join(dir, "averages_2023.png")); err != nil {
				t.Errorf("output missing: %v", err)
			}
		})
	}
}

func TestRenderFullYear(t *testing.T) {
	weight := models.MonthlyAverages{"Weight": {}}
	macros := models.MonthlyAverages{"Calories": {}, "Protein (g)": {}, "Fat (g)": {}, "Carbs (g)": {}}
	for i := 1; i <= 12; i++ {
		m := models.MonthName(time.Month(i))
		weight["Weight"][m] = 80 + float64(i)/10
		macros["Calories"][m] = 1800 + float64(i)
		macros["Protein (g)"][m] = 150
		macros["Fat (g)"][m] = 60
		macros["Carbs (g)"][m] = 180
	}
	if _, err := NewRenderer(t.TempDir(), utils.Discard()).Render(weight, macros, "2023"); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestMacroBars(t *testing.T) {
	bars, labels, lo, hi := macroBars(macrosAvg())

	// two groups of four plus one spacer
	if len(bars) != 9 {
		t.Fatalf("bars: got %d, want 9", len(bars))
	}

	var names []string
	var values []float64
	for _, b := range bars {
		names = append(names, b.Label)
		values = append(values, b.Value)
	}
	wantNames := []string{"January", "", "", "", "", "February", "", "", ""}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Errorf("month labels mismatch (-want +got):\n%s", diff)
	}
	wantValues := []float64{1810.5 * caloriesScale, 210.5, 42.8, 141.5, 0, 1987.0 * caloriesScale, 193.5, 57.5, 166.5}
	if diff := cmp.Diff(wantValues, values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if lo != 0 || hi != 1987.0*caloriesScale {
		t.Errorf("range: got [%v, %v], want [0, %v]", lo, hi, 1987.0*caloriesScale)
	}

	var texts []string
	for _, l := range labels {
		texts = append(texts, l.text)
	}
	// calories are labelled unscaled
	wantTexts := []string{"1810", "210", "42", "141", "1987", "193", "57", "166"}
	if diff := cmp.Diff(wantTexts, texts); diff != "" {
		t.Errorf("value labels mismatch (-want +got):\n%s", diff)
	}
	if labels[0].color != caloriesColor || labels[7].color != carbsColor {
		t.Errorf("label colors: got %v and %v", labels[0].color, labels[7].color)
	}
}

func TestRenderMacrosPanelLabelsBars(t *testing.T) {
	_, labelled, err := renderMacrosPanel(macrosAvg())
	if err != nil {
		t.Fatalf("renderMacrosPanel: %v", err)
	}
	if !labelled {
		t.Error("expected value labels over every bar")
	}
}

func TestBarWidth(t *testing.T) {
	if got := barWidth(9); got != maxBarWidth {
		t.Errorf("barWidth(9) = %d; want %d", got, maxBarWidth)
	}
	n := 12*5 - 1
	w := barWidth(n)
	if total := n*w + (n-1)*barSpacing; total > figureWidth-220 {
		t.Errorf("barWidth(%d) = %d overflows: total %d", n, w, total)
	}
}
