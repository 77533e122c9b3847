package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/montanaflynn/stats"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"macro-averages/models"
	"macro-averages/utils"
)

const weightField = "Weight"

// caloriesScale shrinks calorie bars so they share an axis with grams.
const caloriesScale = 0.25

type macroSeries struct {
	field  string
	legend string
	color  drawing.Color
	scale  float64
}

var macroOrder = []macroSeries{
	{field: "Calories", legend: "Calories (x0.25)", color: caloriesColor, scale: caloriesScale},
	{field: "Protein (g)", legend: "Protein", color: proteinColor, scale: 1},
	{field: "Fat (g)", legend: "Fat", color: fatColor, scale: 1},
	{field: "Carbs (g)", legend: "Carbs", color: carbsColor, scale: 1},
}

// Renderer draws the yearly averages figure: a weight line plot above a
// grouped bar chart of macros.
type Renderer struct {
	dir    string
	logger *utils.Logger
}

// NewRenderer creates a Renderer saving images into dir.
func NewRenderer(dir string, logger *utils.Logger) *Renderer {
	return &Renderer{dir: dir, logger: logger}
}

// Render writes averages_<year>.png and returns "File saved: <path>".
// weight must hold a Weight field and macros every macro field; swapping the
// two yields ErrTableMismatch. Nothing is written on failure.
func (r *Renderer) Render(weight, macros models.MonthlyAverages, year string) (string, error) {
	if _, ok := weight[weightField]; !ok {
		return "", fmt.Errorf("%w (no %q in weight averages)", ErrTableMismatch, weightField)
	}
	for _, m := range macroOrder {
		if _, ok := macros[m.field]; !ok {
			return "", fmt.Errorf("%w (no %q in macros averages)", ErrTableMismatch, m.field)
		}
	}

	top, err := renderWeightPanel(weight[weightField])
	if err != nil {
		return "", fmt.Errorf("chart: weight panel: %w", err)
	}
	bottom, labelled, err := renderMacrosPanel(macros)
	if err != nil {
		return "", fmt.Errorf("chart: macros panel: %w", err)
	}
	if !labelled {
		r.logger.Debug("[chart] Bars not located in the macros panel; value labels skipped")
	}

	figure := image.NewRGBA(image.Rect(0, 0, figureWidth, figureHeight))
	xdraw.Draw(figure, figure.Bounds(), image.NewUniform(backgroundColor), image.Point{}, xdraw.Src)
	xdraw.Draw(figure, image.Rect(0, titleHeight, figureWidth, titleHeight+panelHeight), top, image.Point{}, xdraw.Over)
	xdraw.Draw(figure, image.Rect(0, titleHeight+panelHeight, figureWidth, figureHeight), bottom, image.Point{}, xdraw.Over)
	drawTitle(figure, "Averages "+year)
	drawLegend(figure, 40, []legendEntry{{text: "Avg. Weight", color: weightLineColor}})
	macroKeys := make([]legendEntry, len(macroOrder))
	for i, m := range macroOrder {
		macroKeys[i] = legendEntry{text: m.legend, color: m.color}
	}
	drawLegend(figure, figureWidth-160, macroKeys)

	path, err := filepath.Abs(filepath.Join(r.dir, fmt.Sprintf("averages_%s.png", year)))
	if err != nil {
		return "", fmt.Errorf("chart: resolve path: %w", err)
	}
	if err := writePNG(path, figure); err != nil {
		return "", err
	}

	r.logger.Info("[chart] Rendered %d weight month(s) and %d macros month(s)",
		len(weight[weightField]), len(macros[macroOrder[0].field]))
	return "File saved: " + path, nil
}

func renderWeightPanel(byMonth map[string]float64) (image.Image, error) {
	months := models.SortedMonths(byMonth)
	xs := make([]float64, len(months))
	ys := make([]float64, len(months))
	xMin, xMax := -0.5, float64(len(months))-0.5
	// go-chart takes the x range from the ticks, so half-step end ticks keep
	// it non-zero when only one month is plotted.
	ticks := make([]gochart.Tick, 0, len(months)+2)
	ticks = append(ticks, gochart.Tick{Value: xMin})
	for i, m := range months {
		xs[i] = float64(i)
		ys[i] = byMonth[m]
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: m})
	}
	ticks = append(ticks, gochart.Tick{Value: xMax})

	lo, err := stats.Min(ys)
	if err != nil {
		return nil, err
	}
	hi, err := stats.Max(ys)
	if err != nil {
		return nil, err
	}
	yMin, yMax := math.Floor(lo-1), math.Ceil(hi+1)

	ch := gochart.Chart{
		Width:      figureWidth,
		Height:     panelHeight,
		Background: panelBackground(),
		Canvas:     gochart.Style{FillColor: backgroundColor},
		XAxis: gochart.XAxis{
			Style: axisStyle(),
			Range: &gochart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:           "Weight",
			NameStyle:      nameStyle(),
			Style:          axisStyle(),
			Range:          &gochart.ContinuousRange{Min: yMin, Max: yMax},
			GridMajorStyle: gridStyle(),
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Avg. Weight",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: weightLineColor,
					StrokeWidth: 3,
					DotColor:    weightDotColor,
					DotWidth:    6,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// macroBars lays out one group of four bars per month, groups separated by an
// invisible spacer bar. Month names label the first bar of each group. The
// returned labels hold, per visible bar, the unscaled value truncated to an
// integer.
func macroBars(macros models.MonthlyAverages) ([]gochart.Value, []barLabel, float64, float64) {
	months := models.SortedMonths(macros[macroOrder[0].field])
	bars := make([]gochart.Value, 0, len(months)*(len(macroOrder)+1))
	labels := make([]barLabel, 0, len(months)*len(macroOrder))
	lo, hi := 0.0, 0.0
	for i, month := range months {
		if i > 0 {
			bars = append(bars, gochart.Value{
				Value: 0,
				Style: gochart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent},
			})
		}
		for j, m := range macroOrder {
			raw := macros[m.field][month]
			v := raw * m.scale
			label := ""
			if j == 0 {
				label = month
			}
			bars = append(bars, gochart.Value{
				Value: v,
				Label: label,
				Style: gochart.Style{FillColor: m.color, StrokeColor: m.color, StrokeWidth: 1},
			})
			labels = append(labels, barLabel{color: m.color, text: strconv.Itoa(int(raw))})
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return bars, labels, lo, hi
}

// renderMacrosPanel reports whether value labels could be placed over the
// bars.
func renderMacrosPanel(macros models.MonthlyAverages) (image.Image, bool, error) {
	bars, labels, lo, hi := macroBars(macros)
	if hi <= lo {
		hi = lo + 1
	}

	bc := gochart.BarChart{
		Width:      figureWidth,
		Height:     panelHeight,
		Background: panelBackground(),
		Canvas:     gochart.Style{FillColor: backgroundColor},
		BarWidth:   barWidth(len(bars)),
		BarSpacing: barSpacing,
		XAxis:      axisStyle(),
		YAxis: gochart.YAxis{
			Name:      "Macros",
			NameStyle: nameStyle(),
			Style:     axisStyle(),
			Range:     &gochart.ContinuousRange{Min: lo * 1.15, Max: hi * 1.15},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(f))
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(gochart.PNG, &buf); err != nil {
		return nil, false, err
	}
	panel, err := png.Decode(&buf)
	if err != nil {
		return nil, false, err
	}
	out, ok := labelBars(panel, labels)
	return out, ok, nil
}

// barWidth fits n bars into the panel, leaving room for the y axis.
func barWidth(n int) int {
	usable := figureWidth - 220 - (n-1)*barSpacing
	w := usable / n
	if w > maxBarWidth {
		return maxBarWidth
	}
	if w < 2 {
		return 2
	}
	return w
}

// drawTitle writes text centered in the title band, upscaled from the
// 7x13 bitmap face.
func drawTitle(dst *image.RGBA, text string) {
	const scale = 3
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	w := d.MeasureString(text).Ceil()
	h := face.Metrics().Height.Ceil()

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	d.Dst = small
	d.Src = image.NewUniform(foregroundColor)
	d.Dot = fixed.P(0, face.Metrics().Ascent.Ceil())
	d.DrawString(text)

	x := (figureWidth - w*scale) / 2
	y := (titleHeight - h*scale) / 2
	xdraw.NearestNeighbor.Scale(dst, image.Rect(x, y, x+w*scale, y+h*scale), small, small.Bounds(), xdraw.Over, nil)
}

type legendEntry struct {
	text  string
	color drawing.Color
}

// drawLegend writes a color key, one entry per line, starting at x in the
// title band.
func drawLegend(dst *image.RGBA, x int, entries []legendEntry) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(foregroundColor), Face: face}

	y := 16
	for _, e := range entries {
		swatch := image.Rect(x, y-10, x+12, y+2)
		xdraw.Draw(dst, swatch, image.NewUniform(color.Color(e.color)), image.Point{}, xdraw.Src)
		d.Dot = fixed.P(x+18, y)
		d.DrawString(e.text)
		y += 18
	}
}

// writePNG encodes img next to path and renames it into place so a failed
// encode never leaves a partial file behind.
func writePNG(path string, img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".averages-*.png")
	if err != nil {
		return fmt.Errorf("chart: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, img); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chart: encode png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("chart: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("chart: save %q: %w", path, err)
	}
	return nil
}
