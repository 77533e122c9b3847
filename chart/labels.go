package chart

import (
	"image"
	"image/color"

	"github.com/wcharczuk/go-chart/v2/drawing"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// colorTolerance is the per-channel slack when matching rendered pixels
// against a bar's fill color.
const colorTolerance = 8

// barLabel is the value text drawn above one visible bar.
type barLabel struct {
	color drawing.Color
	text  string
}

// barRun is a block of adjacent columns whose topmost bar-colored pixel has
// the same color, i.e. one rendered bar.
type barRun struct {
	minX, maxX int
	top        int
	color      drawing.Color
}

func sameColor(c color.Color, want drawing.Color) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	near := func(a, b uint8) bool {
		d := int(a) - int(b)
		return d >= -colorTolerance && d <= colorTolerance
	}
	return n.A == 0xff && near(n.R, want.R) && near(n.G, want.G) && near(n.B, want.B)
}

// findBarRuns scans img column by column for the highest pixel matching one
// of colors and groups consecutive columns of the same color into runs,
// left to right.
func findBarRuns(img image.Image, colors []drawing.Color) []barRun {
	b := img.Bounds()
	var runs []barRun
	open := false
	for x := b.Min.X; x < b.Max.X; x++ {
		hit := -1
		top := 0
		for y := b.Min.Y; y < b.Max.Y && hit < 0; y++ {
			px := img.At(x, y)
			for i, c := range colors {
				if sameColor(px, c) {
					hit, top = i, y
					break
				}
			}
		}
		if hit < 0 {
			open = false
			continue
		}
		if open {
			last := &runs[len(runs)-1]
			if last.color == colors[hit] {
				last.maxX = x
				if top < last.top {
					last.top = top
				}
				continue
			}
		}
		runs = append(runs, barRun{minX: x, maxX: x, top: top, color: colors[hit]})
		open = true
	}
	return runs
}

// labelBars writes each label centered above its bar. The bars found in
// panel must line up one to one with labels, in order and color; otherwise
// panel is returned untouched with false.
func labelBars(panel image.Image, labels []barLabel) (image.Image, bool) {
	if len(labels) == 0 {
		return panel, false
	}
	colors := make([]drawing.Color, 0, len(macroOrder))
	seen := make(map[drawing.Color]bool)
	for _, l := range labels {
		if !seen[l.color] {
			seen[l.color] = true
			colors = append(colors, l.color)
		}
	}

	runs := findBarRuns(panel, colors)
	if len(runs) != len(labels) {
		return panel, false
	}
	for i, r := range runs {
		if r.color != labels[i].color {
			return panel, false
		}
	}

	dst := image.NewRGBA(panel.Bounds())
	xdraw.Draw(dst, dst.Bounds(), panel, panel.Bounds().Min, xdraw.Src)

	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(foregroundColor), Face: face}
	for i, r := range runs {
		w := d.MeasureString(labels[i].text).Ceil()
		x := (r.minX+r.maxX+1)/2 - w/2
		y := r.top - 3
		if y < dst.Bounds().Min.Y+ascent {
			y = dst.Bounds().Min.Y + ascent
		}
		d.Dot = fixed.P(x, y)
		d.DrawString(labels[i].text)
	}
	return dst, true
}
