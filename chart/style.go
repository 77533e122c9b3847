package chart

import (
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Dark palette shared by both panels.
var (
	backgroundColor = drawing.ColorFromHex("1b1c2e")
	foregroundColor = drawing.ColorFromHex("d8d8e8")
	gridColor       = drawing.ColorFromHex("ffffff").WithAlpha(50)

	weightLineColor = drawing.ColorFromHex("00bfff") // deepskyblue
	weightDotColor  = drawing.ColorFromHex("1e90ff") // dodgerblue

	caloriesColor = drawing.ColorFromHex("00ff7f") // springgreen
	proteinColor  = drawing.ColorFromHex("1e90ff")
	fatColor      = drawing.ColorFromHex("00bfff")
	carbsColor    = drawing.ColorFromHex("7fffd4") // aquamarine
)

// Figure geometry in pixels.
const (
	figureWidth  = 1600
	titleHeight  = 80
	panelHeight  = 410
	figureHeight = titleHeight + 2*panelHeight
	barSpacing   = 4
	maxBarWidth  = 60
)

func axisStyle() gochart.Style {
	return gochart.Style{
		FontColor:   foregroundColor,
		StrokeColor: foregroundColor,
		FontSize:    11,
	}
}

func nameStyle() gochart.Style {
	return gochart.Style{
		FontColor: foregroundColor,
		FontSize:  14,
	}
}

func gridStyle() gochart.Style {
	return gochart.Style{
		StrokeColor:     gridColor,
		StrokeWidth:     1,
		StrokeDashArray: []float64{4, 4},
	}
}

func panelBackground() gochart.Style {
	return gochart.Style{
		FillColor: backgroundColor,
		Padding:   gochart.Box{Top: 24, Left: 24, Right: 40, Bottom: 24},
	}
}
