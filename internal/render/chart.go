package render

import (
	"fmt"
	"io"
	"strconv"
)

// Chart defaults.
const (
	DefaultChartHeight = 250
	DefaultBarWidth    = 30
	DefaultBarColor    = "#4a6bff"
)

// Point is one bar: X labels it, Y sizes it.
type Point struct {
	X string
	Y float64
}

// ChartOptions controls bar chart layout. Zero values in an override are
// ignored by Merge, so only ShowTooltips needs an explicit pointer.
type ChartOptions struct {
	Height       int
	BarWidth     int
	BarColor     string
	ShowTooltips *bool
	XLabel       string
	YLabel       string
}

// DefaultChartOptions returns height 250, bar width 30, color #4a6bff and
// tooltips on.
func DefaultChartOptions() ChartOptions {
	show := true
	return ChartOptions{
		Height:       DefaultChartHeight,
		BarWidth:     DefaultBarWidth,
		BarColor:     DefaultBarColor,
		ShowTooltips: &show,
	}
}

// Merge returns o with every set field of override applied on top.
func (o ChartOptions) Merge(override ChartOptions) ChartOptions {
	if override.Height > 0 {
		o.Height = override.Height
	}
	if override.BarWidth > 0 {
		o.BarWidth = override.BarWidth
	}
	if override.BarColor != "" {
		o.BarColor = override.BarColor
	}
	if override.ShowTooltips != nil {
		show := *override.ShowTooltips
		o.ShowTooltips = &show
	}
	if override.XLabel != "" {
		o.XLabel = override.XLabel
	}
	if override.YLabel != "" {
		o.YLabel = override.YLabel
	}
	return o
}

// Bar is a laid-out bar.
type Bar struct {
	Point
	Height float64
}

// HeightCSS formats the bar height for a style attribute.
func (b Bar) HeightCSS() string {
	return strconv.FormatFloat(b.Height, 'f', -1, 64)
}

// Label is the tooltip text, e.g. "Mon: 5".
func (b Bar) Label() string {
	return fmt.Sprintf("%s: %s", b.X, strconv.FormatFloat(b.Y, 'f', -1, 64))
}

// Chart is a laid-out bar chart ready to render.
type Chart struct {
	Bars         []Bar
	Height       int
	BarWidth     int
	BarColor     string
	ShowTooltips bool
	XLabel       string
	YLabel       string
}

// BuildChart scales every bar to y/max of the chart height. When the largest
// value is not positive every bar gets zero height. Negative values are
// clamped to zero.
func BuildChart(points []Point, opts ChartOptions) Chart {
	opts = DefaultChartOptions().Merge(opts)

	c := Chart{
		Bars:         make([]Bar, len(points)),
		Height:       opts.Height,
		BarWidth:     opts.BarWidth,
		BarColor:     opts.BarColor,
		ShowTooltips: *opts.ShowTooltips,
		XLabel:       opts.XLabel,
		YLabel:       opts.YLabel,
	}

	maxY := 0.0
	for _, p := range points {
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	for i, p := range points {
		bar := Bar{Point: p}
		if maxY > 0 && p.Y > 0 {
			bar.Height = p.Y / maxY * float64(opts.Height)
		}
		c.Bars[i] = bar
	}
	return c
}

// RenderChart writes the chart markup.
func RenderChart(w io.Writer, c Chart) error {
	return templates.ExecuteTemplate(w, "chart", c)
}
