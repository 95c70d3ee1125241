package charts

import (
	"fmt"
	"io"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

type barValue struct {
	Label string
	Value float64
}

// colorScheme picks the fill color of element i out of n.
type colorScheme func(i, n int) drawing.Color

var (
	viridisHex  = []string{"440154", "3B528B", "21908C", "5DC863", "FDE725"}
	coolwarmHex = []string{"3B4CC0", "8DB0FE", "DDDDDD", "F49A7B", "B40426"}

	colorHighlight = drawing.ColorFromHex("90CAF9")
	colorMuted     = drawing.ColorFromHex("D3D3D3")
)

func spread(hexes []string) colorScheme {
	return func(i, n int) drawing.Color {
		if n <= 1 {
			return drawing.ColorFromHex(hexes[len(hexes)/2])
		}
		idx := i * (len(hexes) - 1) / (n - 1)
		return drawing.ColorFromHex(hexes[idx])
	}
}

var (
	viridis  = spread(viridisHex)
	coolwarm = spread(coolwarmHex)
)

// highlightFirst paints the leading bar and mutes the rest.
func highlightFirst(i, _ int) drawing.Color {
	if i == 0 {
		return colorHighlight
	}
	return colorMuted
}

func barChart(w io.Writer, title string, values []barValue, colors colorScheme) error {
	top := 0.0
	for _, v := range values {
		top = math.Max(top, v.Value)
	}
	if len(values) == 0 || top <= 0 {
		return placeholder(w, title)
	}

	bars := make([]chart.Value, len(values))
	for i, v := range values {
		c := colors(i, len(values))
		bars[i] = chart.Value{
			Label: v.Label,
			Value: v.Value,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		}
	}

	graph := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      1024,
		Height:     512,
		BarWidth:   60,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

func pieChart(w io.Writer, title string, values []barValue, colors colorScheme) error {
	total := 0.0
	for _, v := range values {
		if v.Value > 0 {
			total += v.Value
		}
	}
	if total <= 0 {
		return placeholder(w, title)
	}

	slices := make([]chart.Value, 0, len(values))
	for i, v := range values {
		if v.Value <= 0 {
			continue
		}
		c := colors(i, len(values))
		slices = append(slices, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", v.Label, v.Value/total*100),
			Value: v.Value,
			Style: chart.Style{FillColor: c},
		})
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  640,
		Height: 640,
		Values: slices,
	}
	return pie.Render(chart.PNG, w)
}

func lineChart(w io.Writer, title string, points []rental.DailyPoint) error {
	if len(points) < 2 || points[0].Date.Equal(points[len(points)-1].Date) {
		return placeholder(w, title)
	}

	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	top := 0.0
	for i, p := range points {
		xs[i] = p.Date
		ys[i] = float64(p.TotalRent)
		top = math.Max(top, ys[i])
	}
	if top <= 0 {
		top = 1
	}

	graph := chart.Chart{
		Title:      title,
		Width:      1280,
		Height:     640,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "Total Rentals",
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "total_rent",
				Style: chart.Style{
					StrokeColor: colorHighlight,
					StrokeWidth: 2,
					DotColor:    colorHighlight,
					DotWidth:    3,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return graph.Render(chart.PNG, w)
}
