package charts

import (
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

var (
	histBlue  = color.RGBA{R: 0x1f, G: 0x4e, B: 0xd8, A: 0xff}
	histGreen = color.RGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 0xff}
	histRed   = color.RGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
)

// pivotGrid exposes the weekday x hour pivot as a heat map grid.
// Columns are hours, rows are weekdays; both are indexed by position.
type pivotGrid struct {
	rental.Pivot
}

func (g pivotGrid) Dims() (c, r int)    { return len(g.Hours), len(g.Weekdays) }
func (g pivotGrid) Z(c, r int) float64 { return g.Cells[r][c] }
func (g pivotGrid) X(c int) float64    { return float64(c) }
func (g pivotGrid) Y(r int) float64    { return float64(r) }

func heatmap(w io.Writer, title string, p rental.Pivot) error {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range p.Cells {
		for j := range p.Cells[i] {
			if !p.Defined(i, j) {
				continue
			}
			lo = math.Min(lo, p.Cells[i][j])
			hi = math.Max(hi, p.Cells[i][j])
		}
	}
	if math.IsInf(lo, 1) {
		return placeholder(w, title)
	}
	if hi <= lo {
		hi = lo + 1
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMax(hi)
	cm.SetMin(lo)

	hm := plotter.NewHeatMap(pivotGrid{p}, cm.Palette(255))
	hm.Min, hm.Max = lo, hi
	hm.NaN = color.Gray{Y: 0xee}

	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = "hour"
	pl.Y.Label.Text = "weekday"
	pl.Add(hm)

	xt := make([]plot.Tick, len(p.Hours))
	for i, h := range p.Hours {
		xt[i] = plot.Tick{Value: float64(i), Label: strconv.Itoa(h)}
	}
	yt := make([]plot.Tick, len(p.Weekdays))
	for i, wd := range p.Weekdays {
		yt[i] = plot.Tick{Value: float64(i), Label: wd}
	}
	pl.X.Tick.Marker = plot.ConstantTicks(xt)
	pl.Y.Tick.Marker = plot.ConstantTicks(yt)

	return savePNG(w, pl, 12*vg.Inch, 6*vg.Inch)
}

func rfmScatter(w io.Writer, title string, rows []rental.RFMRow) error {
	if len(rows) == 0 {
		return placeholder(w, title)
	}

	xys := make(plotter.XYs, len(rows))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, r := range rows {
		xys[i].X = float64(r.Frequency)
		xys[i].Y = float64(r.Monetary)
		lo = math.Min(lo, float64(r.Recency))
		hi = math.Max(hi, float64(r.Recency))
	}
	if hi <= lo {
		hi = lo + 1
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMax(hi)
	cm.SetMin(lo)

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, err := cm.At(float64(rows[i].Recency))
		if err != nil {
			c = color.Black
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
	}

	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = "Frequency"
	pl.Y.Label.Text = "Monetary"
	pl.Add(plotter.NewGrid(), sc)

	return savePNG(w, pl, 8*vg.Inch, 6*vg.Inch)
}

func histogram(w io.Writer, title, xLabel string, vals []float64, bins int, fill color.Color) error {
	if len(vals) == 0 {
		return placeholder(w, title)
	}

	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return err
	}
	h.FillColor = fill

	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = xLabel
	pl.Y.Label.Text = "Count"
	pl.Add(h)

	return savePNG(w, pl, 6*vg.Inch, 5*vg.Inch)
}

// placeholder draws a titled image for a chart with nothing to show.
func placeholder(w io.Writer, title string) error {
	pl := plot.New()
	pl.Title.Text = title
	pl.HideAxes()

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0, Y: 0}},
		Labels: []string{"No data for the selected range"},
	})
	if err != nil {
		return err
	}
	pl.Add(labels)

	return savePNG(w, pl, 8*vg.Inch, 4*vg.Inch)
}

func savePNG(w io.Writer, pl *plot.Plot, width, height vg.Length) error {
	wt, err := pl.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
