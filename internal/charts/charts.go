package charts

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

var (
	// ErrUnknownChart is returned for a chart name the dashboard does not draw.
	ErrUnknownChart = errors.New("unknown chart")
)

// Chart describes one image on the dashboard page.
type Chart struct {
	Name  string
	Title string
	draw  func(r *Renderer, w io.Writer, title string, a rental.Artifacts) error
}

// catalog lists every chart in page order.
var catalog = []Chart{
	{Name: "top-hours", Title: "Top 5 Busiest Hours", draw: (*Renderer).topHours},
	{Name: "day-category", Title: "Comparison of Total Rentals by Weekday and Weekend", draw: (*Renderer).dayCategory},
	{Name: "weekday-hour", Title: "Heatmap of Total Rentals by Weekday and Hour", draw: (*Renderer).weekdayHour},
	{Name: "daily-trend", Title: "Total Performance of Rentals Over Time", draw: (*Renderer).dailyTrend},
	{Name: "season", Title: "Comparison of Total Rentals by Season", draw: (*Renderer).season},
	{Name: "season-share", Title: "Share of Total Rentals by Season", draw: (*Renderer).seasonShare},
	{Name: "rfm-scatter", Title: "Frequency vs Monetary (colored by Recency)", draw: (*Renderer).rfmScatter},
	{Name: "rfm-recency", Title: "Distribution of Recency", draw: (*Renderer).rfmRecency},
	{Name: "rfm-frequency", Title: "Distribution of Frequency", draw: (*Renderer).rfmFrequency},
	{Name: "rfm-monetary", Title: "Distribution of Monetary", draw: (*Renderer).rfmMonetary},
	{Name: "weather", Title: "Total Rentals by Weather", draw: (*Renderer).weather},
	{Name: "humidity", Title: "Total Bike Rentals by Humidity Category", draw: (*Renderer).humidity},
	{Name: "humidity-share", Title: "Clustering of Bike Rentals by Humidity Category", draw: (*Renderer).humidityShare},
}

// Catalog returns the charts in the order the page shows them.
func Catalog() []Chart {
	out := make([]Chart, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a chart by name.
func Lookup(name string) (Chart, error) {
	for _, c := range catalog {
		if c.Name == name {
			return c, nil
		}
	}
	return Chart{}, fmt.Errorf("%w: %s", ErrUnknownChart, name)
}

// Renderer draws dashboard charts as PNG images.
type Renderer struct {
	bins int
}

// NewRenderer creates a Renderer; bins is the histogram bin count.
func NewRenderer(bins int) *Renderer {
	if bins <= 0 {
		bins = 30
	}
	return &Renderer{bins: bins}
}

// Render writes the named chart for a as PNG to w.
// Empty inputs produce a placeholder image rather than an error.
func (r *Renderer) Render(w io.Writer, name string, a rental.Artifacts) error {
	c, err := Lookup(name)
	if err != nil {
		return err
	}
	if err := c.draw(r, w, c.Title, a); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func (r *Renderer) topHours(w io.Writer, title string, a rental.Artifacts) error {
	values := make([]barValue, 0, len(a.TopHours))
	for _, h := range a.TopHours {
		values = append(values, barValue{Label: strconv.Itoa(h.Hour), Value: float64(h.TotalRent)})
	}
	return barChart(w, title, values, highlightFirst)
}

func (r *Renderer) dayCategory(w io.Writer, title string, a rental.Artifacts) error {
	return barChart(w, title, categoryBars(a.DayCategory), viridis)
}

func (r *Renderer) season(w io.Writer, title string, a rental.Artifacts) error {
	return barChart(w, title, categoryBars(a.Season), viridis)
}

func (r *Renderer) humidity(w io.Writer, title string, a rental.Artifacts) error {
	return barChart(w, title, categoryBars(a.Humidity), coolwarm)
}

func (r *Renderer) seasonShare(w io.Writer, title string, a rental.Artifacts) error {
	return pieChart(w, title, categoryBars(a.Season), viridis)
}

func (r *Renderer) weather(w io.Writer, title string, a rental.Artifacts) error {
	return pieChart(w, title, categoryBars(a.Weather), viridis)
}

func (r *Renderer) humidityShare(w io.Writer, title string, a rental.Artifacts) error {
	return pieChart(w, title, categoryBars(a.Humidity), coolwarm)
}

func (r *Renderer) dailyTrend(w io.Writer, title string, a rental.Artifacts) error {
	return lineChart(w, title, a.DailyTrend)
}

func (r *Renderer) weekdayHour(w io.Writer, title string, a rental.Artifacts) error {
	return heatmap(w, title, a.WeekdayHour)
}

func (r *Renderer) rfmScatter(w io.Writer, title string, a rental.Artifacts) error {
	return rfmScatter(w, title, a.RFM)
}

func (r *Renderer) rfmRecency(w io.Writer, title string, a rental.Artifacts) error {
	vals := make([]float64, len(a.RFM))
	for i, row := range a.RFM {
		vals[i] = float64(row.Recency)
	}
	return histogram(w, title, "Recency (days)", vals, r.bins, histBlue)
}

func (r *Renderer) rfmFrequency(w io.Writer, title string, a rental.Artifacts) error {
	vals := make([]float64, len(a.RFM))
	for i, row := range a.RFM {
		vals[i] = float64(row.Frequency)
	}
	return histogram(w, title, "Frequency (count)", vals, r.bins, histGreen)
}

func (r *Renderer) rfmMonetary(w io.Writer, title string, a rental.Artifacts) error {
	vals := make([]float64, len(a.RFM))
	for i, row := range a.RFM {
		vals[i] = float64(row.Monetary)
	}
	return histogram(w, title, "Monetary (total rent)", vals, r.bins, histRed)
}

func categoryBars(groups []rental.CategoryValue) []barValue {
	values := make([]barValue, 0, len(groups))
	for _, g := range groups {
		values = append(values, barValue{Label: g.Category, Value: float64(g.Value)})
	}
	return values
}
