package rental

import (
	"fmt"
)

// TopHoursLimit is how many hours the busiest-hours view keeps.
const TopHoursLimit = 5

// Metrics are the three headline numbers of the daily table.
type Metrics struct {
	TotalRentals    int64 `json:"totalRentals"`
	TotalRegistered int64 `json:"totalRegistered"`
	TotalCasual     int64 `json:"totalCasual"`
}

// Artifacts is every derived view for one date range, in page order.
type Artifacts struct {
	Range DateRange `json:"range"`

	Metrics     Metrics         `json:"metrics"`
	TopHours    []HourTotal     `json:"topHours"`
	DayCategory []CategoryValue `json:"dayCategory"`
	WeekdayHour Pivot           `json:"weekdayHour"`
	DailyTrend  []DailyPoint    `json:"dailyTrend"`
	Season      []CategoryValue `json:"season"`

	RFM        []RFMRow `json:"rfm"`
	RFMPreview []RFMRow `json:"rfmPreview"`

	Weather         []CategoryValue `json:"weather"`
	WeatherDistinct []CategoryValue `json:"weatherDistinct"`
	Humidity        []CategoryValue `json:"humidity"`

	// Row counts of the filtered tables.
	DayRows  int `json:"dayRows"`
	HourRows int `json:"hourRows"`
}

// Render filters both tables to r and computes every derived view.
// previewRows bounds RFMPreview; a value <= 0 leaves it empty.
func Render(ds Dataset, r DateRange, previewRows int) (Artifacts, error) {
	days, err := FilterRange(DayFrame(ds.Days), r)
	if err != nil {
		return Artifacts{}, err
	}
	hours, err := FilterRange(HourFrame(ds.Hours), r)
	if err != nil {
		return Artifacts{}, err
	}

	a := Artifacts{Range: r, DayRows: days.Nrow(), HourRows: hours.Nrow()}

	if a.Metrics.TotalRentals, err = sumColumn(days, ColTotalRent); err != nil {
		return Artifacts{}, fmt.Errorf("metrics: %w", err)
	}
	if a.Metrics.TotalRegistered, err = sumColumn(days, ColRegistered); err != nil {
		return Artifacts{}, fmt.Errorf("metrics: %w", err)
	}
	if a.Metrics.TotalCasual, err = sumColumn(days, ColCasual); err != nil {
		return Artifacts{}, fmt.Errorf("metrics: %w", err)
	}

	if a.TopHours, err = TopHours(hours, TopHoursLimit); err != nil {
		return Artifacts{}, fmt.Errorf("top hours: %w", err)
	}
	if a.DayCategory, err = SumBy(hours, ColDayCategory, ColTotalRent); err != nil {
		return Artifacts{}, fmt.Errorf("day category: %w", err)
	}
	if a.WeekdayHour, err = WeekdayHourPivot(hours); err != nil {
		return Artifacts{}, fmt.Errorf("weekday x hour: %w", err)
	}
	if a.DailyTrend, err = DailySeries(days); err != nil {
		return Artifacts{}, fmt.Errorf("daily trend: %w", err)
	}
	if a.Season, err = SumBy(days, ColSeason, ColTotalRent); err != nil {
		return Artifacts{}, fmt.Errorf("season: %w", err)
	}
	if a.RFM, err = RFM(hours); err != nil {
		return Artifacts{}, fmt.Errorf("rfm: %w", err)
	}
	if a.Weather, err = SumBy(hours, ColWeather, ColTotalRent); err != nil {
		return Artifacts{}, fmt.Errorf("weather: %w", err)
	}
	if a.WeatherDistinct, err = DistinctBy(hours, ColWeather, ColTotalRent); err != nil {
		return Artifacts{}, fmt.Errorf("weather: %w", err)
	}
	if a.Humidity, err = CountBy(hours, ColHumidityCategory); err != nil {
		return Artifacts{}, fmt.Errorf("humidity: %w", err)
	}

	a.RFMPreview = a.RFM
	if len(a.RFMPreview) > previewRows {
		a.RFMPreview = a.RFMPreview[:max(previewRows, 0)]
	}
	return a, nil
}
