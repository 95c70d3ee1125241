package rental

import (
	"time"
)

// DayRecord is one row of the daily table.
type DayRecord struct {
	Date       time.Time `json:"date"`
	TotalRent  int64     `json:"totalRent"`
	Registered int64     `json:"registered"`
	Casual     int64     `json:"casual"`
	Season     string    `json:"season"`
}

// HourRecord is one row of the hourly table.
// Registered is kept as the raw cell text; it is only ever used as a grouping key.
type HourRecord struct {
	Date             time.Time `json:"date"`
	Hour             int       `json:"hour"`
	TotalRent        int64     `json:"totalRent"`
	Weekday          string    `json:"weekday"`
	DayCategory      string    `json:"dayCategory"`
	Weather          string    `json:"weather"`
	HumidityCategory string    `json:"humidityCategory"`
	Registered       string    `json:"registered"`
}

// Dataset is the pair of tables loaded together. It is read-only after load.
type Dataset struct {
	Days     []DayRecord
	Hours    []HourRecord
	LoadedAt time.Time
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange truncates both bounds to calendar days in UTC.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: truncateDay(start), End: truncateDay(end)}
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := truncateDay(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// IsZero reports whether the range was never set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
