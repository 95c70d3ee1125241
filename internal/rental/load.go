package rental

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names as written by the upstream cleaning step.
const (
	ColDate             = "dteday"
	ColHour             = "hour"
	ColTotalRent        = "total_rent"
	ColRegistered       = "registered"
	ColCasual           = "casual"
	ColSeason           = "season"
	ColWeekday          = "weekday"
	ColDayCategory      = "day_category"
	ColWeather          = "weather"
	ColHumidityCategory = "humidity_category"
)

var (
	// ErrMissingColumn is returned when a required CSV column is absent.
	ErrMissingColumn = errors.New("missing required column")

	dateLayouts = []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
)

// LoadDays parses the daily table.
func LoadDays(r io.Reader) ([]DayRecord, error) {
	cols, n, err := readColumns(r, ColDate, ColTotalRent, ColRegistered, ColCasual, ColSeason)
	if err != nil {
		return nil, err
	}

	days := make([]DayRecord, 0, n)
	for i := 0; i < n; i++ {
		date, err := parseDate(cols[ColDate][i])
		if err != nil {
			return nil, cellError(ColDate, i, err)
		}
		total, err := parseCount(cols[ColTotalRent][i])
		if err != nil {
			return nil, cellError(ColTotalRent, i, err)
		}
		registered, err := parseCount(cols[ColRegistered][i])
		if err != nil {
			return nil, cellError(ColRegistered, i, err)
		}
		casual, err := parseCount(cols[ColCasual][i])
		if err != nil {
			return nil, cellError(ColCasual, i, err)
		}

		days = append(days, DayRecord{
			Date:       date,
			TotalRent:  total,
			Registered: registered,
			Casual:     casual,
			Season:     cols[ColSeason][i],
		})
	}
	return days, nil
}

// LoadHours parses the hourly table.
func LoadHours(r io.Reader) ([]HourRecord, error) {
	cols, n, err := readColumns(r,
		ColDate, ColHour, ColTotalRent, ColWeekday, ColDayCategory,
		ColWeather, ColHumidityCategory, ColRegistered,
	)
	if err != nil {
		return nil, err
	}

	hours := make([]HourRecord, 0, n)
	for i := 0; i < n; i++ {
		date, err := parseDate(cols[ColDate][i])
		if err != nil {
			return nil, cellError(ColDate, i, err)
		}
		hour, err := parseCount(cols[ColHour][i])
		if err != nil {
			return nil, cellError(ColHour, i, err)
		}
		total, err := parseCount(cols[ColTotalRent][i])
		if err != nil {
			return nil, cellError(ColTotalRent, i, err)
		}

		hours = append(hours, HourRecord{
			Date:             date,
			Hour:             int(hour),
			TotalRent:        total,
			Weekday:          cols[ColWeekday][i],
			DayCategory:      cols[ColDayCategory][i],
			Weather:          cols[ColWeather][i],
			HumidityCategory: cols[ColHumidityCategory][i],
			Registered:       cols[ColRegistered][i],
		})
	}
	return hours, nil
}

// readColumns loads the CSV as an all-string dataframe and returns the raw
// cells of the requested columns along with the row count. Cells gota reads
// as missing ("NA", "NaN") come back as "NaN" and drop out of every grouping.
// A header without data rows is a valid, empty table.
func readColumns(r io.Reader, names ...string) (map[string][]string, int, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, errors.New("read csv: missing header row")
	}

	header := records[0]
	present := make(map[string]bool, len(header))
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
		present[header[i]] = true
	}
	for _, name := range names {
		if !present[name] {
			return nil, 0, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	cols := make(map[string][]string, len(names))
	if len(records) == 1 {
		for _, name := range names {
			cols[name] = []string{}
		}
		return cols, 0, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, 0, fmt.Errorf("read csv: %w", df.Err)
	}

	for _, name := range names {
		s := df.Col(name)
		if s.Err != nil {
			return nil, 0, fmt.Errorf("column %s: %w", name, s.Err)
		}
		cols[name] = s.Records()
	}
	return cols, df.Nrow(), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseCount accepts integers and integral floats such as "13.0".
func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return int64(math.Round(f)), nil
}

func cellError(col string, row int, err error) error {
	return fmt.Errorf("column %s, row %d: %w", col, row+1, err)
}
