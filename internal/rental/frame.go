package rental

import (
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ColDay holds the calendar day as days since the Unix epoch, so range
// filters and maxima stay numeric.
const ColDay = "day"

const secondsPerDay = 24 * 60 * 60

func dayOrdinal(t time.Time) int {
	return int(truncateDay(t).Unix() / secondsPerDay)
}

func fromOrdinal(d int) time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// DayFrame builds the dataframe every daily view is computed from.
func DayFrame(days []DayRecord) dataframe.DataFrame {
	n := len(days)
	day := make([]int, n)
	total := make([]int, n)
	registered := make([]int, n)
	casual := make([]int, n)
	season := make([]string, n)
	for i, d := range days {
		day[i] = dayOrdinal(d.Date)
		total[i] = int(d.TotalRent)
		registered[i] = int(d.Registered)
		casual[i] = int(d.Casual)
		season[i] = d.Season
	}

	return dataframe.New(
		series.New(day, series.Int, ColDay),
		series.New(total, series.Int, ColTotalRent),
		series.New(registered, series.Int, ColRegistered),
		series.New(casual, series.Int, ColCasual),
		series.New(season, series.String, ColSeason),
	)
}

// HourFrame builds the dataframe every hourly view is computed from.
// The registered column stays a string: it is only a grouping key.
func HourFrame(hours []HourRecord) dataframe.DataFrame {
	n := len(hours)
	day := make([]int, n)
	hour := make([]int, n)
	total := make([]int, n)
	weekday := make([]string, n)
	dayCategory := make([]string, n)
	weather := make([]string, n)
	humidity := make([]string, n)
	registered := make([]string, n)
	for i, h := range hours {
		day[i] = dayOrdinal(h.Date)
		hour[i] = h.Hour
		total[i] = int(h.TotalRent)
		weekday[i] = h.Weekday
		dayCategory[i] = h.DayCategory
		weather[i] = h.Weather
		humidity[i] = h.HumidityCategory
		registered[i] = h.Registered
	}

	return dataframe.New(
		series.New(day, series.Int, ColDay),
		series.New(hour, series.Int, ColHour),
		series.New(total, series.Int, ColTotalRent),
		series.New(weekday, series.String, ColWeekday),
		series.New(dayCategory, series.String, ColDayCategory),
		series.New(weather, series.String, ColWeather),
		series.New(humidity, series.String, ColHumidityCategory),
		series.New(registered, series.String, ColRegistered),
	)
}
