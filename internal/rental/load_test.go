package rental

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDays(t *testing.T) {
	csv := `instant,dteday,season,registered,casual,total_rent
1,2011-01-01,Spring,654,331,985
2,2011-01-02 00:00:00,Spring,670,131,801.0
`
	days, err := LoadDays(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, DayRecord{
		Date:       time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalRent:  985,
		Registered: 654,
		Casual:     331,
		Season:     "Spring",
	}, days[0])
	assert.Equal(t, int64(801), days[1].TotalRent)
	assert.Equal(t, time.Date(2011, 1, 2, 0, 0, 0, 0, time.UTC), days[1].Date)
}

func TestLoadHours(t *testing.T) {
	csv := `dteday,hour,total_rent,weekday,day_category,weather,humidity_category,registered
2011-01-01,0,16,Saturday,weekend,Clear,High,13
`
	hours, err := LoadHours(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, hours, 1)

	h := hours[0]
	assert.Equal(t, 0, h.Hour)
	assert.Equal(t, int64(16), h.TotalRent)
	assert.Equal(t, "Saturday", h.Weekday)
	assert.Equal(t, "weekend", h.DayCategory)
	assert.Equal(t, "Clear", h.Weather)
	assert.Equal(t, "High", h.HumidityCategory)
	assert.Equal(t, "13", h.Registered)
}

func TestLoadHeaderOnly(t *testing.T) {
	days, err := LoadDays(strings.NewReader("dteday,season,registered,casual,total_rent\n"))
	require.NoError(t, err)
	assert.Empty(t, days)

	hours, err := LoadHours(strings.NewReader("dteday,hour,total_rent,weekday,day_category,weather,humidity_category,registered\n"))
	require.NoError(t, err)
	assert.Empty(t, hours)
}

func TestLoadHeaderOnlyStillChecksColumns(t *testing.T) {
	_, err := LoadHours(strings.NewReader("dteday,hour,total_rent\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadEmptyInput(t *testing.T) {
	_, err := LoadDays(strings.NewReader(""))
	assert.ErrorContains(t, err, "missing header row")
}

func TestLoadTrimsHeaderNames(t *testing.T) {
	days, err := LoadDays(strings.NewReader(" dteday , season,registered,casual,total_rent\n2011-01-01,Fall,1,2,3\n"))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Fall", days[0].Season)
}

func TestLoadMissingKeyCellDropsFromGroups(t *testing.T) {
	csv := `dteday,hour,total_rent,weekday,day_category,weather,humidity_category,registered
2011-01-01,0,16,Saturday,weekend,NA,High,13
2011-01-01,1,4,Saturday,weekend,Clear,High,13
`
	hours, err := LoadHours(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, hours, 2)

	groups, err := SumBy(HourFrame(hours), ColWeather, ColTotalRent)
	require.NoError(t, err)
	assert.Equal(t, []CategoryValue{{Category: "Clear", Value: 4}}, groups)
}

func TestLoadMissingColumn(t *testing.T) {
	_, err := LoadDays(strings.NewReader("dteday,season,registered,total_rent\n2011-01-01,Spring,1,2\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.ErrorContains(t, err, "casual")
}

func TestLoadBadDate(t *testing.T) {
	csv := `dteday,season,registered,casual,total_rent
2011-01-01,Spring,1,1,2
not-a-date,Spring,1,1,2
`
	_, err := LoadDays(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorContains(t, err, "column dteday, row 2")
}

func TestLoadBadNumber(t *testing.T) {
	csv := `dteday,hour,total_rent,weekday,day_category,weather,humidity_category,registered
2011-01-01,noon,16,Saturday,weekend,Clear,High,13
`
	_, err := LoadHours(strings.NewReader(csv))
	assert.ErrorContains(t, err, "column hour, row 1")
}
