package rental_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
	"github.com/i474232898/bike-rental-dashboard/internal/store"
)

const dayCSV = `dteday,season,registered,casual,total_rent
2011-01-01,Spring,8,2,10
2011-01-02,Spring,15,5,20
2011-01-03,Winter,20,10,30
`

const hourCSV = `dteday,hour,weekday,day_category,weather,humidity_category,registered,total_rent
2011-01-01,5,Saturday,weekend,Clear,High,3,4
2011-01-02,5,Sunday,weekend,Clear,Low,3,6
2011-01-03,6,Monday,weekday,Mist,High,1,1
`

type fakeSource struct {
	body string
	err  error
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func TestServiceReloadAndDashboard(t *testing.T) {
	svc := rental.NewService(store.NewMemoryStore(), &fakeSource{body: dayCSV}, &fakeSource{body: hourCSV}, 5)

	_, err := svc.Bounds()
	require.ErrorIs(t, err, store.ErrNotLoaded)

	require.NoError(t, svc.Reload(context.Background()))

	bounds, err := svc.Bounds()
	require.NoError(t, err)

	a, err := svc.Dashboard(bounds)
	require.NoError(t, err)
	assert.Equal(t, int64(60), a.Metrics.TotalRentals)
	assert.Equal(t, 3, a.HourRows)
	assert.Equal(t, []rental.RFMRow{
		{CustomerID: "1", Recency: 0, Monetary: 1, Frequency: 1},
		{CustomerID: "3", Recency: 1, Monetary: 10, Frequency: 2},
	}, a.RFMPreview)
}

func TestServiceReloadFailureKeepsPrevious(t *testing.T) {
	day := &fakeSource{body: dayCSV}
	hour := &fakeSource{body: hourCSV}
	svc := rental.NewService(store.NewMemoryStore(), day, hour, 5)
	require.NoError(t, svc.Reload(context.Background()))

	hour.err = errors.New("gone")
	err := svc.Reload(context.Background())
	assert.ErrorContains(t, err, "gone")

	day.body = "dteday,season\n2011-01-01,Spring\n"
	hour.err = nil
	err = svc.Reload(context.Background())
	assert.ErrorIs(t, err, rental.ErrMissingColumn)

	a, err := svc.Dashboard(rental.NewDateRange(mustDay("2011-01-01"), mustDay("2011-01-03")))
	require.NoError(t, err)
	assert.Equal(t, int64(60), a.Metrics.TotalRentals)
}

func TestServiceReloadAcceptsEmptyHourlyTable(t *testing.T) {
	hourHeader := strings.SplitN(hourCSV, "\n", 2)[0] + "\n"
	svc := rental.NewService(store.NewMemoryStore(), &fakeSource{body: dayCSV}, &fakeSource{body: hourHeader}, 5)
	require.NoError(t, svc.Reload(context.Background()))

	bounds, err := svc.Bounds()
	require.NoError(t, err)

	a, err := svc.Dashboard(bounds)
	require.NoError(t, err)
	assert.Equal(t, int64(60), a.Metrics.TotalRentals)
	assert.Zero(t, a.HourRows)
	assert.Empty(t, a.TopHours)
	assert.Empty(t, a.RFM)
}

func mustDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
