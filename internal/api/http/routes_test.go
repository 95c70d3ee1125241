package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/bike-rental-dashboard/internal/charts"
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

type stringSource string

func (s stringSource) Name() string { return "inline" }

func (s stringSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

const testBanner = "https://example.com/bikes.jpg"

func newTestApp(t *testing.T, load bool) *fiber.App {
	t.Helper()

	svc := rental.NewService(store.NewMemoryStore(), stringSource(dayCSV), stringSource(hourCSV), 5)
	if load {
		require.NoError(t, svc.Reload(context.Background()))
	}

	app := fiber.New(fiber.Config{Views: NewViews()})
	RegisterRoutes(app, svc, charts.NewRenderer(30), testBanner)
	return app
}

func TestBounds(t *testing.T) {
	app := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/bounds", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2011-01-01", body["start"])
	assert.Equal(t, "2011-01-03", body["end"])
}

func TestDashboardFiltersByRange(t *testing.T) {
	app := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?start=2011-01-01&end=2011-01-02", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var a struct {
		Metrics  rental.Metrics     `json:"metrics"`
		TopHours []rental.HourTotal `json:"topHours"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&a))
	assert.Equal(t, int64(30), a.Metrics.TotalRentals)
	assert.Equal(t, []rental.HourTotal{{Hour: 5, TotalRent: 10}}, a.TopHours)
}

func TestDashboardRangeValidation(t *testing.T) {
	app := newTestApp(t, true)

	for _, target := range []string{
		"/api/v1/dashboard?start=2011-01-03&end=2011-01-01",
		"/api/v1/dashboard?start=01/01/2011",
		"/api/v1/dashboard?end=tomorrow",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestDashboardOutsideDataIsEmpty(t *testing.T) {
	app := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?start=2020-01-01&end=2020-12-31", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var a struct {
		Metrics  rental.Metrics `json:"metrics"`
		HourRows int            `json:"hourRows"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&a))
	assert.Zero(t, a.Metrics)
	assert.Zero(t, a.HourRows)
}

func TestNotLoadedReturnsUnavailable(t *testing.T) {
	app := newTestApp(t, false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestChartPNG(t *testing.T) {
	app := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/charts/top-hours.png", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "\x89PNG"))
}

func TestUnknownChart(t *testing.T) {
	app := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/charts/nope.png", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportWorkbook(t *testing.T) {
	app := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/export.xlsx?start=2011-01-01&end=2011-01-03", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "bike-rentals_2011-01-01_2011-01-03.xlsx")
}

func TestDashboardPage(t *testing.T) {
	app := newTestApp(t, true)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?start=2011-01-01&end=2011-01-02", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)

	assert.Contains(t, html, "Total Rentals<span>30</span>")
	assert.Contains(t, html, `min="2011-01-01"`)
	assert.Contains(t, html, `max="2011-01-03"`)
	assert.Contains(t, html, `src="`+testBanner+`"`)
	assert.Less(t, strings.Index(html, testBanner), strings.Index(html, `name="start"`))

	top := strings.Index(html, "/api/v1/charts/top-hours.png")
	rfm := strings.Index(html, "RFM Analysis")
	scatter := strings.Index(html, "/api/v1/charts/rfm-scatter.png")
	require.True(t, top >= 0 && rfm >= 0 && scatter >= 0)
	assert.Less(t, top, rfm)
	assert.Less(t, rfm, scatter)
}
