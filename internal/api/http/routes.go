package httpapi

import (
	"bytes"
	"errors"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/i474232898/bike-rental-dashboard/internal/charts"
	"github.com/i474232898/bike-rental-dashboard/internal/export"
	"github.com/i474232898/bike-rental-dashboard/internal/rental"
	"github.com/i474232898/bike-rental-dashboard/internal/store"
)

const (
	dateLayout = "2006-01-02"
	pageTitle  = "By Bike Rent from Hackone Industries"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// bannerURL is the sidebar image of the page; empty leaves it out.
func RegisterRoutes(app *fiber.App, service *rental.Service, renderer *charts.Renderer, bannerURL string) {
	app.Get("/", func(c *fiber.Ctx) error {
		r, bounds, err := resolveRange(c, service)
		if err != nil {
			return err
		}
		a, err := service.Dashboard(r)
		if err != nil {
			return serviceError(err)
		}
		p := newPage(a, bounds)
		p.BannerURL = bannerURL
		return c.Render("dashboard", p)
	})

	v1 := app.Group("/api/v1")

	v1.Get("/bounds", func(c *fiber.Ctx) error {
		bounds, err := service.Bounds()
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(fiber.Map{
			"start": bounds.Start.Format(dateLayout),
			"end":   bounds.End.Format(dateLayout),
		})
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		r, _, err := resolveRange(c, service)
		if err != nil {
			return err
		}
		a, err := service.Dashboard(r)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(a)
	})

	v1.Get("/charts/:name.png", func(c *fiber.Ctx) error {
		name := c.Params("name")
		if _, err := charts.Lookup(name); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		r, _, err := resolveRange(c, service)
		if err != nil {
			return err
		}
		a, err := service.Dashboard(r)
		if err != nil {
			return serviceError(err)
		}

		var buf bytes.Buffer
		if err := renderer.Render(&buf, name, a); err != nil {
			log.Errorf("chart %s: %v", name, err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(buf.Bytes())
	})

	v1.Get("/export.xlsx", func(c *fiber.Ctx) error {
		r, _, err := resolveRange(c, service)
		if err != nil {
			return err
		}
		a, err := service.Dashboard(r)
		if err != nil {
			return serviceError(err)
		}

		var buf bytes.Buffer
		if err := export.WriteWorkbook(&buf, a); err != nil {
			log.Errorf("export: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build workbook")
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Attachment("bike-rentals_" + r.Start.Format(dateLayout) + "_" + r.End.Format(dateLayout) + ".xlsx")
		return c.Send(buf.Bytes())
	})
}

func serviceError(err error) error {
	if errors.Is(err, store.ErrNotLoaded) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "dataset not loaded yet")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to build dashboard")
}

// rangeQuery holds the date picker values. Missing bounds default to the data's own.
type rangeQuery struct {
	Start time.Time
	End   time.Time `validate:"gtefield=Start"`
}

func (q *rangeQuery) bind(c *fiber.Ctx, bounds rental.DateRange) error {
	q.Start, q.End = bounds.Start, bounds.End

	if s := c.Query("start"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return errors.New("invalid start date; use YYYY-MM-DD")
		}
		q.Start = t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return errors.New("invalid end date; use YYYY-MM-DD")
		}
		q.End = t
	}
	return nil
}

func resolveRange(c *fiber.Ctx, service *rental.Service) (rental.DateRange, rental.DateRange, error) {
	bounds, err := service.Bounds()
	if err != nil {
		return rental.DateRange{}, rental.DateRange{}, serviceError(err)
	}

	var q rangeQuery
	if err := q.bind(c, bounds); err != nil {
		return rental.DateRange{}, bounds, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return rental.DateRange{}, bounds, fiber.NewError(fiber.StatusBadRequest, "end date must not be before start date")
	}
	return rental.NewDateRange(q.Start, q.End), bounds, nil
}

type chartLink struct {
	Title string
	URL   string
}

type page struct {
	Title        string
	BannerURL    string
	Start        string
	End          string
	Min          string
	Max          string
	ExportURL    string
	Metrics      rental.Metrics
	ChartsBefore []chartLink
	ChartsAfter  []chartLink
	RFMPreview   []rental.RFMRow
}

// newPage lays out the page: charts up to the season pie, the RFM table, then the rest.
func newPage(a rental.Artifacts, bounds rental.DateRange) page {
	q := url.Values{}
	q.Set("start", a.Range.Start.Format(dateLayout))
	q.Set("end", a.Range.End.Format(dateLayout))
	query := q.Encode()

	p := page{
		Title:      pageTitle,
		Start:      a.Range.Start.Format(dateLayout),
		End:        a.Range.End.Format(dateLayout),
		Min:        bounds.Start.Format(dateLayout),
		Max:        bounds.End.Format(dateLayout),
		ExportURL:  "/api/v1/export.xlsx?" + query,
		Metrics:    a.Metrics,
		RFMPreview: a.RFMPreview,
	}

	after := false
	for _, ch := range charts.Catalog() {
		if ch.Name == "rfm-scatter" {
			after = true
		}
		link := chartLink{Title: ch.Title, URL: "/api/v1/charts/" + ch.Name + ".png?" + query}
		if after {
			p.ChartsAfter = append(p.ChartsAfter, link)
		} else {
			p.ChartsBefore = append(p.ChartsBefore, link)
		}
	}
	return p
}
