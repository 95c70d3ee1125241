package rental

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Service loads the two tables from their sources and serves dashboard renders
// from the stored dataset.
type Service struct {
	store       Store
	daySource   Source
	hourSource  Source
	previewRows int
}

// NewService creates a new Service.
func NewService(store Store, daySource, hourSource Source, previewRows int) *Service {
	return &Service{
		store:       store,
		daySource:   daySource,
		hourSource:  hourSource,
		previewRows: previewRows,
	}
}

// Reload reads both tables and replaces the stored dataset.
// On any error the previous dataset is kept.
func (s *Service) Reload(ctx context.Context) error {
	if s.daySource == nil || s.hourSource == nil {
		return fmt.Errorf("dataset sources not configured")
	}

	started := time.Now()

	days, err := loadFrom(ctx, s.daySource, LoadDays)
	if err != nil {
		return err
	}
	hours, err := loadFrom(ctx, s.hourSource, LoadHours)
	if err != nil {
		return err
	}

	s.store.Save(Dataset{
		Days:     days,
		Hours:    hours,
		LoadedAt: time.Now().UTC(),
	})
	log.Infof("dataset loaded: %d daily rows, %d hourly rows in %s", len(days), len(hours), time.Since(started))
	return nil
}

func loadFrom[T any](ctx context.Context, src Source, load func(io.Reader) ([]T, error)) ([]T, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", src.Name(), err)
	}
	defer rc.Close()

	rows, err := load(rc)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", src.Name(), err)
	}
	return rows, nil
}

// Bounds returns the date picker bounds of the current dataset.
func (s *Service) Bounds() (DateRange, error) {
	ds, err := s.store.Current()
	if err != nil {
		return DateRange{}, err
	}
	return Bounds(ds.Days), nil
}

// Dashboard renders every view for r against the current dataset.
func (s *Service) Dashboard(r DateRange) (Artifacts, error) {
	ds, err := s.store.Current()
	if err != nil {
		return Artifacts{}, err
	}
	return Render(ds, r, s.previewRows)
}
