package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2/log"
)

// Reloader is the part of the rental service the scheduler drives.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Scheduler periodically reloads the dataset from its sources.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reloader  Reloader
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. A non-positive interval disables reloading.
func New(interval time.Duration, reloader Reloader) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		reloader:  reloader,
		interval:  interval,
		timeout:   2 * time.Minute,
	}
}

// Start schedules the reload job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Info("scheduler: reload interval not set; dataset is loaded once")
		return nil
	}

	// The startup load already ran; the first tick waits a full interval.
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(s.runReload)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Infof("scheduler: reloading dataset every %s", s.interval)
	return nil
}

func (s *Scheduler) runReload() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.reloader.Reload(ctx); err != nil {
		log.Errorf("scheduler: reload failed, keeping previous dataset: %v", err)
		return
	}
	log.Info("scheduler: dataset reloaded")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
