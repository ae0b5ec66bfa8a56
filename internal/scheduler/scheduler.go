package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/broadway-air/airquality-dashboard/internal/airquality"
	"github.com/broadway-air/airquality-dashboard/internal/store"
)

// Refresher periodically re-reads the measurement export and swaps it into
// the store. With a zero interval it does nothing, preserving the default
// load-once lifecycle.
type Refresher struct {
	scheduler *gocron.Scheduler
	store     *store.MemoryStore
	load      func() ([]airquality.Reading, error)
	interval  time.Duration
}

// New creates a Refresher. load re-reads the export from its source.
func New(interval time.Duration, st *store.MemoryStore, load func() ([]airquality.Reading, error)) *Refresher {
	s := gocron.NewScheduler(time.UTC)
	return &Refresher{
		scheduler: s,
		store:     st,
		load:      load,
		interval:  interval,
	}
}

// Start schedules the refresh job. A non-positive interval disables it.
func (r *Refresher) Start() error {
	if r.interval <= 0 {
		log.Println("scheduler: refresh disabled; dataset is loaded once")
		return nil
	}

	_, err := r.scheduler.Every(r.interval).Do(func() {
		readings, err := r.load()
		if err != nil {
			// Keep serving the last good dataset.
			log.Printf("scheduler: refresh failed: %v", err)
			return
		}
		r.store.Replace(readings)
		log.Printf("scheduler: refreshed dataset, %d readings", len(readings))
	})
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
