// Package scheduler runs the periodic background jobs. Today that is only the
// video catalog refresh; it deliberately knows nothing about chat requests or
// live sessions.
package scheduler

import (
	"context"
	"log"
	"time"

	"visioblog/backend/internal/videos"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron    *cron.Cron
	catalog *videos.Catalog
}

// NewScheduler registers the catalog refresh with the given cron spec
// (e.g. "@every 12h").
func NewScheduler(catalog *videos.Catalog, refreshSpec string) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	s := &Scheduler{
		cron:    c,
		catalog: catalog,
	}

	if _, err := c.AddFunc(refreshSpec, s.refreshVideos); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) refreshVideos() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := s.catalog.Refresh(ctx); err != nil {
		log.Printf("ERROR: video catalog refresh failed: %v", err)
	}
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("Scheduler started")
}

// Stop waits for a running job to finish before returning.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}
