package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/radarjus/newsradar/internal/storage"
)

const purgeTimeout = 30 * time.Second

// Scheduler runs the cache retention purge off the request path. The cache
// table is append-only, so without this it grows forever.
type Scheduler struct {
	cron          *cron.Cron
	store         *storage.Store
	retentionDays int
}

func New(spec string, store *storage.Store, retentionDays int) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:          c,
		store:         store,
		retentionDays: retentionDays,
	}

	if _, err := c.AddFunc(spec, s.purgeOnce); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Cron exposes the underlying cron for additional jobs.
func (s *Scheduler) Cron() *cron.Cron {
	return s.cron
}

// PurgeOnce runs a single purge, for manual triggering.
func (s *Scheduler) PurgeOnce() {
	s.purgeOnce()
}

func (s *Scheduler) purgeOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	n, err := s.store.PurgeOlderThan(ctx, s.retentionDays)
	if err != nil {
		log.Printf("purge: %v", err)
		return
	}
	log.Printf("purge: removed %d rows older than %dd", n, s.retentionDays)
}
