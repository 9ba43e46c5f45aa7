package store

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

// Sweeper periodically drops sessions idle for longer than ttl.
type Sweeper struct {
	store Store
	ttl   time.Duration
	every time.Duration
	sched *gocron.Scheduler
	now   func() time.Time
}

// NewSweeper prepares a sweeper; nothing runs until Start.
func NewSweeper(st Store, ttl, every time.Duration) *Sweeper {
	return &Sweeper{
		store: st,
		ttl:   ttl,
		every: every,
		sched: gocron.NewScheduler(time.UTC),
		now:   time.Now,
	}
}

// Start schedules the sweep job in the background.
func (s *Sweeper) Start() error {
	if s.ttl <= 0 || s.every <= 0 {
		return errors.New("sweeper: ttl and interval must be positive")
	}
	if _, err := s.sched.Every(s.every).Do(func() { s.RunOnce(context.Background()) }); err != nil {
		return err
	}
	s.sched.StartAsync()
	log.Info().Dur("ttl", s.ttl).Dur("every", s.every).Msg("session sweeper started")
	return nil
}

// RunOnce sweeps immediately and returns the number of sessions removed.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	n := s.store.Sweep(ctx, s.now().Add(-s.ttl))
	if n > 0 {
		log.Info().Int("swept", n).Int("live", s.store.Len()).Msg("idle sessions removed")
	}
	return n
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.sched.Stop()
}
