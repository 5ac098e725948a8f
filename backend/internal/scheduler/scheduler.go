package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/store"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/logger"
)

// TrendingRefresher is the port onto the trending engine's proactive path
type TrendingRefresher interface {
	RefreshAll(ctx context.Context) error
}

// SuggestionWarmer is the port onto the suggestion engine
type SuggestionWarmer interface {
	GetSuggestions(ctx context.Context, userID string, limit int) ([]store.User, error)
}

// UserSource picks the batch for the precompute job
type UserSource interface {
	RecentlyActiveIDs(ctx context.Context, limit int) ([]string, error)
}

// Options configures the periodic jobs
type Options struct {
	TrendingEvery   time.Duration
	PrecomputeEvery time.Duration
	BatchSize       int
	BatchDelay      time.Duration
}

// Scheduler drives the two background jobs: proactive trending refresh and
// serial suggestion precompute. Each job runs on its own single goroutine,
// so no job ever overlaps itself. Stop prevents future ticks; in-flight work
// runs to completion.
type Scheduler struct {
	trending TrendingRefresher
	suggest  SuggestionWarmer
	users    UserSource
	opts     Options
	logger   *zap.Logger

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func New(trending TrendingRefresher, suggest SuggestionWarmer, users UserSource, opts Options) *Scheduler {
	return &Scheduler{
		trending: trending,
		suggest:  suggest,
		users:    users,
		opts:     opts,
		logger:   logger.Named("scheduler"),
		stop:     make(chan struct{}),
	}
}

// Start launches both job loops
func (s *Scheduler) Start() {
	s.wg.Add(2)
	go s.loop(s.opts.TrendingEvery, s.refreshTrending)
	go s.loop(s.opts.PrecomputeEvery, s.precomputeSuggestions)
	s.logger.Info("scheduler started",
		zap.Duration("trending_every", s.opts.TrendingEvery),
		zap.Duration("precompute_every", s.opts.PrecomputeEvery))
}

// Stop halts future invocations and waits for in-flight runs to finish
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
	s.wg.Wait()
}

func (s *Scheduler) loop(every time.Duration, job func(context.Context)) {
	defer s.wg.Done()

	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			job(context.Background())
		}
	}
}

// refreshTrending recomputes the trending matrix. RefreshAll propagates
// errors up to here; the scheduler's retry policy is simply the next tick.
func (s *Scheduler) refreshTrending(ctx context.Context) {
	if err := s.trending.RefreshAll(ctx); err != nil {
		s.logger.Error("trending refresh failed", zap.Error(err))
	}
}

// precomputeSuggestions warms the suggestion path for recently active users,
// serially, pausing between items to bound load on both stores.
func (s *Scheduler) precomputeSuggestions(ctx context.Context) {
	ids, err := s.users.RecentlyActiveIDs(ctx, s.opts.BatchSize)
	if err != nil {
		s.logger.Error("precompute batch selection failed", zap.Error(err))
		return
	}

	for _, id := range ids {
		if _, err := s.suggest.GetSuggestions(ctx, id, 0); err != nil {
			s.logger.Warn("suggestion precompute failed",
				zap.String("user_id", id), zap.Error(err))
		}
		if s.opts.BatchDelay > 0 {
			time.Sleep(s.opts.BatchDelay)
		}
	}

	s.logger.Debug("suggestion precompute pass finished", zap.Int("users", len(ids)))
}
