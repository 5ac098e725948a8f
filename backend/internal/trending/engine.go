package trending

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/graph"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/logger"
)

// DefaultLimit is used when the caller passes a non-positive limit
const DefaultLimit = 10

// refreshLimits is the fixed matrix RefreshAll precomputes per window
var refreshLimits = []int{10, 20}

// growthThreshold marks a tag as trending once its growth rate exceeds it
const growthThreshold = 50.0

// Source is the port the engine needs from the graph store adapter
type Source interface {
	TagCounts(ctx context.Context, since, until time.Time) ([]graph.TagCount, error)
}

// Engine computes windowed trending hashtags from the graph store, caching
// each (window, limit) result and serving stale data when a refresh fails.
type Engine struct {
	source Source
	cache  *Cache
	logger *zap.Logger

	// doublePrevious compares against a preceding window of twice the
	// length instead of an equal one.
	doublePrevious bool

	now func() time.Time // swapped in tests
}

func NewEngine(source Source, cache *Cache, doublePrevious bool) *Engine {
	return &Engine{
		source:         source,
		cache:          cache,
		logger:         logger.Named("trending"),
		doublePrevious: doublePrevious,
		now:            time.Now,
	}
}

// GetTrending returns the trending list for the window, at most limit
// entries. The read path never fails: a fresh cache entry short-circuits the
// graph store entirely, a failed computation falls back to the stale entry,
// and with no cache at all the result is empty.
func (e *Engine) GetTrending(ctx context.Context, w Window, limit int) []Hashtag {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if _, ok := w.Duration(); !ok {
		e.logger.Warn("unknown trending window", zap.String("window", string(w)))
		return []Hashtag{}
	}

	if list, ok := e.cache.Fresh(w, limit); ok {
		return list
	}

	list, err := e.compute(ctx, w, limit)
	if err != nil {
		e.logger.Warn("trending refresh failed",
			zap.String("window", string(w)), zap.Int("limit", limit), zap.Error(err))
		if stale, ok := e.cache.Stale(w, limit); ok {
			return stale
		}
		return []Hashtag{}
	}

	e.cache.Put(w, limit, list)
	return list
}

// RefreshAll recomputes the fixed (window, limit) matrix. Unlike the read
// path it propagates errors: it runs under the scheduler, whose caller owns
// the retry policy.
func (e *Engine) RefreshAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, w := range Windows {
		for _, limit := range refreshLimits {
			w, limit := w, limit
			g.Go(func() error {
				list, err := e.compute(ctx, w, limit)
				if err != nil {
					return err
				}
				e.cache.Put(w, limit, list)
				return nil
			})
		}
	}

	return g.Wait()
}

// Clear resets the cache
func (e *Engine) Clear() {
	e.cache.Clear()
}

func (e *Engine) compute(ctx context.Context, w Window, limit int) ([]Hashtag, error) {
	length, _ := w.Duration()
	until := e.now().UTC()
	since := until.Add(-length)

	previousLength := length
	if e.doublePrevious {
		previousLength = 2 * length
	}
	previousSince := since.Add(-previousLength)

	current, err := e.source.TagCounts(ctx, since, until)
	if err != nil {
		return nil, err
	}
	previous, err := e.source.TagCounts(ctx, previousSince, since)
	if err != nil {
		return nil, err
	}
	previousByTag := lo.Associate(previous, func(c graph.TagCount) (string, graph.TagCount) {
		return c.Tag, c
	})

	list := make([]Hashtag, 0, len(current))
	for _, c := range current {
		growth := growthRate(c.PostCount, previousByTag[c.Tag].PostCount)
		list = append(list, Hashtag{
			Tag:        c.Tag,
			DisplayTag: c.DisplayTag,
			PostCount:  c.PostCount,
			UserCount:  c.UserCount,
			GrowthRate: growth,
			IsTrending: growth > growthThreshold,
		})
	}

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].PostCount != list[j].PostCount {
			return list[i].PostCount > list[j].PostCount
		}
		return list[i].GrowthRate > list[j].GrowthRate
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// growthRate is the percentage change against the previous period. A tag
// with no prior usage reports 100, matching the original system's sentinel.
func growthRate(current, previous int64) float64 {
	if previous == 0 {
		return 100
	}
	return float64(current-previous) / float64(previous) * 100
}
