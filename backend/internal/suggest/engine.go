package suggest

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/store"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/logger"
)

// DefaultLimit is used when the caller passes a non-positive limit
const DefaultLimit = 5

// popularLimit is the K of the "most followed" leg of the ranked union
const popularLimit = 10

// GraphReader is the port the engine needs from the graph store adapter
type GraphReader interface {
	CountFollowing(ctx context.Context, userID string) (int64, error)
	RandomUserIDs(ctx context.Context, exclude []string, limit int) ([]string, error)
	SecondDegreeFollowIDs(ctx context.Context, userID string, limit int) ([]string, error)
	MostFollowedIDs(ctx context.Context, userID string, limit int) ([]string, error)
}

// UserFinder is the port the engine needs from the relational store
type UserFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]store.User, error)
	Random(ctx context.Context, excludeID string, limit int) ([]store.User, error)
}

// Engine computes ranked follow suggestions from the graph store, degrading
// to a relational random sample whenever the graph store misbehaves.
type Engine struct {
	graph  GraphReader
	users  UserFinder
	logger *zap.Logger
}

func NewEngine(g GraphReader, u UserFinder) *Engine {
	return &Engine{
		graph:  g,
		users:  u,
		logger: logger.Named("suggest"),
	}
}

// GetSuggestions returns up to limit users the given user might follow,
// never including the user themselves. Friends-of-friends and popular
// accounts rank ahead of random filler. Any graph store error short-circuits
// to the relational random fallback.
func (e *Engine) GetSuggestions(ctx context.Context, userID string, limit int) ([]store.User, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	following, err := e.graph.CountFollowing(ctx, userID)
	if err != nil {
		return e.fallback(ctx, userID, limit, err)
	}

	var ranked []string
	if following == 0 {
		ranked, err = e.graph.RandomUserIDs(ctx, []string{userID}, limit)
		if err != nil {
			return e.fallback(ctx, userID, limit, err)
		}
	} else {
		ranked, err = e.rankedCandidates(ctx, userID, limit)
		if err != nil {
			return e.fallback(ctx, userID, limit, err)
		}
	}

	valid := e.validateIDs(userID, ranked)
	if len(valid) > limit {
		valid = valid[:limit]
	}

	users, err := e.users.FindByIDs(ctx, valid)
	if err != nil {
		return nil, err
	}

	// Resolve back into ranking order; ids with no relational row drop out.
	byID := lo.Associate(users, func(u store.User) (string, store.User) {
		return u.ID, u
	})
	ordered := make([]store.User, 0, len(valid))
	for _, id := range valid {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered, nil
}

// rankedCandidates unions the two-hop traversal with the most-followed
// accounts, then pads with random users up to limit. Padding may fall short
// when the pool is exhausted.
func (e *Engine) rankedCandidates(ctx context.Context, userID string, limit int) ([]string, error) {
	second, err := e.graph.SecondDegreeFollowIDs(ctx, userID, limit*3)
	if err != nil {
		return nil, err
	}
	popular, err := e.graph.MostFollowedIDs(ctx, userID, popularLimit)
	if err != nil {
		return nil, err
	}

	ranked := lo.Uniq(append(second, popular...))
	if len(ranked) > limit {
		return ranked[:limit], nil
	}
	if len(ranked) == limit {
		return ranked, nil
	}

	exclude := append([]string{userID}, ranked...)
	pad, err := e.graph.RandomUserIDs(ctx, exclude, limit-len(ranked))
	if err != nil {
		return nil, err
	}
	return append(ranked, pad...), nil
}

// validateIDs drops the user's own id and anything that is not a well-formed
// UUID. Graph data is mirrored best-effort, so a malformed id is logged and
// skipped rather than propagated.
func (e *Engine) validateIDs(userID string, ids []string) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == userID {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			e.logger.Warn("dropping malformed id from graph store",
				zap.String("id", id), zap.Error(err))
			continue
		}
		valid = append(valid, id)
	}
	return lo.Uniq(valid)
}

// fallback is the degraded path: a plain random sample from the relational
// store, excluding the user, with no ranking.
func (e *Engine) fallback(ctx context.Context, userID string, limit int, cause error) ([]store.User, error) {
	e.logger.Warn("graph store unavailable for suggestions, using relational fallback",
		zap.String("user_id", userID), zap.Error(cause))
	return e.users.Random(ctx, userID, limit)
}
