package social

import (
	"context"

	"go.uber.org/zap"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/mirror"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/logger"
)

// EdgeStore is the shared port for the like and repost relation tables
type EdgeStore interface {
	Exists(ctx context.Context, userID, postID string) (bool, error)
	Create(ctx context.Context, userID, postID string) error
}

// EngagementService owns the like and repost write paths. Both follow the
// same shape as follows: idempotent relational commit, then mirror.
type EngagementService struct {
	likes   EdgeStore
	reposts EdgeStore
	mirror  *mirror.Mirror
	logger  *zap.Logger
}

func NewEngagementService(likes, reposts EdgeStore, m *mirror.Mirror) *EngagementService {
	return &EngagementService{
		likes:   likes,
		reposts: reposts,
		mirror:  m,
		logger:  logger.Named("engagement"),
	}
}

// Like records a like edge; liking the same post twice keeps a single row
// and succeeds both times.
func (s *EngagementService) Like(ctx context.Context, userID, postID string) (bool, error) {
	exists, err := s.likes.Exists(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	if err := s.likes.Create(ctx, userID, postID); err != nil {
		return false, err
	}

	s.mirror.LikeCreated(ctx, userID, postID)
	return true, nil
}

// Repost records a repost edge with the same idempotence contract as Like
func (s *EngagementService) Repost(ctx context.Context, userID, postID string) (bool, error) {
	exists, err := s.reposts.Exists(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	if err := s.reposts.Create(ctx, userID, postID); err != nil {
		return false, err
	}

	s.mirror.RepostCreated(ctx, userID, postID)
	return true, nil
}
