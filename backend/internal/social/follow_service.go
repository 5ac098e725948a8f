package social

import (
	"context"

	"go.uber.org/zap"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/mirror"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/logger"
)

// FollowStore is the port the service needs from the relational adapter
type FollowStore interface {
	Exists(ctx context.Context, followerID, followedID string) (bool, error)
	Create(ctx context.Context, followerID, followedID string) error
	Delete(ctx context.Context, followerID, followedID string) error
}

// FollowService owns the follow/unfollow write path: relational commit
// first, then a best-effort graph mirror write.
type FollowService struct {
	follows FollowStore
	mirror  *mirror.Mirror
	logger  *zap.Logger
}

func NewFollowService(follows FollowStore, m *mirror.Mirror) *FollowService {
	return &FollowService{
		follows: follows,
		mirror:  m,
		logger:  logger.Named("follow"),
	}
}

// Follow creates the directed follow edge. Self-follows are rejected with a
// false result and no state change. Creating an existing edge succeeds
// without a second row.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID string) (bool, error) {
	if followerID == followedID {
		s.logger.Debug("rejecting self-follow", zap.String("user_id", followerID))
		return false, nil
	}

	exists, err := s.follows.Exists(ctx, followerID, followedID)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	if err := s.follows.Create(ctx, followerID, followedID); err != nil {
		return false, err
	}

	s.mirror.FollowCreated(ctx, followerID, followedID)
	return true, nil
}

// Unfollow removes the edge. Removing an edge that does not exist reports
// success without side effects.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID string) error {
	if err := s.follows.Delete(ctx, followerID, followedID); err != nil {
		return err
	}

	s.mirror.FollowRemoved(ctx, followerID, followedID)
	return nil
}

// IsFollowing answers single-edge existence from the relational store only;
// the graph mirror is never consulted for this.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	return s.follows.Exists(ctx, followerID, followedID)
}
