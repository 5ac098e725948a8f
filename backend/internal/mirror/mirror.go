package mirror

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/graph"
	apperrors "github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/errors"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/logger"
)

// GraphWriter is the port the mirror needs from the graph store adapter.
// Every method must be idempotent: replaying a fact leaves one node/edge.
type GraphWriter interface {
	MergeUser(ctx context.Context, userID, username string) error
	MergeFollow(ctx context.Context, followerID, followedID string) error
	DeleteFollow(ctx context.Context, followerID, followedID string) error
	MergeLike(ctx context.Context, userID, postID string) error
	MergeRepost(ctx context.Context, userID, postID string) error
	MergePostTags(ctx context.Context, postID, userID string, createdAt time.Time, tags []graph.TagRef) error
}

// Mirror propagates committed relational writes into the graph store,
// best-effort. Methods return nothing: a mirror failure is logged and
// swallowed so the primary operation's outcome never depends on the
// graph store being reachable.
type Mirror struct {
	graph  GraphWriter
	logger *zap.Logger
}

func New(graphWriter GraphWriter) *Mirror {
	return &Mirror{
		graph:  graphWriter,
		logger: logger.Named("mirror"),
	}
}

// UserSaved mirrors a user creation or profile update
func (m *Mirror) UserSaved(ctx context.Context, userID, username string) {
	m.attempt("merge_user", m.graph.MergeUser(ctx, userID, username),
		zap.String("user_id", userID))
}

// FollowCreated mirrors a new follow edge
func (m *Mirror) FollowCreated(ctx context.Context, followerID, followedID string) {
	m.attempt("merge_follow", m.graph.MergeFollow(ctx, followerID, followedID),
		zap.String("follower_id", followerID),
		zap.String("followed_id", followedID))
}

// FollowRemoved mirrors a follow edge removal
func (m *Mirror) FollowRemoved(ctx context.Context, followerID, followedID string) {
	m.attempt("delete_follow", m.graph.DeleteFollow(ctx, followerID, followedID),
		zap.String("follower_id", followerID),
		zap.String("followed_id", followedID))
}

// LikeCreated mirrors a new like edge
func (m *Mirror) LikeCreated(ctx context.Context, userID, postID string) {
	m.attempt("merge_like", m.graph.MergeLike(ctx, userID, postID),
		zap.String("user_id", userID),
		zap.String("post_id", postID))
}

// RepostCreated mirrors a new repost edge
func (m *Mirror) RepostCreated(ctx context.Context, userID, postID string) {
	m.attempt("merge_repost", m.graph.MergeRepost(ctx, userID, postID),
		zap.String("user_id", userID),
		zap.String("post_id", postID))
}

// PostTagged mirrors a post's hashtag usage
func (m *Mirror) PostTagged(ctx context.Context, postID, userID string, createdAt time.Time, tags []graph.TagRef) {
	m.attempt("merge_post_tags", m.graph.MergePostTags(ctx, postID, userID, createdAt, tags),
		zap.String("post_id", postID),
		zap.String("user_id", userID),
		zap.Int("tags", len(tags)))
}

func (m *Mirror) attempt(op string, err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	mirrorErr := apperrors.NewMirrorWriteFailed(op, err)
	m.logger.Warn("graph mirror write failed",
		append(fields, zap.String("operation", op), zap.Error(mirrorErr))...)
}
