package social

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/hashtag"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/store"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/logger"
)

// PostStore is the port the service needs from the relational adapter
type PostStore interface {
	Create(ctx context.Context, post *store.Post) error
	FindWithHashtags(ctx context.Context, id string) (*store.Post, error)
	Delete(ctx context.Context, id string) error
}

// Tagger is the port the service needs from the hashtag registry
type Tagger interface {
	Upsert(ctx context.Context, tags []string, content string) ([]store.Hashtag, error)
	DecrementCounts(ctx context.Context, ids []string) error
	SyncToGraph(ctx context.Context, postID, userID string, createdAt time.Time, hashtags []store.Hashtag)
}

// PostService owns post creation and deletion, driving the hashtag registry
// on both paths.
type PostService struct {
	posts  PostStore
	tags   Tagger
	logger *zap.Logger
}

func NewPostService(posts PostStore, tags Tagger) *PostService {
	return &PostService{
		posts:  posts,
		tags:   tags,
		logger: logger.Named("post"),
	}
}

// Create persists the post with its hashtag rows, then mirrors the tag usage
// into the graph store. The mirror step is best-effort and cannot fail the
// creation.
func (s *PostService) Create(ctx context.Context, authorID, content string) (*store.Post, error) {
	extracted := hashtag.Extract(content)
	rows, err := s.tags.Upsert(ctx, extracted, content)
	if err != nil {
		return nil, err
	}

	post := &store.Post{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Content:  content,
		Hashtags: rows,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.tags.SyncToGraph(ctx, post.ID, authorID, post.CreatedAt, rows)
	s.logger.Info("post created",
		zap.String("post_id", post.ID),
		zap.String("author_id", authorID),
		zap.Int("hashtags", len(rows)))
	return post, nil
}

// Delete removes the post and decrements each referenced hashtag's usage
// count. Deleting an absent post reports success.
func (s *PostService) Delete(ctx context.Context, postID string) error {
	post, err := s.posts.FindWithHashtags(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return nil
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	ids := lo.Map(post.Hashtags, func(h store.Hashtag, _ int) string { return h.ID })
	return s.tags.DecrementCounts(ctx, ids)
}
