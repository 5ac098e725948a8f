package hashtag

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/graph"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/store"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/logger"
)

// MaxTagLength is the longest accepted hashtag, not counting the '#'
const MaxTagLength = 50

var (
	tagPattern   = regexp.MustCompile(`#(\w+)`)
	validPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// Store is the port the registry needs from the relational adapter
type Store interface {
	FindByTags(ctx context.Context, tags []string) ([]store.Hashtag, error)
	Create(ctx context.Context, row *store.Hashtag) error
	IncrementUsage(ctx context.Context, id string, now time.Time) error
	DecrementUsage(ctx context.Context, ids []string) error
}

// TagMirror is the port the registry needs from the graph mirror
type TagMirror interface {
	PostTagged(ctx context.Context, postID, userID string, createdAt time.Time, tags []graph.TagRef)
}

// Registry extracts hashtags from post content, keeps the canonical rows in
// the relational store and mirrors usage into the graph store.
type Registry struct {
	store  Store
	mirror TagMirror
	logger *zap.Logger
}

func NewRegistry(s Store, m TagMirror) *Registry {
	return &Registry{
		store:  s,
		mirror: m,
		logger: logger.Named("hashtag"),
	}
}

// Extract finds every '#' followed by word characters, lowercases the
// matches and deduplicates them preserving first-seen order. Matches longer
// than MaxTagLength are dropped silently.
func Extract(content string) []string {
	matches := tagPattern.FindAllStringSubmatch(content, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m[1]) > MaxTagLength {
			continue
		}
		tags = append(tags, strings.ToLower(m[1]))
	}
	return lo.Uniq(tags)
}

// IsValid reports whether tag is a well-formed canonical hashtag
func IsValid(tag string) bool {
	return tag != "" && len(tag) <= MaxTagLength && validPattern.MatchString(tag)
}

// Upsert increments existing hashtag rows and creates missing ones.
// Invalid tags are skipped with a warning; the rest are processed. The
// returned rows carry the post-update counts, in input order.
func (r *Registry) Upsert(ctx context.Context, tags []string, content string) ([]store.Hashtag, error) {
	valid := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !IsValid(tag) {
			r.logger.Warn("skipping invalid hashtag", zap.String("tag", tag))
			continue
		}
		valid = append(valid, tag)
	}
	if len(valid) == 0 {
		return nil, nil
	}

	existing, err := r.store.FindByTags(ctx, valid)
	if err != nil {
		return nil, err
	}
	byTag := lo.Associate(existing, func(h store.Hashtag) (string, store.Hashtag) {
		return h.Tag, h
	})

	now := time.Now().UTC()
	rows := make([]store.Hashtag, 0, len(valid))
	for _, tag := range valid {
		if row, ok := byTag[tag]; ok {
			if err := r.store.IncrementUsage(ctx, row.ID, now); err != nil {
				return nil, err
			}
			row.PostCount++
			row.LastUsedAt = now
			rows = append(rows, row)
			continue
		}

		row := store.Hashtag{
			ID:         uuid.NewString(),
			Tag:        tag,
			DisplayTag: displayCasing(tag, content),
			PostCount:  1,
			LastUsedAt: now,
		}
		if err := r.store.Create(ctx, &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// DecrementCounts drops the usage count of each referenced hashtag by one,
// floored at zero. Called on post deletion.
func (r *Registry) DecrementCounts(ctx context.Context, ids []string) error {
	return r.store.DecrementUsage(ctx, ids)
}

// SyncToGraph mirrors HAS_TAG and USED_TAG edges for one post. Best-effort:
// the mirror swallows its own failures, so post creation never observes one.
func (r *Registry) SyncToGraph(ctx context.Context, postID, userID string, createdAt time.Time, hashtags []store.Hashtag) {
	if len(hashtags) == 0 {
		return
	}
	refs := lo.Map(hashtags, func(h store.Hashtag, _ int) graph.TagRef {
		return graph.TagRef{Tag: h.Tag, DisplayTag: h.DisplayTag}
	})
	r.mirror.PostTagged(ctx, postID, userID, createdAt, refs)
}

// displayCasing recovers the original casing of tag from its first
// occurrence in content, falling back to the canonical form.
func displayCasing(tag, content string) string {
	idx := strings.Index(strings.ToLower(content), "#"+tag)
	if idx < 0 || idx+1+len(tag) > len(content) {
		return tag
	}
	// Lowercasing can shift byte offsets in non-ASCII content; only trust the
	// slice when it still folds back to the canonical tag.
	candidate := content[idx+1 : idx+1+len(tag)]
	if content[idx] != '#' || !strings.EqualFold(candidate, tag) {
		return tag
	}
	return candidate
}
