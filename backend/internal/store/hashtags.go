package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/errors"
)

// HashtagRepository wraps the hashtag table
type HashtagRepository struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) *HashtagRepository {
	return &HashtagRepository{db: db}
}

// FindByTags returns the rows whose canonical tag matches any of tags
func (r *HashtagRepository) FindByTags(ctx context.Context, tags []string) ([]Hashtag, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	var rows []Hashtag
	err := r.db.WithContext(ctx).Where("tag IN ?", tags).Find(&rows).Error
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("find_hashtags", err)
	}
	return rows, nil
}

// FindByIDs returns the rows matching ids
func (r *HashtagRepository) FindByIDs(ctx context.Context, ids []string) ([]Hashtag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []Hashtag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("find_hashtags", err)
	}
	return rows, nil
}

// Create inserts a new hashtag row
func (r *HashtagRepository) Create(ctx context.Context, row *Hashtag) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return apperrors.NewStoreQueryFailed("create_hashtag", err)
	}
	return nil
}

// IncrementUsage bumps post_count and refreshes last_used_at for one row
func (r *HashtagRepository) IncrementUsage(ctx context.Context, id string, now time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&Hashtag{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"post_count":   gorm.Expr("post_count + 1"),
			"last_used_at": now,
		}).Error
	if err != nil {
		return apperrors.NewStoreQueryFailed("increment_hashtag", err)
	}
	return nil
}

// DecrementUsage drops post_count by one for each id, floored at zero
func (r *HashtagRepository) DecrementUsage(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&Hashtag{}).
		Where("id IN ?", ids).
		UpdateColumn("post_count", gorm.Expr("GREATEST(post_count - 1, 0)")).Error
	if err != nil {
		return apperrors.NewStoreQueryFailed("decrement_hashtag", err)
	}
	return nil
}
