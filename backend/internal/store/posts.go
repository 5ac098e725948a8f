package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/errors"
)

// PostRepository wraps the post table and its hashtag association
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts the post and its post_hashtags join rows in one call
func (r *PostRepository) Create(ctx context.Context, post *Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return apperrors.NewStoreQueryFailed("create_post", err)
	}
	return nil
}

// FindWithHashtags returns the post with its hashtag rows preloaded, or nil
// when absent.
func (r *PostRepository) FindWithHashtags(ctx context.Context, id string) (*Post, error) {
	var post Post
	err := r.db.WithContext(ctx).Preload("Hashtags").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("find_post", err)
	}
	return &post, nil
}

// Delete removes the post row and clears its hashtag association
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Select("Hashtags").Delete(&Post{ID: id}).Error
	if err != nil {
		return apperrors.NewStoreQueryFailed("delete_post", err)
	}
	return nil
}
