package store

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/errors"
)

// ============================================================================
// Social Edge Repositories
// ============================================================================
//
// Follow, like and repost rows are the sole source of truth for edge
// existence. The service layer checks Exists before Create, which together
// with the composite unique indexes keeps the pair unique.

// FollowRepository wraps the follow relation table
type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.NewStoreQueryFailed("follow_exists", err)
	}
	return count > 0, nil
}

func (r *FollowRepository) Create(ctx context.Context, followerID, followedID string) error {
	row := Follow{FollowerID: followerID, FollowedID: followedID}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return apperrors.NewStoreQueryFailed("create_follow", err)
	}
	return nil
}

// Delete removes the edge; deleting an absent edge is not an error
func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID string) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&Follow{}).Error
	if err != nil {
		return apperrors.NewStoreQueryFailed("delete_follow", err)
	}
	return nil
}

// LikeRepository wraps the like relation table
type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.NewStoreQueryFailed("like_exists", err)
	}
	return count > 0, nil
}

func (r *LikeRepository) Create(ctx context.Context, userID, postID string) error {
	row := Like{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return apperrors.NewStoreQueryFailed("create_like", err)
	}
	return nil
}

// RepostRepository wraps the repost relation table
type RepostRepository struct {
	db *gorm.DB
}

func NewRepostRepository(db *gorm.DB) *RepostRepository {
	return &RepostRepository{db: db}
}

func (r *RepostRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Repost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.NewStoreQueryFailed("repost_exists", err)
	}
	return count > 0, nil
}

func (r *RepostRepository) Create(ctx context.Context, userID, postID string) error {
	row := Repost{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return apperrors.NewStoreQueryFailed("create_repost", err)
	}
	return nil
}
