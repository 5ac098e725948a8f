package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/errors"
)

// UserRepository wraps the user table
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns the user or nil when absent
func (r *UserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("find_user", err)
	}
	return &user, nil
}

// FindByIDs returns the users matching ids, in storage order. Callers that
// care about ranking reorder the result themselves.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("find_users", err)
	}
	return users, nil
}

// Random samples up to limit users in random order, excluding excludeID
func (r *UserRepository) Random(ctx context.Context, excludeID string, limit int) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("id <> ?", excludeID).
		Order("RANDOM()").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("random_users", err)
	}
	return users, nil
}

// RecentlyActiveIDs returns the ids of the most recently updated users,
// used to pick the precompute batch.
func (r *UserRepository) RecentlyActiveIDs(ctx context.Context, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Order("updated_at DESC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperrors.NewStoreQueryFailed("recently_active_users", err)
	}
	return ids, nil
}

// Create inserts a new user row
func (r *UserRepository) Create(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperrors.NewStoreQueryFailed("create_user", err)
	}
	return nil
}

// Save persists profile changes to an existing user row
func (r *UserRepository) Save(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return apperrors.NewStoreQueryFailed("save_user", err)
	}
	return nil
}
