package social

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/mirror"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/store"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/logger"
)

// UserStore is the port the service needs from the relational adapter
type UserStore interface {
	FindByID(ctx context.Context, id string) (*store.User, error)
	Create(ctx context.Context, user *store.User) error
	Save(ctx context.Context, user *store.User) error
}

// UserService owns user creation and profile updates. Both mirror the user
// node into the graph store after the relational commit.
type UserService struct {
	users  UserStore
	mirror *mirror.Mirror
	logger *zap.Logger
}

func NewUserService(users UserStore, m *mirror.Mirror) *UserService {
	return &UserService{
		users:  users,
		mirror: m,
		logger: logger.Named("user"),
	}
}

// Create registers a new user and mirrors the minimal node
func (s *UserService) Create(ctx context.Context, username, displayName string) (*store.User, error) {
	user := &store.User{
		ID:          uuid.NewString(),
		Username:    username,
		DisplayName: displayName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.mirror.UserSaved(ctx, user.ID, user.Username)
	s.logger.Info("user created",
		zap.String("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// UpdateProfile saves profile changes and re-merges the node properties.
// A missing user surfaces as a nil result, not an error.
func (s *UserService) UpdateProfile(ctx context.Context, userID, displayName, bio string) (*store.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	user.DisplayName = displayName
	user.Bio = bio
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.mirror.UserSaved(ctx, user.ID, user.Username)
	return user, nil
}
