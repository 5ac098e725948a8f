package social

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/mirror"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/store"
)

type fakeUserStore struct {
	users map[string]store.User
	saves int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]store.User{}}
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*store.User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *store.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) Save(_ context.Context, user *store.User) error {
	f.saves++
	f.users[user.ID] = *user
	return nil
}

func TestUserService_CreateAssignsUUID(t *testing.T) {
	st := newFakeUserStore()
	svc := NewUserService(st, mirror.New(okGraphWriter{}))

	user, err := svc.Create(context.Background(), "alice", "Alice")
	require.NoError(t, err)

	_, err = uuid.Parse(user.ID)
	assert.NoError(t, err, "ids are well-formed UUIDs in both stores")
	assert.Equal(t, "alice", user.Username)
}

func TestUserService_CreateSurvivesDeadGraphStore(t *testing.T) {
	st := newFakeUserStore()
	svc := NewUserService(st, mirror.New(failingGraphWriter{}))

	user, err := svc.Create(context.Background(), "alice", "Alice")
	require.NoError(t, err)
	assert.Contains(t, st.users, user.ID)
}

func TestUserService_UpdateProfile(t *testing.T) {
	st := newFakeUserStore()
	svc := NewUserService(st, mirror.New(okGraphWriter{}))

	created, err := svc.Create(context.Background(), "alice", "Alice")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), created.ID, "Alice B", "bio text")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Alice B", updated.DisplayName)
	assert.Equal(t, "bio text", updated.Bio)
	assert.Equal(t, 1, st.saves)
}

func TestUserService_UpdateProfileSurvivesDeadGraphStore(t *testing.T) {
	st := newFakeUserStore()
	created, err := NewUserService(st, mirror.New(okGraphWriter{})).Create(context.Background(), "alice", "Alice")
	require.NoError(t, err)

	svc := NewUserService(st, mirror.New(failingGraphWriter{}))
	updated, err := svc.UpdateProfile(context.Background(), created.ID, "Alice B", "")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Alice B", st.users[created.ID].DisplayName)
}

func TestUserService_UpdateProfileMissingUser(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), mirror.New(okGraphWriter{}))

	updated, err := svc.UpdateProfile(context.Background(), uuid.NewString(), "X", "")
	require.NoError(t, err)
	assert.Nil(t, updated, "absent user surfaces as nil result, not an error")
}
