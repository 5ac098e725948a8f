package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/mirror"
)

type fakeEdgeStore struct {
	pairs   map[[2]string]bool
	creates int
}

func newFakeEdgeStore() *fakeEdgeStore {
	return &fakeEdgeStore{pairs: map[[2]string]bool{}}
}

func (f *fakeEdgeStore) Exists(_ context.Context, userID, postID string) (bool, error) {
	return f.pairs[[2]string{userID, postID}], nil
}

func (f *fakeEdgeStore) Create(_ context.Context, userID, postID string) error {
	f.creates++
	f.pairs[[2]string{userID, postID}] = true
	return nil
}

func TestEngagementService_LikeIsIdempotent(t *testing.T) {
	likes := newFakeEdgeStore()
	svc := NewEngagementService(likes, newFakeEdgeStore(), mirror.New(okGraphWriter{}))

	first, err := svc.Like(context.Background(), "user-1", "post-1")
	require.NoError(t, err)
	second, err := svc.Like(context.Background(), "user-1", "post-1")
	require.NoError(t, err)

	assert.True(t, first)
	assert.True(t, second)
	assert.Equal(t, 1, likes.creates)
}

func TestEngagementService_RepostIsIdempotent(t *testing.T) {
	reposts := newFakeEdgeStore()
	svc := NewEngagementService(newFakeEdgeStore(), reposts, mirror.New(okGraphWriter{}))

	first, err := svc.Repost(context.Background(), "user-1", "post-1")
	require.NoError(t, err)
	second, err := svc.Repost(context.Background(), "user-1", "post-1")
	require.NoError(t, err)

	assert.True(t, first)
	assert.True(t, second)
	assert.Equal(t, 1, reposts.creates)
}

func TestEngagementService_MirrorFailureDoesNotAffectResult(t *testing.T) {
	likes := newFakeEdgeStore()
	svc := NewEngagementService(likes, newFakeEdgeStore(), mirror.New(failingGraphWriter{}))

	liked, err := svc.Like(context.Background(), "user-1", "post-1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, likes.creates)
}
