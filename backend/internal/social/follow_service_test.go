package social

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/graph"
	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/mirror"
)

type fakeFollowStore struct {
	pairs   map[[2]string]bool
	creates int
	deletes int
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{pairs: map[[2]string]bool{}}
}

func (f *fakeFollowStore) Exists(_ context.Context, followerID, followedID string) (bool, error) {
	return f.pairs[[2]string{followerID, followedID}], nil
}

func (f *fakeFollowStore) Create(_ context.Context, followerID, followedID string) error {
	f.creates++
	f.pairs[[2]string{followerID, followedID}] = true
	return nil
}

func (f *fakeFollowStore) Delete(_ context.Context, followerID, followedID string) error {
	f.deletes++
	delete(f.pairs, [2]string{followerID, followedID})
	return nil
}

// failingGraphWriter simulates a dead graph store behind the mirror
type failingGraphWriter struct{}

func (failingGraphWriter) MergeUser(context.Context, string, string) error {
	return errors.New("neo4j unreachable")
}
func (failingGraphWriter) MergeFollow(context.Context, string, string) error {
	return errors.New("neo4j unreachable")
}
func (failingGraphWriter) DeleteFollow(context.Context, string, string) error {
	return errors.New("neo4j unreachable")
}
func (failingGraphWriter) MergeLike(context.Context, string, string) error {
	return errors.New("neo4j unreachable")
}
func (failingGraphWriter) MergeRepost(context.Context, string, string) error {
	return errors.New("neo4j unreachable")
}
func (failingGraphWriter) MergePostTags(context.Context, string, string, time.Time, []graph.TagRef) error {
	return errors.New("neo4j unreachable")
}

// okGraphWriter accepts everything
type okGraphWriter struct{}

func (okGraphWriter) MergeUser(context.Context, string, string) error      { return nil }
func (okGraphWriter) MergeFollow(context.Context, string, string) error    { return nil }
func (okGraphWriter) DeleteFollow(context.Context, string, string) error   { return nil }
func (okGraphWriter) MergeLike(context.Context, string, string) error      { return nil }
func (okGraphWriter) MergeRepost(context.Context, string, string) error    { return nil }
func (okGraphWriter) MergePostTags(context.Context, string, string, time.Time, []graph.TagRef) error {
	return nil
}

func TestFollowService_SelfFollowRejected(t *testing.T) {
	st := newFakeFollowStore()
	svc := NewFollowService(st, mirror.New(okGraphWriter{}))

	followed, err := svc.Follow(context.Background(), "user-1", "user-1")
	require.NoError(t, err)
	assert.False(t, followed)
	assert.Zero(t, st.creates, "no state change on self-follow")
}

func TestFollowService_FollowIsIdempotent(t *testing.T) {
	st := newFakeFollowStore()
	svc := NewFollowService(st, mirror.New(okGraphWriter{}))

	first, err := svc.Follow(context.Background(), "user-1", "user-2")
	require.NoError(t, err)
	second, err := svc.Follow(context.Background(), "user-1", "user-2")
	require.NoError(t, err)

	assert.True(t, first)
	assert.True(t, second)
	assert.Equal(t, 1, st.creates, "exactly one edge row")
}

func TestFollowService_UnfollowAbsentEdge(t *testing.T) {
	st := newFakeFollowStore()
	svc := NewFollowService(st, mirror.New(okGraphWriter{}))

	assert.NoError(t, svc.Unfollow(context.Background(), "user-1", "user-2"))
}

func TestFollowService_MirrorFailureDoesNotAffectResult(t *testing.T) {
	st := newFakeFollowStore()
	svc := NewFollowService(st, mirror.New(failingGraphWriter{}))

	followed, err := svc.Follow(context.Background(), "user-1", "user-2")
	require.NoError(t, err)
	assert.True(t, followed)
	assert.Equal(t, 1, st.creates, "relational write committed despite dead graph store")

	assert.NoError(t, svc.Unfollow(context.Background(), "user-1", "user-2"))
}

func TestFollowService_IsFollowing(t *testing.T) {
	st := newFakeFollowStore()
	svc := NewFollowService(st, mirror.New(okGraphWriter{}))

	_, err := svc.Follow(context.Background(), "user-1", "user-2")
	require.NoError(t, err)

	yes, err := svc.IsFollowing(context.Background(), "user-1", "user-2")
	require.NoError(t, err)
	assert.True(t, yes)

	// Direction matters
	no, err := svc.IsFollowing(context.Background(), "user-2", "user-1")
	require.NoError(t, err)
	assert.False(t, no)
}
