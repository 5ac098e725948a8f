package mirror

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JoaoTravalini/EsporTz-sub001/backend/internal/graph"
)

type recordingWriter struct {
	err   error
	calls []string
}

func (w *recordingWriter) MergeUser(_ context.Context, _, _ string) error {
	w.calls = append(w.calls, "merge_user")
	return w.err
}

func (w *recordingWriter) MergeFollow(_ context.Context, _, _ string) error {
	w.calls = append(w.calls, "merge_follow")
	return w.err
}

func (w *recordingWriter) DeleteFollow(_ context.Context, _, _ string) error {
	w.calls = append(w.calls, "delete_follow")
	return w.err
}

func (w *recordingWriter) MergeLike(_ context.Context, _, _ string) error {
	w.calls = append(w.calls, "merge_like")
	return w.err
}

func (w *recordingWriter) MergeRepost(_ context.Context, _, _ string) error {
	w.calls = append(w.calls, "merge_repost")
	return w.err
}

func (w *recordingWriter) MergePostTags(_ context.Context, _, _ string, _ time.Time, _ []graph.TagRef) error {
	w.calls = append(w.calls, "merge_post_tags")
	return w.err
}

func invokeAll(m *Mirror) {
	ctx := context.Background()
	m.UserSaved(ctx, "user-1", "alice")
	m.FollowCreated(ctx, "user-1", "user-2")
	m.FollowRemoved(ctx, "user-1", "user-2")
	m.LikeCreated(ctx, "user-1", "post-1")
	m.RepostCreated(ctx, "user-1", "post-1")
	m.PostTagged(ctx, "post-1", "user-1", time.Now(), []graph.TagRef{{Tag: "football"}})
}

func TestMirror_PropagatesAllOperations(t *testing.T) {
	w := &recordingWriter{}
	invokeAll(New(w))

	assert.Equal(t, []string{
		"merge_user",
		"merge_follow",
		"delete_follow",
		"merge_like",
		"merge_repost",
		"merge_post_tags",
	}, w.calls)
}

func TestMirror_SwallowsGraphFailures(t *testing.T) {
	w := &recordingWriter{err: errors.New("neo4j unreachable")}

	// Every call must return normally despite the failing writer.
	invokeAll(New(w))

	assert.Len(t, w.calls, 6, "each operation was still attempted")
}
