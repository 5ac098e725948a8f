package graph

import (
	"context"
	"fmt"
	"time"
)

// ============================================================================
// Mirror Write Operations
// ============================================================================
//
// Every write here is MERGE-based so replaying the same fact twice leaves a
// single node/edge. The relational store has already committed by the time
// any of these run; callers own the decision to swallow failures.

// MergeUser creates or refreshes the minimal user node mirror
func (r *Repository) MergeUser(ctx context.Context, userID, username string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MERGE (u:User {id: $userID})
		ON CREATE SET u.created_at = datetime()
		SET u.username = $username
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"userID":   userID,
		"username": username,
	})
	if err != nil {
		return fmt.Errorf("failed to merge user: %w", err)
	}

	return nil
}

// MergeFollow creates a directed FOLLOWS edge between two user mirrors
func (r *Repository) MergeFollow(ctx context.Context, followerID, followedID string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		MERGE (a:User {id: $followerID})
		MERGE (b:User {id: $followedID})
		MERGE (a)-[f:FOLLOWS]->(b)
		ON CREATE SET f.created_at = datetime($now)
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"followerID": followerID,
		"followedID": followedID,
		"now":        now,
	})
	if err != nil {
		return fmt.Errorf("failed to merge follow edge: %w", err)
	}

	return nil
}

// DeleteFollow removes the FOLLOWS edge between two user mirrors if present
func (r *Repository) DeleteFollow(ctx context.Context, followerID, followedID string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (a:User {id: $followerID})-[f:FOLLOWS]->(b:User {id: $followedID})
		DELETE f
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"followerID": followerID,
		"followedID": followedID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}

	return nil
}

// MergeLike creates a LIKED edge from a user mirror to a post mirror
func (r *Repository) MergeLike(ctx context.Context, userID, postID string) error {
	return r.mergePostEdge(ctx, userID, postID, "LIKED")
}

// MergeRepost creates a REPOSTED edge from a user mirror to a post mirror
func (r *Repository) MergeRepost(ctx context.Context, userID, postID string) error {
	return r.mergePostEdge(ctx, userID, postID, "REPOSTED")
}

func (r *Repository) mergePostEdge(ctx context.Context, userID, postID, relType string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	now := time.Now().UTC().Format(time.RFC3339)

	// Relationship types cannot be parameterized in Cypher; relType is one of
	// the two constants above, never caller input.
	query := fmt.Sprintf(`
		MERGE (u:User {id: $userID})
		MERGE (p:Post {id: $postID})
		MERGE (u)-[e:%s]->(p)
		ON CREATE SET e.created_at = datetime($now)
	`, relType)

	_, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
		"postID": postID,
		"now":    now,
	})
	if err != nil {
		return fmt.Errorf("failed to merge %s edge: %w", relType, err)
	}

	return nil
}

// MergePostTags mirrors one post's hashtag usage: the post node with its
// creation time and author, a HAS_TAG edge per hashtag, and a USED_TAG edge
// from the author carrying an incrementing count and refreshed last_used.
func (r *Repository) MergePostTags(ctx context.Context, postID, userID string, createdAt time.Time, tags []TagRef) error {
	if len(tags) == 0 {
		return nil
	}

	session := r.writeSession(ctx)
	defer session.Close(ctx)

	created := createdAt.UTC().Format(time.RFC3339)
	now := time.Now().UTC().Format(time.RFC3339)

	tagParams := make([]map[string]interface{}, 0, len(tags))
	for _, t := range tags {
		tagParams = append(tagParams, map[string]interface{}{
			"tag":     t.Tag,
			"display": t.DisplayTag,
		})
	}

	query := `
		MERGE (u:User {id: $userID})
		MERGE (p:Post {id: $postID})
		ON CREATE SET p.created_at = datetime($created)
		MERGE (u)-[:POSTED]->(p)
		WITH u, p
		UNWIND $tags AS t
		MERGE (h:Hashtag {tag: t.tag})
		ON CREATE SET h.display_tag = t.display
		MERGE (p)-[:HAS_TAG]->(h)
		MERGE (u)-[ut:USED_TAG]->(h)
		ON CREATE SET
			ut.count = 1,
			ut.last_used = datetime($now)
		ON MATCH SET
			ut.count = ut.count + 1,
			ut.last_used = datetime($now)
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"userID":  userID,
		"postID":  postID,
		"created": created,
		"now":     now,
		"tags":    tagParams,
	})
	if err != nil {
		return fmt.Errorf("failed to merge post tags: %w", err)
	}

	return nil
}

// FlushMirror removes all mirrored nodes and edges. Destructive; used by the
// seed script and integration tests only.
func (r *Repository) FlushMirror(ctx context.Context) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.Run(ctx, `MATCH (n) DETACH DELETE n`, map[string]interface{}{})
	if err != nil {
		return fmt.Errorf("failed to flush mirror: %w", err)
	}

	return nil
}
