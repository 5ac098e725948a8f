package graph

import (
	"context"

	apperrors "github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/errors"
)

// ============================================================================
// Suggestion Traversal Operations
// ============================================================================

// CountFollowing returns the number of outgoing FOLLOWS edges for a user
func (r *Repository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (:User {id: $userID})-[f:FOLLOWS]->(:User)
		RETURN count(f) as following
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return 0, apperrors.NewGraphQueryFailed("count_following", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return 0, apperrors.NewGraphQueryFailed("count_following", err)
	}

	return getInt64FromRecord(record, "following"), nil
}

// RandomUserIDs samples up to limit distinct user ids uniformly at random,
// excluding every id in exclude.
func (r *Repository) RandomUserIDs(ctx context.Context, exclude []string, limit int) ([]string, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	if exclude == nil {
		exclude = []string{}
	}

	query := `
		MATCH (u:User)
		WHERE NOT u.id IN $exclude
		RETURN u.id as id
		ORDER BY rand()
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"exclude": exclude,
		"limit":   limit,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("random_users", err)
	}

	var ids []string
	for result.Next(ctx) {
		if id := getStringFromRecord(result.Record(), "id"); id != "" {
			ids = append(ids, id)
		}
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("random_users", err)
	}

	return ids, nil
}

// SecondDegreeFollowIDs collects distinct followees-of-followees for a user,
// excluding the user and anyone they already follow.
func (r *Repository) SecondDegreeFollowIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (me:User {id: $userID})-[:FOLLOWS]->(:User)-[:FOLLOWS]->(fof:User)
		WHERE fof.id <> $userID
		  AND NOT (me)-[:FOLLOWS]->(fof)
		RETURN DISTINCT fof.id as id
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
		"limit":  limit,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("second_degree_follows", err)
	}

	var ids []string
	for result.Next(ctx) {
		if id := getStringFromRecord(result.Record(), "id"); id != "" {
			ids = append(ids, id)
		}
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("second_degree_follows", err)
	}

	return ids, nil
}

// MostFollowedIDs returns the ids of the most-followed users, by inbound
// FOLLOWS count, excluding the user and anyone they already follow.
func (r *Repository) MostFollowedIDs(ctx context.Context, userID string, limit int) ([]string, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (u:User)<-[f:FOLLOWS]-(:User)
		WHERE u.id <> $userID
		  AND NOT EXISTS {
		  	MATCH (:User {id: $userID})-[:FOLLOWS]->(u)
		  }
		RETURN u.id as id, count(f) as followers
		ORDER BY followers DESC
		LIMIT $limit
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
		"limit":  limit,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("most_followed", err)
	}

	var ids []string
	for result.Next(ctx) {
		if id := getStringFromRecord(result.Record(), "id"); id != "" {
			ids = append(ids, id)
		}
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("most_followed", err)
	}

	return ids, nil
}
