package graph

import (
	"context"
	"time"

	apperrors "github.com/JoaoTravalini/EsporTz-sub001/backend/pkg/errors"
)

// ============================================================================
// Trending Aggregate Operations
// ============================================================================

// TagCounts aggregates, per hashtag, distinct posts created in
// [since, until) and the distinct users who authored them. The engine runs
// this twice per computation: once for the current window, once for the
// preceding one.
func (r *Repository) TagCounts(ctx context.Context, since, until time.Time) ([]TagCount, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (h:Hashtag)<-[:HAS_TAG]-(p:Post)
		WHERE p.created_at >= datetime($since)
		  AND p.created_at < datetime($until)
		OPTIONAL MATCH (p)<-[:POSTED]-(u:User)
		RETURN
			h.tag as tag,
			h.display_tag as display_tag,
			count(DISTINCT p) as post_count,
			count(DISTINCT u) as user_count
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"since": since.UTC().Format(time.RFC3339),
		"until": until.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("tag_counts", err)
	}

	var counts []TagCount
	for result.Next(ctx) {
		record := result.Record()
		counts = append(counts, TagCount{
			Tag:        getStringFromRecord(record, "tag"),
			DisplayTag: getStringFromRecord(record, "display_tag"),
			PostCount:  getInt64FromRecord(record, "post_count"),
			UserCount:  getInt64FromRecord(record, "user_count"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("tag_counts", err)
	}

	return counts, nil
}
