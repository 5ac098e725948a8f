package store

import "time"

// User is the authoritative user record. The graph mirror keeps only the id
// (plus username for diagnostics); everything else lives here.
type User struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	Username    string `json:"username" gorm:"uniqueIndex;size:30"`
	DisplayName string `json:"display_name" gorm:"size:60"`
	Bio         string `json:"bio,omitempty" gorm:"size:280"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Post is the authoritative post record
type Post struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid;index"`
	Content   string    `json:"content" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
	Hashtags  []Hashtag `json:"hashtags,omitempty" gorm:"many2many:post_hashtags"`
}

// Hashtag is the canonical hashtag row. Tag is the lowercase key; DisplayTag
// preserves the casing of the first use. PostCount is a cached usage count,
// monotonic non-negative.
type Hashtag struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	Tag        string    `json:"tag" gorm:"uniqueIndex;size:50"`
	DisplayTag string    `json:"display_tag" gorm:"size:50"`
	PostCount  int64     `json:"post_count"`
	LastUsedAt time.Time `json:"last_used_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Follow is the authoritative follow relation, unique per ordered pair
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID string    `json:"follower_id" gorm:"type:uuid;index;uniqueIndex:idx_follower_followed"`
	FollowedID string    `json:"followed_id" gorm:"type:uuid;index;uniqueIndex:idx_follower_followed"`
	CreatedAt  time.Time `json:"created_at"`
}

// Like is the authoritative like relation, unique per ordered pair
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;index;uniqueIndex:idx_like_user_post"`
	PostID    string    `json:"post_id" gorm:"type:uuid;index;uniqueIndex:idx_like_user_post"`
	CreatedAt time.Time `json:"created_at"`
}

// Repost is the authoritative repost relation, unique per ordered pair
type Repost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;index;uniqueIndex:idx_repost_user_post"`
	PostID    string    `json:"post_id" gorm:"type:uuid;index;uniqueIndex:idx_repost_user_post"`
	CreatedAt time.Time `json:"created_at"`
}
