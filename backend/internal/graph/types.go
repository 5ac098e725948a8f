package graph

// TagRef identifies a hashtag crossing into the graph store, carrying the
// display casing so the Hashtag node can serve trending reads on its own.
type TagRef struct {
	Tag        string `json:"tag"`
	DisplayTag string `json:"display_tag"`
}

// TagCount is the per-hashtag aggregate for one time window: how many
// distinct posts used the tag and how many distinct users authored them.
type TagCount struct {
	Tag        string `json:"tag"`
	DisplayTag string `json:"display_tag"`
	PostCount  int64  `json:"post_count"`
	UserCount  int64  `json:"user_count"`
}
