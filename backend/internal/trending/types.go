package trending

import "time"

// Window is a supported trending time window
type Window string

const (
	WindowHour  Window = "1h"
	WindowDay   Window = "24h"
	WindowWeek  Window = "7d"
	WindowMonth Window = "30d"
)

// Windows lists every supported window, in ascending length
var Windows = []Window{WindowHour, WindowDay, WindowWeek, WindowMonth}

// ParseWindow maps a request string onto a supported window
func ParseWindow(s string) (Window, bool) {
	switch Window(s) {
	case WindowHour, WindowDay, WindowWeek, WindowMonth:
		return Window(s), true
	default:
		return "", false
	}
}

// Duration returns the window length; ok is false for unknown windows
func (w Window) Duration() (time.Duration, bool) {
	switch w {
	case WindowHour:
		return time.Hour, true
	case WindowDay:
		return 24 * time.Hour, true
	case WindowWeek:
		return 7 * 24 * time.Hour, true
	case WindowMonth:
		return 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// Hashtag is one derived trending entry. It is synthesized per computation
// and never persisted.
type Hashtag struct {
	Tag        string  `json:"tag"`
	DisplayTag string  `json:"display_tag"`
	PostCount  int64   `json:"post_count"`
	UserCount  int64   `json:"user_count"`
	GrowthRate float64 `json:"growth_rate"`
	IsTrending bool    `json:"is_trending"`
}
