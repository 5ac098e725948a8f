package trending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_FreshWithinTTL(t *testing.T) {
	now := time.Now()
	c := NewCache(15 * time.Minute)
	c.now = func() time.Time { return now }

	c.Put(WindowDay, 10, []Hashtag{{Tag: "football"}})

	now = now.Add(14 * time.Minute)
	list, ok := c.Fresh(WindowDay, 10)
	require.True(t, ok)
	assert.Equal(t, "football", list[0].Tag)
}

func TestCache_ExpiresAtTTL(t *testing.T) {
	now := time.Now()
	c := NewCache(15 * time.Minute)
	c.now = func() time.Time { return now }

	c.Put(WindowDay, 10, []Hashtag{{Tag: "football"}})

	now = now.Add(15 * time.Minute)
	_, ok := c.Fresh(WindowDay, 10)
	assert.False(t, ok)

	// Stale still serves the expired entry
	list, ok := c.Stale(WindowDay, 10)
	require.True(t, ok)
	assert.Equal(t, "football", list[0].Tag)
}

func TestCache_KeyedByWindowAndLimit(t *testing.T) {
	c := NewCache(15 * time.Minute)
	c.Put(WindowDay, 10, []Hashtag{{Tag: "football"}})

	_, ok := c.Fresh(WindowDay, 20)
	assert.False(t, ok)
	_, ok = c.Fresh(WindowHour, 10)
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c := NewCache(15 * time.Minute)
	c.Put(WindowDay, 10, []Hashtag{{Tag: "football"}})

	c.Clear()

	_, ok := c.Stale(WindowDay, 10)
	assert.False(t, ok)
}

func TestCache_PutReplacesWholeEntry(t *testing.T) {
	c := NewCache(15 * time.Minute)
	c.Put(WindowDay, 10, []Hashtag{{Tag: "football"}, {Tag: "soccer"}})
	c.Put(WindowDay, 10, []Hashtag{{Tag: "uefa"}})

	list, ok := c.Fresh(WindowDay, 10)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "uefa", list[0].Tag)
}
