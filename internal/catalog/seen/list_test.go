package seen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderID(id string) func() (string, error) {
	return func() (string, error) { return "<div>" + id + "</div>", nil }
}

func touchAll(t *testing.T, l *List, max int, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := l.Touch(id, renderID(id), max)
		require.NoError(t, err)
	}
}

func TestListNeverExceedsMax(t *testing.T) {
	l := &List{}
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("p%d", i)
		_, err := l.Touch(id, renderID(id), 6)
		require.NoError(t, err)
		assert.LessOrEqual(t, l.Len(), 6)
	}
	assert.Equal(t, 6, l.Len())
}

func TestListRepeatViewMovesToMostRecent(t *testing.T) {
	l := &List{}
	touchAll(t, l, 6, "a", "b", "c")

	rendered := false
	moved, err := l.Touch("a", func() (string, error) {
		rendered = true
		return "", nil
	}, 6)
	require.NoError(t, err)

	assert.True(t, moved)
	assert.False(t, rendered, "known products keep their fragment")
	assert.Equal(t, []string{"b", "c", "a"}, l.IDs())
	assert.Equal(t, "<div>a</div>", l.Entries[2].HTML)
}

func TestListEvictsLeastRecentFirst(t *testing.T) {
	l := &List{}
	touchAll(t, l, 3, "a", "b", "c")
	touchAll(t, l, 3, "a") // b is now the oldest
	touchAll(t, l, 3, "d")

	assert.Equal(t, []string{"c", "a", "d"}, l.IDs())
	assert.False(t, l.Contains("b"))
}

func TestListShrinksWhenMaxIsLowered(t *testing.T) {
	l := &List{}
	touchAll(t, l, 6, "a", "b", "c", "d")
	touchAll(t, l, 2, "b")

	assert.Equal(t, []string{"d", "b"}, l.IDs())
}

func TestListMaxBelowOne(t *testing.T) {
	l := &List{}
	touchAll(t, l, 0, "a", "b")
	assert.Equal(t, []string{"b"}, l.IDs())
}

func TestListRenderError(t *testing.T) {
	l := &List{}
	touchAll(t, l, 6, "a")

	boom := errors.New("boom")
	_, err := l.Touch("b", func() (string, error) { return "", boom }, 6)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, l.IDs())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey("nb001"), CacheKey("nb001"))
	assert.NotEqual(t, CacheKey("nb001"), CacheKey("nb002"))
	assert.NotEmpty(t, CacheKey(""))
}
