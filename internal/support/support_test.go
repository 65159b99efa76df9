package support_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ledger/internal/support"
)

func TestLRUCache_EvictsOnOverflow(t *testing.T) {
	c := support.NewLRUCache[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3) // evicts "a", the least recently touched

	_, ok := c.Get("a")
	require.False(t, ok)
	v, ok := c.Get("c")
	require.True(t, ok)
	require.Equal(t, 3, v)
}

func TestEmptyCache_NeverStores(t *testing.T) {
	var c support.Cacher[string, int] = support.EmptyCache[string, int]{}
	c.Put("a", 1)
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestSet_AddAndContains(t *testing.T) {
	s := support.NewSet[uint16]()
	s.Add(1)
	s.Add(2)
	s.Add(1)
	require.Equal(t, 2, s.Len())
	require.True(t, s.Contains(1))
	require.False(t, s.Contains(3))
}

func TestMockClock_Advance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := support.NewMockClock(start)
	c.Advance(5 * time.Second)
	require.Equal(t, start.Add(5*time.Second), c.Now())
}
