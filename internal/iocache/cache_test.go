package iocache_test

import (
	"testing"
	"time"

	"github.com/gnames/gnflora/internal/iocache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_RoundTrip(t *testing.T) {
	cache, err := iocache.New(t.TempDir(), 0)
	require.NoError(t, err)
	defer cache.Close()

	type payload struct {
		Name  string
		Count int
	}

	err = cache.Set("taxonomy|v3.0", payload{Name: "Poa", Count: 3})
	require.NoError(t, err)

	var got payload
	ok, err := cache.Get("taxonomy|v3.0", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Poa", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestCache_Miss(t *testing.T) {
	cache, err := iocache.New(t.TempDir(), 0)
	require.NoError(t, err)
	defer cache.Close()

	var got string
	ok, err := cache.Get("nothing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_TTLExpiry(t *testing.T) {
	cache, err := iocache.New(t.TempDir(), time.Nanosecond)
	require.NoError(t, err)
	defer cache.Close()

	err = cache.Set("key", "value")
	require.NoError(t, err)

	// The nanosecond TTL has passed by the time we read.
	time.Sleep(10 * time.Millisecond)

	var got string
	ok, err := cache.Get("key", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Overwrite(t *testing.T) {
	cache, err := iocache.New(t.TempDir(), 0)
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Set("key", "old"))
	require.NoError(t, cache.Set("key", "new"))

	var got string
	ok, err := cache.Get("key", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestCache_ReopenPersists(t *testing.T) {
	dir := t.TempDir()

	cache, err := iocache.New(dir, 0)
	require.NoError(t, err)
	require.NoError(t, cache.Set("key", "value"))
	require.NoError(t, cache.Close())

	cache, err = iocache.New(dir, 0)
	require.NoError(t, err)
	defer cache.Close()

	var got string
	ok, err := cache.Get("key", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", got)
}
