package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheIteratorClose(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("A")))
	cache := db.CacheWrap()

	it, err := cache.Iterator([]byte("a"), []byte("z"))
	require.NoError(t, err)
	it.Close()
	// Close must be synchronous, so writes can follow right away.
	assert.NoError(t, db.Delete([]byte("a")))
}

func TestCacheReverseIteratorBounds(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, db.Set([]byte(k), []byte(k)))
	}
	cache := db.CacheWrap()
	require.NoError(t, cache.Delete([]byte("b")))

	it, err := cache.ReverseIterator([]byte("a"), []byte("d"))
	require.NoError(t, err)
	defer it.Close()

	var keys []string
	for ; it.Valid(); require.NoError(t, it.Next()) {
		keys = append(keys, string(it.Key()))
	}
	assert.Equal(t, []string{"c", "a"}, keys)
}
