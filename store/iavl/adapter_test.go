package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/savingbank/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeBase returns the base layer backed by an in-memory iavl tree
func makeBase() (store.CacheableKVStore, func()) {
	return MockCommitStore().Adapter(), func() {}
}

func TestIavlGetSet(t *testing.T) {
	store.NewTestSuite(makeBase).GetSet(t)
}

func TestIavlCacheConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).CacheConflicts(t)
}

func TestIavlIterator(t *testing.T) {
	store.NewTestSuite(makeBase).FuzzIterator(t)
}

func TestIavlIteratorWithConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).IteratorWithConflicts(t)
}

func TestCommitOverwrite(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-commit-")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	commit := NewCommitStore(tmpDir, "savingbank")
	require.NoError(t, commit.LoadLatestVersion())

	k, v, v2 := []byte("deposit"), []byte("open"), []byte("closed")

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set(k, v))
	require.NoError(t, cache.Write())

	// not visible until committed
	got, err := commit.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = commit.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	cache = commit.CacheWrap()
	require.NoError(t, cache.Set(k, v2))
	require.NoError(t, cache.Write())
	id2, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2.Version)
	assert.NotEqual(t, id.Hash, id2.Hash)

	latest, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id2, latest)

}
