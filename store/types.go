//nolint
package store

import "github.com/iov-one/savingbank"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = savingbank.ReadOnlyKVStore
type SetDeleter = savingbank.SetDeleter
type KVStore = savingbank.KVStore
type Batch = savingbank.Batch
type Iterator = savingbank.Iterator
type CacheableKVStore = savingbank.CacheableKVStore
type KVCacheWrap = savingbank.KVCacheWrap
type CommitKVStore = savingbank.CommitKVStore
type CommitID = savingbank.CommitID
type Model = savingbank.Model

var Pair = savingbank.Pair
