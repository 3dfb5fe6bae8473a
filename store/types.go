//nolint
package store

import "github.com/crowdchain/crowd"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = crowd.ReadOnlyKVStore
type SetDeleter = crowd.SetDeleter
type KVStore = crowd.KVStore
type Batch = crowd.Batch
type Iterator = crowd.Iterator
type CacheableKVStore = crowd.CacheableKVStore
type KVCacheWrap = crowd.KVCacheWrap
type CommitKVStore = crowd.CommitKVStore
type CommitID = crowd.CommitID
type Model = crowd.Model

// Pair constructs a model from a key-value pair
var Pair = crowd.Pair
