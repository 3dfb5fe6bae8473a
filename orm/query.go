package orm

import (
	"github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/errors"
)

// queryPrefix returns all models with a given key prefix.
// The iterator is fully consumed, so this should only be used
// when the result set is known to be of a reasonable size.
func queryPrefix(db crowd.ReadOnlyKVStore, prefix []byte) ([]crowd.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return consumeIterator(itr)
}

// consumeIterator reads all remaining data into an
// array and releases the iterator
func consumeIterator(itr crowd.Iterator) ([]crowd.Model, error) {
	defer itr.Release()

	var res []crowd.Model
	for {
		key, value, err := itr.Next()
		switch {
		case err == nil:
			res = append(res, crowd.Model{Key: key, Value: value})
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// prefixRange turns a prefix into (start, end) to create
// and iterator over all keys with that prefix.
// Within a prefix, start of iteration is the prefix itself,
// end is calculated by incrementing the last non-0xFF byte.
// In the edge case of all 0xFF bytes, end is nil (no limit).
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end)
	for l > 0 {
		end[l-1]++
		if end[l-1] != 0 {
			return prefix, end[:l]
		}
		l--
	}
	return prefix, nil
}
