package orm

import (
	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr savingbank.Iterator) ([]savingbank.Model, error) {
	defer itr.Close()

	var res []savingbank.Model
	for itr.Valid() {
		res = append(res, savingbank.Pair(itr.Key(), itr.Value()))
		if err := itr.Next(); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return res, nil
}

// Register exposes the bucket and every index of it to the query router.
func (mb *modelBucket) Register(name string, r savingbank.QueryRouter) {
	r.Register("/"+name, bucketQuery{mb: mb})
	for ixName, ix := range mb.indexes {
		r.Register("/"+name+"/"+ixName, indexQuery{mb: mb, ix: ix})
	}
}

// bucketQuery serves raw models by primary key or primary key prefix.
// Returned keys are the full database keys.
type bucketQuery struct {
	mb *modelBucket
}

func (q bucketQuery) Query(db savingbank.ReadOnlyKVStore, mod string, data []byte) ([]savingbank.Model, error) {
	switch mod {
	case savingbank.KeyQueryMod:
		key := q.mb.dbKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if value == nil {
			return nil, nil
		}
		return []savingbank.Model{savingbank.Pair(key, value)}, nil
	case savingbank.PrefixQueryMod:
		prefix := q.mb.dbKey(data)
		it, err := db.Iterator(prefix, prefixEnd(prefix))
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		return ConsumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// indexQuery serves all models referenced by an exact index value.
type indexQuery struct {
	mb *modelBucket
	ix *nativeIndex
}

func (q indexQuery) Query(db savingbank.ReadOnlyKVStore, mod string, data []byte) ([]savingbank.Model, error) {
	if mod != savingbank.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "index query does not support %q mod", mod)
	}
	keys, err := q.ix.Keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]savingbank.Model, 0, len(keys))
	for _, pk := range keys {
		key := q.mb.dbKey(pk)
		value, err := db.Get(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if value == nil {
			return nil, errors.Wrapf(errors.ErrState, "index %q references missing entity", q.ix.name)
		}
		res = append(res, savingbank.Pair(key, value))
	}
	return res, nil
}
