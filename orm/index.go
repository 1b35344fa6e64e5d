package orm

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
)

// IndexerFunc returns the value an entity is indexed by. A nil result means
// the entity is not indexed at all.
type IndexerFunc func(Model) ([]byte, error)

// nativeIndex keeps a reference from an index value to every primary key that
// produced it. Each reference is a separate, empty database entry with key
//
//   _i.<bucket>_<name>:<len(value)><value><primary key>
//
// so that a lookup is a single prefix scan and no shared list has to be
// rewritten on every update.
type nativeIndex struct {
	name    string
	prefix  []byte
	indexer IndexerFunc
}

func newNativeIndex(bucket, name string, indexer IndexerFunc) *nativeIndex {
	return &nativeIndex{
		name:    name,
		prefix:  []byte("_i." + bucket + "_" + name + ":"),
		indexer: indexer,
	}
}

func (ix *nativeIndex) valuePrefix(value []byte) ([]byte, error) {
	if len(value) > 0xffff {
		return nil, errors.Wrapf(errors.ErrInput, "index %q value too long", ix.name)
	}
	key := make([]byte, 0, len(ix.prefix)+2+len(value))
	key = append(key, ix.prefix...)
	key = append(key, byte(len(value)>>8), byte(len(value)))
	return append(key, value...), nil
}

func (ix *nativeIndex) refKey(value, pk []byte) ([]byte, error) {
	p, err := ix.valuePrefix(value)
	if err != nil {
		return nil, err
	}
	return append(p, pk...), nil
}

// Update moves the reference of pk from the prev value to the next value. Any
// of the models can be nil, meaning there was none (create) or there will be
// none (delete).
func (ix *nativeIndex) Update(db savingbank.KVStore, pk []byte, prev, next Model) error {
	var prevVal, nextVal []byte
	var err error
	if prev != nil {
		if prevVal, err = ix.indexer(prev); err != nil {
			return errors.Wrapf(err, "index %q", ix.name)
		}
	}
	if next != nil {
		if nextVal, err = ix.indexer(next); err != nil {
			return errors.Wrapf(err, "index %q", ix.name)
		}
	}
	if prev != nil && next != nil && bytes.Equal(prevVal, nextVal) {
		return nil
	}
	if prevVal != nil {
		key, err := ix.refKey(prevVal, pk)
		if err != nil {
			return err
		}
		if err := db.Delete(key); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	if nextVal != nil {
		key, err := ix.refKey(nextVal, pk)
		if err != nil {
			return err
		}
		if err := db.Set(key, []byte{}); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return nil
}

// Keys returns all primary keys referenced by the given index value, in
// primary key order.
func (ix *nativeIndex) Keys(db savingbank.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	start, err := ix.valuePrefix(value)
	if err != nil {
		return nil, err
	}
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Close()

	var keys [][]byte
	for it.Valid() {
		pk := it.Key()[len(start):]
		keys = append(keys, append([]byte(nil), pk...))
		if err := it.Next(); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return keys, nil
}

// Uint64Key encodes a number as a key that preserves numeric ordering.
func Uint64Key(n uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, n)
	return bz
}

// prefixEnd returns the smallest key that is greater than all keys starting
// with the given prefix, or nil if there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
