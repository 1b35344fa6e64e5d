package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
)

// ModelBucket persists models of a single type under a common key prefix.
// Models are serialized with their own Marshal method and validated before
// every write.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db savingbank.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key value exists. It
	// returns ErrNotFound if no entity can be found.
	Has(db savingbank.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. Before inserting into
	// database, model is validated using its Validate method.
	// If the key is nil or zero length then a sequence generator provided
	// with the WithIDSequence option is used to acquire the next free key.
	// Created or updated key is returned.
	Put(db savingbank.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db savingbank.KVStore, key []byte) error

	// ByIndex loads all models referenced by the given index value into
	// destination. Destination must be a pointer to a slice of models.
	// Returned keys are the primary keys of the loaded models, in the same
	// order.
	ByIndex(db savingbank.ReadOnlyKVStore, indexName string, value []byte, dest ModelSlicePtr) ([][]byte, error)

	// IndexKeys returns the primary keys referenced by the given index
	// value, without loading the models.
	IndexKeys(db savingbank.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error)

	// All loads every model of this bucket into destination, in primary
	// key order.
	All(db savingbank.ReadOnlyKVStore, dest ModelSlicePtr) ([][]byte, error)

	// Register registers this bucket and all its indexes with the query
	// router. The bucket is served under /<name> and every index under
	// /<name>/<index name>.
	Register(name string, r savingbank.QueryRouter)
}

// ModelSlicePtr is a pointer to a slice of models, for example
// *[]Deposit or *[]*Deposit. It is used as a destination for loading
// many models at once.
type ModelSlicePtr interface{}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIDSequence configures the bucket to use the given sequence instance
// for generating primary keys for models that are saved without a key.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = &s
	}
}

// WithNativeIndex configures the bucket to maintain an index. The indexer
// returns the value a model is indexed by. Index entries are kept up to date
// on every Put and Delete.
func WithNativeIndex(name string, indexer IndexerFunc) ModelBucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic("index " + name + " declared twice")
		}
		mb.indexes[name] = newNativeIndex(mb.name, name, indexer)
	}
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// NewModelBucket returns a ModelBucket instance. The example model is used
// to create new instances when loading many models at once, so it must be a
// pointer to a struct.
func NewModelBucket(name string, example Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	tp := reflect.TypeOf(example)
	if tp.Kind() != reflect.Ptr {
		panic("model bucket example must be a pointer")
	}
	mb := &modelBucket{
		name:      name,
		prefix:    []byte(name + ":"),
		modelType: tp.Elem(),
		indexes:   make(map[string]*nativeIndex),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name      string
	prefix    []byte
	modelType reflect.Type
	idSeq     *Sequence
	indexes   map[string]*nativeIndex
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte(nil), mb.prefix...), key...)
}

func (mb *modelBucket) newModel() Model {
	return reflect.New(mb.modelType).Interface().(Model)
}

func (mb *modelBucket) One(db savingbank.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != reflect.PtrTo(mb.modelType) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.modelType)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.modelType.Name())
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", mb.modelType.Name(), err)
	}
	return nil
}

func (mb *modelBucket) Has(db savingbank.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.modelType.Name())
	}
	return nil
}

func (mb *modelBucket) Put(db savingbank.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != reflect.PtrTo(mb.modelType) {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		if mb.idSeq == nil {
			return nil, errors.Wrap(errors.ErrHuman, "ID sequence not configured")
		}
		var err error
		key, err = mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
	}

	var prev Model
	if len(mb.indexes) > 0 {
		prev = mb.newModel()
		switch err := mb.One(db, key, prev); {
		case err == nil:
		case errors.ErrNotFound.Is(err):
			prev = nil
		default:
			return nil, err
		}
	}

	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot marshal %s: %s", mb.modelType.Name(), err)
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	for _, ix := range mb.indexes {
		if err := ix.Update(db, key, prev, m); err != nil {
			return nil, err
		}
	}
	return key, nil
}

func (mb *modelBucket) Delete(db savingbank.KVStore, key []byte) error {
	prev := mb.newModel()
	if err := mb.One(db, key, prev); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	for _, ix := range mb.indexes {
		if err := ix.Update(db, key, prev, nil); err != nil {
			return err
		}
	}
	return nil
}

func (mb *modelBucket) index(name string) (*nativeIndex, error) {
	ix, ok := mb.indexes[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "no %q index in %s bucket", name, mb.name)
	}
	return ix, nil
}

func (mb *modelBucket) IndexKeys(db savingbank.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	ix, err := mb.index(indexName)
	if err != nil {
		return nil, err
	}
	return ix.Keys(db, value)
}

func (mb *modelBucket) ByIndex(db savingbank.ReadOnlyKVStore, indexName string, value []byte, dest ModelSlicePtr) ([][]byte, error) {
	keys, err := mb.IndexKeys(db, indexName, value)
	if err != nil {
		return nil, err
	}
	models := make([]Model, 0, len(keys))
	for _, key := range keys {
		m := mb.newModel()
		if err := mb.One(db, key, m); err != nil {
			return nil, errors.Wrapf(err, "index %q references missing entity", indexName)
		}
		models = append(models, m)
	}
	if err := loadInto(dest, models); err != nil {
		return nil, err
	}
	return keys, nil
}

func (mb *modelBucket) All(db savingbank.ReadOnlyKVStore, dest ModelSlicePtr) ([][]byte, error) {
	it, err := db.Iterator(mb.prefix, prefixEnd(mb.prefix))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Close()

	var (
		keys   [][]byte
		models []Model
	)
	for it.Valid() {
		m := mb.newModel()
		if err := m.Unmarshal(it.Value()); err != nil {
			return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", mb.modelType.Name(), err)
		}
		keys = append(keys, append([]byte(nil), it.Key()[len(mb.prefix):]...))
		models = append(models, m)
		if err := it.Next(); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	if err := loadInto(dest, models); err != nil {
		return nil, err
	}
	return keys, nil
}

// loadInto appends models to the slice pointed by dest. Both slices of
// values and slices of pointers are supported.
func loadInto(dest ModelSlicePtr, models []Model) error {
	ptr := reflect.ValueOf(dest)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() || ptr.Elem().Kind() != reflect.Slice {
		return errors.Wrapf(errors.ErrType, "destination must be a pointer to a slice, got %T", dest)
	}
	slice := ptr.Elem()
	elemType := slice.Type().Elem()
	for _, m := range models {
		v := reflect.ValueOf(m)
		switch {
		case v.Type() == elemType:
			slice = reflect.Append(slice, v)
		case v.Type().Elem() == elemType:
			slice = reflect.Append(slice, v.Elem())
		default:
			return errors.Wrapf(errors.ErrType, "cannot load %T into %s", m, slice.Type())
		}
	}
	ptr.Elem().Set(slice)
	return nil
}
