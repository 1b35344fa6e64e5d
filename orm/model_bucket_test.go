package orm

import (
	"testing"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/codec"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// account is a minimal model used to exercise buckets.
type account struct {
	Owner   []byte
	Balance uint64
}

func (a *account) Marshal() ([]byte, error) { return codec.Marshal(a) }
func (a *account) Unmarshal(raw []byte) error {
	*a = account{}
	return codec.Unmarshal(raw, a)
}

func (a *account) Validate() error {
	if len(a.Owner) == 0 {
		return errors.Wrap(errors.ErrModel, "owner required")
	}
	return nil
}

func ownerIndex(m Model) ([]byte, error) {
	a, ok := m.(*account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return a.Owner, nil
}

func newAccountBucket() ModelBucket {
	return NewModelBucket("account", &account{},
		WithIDSequence(NewSequence("account", "id")),
		WithNativeIndex("owner", ownerIndex),
	)
}

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := newAccountBucket()

	k1, err := b.Put(db, nil, &account{Owner: []byte("alice"), Balance: 10})
	require.NoError(t, err)
	assert.Equal(t, Uint64Key(1), k1)
	k2, err := b.Put(db, nil, &account{Owner: []byte("bob"), Balance: 20})
	require.NoError(t, err)
	assert.Equal(t, Uint64Key(2), k2)

	var got account
	require.NoError(t, b.One(db, k2, &got))
	assert.Equal(t, uint64(20), got.Balance)

	err = b.One(db, Uint64Key(3), &got)
	assert.True(t, errors.ErrNotFound.Is(err))

	assert.NoError(t, b.Has(db, k1))
	assert.True(t, errors.ErrNotFound.Is(b.Has(db, Uint64Key(99))))

	// explicit key overwrites
	_, err = b.Put(db, k1, &account{Owner: []byte("alice"), Balance: 11})
	require.NoError(t, err)
	require.NoError(t, b.One(db, k1, &got))
	assert.Equal(t, uint64(11), got.Balance)
}

func TestModelBucketValidation(t *testing.T) {
	db := store.MemStore()
	b := newAccountBucket()

	_, err := b.Put(db, nil, &account{})
	assert.True(t, errors.ErrModel.Is(err))

	type other struct{ account }
	err = b.One(db, Uint64Key(1), &other{})
	assert.True(t, errors.ErrType.Is(err))

	noSeq := NewModelBucket("plain", &account{})
	_, err = noSeq.Put(db, nil, &account{Owner: []byte("x")})
	assert.True(t, errors.ErrHuman.Is(err))
}

func TestModelBucketIndex(t *testing.T) {
	db := store.MemStore()
	b := newAccountBucket()

	k1, err := b.Put(db, nil, &account{Owner: []byte("alice"), Balance: 1})
	require.NoError(t, err)
	k2, err := b.Put(db, nil, &account{Owner: []byte("bob"), Balance: 2})
	require.NoError(t, err)
	k3, err := b.Put(db, nil, &account{Owner: []byte("alice"), Balance: 3})
	require.NoError(t, err)

	var found []account
	keys, err := b.ByIndex(db, "owner", []byte("alice"), &found)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{k1, k3}, keys)
	require.Len(t, found, 2)
	assert.Equal(t, uint64(1), found[0].Balance)
	assert.Equal(t, uint64(3), found[1].Balance)

	// "ali" must not match "alice" entries
	keys, err = b.IndexKeys(db, "owner", []byte("ali"))
	require.NoError(t, err)
	assert.Empty(t, keys)

	// moving an entity updates the index
	_, err = b.Put(db, k1, &account{Owner: []byte("bob"), Balance: 1})
	require.NoError(t, err)
	var ptrs []*account
	keys, err = b.ByIndex(db, "owner", []byte("bob"), &ptrs)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{k1, k2}, keys)
	assert.Len(t, ptrs, 2)

	// deleting removes the reference
	require.NoError(t, b.Delete(db, k3))
	keys, err = b.IndexKeys(db, "owner", []byte("alice"))
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.True(t, errors.ErrNotFound.Is(b.Delete(db, k3)))

	_, err = b.IndexKeys(db, "unknown", nil)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestModelBucketAll(t *testing.T) {
	db := store.MemStore()
	b := newAccountBucket()
	for i := 0; i < 3; i++ {
		_, err := b.Put(db, nil, &account{Owner: []byte("o"), Balance: uint64(i)})
		require.NoError(t, err)
	}

	var all []account
	keys, err := b.All(db, &all)
	require.NoError(t, err)
	assert.Len(t, keys, 3)
	for i, a := range all {
		assert.Equal(t, uint64(i), a.Balance)
	}

	_, err = b.All(db, all)
	assert.True(t, errors.ErrType.Is(err))
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := newAccountBucket()
	k1, err := b.Put(db, nil, &account{Owner: []byte("alice"), Balance: 1})
	require.NoError(t, err)
	_, err = b.Put(db, nil, &account{Owner: []byte("bob"), Balance: 2})
	require.NoError(t, err)

	qr := savingbank.NewQueryRouter()
	b.Register("accounts", qr)

	res, err := qr.Handler("/accounts").Query(db, savingbank.KeyQueryMod, k1)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, append([]byte("account:"), k1...), res[0].Key)

	res, err = qr.Handler("/accounts").Query(db, savingbank.PrefixQueryMod, nil)
	require.NoError(t, err)
	assert.Len(t, res, 2)

	res, err = qr.Handler("/accounts/owner").Query(db, savingbank.KeyQueryMod, []byte("bob"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	var a account
	require.NoError(t, a.Unmarshal(res[0].Value))
	assert.Equal(t, uint64(2), a.Balance)

	res, err = qr.Handler("/accounts").Query(db, savingbank.KeyQueryMod, Uint64Key(77))
	require.NoError(t, err)
	assert.Empty(t, res)
}
