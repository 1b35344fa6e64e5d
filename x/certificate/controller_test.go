package certificate

import (
	"testing"

	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/savingbanktest"
	"github.com/iov-one/savingbank/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintBurn(t *testing.T) {
	var (
		minter = savingbanktest.NewCondition().Address()
		alice  = savingbanktest.NewCondition().Address()
		bob    = savingbanktest.NewCondition().Address()
		id1    = savingbanktest.SequenceID(1)
		id2    = savingbanktest.SequenceID(2)
	)

	db := store.MemStore()
	ctrl := NewController()

	// nobody can mint before a minter is bound
	err := ctrl.Mint(db, minter, alice, id1)
	assert.True(t, errors.ErrState.Is(err))

	require.NoError(t, ctrl.Bind(db, minter))
	assert.True(t, errors.ErrState.Is(ctrl.Bind(db, alice)))

	err = ctrl.Mint(db, alice, alice, id1)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	require.NoError(t, ctrl.Mint(db, minter, alice, id1))
	require.NoError(t, ctrl.Mint(db, minter, alice, id2))
	err = ctrl.Mint(db, minter, bob, id1)
	assert.True(t, errors.ErrDuplicate.Is(err))

	owner, err := ctrl.OwnerOf(db, id1)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)

	n, err := ctrl.BalanceOf(db, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.True(t, errors.ErrUnauthorized.Is(ctrl.Burn(db, alice, id1)))
	require.NoError(t, ctrl.Burn(db, minter, id1))
	assert.True(t, errors.ErrNotFound.Is(ctrl.Burn(db, minter, id1)))

	_, err = ctrl.OwnerOf(db, id1)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = ctrl.OwnerOf(db, savingbanktest.SequenceID(99))
	assert.True(t, errors.ErrNotFound.Is(err))

	n, err = ctrl.BalanceOf(db, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// burned ids are retired forever
	err = ctrl.Mint(db, minter, bob, id1)
	assert.True(t, errors.ErrDuplicate.Is(err))
}

func TestTransferClearsApproval(t *testing.T) {
	var (
		minter = savingbanktest.NewCondition().Address()
		alice  = savingbanktest.NewCondition().Address()
		bob    = savingbanktest.NewCondition().Address()
		carol  = savingbanktest.NewCondition().Address()
		id     = savingbanktest.SequenceID(5)
	)

	db := store.MemStore()
	ctrl := NewController()
	require.NoError(t, ctrl.Bind(db, minter))
	require.NoError(t, ctrl.Mint(db, minter, alice, id))

	require.NoError(t, ctrl.Approve(db, id, carol))
	cert, err := ctrl.Get(db, id)
	require.NoError(t, err)
	assert.Equal(t, carol, cert.Approved)

	require.NoError(t, ctrl.Transfer(db, id, bob))
	cert, err = ctrl.Get(db, id)
	require.NoError(t, err)
	assert.Equal(t, bob, cert.Owner)
	assert.Empty(t, cert.Approved)

	n, err := ctrl.BalanceOf(db, alice)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	n, err = ctrl.BalanceOf(db, bob)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
