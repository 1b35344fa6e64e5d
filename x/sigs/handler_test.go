package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/savingbanktest"
	"github.com/iov-one/savingbank/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBumpSequence(t *testing.T) {
	var (
		key1 = savingbanktest.NewKey().PublicKey()
		key2 = savingbanktest.NewKey().PublicKey()
	)

	cases := map[string]struct {
		InitData       []*UserData
		Msg            BumpSequenceMsg
		Signers        []savingbank.Condition
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
		// Signature verification bumps by one, so the handler only adds
		// the increment minus one.
		WantSequences []*UserData
	}{
		"great success": {
			InitData: []*UserData{
				{Pubkey: key1, Sequence: 1},
				{Pubkey: key2, Sequence: 9},
			},
			Signers: []savingbank.Condition{key1.Condition()},
			Msg:     BumpSequenceMsg{Increment: 2},
			WantSequences: []*UserData{
				{Pubkey: key1, Sequence: 2},
				{Pubkey: key2, Sequence: 9},
			},
		},
		"incrementing sequence of the main signer": {
			InitData: []*UserData{
				{Pubkey: key1, Sequence: 1},
				{Pubkey: key2, Sequence: 9},
			},
			Signers: []savingbank.Condition{key2.Condition(), key1.Condition()},
			Msg:     BumpSequenceMsg{Increment: 2},
			WantSequences: []*UserData{
				{Pubkey: key1, Sequence: 1},
				{Pubkey: key2, Sequence: 10},
			},
		},
		"transaction with a missing signature is rejected": {
			Msg:            BumpSequenceMsg{Increment: 1},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"message with a zero sequence increment is invalid": {
			InitData:       []*UserData{{Pubkey: key1, Sequence: 1}},
			Signers:        []savingbank.Condition{key1.Condition()},
			Msg:            BumpSequenceMsg{Increment: 0},
			WantCheckErr:   errors.ErrMsg,
			WantDeliverErr: errors.ErrMsg,
		},
		"user that we increment the sequence of must exist": {
			InitData:       []*UserData{{Pubkey: key2, Sequence: 4}},
			Signers:        []savingbank.Condition{key1.Condition()},
			Msg:            BumpSequenceMsg{Increment: 1},
			WantCheckErr:   errors.ErrNotFound,
			WantDeliverErr: errors.ErrNotFound,
		},
		"increment of one is a no-op on top of the signature": {
			InitData:      []*UserData{{Pubkey: key1, Sequence: 5}},
			Signers:       []savingbank.Condition{key1.Condition()},
			Msg:           BumpSequenceMsg{Increment: 1},
			WantSequences: []*UserData{{Pubkey: key1, Sequence: 5}},
		},
		"overflow is rejected": {
			InitData:       []*UserData{{Pubkey: key1, Sequence: maxSequenceValue - 1}},
			Signers:        []savingbank.Condition{key1.Condition()},
			Msg:            BumpSequenceMsg{Increment: 10},
			WantCheckErr:   errors.ErrOverflow,
			WantDeliverErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &savingbanktest.CtxAuth{Key: "auth"}
			rt := &router{}
			RegisterRoutes(rt, auth)

			db := store.MemStore()
			b := NewBucket()
			for _, u := range tc.InitData {
				require.NoError(t, b.Save(db, u))
			}

			ctx := auth.SetConditions(context.Background(), tc.Signers...)
			tx := &savingbanktest.Tx{Msg: &tc.Msg}

			cache := db.CacheWrap()
			if _, err := rt.h.Check(ctx, cache, tx); !tc.WantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %s", err)
			}
			cache.Discard()

			if _, err := rt.h.Deliver(ctx, db, tx); !tc.WantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %s", err)
			}

			for _, want := range tc.WantSequences {
				nonce, err := NextNonce(db, want.Pubkey.Address())
				require.NoError(t, err)
				assert.Equal(t, want.Sequence, nonce)
			}
		})
	}
}

// router captures the single handler this package registers.
type router struct {
	h savingbank.Handler
}

func (r *router) Handle(m savingbank.Msg, h savingbank.Handler) {
	r.h = h
}
