package certificate

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

func TestHandlers(t *testing.T) {
	var (
		minter = savingbanktest.NewCondition()
		alice  = savingbanktest.NewCondition()
		bob    = savingbanktest.NewCondition()
		carol  = savingbanktest.NewCondition()
		id     = savingbanktest.SequenceID(1)
	)

	type request struct {
		signer  savingbank.Condition
		msg     savingbank.Msg
		wantErr *errors.Error
	}

	cases := map[string]struct {
		requests  []request
		wantOwner savingbank.Address
	}{
		"holder transfers": {
			requests: []request{
				{signer: alice, msg: &TransferMsg{CertificateID: id, Recipient: bob.Address()}},
			},
			wantOwner: bob.Address(),
		},
		"stranger cannot transfer": {
			requests: []request{
				{signer: bob, msg: &TransferMsg{CertificateID: id, Recipient: bob.Address()}, wantErr: errors.ErrUnauthorized},
			},
			wantOwner: alice.Address(),
		},
		"previous holder loses the right at once": {
			requests: []request{
				{signer: alice, msg: &TransferMsg{CertificateID: id, Recipient: bob.Address()}},
				{signer: alice, msg: &TransferMsg{CertificateID: id, Recipient: alice.Address()}, wantErr: errors.ErrUnauthorized},
			},
			wantOwner: bob.Address(),
		},
		"approved address transfers once": {
			requests: []request{
				{signer: alice, msg: &ApproveMsg{CertificateID: id, Approved: carol.Address()}},
				{signer: carol, msg: &TransferMsg{CertificateID: id, Recipient: carol.Address()}},
			},
			wantOwner: carol.Address(),
		},
		"only the holder approves": {
			requests: []request{
				{signer: carol, msg: &ApproveMsg{CertificateID: id, Approved: carol.Address()}, wantErr: errors.ErrUnauthorized},
			},
			wantOwner: alice.Address(),
		},
		"unknown certificate": {
			requests: []request{
				{signer: alice, msg: &TransferMsg{CertificateID: savingbanktest.SequenceID(2), Recipient: bob.Address()}, wantErr: errors.ErrNotFound},
			},
			wantOwner: alice.Address(),
		},
		"malformed id": {
			requests: []request{
				{signer: alice, msg: &TransferMsg{CertificateID: []byte{1}, Recipient: bob.Address()}, wantErr: errors.ErrInput},
			},
			wantOwner: alice.Address(),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			auth := &savingbanktest.CtxAuth{Key: "auth"}
			rt := newRouter()
			ctrl := NewController()
			RegisterRoutes(rt, auth, ctrl)

			db := store.MemStore()
			require.NoError(t, ctrl.Bind(db, minter.Address()))
			require.NoError(t, ctrl.Mint(db, minter.Address(), alice.Address(), id))

			for i, req := range tc.requests {
				ctx := auth.SetConditions(context.Background(), req.signer)
				tx := &savingbanktest.Tx{Msg: req.msg}
				h := rt.handlers[req.msg.Path()]

				cache := db.CacheWrap()
				if _, err := h.Check(ctx, cache, tx); !req.wantErr.Is(err) {
					t.Fatalf("request %d: unexpected check error: %+v", i, err)
				}
				cache.Discard()
				if _, err := h.Deliver(ctx, db, tx); !req.wantErr.Is(err) {
					t.Fatalf("request %d: unexpected deliver error: %+v", i, err)
				}
			}

			owner, err := ctrl.OwnerOf(db, id)
			require.NoError(t, err)
			assert.Equal(t, tc.wantOwner, owner)
		})
	}
}

type router struct {
	handlers map[string]savingbank.Handler
}

func newRouter() *router {
	return &router{handlers: make(map[string]savingbank.Handler)}
}

func (r *router) Handle(m savingbank.Msg, h savingbank.Handler) {
	r.handlers[m.Path()] = h
}
