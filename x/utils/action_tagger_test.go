package utils_test

import (
	"context"
	"testing"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/savingbanktest"
	"github.com/iov-one/savingbank/store"
	"github.com/iov-one/savingbank/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		handler savingbank.Handler
		tx      savingbank.Tx
		err     *errors.Error
		tags    []common.KVPair
	}{
		"simple call": {
			handler: &savingbanktest.Handler{},
			tx:      &savingbanktest.Tx{Msg: &savingbanktest.Msg{RoutePath: "ledger/create_deposit"}},
			tags:    []common.KVPair{stringTag(utils.ActionKey, "ledger/create_deposit")},
		},
		"passes through error": {
			handler: &savingbanktest.Handler{DeliverErr: errors.ErrEnforcedPause},
			tx:      &savingbanktest.Tx{Msg: &savingbanktest.Msg{RoutePath: "ledger/create_deposit"}},
			err:     errors.ErrEnforcedPause,
		},
		"tags are additive": {
			handler: &savingbanktest.Handler{
				DeliverResult: savingbank.DeliverResult{Tags: []common.KVPair{stringTag("plan", "1")}},
			},
			tx:   &savingbanktest.Tx{Msg: &savingbanktest.Msg{RoutePath: "plan/create"}},
			tags: []common.KVPair{stringTag("plan", "1"), stringTag(utils.ActionKey, "plan/create")},
		},
		"broken transaction": {
			handler: &savingbanktest.Handler{},
			tx:      &savingbanktest.Tx{Err: errors.ErrMsg},
			err:     errors.ErrMsg,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := savingbanktest.Decorate(tc.handler, utils.NewActionTagger())
			res, err := h.Deliver(context.Background(), store.MemStore(), tc.tx)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, len(tc.tags), len(res.Tags))
			for i := range tc.tags {
				assert.Equal(t, string(tc.tags[i].Key), string(res.Tags[i].Key))
				assert.Equal(t, string(tc.tags[i].Value), string(res.Tags[i].Value))
			}
		})
	}
}
