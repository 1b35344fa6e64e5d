package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/savingbanktest"
	"github.com/iov-one/savingbank/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	cases := map[string]struct {
		handler  *savingbanktest.Handler
		deliver  bool
		wantErr  bool
		wantLine string
	}{
		"deliver success is info": {
			handler:  &savingbanktest.Handler{DeliverResult: savingbank.DeliverResult{Log: "deposit created"}},
			deliver:  true,
			wantLine: "I[",
		},
		"check success is debug": {
			handler:  &savingbanktest.Handler{CheckResult: savingbank.CheckResult{Log: "deposit checked"}},
			wantLine: "D[",
		},
		"failure is error": {
			handler:  &savingbanktest.Handler{DeliverErr: errors.ErrDepositClosed},
			deliver:  true,
			wantErr:  true,
			wantLine: "E[",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := savingbank.WithLogger(context.Background(), log.NewTMLogger(&buf))
			tx := &savingbanktest.Tx{Msg: &savingbanktest.Msg{RoutePath: "ledger/withdraw"}}

			var err error
			if tc.deliver {
				_, err = NewLogging().Deliver(ctx, store.MemStore(), tx, tc.handler)
			} else {
				_, err = NewLogging().Check(ctx, store.MemStore(), tx, tc.handler)
			}
			assert.Equal(t, tc.wantErr, err != nil)

			out := buf.String()
			assert.Contains(t, out, tc.wantLine)
			assert.Contains(t, out, "duration=")
			assert.Contains(t, out, "path=ledger/withdraw")
		})
	}
}
