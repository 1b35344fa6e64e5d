package savingbank_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/iov-one/savingbank"
	"github.com/iov-one/savingbank/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	addr := savingbank.Address([]byte("ABCD123456LHB"))
	assert.NotEqual(t, fmt.Sprintf("%X", []byte(addr)), "")
	assert.Equal(t, "41424344313233343536", addr.String()[:20])

	cond := savingbank.NewCondition("vault", "custody", []byte("savingbank"))
	assert.Equal(t, "vault/custody/736176696E6762616E6B", cond.String())
	assert.Equal(t, "(nil)", savingbank.Address(nil).String())
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := savingbank.NewCondition("foo", "bar", []byte("conditiondata")).Address()

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr savingbank.Address
	}{
		"default decoding": {
			json:     fmt.Sprintf("%q", addr.String()),
			wantAddr: addr,
		},
		"hex decoding": {
			json:     fmt.Sprintf("%q", "hex:"+addr.String()),
			wantAddr: addr,
		},
		"hex of wrong length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: addr,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a savingbank.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestAddressMarshalJSONRoundtrip(t *testing.T) {
	addr := savingbank.NewCondition("ledger", "bank", []byte("savingbank")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got savingbank.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, addr.Equals(got))
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition savingbank.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: savingbank.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got savingbank.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("expected %q but got condition: %q", tc.wantCondition, got)
			}
		})
	}
}

func TestConditionMarshalJSON(t *testing.T) {
	cases := map[string]struct {
		source   savingbank.Condition
		wantJson string
	}{
		"cond encoding": {
			source:   savingbank.NewCondition("foo", "bar", []byte("conditiondata")),
			wantJson: `"foo/bar/636F6E646974696F6E64617461"`,
		},
		"nil encoding": {
			source:   nil,
			wantJson: `""`,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := json.Marshal(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.wantJson, string(got))
		})
	}
}

func TestConditionParse(t *testing.T) {
	cond := savingbank.NewCondition("vault", "custody", []byte("savingbank"))
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "vault", ext)
	assert.Equal(t, "custody", typ)
	assert.Equal(t, []byte("savingbank"), data)

	_, _, _, err = savingbank.Condition("no-slashes").Parse()
	assert.True(t, errors.ErrInput.Is(err))
}
