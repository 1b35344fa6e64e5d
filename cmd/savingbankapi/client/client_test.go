package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sbapp "github.com/iov-one/savingbank/app"
	"github.com/iov-one/savingbank/errors"
	"github.com/iov-one/savingbank/x/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeServerResponse(t testing.TB, w http.ResponseWriter, code uint32, keys [][]byte, values [][]byte) {
	t.Helper()

	kraw, err := (&sbapp.ResultSet{Results: keys}).Marshal()
	require.NoError(t, err)
	vraw, err := (&sbapp.ResultSet{Results: values}).Marshal()
	require.NoError(t, err)

	resp := struct {
		Result AbciQueryResponse `json:"result"`
	}{
		Result: AbciQueryResponse{
			Response: AbciQueryResponseResponse{Code: code, Key: kraw, Value: vraw},
		},
	}
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

func TestABCIKeyQuery(t *testing.T) {
	state, err := (&vault.State{Balance: 42}).Marshal()
	require.NoError(t, err)

	// Run a fake Tendermint API server that will answer to only expected
	// query requests.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/abci_query" {
			t.Errorf("unexpected path: %q", r.URL)
			return
		}
		q := r.URL.Query()
		switch {
		case q.Get("path") == `"/vault"` && q.Get("data") == "0x7374617465":
			writeServerResponse(t, w, 0, [][]byte{[]byte("vaultstate")}, [][]byte{state})
		case q.Get("path") == `"/vault"`:
			writeServerResponse(t, w, 0, nil, nil)
		default:
			writeServerResponse(t, w, errors.ErrNotFound.ABCICode(), nil, nil)
		}
	}))
	defer srv.Close()

	sb := NewHTTPClient(srv.URL)
	ctx := context.Background()

	var dest vault.State
	require.NoError(t, ABCIKeyQuery(ctx, sb, "/vault", []byte("state"), &dest))
	assert.Equal(t, uint64(42), dest.Balance)

	err = ABCIKeyQuery(ctx, sb, "/vault", []byte("other"), &dest)
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)

	_, err = ABCIQuery(ctx, sb, "/unknown", nil)
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)
}

func TestClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken":
			http.Error(w, "nope", http.StatusInternalServerError)
		case "/rpcerror":
			_, _ = w.Write([]byte(`{"error": {"code": -32603, "message": "Internal error", "data": "boom"}}`))
		default:
			_, _ = w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	sb := NewHTTPClient(srv.URL)
	cases := map[string]*errors.Error{
		"/broken":   errors.ErrDatabase,
		"/rpcerror": errors.ErrDatabase,
		"/garbage":  errors.ErrInput,
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			var dest interface{}
			err := sb.Get(context.Background(), path, &dest)
			assert.True(t, want.Is(err), "%+v", err)
		})
	}
}

func TestQueryPath(t *testing.T) {
	got := QueryPath("/deposits", []byte{0, 0, 0, 0, 0, 0, 0, 1})
	assert.Equal(t, "/abci_query?data=0x0000000000000001&path=%22%2Fdeposits%22", got)
}

func TestErrorForCode(t *testing.T) {
	assert.True(t, errors.ErrPlanNotFound.Is(errorForCode(errors.ErrPlanNotFound.ABCICode())))
	assert.True(t, errors.ErrHuman.Is(errorForCode(999999)))
}
