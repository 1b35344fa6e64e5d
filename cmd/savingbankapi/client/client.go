package client

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/iov-one/savingbank"
	sbapp "github.com/iov-one/savingbank/app"
	"github.com/iov-one/savingbank/errors"
)

// Client is implemented by any service that provides access to the
// tendermint RPC of a savingbank node.
type Client interface {
	Get(ctx context.Context, path string, dest interface{}) error
}

// HTTPClient implements Client interface and it is using HTTP transport
// to communicate with a tendermint instance.
type HTTPClient struct {
	apiURL string
	cli    http.Client
}

// NewHTTPClient returns an instance of a Client that is using HTTP
// transport.
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		apiURL: apiURL,
	}
}

func (c *HTTPClient) Get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequest("GET", c.apiURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "create http request")
	}
	req = req.WithContext(ctx)

	resp, err := c.cli.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 1e5))
		return errors.Wrapf(errors.ErrDatabase, "bad response: %d %s", resp.StatusCode, string(b))
	}

	payload := jsonrpcResponse{Result: dest}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1e6)).Decode(&payload); err != nil {
		return errors.Wrapf(errors.ErrInput, "decode response: %s", err)
	}
	if payload.Error != nil {
		return errors.Wrap(errors.ErrDatabase, payload.Error.Error())
	}
	return nil
}

type jsonrpcResponse struct {
	Error  *jsonResponseError
	Result interface{}
}

type jsonResponseError struct {
	Code    int
	Message string
	Data    string
}

func (e *jsonResponseError) Error() string {
	if len(e.Data) != 0 {
		return fmt.Sprintf("code %d, %s", e.Code, e.Data)
	}
	return fmt.Sprintf("code %d, %s", e.Code, e.Message)
}

// AbciQueryResponse is the result of the "/abci_query" call.
type AbciQueryResponse struct {
	Response AbciQueryResponseResponse `json:"response"`
}

type AbciQueryResponseResponse struct {
	Code  uint32 `json:"code"`
	Log   string `json:"log"`
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// QueryPath returns the RPC path of an abci query. Data is always sent hex
// encoded, so that binary keys pass through unchanged.
func QueryPath(path string, data []byte) string {
	v := make(url.Values)
	v.Add("path", `"`+path+`"`)
	v.Add("data", "0x"+hex.EncodeToString(data))
	return "/abci_query?" + v.Encode()
}

// ABCIQuery runs an abci query and returns all matching key and value pairs.
// A query that the application rejected returns the error registered under
// its code.
func ABCIQuery(ctx context.Context, c Client, path string, data []byte) ([]savingbank.Model, error) {
	var abciResponse AbciQueryResponse
	if err := c.Get(ctx, QueryPath(path, data), &abciResponse); err != nil {
		return nil, errors.Wrap(err, "response")
	}
	if code := abciResponse.Response.Code; code != 0 {
		return nil, errors.Wrap(errorForCode(code), abciResponse.Response.Log)
	}

	var keys, values sbapp.ResultSet
	if err := keys.Unmarshal(abciResponse.Response.Key); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := values.Unmarshal(abciResponse.Response.Value); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return sbapp.JoinResults(&keys, &values)
}

// ABCIKeyQuery loads the single entity stored under the key into the
// destination. ErrNotFound is returned if it does not exist.
func ABCIKeyQuery(ctx context.Context, c Client, path string, key []byte, destination savingbank.Persistent) error {
	models, err := ABCIQuery(ctx, c, path, key)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty response")
	}
	if err := destination.Unmarshal(models[0].Value); err != nil {
		return errors.Wrap(err, "cannot unmarshal to destination")
	}
	return nil
}

// AbciInfoResponse is the result of the "/abci_info" call.
type AbciInfoResponse struct {
	Response struct {
		Data            string `json:"data"`
		Version         string `json:"version"`
		LastBlockHeight int64  `json:"last_block_height,string"`
	} `json:"response"`
}

// ABCIInfo returns the application information reported by the node.
func ABCIInfo(ctx context.Context, c Client) (*AbciInfoResponse, error) {
	var info AbciInfoResponse
	if err := c.Get(ctx, "/abci_info", &info); err != nil {
		return nil, errors.Wrap(err, "abci info")
	}
	return &info, nil
}

func errorForCode(code uint32) error {
	if e, ok := errors.FromCode(code); ok {
		return e
	}
	return errors.Wrapf(errors.ErrHuman, "unknown code %d", code)
}
