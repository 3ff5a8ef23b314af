package jsonrpc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	transporthttp "github.com/gabapcia/confirmwatch/internal/pkg/transport/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	t.Run("successful call returns the raw result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			assert.Equal(t, "2.0", req["jsonrpc"])
			assert.Equal(t, "eth_blockNumber", req["method"])
			assert.NotEmpty(t, req["id"])

			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"1","result":"0x10"}`))
		}))
		defer srv.Close()

		c := NewClient(transporthttp.NewClient(transporthttp.WithRetryMax(0)), srv.URL)

		result, err := c.Fetch(t.Context(), "eth_blockNumber")
		require.NoError(t, err)
		assert.JSONEq(t, `"0x10"`, string(result))
	})

	t.Run("params are forwarded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Params []any `json:"params"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []any{"0x1b4", true}, req.Params)

			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"1","result":{}}`))
		}))
		defer srv.Close()

		c := NewClient(transporthttp.NewClient(transporthttp.WithRetryMax(0)), srv.URL)

		_, err := c.Fetch(t.Context(), "eth_getBlockByNumber", "0x1b4", true)
		require.NoError(t, err)
	})

	t.Run("provider error object", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"1","error":{"code":-32601,"message":"method not found"}}`))
		}))
		defer srv.Close()

		c := NewClient(transporthttp.NewClient(transporthttp.WithRetryMax(0)), srv.URL)

		_, err := c.Fetch(t.Context(), "eth_unknown")
		assert.ErrorIs(t, err, ErrProviderReturnedError)
		assert.ErrorContains(t, err, "method not found")
	})

	t.Run("malformed response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		c := NewClient(transporthttp.NewClient(transporthttp.WithRetryMax(0)), srv.URL)

		_, err := c.Fetch(t.Context(), "eth_blockNumber")
		assert.Error(t, err)
	})
}
