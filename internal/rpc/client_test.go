package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallSendsWellFormedRequest(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":"0x10"}`)
	}))
	defer srv.Close()

	client := NewClient("test", srv.URL, 2*time.Second, 0)
	resp, latency, err := client.Call(context.Background(), "eth_getBlockByNumber", "0x4c4b40", false)
	require.NoError(t, err)

	assert.Equal(t, "2.0", got.JSONRPC)
	assert.Equal(t, "eth_getBlockByNumber", got.Method)
	assert.Equal(t, 1, got.ID)
	require.Len(t, got.Params, 2)
	assert.Equal(t, "0x4c4b40", got.Params[0])
	assert.Equal(t, false, got.Params[1])

	assert.Equal(t, json.RawMessage(`"0x10"`), resp.Result)
	assert.Greater(t, latency, time.Duration(0))
}

func TestCallEmptyParamsEncodeAsArray(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":"0x1"}`)
	}))
	defer srv.Close()

	client := NewClient("test", srv.URL, 2*time.Second, 0)
	_, _, err := client.Call(context.Background(), "eth_blockNumber")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`[]`), raw["params"])
}

func TestCallRejectsRPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`)
	}))
	defer srv.Close()

	client := NewClient("test", srv.URL, 2*time.Second, 0)
	_, _, err := client.Call(context.Background(), "eth_blockNumber")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "method not found")
}

func TestCallRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "try later", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("test", srv.URL, 2*time.Second, 0)
	_, _, err := client.Call(context.Background(), "eth_blockNumber")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCallRejectsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json at all`)
	}))
	defer srv.Close()

	client := NewClient("test", srv.URL, 2*time.Second, 0)
	_, _, err := client.Call(context.Background(), "eth_blockNumber")
	require.Error(t, err)
}

func TestCallRetriesUpToMaxRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "transient", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":"0x10"}`)
	}))
	defer srv.Close()

	client := NewClient("test", srv.URL, 2*time.Second, 1)
	_, _, err := client.Call(context.Background(), "eth_blockNumber")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCallNoRetriesMeansOneAttempt(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient("test", srv.URL, 2*time.Second, 0)
	_, _, err := client.Call(context.Background(), "eth_blockNumber")
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestBlockNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":"0x2faf080"}`)
	}))
	defer srv.Close()

	client := NewClient("test", srv.URL, 2*time.Second, 0)
	height, _, err := client.BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(50000000), height)
}

func TestGetBlockByNumber(t *testing.T) {
	hash := "0x" + hash64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":{"number":"0x4c4b40","hash":"%s","parentHash":"0xdead","timestamp":"0x0"}}`, hash)
	}))
	defer srv.Close()

	client := NewClient("test", srv.URL, 2*time.Second, 0)
	block, _, err := client.GetBlockByNumber(context.Background(), "0x4c4b40", false)
	require.NoError(t, err)
	assert.Equal(t, hash, block.Hash)
	assert.Equal(t, "0x4c4b40", block.Number)
}

func TestGetBlockByNumberNullResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":null}`)
	}))
	defer srv.Close()

	client := NewClient("test", srv.URL, 2*time.Second, 0)
	block, _, err := client.GetBlockByNumber(context.Background(), "0x7fffffff", false)
	require.Error(t, err)
	assert.Nil(t, block)
	assert.Contains(t, err.Error(), "not found")
}
