package relay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kysee/ocash-core/relay"
)

func TestSubmitTransferReturnsRelayerTxHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/transfer", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": "0xrelayertx"})
	}))
	defer srv.Close()

	client := relay.NewClient(srv.URL, time.Second)
	txHash, err := client.Submit(context.Background(), relay.Request{
		ChainID:  1,
		Action:   relay.ActionTransfer,
		Calldata: "0xdeadbeef",
	})
	require.NoError(t, err)
	require.Equal(t, "0xrelayertx", txHash)
}

func TestSubmitUnknownActionErrors(t *testing.T) {
	client := relay.NewClient("http://localhost:0", time.Second)
	_, err := client.Submit(context.Background(), relay.Request{Action: "bogus"})
	require.Error(t, err)
}

func TestGetTxHashNotYetAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": nil})
	}))
	defer srv.Close()

	client := relay.NewClient(srv.URL, time.Second)
	txHash, err := client.GetTxHash(context.Background(), "0xrelayertx")
	require.NoError(t, err)
	require.Empty(t, txHash)
}

func TestWaitForTxHashSucceedsAfterRetry(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			_ = json.NewEncoder(w).Encode(map[string]any{"data": nil})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": "0xchaintx"})
	}))
	defer srv.Close()

	client := relay.NewClient(srv.URL, time.Second)
	txHash, err := client.WaitForTxHash(context.Background(), "0xrelayertx", 5, 5*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, "0xchaintx", txHash)
}

func TestWaitForTxHashExhaustsAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": nil})
	}))
	defer srv.Close()

	client := relay.NewClient(srv.URL, time.Second)
	_, err := client.WaitForTxHash(context.Background(), "0xrelayertx", 2, time.Millisecond)
	require.Error(t, err)
}
