package txparams_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klever-io/klv-txparams-go/txparams"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Value string `json:"value"`
}

func TestHttpResponseGetter(t *testing.T) {
	t.Parallel()

	t.Run("get should decode the response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			_ = json.NewEncoder(w).Encode(testPayload{Value: "pong"})
		}))
		defer server.Close()

		getter, err := txparams.NewHttpResponseGetter()
		require.Nil(t, err)
		assert.False(t, check.IfNil(getter))

		response := testPayload{}
		err = getter.Get(context.Background(), server.URL, &response)
		require.Nil(t, err)
		assert.Equal(t, "pong", response.Value)
	})
	t.Run("post should send the JSON body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			request := testPayload{}
			_ = json.NewDecoder(r.Body).Decode(&request)
			_ = json.NewEncoder(w).Encode(testPayload{Value: request.Value + "-ack"})
		}))
		defer server.Close()

		getter, _ := txparams.NewHttpResponseGetter()
		response := testPayload{}
		err := getter.Post(context.Background(), server.URL, testPayload{Value: "ping"}, &response)
		require.Nil(t, err)
		assert.Equal(t, "ping-ack", response.Value)
	})
	t.Run("error status should error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer server.Close()

		getter, _ := txparams.NewHttpResponseGetter()
		err := getter.Get(context.Background(), server.URL, &testPayload{})
		assert.ErrorIs(t, err, txparams.ErrHttpStatus)
		assert.Contains(t, err.Error(), "404")
	})
	t.Run("nil response should error", func(t *testing.T) {
		t.Parallel()

		getter, _ := txparams.NewHttpResponseGetter()
		err := getter.Get(context.Background(), "http://localhost", nil)
		assert.Equal(t, txparams.ErrNilResponse, err)

		err = getter.Post(context.Background(), "http://localhost", nil, nil)
		assert.Equal(t, txparams.ErrNilResponse, err)
	})
}
