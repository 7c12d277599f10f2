package delivery

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSenderSend(t *testing.T) {
	var gotBody []byte
	var gotType, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	payload := []byte(`[{"registry_number":"1","status":"идем"}]`)
	err := NewHTTPSender(server.URL, time.Second).Send(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, payload, gotBody)
}

func TestHTTPSenderRejected(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, "nope")
			}))
			defer server.Close()

			err := NewHTTPSender(server.URL+"/hook", time.Second).Send(context.Background(), []byte("[]"))

			var de *DeliveryError
			require.True(t, errors.As(err, &de), "error %v", err)
			assert.Equal(t, tt.status, de.StatusCode)
			assert.Equal(t, tt.retryable, de.Retryable())
			assert.Contains(t, de.Error(), "nope")
		})
	}
}

func TestHTTPSenderTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewHTTPSender(url, time.Second).Send(context.Background(), []byte("[]"))
	require.Error(t, err)

	var de *DeliveryError
	assert.False(t, errors.As(err, &de))
	assert.Contains(t, err.Error(), url)
}

func TestHTTPSenderCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewHTTPSender(server.URL, time.Second).Send(ctx, []byte("[]"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSenderFunc(t *testing.T) {
	var got []byte
	var s Sender = SenderFunc(func(ctx context.Context, payload []byte) error {
		got = payload
		return nil
	})
	require.NoError(t, s.Send(context.Background(), []byte("x")))
	assert.Equal(t, []byte("x"), got)
}
