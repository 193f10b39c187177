package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T, handler http.HandlerFunc) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	tn.Client = srv.Client()
	tn.Backoff = time.Millisecond
	return tn
}

func TestSend(t *testing.T) {
	var got map[string]string
	tn := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, tn.Send(context.Background(), "3 Day Overview\n"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "3 Day Overview\n", got["text"])
}

func TestSendWithRetry_RecoversAfterFailures(t *testing.T) {
	var calls atomic.Int32
	tn := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, tn.SendWithRetry(context.Background(), "hello", 3))
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	var calls atomic.Int32
	tn := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	})

	err := tn.SendWithRetry(context.Background(), "hello", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 retries exhausted")
	assert.Contains(t, err.Error(), "status 500")
	assert.Equal(t, int32(3), calls.Load())
}

func TestSend_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	tn := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	})

	for i := 0; i < 5; i++ {
		require.Error(t, tn.Send(context.Background(), "x"))
	}
	err := tn.Send(context.Background(), "x")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(5), calls.Load())

	err = tn.SendWithRetry(context.Background(), "x", 3)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(5), calls.Load())
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	tn := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	tn.Backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := tn.SendWithRetry(ctx, "x", 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPollOnce(t *testing.T) {
	var (
		mu      sync.Mutex
		replies []string
	)
	tn := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			assert.Equal(t, "7", r.URL.Query().Get("offset"))
			w.Write([]byte(`{"ok":true,"result":[
				{"update_id":7,"message":{"text":" /overview "}},
				{"update_id":8},
				{"update_id":9,"message":{"text":"/quiet"}}
			]}`))
		case "/botTOKEN/sendMessage":
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			mu.Lock()
			replies = append(replies, body["text"])
			mu.Unlock()
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	var commands []string
	next, err := tn.PollOnce(context.Background(), 7, 0, func(cmd string) string {
		commands = append(commands, cmd)
		if cmd == "/quiet" {
			return ""
		}
		return "reply to " + cmd
	})
	require.NoError(t, err)
	assert.Equal(t, 10, next)
	assert.Equal(t, []string{"/overview", "/quiet"}, commands)
	assert.Equal(t, []string{"reply to /overview"}, replies)
}

func TestPollOnce_BadPayload(t *testing.T) {
	tn := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	next, err := tn.PollOnce(context.Background(), 3, 0, func(string) string { return "" })
	assert.Error(t, err)
	assert.Equal(t, 3, next)
}

func TestPollOnce_RejectedByAPI(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"conflict", http.StatusConflict, `{"ok":false,"error_code":409,"description":"Conflict: terminated by other getUpdates request"}`},
		{"unauthorized", http.StatusUnauthorized, `{"ok":false,"error_code":401,"description":"Unauthorized"}`},
		{"not ok", http.StatusOK, `{"ok":false,"description":"Bad Request"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tn := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			called := false
			next, err := tn.PollOnce(context.Background(), 5, 0, func(string) string {
				called = true
				return ""
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "polling status")
			assert.Equal(t, 5, next)
			assert.False(t, called)
		})
	}
}
