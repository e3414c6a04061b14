package netwatch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOnline_ServerResponds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	w := NewWatcher(server.URL, discardLogger())
	assert.True(t, w.Online(context.Background()))
}

func TestOnline_HTTPErrorStillOnline(t *testing.T) {
	// 503 — это ответ сервера: связь есть, пусть сервер и нездоров
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	w := NewWatcher(server.URL, discardLogger())
	assert.True(t, w.Online(context.Background()))
}

func TestOnline_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	w := NewWatcher(server.URL, discardLogger())
	assert.False(t, w.Online(context.Background()))
}

func TestWatch_EmitsTransitionsOnly(t *testing.T) {
	var healthy atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			// Обрываем соединение, имитируя недоступность сервера
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWatcher(server.URL, discardLogger(), WithInterval(20*time.Millisecond))
	states := w.Watch(ctx)

	// Стартовое состояние отправляется всегда
	first := waitState(t, states)
	assert.Equal(t, StateOffline, first)

	healthy.Store(true)
	next := waitState(t, states)
	assert.Equal(t, StateOnline, next)

	// Пока состояние не меняется, повторных событий нет
	select {
	case s, ok := <-states:
		if ok {
			t.Fatalf("unexpected state event: %v", s)
		}
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	waitClosed(t, states)
}

func waitState(t *testing.T, states <-chan State) State {
	t.Helper()
	select {
	case s, ok := <-states:
		require.True(t, ok, "states channel closed unexpectedly")
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connectivity state")
		return StateOffline
	}
}

func waitClosed(t *testing.T, states <-chan State) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-states:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("states channel not closed after cancel")
		}
	}
}
