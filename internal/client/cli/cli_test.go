package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/roomos/internal/client/api"
	"github.com/iudanet/roomos/internal/client/session"
	"github.com/iudanet/roomos/internal/client/storage/boltdb"
	"github.com/iudanet/roomos/internal/client/sync"
)

// newTestApp собирает приложение на реальном bolt-хранилище и
// клиенте, направленном на baseURL
func newTestApp(t *testing.T, baseURL string) (*App, *boltdb.Storage, *bytes.Buffer) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := api.NewClient(baseURL, store, logger)
	sessions := session.NewManager(store)
	engine := sync.NewEngine(store, client, sessions, nil, logger)

	var out bytes.Buffer
	return New(client, sessions, store, engine, &out), store, &out
}

// deadServer возвращает адрес уже закрытого сервера
func deadServer(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	return server.URL
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _, _ := newTestApp(t, "http://localhost:0")
	err := app.Run(context.Background(), "frobnicate", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestStatus_NoSession(t *testing.T) {
	app, _, out := newTestApp(t, "http://localhost:0")

	require.NoError(t, app.Run(context.Background(), "status", nil))
	assert.Contains(t, out.String(), "Session: none")
	assert.Contains(t, out.String(), "All actions synchronized")
}

func TestAddExpense_OfflineQueuedIsSoft(t *testing.T) {
	app, store, out := newTestApp(t, deadServer(t))
	ctx := context.Background()

	err := app.Run(ctx, "add-expense", []string{"Milk", "40", "1,2"})
	require.NoError(t, err, "queued-for-sync must not surface as a failure")
	assert.Contains(t, out.String(), "saved locally")

	actions, err := store.ListPendingActions(ctx)
	require.NoError(t, err)
	require.Len(t, actions, 1)
}

func TestAddExpense_BadArgs(t *testing.T) {
	app, store, _ := newTestApp(t, deadServer(t))
	ctx := context.Background()

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing args", args: []string{"Milk"}},
		{name: "bad amount", args: []string{"Milk", "forty", "1"}},
		{name: "bad member id", args: []string{"Milk", "40", "1,x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, app.Run(ctx, "add-expense", tt.args))
		})
	}

	actions, err := store.ListPendingActions(ctx)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestQueue_ListsPendingActions(t *testing.T) {
	app, _, out := newTestApp(t, deadServer(t))
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, "queue", nil))
	assert.Contains(t, out.String(), "Queue is empty")
	out.Reset()

	require.NoError(t, app.Run(ctx, "add-expense", []string{"Milk", "40", "1"}))
	out.Reset()

	require.NoError(t, app.Run(ctx, "queue", nil))
	assert.Contains(t, out.String(), "1 pending action(s)")
	assert.Contains(t, out.String(), "POST /transactions/add")
}

func TestSync_EmptyQueue(t *testing.T) {
	app, _, out := newTestApp(t, deadServer(t))

	require.NoError(t, app.Run(context.Background(), "sync", nil))
	assert.Contains(t, out.String(), "Nothing to sync")
}

func TestSync_DrainsQueue(t *testing.T) {
	var received []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = append(received, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	app, store, out := newTestApp(t, server.URL)
	ctx := context.Background()

	// Заполняем очередь напрямую, как будто действия копились оффлайн
	_, err := store.AppendPendingAction(ctx, "/transactions/add", http.MethodPost, []byte(`{"description":"Milk"}`))
	require.NoError(t, err)

	require.NoError(t, app.Run(ctx, "sync", nil))
	assert.Contains(t, out.String(), "Synchronization complete")
	assert.Equal(t, []string{"POST /transactions/add"}, received)

	actions, err := store.ListPendingActions(ctx)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestExpenses_PrintsBalances(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"my_balance": 20,
			"transactions": [
				{"id":1,"user_id":1,"description":"Milk","amount":40,"split_between":"[1,2]"}
			],
			"balances": [{"other_user_id":2,"other_user_name":"Ravi","balance":20}]
		}`))
	}))
	defer server.Close()

	app, _, out := newTestApp(t, server.URL)

	require.NoError(t, app.Run(context.Background(), "expenses", nil))
	assert.Contains(t, out.String(), "Milk")
	assert.Contains(t, out.String(), "My balance: 20.00")
	assert.Contains(t, out.String(), "Ravi: owes you 20.00")
}

func TestSettle_PrintsPlan(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/transactions/list":
			_, _ = w.Write([]byte(`{
				"transactions": [{"id":1,"user_id":1,"amount":90,"split_between":"[1,2,3]"}],
				"balances": [], "my_balance": 60
			}`))
		case "/group/members":
			_, _ = w.Write([]byte(`{"members":[{"id":1,"name":"Sumit"},{"id":2,"name":"Ravi"},{"id":3,"name":"Amit"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	app, _, out := newTestApp(t, server.URL)

	require.NoError(t, app.Run(context.Background(), "settle", nil))
	assert.Contains(t, out.String(), "Ravi pays Sumit 30.00")
	assert.Contains(t, out.String(), "Amit pays Sumit 30.00")
}

func TestTasks_PrintsAssignments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tasks":[{"task_name":"Brooming","assigned_to_name":"Ravi"}]}`))
	}))
	defer server.Close()

	app, _, out := newTestApp(t, server.URL)

	require.NoError(t, app.Run(context.Background(), "tasks", nil))
	assert.Contains(t, out.String(), "Brooming")
	assert.Contains(t, out.String(), "Ravi")
}

func TestLogin_RejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))
	defer server.Close()

	app, _, _ := newTestApp(t, server.URL)

	err := app.Run(context.Background(), "login", []string{"bad-token"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token rejected")
}

func TestLoginLogout_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	app, _, out := newTestApp(t, server.URL)
	ctx := context.Background()

	require.NoError(t, app.Run(ctx, "login", []string{"good-token", "Sumit"}))
	assert.Contains(t, out.String(), "Logged in")
	out.Reset()

	require.NoError(t, app.Run(ctx, "status", nil))
	assert.Contains(t, out.String(), "Sumit")
	out.Reset()

	require.NoError(t, app.Run(ctx, "logout", nil))
	require.NoError(t, app.Run(ctx, "status", nil))
	assert.Contains(t, out.String(), "Session: none")
}
