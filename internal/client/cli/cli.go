package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/iudanet/roomos/internal/client/api"
	"github.com/iudanet/roomos/internal/client/session"
	"github.com/iudanet/roomos/internal/client/storage"
	"github.com/iudanet/roomos/internal/client/sync"
)

// App держит зависимости команд и пишет их вывод в out
type App struct {
	apiClient *api.Client
	sessions  *session.Manager
	queue     storage.QueueStorage
	syncer    *sync.Engine
	out       io.Writer
}

// New creates the command-line application
func New(apiClient *api.Client, sessions *session.Manager, queue storage.QueueStorage, syncer *sync.Engine, out io.Writer) *App {
	return &App{
		apiClient: apiClient,
		sessions:  sessions,
		queue:     queue,
		syncer:    syncer,
		out:       out,
	}
}

// Run dispatches a command by name
func (a *App) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.runLogin(ctx, args)
	case "logout":
		return a.runLogout(ctx)
	case "status":
		return a.runStatus(ctx)
	case "roster":
		return a.runRoster(ctx)
	case "today":
		return a.runToday(ctx)
	case "tasks":
		return a.runTasks(ctx)
	case "assign":
		return a.runAssign(ctx)
	case "plan":
		return a.runGeneratePlan(ctx)
	case "expenses":
		return a.runExpenses(ctx)
	case "add-expense":
		return a.runAddExpense(ctx, args)
	case "delete-expense":
		return a.runDeleteExpense(ctx, args)
	case "members":
		return a.runMembers(ctx)
	case "settle":
		return a.runSettle(ctx)
	case "queue":
		return a.runQueue(ctx)
	case "sync":
		return a.runSync(ctx)
	case "updates":
		return a.runUpdates(ctx)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// token возвращает токен текущей сессии (пустой, если сессии нет)
func (a *App) token(ctx context.Context) (string, error) {
	return a.sessions.Token(ctx)
}

// PrintUsage prints command help to w
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "RoomOS Client")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  roomos [OPTIONS] COMMAND")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version       Show version information")
	fmt.Fprintln(w, "  --config PATH   Path to config file (json, toml or yaml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  login TOKEN [NAME]             Store a server-issued token")
	fmt.Fprintln(w, "  logout                         Drop the stored session")
	fmt.Fprintln(w, "  status                         Show session and pending queue state")
	fmt.Fprintln(w, "  roster                         Show the weekly chore roster")
	fmt.Fprintln(w, "  today                          Show today's roster entry")
	fmt.Fprintln(w, "  tasks                          Show today's micro-tasks")
	fmt.Fprintln(w, "  assign                         Run the task lottery")
	fmt.Fprintln(w, "  plan                           Regenerate the weekly plan")
	fmt.Fprintln(w, "  expenses                       Show shared expenses and balances")
	fmt.Fprintln(w, "  add-expense DESC AMOUNT IDS    Record a shared expense (IDS comma-separated)")
	fmt.Fprintln(w, "  delete-expense ID              Delete an expense")
	fmt.Fprintln(w, "  members                        List group members")
	fmt.Fprintln(w, "  settle                         Show the minimal settlement plan")
	fmt.Fprintln(w, "  queue                          Show actions waiting for sync")
	fmt.Fprintln(w, "  sync                           Push queued actions to the server")
	fmt.Fprintln(w, "  updates                        Check for a newer app build")
	fmt.Fprintln(w, "  watch                          Stay running, sync when connectivity returns")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  roomos roster")
	fmt.Fprintln(w, "  roomos add-expense 'Milk and eggs' 128.50 1,2,3")
	fmt.Fprintln(w, "  roomos --config ~/.roomos.yaml watch")
}
