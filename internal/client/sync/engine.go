package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/roomos/internal/client/netwatch"
	"github.com/iudanet/roomos/internal/client/storage"
	"github.com/iudanet/roomos/internal/metrics"
	"github.com/iudanet/roomos/internal/models"
)

// Replayer re-sends a previously queued action to the server
type Replayer interface {
	Replay(ctx context.Context, action *models.PendingAction, token string) error
}

// TokenSource выдает актуальный токен на момент повтора.
// Токен, под которым действие встало в очередь, мог устареть.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Engine drains the pending action queue when connectivity returns.
//
// Правила разгрузки:
//   - действия уходят строго в порядке постановки;
//   - первый сбой прерывает разгрузку, очередь остается нетронутой;
//   - очередь очищается целиком и только после успеха всех действий.
type Engine struct {
	queue    storage.QueueStorage
	replayer Replayer
	tokens   TokenSource
	online   func(ctx context.Context) bool
	logger   *slog.Logger
	recorder *metrics.Recorder

	// onDrained вызывается после полной разгрузки, чтобы интерфейс
	// мог перечитать данные с сервера
	onDrained func()

	mu       sync.Mutex
	draining bool
	pending  bool
}

// Option configures the engine
type Option func(*Engine)

// WithOnDrained sets a hook fired after a successful full drain
func WithOnDrained(fn func()) Option {
	return func(e *Engine) {
		e.onDrained = fn
	}
}

// WithMetrics attaches a metrics recorder
func WithMetrics(rec *metrics.Recorder) Option {
	return func(e *Engine) {
		e.recorder = rec
	}
}

// NewEngine creates a sync engine
func NewEngine(
	queue storage.QueueStorage,
	replayer Replayer,
	tokens TokenSource,
	online func(ctx context.Context) bool,
	logger *slog.Logger,
	opts ...Option,
) *Engine {
	e := &Engine{
		queue:    queue,
		replayer: replayer,
		tokens:   tokens,
		online:   online,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Trigger requests a drain. Если разгрузка уже идет, запрос
// запоминается и после ее завершения выполняется еще одна — действия,
// вставшие в очередь во время разгрузки, не теряются. Параллельных
// разгрузок не бывает.
func (e *Engine) Trigger(ctx context.Context) error {
	e.mu.Lock()
	if e.draining {
		e.pending = true
		e.mu.Unlock()
		return nil
	}
	e.draining = true
	e.mu.Unlock()

	for {
		err := e.drainOnce(ctx)

		e.mu.Lock()
		again := e.pending
		e.pending = false
		if !again || err != nil || ctx.Err() != nil {
			e.draining = false
			e.mu.Unlock()
			return err
		}
		e.mu.Unlock()
	}
}

// Run listens for connectivity transitions and triggers drains.
// Одна отложенная разгрузка выполняется на старте: после перезапуска
// в очереди могут лежать действия с прошлой сессии. Блокируется до
// отмены контекста.
func (e *Engine) Run(ctx context.Context, states <-chan netwatch.State, startupDelay time.Duration) {
	startup := time.NewTimer(startupDelay)
	defer startup.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-startup.C:
			if err := e.Trigger(ctx); err != nil {
				e.logger.Warn("startup sync failed", "error", err)
			}
		case state, ok := <-states:
			if !ok {
				return
			}
			if state != netwatch.StateOnline {
				continue
			}
			if err := e.Trigger(ctx); err != nil {
				e.logger.Warn("sync after reconnect failed", "error", err)
			}
		}
	}
}

// drainOnce выполняет одну попытку полной разгрузки очереди
func (e *Engine) drainOnce(ctx context.Context) error {
	if e.online != nil && !e.online(ctx) {
		e.logger.Debug("sync skipped, server unreachable")
		e.recorder.SyncRun(metrics.SyncResultSkipped)
		return nil
	}

	actions, err := e.queue.ListPendingActions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending actions: %w", err)
	}
	e.recorder.SetQueueDepth(len(actions))

	if len(actions) == 0 {
		return nil
	}

	token, err := e.tokens.Token(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrSessionNotFound) {
			return fmt.Errorf("failed to load session token: %w", err)
		}
		// Без сессии повторяем с пустым токеном: сервер сам решит,
		// что с этим делать
		token = ""
	}

	e.logger.Info("syncing pending actions", "count", len(actions))

	for i := range actions {
		action := &actions[i]
		if err := e.replayer.Replay(ctx, action, token); err != nil {
			// Очередь не трогаем: при следующей разгрузке все
			// действия, включая уже отправленные, уйдут повторно.
			// Сервер отсеет дубли по Idempotency-Key.
			e.recorder.SyncRun(metrics.SyncResultAborted)
			return fmt.Errorf("failed to replay action %d of %d (%s %s): %w",
				i+1, len(actions), action.Method, action.Endpoint, err)
		}
		e.recorder.ActionReplayed()
	}

	if err := e.queue.ClearPendingActions(ctx); err != nil {
		return fmt.Errorf("failed to clear pending actions after sync: %w", err)
	}
	e.recorder.SetQueueDepth(0)
	e.recorder.SyncRun(metrics.SyncResultDrained)

	e.logger.Info("sync complete", "replayed", len(actions))

	if e.onDrained != nil {
		e.onDrained()
	}
	return nil
}
