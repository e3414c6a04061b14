package netwatch

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// State описывает текущее состояние связи с сервером
type State int

const (
	// StateOffline — сервер недоступен на транспортном уровне
	StateOffline State = iota
	// StateOnline — сервер отвечает (любым HTTP-статусом)
	StateOnline
)

func (s State) String() string {
	if s == StateOnline {
		return "online"
	}
	return "offline"
}

const (
	defaultInterval     = 15 * time.Second
	defaultProbeTimeout = 3 * time.Second
)

// Watcher periodically probes the server and reports connectivity
// transitions. Любой HTTP-ответ считается признаком связи: нас
// интересует достижимость сервера, а не его здоровье.
type Watcher struct {
	probeURL   string
	interval   time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the watcher
type Option func(*Watcher)

// WithInterval overrides the probe period
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		w.interval = d
	}
}

// WithHTTPClient overrides the probing HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(w *Watcher) {
		w.httpClient = c
	}
}

// NewWatcher creates a connectivity watcher probing probeURL
func NewWatcher(probeURL string, logger *slog.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		probeURL: probeURL,
		interval: defaultInterval,
		httpClient: &http.Client{
			Timeout: defaultProbeTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Online performs a single synchronous probe
func (w *Watcher) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, w.probeURL, http.NoBody)
	if err != nil {
		return false
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return true
}

// Watch probes the server every interval and emits a State on every
// transition. Первое измерение отправляется всегда, чтобы подписчик
// знал стартовое состояние. Канал закрывается по отмене контекста.
func (w *Watcher) Watch(ctx context.Context) <-chan State {
	states := make(chan State, 1)

	go func() {
		defer close(states)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		var last State
		var seeded bool

		probe := func() {
			current := StateOffline
			if w.Online(ctx) {
				current = StateOnline
			}
			if seeded && current == last {
				return
			}
			seeded = true
			last = current
			w.logger.Info("connectivity changed", "state", current.String())
			select {
			case states <- current:
			case <-ctx.Done():
			}
		}

		probe()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				probe()
			}
		}
	}()

	return states
}
