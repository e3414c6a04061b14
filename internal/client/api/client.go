package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/roomos/internal/client/storage"
	"github.com/iudanet/roomos/internal/metrics"
	"github.com/iudanet/roomos/internal/models"
	pkgapi "github.com/iudanet/roomos/pkg/api"
)

// OfflineStore — часть локального хранилища, нужная клиенту:
// кэш ответов и очередь отложенных действий.
type OfflineStore interface {
	storage.CacheStorage
	storage.QueueStorage
}

// Client представляет устойчивый к потере сети HTTP клиент.
// Единственная точка, через которую проходит весь сетевой I/O приложения:
// успешные GET кэшируются, упавшие на транспорте мутации встают в очередь.
type Client struct {
	httpClient *http.Client
	baseURL    string
	store      OfflineStore
	logger     *slog.Logger
	recorder   *metrics.Recorder

	// online сообщает, подтверждено ли наличие сети; nil = неизвестно
	online func(ctx context.Context) bool

	// onSessionExpired вызывается при 401 с истекшей сессией —
	// аналог принудительного редиректа на экран входа
	onSessionExpired func()
}

// Option настраивает клиента
type Option func(*Client)

// WithTimeout overrides the default request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithOnlineProbe wires the connectivity signal used by the offline branch
func WithOnlineProbe(online func(ctx context.Context) bool) Option {
	return func(c *Client) {
		c.online = online
	}
}

// WithSessionExpiredHook wires the forced-navigation side effect for
// expired sessions
func WithSessionExpiredHook(hook func()) Option {
	return func(c *Client) {
		c.onSessionExpired = hook
	}
}

// WithMetrics wires the Prometheus recorder
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(c *Client) {
		c.recorder = recorder
	}
}

// NewClient creates a new resilient API client
func NewClient(baseURL string, store OfflineStore, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		store:   store,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Call performs one logical request with transparent offline degradation.
// Возвращает декодированное тело ответа или ошибку из таксономии errors.go.
func (c *Client) Call(ctx context.Context, endpoint, method string, body any, token string) (json.RawMessage, error) {
	var payload json.RawMessage
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	return c.do(ctx, endpoint, method, payload, token, "", false)
}

// Replay re-sends a previously queued action. A transport failure during
// replay is returned as-is: действие уже в очереди, повторная постановка
// создала бы дубликат.
func (c *Client) Replay(ctx context.Context, action *models.PendingAction, token string) error {
	_, err := c.do(ctx, action.Endpoint, action.Method, action.Body, token, action.ActionID, true)
	return err
}

func (c *Client) do(ctx context.Context, endpoint, method string, body json.RawMessage, token, idempotencyKey string, replay bool) (json.RawMessage, error) {
	url := c.baseURL + endpoint

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idempotencyKey != "" {
		// Сервер может дедуплицировать повторно доставленные действия
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Транспортный сбой (DNS, соединение, оффлайн) — единственный путь
		// в оффлайн-ветку. HTTP-ответ с ошибочным статусом сюда не попадает.
		if replay {
			return nil, fmt.Errorf("replay transport failure: %w", err)
		}
		return c.fallback(ctx, endpoint, method, body, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Успех: [200, 400)
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		if method == http.MethodGet {
			// Кэшируем как best-effort: сбой кэша не валит вызов
			if cerr := c.store.PutCachedResponse(ctx, endpoint, respBody); cerr != nil {
				c.logger.Warn("failed to cache response", "endpoint", endpoint, "error", cerr)
			}
		}
		c.recorder.APIRequest(method, metrics.OutcomeOK)
		return respBody, nil
	}

	// Ошибка с ответом от сервера: никогда не кэшируется и не ставится в очередь
	message := decodeErrorMessage(respBody)

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		if message == "" {
			message = "An error occurred"
		}
		if resp.StatusCode == http.StatusUnauthorized && message != pkgapi.InvalidCredentialsMessage {
			// Истекшая/невалидная сессия: дергаем принудительный переход
			// на экран входа и все равно отдаем ошибку
			if c.onSessionExpired != nil {
				c.onSessionExpired()
			}
			c.recorder.APIRequest(method, metrics.OutcomeExpiredSession)
			return nil, &Error{Kind: KindExpiredSession, Status: resp.StatusCode, Message: message}
		}
		c.recorder.APIRequest(method, metrics.OutcomeClientError)
		return nil, &Error{Kind: KindClientRequest, Status: resp.StatusCode, Message: message}
	}

	if message == "" {
		message = "Server Error"
	}
	c.recorder.APIRequest(method, metrics.OutcomeServerError)
	return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: message}
}

// fallback обрабатывает транспортный сбой: кэш для чтений, очередь для записей
func (c *Client) fallback(ctx context.Context, endpoint, method string, body json.RawMessage, cause error) (json.RawMessage, error) {
	c.logger.Warn("network failed, falling back to offline mode", "endpoint", endpoint, "method", method, "error", cause)

	if method == http.MethodGet {
		cached, err := c.store.GetCachedResponse(ctx, endpoint)
		if err == nil {
			// Устаревшие данные лучше, чем никакие: проверки свежести нет
			c.recorder.CacheLookup(true)
			c.recorder.APIRequest(method, metrics.OutcomeOfflineCache)
			return cached, nil
		}
		c.recorder.CacheLookup(false)
		if !errors.Is(err, storage.ErrCacheMiss) {
			return nil, err
		}
		c.recorder.APIRequest(method, metrics.OutcomeOfflineFailed)
		return nil, &Error{
			Kind:    KindNoOfflineData,
			Message: "you are offline and no cached data is available",
			Err:     cause,
		}
	}

	if method == http.MethodPost || method == http.MethodPut {
		if strings.Contains(endpoint, "/auth/") {
			// Учетные данные не ставятся в очередь и не считаются принятыми
			c.recorder.APIRequest(method, metrics.OutcomeOfflineFailed)
			return nil, &Error{
				Kind:    KindOfflineAuth,
				Message: "cannot perform authentication while offline",
				Err:     cause,
			}
		}

		action, err := c.store.AppendPendingAction(ctx, endpoint, method, body)
		if err != nil {
			// Сбой записи очереди — жесткая ошибка: действие нигде не сохранено
			return nil, err
		}

		c.logger.Info("action queued for sync", "endpoint", endpoint, "method", method, "sequence_id", action.SequenceID)
		c.recorder.ActionQueued()
		c.recorder.APIRequest(method, metrics.OutcomeOfflineQueued)

		// Намеренная инверсия: постановка в очередь — это различимое
		// состояние, а не тихий успех. Запись еще нигде не применена.
		return nil, &Error{
			Kind:    KindQueuedForSync,
			Message: "saved offline, will sync when connection returns",
			Err:     cause,
		}
	}

	if c.online != nil && !c.online(ctx) {
		c.recorder.APIRequest(method, metrics.OutcomeOfflineFailed)
		return nil, &Error{
			Kind:    KindOfflineUnavailable,
			Message: "you are offline and this action is not available",
			Err:     cause,
		}
	}

	return nil, fmt.Errorf("request failed: %w", cause)
}

// decodeErrorMessage достает поле error из тела ответа, если оно там есть
func decodeErrorMessage(body []byte) string {
	var errResp pkgapi.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		return errResp.Error
	}
	return ""
}
