package api

import (
	"errors"
	"fmt"
)

// Kind различает исходы неуспешного вызова API.
// Вызывающий код ветвится по значению, а не по тексту ошибки.
type Kind int

const (
	// KindClientRequest — HTTP 4xx: показывается сразу, не повторяется, не ставится в очередь
	KindClientRequest Kind = iota + 1

	// KindExpiredSession — HTTP 401 с текстом, отличным от ошибки логина:
	// сессия истекла, нужен принудительный переход на экран входа
	KindExpiredSession

	// KindServer — HTTP 5xx или нераспознанный статус
	KindServer

	// KindNoOfflineData — GET упал на транспортном уровне и кэша для эндпоинта нет
	KindNoOfflineData

	// KindOfflineAuth — мутирующий вызов auth-эндпоинта без сети; учетные
	// данные никогда не ставятся в очередь
	KindOfflineAuth

	// KindQueuedForSync — запись сохранена в очередь и уйдет при синхронизации.
	// Мягкое состояние, не сбой: UI показывает "сохранено оффлайн".
	KindQueuedForSync

	// KindOfflineUnavailable — устройство оффлайн и ни одна из веток не подошла
	KindOfflineUnavailable
)

// String возвращает имя исхода для логов и метрик
func (k Kind) String() string {
	switch k {
	case KindClientRequest:
		return "client_request"
	case KindExpiredSession:
		return "expired_session"
	case KindServer:
		return "server_error"
	case KindNoOfflineData:
		return "no_offline_data"
	case KindOfflineAuth:
		return "offline_auth_disallowed"
	case KindQueuedForSync:
		return "queued_for_sync"
	case KindOfflineUnavailable:
		return "offline_unavailable"
	default:
		return "unknown"
	}
}

// Error represents a failed API call with a machine-readable Kind.
// Message carries the server's user-facing text when one was received.
type Error struct {
	Kind    Kind
	Status  int    // HTTP статус, 0 для оффлайн-исходов
	Message string // текст для пользователя
	Err     error  // исходная транспортная ошибка, если была
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind from an error chain; returns 0 for foreign errors
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// IsQueuedForSync reports whether the call was durably queued for later sync.
// Вызывающий обязан отличать это состояние от жестких сбоев.
func IsQueuedForSync(err error) bool {
	return KindOf(err) == KindQueuedForSync
}

// IsExpiredSession reports whether the call failed due to an expired session
func IsExpiredSession(err error) bool {
	return KindOf(err) == KindExpiredSession
}
