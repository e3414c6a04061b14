package storage

import (
	"context"
	"encoding/json"

	"github.com/iudanet/roomos/internal/models"
)

// CacheStorage хранит последние успешные ответы GET-эндпоинтов.
// Одна запись на endpoint, перезапись при каждом успешном GET.
type CacheStorage interface {
	// PutCachedResponse сохраняет или перезаписывает ответ эндпоинта
	PutCachedResponse(ctx context.Context, endpoint string, payload json.RawMessage) error

	// GetCachedResponse возвращает сохраненный ответ.
	// Возвращает ErrCacheMiss, если записи нет.
	GetCachedResponse(ctx context.Context, endpoint string) (json.RawMessage, error)
}

// QueueStorage хранит очередь отложенных мутирующих запросов.
// Порядок вставки — это порядок повтора; частичного удаления нет.
type QueueStorage interface {
	// AppendPendingAction атомарно добавляет действие в хвост очереди
	// и возвращает его со свежим sequence id и action id.
	AppendPendingAction(ctx context.Context, endpoint, method string, body json.RawMessage) (*models.PendingAction, error)

	// ListPendingActions возвращает все действия в порядке возрастания sequence id
	ListPendingActions(ctx context.Context) ([]models.PendingAction, error)

	// ClearPendingActions атомарно опустошает всю очередь.
	// Вызывается только после полностью успешного повтора.
	ClearPendingActions(ctx context.Context) error
}

// SessionStorage хранит текущую сессию пользователя
type SessionStorage interface {
	// SaveSession сохраняет или перезаписывает сессию
	SaveSession(ctx context.Context, session *models.AuthSession) error

	// GetSession возвращает сохраненную сессию.
	// Возвращает ErrSessionNotFound, если сессии нет.
	GetSession(ctx context.Context) (*models.AuthSession, error)

	// DeleteSession удаляет сохраненную сессию (logout)
	DeleteSession(ctx context.Context) error
}

// Storage объединяет все коллекции локального хранилища
type Storage interface {
	CacheStorage
	QueueStorage
	SessionStorage

	// Close закрывает хранилище
	Close() error
}
