package models

import (
	"encoding/json"
	"time"
)

// CachedResponse представляет последний успешный ответ GET-эндпоинта.
// На каждый endpoint хранится не больше одной записи; новая перезаписывает старую.
type CachedResponse struct {
	Endpoint  string          `json:"endpoint"`   // логический ключ (путь эндпоинта)
	Payload   json.RawMessage `json:"payload"`    // декодированное тело ответа как есть
	FetchedAt time.Time       `json:"fetched_at"` // когда ответ был получен
}

// PendingAction представляет мутирующий запрос, который не дошел до сервера.
// Запись неизменяема после создания: единственные переходы — добавление в хвост
// очереди и полная очистка после успешного повтора всей очереди.
type PendingAction struct {
	SequenceID uint64          `json:"sequence_id"` // порядковый номер, назначается хранилищем
	ActionID   string          `json:"action_id"`   // UUID для Idempotency-Key при повторе
	Endpoint   string          `json:"endpoint"`
	Method     string          `json:"method"` // POST или PUT
	Body       json.RawMessage `json:"body"`
	QueuedAt   time.Time       `json:"queued_at"`
}
