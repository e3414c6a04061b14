package models

import "time"

// AuthSession представляет сохраненную сессию пользователя.
// Ядро не проверяет токен — только прикладывает его к исходящим запросам;
// user/group нужны слою представления.
type AuthSession struct {
	Token     string    `json:"token"`      // bearer token как выдал сервер
	UserID    int64     `json:"user_id"`    // ID пользователя
	UserName  string    `json:"user_name"`  // имя пользователя
	GroupID   int64     `json:"group_id"`   // ID группы (crew)
	ExpiresAt time.Time `json:"expires_at"` // из claims токена; zero если неизвестно
	SavedAt   time.Time `json:"saved_at"`
}

// Expired сообщает, известно ли что срок действия сессии истек.
// Нулевое ExpiresAt означает "неизвестно" и считается действующей сессией.
func (s *AuthSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
