package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/roomos/internal/client/storage"
	"github.com/iudanet/roomos/internal/models"
)

// Manager хранит и выдает текущую сессию пользователя.
// Токен для ядра непрозрачен: claims читаются без проверки подписи и
// только ради срока действия и отображения — проверяет токен сервер.
type Manager struct {
	store storage.SessionStorage
}

// NewManager creates a session manager on top of the session storage
func NewManager(store storage.SessionStorage) *Manager {
	return &Manager{store: store}
}

// Save persists a freshly issued session.
// Срок действия берется из exp-claim токена, если токен — JWT;
// непрозрачные токены сохраняются с неизвестным сроком.
func (m *Manager) Save(ctx context.Context, token string, userID int64, userName string, groupID int64) (*models.AuthSession, error) {
	session := &models.AuthSession{
		Token:     token,
		UserID:    userID,
		UserName:  userName,
		GroupID:   groupID,
		ExpiresAt: tokenExpiry(token),
		SavedAt:   time.Now(),
	}

	if err := m.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// Current returns the stored session.
// Returns storage.ErrSessionNotFound when the user is not logged in.
func (m *Manager) Current(ctx context.Context) (*models.AuthSession, error) {
	return m.store.GetSession(ctx)
}

// Token returns the stored bearer token, or an empty string when no
// session exists. Пустой токен допустим: сервер сам ответит 401.
func (m *Manager) Token(ctx context.Context) (string, error) {
	session, err := m.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return "", nil
		}
		return "", err
	}
	return session.Token, nil
}

// Clear removes the stored session (logout).
// Отсутствие сессии не считается ошибкой.
func (m *Manager) Clear(ctx context.Context) error {
	err := m.store.DeleteSession(ctx)
	if err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return err
	}
	return nil
}

// tokenExpiry достает exp из JWT без проверки подписи
func tokenExpiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}

	return exp.Time
}
