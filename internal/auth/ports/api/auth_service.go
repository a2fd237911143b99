package api

import (
	"context"
	"time"
)

// AccessToken - выпущенный токен доступа.
type AccessToken struct {
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	Signup(ctx context.Context, username, email, password string) (int64, error)

	Login(ctx context.Context, identifier, password string) (*AccessToken, error)

	// Authenticate проверяет токен доступа и возвращает ID пользователя.
	Authenticate(ctx context.Context, token string) (int64, error)
}
