package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrEmailInUse        = errors.New("email already in use")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// User представляет учетную запись. После создания не изменяется.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
