package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"sharenote/internal/auth/domain/services"
	svc "sharenote/internal/auth/ports/services"
)

const (
	errMsgEmptyPassword   = "password is empty"
	errMsgPasswordTooLong = "password exceeds 72 bytes"
	errMsgMalformedHash   = "stored password hash is malformed"
	errMsgGenerateHash    = "failed to generate password hash"
	errMsgCompareHash     = "error comparing password with hash"
)

// ServiceBcrypt хэширует пароли учетных записей.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает сервис паролей. Стоимость вне [MinCost, MaxCost] заменяется DefaultCost.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Hash возвращает bcrypt-хэш пароля. Пароли длиннее 72 байт отвергаются, а не усекаются.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if err := checkPassword(password); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	switch {
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return "", fmt.Errorf("%s: %w", errMsgPasswordTooLong, services.ErrInvalidPassword)
	case err != nil:
		return "", fmt.Errorf("%s: %w: %w", errMsgGenerateHash, services.ErrHashingFailed, err)
	}

	return string(hashed), nil
}

// Verify сравнивает пароль с хэшем. Несовпадение возвращает (false, nil),
// а испорченный хэш в хранилище считается ошибкой.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if err := checkPassword(password); err != nil {
		return false, err
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	case errors.Is(err, bcrypt.ErrHashTooShort):
		return false, fmt.Errorf("%s: %w", errMsgMalformedHash, err)
	default:
		return false, fmt.Errorf("%s: %w", errMsgCompareHash, err)
	}
}

func checkPassword(password string) error {
	switch {
	case password == "":
		return fmt.Errorf("%s: %w", errMsgEmptyPassword, services.ErrInvalidPassword)
	case len(password) > services.MaxPasswordLength:
		return fmt.Errorf("%s: %w", errMsgPasswordTooLong, services.ErrInvalidPassword)
	}
	return nil
}
