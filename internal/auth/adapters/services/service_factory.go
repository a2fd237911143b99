// Package services содержит реализации хэширования паролей и выпуска токенов доступа.
package services

import (
	"strings"

	"sharenote/internal/auth/domain/services"
	svc "sharenote/internal/auth/ports/services"
	"sharenote/internal/config"
)

// ServiceFactory собирает сервисы паролей и токенов из секции jwt конфигурации.
type ServiceFactory struct {
	passwordService svc.PasswordService
	tokenService    svc.TokenService
}

// NewServiceFactory проверяет настройки и создает сервисы.
// Пустой секрет отвергается при старте, а не при первом входе пользователя.
func NewServiceFactory(cfg *config.JWTConfig) (*ServiceFactory, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, services.ErrEmptySecretKey
	}

	return &ServiceFactory{
		passwordService: NewBcrypt(cfg.BCryptCost),
		tokenService:    NewJWT(cfg.SecretKey, cfg.GetTokenTTL()),
	}, nil
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() svc.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() svc.TokenService {
	return f.tokenService
}
