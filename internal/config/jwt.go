package config

import "time"

// DefaultTokenTTL - срок жизни токена доступа, если в конфигурации задано некорректное значение.
const DefaultTokenTTL = time.Hour

// JWTConfig содержит настройки выдачи токенов и хэширования паролей.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"JWT_SECRET" env-default:"change-me-in-production"`
	TokenTTL   string `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"1h"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL возвращает срок жизни токена доступа.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil || duration <= 0 {
		return DefaultTokenTTL
	}
	return duration
}
