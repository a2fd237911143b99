// Package dto содержит объекты передачи данных HTTP API.
package dto

// SignupRequest содержит данные для регистрации пользователя.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest содержит имя пользователя или email и пароль.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// TokenResponse содержит токен доступа.
type TokenResponse struct {
	Token string `json:"token"`
}
