// Package auth содержит HTTP-обработчики регистрации и входа.
package auth

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"sharenote/internal/api/dto"
	"sharenote/internal/api/http/middleware"
	"sharenote/internal/api/http/response"
	"sharenote/internal/auth/domain/entities"
	"sharenote/internal/auth/domain/services"
	"sharenote/internal/auth/ports/api"
	"sharenote/pkg/logger"
)

// Константы ответов и сообщений для логирования.
const (
	LogHandlerSignup = "handling signup request"
	LogHandlerLogin  = "handling login request"

	MsgUserCreated        = "User created"
	MsgUsernameTaken      = "Username already taken"
	MsgEmailInUse         = "Email already in use"
	MsgUserAlreadyExists  = "User already exists"
	MsgInvalidPassword    = "Invalid password"
	MsgErrorCreatingUser  = "Error creating user"
	MsgInvalidCredentials = "Invalid credentials"
	MsgErrorLoggingIn     = "Error logging in"
)

// Handler обрабатывает запросы аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
	validate    *validator.Validate
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		validate:    validator.New(),
	}
}

// Signup регистрирует пользователя.
func (h *Handler) Signup(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "auth.Signup"))
	log.Debug(requestCtx, LogHandlerSignup)

	var req dto.SignupRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, response.MsgInvalidBody, zap.Error(err))
		return response.BadRequest(ctx, response.MsgInvalidBody)
	}
	if err := h.validate.Struct(req); err != nil {
		return response.BadRequest(ctx, response.ValidationMessage(err))
	}

	if _, err := h.authUseCase.Signup(requestCtx, req.Username, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, entities.ErrUsernameTaken):
			return response.BadRequest(ctx, MsgUsernameTaken)
		case errors.Is(err, entities.ErrEmailInUse):
			return response.BadRequest(ctx, MsgEmailInUse)
		case errors.Is(err, entities.ErrUserAlreadyExists):
			return response.BadRequest(ctx, MsgUserAlreadyExists)
		case errors.Is(err, services.ErrInvalidPassword):
			return response.BadRequest(ctx, MsgInvalidPassword)
		default:
			log.Error(requestCtx, MsgErrorCreatingUser, zap.Error(err))
			return response.InternalError(ctx, MsgErrorCreatingUser)
		}
	}

	return response.OK(ctx, dto.MessageResponse{Message: MsgUserCreated})
}

// Login выдает токен доступа по имени пользователя или email и паролю.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "auth.Login"))
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, response.MsgInvalidBody, zap.Error(err))
		return response.BadRequest(ctx, response.MsgInvalidBody)
	}
	if err := h.validate.Struct(req); err != nil {
		return response.BadRequest(ctx, MsgInvalidCredentials)
	}

	token, err := h.authUseCase.Login(requestCtx, req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.BadRequest(ctx, MsgInvalidCredentials)
		}
		log.Error(requestCtx, MsgErrorLoggingIn, zap.Error(err))
		return response.InternalError(ctx, MsgErrorLoggingIn)
	}

	return response.OK(ctx, dto.TokenResponse{Token: token.Token})
}
