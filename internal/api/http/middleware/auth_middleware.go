package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"sharenote/internal/api/http/response"
	"sharenote/pkg/logger"
)

// Константы для логирования и ответов.
const (
	LogAuthMiddleware = "auth middleware"
	LogNoAuthHeader   = "no authorization header provided"
	LogTokenRejected  = "access token rejected"

	MsgAccessDenied = "Access denied"
	MsgInvalidToken = "Invalid token"
)

const bearerPrefix = "Bearer "

// Authenticator проверяет токен доступа и возвращает ID пользователя.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// NewAuthMiddleware пропускает запрос дальше только с действительным токеном.
// Токен передается в заголовке Authorization как есть или с префиксом "Bearer ".
func NewAuthMiddleware(auth Authenticator) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		token := strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))
		if len(token) >= len(bearerPrefix) && strings.EqualFold(token[:len(bearerPrefix)], bearerPrefix) {
			token = strings.TrimSpace(token[len(bearerPrefix):])
		}
		if token == "" {
			log.Debug(requestCtx, LogNoAuthHeader)
			return response.Unauthorized(ctx, MsgAccessDenied)
		}

		userID, err := auth.Authenticate(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, LogTokenRejected, zap.Error(err))
			return response.Forbidden(ctx, MsgInvalidToken)
		}

		ctx.Locals(LocalUserID, userID)
		ctx.Locals(LocalUserContext, logger.NewContext(requestCtx, logger.Log(requestCtx).With(zap.Int64("userID", userID))))

		return ctx.Next()
	}
}
