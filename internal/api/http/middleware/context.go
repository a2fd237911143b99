// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Ключи Locals, которые заполняет промежуточное ПО.
const (
	LocalUserContext = "userContext"
	LocalUserID      = "userID"
)

// RequestContext возвращает контекст запроса с request_id и логгером.
func RequestContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(LocalUserContext).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}

// CurrentUserID возвращает ID пользователя, подтвержденный NewAuthMiddleware.
func CurrentUserID(ctx fiber.Ctx) (int64, bool) {
	userID, ok := ctx.Locals(LocalUserID).(int64)
	return userID, ok && userID > 0
}
