package middleware

import (
	"github.com/gofiber/fiber/v3"

	"sharenote/pkg/logger"
)

// HeaderRequestID - заголовок, в котором передается идентификатор запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware присваивает запросу идентификатор и кладет его в контекст логгера.
// Идентификатор клиента сохраняется, если он пригоден для логов.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := logger.AcceptRequestID(ctx.Get(HeaderRequestID))

		ctx.Set(HeaderRequestID, requestID)
		ctx.Locals(LocalUserContext, logger.NewRequestIDContext(ctx.Context(), requestID))

		return ctx.Next()
	}
}
