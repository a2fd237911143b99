// Package health отвечает на проверки готовности сервиса.
package health

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"sharenote/internal/api/http/middleware"
	"sharenote/internal/api/http/response"
	"sharenote/pkg/logger"
)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	LogHealthCheckFailed = "health check failed"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Response - тело ответа проверки.
type Response struct {
	Status string `json:"status"`
}

// Handler выполняет проверку соединения с базой.
type Handler struct {
	db Pinger
}

// NewHandler создает обработчик проверки.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// Check возвращает 200, если база отвечает, и 503 в противном случае.
func (h *Handler) Check(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	if err := h.db.Ping(requestCtx); err != nil {
		logger.Log(requestCtx).Warn(requestCtx, LogHealthCheckFailed, zap.Error(err))
		return response.JSON(ctx, fiber.StatusServiceUnavailable, Response{Status: StatusUnavailable})
	}

	return response.OK(ctx, Response{Status: StatusOK})
}
