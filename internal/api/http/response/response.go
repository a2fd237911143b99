// Package response формирует JSON-ответы HTTP API.
package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"sharenote/internal/api/dto"
)

const (
	errMsgSendResponse = "error sending response"

	// MsgInvalidBody возвращается, если тело запроса не удалось разобрать.
	MsgInvalidBody = "Invalid request body"
	// MsgInternalError возвращается при непредвиденных ошибках.
	MsgInternalError = "Internal server error"
	msgValidation    = "Validation failed"
)

// JSON отправляет body с заданным статусом.
func JSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("%s: %w", errMsgSendResponse, err)
	}
	return nil
}

// OK отправляет body со статусом 200.
func OK(ctx fiber.Ctx, body any) error {
	return JSON(ctx, fiber.StatusOK, body)
}

// Message отправляет {"message": msg}.
func Message(ctx fiber.Ctx, status int, msg string) error {
	return JSON(ctx, status, dto.MessageResponse{Message: msg})
}

// BadRequest отправляет 400.
func BadRequest(ctx fiber.Ctx, msg string) error {
	return Message(ctx, fiber.StatusBadRequest, msg)
}

// Unauthorized отправляет 401.
func Unauthorized(ctx fiber.Ctx, msg string) error {
	return Message(ctx, fiber.StatusUnauthorized, msg)
}

// Forbidden отправляет 403.
func Forbidden(ctx fiber.Ctx, msg string) error {
	return Message(ctx, fiber.StatusForbidden, msg)
}

// NotFound отправляет 404.
func NotFound(ctx fiber.Ctx, msg string) error {
	return Message(ctx, fiber.StatusNotFound, msg)
}

// InternalError отправляет 500. Подробности ошибки клиенту не передаются.
func InternalError(ctx fiber.Ctx, msg string) error {
	return Message(ctx, fiber.StatusInternalServerError, msg)
}

// ValidationMessage описывает нарушенные правила валидации в виде "field: rule".
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return msgValidation
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+": "+fe.Tag())
	}
	return msgValidation + ": " + strings.Join(parts, ", ")
}

// ErrorHandler отвечает на ошибки, которые обработчики вернули во fiber.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Message(ctx, fe.Code, fe.Message)
	}
	return InternalError(ctx, MsgInternalError)
}
