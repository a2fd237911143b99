package logger

import (
	"context"

	"github.com/google/uuid"
)

// MaxRequestIDLength - предельная длина идентификатора, принимаемого от клиента.
const MaxRequestIDLength = 128

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext кладет идентификатор запроса в контекст.
// Пустой или непригодный для логов идентификатор заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, AcceptRequestID(requestID))
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// GenerateRequestID генерирует новый идентификатор запроса.
func GenerateRequestID() string {
	return uuid.NewString()
}

// AcceptRequestID возвращает candidate, если он годится для записи в лог,
// иначе новый идентификатор. Годится непустая строка печатных ASCII-символов
// не длиннее MaxRequestIDLength.
func AcceptRequestID(candidate string) string {
	if candidate == "" || len(candidate) > MaxRequestIDLength {
		return GenerateRequestID()
	}
	for i := 0; i < len(candidate); i++ {
		if c := candidate[i]; c < 0x21 || c > 0x7e {
			return GenerateRequestID()
		}
	}
	return candidate
}
