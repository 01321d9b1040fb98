package middleware

import (
	"time"

	"github.com/m04kA/companion-booking/internal/auth"
)

// TokenParser проверка bearer токена
type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// HTTPObserver метрики HTTP запросов
type HTTPObserver interface {
	ObserveHTTP(method, route, status string, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
