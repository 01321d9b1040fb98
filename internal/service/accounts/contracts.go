package accounts

import (
	"context"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
)

// AccountRepository интерфейс репозитория аккаунтов
type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Account, error)
	UpdateActiveRole(ctx context.Context, id int64, role domain.Role) error
}

// TokenIssuer выпускает capability token с текущей активной ролью
type TokenIssuer interface {
	Issue(account *domain.Account) (string, time.Time, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
