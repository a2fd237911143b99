package repositories

import (
	"context"

	"sharenote/internal/auth/domain/entities"
)

// UserRepository определяет операции хранилища учетных записей.
type UserRepository interface {
	// FindByIdentifier ищет пользователя по имени или email, совпадение по имени приоритетнее.
	FindByIdentifier(ctx context.Context, identifier string) (*entities.User, error)

	// FindByUsernameOrEmail возвращает всех пользователей, занявших имя или email.
	FindByUsernameOrEmail(ctx context.Context, username, email string) ([]*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	Create(ctx context.Context, user *entities.User) (*entities.User, error)
}
