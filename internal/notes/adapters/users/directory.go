// Package users связывает модуль заметок с хранилищем учетных записей.
package users

import (
	"context"
	"errors"
	"fmt"

	authentities "sharenote/internal/auth/domain/entities"
	authrepos "sharenote/internal/auth/ports/repositories"
	"sharenote/internal/notes/domain/entities"
	"sharenote/internal/notes/ports/repositories"
)

const errMsgResolveRecipient = "failed to resolve recipient"

// Directory находит получателей доступа через репозиторий пользователей.
type Directory struct {
	users authrepos.UserRepository
}

// NewDirectory создает RecipientResolver поверх репозитория пользователей.
func NewDirectory(users authrepos.UserRepository) repositories.RecipientResolver {
	return &Directory{users: users}
}

// ResolveRecipient возвращает ID пользователя с данным email или ErrRecipientNotFound.
func (d *Directory) ResolveRecipient(ctx context.Context, email string) (int64, error) {
	user, err := d.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, authentities.ErrUserNotFound) {
			return 0, entities.ErrRecipientNotFound
		}
		return 0, fmt.Errorf("%s: %w", errMsgResolveRecipient, err)
	}
	return user.ID, nil
}
