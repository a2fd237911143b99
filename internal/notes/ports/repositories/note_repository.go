// Package repositories определяет порты хранилища для модуля заметок.
package repositories

import (
	"context"

	"sharenote/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс для работы с репозиторием заметок.
// Каждый метод выполняется одним SQL-выражением, проверка доступа входит в его условие.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (int64, error)

	// GetVisible возвращает заметку, если userID владеет ею или она ему расшарена.
	GetVisible(ctx context.Context, noteID, userID int64) (*entities.Note, error)

	ListVisible(ctx context.Context, userID int64) ([]*entities.Note, error)

	SearchVisible(ctx context.Context, userID int64, query string) ([]*entities.Note, error)

	// Update меняет заголовок и содержимое, только если note.UserID владеет заметкой.
	Update(ctx context.Context, note *entities.Note) error

	Delete(ctx context.Context, noteID, ownerID int64) error

	Share(ctx context.Context, share entities.Share, ownerID int64) error

	Unshare(ctx context.Context, share entities.Share, ownerID int64) error
}

// RecipientResolver находит ID пользователя по email.
type RecipientResolver interface {
	ResolveRecipient(ctx context.Context, email string) (int64, error)
}
