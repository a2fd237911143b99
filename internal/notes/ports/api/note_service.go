// Package api определяет входящий порт модуля заметок.
package api

import (
	"context"

	"sharenote/internal/notes/domain/entities"
)

// NoteUseCase - операции над заметками от имени аутентифицированного пользователя.
type NoteUseCase interface {
	ListNotes(ctx context.Context, userID int64) ([]*entities.Note, error)

	GetNote(ctx context.Context, userID, noteID int64) (*entities.Note, error)

	CreateNote(ctx context.Context, userID int64, title, content string) (int64, error)

	UpdateNote(ctx context.Context, userID, noteID int64, title, content string) error

	DeleteNote(ctx context.Context, userID, noteID int64) error

	ShareNote(ctx context.Context, userID, noteID int64, recipientEmail string) error

	UnshareNote(ctx context.Context, userID, noteID int64, recipientEmail string) error

	SearchNotes(ctx context.Context, userID int64, query string) ([]*entities.Note, error)
}
