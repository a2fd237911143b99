// Package app реализует правила доступа к заметкам: видимость, владение и выдачу доступа.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"sharenote/internal/notes/domain/entities"
	"sharenote/internal/notes/ports/api"
	"sharenote/internal/notes/ports/repositories"
	"sharenote/pkg/logger"
)

const (
	methodListNotes   = "ListNotes"
	methodGetNote     = "GetNote"
	methodCreateNote  = "CreateNote"
	methodUpdateNote  = "UpdateNote"
	methodDeleteNote  = "DeleteNote"
	methodShareNote   = "ShareNote"
	methodUnshareNote = "UnshareNote"
	methodSearchNotes = "SearchNotes"

	msgNoteCreated       = "note created"
	msgNoteUpdated       = "note updated"
	msgNoteDeleted       = "note deleted"
	msgNoteShared        = "note shared"
	msgNoteUnshared      = "note unshared"
	msgRecipientNotFound = "share recipient not found"
	msgBlankQuery        = "blank search query"

	errCtxListingNotes   = "listing notes"
	errCtxGettingNote    = "getting note"
	errCtxCreatingNote   = "creating note"
	errCtxUpdatingNote   = "updating note"
	errCtxDeletingNote   = "deleting note"
	errCtxResolvingUser  = "resolving recipient"
	errCtxSharingNote    = "sharing note"
	errCtxUnsharingNote  = "unsharing note"
	errCtxSearchingNotes = "searching notes"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo   repositories.NoteRepository
	recipients repositories.RecipientResolver
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, recipients repositories.RecipientResolver) api.NoteUseCase {
	return &NoteUseCase{
		noteRepo:   noteRepo,
		recipients: recipients,
	}
}

// ListNotes возвращает собственные и расшаренные пользователю заметки.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID int64) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.ListVisible(ctx, userID)
	if err != nil {
		logger.Log(ctx).Error(ctx, errCtxListingNotes, zap.String("method", methodListNotes), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}
	return notes, nil
}

// GetNote возвращает заметку по ID. Чужая и отсутствующая заметки неразличимы.
func (uc *NoteUseCase) GetNote(ctx context.Context, userID, noteID int64) (*entities.Note, error) {
	note, err := uc.noteRepo.GetVisible(ctx, noteID, userID)
	if err != nil {
		if !errors.Is(err, entities.ErrNoteNotFound) {
			logger.Log(ctx).Error(ctx, errCtxGettingNote, zap.String("method", methodGetNote), zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxGettingNote, err)
	}
	return note, nil
}

// CreateNote создает новую заметку, владельцем всегда становится userID.
func (uc *NoteUseCase) CreateNote(ctx context.Context, userID int64, title, content string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateNote), zap.Int64("userID", userID))

	noteID, err := uc.noteRepo.Create(ctx, entities.NewNote(userID, title, content))
	if err != nil {
		log.Error(ctx, errCtxCreatingNote, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}

	log.Info(ctx, msgNoteCreated, zap.Int64("noteID", noteID))
	return noteID, nil
}

// UpdateNote перезаписывает заголовок и содержимое заметки владельца.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, userID, noteID int64, title, content string) error {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateNote), zap.Int64("userID", userID), zap.Int64("noteID", noteID))

	err := uc.noteRepo.Update(ctx, &entities.Note{ID: noteID, UserID: userID, Title: title, Content: content})
	if err != nil {
		if !errors.Is(err, entities.ErrNoteNotFoundOrUnauthorized) {
			log.Error(ctx, errCtxUpdatingNote, zap.Error(err))
		}
		return fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	log.Info(ctx, msgNoteUpdated)
	return nil
}

// DeleteNote удаляет заметку владельца вместе с выданными доступами.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteNote), zap.Int64("userID", userID), zap.Int64("noteID", noteID))

	if err := uc.noteRepo.Delete(ctx, noteID, userID); err != nil {
		if !errors.Is(err, entities.ErrNoteNotFoundOrUnauthorized) {
			log.Error(ctx, errCtxDeletingNote, zap.Error(err))
		}
		return fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	log.Info(ctx, msgNoteDeleted)
	return nil
}

// ShareNote выдает пользователю с recipientEmail доступ на чтение.
// Выдать доступ может только владелец заметки.
func (uc *NoteUseCase) ShareNote(ctx context.Context, userID, noteID int64, recipientEmail string) error {
	log := logger.Log(ctx).With(zap.String("method", methodShareNote), zap.Int64("userID", userID), zap.Int64("noteID", noteID))

	recipientID, err := uc.resolve(ctx, recipientEmail)
	if err != nil {
		return err
	}

	if err := uc.noteRepo.Share(ctx, entities.Share{NoteID: noteID, SharedWith: recipientID}, userID); err != nil {
		if !errors.Is(err, entities.ErrNoteNotFoundOrUnauthorized) {
			log.Error(ctx, errCtxSharingNote, zap.Error(err))
		}
		return fmt.Errorf("%s: %w", errCtxSharingNote, err)
	}

	log.Info(ctx, msgNoteShared, zap.Int64("recipientID", recipientID))
	return nil
}

// UnshareNote отзывает доступ, выданный пользователю с recipientEmail.
func (uc *NoteUseCase) UnshareNote(ctx context.Context, userID, noteID int64, recipientEmail string) error {
	log := logger.Log(ctx).With(zap.String("method", methodUnshareNote), zap.Int64("userID", userID), zap.Int64("noteID", noteID))

	recipientID, err := uc.resolve(ctx, recipientEmail)
	if err != nil {
		return err
	}

	if err := uc.noteRepo.Unshare(ctx, entities.Share{NoteID: noteID, SharedWith: recipientID}, userID); err != nil {
		if !errors.Is(err, entities.ErrNoteNotFoundOrUnauthorized) {
			log.Error(ctx, errCtxUnsharingNote, zap.Error(err))
		}
		return fmt.Errorf("%s: %w", errCtxUnsharingNote, err)
	}

	log.Info(ctx, msgNoteUnshared, zap.Int64("recipientID", recipientID))
	return nil
}

func (uc *NoteUseCase) resolve(ctx context.Context, email string) (int64, error) {
	recipientID, err := uc.recipients.ResolveRecipient(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrRecipientNotFound) {
			logger.Log(ctx).Debug(ctx, msgRecipientNotFound)
		} else {
			logger.Log(ctx).Error(ctx, errCtxResolvingUser, zap.Error(err))
		}
		return 0, fmt.Errorf("%s: %w", errCtxResolvingUser, err)
	}
	return recipientID, nil
}

// SearchNotes ищет по словам среди видимых пользователю заметок.
// Пустой запрос дает пустой результат без обращения к хранилищу.
func (uc *NoteUseCase) SearchNotes(ctx context.Context, userID int64, query string) ([]*entities.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Log(ctx).Debug(ctx, msgBlankQuery, zap.String("method", methodSearchNotes))
		return []*entities.Note{}, nil
	}

	notes, err := uc.noteRepo.SearchVisible(ctx, userID, query)
	if err != nil {
		logger.Log(ctx).Error(ctx, errCtxSearchingNotes, zap.String("method", methodSearchNotes), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxSearchingNotes, err)
	}
	return notes, nil
}
