// Package postgres реализует хранилище заметок на PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"sharenote/internal/notes/domain/entities"
	"sharenote/internal/notes/ports/repositories"
	"sharenote/pkg/logger"
)

const noteColumns = `id, user_id, title, content, created_at, updated_at`

// visibleTo - условие видимости заметки пользователю $1: владелец или получатель доступа.
const visibleTo = `(user_id = $1 OR id IN (SELECT note_id FROM shared_notes WHERE shared_with = $1))`

const (
	queryCreate = `INSERT INTO notes (user_id, title, content) VALUES ($1, $2, $3) RETURNING id`

	queryGetVisible = `SELECT ` + noteColumns + ` FROM notes WHERE id = $2 AND ` + visibleTo

	queryListVisible = `SELECT ` + noteColumns + ` FROM notes WHERE ` + visibleTo + ` ORDER BY id`

	querySearchVisible = `SELECT ` + noteColumns + ` FROM notes
        WHERE to_tsvector('simple', title || ' ' || content) @@ plainto_tsquery('simple', $2)
          AND ` + visibleTo + `
        ORDER BY ts_rank(to_tsvector('simple', title || ' ' || content), plainto_tsquery('simple', $2)) DESC, id`

	queryUpdate = `UPDATE notes SET title = $1, content = $2, updated_at = NOW() WHERE id = $3 AND user_id = $4`

	queryDelete = `DELETE FROM notes WHERE id = $1 AND user_id = $2`

	queryShare = `WITH owned AS (
            SELECT id FROM notes WHERE id = $1 AND user_id = $3
        ), granted AS (
            INSERT INTO shared_notes (note_id, shared_with)
            SELECT id, $2::bigint FROM owned
            ON CONFLICT (note_id, shared_with) DO NOTHING
            RETURNING note_id
        )
        SELECT EXISTS (SELECT 1 FROM owned)`

	queryUnshare = `WITH owned AS (
            SELECT id FROM notes WHERE id = $1 AND user_id = $3
        ), revoked AS (
            DELETE FROM shared_notes
            WHERE note_id IN (SELECT id FROM owned) AND shared_with = $2
            RETURNING note_id
        )
        SELECT EXISTS (SELECT 1 FROM owned)`
)

// Константы для сообщений logger.
const (
	msgCreatingNote   = "creating new note"
	msgNoteCreated    = "note created"
	msgNoteNotVisible = "note not found or not visible"
	msgNoteNotOwned   = "note not found or not owned"
	msgNotesListed    = "notes listed"
	msgNotesSearched  = "notes searched"

	errMsgCreateNote  = "failed to create note"
	errMsgGetNote     = "failed to get note"
	errMsgListNotes   = "failed to list notes"
	errMsgSearchNotes = "failed to search notes"
	errMsgUpdateNote  = "failed to update note"
	errMsgDeleteNote  = "failed to delete note"
	errMsgShareNote   = "failed to share note"
	errMsgUnshareNote = "failed to unshare note"
	errMsgScanNote    = "failed to scan note"
)

// PgxPoolInterface - подмножество pgxpool.Pool, которым пользуется репозиторий.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, msgCreatingNote, zap.Int64("userID", note.UserID))

	var noteID int64
	if err := r.pool.QueryRow(ctx, queryCreate, note.UserID, note.Title, note.Content).Scan(&noteID); err != nil {
		log.Error(ctx, errMsgCreateNote, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errMsgCreateNote, err)
	}

	log.Debug(ctx, msgNoteCreated, zap.Int64("noteID", noteID))
	return noteID, nil
}

// GetVisible получает заметку, видимую пользователю.
func (r *NoteRepository) GetVisible(ctx context.Context, noteID, userID int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetVisible"))

	note, err := scanNote(r.pool.QueryRow(ctx, queryGetVisible, userID, noteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgNoteNotVisible, zap.Int64("noteID", noteID), zap.Int64("userID", userID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, errMsgGetNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMsgGetNote, err)
	}

	return note, nil
}

// ListVisible возвращает собственные и расшаренные пользователю заметки.
func (r *NoteRepository) ListVisible(ctx context.Context, userID int64) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListVisible"))

	notes, err := r.queryNotes(ctx, queryListVisible, userID)
	if err != nil {
		log.Error(ctx, errMsgListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMsgListNotes, err)
	}

	log.Debug(ctx, msgNotesListed, zap.Int64("userID", userID), zap.Int("count", len(notes)))
	return notes, nil
}

// SearchVisible выполняет полнотекстовый поиск среди видимых пользователю заметок.
func (r *NoteRepository) SearchVisible(ctx context.Context, userID int64, query string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.SearchVisible"))

	notes, err := r.queryNotes(ctx, querySearchVisible, userID, query)
	if err != nil {
		log.Error(ctx, errMsgSearchNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMsgSearchNotes, err)
	}

	log.Debug(ctx, msgNotesSearched, zap.Int64("userID", userID), zap.Int("count", len(notes)))
	return notes, nil
}

// Update обновляет заметку, если note.UserID ею владеет.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))

	tag, err := r.pool.Exec(ctx, queryUpdate, note.Title, note.Content, note.ID, note.UserID)
	if err != nil {
		log.Error(ctx, errMsgUpdateNote, zap.Error(err))
		return fmt.Errorf("%s: %w", errMsgUpdateNote, err)
	}

	if tag.RowsAffected() == 0 {
		log.Debug(ctx, msgNoteNotOwned, zap.Int64("noteID", note.ID), zap.Int64("userID", note.UserID))
		return entities.ErrNoteNotFoundOrUnauthorized
	}

	return nil
}

// Delete удаляет заметку, если ownerID ею владеет. Доступы удаляются каскадно.
func (r *NoteRepository) Delete(ctx context.Context, noteID, ownerID int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))

	tag, err := r.pool.Exec(ctx, queryDelete, noteID, ownerID)
	if err != nil {
		log.Error(ctx, errMsgDeleteNote, zap.Error(err))
		return fmt.Errorf("%s: %w", errMsgDeleteNote, err)
	}

	if tag.RowsAffected() == 0 {
		log.Debug(ctx, msgNoteNotOwned, zap.Int64("noteID", noteID), zap.Int64("userID", ownerID))
		return entities.ErrNoteNotFoundOrUnauthorized
	}

	return nil
}

// Share выдает доступ на чтение. Повторная выдача не создает дубликатов.
func (r *NoteRepository) Share(ctx context.Context, share entities.Share, ownerID int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Share"))

	owned, err := r.ownedStatement(ctx, queryShare, share, ownerID)
	if err != nil {
		log.Error(ctx, errMsgShareNote, zap.Error(err))
		return fmt.Errorf("%s: %w", errMsgShareNote, err)
	}

	if !owned {
		log.Debug(ctx, msgNoteNotOwned, zap.Int64("noteID", share.NoteID), zap.Int64("userID", ownerID))
		return entities.ErrNoteNotFoundOrUnauthorized
	}

	return nil
}

// Unshare отзывает доступ на чтение. Отзыв отсутствующего доступа не является ошибкой.
func (r *NoteRepository) Unshare(ctx context.Context, share entities.Share, ownerID int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Unshare"))

	owned, err := r.ownedStatement(ctx, queryUnshare, share, ownerID)
	if err != nil {
		log.Error(ctx, errMsgUnshareNote, zap.Error(err))
		return fmt.Errorf("%s: %w", errMsgUnshareNote, err)
	}

	if !owned {
		log.Debug(ctx, msgNoteNotOwned, zap.Int64("noteID", share.NoteID), zap.Int64("userID", ownerID))
		return entities.ErrNoteNotFoundOrUnauthorized
	}

	return nil
}

func (r *NoteRepository) ownedStatement(ctx context.Context, query string, share entities.Share, ownerID int64) (bool, error) {
	var owned bool
	if err := r.pool.QueryRow(ctx, query, share.NoteID, share.SharedWith, ownerID).Scan(&owned); err != nil {
		return false, err
	}
	return owned, nil
}

func (r *NoteRepository) queryNotes(ctx context.Context, query string, args ...any) ([]*entities.Note, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errMsgScanNote, err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	if err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}
	return &note, nil
}
