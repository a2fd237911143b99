package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharenote/internal/notes/adapters/postgres"
	"sharenote/internal/notes/domain/entities"
	"sharenote/internal/notes/ports/repositories"
	"sharenote/pkg/logger"
)

var (
	errDatabaseConnection = errors.New("database connection failed")

	noteColumns = []string{"id", "user_id", "title", "content", "created_at", "updated_at"}
)

const (
	ownerID     = int64(1)
	recipientID = int64(2)
	strangerID  = int64(3)
	noteID      = int64(10)
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestNewNoteRepository(t *testing.T) {
	repo := postgres.NewNoteRepository(newMock(t))

	assert.NotNil(t, repo, "Repository should not be nil")
	assert.Implements(t, (*repositories.NoteRepository)(nil), repo)
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := testContext(t)
	note := entities.NewNote(ownerID, "T", "C")

	t.Run("successful note creation", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO notes \(user_id, title, content\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
			WithArgs(ownerID, "T", "C").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

		id, err := postgres.NewNoteRepository(mock).Create(ctx, note)

		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO notes`).
			WithArgs(ownerID, "T", "C").
			WillReturnError(errDatabaseConnection)

		id, err := postgres.NewNoteRepository(mock).Create(ctx, note)

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Zero(t, id)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_GetVisible(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("visible note is returned", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`WHERE id = \$2 AND \(user_id = \$1 OR id IN \(SELECT note_id FROM shared_notes WHERE shared_with = \$1\)\)`).
			WithArgs(recipientID, noteID).
			WillReturnRows(pgxmock.NewRows(noteColumns).AddRow(noteID, ownerID, "T", "C", now, now))

		note, err := postgres.NewNoteRepository(mock).GetVisible(ctx, noteID, recipientID)

		require.NoError(t, err)
		assert.Equal(t, noteID, note.ID)
		assert.Equal(t, ownerID, note.UserID)
		assert.Equal(t, "T", note.Title)
		assert.Equal(t, "C", note.Content)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invisible note is reported as not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`FROM notes WHERE id = \$2`).
			WithArgs(strangerID, noteID).
			WillReturnError(pgx.ErrNoRows)

		note, err := postgres.NewNoteRepository(mock).GetVisible(ctx, noteID, strangerID)

		assert.Nil(t, note)
		require.ErrorIs(t, err, entities.ErrNoteNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`FROM notes WHERE id = \$2`).
			WithArgs(ownerID, noteID).
			WillReturnError(errDatabaseConnection)

		note, err := postgres.NewNoteRepository(mock).GetVisible(ctx, noteID, ownerID)

		assert.Nil(t, note)
		require.ErrorIs(t, err, errDatabaseConnection)
		assert.NotErrorIs(t, err, entities.ErrNoteNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_ListVisible(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("owned and shared notes", func(t *testing.T) {
		mock := newMock(t)
		rows := pgxmock.NewRows(noteColumns).
			AddRow(int64(1), recipientID, "mine", "", now, now).
			AddRow(noteID, ownerID, "shared", "body", now, now)
		mock.ExpectQuery(`FROM notes WHERE \(user_id = \$1 OR id IN \(SELECT note_id FROM shared_notes WHERE shared_with = \$1\)\) ORDER BY id`).
			WithArgs(recipientID).
			WillReturnRows(rows)

		notes, err := postgres.NewNoteRepository(mock).ListVisible(ctx, recipientID)

		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, recipientID, notes[0].UserID)
		assert.Equal(t, ownerID, notes[1].UserID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no notes yields empty slice", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`ORDER BY id`).
			WithArgs(strangerID).
			WillReturnRows(pgxmock.NewRows(noteColumns))

		notes, err := postgres.NewNoteRepository(mock).ListVisible(ctx, strangerID)

		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`ORDER BY id`).
			WithArgs(ownerID).
			WillReturnError(errDatabaseConnection)

		notes, err := postgres.NewNoteRepository(mock).ListVisible(ctx, ownerID)

		assert.Nil(t, notes)
		require.ErrorIs(t, err, errDatabaseConnection)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_SearchVisible(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("matches are scoped by visibility", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`plainto_tsquery\('simple', \$2\)\s+AND \(user_id = \$1 OR id IN`).
			WithArgs(ownerID, "groceries").
			WillReturnRows(pgxmock.NewRows(noteColumns).AddRow(noteID, ownerID, "groceries", "milk", now, now))

		notes, err := postgres.NewNoteRepository(mock).SearchVisible(ctx, ownerID, "groceries")

		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, noteID, notes[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`plainto_tsquery`).
			WithArgs(ownerID, "groceries").
			WillReturnError(errDatabaseConnection)

		notes, err := postgres.NewNoteRepository(mock).SearchVisible(ctx, ownerID, "groceries")

		assert.Nil(t, notes)
		require.ErrorIs(t, err, errDatabaseConnection)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := testContext(t)
	note := &entities.Note{ID: noteID, UserID: ownerID, Title: "T2", Content: "C2"}

	tests := []struct {
		name    string
		result  pgconn.CommandTag
		err     error
		wantErr error
	}{
		{name: "owner updates note", result: pgconn.NewCommandTag("UPDATE 1")},
		{name: "missing or foreign note", result: pgconn.NewCommandTag("UPDATE 0"), wantErr: entities.ErrNoteNotFoundOrUnauthorized},
		{name: "database error", err: errDatabaseConnection, wantErr: errDatabaseConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			exp := mock.ExpectExec(`UPDATE notes SET title = \$1, content = \$2, updated_at = NOW\(\) WHERE id = \$3 AND user_id = \$4`).
				WithArgs("T2", "C2", noteID, ownerID)
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := postgres.NewNoteRepository(mock).Update(ctx, note)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		name    string
		result  pgconn.CommandTag
		err     error
		wantErr error
	}{
		{name: "owner deletes note", result: pgconn.NewCommandTag("DELETE 1")},
		{name: "missing or foreign note", result: pgconn.NewCommandTag("DELETE 0"), wantErr: entities.ErrNoteNotFoundOrUnauthorized},
		{name: "database error", err: errDatabaseConnection, wantErr: errDatabaseConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			exp := mock.ExpectExec(`DELETE FROM notes WHERE id = \$1 AND user_id = \$2`).
				WithArgs(noteID, ownerID)
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := postgres.NewNoteRepository(mock).Delete(ctx, noteID, ownerID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNoteRepository_ShareAndUnshare(t *testing.T) {
	ctx := testContext(t)
	share := entities.Share{NoteID: noteID, SharedWith: recipientID}

	type call func(repo repositories.NoteRepository) error

	operations := []struct {
		name    string
		pattern string
		call    call
	}{
		{
			name:    "share",
			pattern: `INSERT INTO shared_notes \(note_id, shared_with\)[\s\S]+ON CONFLICT \(note_id, shared_with\) DO NOTHING`,
			call:    func(repo repositories.NoteRepository) error { return repo.Share(ctx, share, ownerID) },
		},
		{
			name:    "unshare",
			pattern: `DELETE FROM shared_notes[\s\S]+shared_with = \$2`,
			call:    func(repo repositories.NoteRepository) error { return repo.Unshare(ctx, share, ownerID) },
		},
	}

	for _, op := range operations {
		t.Run(op.name+" by owner", func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectQuery(op.pattern).
				WithArgs(noteID, recipientID, ownerID).
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

			require.NoError(t, op.call(postgres.NewNoteRepository(mock)))
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run(op.name+" by non-owner", func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectQuery(op.pattern).
				WithArgs(noteID, recipientID, ownerID).
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

			err := op.call(postgres.NewNoteRepository(mock))

			require.ErrorIs(t, err, entities.ErrNoteNotFoundOrUnauthorized)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run(op.name+" database error", func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectQuery(op.pattern).
				WithArgs(noteID, recipientID, ownerID).
				WillReturnError(errDatabaseConnection)

			err := op.call(postgres.NewNoteRepository(mock))

			require.ErrorIs(t, err, errDatabaseConnection)
			assert.NotErrorIs(t, err, entities.ErrNoteNotFoundOrUnauthorized)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
