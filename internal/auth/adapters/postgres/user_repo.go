// Package postgres реализует хранилище учетных записей на PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"sharenote/internal/auth/domain/entities"
	"sharenote/internal/auth/ports/repositories"
	pg "sharenote/pkg/db/postgres"
	"sharenote/pkg/logger"
)

// Имена ограничений уникальности таблицы users.
const (
	ConstraintUsername = "users_username_key"
	ConstraintEmail    = "users_email_key"
)

const (
	repositoryName = "user"

	msgUserNotFound        = "user not found"
	msgUniqueViolation     = "unique constraint violated on insert"
	errMsgFindByIdentifier = "error querying user by identifier"
	errMsgFindConflicts    = "error querying users by username or email"
	errMsgFindByEmail      = "error querying user by email"
	errMsgCreateUser       = "error creating user"
	errMsgScanUser         = "error scanning user row"
)

const userColumns = `id, username, email, password_hash, created_at, updated_at`

// PgxPoolInterface - подмножество pgxpool.Pool, которым пользуется репозиторий.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// FindByIdentifier находит пользователя по имени или email.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", "FindByIdentifier"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE username = $1 OR email = $1
        ORDER BY (username = $1) DESC
        LIMIT 1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgUserNotFound)
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, errMsgFindByIdentifier, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMsgFindByIdentifier, err)
	}

	return user, nil
}

// FindByUsernameOrEmail возвращает пользователей, у которых совпадает имя или email.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", "FindByUsernameOrEmail"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE username = $1 OR email = $2
        ORDER BY id
    `

	rows, err := r.pool.Query(ctx, query, username, email)
	if err != nil {
		log.Error(ctx, errMsgFindConflicts, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMsgFindConflicts, err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, errMsgScanUser, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errMsgScanUser, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, errMsgFindConflicts, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMsgFindConflicts, err)
	}

	return users, nil
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", "FindByEmail"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE email = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgUserNotFound)
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, errMsgFindByEmail, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMsgFindByEmail, err)
	}

	return user, nil
}

// Create создает нового пользователя. Нарушение уникальности
// переводится в ErrUsernameTaken, ErrEmailInUse или ErrUserAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", repositoryName), zap.String("method", "Create"))

	query := `
        INSERT INTO users (username, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash))
	if err != nil {
		if constraint, ok := pg.UniqueViolation(err); ok {
			log.Debug(ctx, msgUniqueViolation, zap.String("constraint", constraint))
			return nil, conflictError(constraint)
		}
		log.Error(ctx, errMsgCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errMsgCreateUser, err)
	}

	return created, nil
}

func conflictError(constraint string) error {
	switch constraint {
	case ConstraintUsername:
		return entities.ErrUsernameTaken
	case ConstraintEmail:
		return entities.ErrEmailInUse
	default:
		return entities.ErrUserAlreadyExists
	}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
