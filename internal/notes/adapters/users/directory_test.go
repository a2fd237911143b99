package users_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentities "sharenote/internal/auth/domain/entities"
	"sharenote/internal/notes/adapters/users"
	"sharenote/internal/notes/domain/entities"
)

var errStore = errors.New("store unavailable")

type stubUsers struct {
	byEmail map[string]*authentities.User
	err     error
}

func (s *stubUsers) FindByIdentifier(context.Context, string) (*authentities.User, error) {
	return nil, authentities.ErrUserNotFound
}

func (s *stubUsers) FindByUsernameOrEmail(context.Context, string, string) ([]*authentities.User, error) {
	return nil, nil
}

func (s *stubUsers) FindByEmail(_ context.Context, email string) (*authentities.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, authentities.ErrUserNotFound
}

func (s *stubUsers) Create(context.Context, *authentities.User) (*authentities.User, error) {
	return nil, nil
}

func TestResolveRecipient(t *testing.T) {
	repo := &stubUsers{byEmail: map[string]*authentities.User{
		"bob@example.com": {ID: 2, Username: "bob", Email: "bob@example.com"},
	}}
	directory := users.NewDirectory(repo)

	t.Run("known email", func(t *testing.T) {
		id, err := directory.ResolveRecipient(context.Background(), "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(2), id)
	})

	t.Run("unknown email", func(t *testing.T) {
		id, err := directory.ResolveRecipient(context.Background(), "nobody@example.com")
		require.ErrorIs(t, err, entities.ErrRecipientNotFound)
		assert.Zero(t, id)
	})

	t.Run("store failure", func(t *testing.T) {
		failing := users.NewDirectory(&stubUsers{err: errStore})
		_, err := failing.ResolveRecipient(context.Background(), "bob@example.com")
		require.ErrorIs(t, err, errStore)
		assert.NotErrorIs(t, err, entities.ErrRecipientNotFound)
	})
}
