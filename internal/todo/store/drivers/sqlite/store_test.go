package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/listkeeper/listkeeper/internal/todo/domain"
	"github.com/listkeeper/listkeeper/internal/todo/store"
	"github.com/listkeeper/listkeeper/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	// A file-backed database: with this driver each pooled connection to
	// ":memory:" would see its own empty database.
	s, err := NewStore("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestUser(t *testing.T, s *Store, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsers_CreateAndGet(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s, "a@x.com")

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.Equal(t, u.PasswordHash, byID.PasswordHash)

	byEmail, err := s.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	newTestUser(t, s, "a@x.com")

	err := s.Users().CreateUser(ctx, domain.User{
		ID:           idx.New().String(),
		Email:        "a@x.com",
		PasswordHash: "other",
		CreatedAt:    time.Now().UTC(),
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsers_EmailIsCaseSensitive(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	newTestUser(t, s, "a@x.com")

	_, err := s.Users().GetUserByEmail(ctx, "A@X.COM")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().GetUserByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.Users().DeleteUser(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTodos_RoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	owner := newTestUser(t, s, "a@x.com")

	desc := "the full-cream kind"
	due := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	in := domain.Todo{
		ID:          idx.New().String(),
		OwnerID:     owner.ID,
		Title:       "buy milk",
		Description: &desc,
		DueDate:     &due,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Todos().CreateTodo(ctx, in))

	got, err := s.Todos().GetTodoByID(ctx, in.ID)
	require.NoError(t, err)
	require.Equal(t, in.Title, got.Title)
	require.NotNil(t, got.Description)
	require.Equal(t, desc, *got.Description)
	require.NotNil(t, got.DueDate)
	require.True(t, due.Equal(*got.DueDate))
	require.False(t, got.Completed)
}

func TestTodos_NullableFields(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	owner := newTestUser(t, s, "a@x.com")

	in := domain.Todo{
		ID:        idx.New().String(),
		OwnerID:   owner.ID,
		Title:     "bare minimum",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.Todos().CreateTodo(ctx, in))

	got, err := s.Todos().GetTodoByID(ctx, in.ID)
	require.NoError(t, err)
	require.Nil(t, got.Description)
	require.Nil(t, got.DueDate)
}

func TestTodos_ListInsertionOrder(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	owner := newTestUser(t, s, "a@x.com")
	other := newTestUser(t, s, "b@x.com")

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		require.NoError(t, s.Todos().CreateTodo(ctx, domain.Todo{
			ID:        idx.New().String(),
			OwnerID:   owner.ID,
			Title:     title,
			CreatedAt: time.Now().UTC(),
		}))
	}
	// A todo for another owner must never show up in the listing.
	require.NoError(t, s.Todos().CreateTodo(ctx, domain.Todo{
		ID:        idx.New().String(),
		OwnerID:   other.ID,
		Title:     "not yours",
		CreatedAt: time.Now().UTC(),
	}))

	todos, err := s.Todos().ListTodosByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	for i, title := range titles {
		require.Equal(t, title, todos[i].Title)
	}
}

func TestTodos_UpdateAndDelete(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	owner := newTestUser(t, s, "a@x.com")
	td := domain.Todo{
		ID:        idx.New().String(),
		OwnerID:   owner.ID,
		Title:     "original",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.Todos().CreateTodo(ctx, td))

	td.Title = "renamed"
	td.Completed = true
	require.NoError(t, s.Todos().UpdateTodo(ctx, td))

	got, err := s.Todos().GetTodoByID(ctx, td.ID)
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Title)
	require.True(t, got.Completed)

	require.NoError(t, s.Todos().DeleteTodo(ctx, td.ID))
	_, err = s.Todos().GetTodoByID(ctx, td.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Todos().DeleteTodo(ctx, td.ID), store.ErrNotFound)
	require.ErrorIs(t, s.Todos().UpdateTodo(ctx, td), store.ErrNotFound)
}

func TestTodos_CascadeDeleteWithOwner(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	owner := newTestUser(t, s, "a@x.com")
	td := domain.Todo{
		ID:        idx.New().String(),
		OwnerID:   owner.ID,
		Title:     "doomed",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.Todos().CreateTodo(ctx, td))

	require.NoError(t, s.Users().DeleteUser(ctx, owner.ID))

	_, err := s.Todos().GetTodoByID(ctx, td.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	owner := newTestUser(t, s, "a@x.com")

	t.Run("commits on success", func(t *testing.T) {
		id := idx.New().String()
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Todos().CreateTodo(ctx, domain.Todo{
				ID:        id,
				OwnerID:   owner.ID,
				Title:     "committed",
				CreatedAt: time.Now().UTC(),
			})
		})
		require.NoError(t, err)

		_, err = s.Todos().GetTodoByID(ctx, id)
		require.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		id := idx.New().String()
		sentinel := store.ErrAlreadyExists
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Todos().CreateTodo(ctx, domain.Todo{
				ID:        id,
				OwnerID:   owner.ID,
				Title:     "rolled back",
				CreatedAt: time.Now().UTC(),
			}); err != nil {
				return err
			}
			return sentinel
		})
		require.ErrorIs(t, err, sentinel)

		_, err = s.Todos().GetTodoByID(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
