package store

import (
	"context"
	"errors"

	"github.com/listkeeper/listkeeper/internal/todo/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Todos() Todos

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken, including the case
	// where a concurrent registration won the unique-constraint race.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login. Email matching is exact.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// DeleteUser cascades to the user's todos (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type Todos interface {
	// CreateTodo inserts a new todo (id is provided by the app via ULID).
	CreateTodo(ctx context.Context, t domain.Todo) error

	// GetTodoByID returns a todo by id regardless of owner; ownership is
	// checked by the service so not-found and not-owned stay distinguishable.
	GetTodoByID(ctx context.Context, id string) (domain.Todo, error)

	// ListTodosByOwner returns all todos owned by ownerID in insertion order.
	ListTodosByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)

	// UpdateTodo overwrites the mutable fields of the row identified by t.ID.
	UpdateTodo(ctx context.Context, t domain.Todo) error

	// DeleteTodo removes the row.
	DeleteTodo(ctx context.Context, id string) error
}
