package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/listkeeper/listkeeper/internal/todo/domain"
	"github.com/listkeeper/listkeeper/internal/todo/store"
	"github.com/listkeeper/listkeeper/pkg/idx"
)

var (
	// ErrForbidden means the record exists but belongs to a different owner.
	ErrForbidden = errors.New("service: not the owner")

	// ErrTitleRequired rejects an empty or missing title.
	ErrTitleRequired = errors.New("service: title is required")
)

// TodoService implements the todo operations. Every method takes the
// authenticated owner id and scopes its work to it; existence is always
// checked before ownership so not-found and forbidden stay distinct.
type TodoService struct {
	Store store.Store

	// StrictToggleErrors makes Toggle distinguish not-found from forbidden
	// like the other operations do. The default (false) collapses both into
	// not-found, matching the historically observed behavior of this
	// endpoint.
	StrictToggleErrors bool
}

// List returns all todos owned by ownerID in insertion order.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	return s.Store.Todos().ListTodosByOwner(ctx, ownerID)
}

// Create persists a new todo for ownerID. Title is required; description
// and due date are optional; completed starts false.
func (s *TodoService) Create(ctx context.Context, ownerID, title string, description *string, dueDate *time.Time) (domain.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Todo{}, ErrTitleRequired
	}

	t := domain.Todo{
		ID:          idx.New().String(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.Store.Todos().CreateTodo(ctx, t); err != nil {
		return domain.Todo{}, err
	}
	return t, nil
}

// Get fetches a single todo. Returns store.ErrNotFound when no such record
// exists and ErrForbidden when it exists under a different owner, in that
// order.
func (s *TodoService) Get(ctx context.Context, id, ownerID string) (domain.Todo, error) {
	t, err := s.Store.Todos().GetTodoByID(ctx, id)
	if err != nil {
		return domain.Todo{}, err
	}
	if t.OwnerID != ownerID {
		return domain.Todo{}, ErrForbidden
	}
	return t, nil
}

// Update applies a partial patch, leaving absent fields unchanged. An
// explicit empty title is rejected. Runs in a transaction so the
// read-modify-write commits atomically.
func (s *TodoService) Update(ctx context.Context, id, ownerID string, patch domain.TodoPatch) (domain.Todo, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domain.Todo{}, ErrTitleRequired
	}

	var updated domain.Todo
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := tx.Todos().GetTodoByID(ctx, id)
		if err != nil {
			return err
		}
		if t.OwnerID != ownerID {
			return ErrForbidden
		}

		patch.Apply(&t)
		if err := tx.Todos().UpdateTodo(ctx, t); err != nil {
			return err
		}

		updated = t
		return nil
	})
	if err != nil {
		return domain.Todo{}, err
	}
	return updated, nil
}

// Delete removes a todo, with the same not-found/forbidden ordering as Get.
func (s *TodoService) Delete(ctx context.Context, id, ownerID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := tx.Todos().GetTodoByID(ctx, id)
		if err != nil {
			return err
		}
		if t.OwnerID != ownerID {
			return ErrForbidden
		}
		return tx.Todos().DeleteTodo(ctx, id)
	})
}

// Toggle flips the completion flag. In the default lenient mode a todo
// owned by someone else reports not-found, unlike the other operations;
// StrictToggleErrors switches to the usual not-found/forbidden split.
func (s *TodoService) Toggle(ctx context.Context, id, ownerID string) (domain.Todo, error) {
	var updated domain.Todo
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := tx.Todos().GetTodoByID(ctx, id)
		if err != nil {
			return err
		}
		if t.OwnerID != ownerID {
			if s.StrictToggleErrors {
				return ErrForbidden
			}
			return store.ErrNotFound
		}

		t.Completed = !t.Completed
		if err := tx.Todos().UpdateTodo(ctx, t); err != nil {
			return err
		}

		updated = t
		return nil
	})
	if err != nil {
		return domain.Todo{}, err
	}
	return updated, nil
}
