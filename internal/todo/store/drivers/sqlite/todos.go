package sqlite

import (
	"context"
	"database/sql"

	"github.com/listkeeper/listkeeper/internal/todo/domain"
	"github.com/listkeeper/listkeeper/internal/todo/store"
)

type todosRepo struct {
	db dbtx
}

func (r *todosRepo) CreateTodo(ctx context.Context, t domain.Todo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (id, owner_id, title, description, due_date, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.Title,
		mapOptionalString(t.Description),
		mapOptionalTime(t.DueDate),
		t.Completed, t.CreatedAt,
	)
	return err
}

func (r *todosRepo) GetTodoByID(ctx context.Context, id string) (domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, description, due_date, completed, created_at
		FROM todos WHERE id = ?`, id,
	)

	t, err := scanTodo(row)
	if err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return t, nil
}

func (r *todosRepo) ListTodosByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	// ULIDs sort by creation time, so ordering by id is insertion order.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, description, due_date, completed, created_at
		FROM todos WHERE owner_id = ? ORDER BY id`, ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *todosRepo) UpdateTodo(ctx context.Context, t domain.Todo) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE todos
		SET title = ?, description = ?, due_date = ?, completed = ?
		WHERE id = ?`,
		t.Title,
		mapOptionalString(t.Description),
		mapOptionalTime(t.DueDate),
		t.Completed, t.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *todosRepo) DeleteTodo(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (domain.Todo, error) {
	var (
		t           domain.Todo
		description sql.NullString
		dueDate     sql.NullTime
	)
	err := s.Scan(&t.ID, &t.OwnerID, &t.Title, &description, &dueDate, &t.Completed, &t.CreatedAt)
	if err != nil {
		return domain.Todo{}, err
	}
	t.Description = mapNullString(description)
	t.DueDate = mapNullTime(dueDate)
	return t, nil
}
