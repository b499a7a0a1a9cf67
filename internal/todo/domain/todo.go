package domain

import "time"

// Todo is a single todo record. Every todo has exactly one owner and is
// visible and mutable only through that owner's authenticated session.
type Todo struct {
	ID          string
	OwnerID     string
	Title       string
	Description *string
	DueDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
}

// TodoPatch carries a partial update. Nil fields are left unchanged.
type TodoPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
}

// Apply copies the set fields of the patch onto t.
func (p TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

// IsZero reports whether the patch sets nothing.
func (p TodoPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && p.Completed == nil
}
