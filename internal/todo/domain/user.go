package domain

import "time"

// User is an identity record. Emails are unique and compared exactly as
// stored. Users are never updated in-band; deletion is an administrative
// action that cascades to the user's todos.
type User struct {
	ID           string
	Email        string
	PasswordHash string // argon2id PHC encoded
	CreatedAt    time.Time
}
