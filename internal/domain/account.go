package domain

import "time"

// Account is an authenticated identity. It carries no role; role choice is
// stored separately and outlives any single session.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
