package domain

import "time"

// Admin is the domain model for an election administrator.
type Admin struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
