package domain

import "time"

// Voter is the domain model for a registered voter.
type Voter struct {
	ID                string
	IDNumber          string
	Name              string
	Email             string
	PasswordHash      string
	DateOfBirth       string
	BiometricTemplate []float64
	HasVoted          bool
	RegisteredAt      time.Time
	UpdatedAt         time.Time
}

// HasBiometric reports whether a biometric template was captured at registration.
func (v *Voter) HasBiometric() bool {
	return len(v.BiometricTemplate) > 0
}
