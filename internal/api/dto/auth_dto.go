package dto

import "time"

// LoginRequest payload for voter and admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned from POST /users/login.
type LoginResponse struct {
	VoterID   string    `json:"voterId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminLoginResponse is returned from POST /admin/login.
type AdminLoginResponse struct {
	AdminID   string    `json:"adminId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
