package model

import "time"

// User represents a registered account in the database.
type User struct {
	ID        int64
	Email     string
	Username  string
	AuthHash  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents an authentication response with a JWT token and user info.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data safe for API responses (no credential hash).
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRef is a minimal user reference embedded in image responses.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ProfileResponse represents a user's profile with their uploaded posts.
type ProfileResponse struct {
	User  UserResponse    `json:"user"`
	Posts []ImageResponse `json:"posts"`
}
