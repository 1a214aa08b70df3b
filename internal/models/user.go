package models

import "time"

// Subscription plans controlling feature gates and quotas.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// TimeLayout is the storage format for timestamps: millisecond-precision
// RFC3339 in UTC. Fixed width, so lexical order equals chronological order.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Now returns the current UTC time in storage format.
func Now() string {
	return time.Now().UTC().Format(TimeLayout)
}

// User represents a user record in the database.
// PasswordHash never leaves the authorization boundary.
type User struct {
	ID           string  `json:"id" db:"id"`
	Email        string  `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Plan         string  `json:"plan" db:"plan"`
	Username     *string `json:"username" db:"username"`
	IsPublic     bool    `json:"isPublic" db:"is_public"`
	CreatedAt    string  `json:"createdAt" db:"created_at"`
	UpdatedAt    string  `json:"updatedAt" db:"updated_at"`
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
	Plan   string `json:"plan,omitempty"`
}
