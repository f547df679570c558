package models

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleViewer UserRole = "viewer"
)

// User is the authenticated operator. Only one admin account exists; it is
// configured through the environment, not stored.
type User struct {
	Username     string   `json:"username"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
