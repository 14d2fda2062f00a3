package model

import "time"

// Role is the access level of a platform user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// User represents a platform account as returned by the backend.
// Password is write-only: read endpoints never echo it back.
type User struct {
	ID        string     `json:"_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Password  string     `json:"password,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// GetID returns the backend identifier.
func (u User) GetID() string { return u.ID }

// UserInput is the payload for register and update. A blank password is
// dropped from the JSON body so updates keep the current one.
type UserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     Role   `json:"role" validate:"required,oneof=admin teacher student"`
	Password string `json:"password,omitempty"`
}

// Credentials is the login body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the backend answer to a login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// RegisterResult is returned by POST /users/register.
type RegisterResult struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// MessageResult is returned by endpoints that only acknowledge.
type MessageResult struct {
	Message string `json:"message"`
}
