package user

import (
	"time"

	domain "demo-user-service/internal/domain/user"
)

// CreateUserRequest represents the request payload for creating a new user.
// CreatedAt is optional; it defaults to the current time when absent.
type CreateUserRequest struct {
	Name      string `validate:"required,max=100"`
	Email     string `validate:"required,email"`
	CreatedAt *time.Time
}

// UpdateUserRequest represents the request payload for updating an existing
// user. A nil CreatedAt preserves the stored value; a supplied one overwrites
// it (full-replace save).
type UpdateUserRequest struct {
	ID        int64  `validate:"required,gt=0"`
	Name      string `validate:"required,max=100"`
	Email     string `validate:"required,email"`
	CreatedAt *time.Time
}

// ListUsersRequest represents the request payload for listing users.
type ListUsersRequest struct {
	Page int // Zero-based page index
	Size int // Requested page size, clamped to MaxPageSize
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users      []User
	Pagination domain.PageInfo
}

// User represents a user DTO for API responses.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

func toDTO(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
