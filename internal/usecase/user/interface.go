package user

import (
	"context"

	domain "demo-user-service/internal/domain/user"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations to be used
// interchangeably. All operations execute against the primary datasource.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)       // Typed NotFound on absence
	FindByEmail(ctx context.Context, email string) (*domain.User, error) // (nil, nil) on absence
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	ListPage(ctx context.Context, offset, limit int) ([]domain.User, int64, error) // Ordered by id ascending
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)              // Storage assigns the id
	Save(ctx context.Context, u *domain.User) error                                // Full-row replace
	DeleteByID(ctx context.Context, id int64) error

	// InTx runs fn inside one transaction, rolling back on any error.
	InTx(ctx context.Context, fn func(Repository) error) error
}

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, in CreateUserRequest) (*User, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
	TotalUsers(ctx context.Context) (int64, error)
}
