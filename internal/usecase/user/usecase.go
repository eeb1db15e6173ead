package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "demo-user-service/internal/domain/user"
	apperrors "demo-user-service/pkg/errors"
)

// MaxPageSize is the hard ceiling for one listing page. Requested sizes above
// it are silently clamped.
const MaxPageSize = 1000

// Service implements the business logic for user management operations.
// Every operation runs inside one transaction on the primary connection.
type Service struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a typed
// validation error with a human-readable message.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			case "gt":
				messages = append(messages, fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return apperrors.NewValidation("", strings.Join(messages, ", "))
	}
	return err
}

// ListUsers returns one page of users ordered by id, with page metadata
// derived from the total row count.
func (s *Service) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	if in.Page < 0 {
		return nil, apperrors.NewValidation("page", "page must not be negative")
	}
	if in.Size <= 0 {
		return nil, apperrors.NewValidation("size", "size must be positive")
	}
	if in.Size > MaxPageSize {
		in.Size = MaxPageSize
	}

	s.log.Info("listing users", zap.Int("page", in.Page), zap.Int("size", in.Size))

	var (
		items []domain.User
		total int64
	)
	err := s.repo.InTx(ctx, func(r Repository) error {
		var err error
		items, total, err = r.ListPage(ctx, in.Page*in.Size, in.Size)
		return err
	})
	if err != nil {
		s.log.Error("failed to list users", zap.Int("page", in.Page), zap.Int("size", in.Size), zap.Error(err))
		return nil, err
	}

	users := make([]User, len(items))
	for i := range items {
		users[i] = *toDTO(&items[i])
	}

	return &ListUsersResponse{
		Users:      users,
		Pagination: domain.NewPageInfo(in.Page, in.Size, total),
	}, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, apperrors.NewValidation("id", "id must be positive")
	}

	var out *User
	err := s.repo.InTx(ctx, func(r Repository) error {
		u, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		out = toDTO(u)
		return nil
	})
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.log.Error("failed to get user", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}

	return out, nil
}

// CreateUser creates a new user after validating the request and checking
// email uniqueness. The storage-level unique constraint backstops the
// check-then-insert race: a duplicate-key violation surfaces as the same
// Conflict outcome.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	s.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	createdAt := time.Now()
	if in.CreatedAt != nil {
		createdAt = *in.CreatedAt
	}

	var out *User
	err := s.repo.InTx(ctx, func(r Repository) error {
		existing, err := r.FindByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.NewConflict("user", fmt.Sprintf("email already exists: %s", in.Email))
		}

		stored, err := r.Insert(ctx, &domain.User{
			Name:      in.Name,
			Email:     in.Email,
			CreatedAt: createdAt,
		})
		if err != nil {
			return err
		}
		out = toDTO(stored)
		return nil
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			s.log.Warn("email already exists", zap.String("email", in.Email))
		} else {
			s.log.Error("failed to create user", zap.Error(err))
		}
		return nil, err
	}

	return out, nil
}

// UpdateUser replaces an existing user's row. Changing the email re-runs the
// uniqueness check against all other rows.
func (s *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	s.log.Info("updating user", zap.Int64("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	var out *User
	err := s.repo.InTx(ctx, func(r Repository) error {
		current, err := r.FindByID(ctx, in.ID)
		if err != nil {
			return err
		}

		if in.Email != current.Email {
			other, err := r.FindByEmail(ctx, in.Email)
			if err != nil {
				return err
			}
			if other != nil && other.ID != in.ID {
				return apperrors.NewConflict("user", fmt.Sprintf("email already exists: %s", in.Email))
			}
		}

		createdAt := current.CreatedAt
		if in.CreatedAt != nil {
			createdAt = *in.CreatedAt
		}

		updated := &domain.User{
			ID:        in.ID,
			Name:      in.Name,
			Email:     in.Email,
			CreatedAt: createdAt,
		}
		if err := r.Save(ctx, updated); err != nil {
			return err
		}
		out = toDTO(updated)
		return nil
	})
	if err != nil {
		if apperrors.IsNotFound(err) || apperrors.IsConflict(err) {
			s.log.Warn("update rejected", zap.Int64("id", in.ID), zap.Error(err))
		} else {
			s.log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		}
		return nil, err
	}

	return out, nil
}

// DeleteUser removes a user by ID.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	s.log.Info("deleting user", zap.Int64("id", id))

	if id <= 0 {
		return apperrors.NewValidation("id", "id must be positive")
	}

	err := s.repo.InTx(ctx, func(r Repository) error {
		exists, err := r.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewNotFound("user", fmt.Sprintf("user not found with id: %d", id))
		}
		return r.DeleteByID(ctx, id)
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.log.Warn("delete rejected, user missing", zap.Int64("id", id))
		} else {
			s.log.Error("failed to delete user", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}

	return nil
}

// TotalUsers returns the total row count.
func (s *Service) TotalUsers(ctx context.Context) (int64, error) {
	var total int64
	err := s.repo.InTx(ctx, func(r Repository) error {
		var err error
		total, err = r.Count(ctx)
		return err
	})
	if err != nil {
		s.log.Error("failed to count users", zap.Error(err))
		return 0, err
	}
	return total, nil
}
