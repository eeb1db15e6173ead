package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"demo-user-service/internal/usecase/user"
	apperrors "demo-user-service/pkg/errors"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// UserPayload represents the HTTP request body for creating or updating a user
type UserPayload struct {
	Name      string    `json:"name" binding:"required,max=100"`
	Email     string    `json:"email" binding:"required,email"`
	CreatedAt *JSONTime `json:"createdAt"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	CreatedAt JSONTime `json:"createdAt"`
}

// PaginationResponse represents pagination metadata in list responses
type PaginationResponse struct {
	CurrentPage int   `json:"currentPage"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
	PageSize    int   `json:"pageSize"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: JSONTime(u.CreatedAt),
	}
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		respondError(c, apperrors.NewValidation("page", "page must be a valid number"), "Failed to retrieve users")
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "1000"))
	if err != nil {
		respondError(c, apperrors.NewValidation("size", "size must be a valid number"), "Failed to retrieve users")
		return
	}

	h.log.Info("fetching users", zap.Int("page", page), zap.Int("size", size))

	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{Page: page, Size: size})
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		respondError(c, err, "Failed to retrieve users")
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i := range resp.Users {
		users[i] = toUserResponse(&resp.Users[i])
	}

	h.log.Info("returning users", zap.Int("count", len(users)), zap.Int("page", page))

	respondSuccess(c, "Users retrieved successfully", gin.H{
		"data": users,
		"pagination": PaginationResponse{
			CurrentPage: resp.Pagination.CurrentPage,
			TotalItems:  resp.Pagination.TotalItems,
			TotalPages:  resp.Pagination.TotalPages,
			HasNext:     resp.Pagination.HasNext,
			HasPrevious: resp.Pagination.HasPrevious,
			PageSize:    resp.Pagination.PageSize,
		},
	})
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := h.parseID(c)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}

	h.log.Info("fetching user", zap.Int64("id", id))

	u, err := h.uc.GetUser(c.Request.Context(), id)
	if err != nil {
		h.log.Error("get user failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, err, "Failed to retrieve user")
		return
	}

	respondSuccess(c, "User retrieved successfully", gin.H{"data": toUserResponse(u)})
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req UserPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user request", zap.Error(err))
		respondError(c, apperrors.NewValidation("", err.Error()), "Failed to create user")
		return
	}

	h.log.Info("creating user", zap.String("name", req.Name))

	in := user.CreateUserRequest{Name: req.Name, Email: req.Email}
	if req.CreatedAt != nil {
		t := req.CreatedAt.Time()
		in.CreatedAt = &t
	}

	created, err := h.uc.CreateUser(c.Request.Context(), in)
	if err != nil {
		h.log.Error("create user failed", zap.Error(err))
		respondError(c, err, "Failed to create user")
		return
	}

	respondSuccess(c, "User created successfully", gin.H{"data": toUserResponse(created)})
}

// UpdateUser handles PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := h.parseID(c)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}

	var req UserPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update user request", zap.Error(err))
		respondError(c, apperrors.NewValidation("", err.Error()), "Failed to update user")
		return
	}

	h.log.Info("updating user", zap.Int64("id", id))

	in := user.UpdateUserRequest{ID: id, Name: req.Name, Email: req.Email}
	if req.CreatedAt != nil {
		t := req.CreatedAt.Time()
		in.CreatedAt = &t
	}

	updated, err := h.uc.UpdateUser(c.Request.Context(), in)
	if err != nil {
		h.log.Error("update user failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, err, "Failed to update user")
		return
	}

	respondSuccess(c, "User updated successfully", gin.H{"data": toUserResponse(updated)})
}

// DeleteUser handles DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := h.parseID(c)
	if err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}

	h.log.Info("deleting user", zap.Int64("id", id))

	if err := h.uc.DeleteUser(c.Request.Context(), id); err != nil {
		h.log.Error("delete user failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, err, "Failed to delete user")
		return
	}

	respondSuccess(c, "User deleted successfully", gin.H{"deletedId": id})
}

func (h *UserHandler) parseID(c *gin.Context) (int64, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user id", zap.String("id", idStr))
		return 0, apperrors.NewValidation("id", "user id must be a valid number")
	}
	return id, nil
}
