package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "demo-user-service/internal/domain/user"
	"demo-user-service/internal/usecase/user"
	apperrors "demo-user-service/pkg/errors"
)

// MockUsecase is a mock implementation of the user.Usecase interface
type MockUsecase struct {
	mock.Mock
}

func (m *MockUsecase) ListUsers(ctx context.Context, req user.ListUsersRequest) (*user.ListUsersResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.ListUsersResponse), args.Error(1)
}

func (m *MockUsecase) GetUser(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUsecase) CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUsecase) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (*user.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUsecase) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsecase) TotalUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func setupTestRouter(t *testing.T) (*gin.Engine, *MockUsecase) {
	gin.SetMode(gin.TestMode)

	mockUc := new(MockUsecase)
	h := NewUserHandler(mockUc, zaptest.NewLogger(t))

	r := gin.New()
	r.GET("/api/users", h.ListUsers)
	r.GET("/api/users/:id", h.GetUser)
	r.POST("/api/users", h.CreateUser)
	r.PUT("/api/users/:id", h.UpdateUser)
	r.DELETE("/api/users/:id", h.DeleteUser)
	return r, mockUc
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListUsers_Defaults(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	// No query params means first page at the maximum size
	mockUc.On("ListUsers", mock.Anything, user.ListUsersRequest{Page: 0, Size: 1000}).Return(&user.ListUsersResponse{
		Users: []user.User{
			{ID: 1, Name: "John Doe", Email: "john@example.com", CreatedAt: time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)},
		},
		Pagination: domain.PageInfo{CurrentPage: 0, PageSize: 1000, TotalItems: 1, TotalPages: 1},
	}, nil)

	w := doRequest(r, http.MethodGet, "/api/users", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Users retrieved successfully", body["message"])
	assert.NotEmpty(t, body["timestamp"])

	data := body["data"].([]any)
	require.Len(t, data, 1)
	first := data[0].(map[string]any)
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "2024-03-15 09:30:00", first["createdAt"])

	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(0), pagination["currentPage"])
	assert.Equal(t, float64(1), pagination["totalItems"])
	assert.Equal(t, float64(1), pagination["totalPages"])
	assert.Equal(t, false, pagination["hasNext"])
	assert.Equal(t, false, pagination["hasPrevious"])
	assert.Equal(t, float64(1000), pagination["pageSize"])

	mockUc.AssertExpectations(t)
}

func TestListUsers_ExplicitPaging(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	mockUc.On("ListUsers", mock.Anything, user.ListUsersRequest{Page: 2, Size: 10}).Return(&user.ListUsersResponse{
		Users:      []user.User{},
		Pagination: domain.PageInfo{CurrentPage: 2, PageSize: 10, TotalItems: 50, TotalPages: 5, HasNext: true, HasPrevious: true},
	}, nil)

	w := doRequest(r, http.MethodGet, "/api/users?page=2&size=10", "")

	assert.Equal(t, http.StatusOK, w.Code)
	mockUc.AssertExpectations(t)
}

func TestListUsers_MalformedPageParam(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/users?page=abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to retrieve users", body["message"])
}

func TestGetUser_Success(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	mockUc.On("GetUser", mock.Anything, int64(1)).Return(&user.User{
		ID: 1, Name: "John Doe", Email: "john@example.com",
		CreatedAt: time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
	}, nil)

	w := doRequest(r, http.MethodGet, "/api/users/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "User retrieved successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "John Doe", data["name"])
	assert.Equal(t, "2024-03-15 09:30:00", data["createdAt"])
}

func TestGetUser_NotFoundIsBadRequest(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	mockUc.On("GetUser", mock.Anything, int64(42)).Return(nil, apperrors.NewNotFound("user", "user not found with id: 42"))

	w := doRequest(r, http.MethodGet, "/api/users/42", "")

	// Missing rows surface as 400, not 404
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "user not found with id: 42")
	assert.Equal(t, "Failed to retrieve user", body["message"])
}

func TestGetUser_NonNumericID(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doRequest(r, http.MethodGet, "/api/users/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestCreateUser_Success(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	mockUc.On("CreateUser", mock.Anything, mock.MatchedBy(func(req user.CreateUserRequest) bool {
		return req.Name == "John Doe" && req.Email == "john@example.com" && req.CreatedAt == nil
	})).Return(&user.User{
		ID: 1, Name: "John Doe", Email: "john@example.com",
		CreatedAt: time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
	}, nil)

	w := doRequest(r, http.MethodPost, "/api/users", `{"name":"John Doe","email":"john@example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User created successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["id"])

	mockUc.AssertExpectations(t)
}

func TestCreateUser_WithCreatedAt(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	want := time.Date(2020, 6, 1, 8, 0, 0, 0, time.UTC)
	mockUc.On("CreateUser", mock.Anything, mock.MatchedBy(func(req user.CreateUserRequest) bool {
		return req.CreatedAt != nil && want.Equal(*req.CreatedAt)
	})).Return(&user.User{ID: 2, Name: "Old Timer", Email: "old@example.com", CreatedAt: want}, nil)

	w := doRequest(r, http.MethodPost, "/api/users",
		`{"name":"Old Timer","email":"old@example.com","createdAt":"2020-06-01 08:00:00"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "2020-06-01 08:00:00", data["createdAt"])

	mockUc.AssertExpectations(t)
}

func TestCreateUser_MalformedBody(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/users", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to create user", body["message"])
	mockUc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestCreateUser_MissingEmail(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/users", `{"name":"John Doe"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUc.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestCreateUser_ConflictIsBadRequest(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	mockUc.On("CreateUser", mock.Anything, mock.Anything).Return(nil,
		apperrors.NewConflict("user", "email already in use: taken@example.com"))

	w := doRequest(r, http.MethodPost, "/api/users", `{"name":"New User","email":"taken@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "email already in use")
}

func TestUpdateUser_Success(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	mockUc.On("UpdateUser", mock.Anything, mock.MatchedBy(func(req user.UpdateUserRequest) bool {
		return req.ID == 1 && req.Name == "New Name"
	})).Return(&user.User{
		ID: 1, Name: "New Name", Email: "john@example.com",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	w := doRequest(r, http.MethodPut, "/api/users/1", `{"name":"New Name","email":"john@example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "User updated successfully", body["message"])

	mockUc.AssertExpectations(t)
}

func TestUpdateUser_NotFoundIsBadRequest(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	mockUc.On("UpdateUser", mock.Anything, mock.Anything).Return(nil,
		apperrors.NewNotFound("user", "user not found with id: 99"))

	w := doRequest(r, http.MethodPut, "/api/users/99", `{"name":"Ghost","email":"ghost@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Failed to update user", body["message"])
}

func TestDeleteUser_Success(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	mockUc.On("DeleteUser", mock.Anything, int64(1)).Return(nil)

	w := doRequest(r, http.MethodDelete, "/api/users/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "User deleted successfully", body["message"])
	assert.Equal(t, float64(1), body["deletedId"])
}

func TestDeleteUser_NotFoundIsBadRequest(t *testing.T) {
	r, mockUc := setupTestRouter(t)

	mockUc.On("DeleteUser", mock.Anything, int64(99)).Return(
		apperrors.NewNotFound("user", "user not found with id: 99"))

	w := doRequest(r, http.MethodDelete, "/api/users/99", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Failed to delete user", body["message"])
}
