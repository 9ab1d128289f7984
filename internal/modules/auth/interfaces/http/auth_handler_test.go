package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anuragc10/academiapro/internal/gateway/middleware"
	"github.com/anuragc10/academiapro/internal/modules/auth/application"
	"github.com/anuragc10/academiapro/internal/modules/auth/domain"
	auth_http "github.com/anuragc10/academiapro/internal/modules/auth/interfaces/http"
)

// Mock AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req application.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req application.LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestRegisterHandler_Success(t *testing.T) {
	mockService := new(MockAuthService)
	h := auth_http.NewAuthHandler(mockService)

	reqBody := application.RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
		Role:     "student",
		RollNo:   "CS-1042",
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	expectedUser := &domain.User{
		ID:    uuid.New(),
		Email: reqBody.Email,
		Role:  domain.RoleStudent,
	}
	mockService.On("Register", mock.Anything, reqBody).Return(expectedUser, nil)

	h.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestRegisterHandler_Conflict(t *testing.T) {
	mockService := new(MockAuthService)
	h := auth_http.NewAuthHandler(mockService)

	reqBody := application.RegisterRequest{
		Email: "existing@example.com",
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	mockService.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrUserAlreadyExists)

	h.Register(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterHandler_BadRequest(t *testing.T) {
	mockService := new(MockAuthService)
	h := auth_http.NewAuthHandler(mockService)

	reqBody := application.RegisterRequest{Email: ""}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	mockService.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("name is required"))

	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandler(t *testing.T) {
	t.Run("invalid body", func(t *testing.T) {
		h := auth_http.NewAuthHandler(new(MockAuthService))
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("{bad"))
		w := httptest.NewRecorder()
		h.Login(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mockService := new(MockAuthService)
		h := auth_http.NewAuthHandler(mockService)
		mockService.On("Login", mock.Anything, mock.Anything).Return("", domain.ErrInvalidCredentials)

		body, _ := json.Marshal(application.LoginRequest{Email: "a@a.com", Password: "wrong"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		h.Login(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success returns token", func(t *testing.T) {
		mockService := new(MockAuthService)
		h := auth_http.NewAuthHandler(mockService)
		mockService.On("Login", mock.Anything, mock.Anything).Return("jwt-token", nil)

		body, _ := json.Marshal(application.LoginRequest{Email: "a@a.com", Password: "password123"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		h.Login(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, "jwt-token", payload["token"])
	})
}

func TestMeHandler(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		h := auth_http.NewAuthHandler(new(MockAuthService))
		w := httptest.NewRecorder()
		h.Me(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("user not found", func(t *testing.T) {
		mockService := new(MockAuthService)
		h := auth_http.NewAuthHandler(mockService)
		userID := uuid.New()
		mockService.On("GetUser", mock.Anything, userID).Return(nil, domain.ErrUserNotFound)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		ctx := context.WithValue(req.Context(), middleware.ContextKeyUserId, userID)
		w := httptest.NewRecorder()
		h.Me(w, req.WithContext(ctx))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		mockService := new(MockAuthService)
		h := auth_http.NewAuthHandler(mockService)
		userID := uuid.New()
		mockService.On("GetUser", mock.Anything, userID).Return(&domain.User{ID: userID, Email: "a@a.com"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		ctx := context.WithValue(req.Context(), middleware.ContextKeyUserId, userID)
		w := httptest.NewRecorder()
		h.Me(w, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "a@a.com")
	})
}
