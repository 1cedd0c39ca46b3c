package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthwise_gateway/internal/feature/session/domain/entity"
	"wealthwise_gateway/internal/feature/session/usecase"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	LoginFunc func(ctx context.Context, email, password string) (usecase.Credentials, error)
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (usecase.Credentials, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return usecase.Credentials{}, errors.New("login failed")
}

// mockSessionManager is a mock implementation of the SessionManager interface.
type mockSessionManager struct {
	state       entity.State
	remaining   time.Duration
	extendErr   error
	deactivated bool
}

func (m *mockSessionManager) State() entity.State        { return m.state }
func (m *mockSessionManager) Remaining() time.Duration   { return m.remaining }
func (m *mockSessionManager) Extend() error              { return m.extendErr }
func (m *mockSessionManager) Deactivate()                { m.deactivated = true }

func newRouter(h *SessionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", h.Login)
	r.GET("/session", h.Status)
	r.POST("/session/extend", h.Extend)
	r.POST("/logout", h.Logout)
	return r
}

func TestSessionHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    gin.H
		loginFunc      func(ctx context.Context, email, password string) (usecase.Credentials, error)
		expectedStatus int
	}{
		{
			name:        "success",
			requestBody: gin.H{"email": "user@example.com", "password": "secret123"},
			loginFunc: func(ctx context.Context, email, password string) (usecase.Credentials, error) {
				return usecase.Credentials{Token: "tok-1", UserName: "Ada"}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid email",
			requestBody:    gin.H{"email": "not-an-email", "password": "secret123"},
			loginFunc:      nil, // usecase is not called
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing password",
			requestBody:    gin.H{"email": "user@example.com"},
			loginFunc:      nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "backend rejects credentials",
			requestBody: gin.H{"email": "user@example.com", "password": "wrong"},
			loginFunc: func(ctx context.Context, email, password string) (usecase.Credentials, error) {
				return usecase.Credentials{}, errors.New("invalid email or password")
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSessionHandler(&mockAuthUsecase{LoginFunc: tt.loginFunc}, &mockSessionManager{})
			router := newRouter(h)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "tok-1", resp["token"])
				assert.Equal(t, "Ada", resp["userName"])
			}
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"invalid email or password"}`, w.Body.String())
			}
		})
	}
}

func TestSessionHandler_Status(t *testing.T) {
	sessions := &mockSessionManager{state: entity.StateExpiring, remaining: 42 * time.Second}
	router := newRouter(NewSessionHandler(&mockAuthUsecase{}, sessions))

	req, _ := http.NewRequest(http.MethodGet, "/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"expiring","remainingSeconds":42}`, w.Body.String())
}

func TestSessionHandler_Extend(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		sessions := &mockSessionManager{state: entity.StateActive, remaining: 4 * time.Hour}
		router := newRouter(NewSessionHandler(&mockAuthUsecase{}, sessions))

		req, _ := http.NewRequest(http.MethodPost, "/session/extend", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"state":"active","remainingSeconds":14400}`, w.Body.String())
	})

	t.Run("no session", func(t *testing.T) {
		sessions := &mockSessionManager{extendErr: usecase.ErrNoSession}
		router := newRouter(NewSessionHandler(&mockAuthUsecase{}, sessions))

		req, _ := http.NewRequest(http.MethodPost, "/session/extend", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestSessionHandler_Logout(t *testing.T) {
	sessions := &mockSessionManager{state: entity.StateActive}
	router := newRouter(NewSessionHandler(&mockAuthUsecase{}, sessions))

	req, _ := http.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, sessions.deactivated)
}
