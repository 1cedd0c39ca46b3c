// Package handler provides the HTTP handlers for the session feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wealthwise_gateway/internal/api"
	"wealthwise_gateway/internal/feature/session/domain/entity"
	"wealthwise_gateway/internal/feature/session/usecase"
)

// AuthUsecase performs the login flow.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (usecase.Credentials, error)
}

// SessionManager is the slice of the lifecycle manager the handlers need.
type SessionManager interface {
	State() entity.State
	Remaining() time.Duration
	Extend() error
	Deactivate()
}

// SessionHandler processes the session lifecycle HTTP requests.
type SessionHandler struct {
	auth     AuthUsecase
	sessions SessionManager
}

// NewSessionHandler creates a new SessionHandler instance.
func NewSessionHandler(auth AuthUsecase, sessions SessionManager) *SessionHandler {
	return &SessionHandler{auth: auth, sessions: sessions}
}

// Login handles POST /login. Validation failures return 400; a failed
// exchange returns 401 with a generic body so the response does not leak
// whether the account exists.
func (h *SessionHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	creds, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	}

	slog.Info("login successful", "email", req.Email)
	c.JSON(http.StatusOK, api.LoginResponse{
		Token:     creds.Token,
		UserName:  creds.UserName,
		UserEmail: creds.UserEmail,
	})
}

// Status handles GET /session. It is reachable without a session so the UI
// can decide whether to show the login form or the expiry prompt.
func (h *SessionHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, api.SessionStatusResponse{
		State:            h.sessions.State().String(),
		RemainingSeconds: int64(h.sessions.Remaining() / time.Second),
	})
}

// Extend handles POST /session/extend: the user confirmed the expiry prompt.
func (h *SessionHandler) Extend(c *gin.Context) {
	if err := h.sessions.Extend(); err != nil {
		slog.Warn("session extend failed", "error", err)
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "no session to extend"})
		return
	}
	c.JSON(http.StatusOK, api.SessionStatusResponse{
		State:            h.sessions.State().String(),
		RemainingSeconds: int64(h.sessions.Remaining() / time.Second),
	})
}

// Logout handles POST /logout.
func (h *SessionHandler) Logout(c *gin.Context) {
	h.sessions.Deactivate()
	slog.Info("logout")
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
