package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hailsim/internal/domain"
	"hailsim/internal/session"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	gate *session.Gate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gate *session.Gate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

// LoginRequest is the HTTP request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the HTTP request body for creating an account.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse describes who is logged in and which entry screen the
// client should show.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role,omitempty"`
	EntryScreen   string `json:"entry_screen,omitempty"`
}

// Login authenticates a user and reports the role-dependent entry screen.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, session.ErrMissingCredentials)
		return
	}

	sess, err := h.gate.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, sessionResponse(sess))
}

// Signup creates a passenger account and logs it in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, session.ErrMissingCredentials)
		return
	}

	sess, err := h.gate.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, sessionResponse(sess))
}

// Logout clears the session. It always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.gate.Logout(c.Request.Context())
	respondJSON(c, http.StatusOK, SessionResponse{Authenticated: false})
}

// Session reports the current session, if any.
func (h *AuthHandler) Session(c *gin.Context) {
	ctx := c.Request.Context()
	if !h.gate.IsAuthenticated(ctx) {
		respondJSON(c, http.StatusOK, SessionResponse{Authenticated: false})
		return
	}

	user, err := h.gate.CurrentUser(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, sessionResponse(&session.Session{
		Email: user.Email, Name: user.Name, Role: user.Role,
	}))
}

func sessionResponse(sess *session.Session) SessionResponse {
	entry := "home"
	if sess.Role == domain.RoleDriver {
		entry = "driver_dashboard"
	}
	return SessionResponse{
		Authenticated: true,
		Email:         sess.Email,
		Name:          sess.Name,
		Role:          string(sess.Role),
		EntryScreen:   entry,
	}
}
