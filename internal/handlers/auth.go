package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AnshRaj112/reflect-backend/internal/logger"
	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/store"
	"github.com/AnshRaj112/reflect-backend/pkg/utils"
)

const minPasswordLength = 8

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse returns only the anonymous profile, plus the session token on sign-in.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

// Signup creates an account. No email or real name is collected.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var verr *utils.ValidationError
	if err := utils.ValidateUsername(req.Username); errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Message: verr.Message,
			Errors:  map[string]string{verr.Field: verr.Message},
		})
		return
	}
	if len(req.Password) < minPasswordLength {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Message: "Password must be at least 8 characters",
			Errors:  map[string]string{"password": "Password must be at least 8 characters"},
		})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user, err := h.Users.CreateUser(r.Context(), utils.NormalizeUsername(req.Username), hashedPassword)
	if errors.Is(err, store.ErrDuplicate) {
		writeError(w, http.StatusConflict, "Username is already taken")
		return
	}
	if err != nil {
		failure(w, r, err, "", "Failed to create account")
		return
	}

	logger.Info("user signed up", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		User:    &user,
	})
}

// Signin checks the credentials and issues a session token valid for seven days.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.Users.GetUserByUsername(r.Context(), utils.NormalizeUsername(req.Username))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		failure(w, r, err, "", "Failed to sign in")
		return
	}
	if !user.IsActive {
		writeError(w, http.StatusForbidden, "Account is inactive")
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := h.Sessions.CreateSession(r.Context(), user.ID)
	if err != nil {
		failure(w, r, err, "", "Failed to create session")
		return
	}

	logger.Info("user signed in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    &user,
	})
}

// Signout invalidates the caller's session. It succeeds for unknown tokens.
func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if err := h.Sessions.InvalidateSession(r.Context(), token); err != nil {
		failure(w, r, err, "", "Failed to sign out")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Signed out"})
}

type MeResponse struct {
	Success bool        `json:"success"`
	User    models.User `json:"user"`
	// ServerTime lets clients show relative timestamps without trusting the local clock.
	ServerTime time.Time `json:"server_time"`
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetUser(r.Context(), UserID(r.Context()))
	if err != nil {
		failure(w, r, err, "User not found", "Failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, MeResponse{Success: true, User: user, ServerTime: time.Now().UTC()})
}
