package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"todoapi/internal/httputil"
	"todoapi/internal/logging"
	"todoapi/internal/user"
)

// Handler contains HTTP handlers for the user endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CredentialsRequest is the request body for both register and login.
// Any other field in the body is ignored.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /users.
// On success the fresh session token is returned in the x-auth header and
// the body is the public user view.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	newUser, token, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("registration failed: email already exists")
			httputil.RespondError(w, "email already exists", http.StatusBadRequest)
			return
		}
		if isValidationError(err) {
			logger.Warn("registration failed: validation error", "error", err.Error())
			httputil.RespondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("registration failed", "error", err.Error())
		httputil.RespondError(w, "failed to register user", http.StatusBadRequest)
		return
	}

	logger.Info("user registered", "user_id", newUser.ID.Hex())

	w.Header().Set(TokenHeader, token)
	httputil.RespondJSON(w, newUser.Public(), http.StatusOK)
}

// Login handles POST /users/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	existing, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			httputil.RespondError(w, "invalid email or password", http.StatusBadRequest)
			return
		}
		logger.Error("login failed", "error", err.Error())
		httputil.RespondError(w, "failed to login", http.StatusBadRequest)
		return
	}

	logger.Info("user logged in", "user_id", existing.ID.Hex())

	w.Header().Set(TokenHeader, token)
	httputil.RespondJSON(w, existing.Public(), http.StatusOK)
}

// Logout handles DELETE /users/me/token.
// Revokes exactly the session token the request authenticated with.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	u, ok := GetUserFromContext(r.Context())
	token, tokenOK := GetTokenFromContext(r.Context())
	if !ok || !tokenOK {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.service.RevokeSession(r.Context(), u, token); err != nil {
		logger.Error("logout failed", "error", err.Error())
		httputil.RespondError(w, "failed to logout", http.StatusBadRequest)
		return
	}

	logger.Info("session revoked", "user_id", u.ID.Hex())

	w.WriteHeader(http.StatusOK)
}

// Me handles GET /users/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := GetUserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	httputil.RespondJSON(w, u.Public(), http.StatusOK)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrEmailTooShort) ||
		errors.Is(err, ErrInvalidEmailFormat) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrPasswordTooShort)
}
