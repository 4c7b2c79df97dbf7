package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"smartbudget/internal/auth"
	applog "smartbudget/internal/log"
	"smartbudget/internal/storage"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required", CodeMissingFields)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required", CodeMissingFields)
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if !auth.ValidEmail(email) {
		writeError(w, http.StatusBadRequest, "Invalid email format", CodeInvalidEmail)
		return
	}

	if requirements := auth.ValidatePassword(req.Password); len(requirements) > 0 {
		writeErrorDetails(w, http.StatusBadRequest,
			"Password does not meet requirements", CodeInvalidPassword,
			map[string]any{"requirements": requirements})
		return
	}

	ctx := r.Context()
	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		s.logger.ErrorContext(ctx, "registration failed",
			applog.FieldOperation, applog.OpRegister, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError,
			"Registration failed. Please try again later.", CodeRegistrationError)
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "Email already registered", CodeDuplicateEmail)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.ErrorContext(ctx, "password hashing failed",
			applog.FieldOperation, applog.OpRegister, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError,
			"Registration failed. Please try again later.", CodeRegistrationError)
		return
	}

	user, err := s.store.CreateUser(ctx, email, hash)
	if errors.Is(err, storage.ErrDuplicateEmail) {
		// Lost the insert race to a concurrent registration.
		writeError(w, http.StatusConflict, "Email already registered", CodeDuplicateEmail)
		return
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "registration failed",
			applog.FieldOperation, applog.OpRegister, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError,
			"Registration failed. Please try again later.", CodeRegistrationError)
		return
	}

	s.logger.InfoContext(ctx, "user registered",
		applog.FieldUserID, user.ID, applog.FieldEmail, user.Email)

	writeSuccess(w, http.StatusCreated, map[string]any{
		"user": userResponse{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required", CodeMissingFields)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required", CodeMissingFields)
		return
	}

	ctx := r.Context()
	email := auth.NormalizeEmail(req.Email)

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		// Burn a bcrypt comparison so missing accounts take as long as
		// wrong passwords.
		auth.CheckDummy(req.Password)
		writeError(w, http.StatusUnauthorized, "Invalid email or password", CodeInvalidCredentials)
		return
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "login failed",
			applog.FieldOperation, applog.OpLogin, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError,
			"Login failed. Please try again later.", CodeLoginError)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password", CodeInvalidCredentials)
		return
	}

	token, err := auth.GenerateToken([]byte(s.cfg.JWTSecret), user.ID, user.Email)
	if err != nil {
		s.logger.ErrorContext(ctx, "token generation failed",
			applog.FieldOperation, applog.OpLogin, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError,
			"Login failed. Please try again later.", CodeLoginError)
		return
	}

	s.logger.InfoContext(ctx, "user logged in",
		applog.FieldUserID, user.ID, applog.FieldEmail, user.Email)

	writeSuccess(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  userResponse{ID: user.ID, Email: user.Email},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication failed.", CodeAuthError)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"user": map[string]any{
			"userId": identity.UserID,
			"email":  identity.Email,
		},
	})
}
