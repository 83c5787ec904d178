package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zerobase/storereservation/internal/application/services"
	"github.com/zerobase/storereservation/internal/domain/entities"
)

// UserService defines the interface for user account operations
type UserService interface {
	CreateUser(ctx context.Context, input services.CreateUserInput) (*entities.User, error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
}

// AuthHandler handles signup and login requests
type AuthHandler struct {
	users UserService
	auth  AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users UserService, auth AuthService) *AuthHandler {
	return &AuthHandler{
		users: users,
		auth:  auth,
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.users.CreateUser(r.Context(), services.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     entities.Role(req.Role),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
