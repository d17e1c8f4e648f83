package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"diraBack/internal/models"
	"diraBack/internal/services"
)

type UserHandler struct {
	Service *services.UserService
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		http.Error(w, "Name, email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.Service.SignUp(r.Context(), req)
	if errors.Is(err, models.ErrDuplicateEmail) {
		http.Error(w, "Email already registered", http.StatusConflict)
		return
	}
	if err != nil {
		log.Printf("SignUp error: %v", err)
		http.Error(w, "Failed to sign up", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	res, err := h.Service.SignIn(r.Context(), req)
	if errors.Is(err, models.ErrInvalidCredentials) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Printf("SignIn error: %v", err)
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(res)
}

// Guest hands out a generated identity so browsing users can like listings
// without an account.
func (h *UserHandler) Guest(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Guest(r.Context())
	if err != nil {
		log.Printf("Guest error: %v", err)
		http.Error(w, "Failed to create guest session", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(res)
}
