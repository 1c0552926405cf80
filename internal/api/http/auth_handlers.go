package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/quizmint/internal/auth"
	"github.com/mind-engage/quizmint/internal/user"
)

func RegisterHandler(store user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FullName string `json:"fullName"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Please provide fullName, email, and password")
			return
		}
		if req.FullName == "" || req.Email == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, "Please provide fullName, email, and password")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		u, err := store.Create(r.Context(), req.FullName, req.Email, string(hash))
		if err != nil {
			if errors.Is(err, user.ErrDuplicateEmail) {
				writeMessage(w, http.StatusBadRequest, "User already exists")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "User registered successfully",
			"user":    u,
		})
	}
}

func LoginHandler(store user.Store, authSvc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Please provide email and password")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, "Please provide email and password")
			return
		}

		// Unknown email and wrong password answer identically so neither
		// field is leaked.
		u, err := store.GetByEmail(r.Context(), req.Email)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				writeMessage(w, http.StatusBadRequest, "Invalid credentials")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid credentials")
			return
		}

		token, err := authSvc.Issue(u.ID, u.Email)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Login successful",
			"token":   token,
			"user":    u,
		})
	}
}

func MeHandler(store user.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.SubjectFromContext(r.Context())
		u, err := store.GetByID(r.Context(), sub)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				writeMessage(w, http.StatusNotFound, "User not found")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": u})
	}
}
