package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"education-backend-go/internal/models"
	"education-backend-go/internal/services"
)

type LoginRequest struct {
	UserID   int64  `json:"user_id"`
	Password string `json:"password"`
}

type RegistrationRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
	RoleID     int64  `json:"role_id"`
	Password   string `json:"password"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	registry := s.registry()
	user, err := registry.Users.Get(r.Context(), userByID(req.UserID))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if !registry.Auth.VerifyPassword(req.Password, user.PasswordHash) {
		WriteError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	token, err := registry.Auth.IssueToken(r.Context(), user.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, token)
}

func (s *Server) Registration(w http.ResponseWriter, r *http.Request) {
	var req RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		WriteError(w, http.StatusBadRequest, "First and last name are required")
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		WriteError(w, http.StatusBadRequest, "Password is required")
		return
	}

	var token services.Token
	err := s.withTx(r.Context(), func(registry *services.Registry) error {
		hash, err := registry.Auth.HashPassword(req.Password)
		if err != nil {
			return err
		}
		user, err := registry.Users.Create(r.Context(), models.User{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			MiddleName:   req.MiddleName,
			PasswordHash: hash,
			RoleID:       req.RoleID,
		})
		if err != nil {
			return err
		}
		token, err = registry.Auth.IssueToken(r.Context(), user.ID)
		return err
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, token)
}

func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	token, err := s.registry().Auth.IssueToken(r.Context(), user.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, token)
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	WriteJSON(w, http.StatusOK, user)
}
