package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"education-backend-go/internal/models"
	"education-backend-go/internal/services"
	"education-backend-go/internal/store"
)

type RoleRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"role_name"`
}

func (s *Server) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.registry().Roles.GetAll(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, roles)
}

func (s *Server) GetRole(w http.ResponseWriter, r *http.Request) {
	roleID := parseInt64(chi.URLParam(r, "roleId"), 0)
	role, err := s.registry().Roles.Get(r.Context(), store.Where("id", roleID))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, role)
}

func (s *Server) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	var created models.Role
	err := s.withTx(r.Context(), func(registry *services.Registry) error {
		var err error
		created, err = registry.Roles.Create(r.Context(), models.Role{Name: req.Name})
		return err
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, created)
}

func (s *Server) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	var updated models.Role
	err := s.withTx(r.Context(), func(registry *services.Registry) error {
		var err error
		updated, err = registry.Roles.Update(r.Context(), models.Role{ID: req.ID, Name: req.Name})
		return err
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteRole(w http.ResponseWriter, r *http.Request) {
	roleID := parseInt64(r.URL.Query().Get("role_id"), 0)
	err := s.withTx(r.Context(), func(registry *services.Registry) error {
		return registry.Roles.Delete(r.Context(), roleID)
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
