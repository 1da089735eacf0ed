package services

import (
	"context"

	"education-backend-go/internal/models"
	"education-backend-go/internal/store"
)

// Well-known seed role identifiers.
const (
	RoleAdminID   int64 = 1
	RoleTeacherID int64 = 2
	RoleStudentID int64 = 3
)

type RoleService struct {
	roles store.Store[models.Role]
}

func NewRoleService(roles store.Store[models.Role]) *RoleService {
	return &RoleService{roles: roles}
}

// Create is idempotent: an existing role with the same name is returned
// instead of a duplicate.
func (s *RoleService) Create(ctx context.Context, role models.Role) (models.Role, error) {
	filter := store.Where("role_name", role.Name)
	if role.ID != 0 {
		filter = store.Where("id", role.ID).And("role_name", role.Name)
	}
	exists, err := s.roles.Exists(ctx, filter, false)
	if err != nil {
		return models.Role{}, err
	}
	if exists {
		return s.roles.Get(ctx, filter)
	}
	return s.roles.Create(ctx, role)
}

func (s *RoleService) Get(ctx context.Context, filter store.Filter) (models.Role, error) {
	return s.roles.Get(ctx, filter)
}

func (s *RoleService) GetAll(ctx context.Context) ([]models.Role, error) {
	return s.roles.GetAll(ctx)
}

func (s *RoleService) Update(ctx context.Context, role models.Role) (models.Role, error) {
	return s.roles.Update(ctx, role, store.Where("id", role.ID))
}

func (s *RoleService) Delete(ctx context.Context, roleID int64) error {
	return s.roles.Delete(ctx, store.Where("id", roleID))
}

func (s *RoleService) Exists(ctx context.Context, filter store.Filter, raiseOnMissing bool) (bool, error) {
	return s.roles.Exists(ctx, filter, raiseOnMissing)
}

func (s *RoleService) AdminRole(ctx context.Context) (models.Role, error) {
	return s.Get(ctx, store.Where("id", RoleAdminID))
}

func (s *RoleService) TeacherRole(ctx context.Context) (models.Role, error) {
	return s.Get(ctx, store.Where("id", RoleTeacherID))
}

func (s *RoleService) StudentRole(ctx context.Context) (models.Role, error) {
	return s.Get(ctx, store.Where("id", RoleStudentID))
}
