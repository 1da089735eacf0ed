package services

import (
	"context"

	"education-backend-go/internal/apperrors"
	"education-backend-go/internal/models"
	"education-backend-go/internal/store"
)

// PermissionService maintains the role/endpoint authorization matrix.
// Authorization is purely relational: a role may call an endpoint iff a
// permission row exists for the pair.
type PermissionService struct {
	permissions store.Store[models.Permission]
	endpoints   *EndpointService
	roles       *RoleService
}

func NewPermissionService(
	permissions store.Store[models.Permission],
	endpoints *EndpointService,
	roles *RoleService,
) *PermissionService {
	return &PermissionService{
		permissions: permissions,
		endpoints:   endpoints,
		roles:       roles,
	}
}

// Create is idempotent on the (role_id, endpoint_id) pair.
func (s *PermissionService) Create(ctx context.Context, permission models.Permission) (models.Permission, error) {
	filter := store.Where("endpoint_id", permission.EndpointID).
		And("role_id", permission.RoleID)
	exists, err := s.permissions.Exists(ctx, filter, false)
	if err != nil {
		return models.Permission{}, err
	}
	if exists {
		return s.permissions.Get(ctx, filter)
	}
	return s.permissions.Create(ctx, permission)
}

// CreateWithRoleAndEndpoint validates that both the role and the endpoint
// already exist before creating the pair.
func (s *PermissionService) CreateWithRoleAndEndpoint(
	ctx context.Context,
	endpoint models.Endpoint,
	role models.Role,
) (models.Permission, error) {
	if _, err := s.roles.Exists(ctx, store.Where("id", role.ID).And("role_name", role.Name), true); err != nil {
		return models.Permission{}, err
	}
	if _, err := s.endpoints.Exists(ctx, store.Where("id", endpoint.ID).And("name", endpoint.Name), true); err != nil {
		return models.Permission{}, err
	}
	return s.Create(ctx, models.Permission{
		RoleID:     role.ID,
		EndpointID: endpoint.ID,
	})
}

// GrantForRoles ensures the named endpoint exists (creating it when
// allowed) and ensures a permission row per role, returning the full set.
func (s *PermissionService) GrantForRoles(
	ctx context.Context,
	endpointName string,
	roles []models.Role,
	createEndpoint bool,
) ([]models.Permission, error) {
	filter := store.Where("name", endpointName)
	exists, err := s.endpoints.Exists(ctx, filter, false)
	if err != nil {
		return nil, err
	}

	var endpoint models.Endpoint
	switch {
	case exists:
		endpoint, err = s.endpoints.Get(ctx, filter)
	case createEndpoint:
		endpoint, err = s.endpoints.CreateWithName(ctx, endpointName)
	default:
		return nil, apperrors.NotFound("endpoint %q not found", endpointName)
	}
	if err != nil {
		return nil, err
	}

	permissions := make([]models.Permission, 0, len(roles))
	for _, role := range roles {
		pairFilter := store.Where("role_id", role.ID).And("endpoint_id", endpoint.ID)
		granted, err := s.permissions.Exists(ctx, pairFilter, false)
		if err != nil {
			return nil, err
		}
		var permission models.Permission
		if granted {
			permission, err = s.permissions.Get(ctx, pairFilter)
		} else {
			permission, err = s.CreateWithRoleAndEndpoint(ctx, endpoint, role)
		}
		if err != nil {
			return nil, err
		}
		permissions = append(permissions, permission)
	}
	return permissions, nil
}

// ForRole lists every permission row granted to a role.
func (s *PermissionService) ForRole(ctx context.Context, roleID int64) ([]models.Permission, error) {
	return s.permissions.GetMultiple(ctx, store.Where("role_id", roleID))
}

// CheckPermission resolves the endpoint by name and tests whether the
// user's role is allowed to call it. A nil user is unauthorized; a missing
// pair is either a ForbiddenError or a plain false depending on
// raiseOnDenied.
func (s *PermissionService) CheckPermission(
	ctx context.Context,
	endpointName string,
	user *models.User,
	raiseOnDenied bool,
) (bool, error) {
	endpoint, err := s.endpoints.Get(ctx, store.Where("name", endpointName))
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, apperrors.Unauthorized("you are not authorized")
	}
	roleID := user.RoleID
	if user.Role != nil {
		roleID = user.Role.ID
	}
	allowed, err := s.permissions.Exists(ctx,
		store.Where("endpoint_id", endpoint.ID).And("role_id", roleID), false)
	if err != nil {
		return false, err
	}
	if !allowed && raiseOnDenied {
		return false, apperrors.Forbidden("access denied")
	}
	return allowed, nil
}
