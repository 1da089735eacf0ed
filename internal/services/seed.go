package services

import (
	"context"

	"education-backend-go/internal/models"
	"education-backend-go/internal/store"
)

// routeGrants is the permission matrix seeded at startup: endpoint tag to
// the roles allowed to call it. Grants are idempotent, so reseeding on
// every boot is safe.
var routeGrants = map[string][]int64{
	"api_users_get":        {RoleAdminID, RoleTeacherID, RoleStudentID},
	"api_users_post":       {RoleAdminID, RoleTeacherID},
	"api_users_patch":      {RoleAdminID, RoleTeacherID, RoleStudentID},
	"api_users_delete":     {RoleAdminID},
	"api_roles_get":        {RoleAdminID, RoleTeacherID, RoleStudentID},
	"api_roles_post":       {RoleAdminID},
	"api_roles_patch":      {RoleAdminID},
	"api_roles_delete":     {RoleAdminID},
	"api_attachments_post": {RoleAdminID, RoleTeacherID},
	"api_analytics_get":    {RoleAdminID, RoleTeacherID, RoleStudentID},
	"api_info_get":         {RoleAdminID, RoleTeacherID, RoleStudentID},
	"api_metrics_history":  {RoleAdminID},
	"ws_metrics":           {RoleAdminID},
}

// SeedPermissions ensures every route tag exists as an endpoint and is
// granted to its roles.
func SeedPermissions(ctx context.Context, registry *Registry) error {
	for endpointName, roleIDs := range routeGrants {
		roles := make([]models.Role, 0, len(roleIDs))
		for _, roleID := range roleIDs {
			role, err := registry.Roles.Get(ctx, store.Where("id", roleID))
			if err != nil {
				return err
			}
			roles = append(roles, role)
		}
		if _, err := registry.Permissions.GrantForRoles(ctx, endpointName, roles, true); err != nil {
			return err
		}
	}
	return nil
}
