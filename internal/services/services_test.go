package services

import (
	"education-backend-go/internal/models"
	"education-backend-go/internal/store"
	"education-backend-go/internal/store/storetest"
)

// Test fixtures over in-memory stores. Each matcher mirrors the column
// names the SQL stores filter on.

func eqInt(value any, field int64) bool {
	switch v := value.(type) {
	case int64:
		return v == field
	case int:
		return int64(v) == field
	default:
		return false
	}
}

func eqString(value any, field string) bool {
	s, ok := value.(string)
	return ok && s == field
}

func newRoleStore() *storetest.MemStore[models.Role] {
	return storetest.NewMemStore("role",
		func(r models.Role, id int64) models.Role {
			if r.ID == 0 {
				r.ID = id
			}
			return r
		},
		func(r models.Role, filter store.Filter) bool {
			for _, cond := range filter {
				switch cond.Column {
				case "id":
					if !eqInt(cond.Value, r.ID) {
						return false
					}
				case "role_name":
					if !eqString(cond.Value, r.Name) {
						return false
					}
				default:
					return false
				}
			}
			return true
		})
}

func newUserStore() *storetest.MemStore[models.User] {
	return storetest.NewMemStore("user",
		func(u models.User, id int64) models.User {
			u.ID = id
			return u
		},
		func(u models.User, filter store.Filter) bool {
			for _, cond := range filter {
				switch cond.Column {
				case "id":
					if !eqInt(cond.Value, u.ID) {
						return false
					}
				case "role_id":
					if !eqInt(cond.Value, u.RoleID) {
						return false
					}
				default:
					return false
				}
			}
			return true
		})
}

func newEndpointStore() *storetest.MemStore[models.Endpoint] {
	return storetest.NewMemStore("endpoint",
		func(e models.Endpoint, id int64) models.Endpoint {
			e.ID = id
			return e
		},
		func(e models.Endpoint, filter store.Filter) bool {
			for _, cond := range filter {
				switch cond.Column {
				case "id":
					if !eqInt(cond.Value, e.ID) {
						return false
					}
				case "name":
					if !eqString(cond.Value, e.Name) {
						return false
					}
				default:
					return false
				}
			}
			return true
		})
}

func newPermissionStore() *storetest.MemStore[models.Permission] {
	return storetest.NewMemStore("permission",
		func(p models.Permission, id int64) models.Permission {
			p.ID = id
			return p
		},
		func(p models.Permission, filter store.Filter) bool {
			for _, cond := range filter {
				switch cond.Column {
				case "id":
					if !eqInt(cond.Value, p.ID) {
						return false
					}
				case "role_id":
					if !eqInt(cond.Value, p.RoleID) {
						return false
					}
				case "endpoint_id":
					if !eqInt(cond.Value, p.EndpointID) {
						return false
					}
				default:
					return false
				}
			}
			return true
		})
}

type fixture struct {
	Roles       *RoleService
	Endpoints   *EndpointService
	Permissions *PermissionService
	Users       *UserService
}

func newFixture() *fixture {
	roles := NewRoleService(newRoleStore())
	endpoints := NewEndpointService(newEndpointStore())
	return &fixture{
		Roles:       roles,
		Endpoints:   endpoints,
		Permissions: NewPermissionService(newPermissionStore(), endpoints, roles),
		Users:       NewUserService(newUserStore(), roles),
	}
}
