package services

import (
	"time"

	"github.com/jmoiron/sqlx"

	"education-backend-go/internal/config"
	"education-backend-go/internal/store"
	"education-backend-go/internal/storage"
)

// Registry bundles the services constructed over one database executor.
// Build it on the pool for read paths or on a transaction for a
// per-request unit of work.
type Registry struct {
	Roles       *RoleService
	Endpoints   *EndpointService
	Permissions *PermissionService
	Users       *UserService
	Auth        *AuthService
	Attachments *AttachmentService
}

func NewRegistry(ext sqlx.ExtContext, cfg config.Config, blobs *storage.BlobStore) *Registry {
	roles := NewRoleService(store.Roles(ext))
	endpoints := NewEndpointService(store.Endpoints(ext))
	users := NewUserService(store.Users(ext), roles)
	return &Registry{
		Roles:       roles,
		Endpoints:   endpoints,
		Permissions: NewPermissionService(store.Permissions(ext), endpoints, roles),
		Users:       users,
		Auth: NewAuthService(users, []byte(cfg.JWTSecret), cfg.JWTIssuer,
			time.Duration(cfg.AccessTTLSeconds)*time.Second),
		Attachments: NewAttachmentService(store.Attachments(ext), blobs),
	}
}
