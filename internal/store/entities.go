package store

import (
	"github.com/jmoiron/sqlx"

	"education-backend-go/internal/models"
)

func Users(ext sqlx.ExtContext) *SQLStore[models.User] {
	return New[models.User](ext, "users", "user", "users",
		[]string{"first_name", "last_name", "middle_name", "password_hash", "role_id"})
}

func Roles(ext sqlx.ExtContext) *SQLStore[models.Role] {
	return New[models.Role](ext, "roles", "role", "roles",
		[]string{"role_name"})
}

func Endpoints(ext sqlx.ExtContext) *SQLStore[models.Endpoint] {
	return New[models.Endpoint](ext, "endpoints", "endpoint", "endpoints",
		[]string{"name"})
}

func Permissions(ext sqlx.ExtContext) *SQLStore[models.Permission] {
	return New[models.Permission](ext, "permissions", "permission", "permissions",
		[]string{"role_id", "endpoint_id"})
}

func Attachments(ext sqlx.ExtContext) *SQLStore[models.Attachment] {
	return New[models.Attachment](ext, "attachments", "attachment", "attachments",
		[]string{"source_msg_id", "source_file_url", "file_url", "file_name", "file_extension", "file_size"})
}
