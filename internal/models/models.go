package models

type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"role_name" json:"role_name"`
}

func (r Role) EntityID() int64 { return r.ID }

type User struct {
	ID           int64  `db:"id" json:"id"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	MiddleName   string `db:"middle_name" json:"middle_name"`
	PasswordHash string `db:"password_hash" json:"-"`
	RoleID       int64  `db:"role_id" json:"role_id"`

	// Loaded separately by the user service, never scanned from users.
	Role *Role `db:"-" json:"role,omitempty"`
}

func (u User) EntityID() int64 { return u.ID }

// Endpoint is a named route tag protected by the permission matrix,
// e.g. "api_users_patch".
type Endpoint struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

func (e Endpoint) EntityID() int64 { return e.ID }

// Permission is the role/endpoint join row. The (role_id, endpoint_id)
// pair is unique.
type Permission struct {
	ID         int64 `db:"id" json:"id"`
	RoleID     int64 `db:"role_id" json:"role_id"`
	EndpointID int64 `db:"endpoint_id" json:"endpoint_id"`
}

func (p Permission) EntityID() int64 { return p.ID }

type Attachment struct {
	ID            int64  `db:"id" json:"id"`
	SourceMsgID   string `db:"source_msg_id" json:"source_msg_id"`
	SourceFileURL string `db:"source_file_url" json:"source_file_url"`
	FileURL       string `db:"file_url" json:"file_url"`
	FileName      string `db:"file_name" json:"file_name"`
	FileExtension string `db:"file_extension" json:"file_extension"`
	FileSize      int64  `db:"file_size" json:"file_size"`
}

func (a Attachment) EntityID() int64 { return a.ID }

// Equal compares attachments by content-describing fields. Two uploads of
// the same file are equal regardless of their identifiers.
func (a Attachment) Equal(other Attachment) bool {
	return a.FileName == other.FileName &&
		a.FileExtension == other.FileExtension &&
		a.FileSize == other.FileSize
}
