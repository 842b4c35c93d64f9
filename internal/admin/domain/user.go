package domain

import "time"

// Role is the coarse authorization level attached to a user record.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleViewer Role = "viewer"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleViewer:
		return true
	}
	return false
}

type User struct {
	ID             string
	UserName       string // unique login key
	Email          string // unique
	HashedPassword string // argon2id encoded, never serialized
	FirstName      string
	LastName       string
	Role           Role
	IsActive       bool // gates login
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser carries the validated input for user creation. Password is the
// plaintext; the service hashes it before anything touches the store.
type NewUser struct {
	UserName  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      Role
	IsActive  bool
}

// UserPatch is a partial update. Nil fields are left untouched.
type UserPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *Role
	IsActive  *bool
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil &&
		p.Role == nil && p.IsActive == nil
}
