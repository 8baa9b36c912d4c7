package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Owns reports whether the principal is the owner recorded on a row.
// Rows without an owner belong to nobody but admins.
func (p Principal) Owns(ownerID *uuid.UUID) bool {
	return ownerID != nil && *ownerID != uuid.Nil && *ownerID == p.UserID
}

func (p Principal) CanRead(ownerID *uuid.UUID) bool {
	return p.IsAdmin() || p.Owns(ownerID)
}
