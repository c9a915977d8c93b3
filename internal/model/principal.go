package model

import "github.com/google/uuid"

const (
	RoleUser  = "USER"
	RoleStaff = "STAFF"
	RoleAdmin = "ADMIN"
)

// Principal is the authenticated caller as asserted by the access token.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     string
	IsStaff  bool
}

func (p Principal) IsStaffMember() bool {
	return p.IsStaff || p.Role == RoleStaff || p.Role == RoleAdmin
}

func (p Principal) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	return p.UserID.String()
}
