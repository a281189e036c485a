// Package model provides data models for the console.
package model

import (
	"fmt"
	"time"
)

// Role is the role of a user inside its organization
type Role string

// User roles
const (
	RoleAdmin       Role = "Admin"
	RoleCoordinator Role = "Co-ordinator"
)

// Roles lists every valid role in display order
var Roles = []Role{RoleAdmin, RoleCoordinator}

// ParseRole validates a raw role string
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// User represents a person scoped to exactly one organization
type User struct {
	UserID      string    `json:"user_id"`
	OrgID       string    `json:"org_id,omitempty"`
	Name        string    `json:"user_name"`
	Role        Role      `json:"user_role"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

// NewUser creates a user owned by orgID
func NewUser(userID, orgID string, in UserInput) *User {
	now := time.Now().UTC()
	return &User{
		UserID:      userID,
		OrgID:       orgID,
		Name:        in.Name,
		Role:        in.Role,
		CreatedDate: now,
		UpdatedDate: now,
	}
}

// IsAdmin returns true if the user is an organization admin
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserInput is the body of create-user and update-user requests
type UserInput struct {
	Name string `json:"user_name" validate:"required,max=100"`
	Role Role   `json:"user_role" validate:"omitempty,oneof=Admin Co-ordinator"`
}
