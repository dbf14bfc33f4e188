package models

import (
	"fmt"
	"strings"
)

// UserRole represents the role of a user in the system
type UserRole int

// User role constants
const (
	// UserRoleViewer can read every resource
	UserRoleViewer UserRole = iota
	// UserRoleEditor can also create, update and delete
	UserRoleEditor
	// UserRoleAdmin can also manage users
	UserRoleAdmin
)

var userRoleNames = []string{"viewer", "editor", "admin"}

func (r UserRole) String() string {
	if int(r) < 0 || int(r) >= len(userRoleNames) {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return userRoleNames[r]
}

// ParseUserRole converts a string representation of a user role to UserRole type
func ParseUserRole(str string) (UserRole, error) {
	for i, role := range userRoleNames {
		if role == strings.ToLower(str) {
			return UserRole(i), nil
		}
	}
	return UserRoleViewer, fmt.Errorf("invalid user role: %s", str)
}

// MarshalText encodes the role by name
func (r UserRole) MarshalText() ([]byte, error) {
	if int(r) < 0 || int(r) >= len(userRoleNames) {
		return nil, fmt.Errorf("invalid user role: %d", int(r))
	}
	return []byte(userRoleNames[r]), nil
}

// UnmarshalText decodes a role name
func (r *UserRole) UnmarshalText(text []byte) error {
	role, err := ParseUserRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// User is a dashboard operator
type User struct {
	Base
	Name  string   `json:"name" gorm:"not null;index"`
	Email string   `json:"email" gorm:"not null;uniqueIndex"`
	Role  UserRole `json:"role" gorm:"index"`
	// AccessScopes narrows what the user may do, e.g. "clients:write"
	AccessScopes []string `json:"accessScopes" gorm:"serializer:json"`
}
