package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRole(t *testing.T) {
	tests := []struct {
		name          string
		role          UserRole
		stringValue   string
		validForParse bool
	}{
		{name: "Viewer role", role: UserRoleViewer, stringValue: "viewer", validForParse: true},
		{name: "Editor role", role: UserRoleEditor, stringValue: "editor", validForParse: true},
		{name: "Admin role", role: UserRoleAdmin, stringValue: "admin", validForParse: true},
		{name: "Invalid role", stringValue: "owner", validForParse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.validForParse {
				assert.Equal(t, tt.stringValue, tt.role.String())
			}

			parsedRole, err := ParseUserRole(tt.stringValue)
			if tt.validForParse {
				assert.NoError(t, err)
				assert.Equal(t, tt.role, parsedRole)
			} else {
				assert.Error(t, err)
				assert.Equal(t, UserRoleViewer, parsedRole)
			}
		})
	}

	assert.Equal(t, "role(7)", UserRole(7).String())
}

func TestUserJSON(t *testing.T) {
	u := User{
		Base:         Base{ID: "u1"},
		Name:         "Ada",
		Email:        "ada@example.com",
		Role:         UserRoleEditor,
		AccessScopes: []string{"clients:read"},
	}
	data, err := json.Marshal(u)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "u1", decoded["id"])
	assert.Equal(t, "ada@example.com", decoded["email"])
	assert.Equal(t, []interface{}{"clients:read"}, decoded["accessScopes"])
	assert.Equal(t, "editor", decoded["role"])

	var back User
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, UserRoleEditor, back.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"owner"}`), &back))
}
