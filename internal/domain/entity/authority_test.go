package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorityOf(t *testing.T) {
	workspace := &Workspace{ID: "WS01", OwnerID: "owner"}

	tests := []struct {
		name      string
		workspace *Workspace
		userID    string
		member    *WorkspaceMember
		expected  Authority
	}{
		{
			name:      "owner without membership row",
			workspace: workspace,
			userID:    "owner",
			expected:  AuthorityOwner,
		},
		{
			name:      "owner with admin row stays owner",
			workspace: workspace,
			userID:    "owner",
			member:    &WorkspaceMember{UserID: "owner", Role: RoleAdmin},
			expected:  AuthorityOwner,
		},
		{
			name:      "admin row",
			workspace: workspace,
			userID:    "alice",
			member:    &WorkspaceMember{UserID: "alice", Role: RoleAdmin},
			expected:  AuthorityAdmin,
		},
		{
			name:      "member row",
			workspace: workspace,
			userID:    "bob",
			member:    &WorkspaceMember{UserID: "bob", Role: RoleMember},
			expected:  AuthorityMember,
		},
		{
			name:      "row of another user is ignored",
			workspace: workspace,
			userID:    "bob",
			member:    &WorkspaceMember{UserID: "alice", Role: RoleAdmin},
			expected:  AuthorityNone,
		},
		{
			name:      "unknown role",
			workspace: workspace,
			userID:    "bob",
			member:    &WorkspaceMember{UserID: "bob", Role: Role("OWNER")},
			expected:  AuthorityNone,
		},
		{
			name:     "no workspace",
			userID:   "owner",
			expected: AuthorityNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AuthorityOf(tt.workspace, tt.userID, tt.member))
		})
	}
}

func TestAuthority_Capabilities(t *testing.T) {
	tests := []struct {
		authority Authority
		name      string
		canAccess bool
		canManage bool
	}{
		{authority: AuthorityNone, name: "NONE"},
		{authority: AuthorityMember, name: "MEMBER", canAccess: true},
		{authority: AuthorityAdmin, name: "ADMIN", canAccess: true, canManage: true},
		{authority: AuthorityOwner, name: "OWNER", canAccess: true, canManage: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.authority.String())
			assert.Equal(t, tt.canAccess, tt.authority.CanAccess())
			assert.Equal(t, tt.canManage, tt.authority.CanManage())
		})
	}

	assert.Equal(t, AuthorityOwner, AuthorityAdmin.Max(AuthorityOwner))
	assert.Equal(t, AuthorityAdmin, AuthorityAdmin.Max(AuthorityMember))
}

func TestCanRemoveMember(t *testing.T) {
	workspace := &Workspace{ID: "WS01", OwnerID: "owner"}
	ownerRow := &WorkspaceMember{UserID: "owner", Role: RoleAdmin}
	memberRow := &WorkspaceMember{UserID: "bob", Role: RoleMember}
	adminRow := &WorkspaceMember{UserID: "alice", Role: RoleAdmin}

	assert.True(t, CanRemoveMember(AuthorityAdmin, workspace, memberRow))
	assert.True(t, CanRemoveMember(AuthorityOwner, workspace, adminRow))
	assert.False(t, CanRemoveMember(AuthorityMember, workspace, memberRow))
	assert.False(t, CanRemoveMember(AuthorityOwner, workspace, ownerRow))
	assert.False(t, CanRemoveMember(AuthorityAdmin, nil, memberRow))
	assert.False(t, CanRemoveMember(AuthorityAdmin, workspace, nil))
}
