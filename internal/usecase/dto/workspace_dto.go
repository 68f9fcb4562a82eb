package dto

import (
	"time"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
)

// CreateWorkspaceParams workspace creation parameters
type CreateWorkspaceParams struct {
	Name string
}

// UpdateWorkspaceParams workspace fields to change; nil means unchanged
type UpdateWorkspaceParams struct {
	Name *string
}

// IssueInviteParams invite parameters
type IssueInviteParams struct {
	Email string
	Role  entity.Role
}

// InviteReceipt what the inviter gets back. The token is only ever sent by email.
type InviteReceipt struct {
	ID        string
	Email     string
	Role      entity.Role
	ExpiresAt time.Time
}
