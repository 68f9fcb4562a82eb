package interfaces

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
)

// MembershipUseCase workspace authority and member management
type MembershipUseCase interface {
	// Authority computes the user's authority in the workspace from current state
	Authority(ctx context.Context, userID, workspaceID string) (entity.Authority, error)

	// RequireAccess fails with access denied unless the user is owner or member
	RequireAccess(ctx context.Context, userID, workspaceID string) (*entity.Workspace, entity.Authority, error)

	// RequireManage fails with access denied unless the user is owner or admin
	RequireManage(ctx context.Context, userID, workspaceID string) (*entity.Workspace, entity.Authority, error)

	// IsMember reports whether the user is owner or member of the workspace
	IsMember(ctx context.Context, workspace *entity.Workspace, userID string) (bool, error)

	ListMembers(ctx context.Context, actorID, workspaceID string) ([]*entity.MemberProfile, error)
	UpdateRole(ctx context.Context, actorID, workspaceID, targetID string, role entity.Role) error
	RemoveMember(ctx context.Context, actorID, workspaceID, targetID string) error
	Leave(ctx context.Context, userID, workspaceID string) error
	TransferOwnership(ctx context.Context, actorID, workspaceID, newOwnerID string) (*entity.Workspace, error)
}
