package interfaces

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
)

// WorkspaceUseCase workspace lifecycle
type WorkspaceUseCase interface {
	Create(ctx context.Context, userID string, params dto.CreateWorkspaceParams) (*entity.Workspace, error)
	ListMine(ctx context.Context, userID string) ([]*entity.Workspace, error)
	Get(ctx context.Context, userID, workspaceID string) (*entity.Workspace, entity.Authority, error)
	Update(ctx context.Context, userID, workspaceID string, params dto.UpdateWorkspaceParams) (*entity.Workspace, error)
	UploadImage(ctx context.Context, userID, workspaceID string, upload dto.ImageUpload) (*entity.Workspace, error)
	Delete(ctx context.Context, userID, workspaceID string) error
}

// InviteUseCase invitation lifecycle
type InviteUseCase interface {
	// Issue creates an invite and emails the link
	Issue(ctx context.Context, actorID, workspaceID string, params dto.IssueInviteParams) (*dto.InviteReceipt, error)

	// Accept turns a valid invite into a membership for the acceptor
	Accept(ctx context.Context, userID, workspaceID, token string) (*entity.WorkspaceMember, error)

	ListPending(ctx context.Context, actorID, workspaceID string) ([]*entity.WorkspaceInvite, error)
	Revoke(ctx context.Context, actorID, workspaceID, inviteID string) error
}

// AuditLogUseCase membership change history
type AuditLogUseCase interface {
	// Record stores an audit entry using the transaction in ctx, if any
	Record(ctx context.Context, workspaceID, actorID string, logType entity.AuditLogType, content map[string]interface{}) (*entity.AuditLog, error)

	// Publish announces a stored entry; failures are only logged
	Publish(ctx context.Context, log *entity.AuditLog)

	List(ctx context.Context, actorID, workspaceID string, limit int) ([]*entity.AuditLog, error)
}

// EmailUseCase transactional emails carrying one-time links
type EmailUseCase interface {
	SendVerificationEmail(ctx context.Context, to, name, token string) error
	SendPasswordResetEmail(ctx context.Context, to, name, token string) error
	SendInviteEmail(ctx context.Context, to, inviterName string, workspace *entity.Workspace, role entity.Role, token string) error
}
