package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

const maxAuditLogPage = 200

// WorkspaceEventChannel redis channel carrying a workspace's audit events
func WorkspaceEventChannel(workspaceID string) string {
	return fmt.Sprintf("taskboard:workspace:%s:events", workspaceID)
}

// AuditLogUseCase audit log implementation
type AuditLogUseCase struct {
	logger     *zap.Logger
	repo       repository.AuditLogRepository
	publisher  service.EventPublisher
	authorizer workspaceAuthorizer
}

// NewAuditLogUseCase creates a new audit log use case
func NewAuditLogUseCase(
	logger *zap.Logger,
	repos *repository.Repositories,
	publisher service.EventPublisher,
) interfaces.AuditLogUseCase {
	return &AuditLogUseCase{
		logger:     logger,
		repo:       repos.AuditLog,
		publisher:  publisher,
		authorizer: newWorkspaceAuthorizer(repos.Workspace, repos.Member),
	}
}

// Record stores an audit entry
func (uc *AuditLogUseCase) Record(ctx context.Context, workspaceID, actorID string, logType entity.AuditLogType, content map[string]interface{}) (*entity.AuditLog, error) {
	id, err := GenerateUniqueID(PrefixAuditLog)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate audit log id")
	}

	log := &entity.AuditLog{
		ID:          id,
		WorkspaceID: workspaceID,
		ActorID:     actorID,
		Type:        logType,
		Content:     content,
	}
	if err := uc.repo.Create(ctx, log); err != nil {
		return nil, apperrors.Dependency(err, "failed to record audit log")
	}
	return log, nil
}

// Publish sends the entry to subscribers of the workspace channel
func (uc *AuditLogUseCase) Publish(ctx context.Context, log *entity.AuditLog) {
	if log == nil {
		return
	}

	event := map[string]interface{}{
		"id":           log.ID,
		"workspace_id": log.WorkspaceID,
		"actor_id":     log.ActorID,
		"type":         log.Type,
		"content":      log.Content,
		"created_at":   log.CreatedAt.Format(time.RFC3339),
	}
	if err := uc.publisher.Publish(ctx, WorkspaceEventChannel(log.WorkspaceID), event); err != nil {
		uc.logger.Warn("Failed to publish workspace event",
			zap.String("workspace_id", log.WorkspaceID),
			zap.String("type", string(log.Type)),
			zap.Error(err))
	}
}

// List returns the latest entries, newest first. Requires manage authority.
func (uc *AuditLogUseCase) List(ctx context.Context, actorID, workspaceID string, limit int) ([]*entity.AuditLog, error) {
	if _, _, err := uc.authorizer.requireManage(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > maxAuditLogPage {
		limit = maxAuditLogPage
	}
	logs, err := uc.repo.ListByWorkspace(ctx, workspaceID, limit)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to list audit logs")
	}
	return logs, nil
}
