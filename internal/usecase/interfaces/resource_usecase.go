package interfaces

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
)

// AccessUseCase resolves resources through their ownership chain to the caller's authority
type AccessUseCase interface {
	ProjectFor(ctx context.Context, userID, projectID string) (*dto.ProjectAccess, error)
	TaskFor(ctx context.Context, userID, taskID string) (*dto.TaskAccess, error)
	CommentFor(ctx context.Context, userID, commentID string) (*dto.CommentAccess, error)
	AttachmentFor(ctx context.Context, userID, attachmentID string) (*dto.AttachmentAccess, error)

	// CanAccessResource walks the chain of any resource type
	CanAccessResource(ctx context.Context, userID, resourceID string, resourceType dto.ResourceType) (bool, error)

	// CanDeleteComment author, task creator, project creator or workspace manager
	CanDeleteComment(access *dto.CommentAccess, userID string) bool
}

// ProjectUseCase project management
type ProjectUseCase interface {
	Create(ctx context.Context, userID, workspaceID string, params dto.CreateProjectParams) (*entity.Project, error)
	List(ctx context.Context, userID, workspaceID string) ([]*entity.Project, error)
	Get(ctx context.Context, userID, projectID string) (*entity.Project, error)
	Update(ctx context.Context, userID, projectID string, params dto.UpdateProjectParams) (*entity.Project, error)
	Delete(ctx context.Context, userID, projectID string) error
}

// TaskUseCase task management
type TaskUseCase interface {
	Create(ctx context.Context, userID, projectID string, params dto.CreateTaskParams) (*entity.TaskDetail, error)
	List(ctx context.Context, userID, projectID string, params dto.ListTasksParams) (*dto.TaskPage, error)
	Get(ctx context.Context, userID, taskID string) (*entity.TaskDetail, error)
	Update(ctx context.Context, userID, taskID string, params dto.UpdateTaskParams) (*entity.TaskDetail, error)
	Move(ctx context.Context, userID, taskID, targetProjectID string) (*entity.TaskDetail, error)
	Delete(ctx context.Context, userID, taskID string) error
}

// CommentUseCase task comments
type CommentUseCase interface {
	Create(ctx context.Context, userID, taskID string, params dto.CreateCommentParams) (*entity.TaskComment, error)
	List(ctx context.Context, userID, taskID string) ([]*entity.TaskComment, error)
	Update(ctx context.Context, userID, commentID, content string) (*entity.TaskComment, error)
	Delete(ctx context.Context, userID, commentID string) error
}

// AttachmentUseCase task link attachments
type AttachmentUseCase interface {
	Add(ctx context.Context, userID, taskID string, params dto.AddAttachmentParams) (*entity.TaskAttachment, error)
	List(ctx context.Context, userID, taskID string) ([]*entity.TaskAttachment, error)
	Delete(ctx context.Context, userID, attachmentID string) error
}
