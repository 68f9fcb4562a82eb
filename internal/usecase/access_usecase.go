package usecase

import (
	"context"

	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

// AccessUseCase walks resource ownership chains up to the workspace.
// A resource the caller cannot see is reported exactly like a missing one.
type AccessUseCase struct {
	logger         *zap.Logger
	projectRepo    repository.ProjectRepository
	taskRepo       repository.TaskRepository
	commentRepo    repository.CommentRepository
	attachmentRepo repository.AttachmentRepository
	authorizer     workspaceAuthorizer
}

// NewAccessUseCase creates a new access use case
func NewAccessUseCase(logger *zap.Logger, repos *repository.Repositories) interfaces.AccessUseCase {
	return &AccessUseCase{
		logger:         logger,
		projectRepo:    repos.Project,
		taskRepo:       repos.Task,
		commentRepo:    repos.Comment,
		attachmentRepo: repos.Attachment,
		authorizer:     newWorkspaceAuthorizer(repos.Workspace, repos.Member),
	}
}

func (uc *AccessUseCase) ProjectFor(ctx context.Context, userID, projectID string) (*dto.ProjectAccess, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to load project")
	}
	if project == nil {
		return nil, domainErrors.ErrProjectNotFound
	}

	workspace, authority, err := uc.authorizer.requireAccess(ctx, userID, project.WorkspaceID)
	if err != nil {
		if apperrors.Is(err, domainErrors.ErrAccessDenied) {
			return nil, domainErrors.ErrProjectNotFound
		}
		return nil, err
	}

	return &dto.ProjectAccess{
		Workspace: workspace,
		Project:   project,
		Authority: authority,
	}, nil
}

func (uc *AccessUseCase) TaskFor(ctx context.Context, userID, taskID string) (*dto.TaskAccess, error) {
	task, err := uc.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to load task")
	}
	if task == nil {
		return nil, domainErrors.ErrTaskNotFound
	}

	project, err := uc.ProjectFor(ctx, userID, task.ProjectID)
	if err != nil {
		if apperrors.Is(err, domainErrors.ErrProjectNotFound) {
			return nil, domainErrors.ErrTaskNotFound
		}
		return nil, err
	}

	return &dto.TaskAccess{ProjectAccess: *project, Task: task}, nil
}

func (uc *AccessUseCase) CommentFor(ctx context.Context, userID, commentID string) (*dto.CommentAccess, error) {
	comment, err := uc.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to load comment")
	}
	if comment == nil {
		return nil, domainErrors.ErrCommentNotFound
	}

	task, err := uc.TaskFor(ctx, userID, comment.TaskID)
	if err != nil {
		if apperrors.Is(err, domainErrors.ErrTaskNotFound) {
			return nil, domainErrors.ErrCommentNotFound
		}
		return nil, err
	}

	return &dto.CommentAccess{TaskAccess: *task, Comment: comment}, nil
}

func (uc *AccessUseCase) AttachmentFor(ctx context.Context, userID, attachmentID string) (*dto.AttachmentAccess, error) {
	attachment, err := uc.attachmentRepo.FindByID(ctx, attachmentID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to load attachment")
	}
	if attachment == nil {
		return nil, domainErrors.ErrAttachmentNotFound
	}

	task, err := uc.TaskFor(ctx, userID, attachment.TaskID)
	if err != nil {
		if apperrors.Is(err, domainErrors.ErrTaskNotFound) {
			return nil, domainErrors.ErrAttachmentNotFound
		}
		return nil, err
	}

	return &dto.AttachmentAccess{TaskAccess: *task, Attachment: attachment}, nil
}

// CanAccessResource reports false for missing or inaccessible resources; only storage failures are errors
func (uc *AccessUseCase) CanAccessResource(ctx context.Context, userID, resourceID string, resourceType dto.ResourceType) (bool, error) {
	var err error
	switch resourceType {
	case dto.ResourceWorkspace:
		_, _, err = uc.authorizer.requireAccess(ctx, userID, resourceID)
	case dto.ResourceProject:
		_, err = uc.ProjectFor(ctx, userID, resourceID)
	case dto.ResourceTask:
		_, err = uc.TaskFor(ctx, userID, resourceID)
	case dto.ResourceComment:
		_, err = uc.CommentFor(ctx, userID, resourceID)
	case dto.ResourceAttachment:
		_, err = uc.AttachmentFor(ctx, userID, resourceID)
	default:
		return false, domainErrors.Validation("unknown resource type")
	}

	if err == nil {
		return true, nil
	}
	switch apperrors.CodeOf(err) {
	case apperrors.ErrNotFound, apperrors.ErrUnauthorized:
		return false, nil
	}
	return false, err
}

// CanDeleteComment any one of the four relations is enough
func (uc *AccessUseCase) CanDeleteComment(access *dto.CommentAccess, userID string) bool {
	if access == nil {
		return false
	}
	return access.Comment.AuthorID == userID ||
		access.Task.CreatorID == userID ||
		access.Project.CreatorID == userID ||
		access.Authority.CanManage()
}

// updateFailed reports a row deleted before the write as missing
func updateFailed(err, missing error, msg string) error {
	if apperrors.Is(err, repository.ErrNotFound) {
		return missing
	}
	return apperrors.Dependency(err, msg)
}
