package usecase

import (
	"context"
	"strings"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

// WorkspaceUseCase workspace implementation
type WorkspaceUseCase struct {
	logger        *zap.Logger
	transactor    repository.Transactor
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.MemberRepository
	blobStore     service.BlobStore
	audit         interfaces.AuditLogUseCase
	authorizer    workspaceAuthorizer
}

// NewWorkspaceUseCase creates a new workspace use case
func NewWorkspaceUseCase(
	logger *zap.Logger,
	repos *repository.Repositories,
	blobStore service.BlobStore,
	audit interfaces.AuditLogUseCase,
) interfaces.WorkspaceUseCase {
	return &WorkspaceUseCase{
		logger:        logger,
		transactor:    repos.Transactor,
		workspaceRepo: repos.Workspace,
		memberRepo:    repos.Member,
		blobStore:     blobStore,
		audit:         audit,
		authorizer:    newWorkspaceAuthorizer(repos.Workspace, repos.Member),
	}
}

// Create creates the workspace and the owner's ADMIN row atomically
func (uc *WorkspaceUseCase) Create(ctx context.Context, userID string, params dto.CreateWorkspaceParams) (*entity.Workspace, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, domainErrors.Validation("workspace name is required")
	}

	id, err := GenerateUniqueID(PrefixWorkspace)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate workspace id")
	}
	workspace := &entity.Workspace{
		ID:      id,
		Name:    name,
		OwnerID: userID,
	}

	var log *entity.AuditLog
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.workspaceRepo.Create(ctx, workspace); err != nil {
			return apperrors.Dependency(err, "failed to create workspace")
		}
		if _, err := insertMember(ctx, uc.memberRepo, workspace.ID, userID, entity.RoleAdmin); err != nil {
			return err
		}
		var err error
		log, err = uc.audit.Record(ctx, workspace.ID, userID, entity.AuditWorkspaceCreated, map[string]interface{}{
			"name": name,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Workspace created",
		zap.String("workspace_id", workspace.ID),
		zap.String("owner_id", userID))
	uc.audit.Publish(ctx, log)
	return workspace, nil
}

func (uc *WorkspaceUseCase) ListMine(ctx context.Context, userID string) ([]*entity.Workspace, error) {
	workspaces, err := uc.workspaceRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to list workspaces")
	}
	return workspaces, nil
}

func (uc *WorkspaceUseCase) Get(ctx context.Context, userID, workspaceID string) (*entity.Workspace, entity.Authority, error) {
	return uc.authorizer.requireAccess(ctx, userID, workspaceID)
}

func (uc *WorkspaceUseCase) Update(ctx context.Context, userID, workspaceID string, params dto.UpdateWorkspaceParams) (*entity.Workspace, error) {
	workspace, _, err := uc.authorizer.requireManage(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, domainErrors.Validation("workspace name is required")
		}
		workspace.Name = name
		if err := uc.workspaceRepo.Update(ctx, workspace, repository.WorkspaceFieldName); err != nil {
			return nil, updateFailed(err, domainErrors.ErrWorkspaceNotFound, "failed to update workspace")
		}
	}
	return workspace, nil
}

func (uc *WorkspaceUseCase) UploadImage(ctx context.Context, userID, workspaceID string, upload dto.ImageUpload) (*entity.Workspace, error) {
	workspace, _, err := uc.authorizer.requireManage(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}

	url, err := uploadImage(ctx, uc.blobStore, FolderWorkspaceImages, workspace.ID, upload)
	if err != nil {
		return nil, err
	}

	workspace.ImageURL = &url
	if err := uc.workspaceRepo.Update(ctx, workspace, repository.WorkspaceFieldImage); err != nil {
		return nil, updateFailed(err, domainErrors.ErrWorkspaceNotFound, "failed to update workspace image")
	}
	return workspace, nil
}

// Delete removes the workspace and everything in it. Owner only.
func (uc *WorkspaceUseCase) Delete(ctx context.Context, userID, workspaceID string) error {
	_, authority, err := uc.authorizer.requireAccess(ctx, userID, workspaceID)
	if err != nil {
		return err
	}
	if authority != entity.AuthorityOwner {
		return domainErrors.ErrAccessDenied
	}

	if err := uc.workspaceRepo.DeleteCascade(ctx, workspaceID); err != nil {
		return apperrors.Dependency(err, "failed to delete workspace")
	}

	uc.logger.Info("Workspace deleted",
		zap.String("workspace_id", workspaceID),
		zap.String("owner_id", userID))
	return nil
}
