package usecase

import (
	"context"
	"strings"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

// ProjectUseCase project implementation
type ProjectUseCase struct {
	logger      *zap.Logger
	projectRepo repository.ProjectRepository
	access      interfaces.AccessUseCase
	authorizer  workspaceAuthorizer
}

// NewProjectUseCase creates a new project use case
func NewProjectUseCase(
	logger *zap.Logger,
	repos *repository.Repositories,
	access interfaces.AccessUseCase,
) interfaces.ProjectUseCase {
	return &ProjectUseCase{
		logger:      logger,
		projectRepo: repos.Project,
		access:      access,
		authorizer:  newWorkspaceAuthorizer(repos.Workspace, repos.Member),
	}
}

func (uc *ProjectUseCase) Create(ctx context.Context, userID, workspaceID string, params dto.CreateProjectParams) (*entity.Project, error) {
	if _, _, err := uc.authorizer.requireAccess(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, domainErrors.Validation("project name is required")
	}

	id, err := GenerateUniqueID(PrefixProject)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate project id")
	}
	project := &entity.Project{
		ID:          id,
		WorkspaceID: workspaceID,
		Name:        name,
		Description: params.Description,
		CreatorID:   userID,
	}
	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, apperrors.Dependency(err, "failed to create project")
	}
	return project, nil
}

func (uc *ProjectUseCase) List(ctx context.Context, userID, workspaceID string) ([]*entity.Project, error) {
	if _, _, err := uc.authorizer.requireAccess(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	projects, err := uc.projectRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to list projects")
	}
	return projects, nil
}

func (uc *ProjectUseCase) Get(ctx context.Context, userID, projectID string) (*entity.Project, error) {
	access, err := uc.access.ProjectFor(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	return access.Project, nil
}

func (uc *ProjectUseCase) Update(ctx context.Context, userID, projectID string, params dto.UpdateProjectParams) (*entity.Project, error) {
	access, err := uc.access.ProjectFor(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	project := access.Project
	var fields []repository.ProjectField
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, domainErrors.Validation("project name is required")
		}
		project.Name = name
		fields = append(fields, repository.ProjectFieldName)
	}
	if params.Description != nil {
		project.Description = *params.Description
		fields = append(fields, repository.ProjectFieldDescription)
	}

	if err := uc.projectRepo.Update(ctx, project, fields...); err != nil {
		return nil, updateFailed(err, domainErrors.ErrProjectNotFound, "failed to update project")
	}
	return project, nil
}

// Delete removes the project with all its tasks. Requires manage authority.
func (uc *ProjectUseCase) Delete(ctx context.Context, userID, projectID string) error {
	access, err := uc.access.ProjectFor(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if !access.Authority.CanManage() {
		return domainErrors.ErrAccessDenied
	}

	if err := uc.projectRepo.DeleteCascade(ctx, projectID); err != nil {
		return apperrors.Dependency(err, "failed to delete project")
	}

	uc.logger.Info("Project deleted",
		zap.String("project_id", projectID),
		zap.String("workspace_id", access.Workspace.ID),
		zap.String("actor_id", userID))
	return nil
}
