package usecase

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
)

// workspaceAuthorizer computes authority from the current workspace and membership rows.
// Nothing is cached; every call reads storage.
type workspaceAuthorizer struct {
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.MemberRepository
}

func newWorkspaceAuthorizer(workspaceRepo repository.WorkspaceRepository, memberRepo repository.MemberRepository) workspaceAuthorizer {
	return workspaceAuthorizer{workspaceRepo: workspaceRepo, memberRepo: memberRepo}
}

// resolve returns ErrWorkspaceNotFound when the workspace does not exist
func (a workspaceAuthorizer) resolve(ctx context.Context, userID, workspaceID string) (*entity.Workspace, entity.Authority, error) {
	workspace, err := a.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, entity.AuthorityNone, apperrors.Dependency(err, "failed to load workspace")
	}
	if workspace == nil {
		return nil, entity.AuthorityNone, domainErrors.ErrWorkspaceNotFound
	}

	member, err := a.memberRepo.Find(ctx, workspaceID, userID)
	if err != nil {
		return nil, entity.AuthorityNone, apperrors.Dependency(err, "failed to load membership")
	}
	return workspace, entity.AuthorityOf(workspace, userID, member), nil
}

// require collapses a missing workspace and insufficient authority into ErrAccessDenied
func (a workspaceAuthorizer) require(ctx context.Context, userID, workspaceID string, allowed func(entity.Authority) bool) (*entity.Workspace, entity.Authority, error) {
	workspace, authority, err := a.resolve(ctx, userID, workspaceID)
	if err != nil {
		if apperrors.Is(err, domainErrors.ErrWorkspaceNotFound) {
			return nil, entity.AuthorityNone, domainErrors.ErrAccessDenied
		}
		return nil, entity.AuthorityNone, err
	}
	if !allowed(authority) {
		return nil, authority, domainErrors.ErrAccessDenied
	}
	return workspace, authority, nil
}

func (a workspaceAuthorizer) requireAccess(ctx context.Context, userID, workspaceID string) (*entity.Workspace, entity.Authority, error) {
	return a.require(ctx, userID, workspaceID, entity.Authority.CanAccess)
}

func (a workspaceAuthorizer) requireManage(ctx context.Context, userID, workspaceID string) (*entity.Workspace, entity.Authority, error) {
	return a.require(ctx, userID, workspaceID, entity.Authority.CanManage)
}

// isMember owner or any membership row
func (a workspaceAuthorizer) isMember(ctx context.Context, workspace *entity.Workspace, userID string) (bool, error) {
	if workspace.IsOwner(userID) {
		return true, nil
	}
	member, err := a.memberRepo.Find(ctx, workspace.ID, userID)
	if err != nil {
		return false, apperrors.Dependency(err, "failed to load membership")
	}
	return member != nil, nil
}
