package usecase

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

// MembershipUseCase membership implementation
type MembershipUseCase struct {
	logger        *zap.Logger
	transactor    repository.Transactor
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.MemberRepository
	userRepo      repository.UserRepository
	taskRepo      repository.TaskRepository
	audit         interfaces.AuditLogUseCase
	authorizer    workspaceAuthorizer
}

// NewMembershipUseCase creates a new membership use case
func NewMembershipUseCase(
	logger *zap.Logger,
	repos *repository.Repositories,
	audit interfaces.AuditLogUseCase,
) interfaces.MembershipUseCase {
	return &MembershipUseCase{
		logger:        logger,
		transactor:    repos.Transactor,
		workspaceRepo: repos.Workspace,
		memberRepo:    repos.Member,
		userRepo:      repos.User,
		taskRepo:      repos.Task,
		audit:         audit,
		authorizer:    newWorkspaceAuthorizer(repos.Workspace, repos.Member),
	}
}

// Authority returns ErrWorkspaceNotFound for a missing workspace and NONE for strangers
func (uc *MembershipUseCase) Authority(ctx context.Context, userID, workspaceID string) (entity.Authority, error) {
	_, authority, err := uc.authorizer.resolve(ctx, userID, workspaceID)
	return authority, err
}

func (uc *MembershipUseCase) RequireAccess(ctx context.Context, userID, workspaceID string) (*entity.Workspace, entity.Authority, error) {
	return uc.authorizer.requireAccess(ctx, userID, workspaceID)
}

func (uc *MembershipUseCase) RequireManage(ctx context.Context, userID, workspaceID string) (*entity.Workspace, entity.Authority, error) {
	return uc.authorizer.requireManage(ctx, userID, workspaceID)
}

func (uc *MembershipUseCase) IsMember(ctx context.Context, workspace *entity.Workspace, userID string) (bool, error) {
	return uc.authorizer.isMember(ctx, workspace, userID)
}

// ListMembers returns every member with profile data. The owner is always listed.
func (uc *MembershipUseCase) ListMembers(ctx context.Context, actorID, workspaceID string) ([]*entity.MemberProfile, error) {
	workspace, _, err := uc.authorizer.requireAccess(ctx, actorID, workspaceID)
	if err != nil {
		return nil, err
	}

	profiles, err := uc.memberRepo.ListProfiles(ctx, workspaceID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to list members")
	}

	ownerListed := false
	for _, profile := range profiles {
		if workspace.IsOwner(profile.UserID) {
			profile.IsOwner = true
			ownerListed = true
		}
	}
	if ownerListed {
		return profiles, nil
	}

	owner, err := uc.userRepo.FindByID(ctx, workspace.OwnerID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to load workspace owner")
	}
	if owner == nil {
		uc.logger.Warn("Workspace owner account is missing", zap.String("workspace_id", workspaceID))
		return profiles, nil
	}

	ownerProfile := &entity.MemberProfile{
		WorkspaceMember: entity.WorkspaceMember{
			WorkspaceID: workspaceID,
			UserID:      owner.ID,
			Role:        entity.RoleAdmin,
			CreatedAt:   workspace.CreatedAt,
			UpdatedAt:   workspace.UpdatedAt,
		},
		Email:     owner.Email,
		Name:      owner.Name,
		AvatarURL: owner.AvatarURL,
		IsOwner:   true,
	}
	return append([]*entity.MemberProfile{ownerProfile}, profiles...), nil
}

// UpdateRole changes a member's role. The owner's role is fixed.
func (uc *MembershipUseCase) UpdateRole(ctx context.Context, actorID, workspaceID, targetID string, role entity.Role) error {
	if !role.Valid() {
		return domainErrors.ErrInvalidRole
	}

	workspace, _, err := uc.authorizer.requireManage(ctx, actorID, workspaceID)
	if err != nil {
		return err
	}
	if workspace.IsOwner(targetID) {
		return domainErrors.ErrOwnerRoleImmutable
	}

	var log *entity.AuditLog
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := uc.memberRepo.Find(ctx, workspaceID, targetID)
		if err != nil {
			return apperrors.Dependency(err, "failed to load member")
		}
		if member == nil {
			return domainErrors.ErrMemberNotFound
		}
		if member.Role == role {
			return nil
		}

		if err := uc.memberRepo.UpdateRole(ctx, workspaceID, targetID, role); err != nil {
			return apperrors.Dependency(err, "failed to update member role")
		}
		log, err = uc.audit.Record(ctx, workspaceID, actorID, entity.AuditMemberRoleChanged, map[string]interface{}{
			"user_id":   targetID,
			"from_role": string(member.Role),
			"to_role":   string(role),
		})
		return err
	})
	if err != nil {
		return err
	}

	uc.audit.Publish(ctx, log)
	return nil
}

// RemoveMember removes another member. Requires manage authority; the owner cannot be removed.
func (uc *MembershipUseCase) RemoveMember(ctx context.Context, actorID, workspaceID, targetID string) error {
	workspace, authority, err := uc.authorizer.requireAccess(ctx, actorID, workspaceID)
	if err != nil {
		return err
	}
	if !authority.CanManage() {
		return domainErrors.ErrAccessDenied
	}
	if workspace.IsOwner(targetID) {
		return domainErrors.ErrOwnerNotRemovable
	}

	var log *entity.AuditLog
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := uc.memberRepo.Find(ctx, workspaceID, targetID)
		if err != nil {
			return apperrors.Dependency(err, "failed to load member")
		}
		if member == nil {
			return domainErrors.ErrMemberNotFound
		}
		if !entity.CanRemoveMember(authority, workspace, member) {
			return domainErrors.ErrAccessDenied
		}

		if err := uc.detach(ctx, workspaceID, targetID); err != nil {
			return err
		}
		log, err = uc.audit.Record(ctx, workspaceID, actorID, entity.AuditMemberRemoved, map[string]interface{}{
			"user_id": targetID,
			"role":    string(member.Role),
		})
		return err
	})
	if err != nil {
		return err
	}

	uc.logger.Info("Member removed",
		zap.String("workspace_id", workspaceID),
		zap.String("actor_id", actorID),
		zap.String("user_id", targetID))
	uc.audit.Publish(ctx, log)
	return nil
}

// Leave removes the caller's own membership. The owner must transfer ownership first.
func (uc *MembershipUseCase) Leave(ctx context.Context, userID, workspaceID string) error {
	workspace, _, err := uc.authorizer.requireAccess(ctx, userID, workspaceID)
	if err != nil {
		return err
	}
	if workspace.IsOwner(userID) {
		return domainErrors.ErrOwnerCannotLeave
	}

	var log *entity.AuditLog
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.detach(ctx, workspaceID, userID); err != nil {
			return err
		}
		var err error
		log, err = uc.audit.Record(ctx, workspaceID, userID, entity.AuditMemberLeft, map[string]interface{}{
			"user_id": userID,
		})
		return err
	})
	if err != nil {
		return err
	}

	uc.audit.Publish(ctx, log)
	return nil
}

// TransferOwnership hands the workspace to an existing member.
// The new owner gets an ADMIN row and the previous owner keeps one.
func (uc *MembershipUseCase) TransferOwnership(ctx context.Context, actorID, workspaceID, newOwnerID string) (*entity.Workspace, error) {
	_, authority, err := uc.authorizer.requireAccess(ctx, actorID, workspaceID)
	if err != nil {
		return nil, err
	}
	if authority != entity.AuthorityOwner {
		return nil, domainErrors.ErrAccessDenied
	}
	if newOwnerID == actorID {
		return nil, domainErrors.ErrTransferToSelf
	}

	var (
		workspace *entity.Workspace
		log       *entity.AuditLog
	)
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		workspace, err = uc.workspaceRepo.FindByID(ctx, workspaceID)
		if err != nil {
			return apperrors.Dependency(err, "failed to load workspace")
		}
		if workspace == nil || !workspace.IsOwner(actorID) {
			return domainErrors.ErrAccessDenied
		}

		target, err := uc.memberRepo.Find(ctx, workspaceID, newOwnerID)
		if err != nil {
			return apperrors.Dependency(err, "failed to load member")
		}
		if target == nil {
			return domainErrors.ErrMemberNotFound
		}

		if err := uc.workspaceRepo.TransferOwner(ctx, workspaceID, actorID, newOwnerID); err != nil {
			return updateFailed(err, domainErrors.ErrAccessDenied, "failed to update workspace owner")
		}
		workspace.OwnerID = newOwnerID
		if target.Role != entity.RoleAdmin {
			if err := uc.memberRepo.UpdateRole(ctx, workspaceID, newOwnerID, entity.RoleAdmin); err != nil {
				return apperrors.Dependency(err, "failed to promote new owner")
			}
		}
		if err := uc.ensureAdminRow(ctx, workspaceID, actorID); err != nil {
			return err
		}

		log, err = uc.audit.Record(ctx, workspaceID, actorID, entity.AuditOwnershipTransferred, map[string]interface{}{
			"from_user_id": actorID,
			"to_user_id":   newOwnerID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Workspace ownership transferred",
		zap.String("workspace_id", workspaceID),
		zap.String("from_user_id", actorID),
		zap.String("to_user_id", newOwnerID))
	uc.audit.Publish(ctx, log)
	return workspace, nil
}

// detach deletes the membership row and the user's assignments inside the workspace
func (uc *MembershipUseCase) detach(ctx context.Context, workspaceID, userID string) error {
	if err := uc.memberRepo.Delete(ctx, workspaceID, userID); err != nil {
		return apperrors.Dependency(err, "failed to delete membership")
	}
	if err := uc.taskRepo.DeleteAssignmentsInWorkspace(ctx, workspaceID, userID); err != nil {
		return apperrors.Dependency(err, "failed to clear task assignments")
	}
	return nil
}

func (uc *MembershipUseCase) ensureAdminRow(ctx context.Context, workspaceID, userID string) error {
	member, err := uc.memberRepo.Find(ctx, workspaceID, userID)
	if err != nil {
		return apperrors.Dependency(err, "failed to load membership")
	}
	if member != nil {
		if member.Role == entity.RoleAdmin {
			return nil
		}
		if err := uc.memberRepo.UpdateRole(ctx, workspaceID, userID, entity.RoleAdmin); err != nil {
			return apperrors.Dependency(err, "failed to update membership")
		}
		return nil
	}
	_, err = insertMember(ctx, uc.memberRepo, workspaceID, userID, entity.RoleAdmin)
	return err
}

// insertMember creates a membership row; a duplicate means the user already belongs to the workspace
func insertMember(ctx context.Context, memberRepo repository.MemberRepository, workspaceID, userID string, role entity.Role) (*entity.WorkspaceMember, error) {
	id, err := GenerateUniqueID(PrefixMember)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate member id")
	}

	member := &entity.WorkspaceMember{
		ID:          id,
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	}
	if err := memberRepo.Create(ctx, member); err != nil {
		if apperrors.Is(err, repository.ErrDuplicate) {
			return nil, domainErrors.ErrAlreadyMember
		}
		return nil, apperrors.Dependency(err, "failed to create membership")
	}
	return member, nil
}
