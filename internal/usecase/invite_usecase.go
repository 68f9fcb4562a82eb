package usecase

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

// InviteUseCase invitation implementation
type InviteUseCase struct {
	logger        *zap.Logger
	clock         service.Clock
	transactor    repository.Transactor
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.MemberRepository
	inviteRepo    repository.InviteRepository
	userRepo      repository.UserRepository
	email         interfaces.EmailUseCase
	audit         interfaces.AuditLogUseCase
	authorizer    workspaceAuthorizer
}

// NewInviteUseCase creates a new invite use case
func NewInviteUseCase(
	logger *zap.Logger,
	clock service.Clock,
	repos *repository.Repositories,
	email interfaces.EmailUseCase,
	audit interfaces.AuditLogUseCase,
) interfaces.InviteUseCase {
	return &InviteUseCase{
		logger:        logger,
		clock:         clock,
		transactor:    repos.Transactor,
		workspaceRepo: repos.Workspace,
		memberRepo:    repos.Member,
		inviteRepo:    repos.Invite,
		userRepo:      repos.User,
		email:         email,
		audit:         audit,
		authorizer:    newWorkspaceAuthorizer(repos.Workspace, repos.Member),
	}
}

// Issue creates an invite for an email that is neither a member nor already invited.
// An expired invite for the same email is replaced.
func (uc *InviteUseCase) Issue(ctx context.Context, actorID, workspaceID string, params dto.IssueInviteParams) (*dto.InviteReceipt, error) {
	workspace, _, err := uc.authorizer.requireManage(ctx, actorID, workspaceID)
	if err != nil {
		return nil, err
	}

	email := entity.NormalizeEmail(params.Email)
	if email == "" {
		return nil, domainErrors.Validation("email is required")
	}
	role := params.Role
	if role == "" {
		role = entity.RoleMember
	}
	if !role.Valid() {
		return nil, domainErrors.ErrInvalidRole
	}

	// (a) already owner or member
	invitee, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to look up invitee")
	}
	if invitee != nil {
		member, err := uc.authorizer.isMember(ctx, workspace, invitee.ID)
		if err != nil {
			return nil, err
		}
		if member {
			return nil, domainErrors.ErrAlreadyMember
		}
	}

	// (b) outstanding invite
	now := uc.clock.Now()
	existing, err := uc.inviteRepo.FindByEmail(ctx, workspaceID, email)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to look up invites")
	}
	if existing != nil {
		if !existing.Expired(now) {
			return nil, domainErrors.ErrInviteAlreadySent
		}
		if err := uc.inviteRepo.Delete(ctx, existing.ID); err != nil {
			return nil, apperrors.Dependency(err, "failed to remove expired invite")
		}
	}

	token, tokenHash, err := GenerateToken()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate invite token")
	}
	id, err := GenerateUniqueID(PrefixInvite)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate invite id")
	}

	invite := &entity.WorkspaceInvite{
		ID:          id,
		WorkspaceID: workspaceID,
		Email:       email,
		Role:        role,
		TokenHash:   tokenHash,
		InviterID:   actorID,
		ExpiresAt:   now.Add(entity.InviteTTL),
	}
	if err := uc.inviteRepo.Create(ctx, invite); err != nil {
		if apperrors.Is(err, repository.ErrDuplicate) {
			return nil, domainErrors.ErrInviteAlreadySent
		}
		return nil, apperrors.Dependency(err, "failed to create invite")
	}

	inviterName := "A teammate"
	if inviter, err := uc.userRepo.FindByID(ctx, actorID); err == nil && inviter != nil {
		inviterName = inviter.Name
	}

	if err := uc.email.SendInviteEmail(ctx, email, inviterName, workspace, role, token); err != nil {
		if delErr := uc.inviteRepo.Delete(ctx, invite.ID); delErr != nil {
			uc.logger.Error("Failed to roll back invite after mail failure",
				zap.String("invite_id", invite.ID),
				zap.Error(delErr))
		}
		return nil, apperrors.Dependency(err, "failed to send invitation email")
	}

	log, err := uc.audit.Record(ctx, workspaceID, actorID, entity.AuditInviteIssued, map[string]interface{}{
		"invite_id": invite.ID,
		"email":     email,
		"role":      string(role),
	})
	if err != nil {
		uc.logger.Warn("Failed to record invite audit log", zap.Error(err))
	}
	uc.audit.Publish(ctx, log)

	return &dto.InviteReceipt{
		ID:        invite.ID,
		Email:     invite.Email,
		Role:      invite.Role,
		ExpiresAt: invite.ExpiresAt,
	}, nil
}

// Accept consumes an invite addressed to the acceptor's email.
// Membership creation and invite deletion happen in one transaction so an invite is used at most once.
func (uc *InviteUseCase) Accept(ctx context.Context, userID, workspaceID, token string) (*entity.WorkspaceMember, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to load user")
	}
	if user == nil {
		return nil, domainErrors.ErrUnauthenticated
	}
	if token == "" {
		return nil, domainErrors.ErrInvalidOrExpiredInvite
	}

	invite, err := uc.inviteRepo.FindActive(ctx, HashToken(token), workspaceID, user.Email, uc.clock.Now())
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to look up invite")
	}
	if invite == nil {
		return nil, domainErrors.ErrInvalidOrExpiredInvite
	}

	var (
		member *entity.WorkspaceMember
		log    *entity.AuditLog
	)
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		workspace, err := uc.workspaceRepo.FindByID(ctx, workspaceID)
		if err != nil {
			return apperrors.Dependency(err, "failed to load workspace")
		}
		if workspace == nil {
			return domainErrors.ErrInvalidOrExpiredInvite
		}

		isMember, err := uc.authorizer.isMember(ctx, workspace, userID)
		if err != nil {
			return err
		}
		if isMember {
			return domainErrors.ErrAlreadyMember
		}

		current, err := uc.inviteRepo.FindActive(ctx, HashToken(token), workspaceID, user.Email, uc.clock.Now())
		if err != nil {
			return apperrors.Dependency(err, "failed to reload invite")
		}
		if current == nil || current.ID != invite.ID {
			return domainErrors.ErrInvalidOrExpiredInvite
		}

		member, err = insertMember(ctx, uc.memberRepo, workspaceID, userID, current.Role)
		if err != nil {
			return err
		}
		if err := uc.inviteRepo.Delete(ctx, current.ID); err != nil {
			return apperrors.Dependency(err, "failed to delete invite")
		}

		log, err = uc.audit.Record(ctx, workspaceID, userID, entity.AuditInviteAccepted, map[string]interface{}{
			"invite_id":  current.ID,
			"inviter_id": current.InviterID,
			"role":       string(current.Role),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Invite accepted",
		zap.String("workspace_id", workspaceID),
		zap.String("user_id", userID),
		zap.String("role", string(member.Role)))
	uc.audit.Publish(ctx, log)
	return member, nil
}

func (uc *InviteUseCase) ListPending(ctx context.Context, actorID, workspaceID string) ([]*entity.WorkspaceInvite, error) {
	if _, _, err := uc.authorizer.requireManage(ctx, actorID, workspaceID); err != nil {
		return nil, err
	}

	invites, err := uc.inviteRepo.ListPending(ctx, workspaceID, uc.clock.Now())
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to list invites")
	}
	return invites, nil
}

func (uc *InviteUseCase) Revoke(ctx context.Context, actorID, workspaceID, inviteID string) error {
	if _, _, err := uc.authorizer.requireManage(ctx, actorID, workspaceID); err != nil {
		return err
	}

	invite, err := uc.inviteRepo.FindByID(ctx, inviteID)
	if err != nil {
		return apperrors.Dependency(err, "failed to load invite")
	}
	if invite == nil || invite.WorkspaceID != workspaceID {
		return domainErrors.ErrInviteNotFound
	}

	if err := uc.inviteRepo.Delete(ctx, inviteID); err != nil {
		return apperrors.Dependency(err, "failed to revoke invite")
	}

	log, err := uc.audit.Record(ctx, workspaceID, actorID, entity.AuditInviteRevoked, map[string]interface{}{
		"invite_id": inviteID,
		"email":     invite.Email,
	})
	if err != nil {
		uc.logger.Warn("Failed to record invite audit log", zap.Error(err))
	}
	uc.audit.Publish(ctx, log)
	return nil
}
