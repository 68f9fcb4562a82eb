package usecase

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

// Sweep job names
const (
	JobUnverifiedUserReaper = "unverified-user-reaper"
	JobExpiredInviteReaper  = "expired-invite-reaper"
)

// UnverifiedUserReaper deletes accounts whose verification window has passed
type UnverifiedUserReaper struct {
	logger   *zap.Logger
	clock    service.Clock
	userRepo repository.UserRepository
}

// NewUnverifiedUserReaper creates the unverified user sweep job
func NewUnverifiedUserReaper(logger *zap.Logger, clock service.Clock, userRepo repository.UserRepository) *UnverifiedUserReaper {
	return &UnverifiedUserReaper{logger: logger, clock: clock, userRepo: userRepo}
}

func (j *UnverifiedUserReaper) Name() string { return JobUnverifiedUserReaper }

func (j *UnverifiedUserReaper) Run(ctx context.Context) error {
	deleted, err := j.userRepo.DeleteUnverifiedExpired(ctx, j.clock.Now())
	if err != nil {
		return apperrors.Dependency(err, "failed to delete unverified users")
	}
	j.logger.Info("Unverified users swept", zap.Int64("deleted", deleted))
	return nil
}

// ExpiredInviteReaper deletes invites past their expiry
type ExpiredInviteReaper struct {
	logger     *zap.Logger
	clock      service.Clock
	inviteRepo repository.InviteRepository
}

// NewExpiredInviteReaper creates the expired invite sweep job
func NewExpiredInviteReaper(logger *zap.Logger, clock service.Clock, inviteRepo repository.InviteRepository) *ExpiredInviteReaper {
	return &ExpiredInviteReaper{logger: logger, clock: clock, inviteRepo: inviteRepo}
}

func (j *ExpiredInviteReaper) Name() string { return JobExpiredInviteReaper }

func (j *ExpiredInviteReaper) Run(ctx context.Context) error {
	deleted, err := j.inviteRepo.DeleteExpired(ctx, j.clock.Now())
	if err != nil {
		return apperrors.Dependency(err, "failed to delete expired invites")
	}
	j.logger.Info("Expired invites swept", zap.Int64("deleted", deleted))
	return nil
}
