package usecase

import (
	"github.com/wekeepgrowing/semo-taskboard/internal/config"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// Services는 유스케이스가 사용하는 외부 인프라 구현체 모음입니다.
type Services struct {
	Clock       service.Clock
	Tokens      service.TokenService
	Revocations service.RevocationStore
	Mailer      service.Mailer
	BlobStore   service.BlobStore
	Publisher   service.EventPublisher
	Providers   []service.OAuthProvider
}

// UseCases는 모든 유스케이스를 담고 있는 구조체입니다.
type UseCases struct {
	Auth       interfaces.AuthUseCase
	Email      interfaces.EmailUseCase
	AuditLog   interfaces.AuditLogUseCase
	Membership interfaces.MembershipUseCase
	Workspace  interfaces.WorkspaceUseCase
	Invite     interfaces.InviteUseCase
	Access     interfaces.AccessUseCase
	Project    interfaces.ProjectUseCase
	Task       interfaces.TaskUseCase
	Comment    interfaces.CommentUseCase
	Attachment interfaces.AttachmentUseCase

	// 주기 실행 작업
	Jobs []service.Job
}

// SetupUseCases는 모든 유스케이스 구현체를 생성하고 의존성을 주입합니다.
func SetupUseCases(
	logger *zap.Logger,
	cfg *config.Config,
	repositories *repository.Repositories,
	services Services,
) *UseCases {
	clock := services.Clock
	if clock == nil {
		clock = service.SystemClock{}
	}

	// 1. 기본 유스케이스 생성 (다른 유스케이스에 의존하지 않는 것부터)
	auditLogUC := NewAuditLogUseCase(
		logger,
		repositories,
		services.Publisher,
	)

	emailUC := NewEmailUseCase(
		logger,
		services.Mailer,
		cfg.Service.AppURL,
		cfg.Service.Name,
	)

	// 2. 멤버십, 접근 제어 유스케이스 생성
	membershipUC := NewMembershipUseCase(
		logger,
		repositories,
		auditLogUC,
	)

	accessUC := NewAccessUseCase(
		logger,
		repositories,
	)

	// 3. 인증 유스케이스 생성
	authConfig := AuthConfig{
		HashCost:          cfg.Auth.HashCost,
		PasswordMinLength: cfg.Auth.PasswordMinLength,
	}

	authUC := NewAuthUseCase(
		logger,
		clock,
		authConfig,
		repositories,
		services.Tokens,
		services.Revocations,
		emailUC,
		services.BlobStore,
		services.Providers,
	)

	// 4. 워크스페이스, 초대 유스케이스 생성
	workspaceUC := NewWorkspaceUseCase(
		logger,
		repositories,
		services.BlobStore,
		auditLogUC,
	)

	inviteUC := NewInviteUseCase(
		logger,
		clock,
		repositories,
		emailUC,
		auditLogUC,
	)

	// 5. 리소스 유스케이스 생성 (접근 제어 유스케이스를 의존)
	projectUC := NewProjectUseCase(logger, repositories, accessUC)
	taskUC := NewTaskUseCase(logger, repositories, accessUC, NewCursorManager(cfg.Cursor.Secret))
	commentUC := NewCommentUseCase(logger, repositories, accessUC)
	attachmentUC := NewAttachmentUseCase(logger, repositories, accessUC)

	// 6. 정리 작업 생성
	jobs := []service.Job{
		NewExpiredInviteReaper(logger, clock, repositories.Invite),
		NewUnverifiedUserReaper(logger, clock, repositories.User),
	}

	return &UseCases{
		Auth:       authUC,
		Email:      emailUC,
		AuditLog:   auditLogUC,
		Membership: membershipUC,
		Workspace:  workspaceUC,
		Invite:     inviteUC,
		Access:     accessUC,
		Project:    projectUC,
		Task:       taskUC,
		Comment:    commentUC,
		Attachment: attachmentUC,
		Jobs:       jobs,
	}
}
