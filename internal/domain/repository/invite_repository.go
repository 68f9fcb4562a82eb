package repository

import (
	"context"
	"time"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
)

// InviteRepository 워크스페이스 초대 저장소
type InviteRepository interface {
	// Create 초대 생성. (email, workspace) 중복 시 ErrDuplicate를 반환합니다
	Create(ctx context.Context, invite *entity.WorkspaceInvite) error

	// FindByID ID로 초대 조회
	FindByID(ctx context.Context, id string) (*entity.WorkspaceInvite, error)

	// FindByEmail 만료 여부와 관계없이 (workspace, email) 초대 조회
	FindByEmail(ctx context.Context, workspaceID, email string) (*entity.WorkspaceInvite, error)

	// FindActive 토큰 해시, 워크스페이스, 수신자 이메일이 일치하고 now 이후에 만료되는 초대 조회
	FindActive(ctx context.Context, tokenHash, workspaceID, email string, now time.Time) (*entity.WorkspaceInvite, error)

	// ListPending 만료되지 않은 초대 목록
	ListPending(ctx context.Context, workspaceID string, now time.Time) ([]*entity.WorkspaceInvite, error)

	// Delete 초대 삭제
	Delete(ctx context.Context, id string) error

	// DeleteExpired 만료된 초대를 삭제하고 삭제 건수를 반환합니다
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
