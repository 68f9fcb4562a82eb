package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
)

// WorkspaceField 워크스페이스 부분 업데이트 단위. 소유자는 TransferOwner로만 바뀝니다.
type WorkspaceField string

const (
	WorkspaceFieldName  WorkspaceField = "name"
	WorkspaceFieldImage WorkspaceField = "image"
)

// WorkspaceRepository 워크스페이스 저장소
type WorkspaceRepository interface {
	// FindByID ID로 워크스페이스 조회
	FindByID(ctx context.Context, id string) (*entity.Workspace, error)

	// ListForUser 사용자가 소유하거나 멤버인 워크스페이스 목록
	ListForUser(ctx context.Context, userID string) ([]*entity.Workspace, error)

	// ListOwnedBy 사용자가 소유한 워크스페이스 목록
	ListOwnedBy(ctx context.Context, userID string) ([]*entity.Workspace, error)

	// Create 새 워크스페이스 생성
	Create(ctx context.Context, workspace *entity.Workspace) error

	// Update fields로 지정한 컬럼만 기록합니다. 워크스페이스가 없으면 ErrNotFound를 반환합니다
	Update(ctx context.Context, workspace *entity.Workspace, fields ...WorkspaceField) error

	// TransferOwner 현재 소유자가 fromOwnerID일 때만 소유자를 바꿉니다. 조건이 맞지 않으면 ErrNotFound를 반환합니다
	TransferOwner(ctx context.Context, id, fromOwnerID, toOwnerID string) error

	// DeleteCascade 워크스페이스와 하위 데이터(멤버, 초대, 프로젝트, 작업, 댓글, 첨부, 담당자, 감사 로그)를 삭제합니다
	DeleteCascade(ctx context.Context, id string) error
}

// MemberRepository 워크스페이스 멤버십 저장소
type MemberRepository interface {
	// Find (workspaceID, userID) 멤버십 행 조회
	Find(ctx context.Context, workspaceID, userID string) (*entity.WorkspaceMember, error)

	// Create 멤버십 생성. (user, workspace) 중복 시 ErrDuplicate를 반환합니다
	Create(ctx context.Context, member *entity.WorkspaceMember) error

	// UpdateRole 멤버 역할 변경
	UpdateRole(ctx context.Context, workspaceID, userID string, role entity.Role) error

	// Delete 멤버십 삭제
	Delete(ctx context.Context, workspaceID, userID string) error

	// DeleteByUser 사용자의 모든 멤버십 삭제
	DeleteByUser(ctx context.Context, userID string) error

	// ListProfiles 사용자 정보를 포함한 멤버 목록
	ListProfiles(ctx context.Context, workspaceID string) ([]*entity.MemberProfile, error)
}
