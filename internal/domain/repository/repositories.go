package repository

import (
	"context"
	"errors"
)

var (
	// ErrDuplicate 유니크 제약 위반
	ErrDuplicate = errors.New("duplicate record")

	// ErrNotFound 갱신 대상 행이 없음 (이미 삭제되었거나 조건이 바뀐 경우)
	ErrNotFound = errors.New("record not found")
)

// Transactor 여러 레포지토리 호출을 하나의 트랜잭션으로 묶습니다.
// fn에 전달되는 ctx를 사용해야 같은 트랜잭션에 참여합니다.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories 모든 레포지토리 인터페이스의 컬렉션
type Repositories struct {
	Transactor Transactor
	User       UserRepository
	Workspace  WorkspaceRepository
	Member     MemberRepository
	Invite     InviteRepository
	Project    ProjectRepository
	Task       TaskRepository
	Comment    CommentRepository
	Attachment AttachmentRepository
	AuditLog   AuditLogRepository
}
