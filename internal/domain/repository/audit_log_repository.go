package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
)

// AuditLogRepository 감사 로그 저장소
type AuditLogRepository interface {
	// Create 새 감사 로그 생성
	Create(ctx context.Context, log *entity.AuditLog) error

	// ListByWorkspace 워크스페이스 감사 로그를 최신순으로 조회
	ListByWorkspace(ctx context.Context, workspaceID string, limit int) ([]*entity.AuditLog, error)
}
