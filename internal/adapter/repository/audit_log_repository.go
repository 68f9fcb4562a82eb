package repository

import (
	"context"
	"fmt"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	infradb "github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLogRepositoryImpl 감사 로그 저장소 구현체
type AuditLogRepositoryImpl struct {
	db *gorm.DB
}

// NewAuditLogRepository 감사 로그 저장소 생성
func NewAuditLogRepository(db *gorm.DB) repository.AuditLogRepository {
	return &AuditLogRepositoryImpl{db: db}
}

func (r *AuditLogRepositoryImpl) Create(ctx context.Context, log *entity.AuditLog) error {
	content := datatypes.JSONMap(log.Content)
	if content == nil {
		content = datatypes.JSONMap{}
	}
	m := &model.AuditLogModel{
		ID:          log.ID,
		WorkspaceID: log.WorkspaceID,
		ActorID:     log.ActorID,
		Type:        string(log.Type),
		Content:     content,
	}
	if err := infradb.Conn(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("감사 로그 생성 실패: %w", err)
	}
	log.CreatedAt = m.CreatedAt
	return nil
}

func (r *AuditLogRepositoryImpl) ListByWorkspace(ctx context.Context, workspaceID string, limit int) ([]*entity.AuditLog, error) {
	var models []model.AuditLogModel
	err := infradb.Conn(ctx, r.db).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("감사 로그 조회 실패: %w", err)
	}

	logs := make([]*entity.AuditLog, 0, len(models))
	for _, m := range models {
		logs = append(logs, &entity.AuditLog{
			ID:          m.ID,
			WorkspaceID: m.WorkspaceID,
			ActorID:     m.ActorID,
			Type:        entity.AuditLogType(m.Type),
			Content:     map[string]interface{}(m.Content),
			CreatedAt:   m.CreatedAt,
		})
	}
	return logs, nil
}
