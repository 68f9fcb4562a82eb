package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLogModel 감사 로그 데이터베이스 모델
type AuditLogModel struct {
	ID          string            `gorm:"type:varchar(16);primaryKey"`
	WorkspaceID string            `gorm:"type:varchar(16);not null;index:idx_audit_workspace_created,priority:1"`
	ActorID     string            `gorm:"type:varchar(16);not null"`
	Type        string            `gorm:"size:50;not null"`
	Content     datatypes.JSONMap `gorm:"not null"`
	CreatedAt   time.Time         `gorm:"autoCreateTime;index:idx_audit_workspace_created,priority:2"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}
