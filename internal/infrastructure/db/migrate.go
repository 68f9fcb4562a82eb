package db

import (
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate 모든 모델의 테이블과 인덱스를 생성합니다
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("데이터베이스 마이그레이션 시작")

	err := db.AutoMigrate(
		&model.UserModel{},
		&model.WorkspaceModel{},
		&model.WorkspaceMemberModel{},
		&model.WorkspaceInviteModel{},
		&model.ProjectModel{},
		&model.TaskModel{},
		&model.TaskAssignmentModel{},
		&model.TaskCommentModel{},
		&model.TaskAttachmentModel{},
		&model.AuditLogModel{},
	)
	if err != nil {
		logger.Error("마이그레이션 실패", zap.Error(err))
		return err
	}

	logger.Info("데이터베이스 마이그레이션 완료")
	return nil
}
