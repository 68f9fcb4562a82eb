package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	infradb "github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db/model"
	"gorm.io/gorm"
)

// InviteRepositoryImpl 초대 저장소 구현체
type InviteRepositoryImpl struct {
	db *gorm.DB
}

// NewInviteRepository 초대 저장소 생성
func NewInviteRepository(db *gorm.DB) repository.InviteRepository {
	return &InviteRepositoryImpl{db: db}
}

func toInviteEntity(m *model.WorkspaceInviteModel) *entity.WorkspaceInvite {
	return &entity.WorkspaceInvite{
		ID:          m.ID,
		WorkspaceID: m.WorkspaceID,
		Email:       m.Email,
		Role:        entity.Role(m.Role),
		TokenHash:   m.TokenHash,
		InviterID:   m.InviterID,
		ExpiresAt:   m.ExpiresAt,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *InviteRepositoryImpl) findOne(ctx context.Context, query string, args ...interface{}) (*entity.WorkspaceInvite, error) {
	var m model.WorkspaceInviteModel
	if err := infradb.Conn(ctx, r.db).Where(query, args...).First(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("초대 조회 실패: %w", err)
	}
	return toInviteEntity(&m), nil
}

func (r *InviteRepositoryImpl) Create(ctx context.Context, invite *entity.WorkspaceInvite) error {
	m := &model.WorkspaceInviteModel{
		ID:          invite.ID,
		WorkspaceID: invite.WorkspaceID,
		Email:       entity.NormalizeEmail(invite.Email),
		Role:        string(invite.Role),
		TokenHash:   invite.TokenHash,
		InviterID:   invite.InviterID,
		ExpiresAt:   invite.ExpiresAt,
	}
	if err := infradb.Conn(ctx, r.db).Create(m).Error; err != nil {
		return translateDuplicate(err)
	}
	invite.Email = m.Email
	invite.CreatedAt = m.CreatedAt
	return nil
}

func (r *InviteRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.WorkspaceInvite, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *InviteRepositoryImpl) FindByEmail(ctx context.Context, workspaceID, email string) (*entity.WorkspaceInvite, error) {
	return r.findOne(ctx, "workspace_id = ? AND email = ?", workspaceID, entity.NormalizeEmail(email))
}

func (r *InviteRepositoryImpl) FindActive(ctx context.Context, tokenHash, workspaceID, email string, now time.Time) (*entity.WorkspaceInvite, error) {
	return r.findOne(ctx,
		"token_hash = ? AND workspace_id = ? AND email = ? AND expires_at > ?",
		tokenHash, workspaceID, entity.NormalizeEmail(email), now,
	)
}

func (r *InviteRepositoryImpl) ListPending(ctx context.Context, workspaceID string, now time.Time) ([]*entity.WorkspaceInvite, error) {
	var models []model.WorkspaceInviteModel
	err := infradb.Conn(ctx, r.db).
		Where("workspace_id = ? AND expires_at > ?", workspaceID, now).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("초대 목록 조회 실패: %w", err)
	}

	invites := make([]*entity.WorkspaceInvite, 0, len(models))
	for i := range models {
		invites = append(invites, toInviteEntity(&models[i]))
	}
	return invites, nil
}

func (r *InviteRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := infradb.Conn(ctx, r.db).Where("id = ?", id).Delete(&model.WorkspaceInviteModel{}).Error; err != nil {
		return fmt.Errorf("초대 삭제 실패: %w", err)
	}
	return nil
}

func (r *InviteRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := infradb.Conn(ctx, r.db).Where("expires_at <= ?", now).Delete(&model.WorkspaceInviteModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("만료 초대 삭제 실패: %w", result.Error)
	}
	return result.RowsAffected, nil
}
