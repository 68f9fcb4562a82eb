package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	infradb "github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db/model"
	"gorm.io/gorm"
)

// WorkspaceRepositoryImpl 워크스페이스 저장소 구현체
type WorkspaceRepositoryImpl struct {
	db *gorm.DB
}

// NewWorkspaceRepository 워크스페이스 저장소 생성
func NewWorkspaceRepository(db *gorm.DB) repository.WorkspaceRepository {
	return &WorkspaceRepositoryImpl{db: db}
}

func toWorkspaceEntity(m *model.WorkspaceModel) *entity.Workspace {
	return &entity.Workspace{
		ID:        m.ID,
		Name:      m.Name,
		ImageURL:  m.ImageURL,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toWorkspaceModel(w *entity.Workspace) *model.WorkspaceModel {
	return &model.WorkspaceModel{
		ID:        w.ID,
		Name:      w.Name,
		ImageURL:  w.ImageURL,
		OwnerID:   w.OwnerID,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toWorkspaceEntities(models []model.WorkspaceModel) []*entity.Workspace {
	workspaces := make([]*entity.Workspace, 0, len(models))
	for i := range models {
		workspaces = append(workspaces, toWorkspaceEntity(&models[i]))
	}
	return workspaces
}

func (r *WorkspaceRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Workspace, error) {
	var m model.WorkspaceModel
	if err := infradb.Conn(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("워크스페이스 조회 실패: %w", err)
	}
	return toWorkspaceEntity(&m), nil
}

func (r *WorkspaceRepositoryImpl) ListForUser(ctx context.Context, userID string) ([]*entity.Workspace, error) {
	conn := infradb.Conn(ctx, r.db)
	memberOf := conn.Model(&model.WorkspaceMemberModel{}).Select("workspace_id").Where("user_id = ?", userID)

	var models []model.WorkspaceModel
	err := conn.Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("워크스페이스 목록 조회 실패: %w", err)
	}
	return toWorkspaceEntities(models), nil
}

func (r *WorkspaceRepositoryImpl) ListOwnedBy(ctx context.Context, userID string) ([]*entity.Workspace, error) {
	var models []model.WorkspaceModel
	if err := infradb.Conn(ctx, r.db).Where("owner_id = ?", userID).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("소유 워크스페이스 조회 실패: %w", err)
	}
	return toWorkspaceEntities(models), nil
}

func (r *WorkspaceRepositoryImpl) Create(ctx context.Context, workspace *entity.Workspace) error {
	m := toWorkspaceModel(workspace)
	if err := infradb.Conn(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("워크스페이스 생성 실패: %w", err)
	}
	workspace.CreatedAt = m.CreatedAt
	workspace.UpdatedAt = m.UpdatedAt
	return nil
}

var workspaceColumns = map[repository.WorkspaceField][]string{
	repository.WorkspaceFieldName:  {"name"},
	repository.WorkspaceFieldImage: {"image_url"},
}

func (r *WorkspaceRepositoryImpl) Update(ctx context.Context, workspace *entity.Workspace, fields ...repository.WorkspaceField) error {
	if len(fields) == 0 {
		return nil
	}
	columns, err := columnsOf(fields, workspaceColumns)
	if err != nil {
		return err
	}

	m := toWorkspaceModel(workspace)
	if err := updateColumns(infradb.Conn(ctx, r.db), m, workspace.ID, columns); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("워크스페이스 업데이트 실패: %w", err)
	}
	workspace.UpdatedAt = m.UpdatedAt
	return nil
}

// TransferOwner owner_id가 fromOwnerID인 행만 변경합니다
func (r *WorkspaceRepositoryImpl) TransferOwner(ctx context.Context, id, fromOwnerID, toOwnerID string) error {
	result := infradb.Conn(ctx, r.db).Model(&model.WorkspaceModel{}).
		Where("id = ? AND owner_id = ?", id, fromOwnerID).
		Updates(map[string]interface{}{"owner_id": toOwnerID, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("워크스페이스 소유자 변경 실패: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteCascade 하위 데이터부터 순서대로 삭제합니다. 호출자의 트랜잭션이 없으면 자체 트랜잭션을 사용합니다.
func (r *WorkspaceRepositoryImpl) DeleteCascade(ctx context.Context, id string) error {
	return infradb.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		projectIDs := tx.Model(&model.ProjectModel{}).Select("id").Where("workspace_id = ?", id)
		taskIDs := tx.Model(&model.TaskModel{}).Select("id").Where("project_id IN (?)", projectIDs)

		steps := []struct {
			name  string
			model interface{}
			query string
			arg   interface{}
		}{
			{"댓글", &model.TaskCommentModel{}, "task_id IN (?)", taskIDs},
			{"첨부", &model.TaskAttachmentModel{}, "task_id IN (?)", taskIDs},
			{"담당자", &model.TaskAssignmentModel{}, "task_id IN (?)", taskIDs},
			{"작업", &model.TaskModel{}, "project_id IN (?)", projectIDs},
			{"프로젝트", &model.ProjectModel{}, "workspace_id = ?", id},
			{"초대", &model.WorkspaceInviteModel{}, "workspace_id = ?", id},
			{"멤버", &model.WorkspaceMemberModel{}, "workspace_id = ?", id},
			{"감사 로그", &model.AuditLogModel{}, "workspace_id = ?", id},
			{"워크스페이스", &model.WorkspaceModel{}, "id = ?", id},
		}
		for _, step := range steps {
			if err := tx.Where(step.query, step.arg).Delete(step.model).Error; err != nil {
				return fmt.Errorf("%s 삭제 실패: %w", step.name, err)
			}
		}
		return nil
	})
}

// MemberRepositoryImpl 멤버십 저장소 구현체
type MemberRepositoryImpl struct {
	db *gorm.DB
}

// NewMemberRepository 멤버십 저장소 생성
func NewMemberRepository(db *gorm.DB) repository.MemberRepository {
	return &MemberRepositoryImpl{db: db}
}

func toMemberEntity(m *model.WorkspaceMemberModel) *entity.WorkspaceMember {
	return &entity.WorkspaceMember{
		ID:          m.ID,
		WorkspaceID: m.WorkspaceID,
		UserID:      m.UserID,
		Role:        entity.Role(m.Role),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *MemberRepositoryImpl) Find(ctx context.Context, workspaceID, userID string) (*entity.WorkspaceMember, error) {
	var m model.WorkspaceMemberModel
	err := infradb.Conn(ctx, r.db).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&m).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("멤버 조회 실패: %w", err)
	}
	return toMemberEntity(&m), nil
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, member *entity.WorkspaceMember) error {
	m := &model.WorkspaceMemberModel{
		ID:          member.ID,
		WorkspaceID: member.WorkspaceID,
		UserID:      member.UserID,
		Role:        string(member.Role),
	}
	if err := infradb.Conn(ctx, r.db).Create(m).Error; err != nil {
		return translateDuplicate(err)
	}
	member.CreatedAt = m.CreatedAt
	member.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *MemberRepositoryImpl) UpdateRole(ctx context.Context, workspaceID, userID string, role entity.Role) error {
	err := infradb.Conn(ctx, r.db).Model(&model.WorkspaceMemberModel{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Update("role", string(role)).Error
	if err != nil {
		return fmt.Errorf("멤버 역할 변경 실패: %w", err)
	}
	return nil
}

func (r *MemberRepositoryImpl) Delete(ctx context.Context, workspaceID, userID string) error {
	err := infradb.Conn(ctx, r.db).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&model.WorkspaceMemberModel{}).Error
	if err != nil {
		return fmt.Errorf("멤버 삭제 실패: %w", err)
	}
	return nil
}

func (r *MemberRepositoryImpl) DeleteByUser(ctx context.Context, userID string) error {
	if err := infradb.Conn(ctx, r.db).Where("user_id = ?", userID).Delete(&model.WorkspaceMemberModel{}).Error; err != nil {
		return fmt.Errorf("사용자 멤버십 삭제 실패: %w", err)
	}
	return nil
}

// memberProfileRow 멤버와 사용자 조인 결과
type memberProfileRow struct {
	ID          string
	WorkspaceID string
	UserID      string
	Role        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Email       string
	Name        string
	AvatarURL   *string
}

func (r *MemberRepositoryImpl) ListProfiles(ctx context.Context, workspaceID string) ([]*entity.MemberProfile, error) {
	var rows []memberProfileRow
	err := infradb.Conn(ctx, r.db).
		Table("workspace_members AS m").
		Select("m.id, m.workspace_id, m.user_id, m.role, m.created_at, m.updated_at, u.email, u.name, u.avatar_url").
		Joins("JOIN users u ON u.id = m.user_id").
		Where("m.workspace_id = ?", workspaceID).
		Order("m.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("멤버 목록 조회 실패: %w", err)
	}

	profiles := make([]*entity.MemberProfile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, &entity.MemberProfile{
			WorkspaceMember: entity.WorkspaceMember{
				ID:          row.ID,
				WorkspaceID: row.WorkspaceID,
				UserID:      row.UserID,
				Role:        entity.Role(row.Role),
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			Email:     row.Email,
			Name:      row.Name,
			AvatarURL: row.AvatarURL,
		})
	}
	return profiles, nil
}
