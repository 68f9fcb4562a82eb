package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	infradb "github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db/model"
	"gorm.io/gorm"
)

// ProjectRepositoryImpl 프로젝트 저장소 구현체
type ProjectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository 프로젝트 저장소 생성
func NewProjectRepository(db *gorm.DB) repository.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func toProjectEntity(m *model.ProjectModel) *entity.Project {
	return &entity.Project{
		ID:          m.ID,
		WorkspaceID: m.WorkspaceID,
		Name:        m.Name,
		Description: m.Description,
		CreatorID:   m.CreatorID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toProjectModel(p *entity.Project) *model.ProjectModel {
	return &model.ProjectModel{
		ID:          p.ID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		Description: p.Description,
		CreatorID:   p.CreatorID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *ProjectRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var m model.ProjectModel
	if err := infradb.Conn(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("프로젝트 조회 실패: %w", err)
	}
	return toProjectEntity(&m), nil
}

func (r *ProjectRepositoryImpl) ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.Project, error) {
	var models []model.ProjectModel
	err := infradb.Conn(ctx, r.db).
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("프로젝트 목록 조회 실패: %w", err)
	}

	projects := make([]*entity.Project, 0, len(models))
	for i := range models {
		projects = append(projects, toProjectEntity(&models[i]))
	}
	return projects, nil
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *entity.Project) error {
	m := toProjectModel(project)
	if err := infradb.Conn(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("프로젝트 생성 실패: %w", err)
	}
	project.CreatedAt = m.CreatedAt
	project.UpdatedAt = m.UpdatedAt
	return nil
}

var projectColumns = map[repository.ProjectField][]string{
	repository.ProjectFieldName:        {"name"},
	repository.ProjectFieldDescription: {"description"},
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *entity.Project, fields ...repository.ProjectField) error {
	if len(fields) == 0 {
		return nil
	}
	columns, err := columnsOf(fields, projectColumns)
	if err != nil {
		return err
	}

	m := toProjectModel(project)
	if err := updateColumns(infradb.Conn(ctx, r.db), m, project.ID, columns); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("프로젝트 업데이트 실패: %w", err)
	}
	project.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ProjectRepositoryImpl) DeleteCascade(ctx context.Context, id string) error {
	return infradb.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&model.TaskModel{}).Select("id").Where("project_id = ?", id)

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&model.TaskCommentModel{}).Error; err != nil {
			return fmt.Errorf("댓글 삭제 실패: %w", err)
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&model.TaskAttachmentModel{}).Error; err != nil {
			return fmt.Errorf("첨부 삭제 실패: %w", err)
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&model.TaskAssignmentModel{}).Error; err != nil {
			return fmt.Errorf("담당자 삭제 실패: %w", err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.TaskModel{}).Error; err != nil {
			return fmt.Errorf("작업 삭제 실패: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&model.ProjectModel{}).Error; err != nil {
			return fmt.Errorf("프로젝트 삭제 실패: %w", err)
		}
		return nil
	})
}
