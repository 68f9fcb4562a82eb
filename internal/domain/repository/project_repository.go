package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
)

// ProjectField 프로젝트 부분 업데이트 단위
type ProjectField string

const (
	ProjectFieldName        ProjectField = "name"
	ProjectFieldDescription ProjectField = "description"
)

// ProjectRepository 프로젝트 저장소
type ProjectRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Project, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.Project, error)
	Create(ctx context.Context, project *entity.Project) error
	// Update fields로 지정한 컬럼만 기록합니다. 프로젝트가 없으면 ErrNotFound를 반환합니다
	Update(ctx context.Context, project *entity.Project, fields ...ProjectField) error

	// DeleteCascade 프로젝트와 소속 작업, 댓글, 첨부, 담당자를 삭제합니다
	DeleteCascade(ctx context.Context, id string) error
}
