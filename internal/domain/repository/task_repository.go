package repository

import (
	"context"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
)

// TaskField 작업 부분 업데이트 단위
type TaskField string

const (
	TaskFieldTitle       TaskField = "title"
	TaskFieldDescription TaskField = "description"
	TaskFieldStatus      TaskField = "status"
	TaskFieldPriority    TaskField = "priority"
	TaskFieldTags        TaskField = "tags"
	TaskFieldStartDate   TaskField = "start_date"
	TaskFieldDueDate     TaskField = "due_date"
	TaskFieldPoints      TaskField = "points"
	TaskFieldParent      TaskField = "parent"
)

// TaskRepository 작업 저장소
type TaskRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Task, error)
	Create(ctx context.Context, task *entity.Task) error
	// Update fields로 지정한 컬럼만 기록합니다. 작업이 없으면 ErrNotFound를 반환합니다
	Update(ctx context.Context, task *entity.Task, fields ...TaskField) error

	// Query 조회 조건에 따라 작업 목록을 반환합니다. 다음 페이지가 있으면 hasMore가 true입니다
	Query(ctx context.Context, query entity.TaskQuery) (tasks []*entity.Task, hasMore bool, err error)

	// ListSubtasks 하위 작업 목록
	ListSubtasks(ctx context.Context, parentID string) ([]*entity.Task, error)

	// CountSubtasks 하위 작업 수
	CountSubtasks(ctx context.Context, parentID string) (int64, error)

	// MoveToProject 작업과 하위 작업의 프로젝트를 변경합니다
	MoveToProject(ctx context.Context, taskID, projectID string) error

	// AssigneeIDs 담당자 ID 목록
	AssigneeIDs(ctx context.Context, taskID string) ([]string, error)

	// ReplaceAssignees 담당자 집합을 주어진 목록으로 교체합니다. 같은 목록으로 다시 호출해도 결과가 같습니다
	ReplaceAssignees(ctx context.Context, taskID string, userIDs []string) error

	// DeleteAssignmentsByUser 사용자의 모든 담당 지정 삭제
	DeleteAssignmentsByUser(ctx context.Context, userID string) error
	// DeleteAssignmentsInWorkspace 워크스페이스 내 작업에 대한 사용자의 담당 지정 삭제
	DeleteAssignmentsInWorkspace(ctx context.Context, workspaceID, userID string) error

	// DeleteCascade 작업과 하위 작업, 그 댓글/첨부/담당자를 삭제합니다
	DeleteCascade(ctx context.Context, id string) error
}

// CommentRepository 댓글 저장소
type CommentRepository interface {
	FindByID(ctx context.Context, id string) (*entity.TaskComment, error)
	ListByTask(ctx context.Context, taskID string) ([]*entity.TaskComment, error)
	Create(ctx context.Context, comment *entity.TaskComment) error
	Update(ctx context.Context, comment *entity.TaskComment) error
	Delete(ctx context.Context, id string) error
}

// AttachmentRepository 첨부 저장소
type AttachmentRepository interface {
	FindByID(ctx context.Context, id string) (*entity.TaskAttachment, error)
	ListByTask(ctx context.Context, taskID string) ([]*entity.TaskAttachment, error)
	Create(ctx context.Context, attachment *entity.TaskAttachment) error
	Delete(ctx context.Context, id string) error
}
