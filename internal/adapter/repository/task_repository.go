package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	infradb "github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 우선순위 정렬용 순위. 높을수록 긴급합니다.
const priorityRankExpr = "CASE priority WHEN 'LOW' THEN 0 WHEN 'NORMAL' THEN 1 WHEN 'HIGH' THEN 2 WHEN 'URGENT' THEN 3 ELSE 1 END"

// likeEscaper LIKE 패턴의 와일드카드를 문자 그대로 비교하도록 이스케이프합니다
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// TaskRepositoryImpl 작업 저장소 구현체
type TaskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository 작업 저장소 생성
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func toTaskEntity(m *model.TaskModel) *entity.Task {
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &entity.Task{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		ParentID:    m.ParentID,
		Title:       m.Title,
		Description: m.Description,
		Status:      entity.TaskStatus(m.Status),
		Priority:    entity.TaskPriority(m.Priority),
		Tags:        tags,
		StartDate:   m.StartDate,
		DueDate:     m.DueDate,
		Points:      m.Points,
		CreatorID:   m.CreatorID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toTaskModel(t *entity.Task) *model.TaskModel {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return &model.TaskModel{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		ParentID:    t.ParentID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Tags:        datatypes.JSONSlice[string](tags),
		StartDate:   t.StartDate,
		DueDate:     t.DueDate,
		Points:      t.Points,
		CreatorID:   t.CreatorID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskEntities(models []model.TaskModel) []*entity.Task {
	tasks := make([]*entity.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, toTaskEntity(&models[i]))
	}
	return tasks
}

func (r *TaskRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	var m model.TaskModel
	if err := infradb.Conn(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("작업 조회 실패: %w", err)
	}
	return toTaskEntity(&m), nil
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entity.Task) error {
	m := toTaskModel(task)
	if err := infradb.Conn(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("작업 생성 실패: %w", err)
	}
	task.CreatedAt = m.CreatedAt
	task.UpdatedAt = m.UpdatedAt
	return nil
}

var taskColumns = map[repository.TaskField][]string{
	repository.TaskFieldTitle:       {"title"},
	repository.TaskFieldDescription: {"description"},
	repository.TaskFieldStatus:      {"status"},
	repository.TaskFieldPriority:    {"priority"},
	repository.TaskFieldTags:        {"tags"},
	repository.TaskFieldStartDate:   {"start_date"},
	repository.TaskFieldDueDate:     {"due_date"},
	repository.TaskFieldPoints:      {"points"},
	repository.TaskFieldParent:      {"parent_id"},
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entity.Task, fields ...repository.TaskField) error {
	if len(fields) == 0 {
		return nil
	}
	columns, err := columnsOf(fields, taskColumns)
	if err != nil {
		return err
	}

	m := toTaskModel(task)
	if err := updateColumns(infradb.Conn(ctx, r.db), m, task.ID, columns); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("작업 업데이트 실패: %w", err)
	}
	task.UpdatedAt = m.UpdatedAt
	return nil
}

// Query 필터와 정렬을 적용해 limit+1건을 읽고 다음 페이지 존재 여부를 판단합니다
func (r *TaskRepositoryImpl) Query(ctx context.Context, query entity.TaskQuery) ([]*entity.Task, bool, error) {
	conn := infradb.Conn(ctx, r.db)
	tx := conn.Model(&model.TaskModel{}).Where("project_id = ?", query.ProjectID())

	filter := query.Filter()
	if len(filter.Statuses) > 0 {
		tx = tx.Where("status IN ?", filter.Statuses)
	}
	if len(filter.Priorities) > 0 {
		tx = tx.Where("priority IN ?", filter.Priorities)
	}
	if filter.AssigneeID != "" {
		assigned := conn.Model(&model.TaskAssignmentModel{}).Select("task_id").Where("user_id = ?", filter.AssigneeID)
		tx = tx.Where("id IN (?)", assigned)
	}
	if filter.Tag != "" {
		var err error
		if tx, err = whereHasTag(tx, filter.Tag); err != nil {
			return nil, false, err
		}
	}
	switch {
	case filter.ParentID != "":
		tx = tx.Where("parent_id = ?", filter.ParentID)
	case filter.RootOnly:
		tx = tx.Where("parent_id IS NULL")
	}
	if filter.Search != "" {
		tx = tx.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(filter.Search))+"%")
	}
	if filter.DueBefore != nil {
		tx = tx.Where("due_date IS NOT NULL AND due_date < ?", *filter.DueBefore)
	}

	for _, key := range query.Sort() {
		tx = tx.Order(orderClause(key))
	}
	tx = tx.Order("id ASC")

	var models []model.TaskModel
	if err := tx.Offset(query.Offset()).Limit(query.Limit() + 1).Find(&models).Error; err != nil {
		return nil, false, fmt.Errorf("작업 목록 조회 실패: %w", err)
	}

	hasMore := len(models) > query.Limit()
	if hasMore {
		models = models[:query.Limit()]
	}
	return toTaskEntities(models), hasMore, nil
}

// whereHasTag 태그 포함 조건. JSON 배열 검색 문법이 드라이버마다 다릅니다.
func whereHasTag(tx *gorm.DB, tag string) (*gorm.DB, error) {
	if tx.Dialector.Name() == infradb.DriverPostgres {
		raw, err := json.Marshal([]string{tag})
		if err != nil {
			return nil, fmt.Errorf("태그 조건 생성 실패: %w", err)
		}
		return tx.Where("tags @> ?::jsonb", string(raw)), nil
	}
	return tx.Where("EXISTS (SELECT 1 FROM json_each(tasks.tags) WHERE json_each.value = ?)", tag), nil
}

// orderClause 정렬 키를 ORDER BY 절로 변환합니다. 마감일이 없는 작업은 항상 마지막입니다.
func orderClause(key entity.SortKey) string {
	dir := "ASC"
	if key.Desc {
		dir = "DESC"
	}
	switch key.Field {
	case entity.SortByDueDate:
		return "CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date " + dir
	case entity.SortByPriority:
		return priorityRankExpr + " " + dir
	case entity.SortByTitle:
		return "title " + dir
	default:
		return "created_at " + dir
	}
}

func (r *TaskRepositoryImpl) ListSubtasks(ctx context.Context, parentID string) ([]*entity.Task, error) {
	var models []model.TaskModel
	err := infradb.Conn(ctx, r.db).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("하위 작업 조회 실패: %w", err)
	}
	return toTaskEntities(models), nil
}

func (r *TaskRepositoryImpl) CountSubtasks(ctx context.Context, parentID string) (int64, error) {
	var count int64
	if err := infradb.Conn(ctx, r.db).Model(&model.TaskModel{}).Where("parent_id = ?", parentID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("하위 작업 수 조회 실패: %w", err)
	}
	return count, nil
}

// MoveToProject 작업과 하위 작업을 함께 옮깁니다. 하위 작업을 단독으로 옮기면 상위 연결이 해제됩니다.
func (r *TaskRepositoryImpl) MoveToProject(ctx context.Context, taskID, projectID string) error {
	return infradb.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.TaskModel{}).
			Where("id = ? OR parent_id = ?", taskID, taskID).
			Update("project_id", projectID).Error
		if err != nil {
			return fmt.Errorf("작업 이동 실패: %w", err)
		}
		err = tx.Model(&model.TaskModel{}).
			Where("id = ? AND parent_id IS NOT NULL", taskID).
			Update("parent_id", nil).Error
		if err != nil {
			return fmt.Errorf("상위 작업 해제 실패: %w", err)
		}
		return nil
	})
}

func (r *TaskRepositoryImpl) AssigneeIDs(ctx context.Context, taskID string) ([]string, error) {
	ids := []string{}
	err := infradb.Conn(ctx, r.db).Model(&model.TaskAssignmentModel{}).
		Where("task_id = ?", taskID).
		Order("created_at ASC, user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("담당자 조회 실패: %w", err)
	}
	return ids, nil
}

// ReplaceAssignees 목록에 없는 담당자는 삭제하고 없던 담당자만 추가합니다
func (r *TaskRepositoryImpl) ReplaceAssignees(ctx context.Context, taskID string, userIDs []string) error {
	wanted := make([]string, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		wanted = append(wanted, id)
	}

	return infradb.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		remove := tx.Where("task_id = ?", taskID)
		if len(wanted) > 0 {
			remove = remove.Where("user_id NOT IN ?", wanted)
		}
		if err := remove.Delete(&model.TaskAssignmentModel{}).Error; err != nil {
			return fmt.Errorf("담당자 삭제 실패: %w", err)
		}

		var existing []string
		if err := tx.Model(&model.TaskAssignmentModel{}).Where("task_id = ?", taskID).Pluck("user_id", &existing).Error; err != nil {
			return fmt.Errorf("담당자 조회 실패: %w", err)
		}
		for _, id := range existing {
			delete(seen, id)
		}

		for _, id := range wanted {
			if _, missing := seen[id]; !missing {
				continue
			}
			if err := tx.Create(&model.TaskAssignmentModel{TaskID: taskID, UserID: id}).Error; err != nil {
				return fmt.Errorf("담당자 추가 실패: %w", err)
			}
		}
		return nil
	})
}

func (r *TaskRepositoryImpl) DeleteAssignmentsByUser(ctx context.Context, userID string) error {
	if err := infradb.Conn(ctx, r.db).Where("user_id = ?", userID).Delete(&model.TaskAssignmentModel{}).Error; err != nil {
		return fmt.Errorf("사용자 담당 지정 삭제 실패: %w", err)
	}
	return nil
}

func (r *TaskRepositoryImpl) DeleteAssignmentsInWorkspace(ctx context.Context, workspaceID, userID string) error {
	conn := infradb.Conn(ctx, r.db)
	projectIDs := conn.Model(&model.ProjectModel{}).Select("id").Where("workspace_id = ?", workspaceID)
	taskIDs := conn.Model(&model.TaskModel{}).Select("id").Where("project_id IN (?)", projectIDs)

	err := conn.Where("user_id = ? AND task_id IN (?)", userID, taskIDs).Delete(&model.TaskAssignmentModel{}).Error
	if err != nil {
		return fmt.Errorf("워크스페이스 담당 지정 삭제 실패: %w", err)
	}
	return nil
}

func (r *TaskRepositoryImpl) DeleteCascade(ctx context.Context, id string) error {
	return infradb.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&model.TaskModel{}).Where("id = ? OR parent_id = ?", id, id).Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("삭제 대상 조회 실패: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("task_id IN ?", ids).Delete(&model.TaskCommentModel{}).Error; err != nil {
			return fmt.Errorf("댓글 삭제 실패: %w", err)
		}
		if err := tx.Where("task_id IN ?", ids).Delete(&model.TaskAttachmentModel{}).Error; err != nil {
			return fmt.Errorf("첨부 삭제 실패: %w", err)
		}
		if err := tx.Where("task_id IN ?", ids).Delete(&model.TaskAssignmentModel{}).Error; err != nil {
			return fmt.Errorf("담당자 삭제 실패: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&model.TaskModel{}).Error; err != nil {
			return fmt.Errorf("작업 삭제 실패: %w", err)
		}
		return nil
	})
}
