package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

// TaskUseCase task implementation
type TaskUseCase struct {
	logger     *zap.Logger
	transactor repository.Transactor
	taskRepo   repository.TaskRepository
	access     interfaces.AccessUseCase
	cursors    *CursorManager
	authorizer workspaceAuthorizer
}

// NewTaskUseCase creates a new task use case
func NewTaskUseCase(
	logger *zap.Logger,
	repos *repository.Repositories,
	access interfaces.AccessUseCase,
	cursors *CursorManager,
) interfaces.TaskUseCase {
	return &TaskUseCase{
		logger:     logger,
		transactor: repos.Transactor,
		taskRepo:   repos.Task,
		access:     access,
		cursors:    cursors,
		authorizer: newWorkspaceAuthorizer(repos.Workspace, repos.Member),
	}
}

func (uc *TaskUseCase) Create(ctx context.Context, userID, projectID string, params dto.CreateTaskParams) (*entity.TaskDetail, error) {
	access, err := uc.access.ProjectFor(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, domainErrors.Validation("task title is required")
	}
	status := params.Status
	if status == "" {
		status = entity.TaskStatusTodo
	}
	if !status.Valid() {
		return nil, domainErrors.Validation("invalid task status")
	}
	priority := params.Priority
	if priority == "" {
		priority = entity.TaskPriorityNormal
	}
	if !priority.Valid() {
		return nil, domainErrors.Validation("invalid task priority")
	}
	if err := validateDates(params.StartDate, params.DueDate); err != nil {
		return nil, err
	}

	id, err := GenerateUniqueID(PrefixTask)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate task id")
	}
	task := &entity.Task{
		ID:          id,
		ProjectID:   projectID,
		Title:       title,
		Description: params.Description,
		Status:      status,
		Priority:    priority,
		Tags:        normalizeTags(params.Tags),
		StartDate:   params.StartDate,
		DueDate:     params.DueDate,
		CreatorID:   userID,
	}
	if params.Points != nil {
		if params.Points.IsNegative() {
			return nil, domainErrors.Validation("points cannot be negative")
		}
		task.Points = decimal.NewNullDecimal(*params.Points)
	}

	if params.ParentID != nil && *params.ParentID != "" {
		if err := uc.checkParent(ctx, task, *params.ParentID); err != nil {
			return nil, err
		}
		task.ParentID = params.ParentID
	}
	if err := uc.checkAssignees(ctx, access.Workspace, params.AssigneeIDs); err != nil {
		return nil, err
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.taskRepo.Create(ctx, task); err != nil {
			return apperrors.Dependency(err, "failed to create task")
		}
		if len(params.AssigneeIDs) > 0 {
			if err := uc.taskRepo.ReplaceAssignees(ctx, task.ID, params.AssigneeIDs); err != nil {
				return apperrors.Dependency(err, "failed to assign task")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.detail(ctx, task)
}

// List pages through the project's tasks. The cursor is an opaque signed offset.
func (uc *TaskUseCase) List(ctx context.Context, userID, projectID string, params dto.ListTasksParams) (*dto.TaskPage, error) {
	if _, err := uc.access.ProjectFor(ctx, userID, projectID); err != nil {
		return nil, err
	}

	offset := 0
	if params.Cursor != "" {
		decoded, err := uc.cursors.DecodeCursor(projectID, params.Cursor)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, domainErrors.ErrInvalidCursor.Message(), err)
		}
		offset = decoded
	}

	for _, status := range params.Filter.Statuses {
		if !status.Valid() {
			return nil, domainErrors.Validation("invalid status filter: " + string(status))
		}
	}
	for _, priority := range params.Filter.Priorities {
		if !priority.Valid() {
			return nil, domainErrors.Validation("invalid priority filter: " + string(priority))
		}
	}
	for _, key := range params.Sort {
		if !key.Field.Valid() {
			return nil, domainErrors.Validation("invalid sort field: " + string(key.Field))
		}
	}

	query := entity.NewTaskQuery(projectID).
		WithFilter(params.Filter).
		WithSort(params.Sort...).
		WithPage(params.Limit, offset)

	tasks, hasMore, err := uc.taskRepo.Query(ctx, query)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to list tasks")
	}

	page := &dto.TaskPage{Tasks: tasks, HasMore: hasMore}
	if hasMore {
		page.NextCursor = uc.cursors.EncodeCursor(projectID, query.Offset()+len(tasks))
	}
	return page, nil
}

func (uc *TaskUseCase) Get(ctx context.Context, userID, taskID string) (*entity.TaskDetail, error) {
	access, err := uc.access.TaskFor(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, access.Task)
}

func (uc *TaskUseCase) Update(ctx context.Context, userID, taskID string, params dto.UpdateTaskParams) (*entity.TaskDetail, error) {
	access, err := uc.access.TaskFor(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	task := access.Task
	var fields []repository.TaskField

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, domainErrors.Validation("task title is required")
		}
		task.Title = title
		fields = append(fields, repository.TaskFieldTitle)
	}
	if params.Description != nil {
		task.Description = *params.Description
		fields = append(fields, repository.TaskFieldDescription)
	}
	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, domainErrors.Validation("invalid task status")
		}
		task.Status = *params.Status
		fields = append(fields, repository.TaskFieldStatus)
	}
	if params.Priority != nil {
		if !params.Priority.Valid() {
			return nil, domainErrors.Validation("invalid task priority")
		}
		task.Priority = *params.Priority
		fields = append(fields, repository.TaskFieldPriority)
	}
	if params.Tags != nil {
		task.Tags = normalizeTags(*params.Tags)
		fields = append(fields, repository.TaskFieldTags)
	}
	switch {
	case params.ClearStartDate:
		task.StartDate = nil
		fields = append(fields, repository.TaskFieldStartDate)
	case params.StartDate != nil:
		task.StartDate = params.StartDate
		fields = append(fields, repository.TaskFieldStartDate)
	}
	switch {
	case params.ClearDueDate:
		task.DueDate = nil
		fields = append(fields, repository.TaskFieldDueDate)
	case params.DueDate != nil:
		task.DueDate = params.DueDate
		fields = append(fields, repository.TaskFieldDueDate)
	}
	if err := validateDates(task.StartDate, task.DueDate); err != nil {
		return nil, err
	}
	switch {
	case params.ClearPoints:
		task.Points = decimal.NullDecimal{}
		fields = append(fields, repository.TaskFieldPoints)
	case params.Points != nil:
		if params.Points.IsNegative() {
			return nil, domainErrors.Validation("points cannot be negative")
		}
		task.Points = decimal.NewNullDecimal(*params.Points)
		fields = append(fields, repository.TaskFieldPoints)
	}

	if params.ParentID != nil {
		if *params.ParentID == "" {
			task.ParentID = nil
			fields = append(fields, repository.TaskFieldParent)
		} else if task.ParentID == nil || *task.ParentID != *params.ParentID {
			if err := uc.checkReparent(ctx, task, *params.ParentID); err != nil {
				return nil, err
			}
			parentID := *params.ParentID
			task.ParentID = &parentID
			fields = append(fields, repository.TaskFieldParent)
		}
	}
	if params.AssigneeIDs != nil {
		if err := uc.checkAssignees(ctx, access.Workspace, *params.AssigneeIDs); err != nil {
			return nil, err
		}
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.taskRepo.Update(ctx, task, fields...); err != nil {
			return updateFailed(err, domainErrors.ErrTaskNotFound, "failed to update task")
		}
		if params.AssigneeIDs != nil {
			if err := uc.taskRepo.ReplaceAssignees(ctx, task.ID, *params.AssigneeIDs); err != nil {
				return apperrors.Dependency(err, "failed to update assignees")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.detail(ctx, task)
}

// Move relocates a task, and its subtasks, to another project of the same workspace.
// A subtask moved on its own becomes a root task in the target project.
func (uc *TaskUseCase) Move(ctx context.Context, userID, taskID, targetProjectID string) (*entity.TaskDetail, error) {
	access, err := uc.access.TaskFor(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	target, err := uc.access.ProjectFor(ctx, userID, targetProjectID)
	if err != nil {
		return nil, err
	}
	if target.Workspace.ID != access.Workspace.ID {
		return nil, domainErrors.ErrCrossWorkspaceMove
	}
	if target.Project.ID == access.Project.ID {
		return uc.detail(ctx, access.Task)
	}

	if err := uc.taskRepo.MoveToProject(ctx, taskID, targetProjectID); err != nil {
		return nil, apperrors.Dependency(err, "failed to move task")
	}

	moved, err := uc.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to reload task")
	}
	if moved == nil {
		return nil, domainErrors.ErrTaskNotFound
	}
	return uc.detail(ctx, moved)
}

// Delete removes the task with its subtasks, comments, attachments and assignments
func (uc *TaskUseCase) Delete(ctx context.Context, userID, taskID string) error {
	access, err := uc.access.TaskFor(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if err := uc.taskRepo.DeleteCascade(ctx, taskID); err != nil {
		return apperrors.Dependency(err, "failed to delete task")
	}

	uc.logger.Info("Task deleted",
		zap.String("task_id", taskID),
		zap.String("project_id", access.Project.ID),
		zap.String("actor_id", userID))
	return nil
}

// checkParent validates the parent of a new task
func (uc *TaskUseCase) checkParent(ctx context.Context, task *entity.Task, parentID string) error {
	parent, err := uc.taskRepo.FindByID(ctx, parentID)
	if err != nil {
		return apperrors.Dependency(err, "failed to load parent task")
	}
	if parent == nil || parent.ProjectID != task.ProjectID {
		return domainErrors.ErrCrossProjectParent
	}
	if parent.IsSubtask() {
		return domainErrors.ErrNestedSubtask
	}
	return nil
}

// checkReparent also rejects self parenting and tasks that already have subtasks
func (uc *TaskUseCase) checkReparent(ctx context.Context, task *entity.Task, parentID string) error {
	if parentID == task.ID {
		return domainErrors.ErrSelfParent
	}
	if err := uc.checkParent(ctx, task, parentID); err != nil {
		return err
	}

	count, err := uc.taskRepo.CountSubtasks(ctx, task.ID)
	if err != nil {
		return apperrors.Dependency(err, "failed to count subtasks")
	}
	if count > 0 {
		return domainErrors.ErrNestedSubtask
	}
	return nil
}

func (uc *TaskUseCase) checkAssignees(ctx context.Context, workspace *entity.Workspace, userIDs []string) error {
	for _, userID := range userIDs {
		member, err := uc.authorizer.isMember(ctx, workspace, userID)
		if err != nil {
			return err
		}
		if !member {
			return domainErrors.ErrNotAWorkspaceMember
		}
	}
	return nil
}

func (uc *TaskUseCase) detail(ctx context.Context, task *entity.Task) (*entity.TaskDetail, error) {
	assignees, err := uc.taskRepo.AssigneeIDs(ctx, task.ID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to load assignees")
	}

	subtasks := []*entity.Task{}
	if !task.IsSubtask() {
		subtasks, err = uc.taskRepo.ListSubtasks(ctx, task.ID)
		if err != nil {
			return nil, apperrors.Dependency(err, "failed to load subtasks")
		}
	}

	return &entity.TaskDetail{
		Task:        *task,
		AssigneeIDs: assignees,
		Subtasks:    subtasks,
	}, nil
}

func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}

func validateDates(start, due *time.Time) error {
	if start != nil && due != nil && due.Before(*start) {
		return domainErrors.Validation("due date cannot be before start date")
	}
	return nil
}
