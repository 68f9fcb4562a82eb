package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
)

// CreateProjectParams project creation parameters
type CreateProjectParams struct {
	Name        string
	Description string
}

// UpdateProjectParams project fields to change; nil means unchanged
type UpdateProjectParams struct {
	Name        *string
	Description *string
}

// CreateTaskParams task creation parameters
type CreateTaskParams struct {
	Title       string
	Description string
	Status      entity.TaskStatus
	Priority    entity.TaskPriority
	Tags        []string
	StartDate   *time.Time
	DueDate     *time.Time
	Points      *decimal.Decimal
	ParentID    *string
	AssigneeIDs []string
}

// UpdateTaskParams task fields to change; nil means unchanged.
// ParentID pointing to an empty string detaches the task from its parent.
type UpdateTaskParams struct {
	Title          *string
	Description    *string
	Status         *entity.TaskStatus
	Priority       *entity.TaskPriority
	Tags           *[]string
	StartDate      *time.Time
	ClearStartDate bool
	DueDate        *time.Time
	ClearDueDate   bool
	Points         *decimal.Decimal
	ClearPoints    bool
	ParentID       *string
	AssigneeIDs    *[]string
}

// ListTasksParams task listing parameters
type ListTasksParams struct {
	Filter entity.TaskFilter
	Sort   []entity.SortKey
	Limit  int
	Cursor string
}

// TaskPage one page of a task listing
type TaskPage struct {
	Tasks      []*entity.Task
	NextCursor string
	HasMore    bool
}

// CreateCommentParams comment creation parameters
type CreateCommentParams struct {
	Content string
}

// AddAttachmentParams link attachment parameters
type AddAttachmentParams struct {
	Name string
	URL  string
}
