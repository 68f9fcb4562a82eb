package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskStatus 작업 상태
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusReview     TaskStatus = "REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
	TaskStatusCanceled   TaskStatus = "CANCELED"
)

// Valid 허용된 상태인지 확인
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone, TaskStatusCanceled:
		return true
	}
	return false
}

// TaskPriority 작업 우선순위
type TaskPriority string

const (
	TaskPriorityUrgent TaskPriority = "URGENT"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityNormal TaskPriority = "NORMAL"
	TaskPriorityLow    TaskPriority = "LOW"
)

// Valid 허용된 우선순위인지 확인
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityUrgent, TaskPriorityHigh, TaskPriorityNormal, TaskPriorityLow:
		return true
	}
	return false
}

// Task 프로젝트에 속한 작업. ParentID가 있으면 하위 작업입니다.
type Task struct {
	ID          string
	ProjectID   string
	ParentID    *string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	Tags        []string
	StartDate   *time.Time
	DueDate     *time.Time
	Points      decimal.NullDecimal
	CreatorID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsSubtask 하위 작업 여부
func (t *Task) IsSubtask() bool {
	return t.ParentID != nil
}

// TaskAssignment 작업 담당자
type TaskAssignment struct {
	TaskID    string
	UserID    string
	CreatedAt time.Time
}

// TaskDetail 담당자와 하위 작업을 포함한 작업 조회 결과
type TaskDetail struct {
	Task
	AssigneeIDs []string
	Subtasks    []*Task
}
