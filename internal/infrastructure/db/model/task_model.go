package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProjectModel 프로젝트 모델
type ProjectModel struct {
	ID          string    `gorm:"type:varchar(16);primaryKey"`
	WorkspaceID string    `gorm:"type:varchar(16);not null;index"`
	Name        string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text"`
	CreatorID   string    `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (ProjectModel) TableName() string {
	return "projects"
}

// TaskModel 작업 모델
type TaskModel struct {
	ID          string                      `gorm:"type:varchar(16);primaryKey"`
	ProjectID   string                      `gorm:"type:varchar(16);not null;index"`
	ParentID    *string                     `gorm:"type:varchar(16);index"`
	Title       string                      `gorm:"size:500;not null"`
	Description string                      `gorm:"type:text"`
	Status      string                      `gorm:"size:16;not null;index"`
	Priority    string                      `gorm:"size:16;not null"`
	Tags        datatypes.JSONSlice[string] `gorm:"not null"`
	StartDate   *time.Time                  `gorm:"column:start_date"`
	DueDate     *time.Time                  `gorm:"index"`
	Points      decimal.NullDecimal         `gorm:"type:numeric(8,2)"`
	CreatorID   string                      `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
}

func (TaskModel) TableName() string {
	return "tasks"
}

// TaskAssignmentModel 작업 담당자 모델
type TaskAssignmentModel struct {
	TaskID    string    `gorm:"type:varchar(16);primaryKey"`
	UserID    string    `gorm:"type:varchar(16);primaryKey;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (TaskAssignmentModel) TableName() string {
	return "task_assignments"
}

// TaskCommentModel 댓글 모델
type TaskCommentModel struct {
	ID        string    `gorm:"type:varchar(16);primaryKey"`
	TaskID    string    `gorm:"type:varchar(16);not null;index"`
	AuthorID  string    `gorm:"type:varchar(16);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (TaskCommentModel) TableName() string {
	return "task_comments"
}

// TaskAttachmentModel 링크 첨부 모델
type TaskAttachmentModel struct {
	ID         string    `gorm:"type:varchar(16);primaryKey"`
	TaskID     string    `gorm:"type:varchar(16);not null;index"`
	UploaderID string    `gorm:"type:varchar(16);not null"`
	Name       string    `gorm:"size:255;not null"`
	URL        string    `gorm:"size:2048;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (TaskAttachmentModel) TableName() string {
	return "task_attachments"
}
