package dto

import "github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"

// ResourceType kinds of workspace scoped resources
type ResourceType string

const (
	ResourceWorkspace  ResourceType = "workspace"
	ResourceProject    ResourceType = "project"
	ResourceTask       ResourceType = "task"
	ResourceComment    ResourceType = "comment"
	ResourceAttachment ResourceType = "attachment"
)

// ProjectAccess a project with its workspace and the caller's authority there
type ProjectAccess struct {
	Workspace *entity.Workspace
	Project   *entity.Project
	Authority entity.Authority
}

// TaskAccess a task with its loaded ownership chain
type TaskAccess struct {
	ProjectAccess
	Task *entity.Task
}

// CommentAccess a comment with its loaded ownership chain
type CommentAccess struct {
	TaskAccess
	Comment *entity.TaskComment
}

// AttachmentAccess an attachment with its loaded ownership chain
type AttachmentAccess struct {
	TaskAccess
	Attachment *entity.TaskAttachment
}
