package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
)

// success writes the {"status":"success","data":...} envelope
func success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, apperrors.Envelope{Status: apperrors.StatusSuccess, Data: data})
}

// bind decodes and validates a request body
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return domainErrors.Validation("invalid request body")
	}
	return c.Validate(req)
}

// UserResponse public view of a user
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	AvatarURL     *string   `json:"avatarUrl"`
	EmailVerified bool      `json:"emailVerified"`
	Provider      *string   `json:"provider,omitempty"`
	HasPassword   bool      `json:"hasPassword"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		AvatarURL:     u.AvatarURL,
		EmailVerified: u.EmailVerified,
		Provider:      u.Provider,
		HasPassword:   u.HasPassword(),
		CreatedAt:     u.CreatedAt,
	}
}

// LoginResponse issued token and its owner
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

func toLoginResponse(r *dto.LoginResult) LoginResponse {
	return LoginResponse{
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		User:      toUserResponse(r.User),
	}
}

// WorkspaceResponse workspace view, with the caller's authority when known
type WorkspaceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  *string   `json:"imageUrl"`
	OwnerID   string    `json:"ownerId"`
	Authority string    `json:"authority,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toWorkspaceResponse(w *entity.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:        w.ID,
		Name:      w.Name,
		ImageURL:  w.ImageURL,
		OwnerID:   w.OwnerID,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// MemberResponse workspace member with profile
type MemberResponse struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl"`
	Role      string    `json:"role"`
	IsOwner   bool      `json:"isOwner"`
	JoinedAt  time.Time `json:"joinedAt"`
}

func toMemberResponse(m *entity.MemberProfile) MemberResponse {
	return MemberResponse{
		UserID:    m.UserID,
		Email:     m.Email,
		Name:      m.Name,
		AvatarURL: m.AvatarURL,
		Role:      string(m.Role),
		IsOwner:   m.IsOwner,
		JoinedAt:  m.CreatedAt,
	}
}

// MembershipResponse a single membership row
type MembershipResponse struct {
	WorkspaceID string    `json:"workspaceId"`
	UserID      string    `json:"userId"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toMembershipResponse(m *entity.WorkspaceMember) MembershipResponse {
	return MembershipResponse{
		WorkspaceID: m.WorkspaceID,
		UserID:      m.UserID,
		Role:        string(m.Role),
		CreatedAt:   m.CreatedAt,
	}
}

// InviteResponse invite without its token
type InviteResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	InviterID string     `json:"inviterId,omitempty"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func toInviteReceipt(r *dto.InviteReceipt) InviteResponse {
	return InviteResponse{
		ID:        r.ID,
		Email:     r.Email,
		Role:      string(r.Role),
		ExpiresAt: r.ExpiresAt,
	}
}

func toInviteResponse(i *entity.WorkspaceInvite) InviteResponse {
	createdAt := i.CreatedAt
	return InviteResponse{
		ID:        i.ID,
		Email:     i.Email,
		Role:      string(i.Role),
		InviterID: i.InviterID,
		ExpiresAt: i.ExpiresAt,
		CreatedAt: &createdAt,
	}
}

// AuditLogResponse audit entry
type AuditLogResponse struct {
	ID        string                 `json:"id"`
	ActorID   string                 `json:"actorId"`
	Type      string                 `json:"type"`
	Content   map[string]interface{} `json:"content"`
	CreatedAt time.Time              `json:"createdAt"`
}

func toAuditLogResponse(l *entity.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:        l.ID,
		ActorID:   l.ActorID,
		Type:      string(l.Type),
		Content:   l.Content,
		CreatedAt: l.CreatedAt,
	}
}

// ProjectResponse project view
type ProjectResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspaceId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   string    `json:"creatorId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProjectResponse(p *entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		Description: p.Description,
		CreatorID:   p.CreatorID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// TaskResponse task view. Assignees and subtasks are present on detail responses only.
type TaskResponse struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"projectId"`
	ParentID    *string        `json:"parentId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Priority    string         `json:"priority"`
	Tags        []string       `json:"tags"`
	StartDate   *time.Time     `json:"startDate"`
	DueDate     *time.Time     `json:"dueDate"`
	Points      *string        `json:"points"`
	CreatorID   string         `json:"creatorId"`
	AssigneeIDs []string       `json:"assigneeIds,omitempty"`
	Subtasks    []TaskResponse `json:"subtasks,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func toTaskResponse(t *entity.Task) TaskResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}

	var points *string
	if t.Points.Valid {
		s := t.Points.Decimal.String()
		points = &s
	}

	return TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		ParentID:    t.ParentID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Tags:        tags,
		StartDate:   t.StartDate,
		DueDate:     t.DueDate,
		Points:      points,
		CreatorID:   t.CreatorID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskDetailResponse(d *entity.TaskDetail) TaskResponse {
	resp := toTaskResponse(&d.Task)
	resp.AssigneeIDs = d.AssigneeIDs
	if resp.AssigneeIDs == nil {
		resp.AssigneeIDs = []string{}
	}
	resp.Subtasks = toTaskResponses(d.Subtasks)
	return resp
}

func toTaskResponses(tasks []*entity.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

// TaskPageResponse one page of tasks
type TaskPageResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	NextCursor string         `json:"nextCursor,omitempty"`
	HasMore    bool           `json:"hasMore"`
}

// CommentResponse comment view
type CommentResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCommentResponse(m *entity.TaskComment) CommentResponse {
	return CommentResponse{
		ID:        m.ID,
		TaskID:    m.TaskID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// AttachmentResponse link attachment view
type AttachmentResponse struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"taskId"`
	UploaderID string    `json:"uploaderId"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toAttachmentResponse(a *entity.TaskAttachment) AttachmentResponse {
	return AttachmentResponse{
		ID:         a.ID,
		TaskID:     a.TaskID,
		UploaderID: a.UploaderID,
		Name:       a.Name,
		URL:        a.URL,
		CreatedAt:  a.CreatedAt,
	}
}

// MessageResponse plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}
