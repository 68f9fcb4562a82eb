package http

import (
	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase"
	"go.uber.org/zap"
)

// Handlers all HTTP handlers of the API
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Workspace *WorkspaceHandler
	Invite    *InviteHandler
	Project   *ProjectHandler
	Task      *TaskHandler
	Comment   *CommentHandler
}

// NewHandlers wires handlers to their use cases
func NewHandlers(logger *zap.Logger, useCases *usecase.UseCases, cookie CookieConfig, appURL string) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(logger, useCases.Auth, cookie, appURL),
		User:      NewUserHandler(logger, useCases.Auth, cookie),
		Workspace: NewWorkspaceHandler(logger, useCases.Workspace, useCases.Membership, useCases.AuditLog),
		Invite:    NewInviteHandler(logger, useCases.Invite),
		Project:   NewProjectHandler(logger, useCases.Project),
		Task:      NewTaskHandler(logger, useCases.Task),
		Comment:   NewCommentHandler(logger, useCases.Comment, useCases.Attachment),
	}
}

// RegisterRoutes mounts the API under v1. Everything except the auth group requires a token.
func RegisterRoutes(v1 *echo.Group, h *Handlers, requireAuth echo.MiddlewareFunc, session echo.MiddlewareFunc) {
	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout)
	auth.POST("/verify-email", h.Auth.VerifyEmail)
	auth.POST("/resend-verification", h.Auth.ResendVerification)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	oauth := auth.Group("/oauth", session)
	oauth.GET("/:provider", h.Auth.OAuthStart)
	oauth.GET("/:provider/callback", h.Auth.OAuthCallback)

	// Protected routes
	protected := v1.Group("", requireAuth)

	me := protected.Group("/me")
	me.GET("", h.User.Me)
	me.PATCH("", h.User.UpdateProfile)
	me.DELETE("", h.User.DeleteAccount)
	me.PUT("/password", h.User.ChangePassword)
	me.PUT("/avatar", h.User.UploadAvatar)

	workspaces := protected.Group("/workspaces")
	workspaces.POST("", h.Workspace.Create)
	workspaces.GET("", h.Workspace.List)
	workspaces.GET("/:workspaceId", h.Workspace.Get)
	workspaces.PATCH("/:workspaceId", h.Workspace.Update)
	workspaces.DELETE("/:workspaceId", h.Workspace.Delete)
	workspaces.PUT("/:workspaceId/image", h.Workspace.UploadImage)
	workspaces.GET("/:workspaceId/members", h.Workspace.ListMembers)
	workspaces.PATCH("/:workspaceId/members/:userId", h.Workspace.UpdateMemberRole)
	workspaces.DELETE("/:workspaceId/members/:userId", h.Workspace.RemoveMember)
	workspaces.POST("/:workspaceId/leave", h.Workspace.Leave)
	workspaces.POST("/:workspaceId/transfer", h.Workspace.Transfer)
	workspaces.GET("/:workspaceId/audit-logs", h.Workspace.AuditLogs)

	workspaces.POST("/:workspaceId/invites", h.Invite.Issue)
	workspaces.GET("/:workspaceId/invites", h.Invite.ListPending)
	workspaces.POST("/:workspaceId/invites/accept", h.Invite.Accept)
	workspaces.DELETE("/:workspaceId/invites/:inviteId", h.Invite.Revoke)

	workspaces.POST("/:workspaceId/projects", h.Project.Create)
	workspaces.GET("/:workspaceId/projects", h.Project.List)

	projects := protected.Group("/projects")
	projects.GET("/:projectId", h.Project.Get)
	projects.PATCH("/:projectId", h.Project.Update)
	projects.DELETE("/:projectId", h.Project.Delete)
	projects.POST("/:projectId/tasks", h.Task.Create)
	projects.GET("/:projectId/tasks", h.Task.List)

	tasks := protected.Group("/tasks")
	tasks.GET("/:taskId", h.Task.Get)
	tasks.PATCH("/:taskId", h.Task.Update)
	tasks.DELETE("/:taskId", h.Task.Delete)
	tasks.POST("/:taskId/move", h.Task.Move)
	tasks.POST("/:taskId/comments", h.Comment.CreateComment)
	tasks.GET("/:taskId/comments", h.Comment.ListComments)
	tasks.POST("/:taskId/attachments", h.Comment.AddAttachment)
	tasks.GET("/:taskId/attachments", h.Comment.ListAttachments)

	protected.PATCH("/comments/:commentId", h.Comment.UpdateComment)
	protected.DELETE("/comments/:commentId", h.Comment.DeleteComment)
	protected.DELETE("/attachments/:attachmentId", h.Comment.DeleteAttachment)
}
