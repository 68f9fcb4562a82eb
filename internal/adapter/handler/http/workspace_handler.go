package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/http/middleware"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// WorkspaceHandler handles workspace, member and audit log requests
type WorkspaceHandler struct {
	logger     *zap.Logger
	workspaces interfaces.WorkspaceUseCase
	membership interfaces.MembershipUseCase
	auditLogs  interfaces.AuditLogUseCase
}

// NewWorkspaceHandler creates a new workspace handler instance
func NewWorkspaceHandler(
	logger *zap.Logger,
	workspaces interfaces.WorkspaceUseCase,
	membership interfaces.MembershipUseCase,
	auditLogs interfaces.AuditLogUseCase,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		logger:     logger,
		workspaces: workspaces,
		membership: membership,
		auditLogs:  auditLogs,
	}
}

type workspaceRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type updateWorkspaceRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN MEMBER"`
}

type transferRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// Create handles POST /api/v1/workspaces
func (h *WorkspaceHandler) Create(c echo.Context) error {
	var req workspaceRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	workspace, err := h.workspaces.Create(c.Request().Context(), middleware.UserID(c), dto.CreateWorkspaceParams{
		Name: req.Name,
	})
	if err != nil {
		return err
	}

	resp := toWorkspaceResponse(workspace)
	resp.Authority = entity.AuthorityOwner.String()
	return success(c, http.StatusCreated, resp)
}

// List handles GET /api/v1/workspaces
func (h *WorkspaceHandler) List(c echo.Context) error {
	workspaces, err := h.workspaces.ListMine(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}

	resp := make([]WorkspaceResponse, 0, len(workspaces))
	for _, w := range workspaces {
		resp = append(resp, toWorkspaceResponse(w))
	}
	return success(c, http.StatusOK, resp)
}

// Get handles GET /api/v1/workspaces/:workspaceId
func (h *WorkspaceHandler) Get(c echo.Context) error {
	workspace, authority, err := h.workspaces.Get(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"))
	if err != nil {
		return err
	}

	resp := toWorkspaceResponse(workspace)
	resp.Authority = authority.String()
	return success(c, http.StatusOK, resp)
}

// Update handles PATCH /api/v1/workspaces/:workspaceId
func (h *WorkspaceHandler) Update(c echo.Context) error {
	var req updateWorkspaceRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	workspace, err := h.workspaces.Update(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"), dto.UpdateWorkspaceParams{
		Name: req.Name,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toWorkspaceResponse(workspace))
}

// UploadImage handles PUT /api/v1/workspaces/:workspaceId/image
func (h *WorkspaceHandler) UploadImage(c echo.Context) error {
	upload, closer, err := readImage(c)
	if err != nil {
		return err
	}
	defer closer.Close()

	workspace, err := h.workspaces.UploadImage(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"), upload)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toWorkspaceResponse(workspace))
}

// Delete handles DELETE /api/v1/workspaces/:workspaceId
func (h *WorkspaceHandler) Delete(c echo.Context) error {
	if err := h.workspaces.Delete(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId")); err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "workspace deleted"})
}

// ListMembers handles GET /api/v1/workspaces/:workspaceId/members
func (h *WorkspaceHandler) ListMembers(c echo.Context) error {
	members, err := h.membership.ListMembers(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"))
	if err != nil {
		return err
	}

	resp := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toMemberResponse(m))
	}
	return success(c, http.StatusOK, resp)
}

// UpdateMemberRole handles PATCH /api/v1/workspaces/:workspaceId/members/:userId
func (h *WorkspaceHandler) UpdateMemberRole(c echo.Context) error {
	var req roleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.membership.UpdateRole(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"), c.Param("userId"), entity.Role(req.Role))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "role updated"})
}

// RemoveMember handles DELETE /api/v1/workspaces/:workspaceId/members/:userId
func (h *WorkspaceHandler) RemoveMember(c echo.Context) error {
	if err := h.membership.RemoveMember(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"), c.Param("userId")); err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "member removed"})
}

// Leave handles POST /api/v1/workspaces/:workspaceId/leave
func (h *WorkspaceHandler) Leave(c echo.Context) error {
	if err := h.membership.Leave(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId")); err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "left workspace"})
}

// Transfer handles POST /api/v1/workspaces/:workspaceId/transfer
func (h *WorkspaceHandler) Transfer(c echo.Context) error {
	var req transferRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	workspace, err := h.membership.TransferOwnership(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"), req.UserID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toWorkspaceResponse(workspace))
}

// AuditLogs handles GET /api/v1/workspaces/:workspaceId/audit-logs
func (h *WorkspaceHandler) AuditLogs(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return domainErrors.Validation("invalid limit parameter")
		}
		limit = n
	}

	logs, err := h.auditLogs.List(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"), limit)
	if err != nil {
		return err
	}

	resp := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, toAuditLogResponse(l))
	}
	return success(c, http.StatusOK, resp)
}
