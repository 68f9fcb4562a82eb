package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/http/middleware"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// InviteHandler handles workspace invitation requests
type InviteHandler struct {
	logger  *zap.Logger
	invites interfaces.InviteUseCase
}

// NewInviteHandler creates a new invite handler instance
func NewInviteHandler(logger *zap.Logger, invites interfaces.InviteUseCase) *InviteHandler {
	return &InviteHandler{
		logger:  logger,
		invites: invites,
	}
}

type issueInviteRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Role  string `json:"role" validate:"omitempty,oneof=ADMIN MEMBER"`
}

// Issue handles POST /api/v1/workspaces/:workspaceId/invites
func (h *InviteHandler) Issue(c echo.Context) error {
	var req issueInviteRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	role := entity.Role(req.Role)
	if role == "" {
		role = entity.RoleMember
	}

	receipt, err := h.invites.Issue(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"), dto.IssueInviteParams{
		Email: req.Email,
		Role:  role,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, toInviteReceipt(receipt))
}

// ListPending handles GET /api/v1/workspaces/:workspaceId/invites
func (h *InviteHandler) ListPending(c echo.Context) error {
	invites, err := h.invites.ListPending(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"))
	if err != nil {
		return err
	}

	resp := make([]InviteResponse, 0, len(invites))
	for _, i := range invites {
		resp = append(resp, toInviteResponse(i))
	}
	return success(c, http.StatusOK, resp)
}

// Revoke handles DELETE /api/v1/workspaces/:workspaceId/invites/:inviteId
func (h *InviteHandler) Revoke(c echo.Context) error {
	if err := h.invites.Revoke(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"), c.Param("inviteId")); err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "invite revoked"})
}

// Accept handles POST /api/v1/workspaces/:workspaceId/invites/accept
func (h *InviteHandler) Accept(c echo.Context) error {
	var req tokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	member, err := h.invites.Accept(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"), req.Token)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toMembershipResponse(member))
}
