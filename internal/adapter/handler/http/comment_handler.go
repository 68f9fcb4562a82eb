package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/http/middleware"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// CommentHandler handles task comment and attachment requests
type CommentHandler struct {
	logger      *zap.Logger
	comments    interfaces.CommentUseCase
	attachments interfaces.AttachmentUseCase
}

// NewCommentHandler creates a new comment handler instance
func NewCommentHandler(logger *zap.Logger, comments interfaces.CommentUseCase, attachments interfaces.AttachmentUseCase) *CommentHandler {
	return &CommentHandler{
		logger:      logger,
		comments:    comments,
		attachments: attachments,
	}
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

type attachmentRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	URL  string `json:"url" validate:"required,http_url,max=2048"`
}

// CreateComment handles POST /api/v1/tasks/:taskId/comments
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req commentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.Create(c.Request().Context(), middleware.UserID(c), c.Param("taskId"), dto.CreateCommentParams{
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, toCommentResponse(comment))
}

// ListComments handles GET /api/v1/tasks/:taskId/comments
func (h *CommentHandler) ListComments(c echo.Context) error {
	comments, err := h.comments.List(c.Request().Context(), middleware.UserID(c), c.Param("taskId"))
	if err != nil {
		return err
	}

	resp := make([]CommentResponse, 0, len(comments))
	for _, m := range comments {
		resp = append(resp, toCommentResponse(m))
	}
	return success(c, http.StatusOK, resp)
}

// UpdateComment handles PATCH /api/v1/comments/:commentId
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	var req commentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.Update(c.Request().Context(), middleware.UserID(c), c.Param("commentId"), req.Content)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toCommentResponse(comment))
}

// DeleteComment handles DELETE /api/v1/comments/:commentId
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	if err := h.comments.Delete(c.Request().Context(), middleware.UserID(c), c.Param("commentId")); err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "comment deleted"})
}

// AddAttachment handles POST /api/v1/tasks/:taskId/attachments
func (h *CommentHandler) AddAttachment(c echo.Context) error {
	var req attachmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	attachment, err := h.attachments.Add(c.Request().Context(), middleware.UserID(c), c.Param("taskId"), dto.AddAttachmentParams{
		Name: req.Name,
		URL:  req.URL,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, toAttachmentResponse(attachment))
}

// ListAttachments handles GET /api/v1/tasks/:taskId/attachments
func (h *CommentHandler) ListAttachments(c echo.Context) error {
	attachments, err := h.attachments.List(c.Request().Context(), middleware.UserID(c), c.Param("taskId"))
	if err != nil {
		return err
	}

	resp := make([]AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		resp = append(resp, toAttachmentResponse(a))
	}
	return success(c, http.StatusOK, resp)
}

// DeleteAttachment handles DELETE /api/v1/attachments/:attachmentId
func (h *CommentHandler) DeleteAttachment(c echo.Context) error {
	if err := h.attachments.Delete(c.Request().Context(), middleware.UserID(c), c.Param("attachmentId")); err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "attachment deleted"})
}
