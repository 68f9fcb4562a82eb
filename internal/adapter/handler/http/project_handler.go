package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/http/middleware"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// ProjectHandler handles project requests
type ProjectHandler struct {
	logger   *zap.Logger
	projects interfaces.ProjectUseCase
}

// NewProjectHandler creates a new project handler instance
func NewProjectHandler(logger *zap.Logger, projects interfaces.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{
		logger:   logger,
		projects: projects,
	}
}

type createProjectRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=10000"`
}

type updateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=10000"`
}

// Create handles POST /api/v1/workspaces/:workspaceId/projects
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.projects.Create(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"), dto.CreateProjectParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, toProjectResponse(project))
}

// List handles GET /api/v1/workspaces/:workspaceId/projects
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projects.List(c.Request().Context(), middleware.UserID(c), c.Param("workspaceId"))
	if err != nil {
		return err
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}
	return success(c, http.StatusOK, resp)
}

// Get handles GET /api/v1/projects/:projectId
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.projects.Get(c.Request().Context(), middleware.UserID(c), c.Param("projectId"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toProjectResponse(project))
}

// Update handles PATCH /api/v1/projects/:projectId
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.projects.Update(c.Request().Context(), middleware.UserID(c), c.Param("projectId"), dto.UpdateProjectParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toProjectResponse(project))
}

// Delete handles DELETE /api/v1/projects/:projectId
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.projects.Delete(c.Request().Context(), middleware.UserID(c), c.Param("projectId")); err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "project deleted"})
}
