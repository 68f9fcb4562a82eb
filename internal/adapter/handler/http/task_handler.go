package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/http/middleware"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// TaskHandler handles task requests
type TaskHandler struct {
	logger *zap.Logger
	tasks  interfaces.TaskUseCase
}

// NewTaskHandler creates a new task handler instance
func NewTaskHandler(logger *zap.Logger, tasks interfaces.TaskUseCase) *TaskHandler {
	return &TaskHandler{
		logger: logger,
		tasks:  tasks,
	}
}

type createTaskRequest struct {
	Title       string           `json:"title" validate:"required,max=500"`
	Description string           `json:"description" validate:"max=20000"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	Tags        []string         `json:"tags" validate:"max=20,dive,max=50"`
	StartDate   *time.Time       `json:"startDate"`
	DueDate     *time.Time       `json:"dueDate"`
	Points      *decimal.Decimal `json:"points"`
	ParentID    *string          `json:"parentId"`
	AssigneeIDs []string         `json:"assigneeIds"`
}

type updateTaskRequest struct {
	Title          *string          `json:"title" validate:"omitempty,min=1,max=500"`
	Description    *string          `json:"description" validate:"omitempty,max=20000"`
	Status         *string          `json:"status"`
	Priority       *string          `json:"priority"`
	Tags           *[]string        `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	StartDate      *time.Time       `json:"startDate"`
	ClearStartDate bool             `json:"clearStartDate"`
	DueDate        *time.Time       `json:"dueDate"`
	ClearDueDate   bool             `json:"clearDueDate"`
	Points         *decimal.Decimal `json:"points"`
	ClearPoints    bool             `json:"clearPoints"`
	ParentID       *string          `json:"parentId"`
	AssigneeIDs    *[]string        `json:"assigneeIds"`
}

type moveTaskRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
}

// Create handles POST /api/v1/projects/:projectId/tasks
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.Create(c.Request().Context(), middleware.UserID(c), c.Param("projectId"), dto.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.TaskStatus(req.Status),
		Priority:    entity.TaskPriority(req.Priority),
		Tags:        req.Tags,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Points:      req.Points,
		ParentID:    req.ParentID,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, toTaskDetailResponse(task))
}

// List handles GET /api/v1/projects/:projectId/tasks
//
// Query parameters: status, priority (comma separated or repeated), assignee, tag,
// parent, rootOnly, q, dueBefore (RFC3339), sort (e.g. "-due_date,title"), limit, cursor.
func (h *TaskHandler) List(c echo.Context) error {
	params, err := parseListTasksParams(c)
	if err != nil {
		return err
	}

	page, err := h.tasks.List(c.Request().Context(), middleware.UserID(c), c.Param("projectId"), params)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, TaskPageResponse{
		Tasks:      toTaskResponses(page.Tasks),
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	})
}

// Get handles GET /api/v1/tasks/:taskId
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.tasks.Get(c.Request().Context(), middleware.UserID(c), c.Param("taskId"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toTaskDetailResponse(task))
}

// Update handles PATCH /api/v1/tasks/:taskId
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	params := dto.UpdateTaskParams{
		Title:          req.Title,
		Description:    req.Description,
		Tags:           req.Tags,
		StartDate:      req.StartDate,
		ClearStartDate: req.ClearStartDate,
		DueDate:        req.DueDate,
		ClearDueDate:   req.ClearDueDate,
		Points:         req.Points,
		ClearPoints:    req.ClearPoints,
		ParentID:       req.ParentID,
		AssigneeIDs:    req.AssigneeIDs,
	}
	if req.Status != nil {
		status := entity.TaskStatus(*req.Status)
		params.Status = &status
	}
	if req.Priority != nil {
		priority := entity.TaskPriority(*req.Priority)
		params.Priority = &priority
	}

	task, err := h.tasks.Update(c.Request().Context(), middleware.UserID(c), c.Param("taskId"), params)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toTaskDetailResponse(task))
}

// Move handles POST /api/v1/tasks/:taskId/move
func (h *TaskHandler) Move(c echo.Context) error {
	var req moveTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.Move(c.Request().Context(), middleware.UserID(c), c.Param("taskId"), req.ProjectID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, toTaskDetailResponse(task))
}

// Delete handles DELETE /api/v1/tasks/:taskId
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.tasks.Delete(c.Request().Context(), middleware.UserID(c), c.Param("taskId")); err != nil {
		return err
	}
	return success(c, http.StatusOK, MessageResponse{Message: "task deleted"})
}

// multiValue collects comma separated and repeated query values
func multiValue(c echo.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryParams()[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func parseListTasksParams(c echo.Context) (dto.ListTasksParams, error) {
	params := dto.ListTasksParams{Cursor: c.QueryParam("cursor")}

	for _, s := range multiValue(c, "status") {
		params.Filter.Statuses = append(params.Filter.Statuses, entity.TaskStatus(strings.ToUpper(s)))
	}
	for _, p := range multiValue(c, "priority") {
		params.Filter.Priorities = append(params.Filter.Priorities, entity.TaskPriority(strings.ToUpper(p)))
	}
	params.Filter.AssigneeID = c.QueryParam("assignee")
	params.Filter.Tag = c.QueryParam("tag")
	params.Filter.ParentID = c.QueryParam("parent")
	params.Filter.Search = strings.TrimSpace(c.QueryParam("q"))

	if raw := c.QueryParam("rootOnly"); raw != "" {
		rootOnly, err := strconv.ParseBool(raw)
		if err != nil {
			return params, domainErrors.Validation("invalid rootOnly parameter")
		}
		params.Filter.RootOnly = rootOnly
	}

	if raw := c.QueryParam("dueBefore"); raw != "" {
		dueBefore, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return params, domainErrors.Validation("invalid dueBefore format, use RFC 3339")
		}
		params.Filter.DueBefore = &dueBefore
	}

	for _, key := range multiValue(c, "sort") {
		desc := strings.HasPrefix(key, "-")
		params.Sort = append(params.Sort, entity.SortKey{
			Field: entity.TaskSortField(strings.TrimPrefix(key, "-")),
			Desc:  desc,
		})
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return params, domainErrors.Validation("invalid limit parameter")
		}
		params.Limit = limit
	}

	return params, nil
}
