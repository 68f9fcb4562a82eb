package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
)

func newQueryContext(rawQuery string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/PJ01/tasks?"+rawQuery, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestParseListTasksParams(t *testing.T) {
	dueBefore := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	c := newQueryContext("status=todo,in_progress&status=done&priority=HIGH" +
		"&assignee=US01&tag=backend&parent=TK01&q=%20login%20" +
		"&rootOnly=true&dueBefore=2026-04-01T00:00:00Z&sort=-priority,title&limit=25&cursor=abc")

	params, err := parseListTasksParams(c)
	require.NoError(t, err)

	assert.Equal(t, []entity.TaskStatus{entity.TaskStatusTodo, entity.TaskStatusInProgress, entity.TaskStatusDone}, params.Filter.Statuses)
	assert.Equal(t, []entity.TaskPriority{entity.TaskPriorityHigh}, params.Filter.Priorities)
	assert.Equal(t, "US01", params.Filter.AssigneeID)
	assert.Equal(t, "backend", params.Filter.Tag)
	assert.Equal(t, "TK01", params.Filter.ParentID)
	assert.Equal(t, "login", params.Filter.Search)
	assert.True(t, params.Filter.RootOnly)
	require.NotNil(t, params.Filter.DueBefore)
	assert.True(t, dueBefore.Equal(*params.Filter.DueBefore))
	assert.Equal(t, []entity.SortKey{
		{Field: entity.SortByPriority, Desc: true},
		{Field: entity.SortByTitle},
	}, params.Sort)
	assert.Equal(t, 25, params.Limit)
	assert.Equal(t, "abc", params.Cursor)
}

func TestParseListTasksParams_Empty(t *testing.T) {
	params, err := parseListTasksParams(newQueryContext(""))
	require.NoError(t, err)

	assert.Empty(t, params.Filter.Statuses)
	assert.Nil(t, params.Filter.DueBefore)
	assert.Empty(t, params.Sort)
	assert.Zero(t, params.Limit)
}

func TestParseListTasksParams_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
	}{
		{name: "rootOnly is not a bool", rawQuery: "rootOnly=maybe"},
		{name: "dueBefore is not RFC 3339", rawQuery: "dueBefore=2026-04-01"},
		{name: "limit is not a number", rawQuery: "limit=ten"},
		{name: "limit is zero", rawQuery: "limit=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseListTasksParams(newQueryContext(tt.rawQuery))
			assert.Error(t, err)
			assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
		})
	}
}
