package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestTaskUseCase_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	project := env.createProject(t, owner, workspace, "Roadmap")

	points := decimal.RequireFromString("2.5")
	task := env.createTask(t, owner, project, dto.CreateTaskParams{
		Title:  "  Ship it  ",
		Tags:   []string{"backend", " backend", "", "api"},
		Points: &points,
	})

	assert.Equal(t, "Ship it", task.Title)
	assert.Equal(t, entity.TaskStatusTodo, task.Status)
	assert.Equal(t, entity.TaskPriorityNormal, task.Priority)
	assert.Equal(t, []string{"backend", "api"}, task.Tags)
	assert.True(t, task.Points.Valid)
	assert.True(t, points.Equal(task.Points.Decimal))
	assert.Equal(t, owner.ID, task.CreatorID)
	assert.Empty(t, task.AssigneeIDs)
	assert.Empty(t, task.Subtasks)

	start := env.clock.Now()
	due := start.Add(-time.Hour)
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name   string
		params dto.CreateTaskParams
	}{
		{name: "blank title", params: dto.CreateTaskParams{Title: "   "}},
		{name: "unknown status", params: dto.CreateTaskParams{Title: "x", Status: "BLOCKED"}},
		{name: "unknown priority", params: dto.CreateTaskParams{Title: "x", Priority: "CRITICAL"}},
		{name: "due before start", params: dto.CreateTaskParams{Title: "x", StartDate: &start, DueDate: &due}},
		{name: "negative points", params: dto.CreateTaskParams{Title: "x", Points: &negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Task.Create(env.ctx, owner.ID, project.ID, tt.params)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
		})
	}
}

func TestTaskUseCase_Hierarchy(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	project := env.createProject(t, owner, workspace, "Roadmap")
	otherProject := env.createProject(t, owner, workspace, "Backlog")

	parent := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "parent"})
	child := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "child", ParentID: &parent.ID})
	root := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "root"})
	foreign := env.createTask(t, owner, otherProject, dto.CreateTaskParams{Title: "foreign"})

	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)

	detail, err := env.uc.Task.Get(env.ctx, owner.ID, parent.ID)
	require.NoError(t, err)
	require.Len(t, detail.Subtasks, 1)
	assert.Equal(t, child.ID, detail.Subtasks[0].ID)

	t.Run("create rejects invalid parents", func(t *testing.T) {
		_, err := env.uc.Task.Create(env.ctx, owner.ID, project.ID, dto.CreateTaskParams{Title: "grandchild", ParentID: &child.ID})
		assert.ErrorIs(t, err, domainErrors.ErrNestedSubtask)

		_, err = env.uc.Task.Create(env.ctx, owner.ID, project.ID, dto.CreateTaskParams{Title: "cross", ParentID: &foreign.ID})
		assert.ErrorIs(t, err, domainErrors.ErrCrossProjectParent)

		_, err = env.uc.Task.Create(env.ctx, owner.ID, project.ID, dto.CreateTaskParams{Title: "ghost", ParentID: strPtr("TK00MISSING00")})
		assert.ErrorIs(t, err, domainErrors.ErrCrossProjectParent)
	})

	t.Run("update rejects invalid parents", func(t *testing.T) {
		tests := []struct {
			name          string
			taskID        string
			parentID      string
			expectedError error
		}{
			{name: "self parent", taskID: root.ID, parentID: root.ID, expectedError: domainErrors.ErrSelfParent},
			{name: "task with subtasks", taskID: parent.ID, parentID: root.ID, expectedError: domainErrors.ErrNestedSubtask},
			{name: "parent is a subtask", taskID: root.ID, parentID: child.ID, expectedError: domainErrors.ErrNestedSubtask},
			{name: "parent in another project", taskID: root.ID, parentID: foreign.ID, expectedError: domainErrors.ErrCrossProjectParent},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := env.uc.Task.Update(env.ctx, owner.ID, tt.taskID, dto.UpdateTaskParams{ParentID: strPtr(tt.parentID)})
				assert.ErrorIs(t, err, tt.expectedError)
			})
		}
	})

	t.Run("reparent and detach", func(t *testing.T) {
		moved, err := env.uc.Task.Update(env.ctx, owner.ID, child.ID, dto.UpdateTaskParams{ParentID: &root.ID})
		require.NoError(t, err)
		require.NotNil(t, moved.ParentID)
		assert.Equal(t, root.ID, *moved.ParentID)

		oldParent, err := env.uc.Task.Get(env.ctx, owner.ID, parent.ID)
		require.NoError(t, err)
		assert.Empty(t, oldParent.Subtasks)

		detached, err := env.uc.Task.Update(env.ctx, owner.ID, child.ID, dto.UpdateTaskParams{ParentID: strPtr("")})
		require.NoError(t, err)
		assert.Nil(t, detached.ParentID)

		// a former parent with no subtasks left can become a subtask itself
		_, err = env.uc.Task.Update(env.ctx, owner.ID, parent.ID, dto.UpdateTaskParams{ParentID: &root.ID})
		assert.NoError(t, err)
	})
}

func TestTaskUseCase_Move(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	elsewhere := env.createWorkspace(t, owner, "Elsewhere")
	source := env.createProject(t, owner, workspace, "Source")
	target := env.createProject(t, owner, workspace, "Target")
	foreign := env.createProject(t, owner, elsewhere, "Foreign")

	parent := env.createTask(t, owner, source, dto.CreateTaskParams{Title: "parent"})
	child := env.createTask(t, owner, source, dto.CreateTaskParams{Title: "child", ParentID: &parent.ID})
	other := env.createTask(t, owner, source, dto.CreateTaskParams{Title: "other"})
	lone := env.createTask(t, owner, source, dto.CreateTaskParams{Title: "lone", ParentID: &other.ID})

	_, err := env.uc.Task.Move(env.ctx, owner.ID, parent.ID, foreign.ID)
	assert.ErrorIs(t, err, domainErrors.ErrCrossWorkspaceMove)

	moved, err := env.uc.Task.Move(env.ctx, owner.ID, parent.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, moved.ProjectID)
	require.Len(t, moved.Subtasks, 1)
	assert.Equal(t, target.ID, moved.Subtasks[0].ProjectID)

	movedChild, err := env.repos.Task.FindByID(env.ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, movedChild.ProjectID)
	require.NotNil(t, movedChild.ParentID)
	assert.Equal(t, parent.ID, *movedChild.ParentID)

	// a subtask moved on its own becomes a root task
	movedLone, err := env.uc.Task.Move(env.ctx, owner.ID, lone.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.ID, movedLone.ProjectID)
	assert.Nil(t, movedLone.ParentID)
}

func TestTaskUseCase_AssigneesAreIdempotent(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	bob := env.createUser(t, "bob@example.com")
	stranger := env.createUser(t, "stranger@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	env.join(t, workspace, owner, bob, entity.RoleMember)
	project := env.createProject(t, owner, workspace, "Roadmap")

	task := env.createTask(t, owner, project, dto.CreateTaskParams{
		Title:       "pair",
		AssigneeIDs: []string{bob.ID, bob.ID},
	})
	assert.Equal(t, []string{bob.ID}, task.AssigneeIDs)

	both := []string{bob.ID, owner.ID}
	for i := 0; i < 2; i++ {
		updated, err := env.uc.Task.Update(env.ctx, owner.ID, task.ID, dto.UpdateTaskParams{AssigneeIDs: &both})
		require.NoError(t, err)
		assert.ElementsMatch(t, both, updated.AssigneeIDs)
	}

	withStranger := []string{bob.ID, stranger.ID}
	_, err := env.uc.Task.Update(env.ctx, owner.ID, task.ID, dto.UpdateTaskParams{AssigneeIDs: &withStranger})
	assert.ErrorIs(t, err, domainErrors.ErrNotAWorkspaceMember)

	unchanged, err := env.uc.Task.Get(env.ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, both, unchanged.AssigneeIDs)

	// leaving the workspace drops the member's assignments there
	require.NoError(t, env.uc.Membership.RemoveMember(env.ctx, owner.ID, workspace.ID, bob.ID))
	afterRemoval, err := env.uc.Task.Get(env.ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{owner.ID}, afterRemoval.AssigneeIDs)

	empty := []string{}
	cleared, err := env.uc.Task.Update(env.ctx, owner.ID, task.ID, dto.UpdateTaskParams{AssigneeIDs: &empty})
	require.NoError(t, err)
	assert.Empty(t, cleared.AssigneeIDs)
}

func TestTaskUseCase_UpdateClearsOptionalFields(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	project := env.createProject(t, owner, workspace, "Roadmap")

	due := env.clock.Now().Add(48 * time.Hour)
	points := decimal.NewFromInt(3)
	task := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "dated", DueDate: &due, Points: &points})
	require.NotNil(t, task.DueDate)

	status := entity.TaskStatusDone
	updated, err := env.uc.Task.Update(env.ctx, owner.ID, task.ID, dto.UpdateTaskParams{
		Status:       &status,
		ClearDueDate: true,
		ClearPoints:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusDone, updated.Status)
	assert.Nil(t, updated.DueDate)
	assert.False(t, updated.Points.Valid)
	assert.Equal(t, "dated", updated.Title)
}

func TestTaskUseCase_ListPagesWithSignedCursor(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	project := env.createProject(t, owner, workspace, "Roadmap")
	otherProject := env.createProject(t, owner, workspace, "Backlog")

	titles := []string{"e-task", "c-task", "a-task", "d-task", "b-task"}
	for _, title := range titles {
		env.createTask(t, owner, project, dto.CreateTaskParams{Title: title})
	}
	env.createTask(t, owner, otherProject, dto.CreateTaskParams{Title: "elsewhere"})

	params := dto.ListTasksParams{
		Sort:  []entity.SortKey{{Field: entity.SortByTitle}},
		Limit: 2,
	}

	var seen []string
	for page := 0; page < 3; page++ {
		result, err := env.uc.Task.List(env.ctx, owner.ID, project.ID, params)
		require.NoError(t, err)
		for _, task := range result.Tasks {
			seen = append(seen, task.Title)
		}
		if page < 2 {
			require.True(t, result.HasMore)
			require.NotEmpty(t, result.NextCursor)
		} else {
			assert.False(t, result.HasMore)
			assert.Empty(t, result.NextCursor)
		}
		params.Cursor = result.NextCursor
	}
	assert.Equal(t, []string{"a-task", "b-task", "c-task", "d-task", "e-task"}, seen)

	first, err := env.uc.Task.List(env.ctx, owner.ID, project.ID, dto.ListTasksParams{Limit: 2})
	require.NoError(t, err)

	tests := []struct {
		name      string
		projectID string
		cursor    string
	}{
		{name: "cursor from another project", projectID: otherProject.ID, cursor: first.NextCursor},
		{name: "tampered cursor", projectID: project.ID, cursor: first.NextCursor + "x"},
		{name: "garbage cursor", projectID: project.ID, cursor: "!!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Task.List(env.ctx, owner.ID, tt.projectID, dto.ListTasksParams{Cursor: tt.cursor})
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
		})
	}
}

func TestTaskUseCase_ListFilters(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	bob := env.createUser(t, "bob@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	env.join(t, workspace, owner, bob, entity.RoleMember)
	project := env.createProject(t, owner, workspace, "Roadmap")

	soon := env.clock.Now().Add(24 * time.Hour)
	later := env.clock.Now().Add(10 * 24 * time.Hour)

	urgent := env.createTask(t, owner, project, dto.CreateTaskParams{
		Title:       "Fix login bug",
		Priority:    entity.TaskPriorityUrgent,
		Tags:        []string{"bug"},
		DueDate:     &soon,
		AssigneeIDs: []string{bob.ID},
	})
	done := env.createTask(t, owner, project, dto.CreateTaskParams{
		Title:  "Write docs",
		Status: entity.TaskStatusDone,
		Tags:   []string{"docs"},
	})
	sub := env.createTask(t, owner, project, dto.CreateTaskParams{
		Title:    "Login tests",
		ParentID: &urgent.ID,
		DueDate:  &later,
	})

	cutoff := env.clock.Now().Add(2 * 24 * time.Hour)

	tests := []struct {
		name     string
		filter   entity.TaskFilter
		sort     []entity.SortKey
		expected []string
	}{
		{
			name:     "status",
			filter:   entity.TaskFilter{Statuses: []entity.TaskStatus{entity.TaskStatusDone}},
			expected: []string{done.ID},
		},
		{
			name:     "priority",
			filter:   entity.TaskFilter{Priorities: []entity.TaskPriority{entity.TaskPriorityUrgent}},
			expected: []string{urgent.ID},
		},
		{
			name:     "assignee",
			filter:   entity.TaskFilter{AssigneeID: bob.ID},
			expected: []string{urgent.ID},
		},
		{
			name:     "tag",
			filter:   entity.TaskFilter{Tag: "docs"},
			expected: []string{done.ID},
		},
		{
			name:     "parent",
			filter:   entity.TaskFilter{ParentID: urgent.ID},
			expected: []string{sub.ID},
		},
		{
			name:     "root only",
			filter:   entity.TaskFilter{RootOnly: true},
			sort:     []entity.SortKey{{Field: entity.SortByTitle}},
			expected: []string{urgent.ID, done.ID},
		},
		{
			name:     "search is case insensitive",
			filter:   entity.TaskFilter{Search: "LOGIN"},
			sort:     []entity.SortKey{{Field: entity.SortByTitle}},
			expected: []string{urgent.ID, sub.ID},
		},
		{
			name:     "due before",
			filter:   entity.TaskFilter{DueBefore: &cutoff},
			expected: []string{urgent.ID},
		},
		{
			name:     "due date puts undated tasks last",
			sort:     []entity.SortKey{{Field: entity.SortByDueDate}},
			expected: []string{urgent.ID, sub.ID, done.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := env.uc.Task.List(env.ctx, owner.ID, project.ID, dto.ListTasksParams{
				Filter: tt.filter,
				Sort:   tt.sort,
			})
			require.NoError(t, err)
			ids := make([]string, 0, len(page.Tasks))
			for _, task := range page.Tasks {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	_, err := env.uc.Task.List(env.ctx, owner.ID, project.ID, dto.ListTasksParams{
		Sort: []entity.SortKey{{Field: "assignee"}},
	})
	assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
}

func TestTaskUseCase_SearchMatchesWildcardsLiterally(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	project := env.createProject(t, owner, env.createWorkspace(t, owner, "Acme"), "Roadmap")

	percent := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "Reach 100% coverage"})
	underscore := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "Rename user_id column"})
	backslash := env.createTask(t, owner, project, dto.CreateTaskParams{Title: `Fix C:\temp path`})
	env.createTask(t, owner, project, dto.CreateTaskParams{Title: "Reach 1000 users"})
	env.createTask(t, owner, project, dto.CreateTaskParams{Title: "Rename userXid field"})

	tests := []struct {
		search   string
		expected []string
	}{
		{search: "100%", expected: []string{percent.ID}},
		{search: "user_id", expected: []string{underscore.ID}},
		{search: `c:\temp`, expected: []string{backslash.ID}},
		{search: "%", expected: []string{percent.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			page, err := env.uc.Task.List(env.ctx, owner.ID, project.ID, dto.ListTasksParams{
				Filter: entity.TaskFilter{Search: tt.search},
			})
			require.NoError(t, err)
			ids := make([]string, 0, len(page.Tasks))
			for _, task := range page.Tasks {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestTaskUseCase_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	project := env.createProject(t, owner, workspace, "Roadmap")

	task := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "parent", AssigneeIDs: []string{owner.ID}})
	sub := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "child", ParentID: &task.ID, AssigneeIDs: []string{owner.ID}})
	sibling := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "sibling"})

	comment, err := env.uc.Comment.Create(env.ctx, owner.ID, task.ID, dto.CreateCommentParams{Content: "parent note"})
	require.NoError(t, err)
	subComment, err := env.uc.Comment.Create(env.ctx, owner.ID, sub.ID, dto.CreateCommentParams{Content: "child note"})
	require.NoError(t, err)
	attachment, err := env.uc.Attachment.Add(env.ctx, owner.ID, sub.ID, dto.AddAttachmentParams{Name: "design doc", URL: "https://docs.example.com/design"})
	require.NoError(t, err)

	require.NoError(t, env.uc.Task.Delete(env.ctx, owner.ID, task.ID))

	_, err = env.uc.Task.Get(env.ctx, owner.ID, task.ID)
	assert.ErrorIs(t, err, domainErrors.ErrTaskNotFound)

	for _, id := range []string{task.ID, sub.ID} {
		found, err := env.repos.Task.FindByID(env.ctx, id)
		require.NoError(t, err)
		assert.Nil(t, found)

		assignees, err := env.repos.Task.AssigneeIDs(env.ctx, id)
		require.NoError(t, err)
		assert.Empty(t, assignees)
	}
	for _, id := range []string{comment.ID, subComment.ID} {
		found, err := env.repos.Comment.FindByID(env.ctx, id)
		require.NoError(t, err)
		assert.Nil(t, found)
	}
	foundAttachment, err := env.repos.Attachment.FindByID(env.ctx, attachment.ID)
	require.NoError(t, err)
	assert.Nil(t, foundAttachment)

	remaining, err := env.uc.Task.Get(env.ctx, owner.ID, sibling.ID)
	require.NoError(t, err)
	assert.Equal(t, "sibling", remaining.Title)
}

func TestProjectUseCase_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	bob := env.createUser(t, "bob@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	env.join(t, workspace, owner, bob, entity.RoleMember)
	project := env.createProject(t, bob, workspace, "Roadmap")
	task := env.createTask(t, bob, project, dto.CreateTaskParams{Title: "t"})

	assert.ErrorIs(t, env.uc.Project.Delete(env.ctx, bob.ID, project.ID), domainErrors.ErrAccessDenied)
	require.NoError(t, env.uc.Project.Delete(env.ctx, owner.ID, project.ID))

	_, err := env.uc.Project.Get(env.ctx, owner.ID, project.ID)
	assert.ErrorIs(t, err, domainErrors.ErrProjectNotFound)

	found, err := env.repos.Task.FindByID(env.ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAccessUseCase_HidesForeignResources(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	stranger := env.createUser(t, "stranger@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	project := env.createProject(t, owner, workspace, "Roadmap")
	task := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "secret"})
	comment, err := env.uc.Comment.Create(env.ctx, owner.ID, task.ID, dto.CreateCommentParams{Content: "hidden"})
	require.NoError(t, err)

	_, err = env.uc.Project.Get(env.ctx, stranger.ID, project.ID)
	assert.ErrorIs(t, err, domainErrors.ErrProjectNotFound)
	_, err = env.uc.Task.Get(env.ctx, stranger.ID, task.ID)
	assert.ErrorIs(t, err, domainErrors.ErrTaskNotFound)
	_, err = env.uc.Comment.List(env.ctx, stranger.ID, task.ID)
	assert.ErrorIs(t, err, domainErrors.ErrTaskNotFound)
	assert.ErrorIs(t, env.uc.Comment.Delete(env.ctx, stranger.ID, comment.ID), domainErrors.ErrCommentNotFound)
	_, _, err = env.uc.Workspace.Get(env.ctx, stranger.ID, workspace.ID)
	assert.ErrorIs(t, err, domainErrors.ErrAccessDenied)

	tests := []struct {
		name         string
		userID       string
		resourceID   string
		resourceType dto.ResourceType
		expected     bool
	}{
		{name: "owner sees workspace", userID: owner.ID, resourceID: workspace.ID, resourceType: dto.ResourceWorkspace, expected: true},
		{name: "owner sees comment", userID: owner.ID, resourceID: comment.ID, resourceType: dto.ResourceComment, expected: true},
		{name: "stranger blocked from workspace", userID: stranger.ID, resourceID: workspace.ID, resourceType: dto.ResourceWorkspace},
		{name: "stranger blocked from task", userID: stranger.ID, resourceID: task.ID, resourceType: dto.ResourceTask},
		{name: "missing project", userID: owner.ID, resourceID: "PJ00MISSING00", resourceType: dto.ResourceProject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := env.uc.Access.CanAccessResource(env.ctx, tt.userID, tt.resourceID, tt.resourceType)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}
