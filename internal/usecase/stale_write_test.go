package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
)

func TestWorkspaceRepository_StaleRenameKeepsNewOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	bob := env.createUser(t, "bob@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	env.join(t, workspace, owner, bob, entity.RoleMember)

	stale, err := env.repos.Workspace.FindByID(env.ctx, workspace.ID)
	require.NoError(t, err)

	_, err = env.uc.Membership.TransferOwnership(env.ctx, owner.ID, workspace.ID, bob.ID)
	require.NoError(t, err)

	stale.Name = "Renamed"
	require.NoError(t, env.repos.Workspace.Update(env.ctx, stale, repository.WorkspaceFieldName))

	current, err := env.repos.Workspace.FindByID(env.ctx, workspace.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Renamed", current.Name)
	assert.Equal(t, bob.ID, current.OwnerID)

	authority, err := env.uc.Membership.Authority(env.ctx, bob.ID, workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuthorityOwner, authority)

	// a transfer based on the old owner no longer matches
	err = env.repos.Workspace.TransferOwner(env.ctx, workspace.ID, owner.ID, owner.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStaleWritesDoNotRecreateDeletedRows(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, env *testEnv) (writeErr error, exists bool)
	}{
		{
			name: "workspace",
			run: func(t *testing.T, env *testEnv) (error, bool) {
				owner := env.createUser(t, "owner@example.com")
				workspace := env.createWorkspace(t, owner, "Acme")
				stale, err := env.repos.Workspace.FindByID(env.ctx, workspace.ID)
				require.NoError(t, err)

				require.NoError(t, env.uc.Workspace.Delete(env.ctx, owner.ID, workspace.ID))

				stale.Name = "Renamed"
				writeErr := env.repos.Workspace.Update(env.ctx, stale, repository.WorkspaceFieldName)
				current, err := env.repos.Workspace.FindByID(env.ctx, workspace.ID)
				require.NoError(t, err)
				return writeErr, current != nil
			},
		},
		{
			name: "project",
			run: func(t *testing.T, env *testEnv) (error, bool) {
				owner := env.createUser(t, "owner@example.com")
				project := env.createProject(t, owner, env.createWorkspace(t, owner, "Acme"), "Roadmap")
				stale, err := env.repos.Project.FindByID(env.ctx, project.ID)
				require.NoError(t, err)

				require.NoError(t, env.uc.Project.Delete(env.ctx, owner.ID, project.ID))

				stale.Name = "Renamed"
				writeErr := env.repos.Project.Update(env.ctx, stale, repository.ProjectFieldName)
				current, err := env.repos.Project.FindByID(env.ctx, project.ID)
				require.NoError(t, err)
				return writeErr, current != nil
			},
		},
		{
			name: "task",
			run: func(t *testing.T, env *testEnv) (error, bool) {
				owner := env.createUser(t, "owner@example.com")
				project := env.createProject(t, owner, env.createWorkspace(t, owner, "Acme"), "Roadmap")
				task := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "Ship"})
				stale, err := env.repos.Task.FindByID(env.ctx, task.ID)
				require.NoError(t, err)

				require.NoError(t, env.uc.Task.Delete(env.ctx, owner.ID, task.ID))

				stale.Title = "Ship it"
				writeErr := env.repos.Task.Update(env.ctx, stale, repository.TaskFieldTitle)
				current, err := env.repos.Task.FindByID(env.ctx, task.ID)
				require.NoError(t, err)
				return writeErr, current != nil
			},
		},
		{
			name: "user",
			run: func(t *testing.T, env *testEnv) (error, bool) {
				alice := env.createUser(t, "alice@example.com")
				stale, err := env.repos.User.FindByID(env.ctx, alice.ID)
				require.NoError(t, err)

				require.NoError(t, env.uc.Auth.DeleteAccount(env.ctx, alice.ID))

				stale.Name = "Alice"
				writeErr := env.repos.User.Update(env.ctx, stale, repository.UserFieldName)
				current, err := env.repos.User.FindByID(env.ctx, alice.ID)
				require.NoError(t, err)
				return writeErr, current != nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeErr, exists := tt.run(t, newTestEnv(t))
			assert.ErrorIs(t, writeErr, repository.ErrNotFound)
			assert.False(t, exists)
		})
	}
}

func TestUserRepository_StaleProfileWriteKeepsNewPassword(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")

	before, err := env.uc.Auth.Login(env.ctx, alice.Email, testPassword)
	require.NoError(t, err)
	stale, err := env.repos.User.FindByID(env.ctx, alice.ID)
	require.NoError(t, err)

	env.clock.Advance(2 * time.Second)
	_, err = env.uc.Auth.ChangePassword(env.ctx, alice.ID, testPassword, "new-password-123")
	require.NoError(t, err)

	avatar := "https://cdn.test/avatars/alice.png"
	stale.Name = "Alice Liddell"
	stale.AvatarURL = &avatar
	require.NoError(t, env.repos.User.Update(env.ctx, stale, repository.UserFieldName, repository.UserFieldAvatar))

	_, err = env.uc.Auth.Login(env.ctx, alice.Email, testPassword)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	_, err = env.uc.Auth.Authenticate(env.ctx, dto.BearerCredential{Token: before.Token})
	assert.ErrorIs(t, err, domainErrors.ErrStaleToken)

	_, err = env.uc.Auth.Login(env.ctx, alice.Email, "new-password-123")
	require.NoError(t, err)

	me, err := env.uc.Auth.Me(env.ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", me.Name)
	require.NotNil(t, me.AvatarURL)
	assert.Equal(t, avatar, *me.AvatarURL)
}

func TestAuthUseCase_TokenFromEarlierInTheSameSecondIsStale(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")

	before, err := env.uc.Auth.Login(env.ctx, alice.Email, testPassword)
	require.NoError(t, err)

	env.clock.Advance(300 * time.Millisecond)
	after, err := env.uc.Auth.ChangePassword(env.ctx, alice.ID, testPassword, "new-password-123")
	require.NoError(t, err)

	_, err = env.uc.Auth.Authenticate(env.ctx, dto.BearerCredential{Token: before.Token})
	assert.ErrorIs(t, err, domainErrors.ErrStaleToken)
	_, err = env.uc.Auth.Authenticate(env.ctx, dto.BearerCredential{Token: after.Token})
	assert.NoError(t, err)
}

func TestTaskRepository_StaleWriteOnlyTouchesItsColumns(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	project := env.createProject(t, owner, env.createWorkspace(t, owner, "Acme"), "Roadmap")
	task := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "Ship"})

	stale, err := env.repos.Task.FindByID(env.ctx, task.ID)
	require.NoError(t, err)

	done := entity.TaskStatusDone
	_, err = env.uc.Task.Update(env.ctx, owner.ID, task.ID, dto.UpdateTaskParams{Status: &done})
	require.NoError(t, err)

	stale.Title = "Ship it"
	require.NoError(t, env.repos.Task.Update(env.ctx, stale, repository.TaskFieldTitle))

	current, err := env.repos.Task.FindByID(env.ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Ship it", current.Title)
	assert.Equal(t, entity.TaskStatusDone, current.Status)
}

func TestTaskUseCase_UpdateOfDeletedTask(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	project := env.createProject(t, owner, env.createWorkspace(t, owner, "Acme"), "Roadmap")
	task := env.createTask(t, owner, project, dto.CreateTaskParams{Title: "Ship"})

	env.tx.beforeNext(func() {
		require.NoError(t, env.repos.Task.DeleteCascade(env.ctx, task.ID))
	})

	title := "Ship it"
	_, err := env.uc.Task.Update(env.ctx, owner.ID, task.ID, dto.UpdateTaskParams{Title: &title})
	assert.ErrorIs(t, err, domainErrors.ErrTaskNotFound)

	current, err := env.repos.Task.FindByID(env.ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, current)
}
