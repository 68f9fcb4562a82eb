package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
)

func TestInviteUseCase_AcceptGrantsInvitedRole(t *testing.T) {
	tests := []struct {
		name         string
		role         entity.Role
		expectedRole entity.Role
		expected     entity.Authority
	}{
		{
			name:         "default role is member",
			role:         "",
			expectedRole: entity.RoleMember,
			expected:     entity.AuthorityMember,
		},
		{
			name:         "admin invite",
			role:         entity.RoleAdmin,
			expectedRole: entity.RoleAdmin,
			expected:     entity.AuthorityAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			owner := env.createUser(t, "owner@example.com")
			bob := env.createUser(t, "bob@example.com")
			workspace := env.createWorkspace(t, owner, "Acme")

			receipt, err := env.uc.Invite.Issue(env.ctx, owner.ID, workspace.ID, dto.IssueInviteParams{
				Email: "Bob@Example.com ",
				Role:  tt.role,
			})
			require.NoError(t, err)
			assert.Equal(t, "bob@example.com", receipt.Email)
			assert.Equal(t, tt.expectedRole, receipt.Role)
			assert.Equal(t, env.clock.Now().Add(entity.InviteTTL), receipt.ExpiresAt)

			before, err := env.uc.Membership.Authority(env.ctx, bob.ID, workspace.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.AuthorityNone, before)

			member, err := env.uc.Invite.Accept(env.ctx, bob.ID, workspace.ID, env.mailer.lastToken(t, bob.Email))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedRole, member.Role)

			after, err := env.uc.Membership.Authority(env.ctx, bob.ID, workspace.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, after)

			pending, err := env.uc.Invite.ListPending(env.ctx, owner.ID, workspace.ID)
			require.NoError(t, err)
			assert.Empty(t, pending)

			logs, err := env.uc.AuditLog.List(env.ctx, owner.ID, workspace.ID, 0)
			require.NoError(t, err)
			types := make([]entity.AuditLogType, 0, len(logs))
			for _, log := range logs {
				types = append(types, log.Type)
			}
			assert.Contains(t, types, entity.AuditInviteIssued)
			assert.Contains(t, types, entity.AuditInviteAccepted)
		})
	}
}

func TestInviteUseCase_AcceptIsSingleUse(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	bob := env.createUser(t, "bob@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")

	_, err := env.uc.Invite.Issue(env.ctx, owner.ID, workspace.ID, dto.IssueInviteParams{Email: bob.Email})
	require.NoError(t, err)
	inviteToken := env.mailer.lastToken(t, bob.Email)

	_, err = env.uc.Invite.Accept(env.ctx, bob.ID, workspace.ID, inviteToken)
	require.NoError(t, err)

	_, err = env.uc.Invite.Accept(env.ctx, bob.ID, workspace.ID, inviteToken)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidOrExpiredInvite)
}

func TestInviteUseCase_AcceptRejectsInvalidTokens(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	bob := env.createUser(t, "bob@example.com")
	mallory := env.createUser(t, "mallory@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	other := env.createWorkspace(t, owner, "Other")

	_, err := env.uc.Invite.Issue(env.ctx, owner.ID, workspace.ID, dto.IssueInviteParams{Email: bob.Email})
	require.NoError(t, err)
	inviteToken := env.mailer.lastToken(t, bob.Email)

	tests := []struct {
		name        string
		userID      string
		workspaceID string
		token       string
	}{
		{name: "empty token", userID: bob.ID, workspaceID: workspace.ID, token: ""},
		{name: "unknown token", userID: bob.ID, workspaceID: workspace.ID, token: "not-a-real-token"},
		{name: "token addressed to another email", userID: mallory.ID, workspaceID: workspace.ID, token: inviteToken},
		{name: "token for another workspace", userID: bob.ID, workspaceID: other.ID, token: inviteToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Invite.Accept(env.ctx, tt.userID, tt.workspaceID, tt.token)
			assert.ErrorIs(t, err, domainErrors.ErrInvalidOrExpiredInvite)
		})
	}

	// the genuine invite is still usable afterwards
	_, err = env.uc.Invite.Accept(env.ctx, bob.ID, workspace.ID, inviteToken)
	assert.NoError(t, err)
}

func TestInviteUseCase_AcceptAfterExpiry(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	bob := env.createUser(t, "bob@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")

	_, err := env.uc.Invite.Issue(env.ctx, owner.ID, workspace.ID, dto.IssueInviteParams{Email: bob.Email})
	require.NoError(t, err)
	inviteToken := env.mailer.lastToken(t, bob.Email)

	env.clock.Advance(entity.InviteTTL + time.Second)

	_, err = env.uc.Invite.Accept(env.ctx, bob.ID, workspace.ID, inviteToken)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidOrExpiredInvite)

	authority, err := env.uc.Membership.Authority(env.ctx, bob.ID, workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuthorityNone, authority)
}

func TestInviteUseCase_AcceptRechecksInviteInsideTransaction(t *testing.T) {
	tests := []struct {
		name      string
		interfere func(env *testEnv, inviteID string) error
	}{
		{
			name: "expired before insert",
			interfere: func(env *testEnv, _ string) error {
				env.clock.Advance(entity.InviteTTL + time.Second)
				return nil
			},
		},
		{
			name: "revoked before insert",
			interfere: func(env *testEnv, inviteID string) error {
				return env.repos.Invite.Delete(env.ctx, inviteID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			owner := env.createUser(t, "owner@example.com")
			bob := env.createUser(t, "bob@example.com")
			workspace := env.createWorkspace(t, owner, "Acme")

			receipt, err := env.uc.Invite.Issue(env.ctx, owner.ID, workspace.ID, dto.IssueInviteParams{Email: bob.Email})
			require.NoError(t, err)
			inviteToken := env.mailer.lastToken(t, bob.Email)

			var hookErr error
			env.tx.beforeNext(func() { hookErr = tt.interfere(env, receipt.ID) })

			_, err = env.uc.Invite.Accept(env.ctx, bob.ID, workspace.ID, inviteToken)
			require.NoError(t, hookErr)
			assert.ErrorIs(t, err, domainErrors.ErrInvalidOrExpiredInvite)

			authority, err := env.uc.Membership.Authority(env.ctx, bob.ID, workspace.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.AuthorityNone, authority)
		})
	}
}

func TestInviteUseCase_IssueConflicts(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	bob := env.createUser(t, "bob@example.com")
	carol := env.createUser(t, "carol@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")

	invite := func(email string) error {
		_, err := env.uc.Invite.Issue(env.ctx, owner.ID, workspace.ID, dto.IssueInviteParams{Email: email})
		return err
	}

	// owner is always a member
	assert.ErrorIs(t, invite(owner.Email), domainErrors.ErrAlreadyMember)

	require.NoError(t, invite(bob.Email))
	assert.ErrorIs(t, invite(bob.Email), domainErrors.ErrInviteAlreadySent)

	_, err := env.uc.Invite.Accept(env.ctx, bob.ID, workspace.ID, env.mailer.lastToken(t, bob.Email))
	require.NoError(t, err)
	assert.ErrorIs(t, invite(bob.Email), domainErrors.ErrAlreadyMember)

	// an expired invite is replaced by a fresh one
	require.NoError(t, invite(carol.Email))
	staleToken := env.mailer.lastToken(t, carol.Email)
	env.clock.Advance(entity.InviteTTL + time.Minute)
	require.NoError(t, invite(carol.Email))
	freshToken := env.mailer.lastToken(t, carol.Email)
	assert.NotEqual(t, staleToken, freshToken)

	_, err = env.uc.Invite.Accept(env.ctx, carol.ID, workspace.ID, staleToken)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidOrExpiredInvite)
	_, err = env.uc.Invite.Accept(env.ctx, carol.ID, workspace.ID, freshToken)
	assert.NoError(t, err)
}

func TestInviteUseCase_IssueRequiresManage(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	admin := env.createUser(t, "admin@example.com")
	member := env.createUser(t, "member@example.com")
	stranger := env.createUser(t, "stranger@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	env.join(t, workspace, owner, admin, entity.RoleAdmin)
	env.join(t, workspace, owner, member, entity.RoleMember)

	tests := []struct {
		name          string
		actorID       string
		email         string
		expectedError error
	}{
		{name: "admin can invite", actorID: admin.ID, email: "new1@example.com"},
		{name: "member cannot invite", actorID: member.ID, email: "new2@example.com", expectedError: domainErrors.ErrAccessDenied},
		{name: "stranger cannot invite", actorID: stranger.ID, email: "new3@example.com", expectedError: domainErrors.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Invite.Issue(env.ctx, tt.actorID, workspace.ID, dto.IssueInviteParams{Email: tt.email})
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Zero(t, env.mailer.count(tt.email))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, env.mailer.count(tt.email))
		})
	}
}

func TestInviteUseCase_MailFailureRemovesInvite(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")

	env.mailer.failWith(errors.New("smtp unavailable"))
	_, err := env.uc.Invite.Issue(env.ctx, owner.ID, workspace.ID, dto.IssueInviteParams{Email: "bob@example.com"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrDependency, apperrors.CodeOf(err))

	pending, err := env.uc.Invite.ListPending(env.ctx, owner.ID, workspace.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	env.mailer.failWith(nil)
	_, err = env.uc.Invite.Issue(env.ctx, owner.ID, workspace.ID, dto.IssueInviteParams{Email: "bob@example.com"})
	assert.NoError(t, err)
}

func TestInviteUseCase_Revoke(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	bob := env.createUser(t, "bob@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")
	other := env.createWorkspace(t, owner, "Other")

	receipt, err := env.uc.Invite.Issue(env.ctx, owner.ID, workspace.ID, dto.IssueInviteParams{Email: bob.Email})
	require.NoError(t, err)
	inviteToken := env.mailer.lastToken(t, bob.Email)

	err = env.uc.Invite.Revoke(env.ctx, owner.ID, other.ID, receipt.ID)
	assert.ErrorIs(t, err, domainErrors.ErrInviteNotFound)

	require.NoError(t, env.uc.Invite.Revoke(env.ctx, owner.ID, workspace.ID, receipt.ID))

	_, err = env.uc.Invite.Accept(env.ctx, bob.ID, workspace.ID, inviteToken)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidOrExpiredInvite)
}

func TestExpiredInviteReaper_Run(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com")
	workspace := env.createWorkspace(t, owner, "Acme")

	issue := func(email string) {
		_, err := env.uc.Invite.Issue(env.ctx, owner.ID, workspace.ID, dto.IssueInviteParams{Email: email})
		require.NoError(t, err)
	}

	issue("early1@example.com")
	issue("early2@example.com")
	env.clock.Advance(3 * 24 * time.Hour)
	issue("late@example.com")
	env.clock.Advance(5 * 24 * time.Hour)

	// expired invites are hidden before the sweep runs
	pending, err := env.uc.Invite.ListPending(env.ctx, owner.ID, workspace.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "late@example.com", pending[0].Email)

	require.NoError(t, env.job(t, JobExpiredInviteReaper).Run(env.ctx))

	for _, email := range []string{"early1@example.com", "early2@example.com"} {
		invite, err := env.repos.Invite.FindByEmail(env.ctx, workspace.ID, email)
		require.NoError(t, err)
		assert.Nil(t, invite, email)
	}
	late, err := env.repos.Invite.FindByEmail(env.ctx, workspace.ID, "late@example.com")
	require.NoError(t, err)
	assert.NotNil(t, late)
}
