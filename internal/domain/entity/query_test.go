package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskQuery_Defaults(t *testing.T) {
	q := NewTaskQuery("PJ01")

	assert.Equal(t, "PJ01", q.ProjectID())
	assert.Equal(t, DefaultPageSize, q.Limit())
	assert.Equal(t, 0, q.Offset())
	assert.Equal(t, []SortKey{{Field: SortByCreatedAt, Desc: true}}, q.Sort())
}

func TestTaskQuery_WithPage(t *testing.T) {
	tests := []struct {
		name           string
		limit          int
		offset         int
		expectedLimit  int
		expectedOffset int
	}{
		{name: "zero limit uses default", limit: 0, offset: 0, expectedLimit: DefaultPageSize},
		{name: "negative limit uses default", limit: -5, offset: 10, expectedLimit: DefaultPageSize, expectedOffset: 10},
		{name: "limit is capped", limit: MaxPageSize + 1, offset: 0, expectedLimit: MaxPageSize},
		{name: "negative offset is reset", limit: 5, offset: -1, expectedLimit: 5},
		{name: "values in range are kept", limit: 50, offset: 40, expectedLimit: 50, expectedOffset: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewTaskQuery("PJ01").WithPage(tt.limit, tt.offset)
			assert.Equal(t, tt.expectedLimit, q.Limit())
			assert.Equal(t, tt.expectedOffset, q.Offset())
		})
	}
}

func TestTaskQuery_IsImmutable(t *testing.T) {
	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	statuses := []TaskStatus{TaskStatusTodo}
	base := NewTaskQuery("PJ01")

	filtered := base.WithFilter(TaskFilter{Statuses: statuses, DueBefore: &due})
	statuses[0] = TaskStatusDone

	assert.Empty(t, base.Filter().Statuses)
	assert.Equal(t, []TaskStatus{TaskStatusTodo}, filtered.Filter().Statuses)

	returned := filtered.Filter()
	returned.Statuses[0] = TaskStatusCanceled
	assert.Equal(t, []TaskStatus{TaskStatusTodo}, filtered.Filter().Statuses)

	sorted := base.WithSort(SortKey{Field: SortByTitle})
	assert.Equal(t, []SortKey{{Field: SortByTitle}}, sorted.Sort())
	assert.Equal(t, SortByCreatedAt, base.Sort()[0].Field)

	// no keys keeps the current order
	assert.Equal(t, sorted.Sort(), sorted.WithSort().Sort())

	keys := sorted.Sort()
	keys[0].Desc = true
	assert.False(t, sorted.Sort()[0].Desc)
}

func TestTaskEnums_Valid(t *testing.T) {
	assert.True(t, TaskStatusInProgress.Valid())
	assert.False(t, TaskStatus("BLOCKED").Valid())
	assert.True(t, TaskPriorityUrgent.Valid())
	assert.False(t, TaskPriority("").Valid())
	assert.True(t, SortByDueDate.Valid())
	assert.False(t, TaskSortField("assignee").Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("OWNER").Valid())
}

func TestUser_IssuedBeforePasswordChange(t *testing.T) {
	changed := time.Date(2026, 3, 2, 9, 0, 5, 700_000_000, time.UTC)
	user := &User{PasswordChangedAt: &changed}

	tests := []struct {
		name     string
		issuedAt time.Time
		expected bool
	}{
		{name: "earlier second", issuedAt: time.Date(2026, 3, 2, 9, 0, 4, 0, time.UTC), expected: true},
		{name: "earlier in the same second", issuedAt: time.Date(2026, 3, 2, 9, 0, 5, 200_000_000, time.UTC), expected: true},
		{name: "same millisecond as the change", issuedAt: time.Date(2026, 3, 2, 9, 0, 5, 700_000_000, time.UTC), expected: false},
		{name: "later in the same second", issuedAt: time.Date(2026, 3, 2, 9, 0, 5, 900_000_000, time.UTC), expected: false},
		{name: "later", issuedAt: time.Date(2026, 3, 2, 9, 1, 0, 0, time.UTC), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, user.IssuedBeforePasswordChange(tt.issuedAt))
		})
	}

	assert.False(t, (&User{}).IssuedBeforePasswordChange(changed))
}

func TestUser_DiscardPassword(t *testing.T) {
	user := &User{PasswordHash: "hash", PasswordSalt: "salt"}
	now := time.Date(2026, 3, 2, 9, 0, 5, 0, time.UTC)

	user.DiscardPassword(now)

	assert.False(t, user.HasPassword())
	require.NotNil(t, user.PasswordChangedAt)
	assert.True(t, user.IssuedBeforePasswordChange(now.Add(-time.Millisecond)))
	assert.False(t, user.IssuedBeforePasswordChange(now))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestWorkspaceInvite_Expired(t *testing.T) {
	expiresAt := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	invite := &WorkspaceInvite{ExpiresAt: expiresAt}

	assert.False(t, invite.Expired(expiresAt.Add(-time.Second)))
	assert.True(t, invite.Expired(expiresAt))
	assert.True(t, invite.Expired(expiresAt.Add(time.Second)))
}
