package usecase

import (
	"context"
	"io"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	repositoryImpl "github.com/wekeepgrowing/semo-taskboard/internal/adapter/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/config"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	infradb "github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/token"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/pkg/messaging"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "correct-horse-battery"

// testClock is a settable clock shared by the use cases and the token service
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// hookedTransactor runs a one-shot hook before the next transaction starts,
// so tests can change rows between a use case's checks and its writes
type hookedTransactor struct {
	repository.Transactor
	mu     sync.Mutex
	before func()
}

func (h *hookedTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	h.mu.Lock()
	hook := h.before
	h.before = nil
	h.mu.Unlock()
	if hook != nil {
		hook()
	}
	return h.Transactor.WithinTransaction(ctx, fn)
}

func (h *hookedTransactor) beforeNext(hook func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.before = hook
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// recordingMailer keeps every message so tests can pull the emailed token back out
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

var mailTokenPattern = regexp.MustCompile(`token=([A-Za-z0-9_-]+)`)

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *recordingMailer) failWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

func (m *recordingMailer) count(to string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, mail := range m.sent {
		if mail.To == to {
			n++
		}
	}
	return n
}

// lastToken returns the token in the most recent mail sent to the address
func (m *recordingMailer) lastToken(t *testing.T, to string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].To != to {
			continue
		}
		match := mailTokenPattern.FindStringSubmatch(m.sent[i].Body)
		require.Len(t, match, 2, "mail to %s carries no token", to)
		return match[1]
	}
	t.Fatalf("no mail sent to %s", to)
	return ""
}

type fakeBlobStore struct{}

func (fakeBlobStore) Upload(_ context.Context, folder, filename, _ string, body io.Reader, _ int64) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	return "https://cdn.test/" + folder + "/" + filename, nil
}

// testEnv wires every use case to a private in-memory sqlite database
type testEnv struct {
	ctx    context.Context
	clock  *testClock
	tx     *hookedTransactor
	mailer *recordingMailer
	tokens service.TokenService
	repos  *repository.Repositories
	uc     *UseCases
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	db, err := infradb.NewDatabase(infradb.Config{
		Driver: infradb.DriverSQLite,
		Name:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, logger)
	require.NoError(t, err)
	require.NoError(t, infradb.Migrate(db, logger))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	clock := newTestClock()
	tokens, err := token.NewJWTService(token.Config{
		Secret: "test-secret",
		Issuer: config.ServiceName,
		TTL:    24 * time.Hour,
	}, clock)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Service.Name = "Taskboard"
	cfg.Service.AppURL = "https://app.test"
	cfg.Auth.HashCost = bcrypt.MinCost
	cfg.Auth.PasswordMinLength = 8
	cfg.Cursor.Secret = "cursor-secret"

	mailer := &recordingMailer{}
	repos := repositoryImpl.NewRepositories(db)
	tx := &hookedTransactor{Transactor: repos.Transactor}
	repos.Transactor = tx
	useCases := SetupUseCases(logger, cfg, repos, Services{
		Clock:       clock,
		Tokens:      tokens,
		Revocations: infradb.NewMemoryRevocationStore(),
		Mailer:      mailer,
		BlobStore:   fakeBlobStore{},
		Publisher:   messaging.NewNopPublisher(),
	})

	return &testEnv{
		ctx:    context.Background(),
		clock:  clock,
		tx:     tx,
		mailer: mailer,
		tokens: tokens,
		repos:  repos,
		uc:     useCases,
	}
}

// createUser stores a verified user with testPassword
func (e *testEnv) createUser(t *testing.T, email string) *entity.User {
	t.Helper()
	hash, salt, err := HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	id, err := GenerateUniqueID(PrefixUser)
	require.NoError(t, err)

	user := &entity.User{
		ID:            id,
		Email:         entity.NormalizeEmail(email),
		Name:          ExtractUsernameFromEmail(email),
		PasswordHash:  hash,
		PasswordSalt:  salt,
		EmailVerified: true,
	}
	require.NoError(t, e.repos.User.Create(e.ctx, user))
	return user
}

func (e *testEnv) createWorkspace(t *testing.T, owner *entity.User, name string) *entity.Workspace {
	t.Helper()
	workspace, err := e.uc.Workspace.Create(e.ctx, owner.ID, dto.CreateWorkspaceParams{Name: name})
	require.NoError(t, err)
	return workspace
}

// join invites the user by email and accepts with the mailed token
func (e *testEnv) join(t *testing.T, workspace *entity.Workspace, inviter, user *entity.User, role entity.Role) {
	t.Helper()
	_, err := e.uc.Invite.Issue(e.ctx, inviter.ID, workspace.ID, dto.IssueInviteParams{Email: user.Email, Role: role})
	require.NoError(t, err)
	_, err = e.uc.Invite.Accept(e.ctx, user.ID, workspace.ID, e.mailer.lastToken(t, user.Email))
	require.NoError(t, err)
}

func (e *testEnv) createProject(t *testing.T, creator *entity.User, workspace *entity.Workspace, name string) *entity.Project {
	t.Helper()
	project, err := e.uc.Project.Create(e.ctx, creator.ID, workspace.ID, dto.CreateProjectParams{Name: name})
	require.NoError(t, err)
	return project
}

func (e *testEnv) createTask(t *testing.T, creator *entity.User, project *entity.Project, params dto.CreateTaskParams) *entity.TaskDetail {
	t.Helper()
	task, err := e.uc.Task.Create(e.ctx, creator.ID, project.ID, params)
	require.NoError(t, err)
	return task
}

func (e *testEnv) job(t *testing.T, name string) service.Job {
	t.Helper()
	for _, job := range e.uc.Jobs {
		if job.Name() == name {
			return job
		}
	}
	t.Fatalf("job %s is not registered", name)
	return nil
}
