package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeJob struct {
	name  string
	calls int
	err   error
	panic bool
	ctx   context.Context
}

func (j *fakeJob) Name() string { return j.name }

func (j *fakeJob) Run(ctx context.Context) error {
	j.calls++
	j.ctx = ctx
	if j.panic {
		panic("boom")
	}
	return j.err
}

func TestScheduler_Register(t *testing.T) {
	s := NewScheduler(zap.NewNop(), time.Minute)

	require.NoError(t, s.Register("@every 1h", &fakeJob{name: "ok"}))
	assert.Len(t, s.cron.Entries(), 1)

	err := s.Register("not a spec", &fakeJob{name: "bad"})
	assert.Error(t, err)
	assert.Len(t, s.cron.Entries(), 1)
}

func TestScheduler_WrappedJob(t *testing.T) {
	tests := []struct {
		name string
		job  *fakeJob
	}{
		{name: "success", job: &fakeJob{name: "success"}},
		{name: "error is logged and swallowed", job: &fakeJob{name: "failing", err: errors.New("db down")}},
		{name: "panic is recovered", job: &fakeJob{name: "panicking", panic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(zap.NewNop(), time.Minute)

			assert.NotPanics(t, func() { s.wrap(tt.job).Run() })
			assert.Equal(t, 1, tt.job.calls)
		})
	}
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	s := NewScheduler(zap.NewNop(), 0)
	job := &fakeJob{name: "ctx"}

	s.wrap(job).Run()
	require.NotNil(t, job.ctx)
	assert.NoError(t, job.ctx.Err())

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	assert.ErrorIs(t, job.ctx.Err(), context.Canceled)
}
