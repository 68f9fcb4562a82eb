package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	"go.uber.org/zap"
)

// cronLogger cron 내부 로그를 zap으로 전달
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

// Scheduler 주기 작업 실행기
type Scheduler struct {
	cron    *cron.Cron
	chain   cron.Chain
	logger  *zap.Logger
	timeout time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewScheduler 스케줄러 생성. timeout은 작업 1회 실행의 최대 시간입니다.
func NewScheduler(logger *zap.Logger, timeout time.Duration) *Scheduler {
	adapter := cronLogger{sugar: logger.Named("scheduler").Sugar()}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:    cron.New(cron.WithLogger(adapter)),
		chain:   cron.NewChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		logger:  logger,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Register 작업을 cron 스펙으로 등록 (예: "@every 1h")
func (s *Scheduler) Register(spec string, job service.Job) error {
	if _, err := s.cron.AddJob(spec, s.wrap(job)); err != nil {
		return fmt.Errorf("작업 등록 실패 (%s): %w", job.Name(), err)
	}

	s.logger.Info("주기 작업 등록",
		zap.String("job", job.Name()),
		zap.String("spec", spec),
	)
	return nil
}

// wrap panic 복구와 중복 실행 방지를 적용한 cron 작업
func (s *Scheduler) wrap(job service.Job) cron.Job {
	return s.chain.Then(cron.FuncJob(func() {
		s.run(job)
	}))
}

// run 작업 1회 실행. 실패는 로그만 남기고 다음 주기에 다시 실행됩니다.
func (s *Scheduler) run(job service.Job) {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.logger.Error("주기 작업 실패",
			zap.String("job", job.Name()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("주기 작업 완료",
		zap.String("job", job.Name()),
		zap.Duration("duration", time.Since(start)),
	)
}

// Start 스케줄러 시작
func (s *Scheduler) Start() {
	s.logger.Info("스케줄러 시작", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop 실행 중인 작업의 context를 취소하고 종료를 기다립니다
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.Info("스케줄러 종료 중...")
	s.cancel()

	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("스케줄러 종료 완료")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("스케줄러 종료 대기 시간 초과: %w", ctx.Err())
	}
}
