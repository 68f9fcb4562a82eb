package service

import "context"

// Job 스케줄러가 주기적으로 실행하는 작업.
// Run이 에러를 반환해도 스케줄러는 기록만 하고 다음 주기에 다시 실행합니다.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}
