package breaker

import (
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// New 외부 호출용 서킷 브레이커 생성.
// 연속 실패가 3회를 넘으면 timeout 동안 호출을 차단합니다.
func New(name string, timeout time.Duration, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("서킷 브레이커 상태 변경",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}
