package service

import "time"

// Clock 현재 시각 제공자. 테스트에서 고정 시각을 주입할 수 있습니다.
type Clock interface {
	Now() time.Time
}

// SystemClock UTC 기준 실제 시각
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock 항상 같은 시각을 반환하는 Clock
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At.UTC() }
