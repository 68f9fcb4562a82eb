package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
)

// 폐기된 토큰 키 접두사
const revokedTokenKeyPrefix = "taskboard:revoked:"

// RedisConfig Redis 설정
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr host:port 형태의 주소
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled Redis 사용 여부
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// RedisRevocationStore 로그아웃된 토큰 ID를 TTL과 함께 Redis에 보관합니다
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore Redis 기반 폐기 목록 생성
func NewRedisRevocationStore(client *redis.Client) service.RevocationStore {
	return &RedisRevocationStore{client: client}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedTokenKeyPrefix+tokenID, "1", ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, revokedTokenKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemoryRevocationStore Redis가 없는 단일 인스턴스 환경용 폐기 목록
type MemoryRevocationStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewMemoryRevocationStore 메모리 기반 폐기 목록 생성
func NewMemoryRevocationStore() service.RevocationStore {
	return &MemoryRevocationStore{entries: make(map[string]time.Time)}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, until := range s.entries {
		if until.Before(now) {
			delete(s.entries, id)
		}
	}
	if ttl > 0 {
		s.entries[tokenID] = now.Add(ttl)
	}
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.entries[tokenID]
	return ok && until.After(time.Now()), nil
}
