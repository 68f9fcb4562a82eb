package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher 이벤트 발행 인터페이스
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// redisPublisher Redis pub/sub 발행 구현체
type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher 기존 Redis 클라이언트로 발행자를 생성합니다
func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

// NewRedisClient Redis 클라이언트를 생성하고 연결을 확인합니다
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	return client, nil
}

// Publish 메시지를 JSON으로 직렬화하여 발행합니다
func (r *redisPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("메시지 직렬화 실패: %w", err)
	}

	return r.client.Publish(ctx, channel, payload).Err()
}

// Close 클라이언트 종료
func (r *redisPublisher) Close() error {
	return r.client.Close()
}

// nopPublisher Redis가 설정되지 않은 경우 사용하는 발행자
type nopPublisher struct{}

// NewNopPublisher 아무것도 발행하지 않는 발행자를 생성합니다
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (nopPublisher) Close() error { return nil }
