package service

import (
	"context"
	"time"
)

// TokenClaims 검증된 액세스 토큰의 내용
type TokenClaims struct {
	TokenID   string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService 서명된 액세스 토큰 발급/검증
type TokenService interface {
	// Issue 사용자에 대한 새 토큰을 발급합니다
	Issue(userID string, now time.Time) (string, *TokenClaims, error)

	// Parse 서명과 만료를 검증하고 클레임을 반환합니다
	Parse(token string) (*TokenClaims, error)

	// TTL 토큰 유효 기간
	TTL() time.Duration
}

// RevocationStore 로그아웃된 토큰 ID 목록
type RevocationStore interface {
	// Revoke 토큰 ID를 만료 시각까지 폐기 목록에 등록합니다
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked 폐기 여부 확인
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
