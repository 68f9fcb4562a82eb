package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
)

// Config JWT 서명 설정
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// accessClaims 표준 클레임과 밀리초 단위 발급 시각(iat_ms)
type accessClaims struct {
	jwt.RegisteredClaims
	IssuedAtMillis int64 `json:"iat_ms"`
}

// JWTService HS256 서명 액세스 토큰 발급기
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  service.Clock
}

// NewJWTService JWT 서비스 생성
func NewJWTService(cfg Config, clock service.Clock) (service.TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret이 설정되지 않았습니다")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	if clock == nil {
		clock = service.SystemClock{}
	}

	return &JWTService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		clock:  clock,
	}, nil
}

// Issue 새 액세스 토큰 발급. 발급 시각은 밀리초, 만료 시각은 초 단위입니다.
func (s *JWTService) Issue(userID string, now time.Time) (string, *service.TokenClaims, error) {
	issuedAt := now.UTC().Truncate(time.Millisecond)
	expiresAt := issuedAt.Truncate(time.Second).Add(s.ttl)
	tokenID := uuid.NewString()

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		IssuedAtMillis: issuedAt.UnixMilli(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("토큰 서명 실패: %w", err)
	}

	return signed, &service.TokenClaims{
		TokenID:   tokenID,
		UserID:    userID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse 서명 알고리즘, 서명, 만료를 검증합니다
func (s *JWTService) Parse(tokenString string) (*service.TokenClaims, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			// HMAC 이외의 알고리즘은 거부
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" || claims.ID == "" || claims.IssuedAt == nil {
		return nil, errors.New("토큰 클레임이 올바르지 않습니다")
	}
	// iat_ms는 iat와 같은 초를 가리켜야 합니다
	issuedAt := time.UnixMilli(claims.IssuedAtMillis).UTC()
	if claims.IssuedAtMillis <= 0 || issuedAt.Unix() != claims.IssuedAt.Unix() {
		return nil, errors.New("토큰 발급 시각이 올바르지 않습니다")
	}

	return &service.TokenClaims{
		TokenID:   claims.ID,
		UserID:    claims.Subject,
		IssuedAt:  issuedAt,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// TTL 토큰 유효 기간
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}
