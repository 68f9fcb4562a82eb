package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
)

var issuedAt = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, secret string, now time.Time) service.TokenService {
	t.Helper()
	svc, err := NewJWTService(Config{Secret: secret, Issuer: "taskboard", TTL: time.Hour}, service.FixedClock{At: now})
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService(Config{}, nil)
	assert.Error(t, err)

	svc, err := NewJWTService(Config{Secret: "secret"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, svc.TTL())
}

func TestJWTService_IssueAndParse(t *testing.T) {
	svc := newTestService(t, "test-secret", issuedAt.Add(30*time.Minute))

	signed, claims, err := svc.Issue("US01ABCDEFGHI", issuedAt.Add(750*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(750*time.Millisecond), claims.IssuedAt)
	assert.Equal(t, issuedAt.Add(time.Hour), claims.ExpiresAt)
	assert.NotEmpty(t, claims.TokenID)

	parsed, err := svc.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, claims, parsed)

	_, other, err := svc.Issue("US01ABCDEFGHI", issuedAt)
	require.NoError(t, err)
	assert.NotEqual(t, claims.TokenID, other.TokenID)
}

func TestJWTService_ParseRejects(t *testing.T) {
	issuer := newTestService(t, "test-secret", issuedAt)
	signed, _, err := issuer.Issue("US01ABCDEFGHI", issuedAt)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		ID:        "token-id",
		Subject:   "US01ABCDEFGHI",
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:       "token-id",
		Subject:  "US01ABCDEFGHI",
		IssuedAt: jwt.NewNumericDate(issuedAt),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "token-id",
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noMillis, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "token-id",
		Subject:   "US01ABCDEFGHI",
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	mismatchedMillis, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "token-id",
			Subject:   "US01ABCDEFGHI",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
		IssuedAtMillis: issuedAt.Add(-time.Minute).UnixMilli(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		now    time.Time
		token  string
	}{
		{name: "expired", secret: "test-secret", now: issuedAt.Add(time.Hour + time.Second), token: signed},
		{name: "issued in the future", secret: "test-secret", now: issuedAt.Add(-time.Minute), token: signed},
		{name: "other secret", secret: "another-secret", now: issuedAt, token: signed},
		{name: "other algorithm", secret: "test-secret", now: issuedAt, token: hs512},
		{name: "no expiry", secret: "test-secret", now: issuedAt, token: noExpiry},
		{name: "no subject", secret: "test-secret", now: issuedAt, token: noSubject},
		{name: "no millisecond issue time", secret: "test-secret", now: issuedAt, token: noMillis},
		{name: "millisecond issue time in another second", secret: "test-secret", now: issuedAt, token: mismatchedMillis},
		{name: "garbage", secret: "test-secret", now: issuedAt, token: "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(t, tt.secret, tt.now).Parse(tt.token)
			assert.Error(t, err)
		})
	}
}
