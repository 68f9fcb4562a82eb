package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// User 사용자 도메인 엔티티
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	PasswordSalt string
	AvatarURL    *string

	EmailVerified          bool
	VerificationTokenHash  *string
	VerificationExpiresAt  *time.Time
	PasswordResetTokenHash *string
	PasswordResetExpiresAt *time.Time
	PasswordChangedAt      *time.Time

	// 소셜 로그인 연결 정보
	Provider   *string
	ProviderID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail 이메일을 비교 가능한 형태로 정규화합니다.
// Caser는 상태를 가지므로 호출마다 새로 만듭니다.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// HasPassword 비밀번호 로그인이 가능한 계정인지 확인
func (u *User) HasPassword() bool {
	return u.PasswordHash != "" && u.PasswordSalt != ""
}

// IssuedBeforePasswordChange 토큰 발급 시각이 마지막 비밀번호 변경보다 이전인지 확인합니다.
// 토큰 발급 시각은 밀리초 단위이므로 변경 시각도 밀리초 단위로 내림하여 비교합니다.
func (u *User) IssuedBeforePasswordChange(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Before(u.PasswordChangedAt.Truncate(time.Millisecond))
}

// DiscardPassword 비밀번호 로그인을 막고 now 이전에 발급된 토큰을 무효화합니다
func (u *User) DiscardPassword(now time.Time) {
	u.PasswordHash = ""
	u.PasswordSalt = ""
	u.PasswordChangedAt = &now
}

// VerificationExpired 미인증 계정의 인증 기한이 지났는지 확인
func (u *User) VerificationExpired(now time.Time) bool {
	return !u.EmailVerified && u.VerificationExpiresAt != nil && u.VerificationExpiresAt.Before(now)
}

// MarkVerified 이메일 인증 완료 처리
func (u *User) MarkVerified() {
	u.EmailVerified = true
	u.VerificationTokenHash = nil
	u.VerificationExpiresAt = nil
}

// LinkProvider 소셜 로그인 계정을 연결합니다
func (u *User) LinkProvider(provider, providerID string) {
	u.Provider = &provider
	u.ProviderID = &providerID
}
