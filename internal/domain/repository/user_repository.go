package repository

import (
	"context"
	"time"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
)

// UserField 사용자 부분 업데이트 단위
type UserField string

const (
	UserFieldName          UserField = "name"
	UserFieldAvatar        UserField = "avatar"
	UserFieldPassword      UserField = "password"       // 해시, 솔트, 변경 시각
	UserFieldVerification  UserField = "verification"   // 인증 여부와 인증 토큰
	UserFieldPasswordReset UserField = "password_reset" // 재설정 토큰과 만료 시각
	UserFieldProvider      UserField = "provider"
)

// UserRepository 사용자 저장소. 조회 결과가 없으면 (nil, nil)을 반환합니다.
type UserRepository interface {
	// FindByID ID로 사용자 조회
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail 정규화된 이메일로 사용자 조회
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByProvider 소셜 로그인 (provider, providerID)로 사용자 조회
	FindByProvider(ctx context.Context, provider, providerID string) (*entity.User, error)

	// FindByVerificationTokenHash 이메일 인증 토큰 해시로 조회
	FindByVerificationTokenHash(ctx context.Context, tokenHash string) (*entity.User, error)

	// FindByResetTokenHash 비밀번호 재설정 토큰 해시로 조회
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error)

	// Create 새 사용자 생성
	Create(ctx context.Context, user *entity.User) error

	// Update fields로 지정한 컬럼만 기록합니다. 사용자가 없으면 ErrNotFound를 반환합니다
	Update(ctx context.Context, user *entity.User, fields ...UserField) error

	// Delete 사용자 삭제
	Delete(ctx context.Context, id string) error

	// DeleteUnverifiedExpired 인증 기한이 지난 미인증 사용자를 삭제하고 삭제 건수를 반환합니다
	DeleteUnverifiedExpired(ctx context.Context, now time.Time) (int64, error)
}
