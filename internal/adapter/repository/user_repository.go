package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	infradb "github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db/model"
	"gorm.io/gorm"
)

// UserRepositoryImpl 사용자 저장소 구현체
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 사용자 저장소 생성
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &UserRepositoryImpl{db: db}
}

var userColumns = map[repository.UserField][]string{
	repository.UserFieldName:          {"name"},
	repository.UserFieldAvatar:        {"avatar_url"},
	repository.UserFieldPassword:      {"password_hash", "password_salt", "password_changed_at"},
	repository.UserFieldVerification:  {"email_verified", "verification_token_hash", "verification_expires_at"},
	repository.UserFieldPasswordReset: {"password_reset_token_hash", "password_reset_expires_at"},
	repository.UserFieldProvider:      {"provider", "provider_id"},
}

func toUserModel(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:                     u.ID,
		Email:                  u.Email,
		Name:                   u.Name,
		PasswordHash:           u.PasswordHash,
		PasswordSalt:           u.PasswordSalt,
		AvatarURL:              u.AvatarURL,
		EmailVerified:          u.EmailVerified,
		VerificationTokenHash:  u.VerificationTokenHash,
		VerificationExpiresAt:  u.VerificationExpiresAt,
		PasswordResetTokenHash: u.PasswordResetTokenHash,
		PasswordResetExpiresAt: u.PasswordResetExpiresAt,
		PasswordChangedAt:      u.PasswordChangedAt,
		Provider:               u.Provider,
		ProviderID:             u.ProviderID,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

func toUserEntity(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:                     m.ID,
		Email:                  m.Email,
		Name:                   m.Name,
		PasswordHash:           m.PasswordHash,
		PasswordSalt:           m.PasswordSalt,
		AvatarURL:              m.AvatarURL,
		EmailVerified:          m.EmailVerified,
		VerificationTokenHash:  m.VerificationTokenHash,
		VerificationExpiresAt:  m.VerificationExpiresAt,
		PasswordResetTokenHash: m.PasswordResetTokenHash,
		PasswordResetExpiresAt: m.PasswordResetExpiresAt,
		PasswordChangedAt:      m.PasswordChangedAt,
		Provider:               m.Provider,
		ProviderID:             m.ProviderID,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, args ...interface{}) (*entity.User, error) {
	var m model.UserModel
	if err := infradb.Conn(ctx, r.db).Where(query, args...).First(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("사용자 조회 실패: %w", err)
	}
	return toUserEntity(&m), nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", entity.NormalizeEmail(email))
}

func (r *UserRepositoryImpl) FindByProvider(ctx context.Context, provider, providerID string) (*entity.User, error) {
	return r.findOne(ctx, "provider = ? AND provider_id = ?", provider, providerID)
}

func (r *UserRepositoryImpl) FindByVerificationTokenHash(ctx context.Context, tokenHash string) (*entity.User, error) {
	return r.findOne(ctx, "verification_token_hash = ?", tokenHash)
}

func (r *UserRepositoryImpl) FindByResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error) {
	return r.findOne(ctx, "password_reset_token_hash = ?", tokenHash)
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := toUserModel(user)
	m.Email = entity.NormalizeEmail(m.Email)
	if err := infradb.Conn(ctx, r.db).Create(m).Error; err != nil {
		return translateDuplicate(err)
	}
	user.Email = m.Email
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// Update 지정한 필드의 컬럼만 기록합니다 (nil 포인터는 NULL로 기록됩니다)
func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User, fields ...repository.UserField) error {
	if len(fields) == 0 {
		return nil
	}
	columns, err := columnsOf(fields, userColumns)
	if err != nil {
		return err
	}

	m := toUserModel(user)
	if err := updateColumns(infradb.Conn(ctx, r.db), m, user.ID, columns); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("사용자 업데이트 실패: %w", translateDuplicate(err))
	}
	user.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := infradb.Conn(ctx, r.db).Where("id = ?", id).Delete(&model.UserModel{}).Error; err != nil {
		return fmt.Errorf("사용자 삭제 실패: %w", err)
	}
	return nil
}

func (r *UserRepositoryImpl) DeleteUnverifiedExpired(ctx context.Context, now time.Time) (int64, error) {
	result := infradb.Conn(ctx, r.db).
		Where("email_verified = ? AND verification_expires_at IS NOT NULL AND verification_expires_at < ?", false, now.UTC()).
		Delete(&model.UserModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("미인증 사용자 삭제 실패: %w", result.Error)
	}
	return result.RowsAffected, nil
}
