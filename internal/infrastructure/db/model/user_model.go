package model

import "time"

// UserModel 사용자 데이터베이스 모델
type UserModel struct {
	ID           string  `gorm:"type:varchar(16);primaryKey"`
	Email        string  `gorm:"size:320;not null;uniqueIndex:idx_users_email"`
	Name         string  `gorm:"size:100;not null"`
	PasswordHash string  `gorm:"size:100"`
	PasswordSalt string  `gorm:"size:64"`
	AvatarURL    *string `gorm:"size:1024"`

	EmailVerified          bool       `gorm:"not null;default:false;index:idx_users_unverified,priority:1"`
	VerificationTokenHash  *string    `gorm:"size:64;index"`
	VerificationExpiresAt  *time.Time `gorm:"index:idx_users_unverified,priority:2"`
	PasswordResetTokenHash *string    `gorm:"size:64;index"`
	PasswordResetExpiresAt *time.Time
	PasswordChangedAt      *time.Time

	Provider   *string `gorm:"size:32;index:idx_users_provider,priority:1"`
	ProviderID *string `gorm:"size:191;index:idx_users_provider,priority:2"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName 테이블 이름 지정
func (UserModel) TableName() string {
	return "users"
}
