package model

import "time"

// WorkspaceModel 워크스페이스 데이터베이스 모델
type WorkspaceModel struct {
	ID        string    `gorm:"type:varchar(16);primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	ImageURL  *string   `gorm:"size:1024"`
	OwnerID   string    `gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (WorkspaceModel) TableName() string {
	return "workspaces"
}

// WorkspaceMemberModel 멤버십 모델. (workspace_id, user_id)는 유일합니다.
type WorkspaceMemberModel struct {
	ID          string    `gorm:"type:varchar(16);primaryKey"`
	WorkspaceID string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_members_workspace_user,priority:1"`
	UserID      string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_members_workspace_user,priority:2;index"`
	Role        string    `gorm:"size:16;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (WorkspaceMemberModel) TableName() string {
	return "workspace_members"
}

// WorkspaceInviteModel 초대 모델. (workspace_id, email)은 유일합니다.
type WorkspaceInviteModel struct {
	ID          string    `gorm:"type:varchar(16);primaryKey"`
	WorkspaceID string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_invites_workspace_email,priority:1"`
	Email       string    `gorm:"size:320;not null;uniqueIndex:idx_invites_workspace_email,priority:2"`
	Role        string    `gorm:"size:16;not null"`
	TokenHash   string    `gorm:"size:64;not null;index"`
	InviterID   string    `gorm:"type:varchar(16);not null"`
	ExpiresAt   time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (WorkspaceInviteModel) TableName() string {
	return "workspace_invites"
}
