package entity

import "time"

// InviteTTL 초대 유효 기간
const InviteTTL = 7 * 24 * time.Hour

// WorkspaceInvite 아직 수락되지 않은 워크스페이스 초대.
// 토큰 평문은 저장하지 않고 해시만 보관합니다.
type WorkspaceInvite struct {
	ID          string
	WorkspaceID string
	Email       string
	Role        Role
	TokenHash   string
	InviterID   string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired 만료 여부
func (i *WorkspaceInvite) Expired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}
