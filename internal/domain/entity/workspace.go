package entity

import "time"

// Workspace 테넌트 경계가 되는 워크스페이스
type Workspace struct {
	ID        string
	Name      string
	ImageURL  *string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwner 소유자 여부
func (w *Workspace) IsOwner(userID string) bool {
	return w.OwnerID == userID
}

// Role 워크스페이스 멤버 역할
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Valid 허용된 역할인지 확인
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Authority 역할에 대응하는 권한 등급
func (r Role) Authority() Authority {
	switch r {
	case RoleAdmin:
		return AuthorityAdmin
	case RoleMember:
		return AuthorityMember
	default:
		return AuthorityNone
	}
}

// WorkspaceMember 사용자와 워크스페이스의 멤버십
type WorkspaceMember struct {
	ID          string
	WorkspaceID string
	UserID      string
	Role        Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MemberProfile 멤버 목록 조회용 (사용자 정보 포함)
type MemberProfile struct {
	WorkspaceMember
	Email     string
	Name      string
	AvatarURL *string
	IsOwner   bool
}
