package entity

// Authority 워크스페이스에 대한 사용자의 권한 등급.
// 값이 클수록 강한 권한이며 NONE < MEMBER < ADMIN < OWNER 순서를 가집니다.
type Authority int

const (
	AuthorityNone Authority = iota
	AuthorityMember
	AuthorityAdmin
	AuthorityOwner
)

func (a Authority) String() string {
	switch a {
	case AuthorityOwner:
		return "OWNER"
	case AuthorityAdmin:
		return "ADMIN"
	case AuthorityMember:
		return "MEMBER"
	default:
		return "NONE"
	}
}

// Max 두 권한 중 높은 쪽을 반환합니다
func (a Authority) Max(other Authority) Authority {
	if other > a {
		return other
	}
	return a
}

// CanManage OWNER 또는 ADMIN
func (a Authority) CanManage() bool {
	return a >= AuthorityAdmin
}

// CanAccess NONE이 아닌 모든 권한
func (a Authority) CanAccess() bool {
	return a > AuthorityNone
}

// AuthorityOf 소유자 여부와 멤버십 행(없으면 nil)으로 권한을 계산합니다.
// 소유자 확인이 우선이며 멤버십 행은 보조 정보로만 사용됩니다.
func AuthorityOf(workspace *Workspace, userID string, member *WorkspaceMember) Authority {
	authority := AuthorityNone
	if workspace != nil && workspace.OwnerID == userID {
		authority = AuthorityOwner
	}
	if member != nil && member.UserID == userID {
		authority = authority.Max(member.Role.Authority())
	}
	return authority
}

// CanRemoveMember 멤버 제거 가능 여부.
// 관리 권한이 있어야 하며 워크스페이스 소유자는 이 경로로 제거할 수 없습니다.
func CanRemoveMember(actor Authority, workspace *Workspace, target *WorkspaceMember) bool {
	if !actor.CanManage() || workspace == nil || target == nil {
		return false
	}
	return target.UserID != workspace.OwnerID
}
