package entity

import "time"

// AuditLogType 감사 로그 유형
type AuditLogType string

const (
	AuditWorkspaceCreated     AuditLogType = "WORKSPACE_CREATED"
	AuditInviteIssued         AuditLogType = "INVITE_ISSUED"
	AuditInviteRevoked        AuditLogType = "INVITE_REVOKED"
	AuditInviteAccepted       AuditLogType = "INVITE_ACCEPTED"
	AuditMemberRoleChanged    AuditLogType = "MEMBER_ROLE_CHANGED"
	AuditMemberRemoved        AuditLogType = "MEMBER_REMOVED"
	AuditMemberLeft           AuditLogType = "MEMBER_LEFT"
	AuditOwnershipTransferred AuditLogType = "OWNERSHIP_TRANSFERRED"
)

// AuditLog 멤버십 변경 이력
type AuditLog struct {
	ID          string
	WorkspaceID string
	ActorID     string
	Type        AuditLogType
	Content     map[string]interface{}
	CreatedAt   time.Time
}
