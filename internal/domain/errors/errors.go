// Package errors는 도메인 에러를 정의합니다.
// 모든 값은 pkg/errors.AppError이며 코드에 따라 HTTP 상태가 결정됩니다.
package errors

import (
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
)

func newErr(code, message string) *apperrors.AppError {
	return apperrors.NewAppError(code, message, nil)
}

// 인증 (401)
var (
	ErrUnauthenticated    = newErr(apperrors.ErrUnauthenticated, "authentication required")
	ErrInvalidToken       = newErr(apperrors.ErrUnauthenticated, "invalid or expired token")
	ErrStaleToken         = newErr(apperrors.ErrUnauthenticated, "token was issued before the last password change, please log in again")
	ErrInvalidCredentials = newErr(apperrors.ErrUnauthenticated, "invalid email or password")
	ErrEmailNotVerified   = newErr(apperrors.ErrUnauthenticated, "email address is not verified")
)

// 권한 (403)
var (
	// ErrAccessDenied는 워크스페이스가 없는 경우와 권한이 없는 경우를 구분하지 않습니다
	ErrAccessDenied       = newErr(apperrors.ErrUnauthorized, "access denied")
	ErrOwnerNotRemovable  = newErr(apperrors.ErrUnauthorized, "the workspace owner cannot be removed")
	ErrOwnerCannotLeave   = newErr(apperrors.ErrUnauthorized, "the workspace owner cannot leave, transfer ownership or delete the workspace")
	ErrOwnerRoleImmutable = newErr(apperrors.ErrUnauthorized, "the workspace owner's role cannot be changed")
)

// 조회 실패 (404)
var (
	ErrWorkspaceNotFound  = newErr(apperrors.ErrNotFound, "workspace not found")
	ErrUserNotFound       = newErr(apperrors.ErrNotFound, "user not found")
	ErrMemberNotFound     = newErr(apperrors.ErrNotFound, "member not found")
	ErrInviteNotFound     = newErr(apperrors.ErrNotFound, "invite not found")
	ErrProjectNotFound    = newErr(apperrors.ErrNotFound, "project not found")
	ErrTaskNotFound       = newErr(apperrors.ErrNotFound, "task not found")
	ErrCommentNotFound    = newErr(apperrors.ErrNotFound, "comment not found")
	ErrAttachmentNotFound = newErr(apperrors.ErrNotFound, "attachment not found")
)

// 충돌 (409)
var (
	ErrEmailTaken        = newErr(apperrors.ErrConflict, "email is already registered")
	ErrAlreadyMember     = newErr(apperrors.ErrConflict, "user is already a member of this workspace")
	ErrInviteAlreadySent = newErr(apperrors.ErrConflict, "an invitation has already been sent to this email")
	ErrAlreadyVerified   = newErr(apperrors.ErrConflict, "email address is already verified")
)

// 입력 오류 (400)
var (
	ErrValidation             = newErr(apperrors.ErrInvalidArgument, "invalid request")
	ErrInvalidOrExpiredInvite = newErr(apperrors.ErrInvalidArgument, "invalid or expired invitation")
	ErrInvalidOrExpiredLink   = newErr(apperrors.ErrInvalidArgument, "invalid or expired link")
	ErrNotAWorkspaceMember    = newErr(apperrors.ErrInvalidArgument, "assignee is not a member of this workspace")
	ErrSelfParent             = newErr(apperrors.ErrInvalidArgument, "a task cannot be its own parent")
	ErrCrossProjectParent     = newErr(apperrors.ErrInvalidArgument, "parent task must belong to the same project")
	ErrNestedSubtask          = newErr(apperrors.ErrInvalidArgument, "subtasks cannot have subtasks")
	ErrCrossWorkspaceMove     = newErr(apperrors.ErrInvalidArgument, "tasks can only move between projects of the same workspace")
	ErrInvalidRole            = newErr(apperrors.ErrInvalidArgument, "invalid role")
	ErrWeakPassword           = newErr(apperrors.ErrInvalidArgument, "password is too short")
	ErrUnsupportedMediaType   = newErr(apperrors.ErrInvalidArgument, "unsupported image type")
	ErrFileTooLarge           = newErr(apperrors.ErrInvalidArgument, "file exceeds the 10MB limit")
	ErrInvalidCursor          = newErr(apperrors.ErrInvalidArgument, "invalid cursor")
	ErrUnknownProvider        = newErr(apperrors.ErrInvalidArgument, "unknown identity provider")
	ErrTransferToSelf         = newErr(apperrors.ErrInvalidArgument, "ownership is already held by this user")
)

// Validation은 필드 메시지를 가진 입력 오류를 생성합니다
func Validation(message string) error {
	return apperrors.NewAppError(apperrors.ErrInvalidArgument, message, nil)
}
