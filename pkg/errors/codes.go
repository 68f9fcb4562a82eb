package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// 에러 코드. 응답 상태와 로그 레벨은 코드로만 결정됩니다.
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrConflict        = "CONFLICT"
	ErrTimeout         = "TIMEOUT"

	// 외부 의존성(DB, SMTP, 스토리지) 실패
	ErrDependency = "DEPENDENCY"
)

type transportStatus struct {
	http int
	grpc codes.Code
}

var statusByCode = map[string]transportStatus{
	ErrInternal:        {http.StatusInternalServerError, codes.Internal},
	ErrNotFound:        {http.StatusNotFound, codes.NotFound},
	ErrInvalidArgument: {http.StatusBadRequest, codes.InvalidArgument},
	ErrUnauthenticated: {http.StatusUnauthorized, codes.Unauthenticated},
	ErrUnauthorized:    {http.StatusForbidden, codes.PermissionDenied},
	ErrConflict:        {http.StatusConflict, codes.AlreadyExists},
	ErrTimeout:         {http.StatusGatewayTimeout, codes.DeadlineExceeded},
	ErrDependency:      {http.StatusInternalServerError, codes.Unavailable},
}

func lookupStatus(code string) transportStatus {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return statusByCode[ErrInternal]
}

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다. 모르는 코드는 500입니다.
func ToHTTPStatus(code string) int {
	return lookupStatus(code).http
}

// ToGRPCCode는 에러 코드를 gRPC 코드로 변환합니다
func ToGRPCCode(code string) codes.Code {
	return lookupStatus(code).grpc
}
