package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// 응답 envelope 상태 값
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// 운영 모드에서 5xx 응답에 사용되는 문구
const OpaqueMessage = "something went wrong"

// Envelope는 모든 JSON 응답의 공통 형태입니다
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ToEnvelope는 에러를 상태 코드와 envelope로 변환합니다.
// debug가 false이면 5xx 응답의 상세 내용은 숨겨집니다.
func ToEnvelope(err error, debug bool) (int, Envelope) {
	status := http.StatusInternalServerError
	message := err.Error()

	var appErr *AppError
	var echoErr *echo.HTTPError
	switch {
	case As(err, &appErr):
		status = ToHTTPStatus(appErr.Code())
		message = appErr.Message()
		if debug && appErr.Unwrap() != nil {
			message = appErr.Error()
		}
	case As(err, &echoErr):
		status = echoErr.Code
		if m, ok := echoErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	if status >= http.StatusInternalServerError {
		if !debug {
			message = OpaqueMessage
		}
		return status, Envelope{Status: StatusError, Message: message}
	}
	return status, Envelope{Status: StatusFail, Message: message}
}

// ToHTTPError는 에러를 Echo HTTP 에러로 변환합니다
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return echo.NewHTTPError(ToHTTPStatus(appErr.Code()), appErr.Message())
	}

	// Echo 에러인 경우 그대로 반환
	if echoErr, ok := err.(*echo.HTTPError); ok {
		return echoErr
	}

	// 기본 에러는 500으로 처리
	return echo.NewHTTPError(http.StatusInternalServerError, OpaqueMessage)
}

// FromHTTPError는 Echo HTTP 에러를 내부 에러로 변환합니다
func FromHTTPError(err error) error {
	if err == nil {
		return nil
	}

	// 이미 AppError인 경우 그대로 반환
	var appErr *AppError
	if As(err, &appErr) {
		return err
	}

	// Echo 에러 처리
	if echoErr, ok := err.(*echo.HTTPError); ok {
		code := httpStatusToCode(echoErr.Code)
		var msg string
		if m, ok := echoErr.Message.(string); ok {
			msg = m
		} else {
			msg = "HTTP error"
		}
		return NewAppError(code, msg, nil)
	}

	// 기본 에러는 Internal로 처리
	return NewAppError(ErrInternal, err.Error(), err)
}

// httpStatusToCode는 HTTP 상태 코드를 내부 에러 코드로 변환합니다
func httpStatusToCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return ErrInvalidArgument
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	case http.StatusGatewayTimeout:
		return ErrTimeout
	default:
		return ErrInternal
	}
}
