package errors

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogError는 에러를 코드와 함께 기록합니다.
// 4xx로 매핑되는 코드는 Warn, 그 외는 Error 레벨입니다.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	code := CodeOf(err)
	level := zapcore.ErrorLevel
	if ToHTTPStatus(code) < 500 {
		level = zapcore.WarnLevel
	}

	if ce := logger.Check(level, msg); ce != nil {
		ce.Write(append([]zap.Field{zap.Error(err), zap.String("error_code", code)}, fields...)...)
	}
}
