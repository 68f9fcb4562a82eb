package logger

import (
	"context"
	"path"
	"time"

	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatusError는 AppError를 매핑 테이블에 따라 gRPC status 에러로 변환합니다.
func toStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return status.Error(apperrors.ToGRPCCode(appErr.Code()), appErr.Message())
	}
	return status.Error(codes.Internal, apperrors.OpaqueMessage)
}

func logGrpcResult(logger *zap.Logger, kind, fullMethod string, err error, duration time.Duration) {
	code := status.Code(err)
	fields := []zap.Field{
		zap.String("grpc.service", path.Dir(fullMethod)[1:]),
		zap.String("grpc.method", path.Base(fullMethod)),
		zap.String("grpc.code", code.String()),
		zap.Duration("grpc.duration", duration),
	}

	switch code {
	case codes.OK:
		logger.Info("gRPC "+kind+" 완료", fields...)
	case codes.Canceled, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted, codes.Unavailable:
		logger.Warn("gRPC "+kind+" 실패", append(fields, zap.Error(err))...)
	default:
		logger.Error("gRPC "+kind+" 오류", append(fields, zap.Error(err))...)
	}
}

// NewGrpcUnaryServerInterceptor는 단일 요청/응답 gRPC 메서드에 대한 로깅 인터셉터를 생성합니다.
func NewGrpcUnaryServerInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		startTime := time.Now()
		resp, err := handler(ctx, req)
		err = toStatusError(err)
		logGrpcResult(logger, "요청", info.FullMethod, err, time.Since(startTime))
		return resp, err
	}
}

// NewGrpcStreamServerInterceptor는 스트리밍 gRPC 메서드에 대한 로깅 인터셉터를 생성합니다.
func NewGrpcStreamServerInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		startTime := time.Now()
		err := toStatusError(handler(srv, ss))
		logGrpcResult(logger, "스트림", info.FullMethod, err, time.Since(startTime))
		return err
	}
}
