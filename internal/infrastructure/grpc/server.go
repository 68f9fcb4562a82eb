package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/wekeepgrowing/semo-taskboard/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// HealthCheck 의존성 상태 확인 함수 (예: DB ping)
type HealthCheck func(ctx context.Context) error

// Server gRPC 서버 구조체
type Server struct {
	server  *grpc.Server
	health  *health.Server
	check   HealthCheck
	logger  *zap.Logger
	address string
	stop    chan struct{}
}

// Config gRPC 서버 설정
type Config struct {
	Port          string
	Debug         bool
	CheckInterval time.Duration
}

// NewServer gRPC 서버 생성
func NewServer(cfg Config, check HealthCheck, zapLogger *zap.Logger) *Server {
	// gRPC 서버 생성 (로그 인터셉터 포함)
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(logger.NewGrpcUnaryServerInterceptor(zapLogger)),
		grpc.ChainStreamInterceptor(logger.NewGrpcStreamServerInterceptor(zapLogger)),
	)

	// 헬스 체크 서비스 등록
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)

	// 서버 리플렉션 설정 (개발 환경에서만 사용)
	if cfg.Debug {
		reflection.Register(server)
	}

	s := &Server{
		server:  server,
		health:  healthServer,
		check:   check,
		logger:  zapLogger,
		address: fmt.Sprintf(":%s", cfg.Port),
		stop:    make(chan struct{}),
	}
	s.refresh()

	if check != nil {
		interval := cfg.CheckInterval
		if interval <= 0 {
			interval = 15 * time.Second
		}
		go s.watch(interval)
	}

	return s
}

// refresh 의존성 상태를 헬스 서버에 반영
func (s *Server) refresh() {
	status := healthpb.HealthCheckResponse_SERVING
	if s.check != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.check(ctx); err != nil {
			s.logger.Warn("헬스 체크 실패", zap.Error(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
}

func (s *Server) watch(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh()
		case <-s.stop:
			return
		}
	}
}

// Start gRPC 서버 시작
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("gRPC 서버 리스너 생성 실패: %w", err)
	}

	s.logger.Info("gRPC 서버 시작",
		zap.String("address", s.address),
	)

	return s.server.Serve(listener)
}

// Stop gRPC 서버 중지
func (s *Server) Stop() {
	s.logger.Info("gRPC 서버 종료 중...")
	close(s.stop)
	s.health.Shutdown()
	s.server.GracefulStop()
	s.logger.Info("gRPC 서버 종료 완료")
}
