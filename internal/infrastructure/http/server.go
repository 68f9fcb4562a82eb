package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/wekeepgrowing/semo-taskboard/pkg/logger"
	"go.uber.org/zap"
)

// HealthCheck 의존성 상태 확인 함수 (예: DB ping)
type HealthCheck func(ctx context.Context) error

// Server HTTP 서버 구조체
type Server struct {
	router  *echo.Echo
	server  *http.Server
	logger  *zap.Logger
	address string
}

// Config HTTP 서버 설정
type Config struct {
	Port         string
	Timeout      int
	Debug        bool
	AllowOrigins []string
	// 요청 본문 최대 크기 (예: "12M")
	BodyLimit string
}

// NewServer HTTP 서버 생성
func NewServer(cfg Config, zapLogger *zap.Logger) *Server {
	// Echo 인스턴스 생성
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// 기본 미들웨어 설정
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// 로그 미들웨어 설정
	e.Use(logger.NewEchoRequestLogger(zapLogger))

	// 본문 크기 제한 (이미지 업로드 10MB + multipart 여유분)
	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "12M"
	}
	e.Use(middleware.BodyLimit(bodyLimit))

	// CORS 설정
	if len(cfg.AllowOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.AllowOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
			AllowCredentials: true,
		}))
	}

	// Echo 로거, 에러 핸들러, 검증기 설정
	logger.WithEchoLogger(e, zapLogger, cfg.Debug)
	e.Validator = NewRequestValidator()

	// HTTP 서버 주소 설정
	address := fmt.Sprintf(":%s", cfg.Port)

	// HTTP 서버 설정
	server := &http.Server{
		Addr:         address,
		ReadTimeout:  time.Duration(cfg.Timeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Timeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Timeout) * time.Second,
	}

	return &Server{
		router:  e,
		server:  server,
		logger:  zapLogger,
		address: address,
	}
}

// Router Echo 인스턴스 반환
func (s *Server) Router() *echo.Echo {
	return s.router
}

// RegisterHealth 헬스 체크 라우트 등록
func (s *Server) RegisterHealth(check HealthCheck) {
	s.router.GET("/health", func(c echo.Context) error {
		if check != nil {
			if err := check(c.Request().Context()); err != nil {
				s.logger.Warn("헬스 체크 실패", zap.Error(err))
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
				})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})
}

// Start HTTP 서버 시작
func (s *Server) Start() error {
	s.logger.Info("HTTP 서버 시작",
		zap.String("address", s.address),
	)

	// 서버 시작
	s.server.Handler = s.router
	return s.router.StartServer(s.server)
}

// Stop HTTP 서버 종료
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP 서버 종료 중...")

	if err := s.router.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP 서버 종료 실패: %w", err)
	}

	s.logger.Info("HTTP 서버 종료 완료")
	return nil
}
