package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wekeepgrowing/semo-taskboard/internal/adapter/handler/http"
	"github.com/wekeepgrowing/semo-taskboard/internal/adapter/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/config"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/grpc"
	httpserver "github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/http"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/http/middleware"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/mail"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/oauth"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/scheduler"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/storage"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/token"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase"
	"github.com/wekeepgrowing/semo-taskboard/pkg/messaging"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// 1. 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	// 2. 로거 가져오기
	logger := cfg.Logger
	defer logger.Sync()

	logger.Info("태스크보드 서비스를 시작합니다...",
		zap.String("service", cfg.Service.Name),
		zap.String("version", cfg.Service.Version),
	)

	ctx := context.Background()
	clock := service.SystemClock{}

	// 3. 데이터베이스 연결
	gormLevel := gormlogger.Warn
	if cfg.Server.HTTP.Debug {
		gormLevel = gormlogger.Info
	}
	database, err := db.NewDatabase(db.Config{
		URL:             cfg.Database.URL,
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Name:            cfg.Database.Name,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		LogLevel:        gormLevel,
	}, logger)
	if err != nil {
		logger.Fatal("데이터베이스 연결 실패", zap.Error(err))
	}
	sqlDB, err := database.DB()
	if err != nil {
		logger.Fatal("데이터베이스 핸들 조회 실패", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(database, logger); err != nil {
			logger.Fatal("마이그레이션 실패", zap.Error(err))
		}
	}

	// 4. Redis 연결 (선택). 없으면 메모리 폐기 목록과 no-op 이벤트 발행기를 사용
	redisConfig := db.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	revocations := db.NewMemoryRevocationStore()
	publisher := messaging.NewNopPublisher()
	if redisConfig.Enabled() {
		redisClient, err := messaging.NewRedisClient(redisConfig.Addr(), redisConfig.Password, redisConfig.DB)
		if err != nil {
			logger.Fatal("Redis 연결 실패", zap.Error(err))
		}
		revocations = db.NewRedisRevocationStore(redisClient)
		publisher = messaging.NewRedisPublisher(redisClient)
	} else {
		logger.Warn("Redis 설정이 없어 토큰 폐기 목록을 메모리에 보관합니다")
	}
	defer publisher.Close()

	// 5. 외부 서비스 초기화
	tokens, err := token.NewJWTService(token.Config{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.Service.Name,
		TTL:    cfg.TokenTTL(),
	}, clock)
	if err != nil {
		logger.Fatal("토큰 서비스 초기화 실패", zap.Error(err))
	}

	mailer := mail.NewMailer(mail.SMTPConfig{
		Host:       cfg.Email.SMTPHost,
		Port:       cfg.Email.SMTPPort,
		Username:   cfg.Email.SMTPUser,
		Password:   cfg.Email.SMTPPass,
		From:       cfg.Email.SenderEmail,
		SenderName: cfg.Service.Name,
	}, logger)

	blobStore, err := storage.NewBlobStore(ctx, storage.Config{
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		PublicURL: cfg.Storage.PublicURL,
	}, logger)
	if err != nil {
		logger.Fatal("저장소 초기화 실패", zap.Error(err))
	}

	providers := oauth.NewProviders(
		oauth.ClientConfig(cfg.OAuth.Google),
		oauth.ClientConfig(cfg.OAuth.Github),
		logger,
	)

	// 6. 레포지토리, 유스케이스 초기화
	repositories := repository.NewRepositories(database)
	useCases := usecase.SetupUseCases(logger, cfg, repositories, usecase.Services{
		Clock:       clock,
		Tokens:      tokens,
		Revocations: revocations,
		Mailer:      mailer,
		BlobStore:   blobStore,
		Publisher:   publisher,
		Providers:   providers,
	})

	// 7. 정리 작업 스케줄러 설정
	jobScheduler := scheduler.NewScheduler(logger, 5*time.Minute)
	specs := map[string]string{
		usecase.JobExpiredInviteReaper:  cfg.Sweep.InviteSpec,
		usecase.JobUnverifiedUserReaper: cfg.Sweep.UnverifiedSpec,
	}
	for _, job := range useCases.Jobs {
		if err := jobScheduler.Register(specs[job.Name()], job); err != nil {
			logger.Fatal("정리 작업 등록 실패", zap.Error(err))
		}
	}

	// 8. HTTP 서버 생성 및 라우트 등록
	healthCheck := func(ctx context.Context) error { return sqlDB.PingContext(ctx) }

	httpServer := httpserver.NewServer(httpserver.Config{
		Port:         cfg.Server.HTTP.Port,
		Timeout:      cfg.Server.HTTP.Timeout,
		Debug:        cfg.Server.HTTP.Debug,
		AllowOrigins: []string{cfg.Service.AppURL},
	}, logger)
	httpServer.RegisterHealth(healthCheck)

	handlers := http.NewHandlers(logger, useCases, http.CookieConfig{
		Production: cfg.Server.HTTP.Production,
		TTL:        tokens.TTL(),
	}, cfg.Service.AppURL)
	sessionSecret := cfg.Session.Secret
	if sessionSecret == "" {
		sessionSecret = cfg.JWT.Secret
	}
	http.RegisterRoutes(
		httpServer.Router().Group("/api/v1"),
		handlers,
		middleware.NewJWTAuthMiddleware(useCases.Auth, logger).Handle(),
		middleware.NewSessionMiddleware(sessionSecret, cfg.Server.HTTP.Production),
	)

	// 9. gRPC 헬스 서버 생성
	grpcServer := grpc.NewServer(grpc.Config{
		Port:  cfg.Server.GRPC.Port,
		Debug: cfg.Server.HTTP.Debug,
	}, healthCheck, logger)

	// 10. 서버 시작
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error("HTTP 서버 종료", zap.Error(err))
		}
	}()

	go func() {
		if err := grpcServer.Start(); err != nil {
			logger.Error("gRPC 서버 종료", zap.Error(err))
		}
	}()

	jobScheduler.Start()

	// 11. 그레이스풀 종료를 위한 시그널 처리
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("서버를 종료합니다...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("HTTP 서버 종료 오류", zap.Error(err))
	}

	grpcServer.Stop()

	if err := jobScheduler.Stop(shutdownCtx); err != nil {
		logger.Error("스케줄러 종료 오류", zap.Error(err))
	}

	logger.Info("서버가 정상적으로 종료되었습니다")
}
