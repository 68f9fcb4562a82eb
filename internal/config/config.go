package config

import (
	"time"

	"github.com/wekeepgrowing/semo-taskboard/pkg/config"
	"github.com/wekeepgrowing/semo-taskboard/pkg/logger"
	"go.uber.org/zap"
)

// ServiceName 설정 파일 이름과 환경 변수 접두사 (TASKBOARD_)
const ServiceName = "taskboard"

// OAuthClient 소셜 로그인 클라이언트 설정
type OAuthClient struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// Config 태스크보드 서비스 설정 구조체
type Config struct {
	// 서비스 기본 정보
	Service struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
		AppURL  string `yaml:"app_url"`
	} `yaml:"service"`

	// 서버 설정
	Server struct {
		// HTTP 서버 설정
		HTTP struct {
			Port       string `yaml:"port"`
			Timeout    int    `yaml:"timeout"`
			Debug      bool   `yaml:"debug"`
			Production bool   `yaml:"production"`
		} `yaml:"http"`

		// gRPC 서버 설정 (헬스 체크)
		GRPC struct {
			Port string `yaml:"port"`
		} `yaml:"grpc"`
	} `yaml:"server"`

	// 데이터베이스 설정
	Database struct {
		URL             string `yaml:"url"`
		Driver          string `yaml:"driver"`
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Name            string `yaml:"name"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		SSLMode         string `yaml:"sslmode"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
		AutoMigrate     bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	// Redis 설정. host가 비어 있으면 메모리 저장소를 사용합니다
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	// JWT 설정
	JWT struct {
		Secret           string `yaml:"secret"`
		TokenExpiryHours int    `yaml:"token_expiry_hours"`
	} `yaml:"jwt"`

	// 목록 커서 서명 키
	Cursor struct {
		Secret string `yaml:"secret"`
	} `yaml:"cursor"`

	// 로그 설정
	Log struct {
		Level      string `yaml:"level"`
		Format     string `yaml:"format"`
		Output     string `yaml:"output"`
		FilePath   string `yaml:"file_path"`
		MaxSize    int    `yaml:"max_size"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"`
	} `yaml:"log"`

	// Email 설정
	Email struct {
		SenderEmail string `yaml:"sender_email"`
		SMTPHost    string `yaml:"smtp_host"`
		SMTPPort    int    `yaml:"smtp_port"`
		SMTPUser    string `yaml:"smtp_user"`
		SMTPPass    string `yaml:"smtp_pass"`
	} `yaml:"email"`

	// 이미지 저장소 (S3 호환)
	Storage struct {
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		PublicURL string `yaml:"public_url"`
	} `yaml:"storage"`

	// OAuth 설정
	OAuth struct {
		Google OAuthClient `yaml:"google"`
		Github OAuthClient `yaml:"github"`
	} `yaml:"oauth"`

	// OAuth state 쿠키 세션 키
	Session struct {
		Secret string `yaml:"secret"`
	} `yaml:"session"`

	// 인증 설정
	Auth struct {
		PasswordMinLength int `yaml:"password_min_length"`
		HashCost          int `yaml:"hash_cost"`
	} `yaml:"auth"`

	// 정리 작업 cron 스펙
	Sweep struct {
		InviteSpec     string `yaml:"invite_spec"`
		UnverifiedSpec string `yaml:"unverified_spec"`
	} `yaml:"sweep"`

	// 로거 인스턴스
	Logger *zap.Logger
}

// TokenTTL 액세스 토큰 유효 기간
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TokenExpiryHours) * time.Hour
}

// defaults 설정 파일과 환경 변수에 값이 없을 때 사용하는 기본값
var defaults = map[string]interface{}{
	"service.name":               ServiceName,
	"service.version":            "dev",
	"service.app_url":            "http://localhost:3000",
	"server.port":                "8080",
	"server.timeout":             30,
	"server.grpc.port":           "9090",
	"database.driver":            "postgres",
	"database.port":              5432,
	"database.sslmode":           "disable",
	"database.max_open_conns":    25,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": 300,
	"database.auto_migrate":      true,
	"redis.port":                 6379,
	"jwt.token_expiry_hours":     24 * 7,
	"log.level":                  "info",
	"log.format":                 "json",
	"log.output":                 "stdout",
	"auth.password_min_length":   8,
	"auth.hash_cost":             10,
	"sweep.invite_spec":          "@every 1h",
	"sweep.unverified_spec":      "@every 1h",
}

var (
	// AppConfig는 어플리케이션 전체에서 사용하는 설정 인스턴스입니다.
	AppConfig *Config
)

// Load 설정 파일 로드
func Load() (*Config, error) {
	cfg, err := config.Load(ServiceName, defaults)
	if err != nil {
		return nil, err
	}

	appConfig := &Config{}

	// 서비스 정보
	appConfig.Service.Name = cfg.GetString("service.name")
	appConfig.Service.Version = cfg.GetString("service.version")
	appConfig.Service.AppURL = cfg.GetString("service.app_url")

	// HTTP 서버 설정
	appConfig.Server.HTTP.Port = cfg.GetString("server.port")
	appConfig.Server.HTTP.Timeout = cfg.GetInt("server.timeout")
	appConfig.Server.HTTP.Debug = cfg.GetBool("server.debug")
	appConfig.Server.HTTP.Production = cfg.GetBool("server.production")

	// gRPC 서버 설정
	appConfig.Server.GRPC.Port = cfg.GetString("server.grpc.port")

	// 데이터베이스 설정
	appConfig.Database.URL = cfg.GetString("database.url")
	appConfig.Database.Driver = cfg.GetString("database.driver")
	appConfig.Database.Host = cfg.GetString("database.host")
	appConfig.Database.Port = cfg.GetInt("database.port")
	appConfig.Database.Name = cfg.GetString("database.name")
	appConfig.Database.User = cfg.GetString("database.user")
	appConfig.Database.Password = cfg.GetString("database.password")
	appConfig.Database.SSLMode = cfg.GetString("database.sslmode")
	appConfig.Database.MaxOpenConns = cfg.GetInt("database.max_open_conns")
	appConfig.Database.MaxIdleConns = cfg.GetInt("database.max_idle_conns")
	appConfig.Database.ConnMaxLifetime = cfg.GetInt("database.conn_max_lifetime")
	appConfig.Database.AutoMigrate = cfg.GetBool("database.auto_migrate")

	// Redis 설정
	appConfig.Redis.Host = cfg.GetString("redis.host")
	appConfig.Redis.Port = cfg.GetInt("redis.port")
	appConfig.Redis.Password = cfg.GetString("redis.password")
	appConfig.Redis.DB = cfg.GetInt("redis.db")

	// JWT, 커서 설정
	appConfig.JWT.Secret = cfg.GetString("jwt.secret")
	appConfig.JWT.TokenExpiryHours = cfg.GetInt("jwt.token_expiry_hours")
	appConfig.Cursor.Secret = cfg.GetString("cursor.secret")
	if appConfig.Cursor.Secret == "" {
		appConfig.Cursor.Secret = appConfig.JWT.Secret
	}

	// 이메일 설정
	appConfig.Email.SenderEmail = cfg.GetString("email.sender_email")
	appConfig.Email.SMTPHost = cfg.GetString("email.smtp_host")
	appConfig.Email.SMTPPort = cfg.GetInt("email.smtp_port")
	appConfig.Email.SMTPUser = cfg.GetString("email.smtp_user")
	appConfig.Email.SMTPPass = cfg.GetString("email.smtp_pass")

	// 저장소 설정
	appConfig.Storage.Bucket = cfg.GetString("storage.bucket")
	appConfig.Storage.Region = cfg.GetString("storage.region")
	appConfig.Storage.Endpoint = cfg.GetString("storage.endpoint")
	appConfig.Storage.AccessKey = cfg.GetString("storage.access_key")
	appConfig.Storage.SecretKey = cfg.GetString("storage.secret_key")
	appConfig.Storage.PublicURL = cfg.GetString("storage.public_url")

	// 로그 설정
	appConfig.Log.Level = cfg.GetString("log.level")
	appConfig.Log.Format = cfg.GetString("log.format")
	appConfig.Log.Output = cfg.GetString("log.output")
	appConfig.Log.FilePath = cfg.GetString("log.file_path")
	appConfig.Log.MaxSize = cfg.GetInt("log.max_size")
	appConfig.Log.MaxBackups = cfg.GetInt("log.max_backups")
	appConfig.Log.MaxAge = cfg.GetInt("log.max_age")

	// OAuth, 세션 설정
	appConfig.OAuth.Google.ClientID = cfg.GetString("oauth.google.client_id")
	appConfig.OAuth.Google.ClientSecret = cfg.GetString("oauth.google.client_secret")
	appConfig.OAuth.Google.RedirectURL = cfg.GetString("oauth.google.redirect_url")
	appConfig.OAuth.Github.ClientID = cfg.GetString("oauth.github.client_id")
	appConfig.OAuth.Github.ClientSecret = cfg.GetString("oauth.github.client_secret")
	appConfig.OAuth.Github.RedirectURL = cfg.GetString("oauth.github.redirect_url")
	appConfig.Session.Secret = cfg.GetString("session.secret")

	// 인증 설정
	appConfig.Auth.PasswordMinLength = cfg.GetInt("auth.password_min_length")
	appConfig.Auth.HashCost = cfg.GetInt("auth.hash_cost")

	// 정리 작업 설정
	appConfig.Sweep.InviteSpec = cfg.GetString("sweep.invite_spec")
	appConfig.Sweep.UnverifiedSpec = cfg.GetString("sweep.unverified_spec")

	// 로거 생성
	appConfig.Logger, err = logger.NewZapLogger(logger.Config{
		Level:       appConfig.Log.Level,
		Format:      appConfig.Log.Format,
		Output:      appConfig.Log.Output,
		FilePath:    appConfig.Log.FilePath,
		MaxSize:     appConfig.Log.MaxSize,
		MaxBackups:  appConfig.Log.MaxBackups,
		MaxAge:      appConfig.Log.MaxAge,
		Development: appConfig.Server.HTTP.Debug,
	})
	if err != nil {
		return nil, err
	}

	// 전역 변수에 설정
	AppConfig = appConfig

	return appConfig, nil
}
