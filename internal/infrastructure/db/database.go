package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/wekeepgrowing/semo-taskboard/pkg/logger"
	"github.com/xo/dburl"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	// cgo 없이 동작하는 sqlite 드라이버 ("sqlite" 이름으로 등록)
	_ "modernc.org/sqlite"
)

// 지원하는 드라이버
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config 데이터베이스 설정
type Config struct {
	// URL이 있으면 다른 접속 정보보다 우선합니다 (예: postgres://..., sqlite:/data/app.db)
	URL             string
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        gormlogger.LogLevel
}

// resolve 설정에서 드라이버와 DSN을 결정합니다
func (c Config) resolve() (string, string, error) {
	if c.URL != "" {
		u, err := dburl.Parse(c.URL)
		if err != nil {
			return "", "", fmt.Errorf("데이터베이스 URL 파싱 실패: %w", err)
		}
		switch u.Driver {
		case "postgres", "pgx":
			return DriverPostgres, u.DSN, nil
		case "sqlite3", "sqlite", "moderncsqlite":
			return DriverSQLite, sqliteDSN(u.DSN), nil
		default:
			return "", "", fmt.Errorf("지원하지 않는 데이터베이스 드라이버: %s", u.Driver)
		}
	}

	switch c.Driver {
	case DriverSQLite:
		return DriverSQLite, sqliteDSN(c.Name), nil
	case DriverPostgres, "":
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.Host, c.Port, c.User, c.Password, c.Name, sslMode,
		)
		return DriverPostgres, dsn, nil
	default:
		return "", "", fmt.Errorf("지원하지 않는 데이터베이스 드라이버: %s", c.Driver)
	}
}

// sqliteDSN 외래 키, 잠금 대기, 시간 형식 pragma를 붙입니다
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// NewDatabase 설정된 드라이버로 gorm 연결을 생성합니다.
func NewDatabase(config Config, zapLogger *zap.Logger) (*gorm.DB, error) {
	driver, dsn, err := config.resolve()
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn})
	default:
		dialector = postgres.Open(dsn)
	}

	logLevel := config.LogLevel
	if logLevel == 0 {
		logLevel = gormlogger.Warn
	}

	// GORM 로거 설정
	gormLogger := logger.NewGormLogger(
		zapLogger,
		logLevel,
		time.Second, // Slow SQL 임계값
		true,        // ErrRecordNotFound 무시
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	// 연결 풀 설정
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("SQL DB 인스턴스 획득 실패: %w", err)
	}

	if driver == DriverSQLite {
		// sqlite는 단일 작성자이므로 연결 하나로 직렬화합니다
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(config.MaxOpenConns)
		sqlDB.SetMaxIdleConns(config.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("데이터베이스 핑 실패: %w", err)
	}

	zapLogger.Info("데이터베이스 연결 성공",
		zap.String("driver", driver),
		zap.String("host", config.Host),
		zap.String("database", config.Name),
		zap.Int("max_open_conns", config.MaxOpenConns),
		zap.Int("max_idle_conns", config.MaxIdleConns),
		zap.Duration("conn_max_lifetime", config.ConnMaxLifetime),
	)

	return db, nil
}
