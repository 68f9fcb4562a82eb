package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sony/gobreaker"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	"github.com/wekeepgrowing/semo-taskboard/pkg/breaker"
	"go.uber.org/zap"
)

// ErrStorageDisabled 저장소가 설정되지 않았을 때 반환
var ErrStorageDisabled = errors.New("blob storage is not configured")

// Config S3 호환 저장소 설정
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

// Enabled 버킷이 설정되었는지 확인
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// objectURL 업로드된 객체의 공개 URL
func (c Config) objectURL(key string) string {
	if c.PublicURL != "" {
		return strings.TrimRight(c.PublicURL, "/") + "/" + key
	}
	if c.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.Endpoint, "/"), c.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.Bucket, c.Region, key)
}

// S3Store S3에 이미지를 업로드하는 BlobStore 구현체
type S3Store struct {
	client  *s3.Client
	config  Config
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewBlobStore 설정에 따라 S3 저장소 또는 비활성 저장소 반환
func NewBlobStore(ctx context.Context, cfg Config, logger *zap.Logger) (service.BlobStore, error) {
	if !cfg.Enabled() {
		logger.Warn("저장소 설정이 없어 이미지 업로드가 비활성화됩니다")
		return disabledStore{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("AWS S3 설정 로드 실패: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// MinIO 등 S3 호환 엔드포인트
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("S3 클라이언트가 초기화되었습니다",
		zap.String("bucket", cfg.Bucket),
		zap.String("region", cfg.Region),
	)

	return &S3Store{
		client:  client,
		config:  cfg,
		breaker: breaker.New("s3", 30*time.Second, logger),
		logger:  logger,
	}, nil
}

// Upload 객체를 {folder}/{filename} 키로 업로드하고 공개 URL 반환
func (s *S3Store) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (string, error) {
	// 재시도 시 본문을 다시 읽을 수 있도록 메모리에 적재 (최대 10MB)
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("업로드 본문 읽기 실패: %w", err)
	}

	key := folder + "/" + filename
	_, err = s.breaker.Execute(func() (interface{}, error) {
		return s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.config.Bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data),
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(int64(len(data))),
			ACL:           s3types.ObjectCannedACLPublicRead,
		})
	})
	if err != nil {
		s.logger.Error("S3 업로드 실패",
			zap.String("key", key),
			zap.Int64("size", size),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to upload file to s3: %w", err)
	}

	return s.config.objectURL(key), nil
}

type disabledStore struct{}

func (disabledStore) Upload(context.Context, string, string, string, io.Reader, int64) (string, error) {
	return "", ErrStorageDisabled
}
