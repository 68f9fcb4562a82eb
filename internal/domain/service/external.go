package service

import (
	"context"
	"io"
)

// Mailer 외부 메일 발송 채널
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// BlobStore 이미지 업로드 저장소. 업로드된 객체의 영구 URL을 반환합니다.
type BlobStore interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (string, error)
}

// OAuthProfile 외부 인증 제공자가 확인한 사용자 정보
type OAuthProfile struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
	AvatarURL  string
}

// OAuthProvider 외부 인증 제공자 (google, github)
type OAuthProvider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*OAuthProfile, error)
}

// EventPublisher 워크스페이스 이벤트 발행
type EventPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}
