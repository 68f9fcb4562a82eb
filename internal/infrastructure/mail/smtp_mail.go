package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	"github.com/wekeepgrowing/semo-taskboard/pkg/breaker"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPConfig SMTP 설정 구조체
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	SenderName string
}

// Enabled SMTP 호스트가 설정되었는지 확인
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// SMTPClient gomail을 통한 이메일 발송 클라이언트
type SMTPClient struct {
	config  SMTPConfig
	dialer  *gomail.Dialer
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewSMTPClient SMTP 클라이언트 생성
func NewSMTPClient(cfg SMTPConfig, logger *zap.Logger) *SMTPClient {
	return &SMTPClient{
		config:  cfg,
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		breaker: breaker.New("smtp", 30*time.Second, logger),
		logger:  logger,
	}
}

// NewMailer 설정에 따라 SMTP 또는 로그 메일러 반환
func NewMailer(cfg SMTPConfig, logger *zap.Logger) service.Mailer {
	if !cfg.Enabled() {
		logger.Warn("SMTP 설정이 없어 메일을 로그로만 기록합니다")
		return NewLogMailer(logger)
	}
	return NewSMTPClient(cfg, logger)
}

// Send HTML 이메일 발송
func (m *SMTPClient) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.config.From, m.config.SenderName))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	_, err := m.breaker.Execute(func() (interface{}, error) {
		return nil, m.dialer.DialAndSend(msg)
	})
	if err != nil {
		m.logger.Error("이메일 발송 실패",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("이메일 발송 실패: %w", err)
	}

	m.logger.Info("이메일 발송 성공",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// LogMailer 메일을 발송하지 않고 로그로 남기는 개발용 메일러
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer 로그 메일러 생성
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send 메일 내용을 디버그 로그로 기록
func (m *LogMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.logger.Info("이메일 발송 생략 (SMTP 미설정)",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	m.logger.Debug("이메일 본문", zap.String("body", htmlBody))
	return nil
}
