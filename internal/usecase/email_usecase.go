package usecase

import (
	"context"
	"fmt"
	"html"
	"net/url"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// Token lifetimes for emailed links
const (
	VerificationTokenTTLHours  = 24
	PasswordResetTokenTTLHours = 1
)

// EmailUseCase builds and sends the transactional emails
type EmailUseCase struct {
	logger      *zap.Logger
	mailer      service.Mailer
	appURL      string
	serviceName string
}

// NewEmailUseCase creates a new email use case
func NewEmailUseCase(logger *zap.Logger, mailer service.Mailer, appURL, serviceName string) interfaces.EmailUseCase {
	return &EmailUseCase{
		logger:      logger,
		mailer:      mailer,
		appURL:      appURL,
		serviceName: serviceName,
	}
}

func (uc *EmailUseCase) link(path, token string) string {
	return fmt.Sprintf("%s%s?token=%s", uc.appURL, path, url.QueryEscape(token))
}

func (uc *EmailUseCase) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	link := uc.link("/verify-email", token)
	subject := fmt.Sprintf("Verify your %s email address", uc.serviceName)
	body := fmt.Sprintf(`
		<h1>Hi %s,</h1>
		<p>Please confirm your email address by clicking the link below:</p>
		<p><a href="%s">Verify email</a></p>
		<p>This link is valid for %d hours.</p>
	`, html.EscapeString(name), html.EscapeString(link), VerificationTokenTTLHours)

	return uc.send(ctx, to, subject, body)
}

func (uc *EmailUseCase) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	link := uc.link("/reset-password", token)
	subject := fmt.Sprintf("Reset your %s password", uc.serviceName)
	body := fmt.Sprintf(`
		<h1>Hi %s,</h1>
		<p>We received a request to reset your password. Use the link below to choose a new one:</p>
		<p><a href="%s">Reset password</a></p>
		<p>This link is valid for %d hour. If you did not ask for a reset you can ignore this email.</p>
	`, html.EscapeString(name), html.EscapeString(link), PasswordResetTokenTTLHours)

	return uc.send(ctx, to, subject, body)
}

func (uc *EmailUseCase) SendInviteEmail(ctx context.Context, to, inviterName string, workspace *entity.Workspace, role entity.Role, token string) error {
	link := uc.link(fmt.Sprintf("/workspaces/%s/invites/accept", url.PathEscape(workspace.ID)), token)
	subject := fmt.Sprintf("%s invited you to %s", inviterName, workspace.Name)
	body := fmt.Sprintf(`
		<h1>You have been invited</h1>
		<p><strong>%s</strong> invited you to join <strong>%s</strong> as %s.</p>
		<p><a href="%s">Accept invitation</a></p>
		<p>The invitation expires in 7 days.</p>
	`, html.EscapeString(inviterName), html.EscapeString(workspace.Name), role, html.EscapeString(link))

	return uc.send(ctx, to, subject, body)
}

func (uc *EmailUseCase) send(ctx context.Context, to, subject, body string) error {
	if err := uc.mailer.Send(ctx, to, subject, body); err != nil {
		uc.logger.Error("Failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return err
	}
	return nil
}
