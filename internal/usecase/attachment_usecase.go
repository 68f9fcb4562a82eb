package usecase

import (
	"context"
	"net/url"
	"strings"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

// AttachmentUseCase link attachment implementation
type AttachmentUseCase struct {
	logger         *zap.Logger
	attachmentRepo repository.AttachmentRepository
	access         interfaces.AccessUseCase
}

// NewAttachmentUseCase creates a new attachment use case
func NewAttachmentUseCase(logger *zap.Logger, repos *repository.Repositories, access interfaces.AccessUseCase) interfaces.AttachmentUseCase {
	return &AttachmentUseCase{
		logger:         logger,
		attachmentRepo: repos.Attachment,
		access:         access,
	}
}

func (uc *AttachmentUseCase) Add(ctx context.Context, userID, taskID string, params dto.AddAttachmentParams) (*entity.TaskAttachment, error) {
	if _, err := uc.access.TaskFor(ctx, userID, taskID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, domainErrors.Validation("attachment name is required")
	}
	link, err := url.Parse(strings.TrimSpace(params.URL))
	if err != nil || (link.Scheme != "http" && link.Scheme != "https") || link.Host == "" {
		return nil, domainErrors.Validation("attachment url must be an absolute http(s) url")
	}

	id, err := GenerateUniqueID(PrefixAttachment)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate attachment id")
	}
	attachment := &entity.TaskAttachment{
		ID:         id,
		TaskID:     taskID,
		UploaderID: userID,
		Name:       name,
		URL:        link.String(),
	}
	if err := uc.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, apperrors.Dependency(err, "failed to create attachment")
	}
	return attachment, nil
}

func (uc *AttachmentUseCase) List(ctx context.Context, userID, taskID string) ([]*entity.TaskAttachment, error) {
	if _, err := uc.access.TaskFor(ctx, userID, taskID); err != nil {
		return nil, err
	}

	attachments, err := uc.attachmentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to list attachments")
	}
	return attachments, nil
}

// Delete is allowed for the uploader and workspace managers
func (uc *AttachmentUseCase) Delete(ctx context.Context, userID, attachmentID string) error {
	access, err := uc.access.AttachmentFor(ctx, userID, attachmentID)
	if err != nil {
		return err
	}
	if access.Attachment.UploaderID != userID && !access.Authority.CanManage() {
		return domainErrors.ErrAccessDenied
	}

	if err := uc.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return apperrors.Dependency(err, "failed to delete attachment")
	}
	return nil
}
