package usecase

import (
	"context"
	"strings"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/interfaces"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
	"go.uber.org/zap"
)

// CommentUseCase comment implementation
type CommentUseCase struct {
	logger      *zap.Logger
	commentRepo repository.CommentRepository
	access      interfaces.AccessUseCase
}

// NewCommentUseCase creates a new comment use case
func NewCommentUseCase(logger *zap.Logger, repos *repository.Repositories, access interfaces.AccessUseCase) interfaces.CommentUseCase {
	return &CommentUseCase{
		logger:      logger,
		commentRepo: repos.Comment,
		access:      access,
	}
}

func (uc *CommentUseCase) Create(ctx context.Context, userID, taskID string, params dto.CreateCommentParams) (*entity.TaskComment, error) {
	if _, err := uc.access.TaskFor(ctx, userID, taskID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(params.Content)
	if content == "" {
		return nil, domainErrors.Validation("comment content is required")
	}

	id, err := GenerateUniqueID(PrefixComment)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate comment id")
	}
	comment := &entity.TaskComment{
		ID:       id,
		TaskID:   taskID,
		AuthorID: userID,
		Content:  content,
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, apperrors.Dependency(err, "failed to create comment")
	}
	return comment, nil
}

func (uc *CommentUseCase) List(ctx context.Context, userID, taskID string) ([]*entity.TaskComment, error) {
	if _, err := uc.access.TaskFor(ctx, userID, taskID); err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, apperrors.Dependency(err, "failed to list comments")
	}
	return comments, nil
}

// Update edits the content. Only the author may edit.
func (uc *CommentUseCase) Update(ctx context.Context, userID, commentID, content string) (*entity.TaskComment, error) {
	access, err := uc.access.CommentFor(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	if access.Comment.AuthorID != userID {
		return nil, domainErrors.ErrAccessDenied
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domainErrors.Validation("comment content is required")
	}

	comment := access.Comment
	comment.Content = content
	if err := uc.commentRepo.Update(ctx, comment); err != nil {
		return nil, updateFailed(err, domainErrors.ErrCommentNotFound, "failed to update comment")
	}
	return comment, nil
}

func (uc *CommentUseCase) Delete(ctx context.Context, userID, commentID string) error {
	access, err := uc.access.CommentFor(ctx, userID, commentID)
	if err != nil {
		return err
	}
	if !uc.access.CanDeleteComment(access, userID) {
		return domainErrors.ErrAccessDenied
	}

	if err := uc.commentRepo.Delete(ctx, commentID); err != nil {
		return apperrors.Dependency(err, "failed to delete comment")
	}
	return nil
}
