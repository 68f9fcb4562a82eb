package repository

import (
	"context"
	"fmt"

	"github.com/wekeepgrowing/semo-taskboard/internal/domain/entity"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/repository"
	infradb "github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db"
	"github.com/wekeepgrowing/semo-taskboard/internal/infrastructure/db/model"
	"gorm.io/gorm"
)

// CommentRepositoryImpl 댓글 저장소 구현체
type CommentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository 댓글 저장소 생성
func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &CommentRepositoryImpl{db: db}
}

func toCommentEntity(m *model.TaskCommentModel) *entity.TaskComment {
	return &entity.TaskComment{
		ID:        m.ID,
		TaskID:    m.TaskID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *CommentRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.TaskComment, error) {
	var m model.TaskCommentModel
	if err := infradb.Conn(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("댓글 조회 실패: %w", err)
	}
	return toCommentEntity(&m), nil
}

func (r *CommentRepositoryImpl) ListByTask(ctx context.Context, taskID string) ([]*entity.TaskComment, error) {
	var models []model.TaskCommentModel
	err := infradb.Conn(ctx, r.db).
		Where("task_id = ?", taskID).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("댓글 목록 조회 실패: %w", err)
	}

	comments := make([]*entity.TaskComment, 0, len(models))
	for i := range models {
		comments = append(comments, toCommentEntity(&models[i]))
	}
	return comments, nil
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *entity.TaskComment) error {
	m := &model.TaskCommentModel{
		ID:       comment.ID,
		TaskID:   comment.TaskID,
		AuthorID: comment.AuthorID,
		Content:  comment.Content,
	}
	if err := infradb.Conn(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("댓글 생성 실패: %w", err)
	}
	comment.CreatedAt = m.CreatedAt
	comment.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *CommentRepositoryImpl) Update(ctx context.Context, comment *entity.TaskComment) error {
	result := infradb.Conn(ctx, r.db).Model(&model.TaskCommentModel{}).
		Where("id = ?", comment.ID).
		Update("content", comment.Content)
	if result.Error != nil {
		return fmt.Errorf("댓글 수정 실패: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := infradb.Conn(ctx, r.db).Where("id = ?", id).Delete(&model.TaskCommentModel{}).Error; err != nil {
		return fmt.Errorf("댓글 삭제 실패: %w", err)
	}
	return nil
}

// AttachmentRepositoryImpl 첨부 저장소 구현체
type AttachmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAttachmentRepository 첨부 저장소 생성
func NewAttachmentRepository(db *gorm.DB) repository.AttachmentRepository {
	return &AttachmentRepositoryImpl{db: db}
}

func toAttachmentEntity(m *model.TaskAttachmentModel) *entity.TaskAttachment {
	return &entity.TaskAttachment{
		ID:         m.ID,
		TaskID:     m.TaskID,
		UploaderID: m.UploaderID,
		Name:       m.Name,
		URL:        m.URL,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *AttachmentRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.TaskAttachment, error) {
	var m model.TaskAttachmentModel
	if err := infradb.Conn(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("첨부 조회 실패: %w", err)
	}
	return toAttachmentEntity(&m), nil
}

func (r *AttachmentRepositoryImpl) ListByTask(ctx context.Context, taskID string) ([]*entity.TaskAttachment, error) {
	var models []model.TaskAttachmentModel
	err := infradb.Conn(ctx, r.db).
		Where("task_id = ?", taskID).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("첨부 목록 조회 실패: %w", err)
	}

	attachments := make([]*entity.TaskAttachment, 0, len(models))
	for i := range models {
		attachments = append(attachments, toAttachmentEntity(&models[i]))
	}
	return attachments, nil
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *entity.TaskAttachment) error {
	m := &model.TaskAttachmentModel{
		ID:         attachment.ID,
		TaskID:     attachment.TaskID,
		UploaderID: attachment.UploaderID,
		Name:       attachment.Name,
		URL:        attachment.URL,
	}
	if err := infradb.Conn(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("첨부 생성 실패: %w", err)
	}
	attachment.CreatedAt = m.CreatedAt
	return nil
}

func (r *AttachmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := infradb.Conn(ctx, r.db).Where("id = ?", id).Delete(&model.TaskAttachmentModel{}).Error; err != nil {
		return fmt.Errorf("첨부 삭제 실패: %w", err)
	}
	return nil
}
