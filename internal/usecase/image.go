package usecase

import (
	"context"
	"io"
	"mime"
	"path"
	"strings"

	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/domain/service"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
	apperrors "github.com/wekeepgrowing/semo-taskboard/pkg/errors"
)

// MaxImageSize upper bound for avatar and workspace images
const MaxImageSize = 10 << 20

// Blob store folders
const (
	FolderAvatars         = "avatars"
	FolderWorkspaceImages = "workspaces"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// validateImage checks type and size before anything is sent to the blob store
func validateImage(upload dto.ImageUpload) (string, error) {
	mediaType, _, err := mime.ParseMediaType(upload.ContentType)
	if err != nil {
		return "", domainErrors.ErrUnsupportedMediaType
	}
	ext, ok := allowedImageTypes[strings.ToLower(mediaType)]
	if !ok {
		return "", domainErrors.ErrUnsupportedMediaType
	}
	if upload.Size > MaxImageSize {
		return "", domainErrors.ErrFileTooLarge
	}
	if upload.Size <= 0 || upload.Body == nil {
		return "", domainErrors.Validation("file is empty")
	}
	return ext, nil
}

// uploadImage validates and stores an image under folder, returning its public URL
func uploadImage(ctx context.Context, store service.BlobStore, folder, ownerID string, upload dto.ImageUpload) (string, error) {
	ext, err := validateImage(upload)
	if err != nil {
		return "", err
	}

	suffix, err := GenerateUniqueID("")
	if err != nil {
		return "", apperrors.Wrap(err, "failed to generate file name")
	}
	filename := ownerID + "-" + strings.ToLower(suffix) + ext
	contentType := mime.TypeByExtension(path.Ext(filename))
	if contentType == "" {
		contentType = upload.ContentType
	}

	body := io.LimitReader(upload.Body, MaxImageSize)
	url, err := store.Upload(ctx, folder, filename, contentType, body, upload.Size)
	if err != nil {
		return "", apperrors.Dependency(err, "failed to upload image")
	}
	return url, nil
}
