package http

import (
	"io"

	"github.com/labstack/echo/v4"
	domainErrors "github.com/wekeepgrowing/semo-taskboard/internal/domain/errors"
	"github.com/wekeepgrowing/semo-taskboard/internal/usecase/dto"
)

// imageFormField multipart field carrying the image
const imageFormField = "file"

// readImage opens the uploaded image. The caller must close the returned reader.
func readImage(c echo.Context) (dto.ImageUpload, io.Closer, error) {
	header, err := c.FormFile(imageFormField)
	if err != nil {
		return dto.ImageUpload{}, nil, domainErrors.Validation("file is required")
	}

	file, err := header.Open()
	if err != nil {
		return dto.ImageUpload{}, nil, domainErrors.Validation("failed to read uploaded file")
	}

	return dto.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Body:        file,
	}, file, nil
}
