package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	apperrors "stockdash/internal/errors"
	"stockdash/internal/logger"
)

// openUpload fetches the multipart file under the given form field and
// opens it for reading. The caller closes the returned file.
func openUpload(c *gin.Context, field string, maxBytes int64) (multipart.File, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Missing uploaded file: "+field)
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Uploaded file is too large")
	}

	file, err := header.Open()
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return file, header.Filename, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
