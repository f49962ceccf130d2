package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bucodel/registration-backend/internal/app/models/dto"
	"github.com/bucodel/registration-backend/internal/app/services"
	"github.com/bucodel/registration-backend/internal/middleware"
	"github.com/bucodel/registration-backend/internal/pkg/apperrors"
	"github.com/bucodel/registration-backend/internal/pkg/filestorage"
)

// FileController exposes storage maintenance and a standalone upload probe.
type FileController struct {
	fileService *services.FileService
	fileStore   filestorage.FileStore
	logger      zerolog.Logger
}

// NewFileController creates a new FileController
func NewFileController(fileService *services.FileService, fileStore filestorage.FileStore, logger zerolog.Logger) *FileController {
	return &FileController{
		fileService: fileService,
		fileStore:   fileStore,
		logger:      logger,
	}
}

// Cleanup handles GET /api/files/cleanup, removing stored files no
// registration references.
func (c *FileController) Cleanup(ctx *gin.Context) {
	resp, err := c.fileService.Cleanup(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("File cleanup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Info handles GET /api/files/info.
func (c *FileController) Info(ctx *gin.Context) {
	resp, err := c.fileService.Info()
	if err != nil {
		c.logger.Error().Err(err).Msg("File inventory failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UploadTest handles POST /api/upload-test. It runs a file through the full
// validate-and-store pipeline without creating a registration, so the
// frontend can probe upload limits.
func (c *FileController) UploadTest(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("testFile")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("No file uploaded"))
		return
	}

	if err := c.fileStore.Validate(fileHeader); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewInvalidFileError(err.Error()))
		return
	}

	filename, err := c.fileStore.Save(fileHeader)
	if err != nil {
		c.logger.Error().Err(err).Msg("Upload test failed to store file")
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrFileStorage, "Failed to store file"))
		return
	}

	ctx.JSON(http.StatusOK, dto.UploadTestResponse{
		Success: true,
		Message: "File uploaded successfully",
		File: dto.UploadTestFileInfo{
			OriginalName: fileHeader.Filename,
			Filename:     filename,
			Size:         fileHeader.Size,
			MimeType:     fileHeader.Header.Get("Content-Type"),
			URL:          c.fileStore.URLFor(filename),
		},
	})
}
