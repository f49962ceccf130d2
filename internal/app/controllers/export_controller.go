package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bucodel/registration-backend/internal/app/services"
	"github.com/bucodel/registration-backend/internal/middleware"
)

// ExportController serves the student roster as downloadable documents.
type ExportController struct {
	exportService *services.ExportService
	logger        zerolog.Logger
}

// NewExportController creates a new ExportController
func NewExportController(exportService *services.ExportService, logger zerolog.Logger) *ExportController {
	return &ExportController{
		exportService: exportService,
		logger:        logger,
	}
}

// ExportCSV handles GET /api/students/export/csv.
//
// The document is rendered into memory first so a mid-export failure yields
// a clean error response instead of a truncated download.
func (c *ExportController) ExportCSV(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.exportService.WriteCSV(ctx.Request.Context(), &buf); err != nil {
		c.logger.Error().Err(err).Msg("CSV export failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename=bucodel-students.csv`)
	ctx.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportPDF handles GET /api/students/export/pdf.
func (c *ExportController) ExportPDF(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.exportService.WritePDF(ctx.Request.Context(), &buf); err != nil {
		c.logger.Error().Err(err).Msg("PDF export failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename=bucodel-students.pdf`)
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
