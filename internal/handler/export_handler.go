package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/eq3-dev/internship-api/internal/service"
	"github.com/eq3-dev/internship-api/pkg/response"
)

type exportService interface {
	Generate(ctx context.Context, view service.RosterView, sessionLabel, department string, format service.ExportFormat) (*service.ExportResult, error)
}

// ExportHandler serves downloadable eligibility rosters.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Download renders the requested roster view as CSV or PDF.
func (h *ExportHandler) Download(c *gin.Context) {
	view := service.RosterView(c.DefaultQuery("view", string(service.RosterAll)))
	format := service.ExportFormat(c.DefaultQuery("format", string(service.FormatCSV)))
	result, err := h.exports.Generate(
		c.Request.Context(),
		view,
		c.Query("session"),
		c.Query("department"),
		format,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Content)
}
