package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"go.uber.org/zap"

	appErrors "github.com/eq3-dev/internship-api/pkg/errors"
	"github.com/eq3-dev/internship-api/pkg/response"
)

type signatureService interface {
	Save(ctx context.Context, username string, signature []byte) ([]byte, error)
}

// SignatureHandler accepts multipart signature uploads.
type SignatureHandler struct {
	signatures signatureService
	logger     *zap.Logger
}

// NewSignatureHandler constructs SignatureHandler.
func NewSignatureHandler(signatures signatureService, logger *zap.Logger) *SignatureHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SignatureHandler{signatures: signatures, logger: logger}
}

// Upload stores the uploaded signature image on the matching account. A file
// that cannot be read is logged and answered as not-found, never a 500.
func (h *SignatureHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("signature")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "signature file part is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Warn("signature upload open failed", zap.Error(err))
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "signature upload unreadable"))
		return
	}
	defer file.Close() //nolint:errcheck

	payload, err := io.ReadAll(file)
	if err != nil {
		h.logger.Warn("signature upload read failed", zap.Error(err))
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "signature upload unreadable"))
		return
	}

	stored, err := h.signatures.Save(c.Request.Context(), c.Param("username"), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"size": len(stored)})
}
