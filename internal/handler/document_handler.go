package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/eq3-dev/internship-api/internal/models"
	"github.com/eq3-dev/internship-api/pkg/response"
)

type documentService interface {
	OfferDocument(ctx context.Context, offerID string) (*models.PDFDocument, error)
	StudentCV(ctx context.Context, studentID, cvID string) (*models.PDFDocument, error)
	EvaluationTemplate(ctx context.Context, kind string) (*models.PDFDocument, error)
	ContractDocument(ctx context.Context, internshipID string) (*models.PDFDocument, error)
	StudentEvaluationDocument(ctx context.Context, internshipID string) (*models.PDFDocument, error)
	EnterpriseEvaluationDocument(ctx context.Context, internshipID string) (*models.PDFDocument, error)
}

// DocumentHandler streams stored PDF documents.
type DocumentHandler struct {
	documents documentService
}

// NewDocumentHandler constructs DocumentHandler.
func NewDocumentHandler(documents documentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// Offer streams the description document of an offer.
func (h *DocumentHandler) Offer(c *gin.Context) {
	h.stream(c, func(ctx context.Context) (*models.PDFDocument, error) {
		return h.documents.OfferDocument(ctx, c.Param("offerId"))
	})
}

// CV streams one CV from a student's list.
func (h *DocumentHandler) CV(c *gin.Context) {
	h.stream(c, func(ctx context.Context) (*models.PDFDocument, error) {
		return h.documents.StudentCV(ctx, c.Param("studentId"), c.Param("cvId"))
	})
}

// EvaluationTemplate streams the fixed evaluation template of the given type.
func (h *DocumentHandler) EvaluationTemplate(c *gin.Context) {
	h.stream(c, func(ctx context.Context) (*models.PDFDocument, error) {
		return h.documents.EvaluationTemplate(ctx, c.Param("type"))
	})
}

// Contract streams the internship contract.
func (h *DocumentHandler) Contract(c *gin.Context) {
	h.stream(c, func(ctx context.Context) (*models.PDFDocument, error) {
		return h.documents.ContractDocument(ctx, c.Param("internshipId"))
	})
}

// StudentEvaluation streams the filed student evaluation.
func (h *DocumentHandler) StudentEvaluation(c *gin.Context) {
	h.stream(c, func(ctx context.Context) (*models.PDFDocument, error) {
		return h.documents.StudentEvaluationDocument(ctx, c.Param("internshipId"))
	})
}

// EnterpriseEvaluation streams the filed enterprise evaluation.
func (h *DocumentHandler) EnterpriseEvaluation(c *gin.Context) {
	h.stream(c, func(ctx context.Context) (*models.PDFDocument, error) {
		return h.documents.EnterpriseEvaluationDocument(ctx, c.Param("internshipId"))
	})
}

func (h *DocumentHandler) stream(c *gin.Context, fetch func(context.Context) (*models.PDFDocument, error)) {
	doc, err := fetch(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.PDF(c, doc.Name, doc.Content)
}
