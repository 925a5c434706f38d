package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eq3-dev/internship-api/internal/models"
	appErrors "github.com/eq3-dev/internship-api/pkg/errors"
)

type documentStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type documentOfferRepository interface {
	FindByID(ctx context.Context, id string) (*models.InternshipOffer, error)
}

type documentInternshipRepository interface {
	FindByID(ctx context.Context, id string) (*models.Internship, error)
}

type assetReader interface {
	Read(filename string) ([]byte, error)
}

// DocumentService resolves document requests by following optional reference
// chains, stopping at the first missing link. Every lookup yields the same
// (name, bytes) value object so transport streams them uniformly.
type DocumentService struct {
	students    documentStudentRepository
	offers      documentOfferRepository
	internships documentInternshipRepository
	assets      assetReader
	suffix      string
	logger      *zap.Logger
}

// NewDocumentService constructs a DocumentService. suffix names the fixed
// evaluation template file ending, e.g. "-evaluation.pdf".
func NewDocumentService(students documentStudentRepository, offers documentOfferRepository, internships documentInternshipRepository, assets assetReader, suffix string, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		students:    students,
		offers:      offers,
		internships: internships,
		assets:      assets,
		suffix:      suffix,
		logger:      logger,
	}
}

// OfferDocument returns the description document attached to an offer.
func (s *DocumentService) OfferDocument(ctx context.Context, offerID string) (*models.PDFDocument, error) {
	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "offer not found")
		}
		return nil, storeFailure(err, "failed to load offer")
	}
	if !offer.Document.HasContent() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "offer has no document")
	}
	return offer.Document.PDFDocument, nil
}

// StudentCV returns the CV document with the given id from the student's list.
func (s *DocumentService) StudentCV(ctx context.Context, studentID, cvID string) (*models.PDFDocument, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, storeFailure(err, "failed to load student")
	}
	for _, cv := range student.CVs {
		if cv.ID == cvID && cv.Document.HasContent() {
			return cv.Document, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "cv not found")
}

// EvaluationTemplate reads the fixed template file "{kind}{suffix}" from the
// assets directory. A read failure is logged and reported as not-found; the
// assets directory being unreachable is never fatal.
func (s *DocumentService) EvaluationTemplate(_ context.Context, kind string) (*models.PDFDocument, error) {
	name := fmt.Sprintf("%s%s", kind, s.suffix)
	content, err := s.assets.Read(name)
	if err != nil {
		s.logger.Warn("evaluation template read failed", zap.String("file", name), zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrNotFound, "evaluation template not found")
	}
	return &models.PDFDocument{Name: name, Content: content}, nil
}

// ContractDocument returns the signed contract of an internship.
func (s *DocumentService) ContractDocument(ctx context.Context, internshipID string) (*models.PDFDocument, error) {
	return s.internshipDocument(ctx, internshipID, func(i *models.Internship) models.JSONDocument { return i.Contract })
}

// StudentEvaluationDocument returns the filed student evaluation.
func (s *DocumentService) StudentEvaluationDocument(ctx context.Context, internshipID string) (*models.PDFDocument, error) {
	return s.internshipDocument(ctx, internshipID, func(i *models.Internship) models.JSONDocument { return i.StudentEvaluation })
}

// EnterpriseEvaluationDocument returns the filed enterprise evaluation.
func (s *DocumentService) EnterpriseEvaluationDocument(ctx context.Context, internshipID string) (*models.PDFDocument, error) {
	return s.internshipDocument(ctx, internshipID, func(i *models.Internship) models.JSONDocument { return i.EnterpriseEvaluation })
}

func (s *DocumentService) internshipDocument(ctx context.Context, internshipID string, pick func(*models.Internship) models.JSONDocument) (*models.PDFDocument, error) {
	internship, err := s.internships.FindByID(ctx, internshipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "internship not found")
		}
		return nil, storeFailure(err, "failed to load internship")
	}
	doc := pick(internship)
	if !doc.HasContent() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}
	return doc.PDFDocument, nil
}
