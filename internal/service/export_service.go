package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eq3-dev/internship-api/internal/models"
	appErrors "github.com/eq3-dev/internship-api/pkg/errors"
	"github.com/eq3-dev/internship-api/pkg/export"
)

// RosterView names an exportable student eligibility view.
type RosterView string

const (
	RosterAll               RosterView = "all"
	RosterWithoutSupervisor RosterView = "without-supervisor"
	RosterWithoutCV         RosterView = "without-cv"
	RosterWithInternship    RosterView = "with-internship"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type exportArchive interface {
	Save(filename string, data []byte) (string, error)
}

// ExportResult is a rendered roster ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders eligibility views as downloadable CSV or PDF rosters.
// When an archive is configured every generated roster is also written there.
type ExportService struct {
	eligibility *EligibilityService
	csv         csvRenderer
	pdf         pdfRenderer
	archive     exportArchive
	logger      *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(eligibility *EligibilityService, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{eligibility: eligibility, csv: csv, pdf: pdf, logger: logger}
}

// WithArchive keeps a copy of every generated roster in the given store.
func (s *ExportService) WithArchive(archive exportArchive) *ExportService {
	s.archive = archive
	return s
}

// Generate builds the requested roster and renders it in the given format.
func (s *ExportService) Generate(ctx context.Context, view RosterView, sessionLabel, department string, format ExportFormat) (*ExportResult, error) {
	students, err := s.roster(ctx, view, sessionLabel, department)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Title:   fmt.Sprintf("Students %s (%s)", view, sessionLabel),
		Columns: []string{"Username", "Last Name", "First Name", "Department", "Sessions"},
	}
	for _, student := range students {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Username":   student.Username,
			"Last Name":  student.LastName,
			"First Name": student.FirstName,
			"Department": student.Department,
			"Sessions":   strings.Join(student.Sessions, ", "),
		})
	}

	stamp := time.Now().UTC().Format("20060102-150405")

	var result *ExportResult
	switch format {
	case FormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		result = &ExportResult{
			Filename:    fmt.Sprintf("students-%s-%s.csv", view, stamp),
			ContentType: "text/csv",
			Content:     payload,
		}
	case FormatPDF:
		payload, err := s.pdf.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		result = &ExportResult{
			Filename:    fmt.Sprintf("students-%s-%s.pdf", view, stamp),
			ContentType: "application/pdf",
			Content:     payload,
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	if s.archive != nil {
		if _, err := s.archive.Save(result.Filename, result.Content); err != nil {
			s.logger.Warn("export archive write failed", zap.String("file", result.Filename), zap.Error(err))
		}
	}
	return result, nil
}

func (s *ExportService) roster(ctx context.Context, view RosterView, sessionLabel, department string) ([]models.Student, error) {
	switch view {
	case RosterAll:
		if sessionLabel == "" {
			return s.eligibility.ListStudents(ctx)
		}
		return s.eligibility.ListStudentsInSession(ctx, sessionLabel)
	case RosterWithoutSupervisor:
		return s.eligibility.ListStudentsWithoutSupervisor(ctx, department, sessionLabel)
	case RosterWithoutCV:
		return s.eligibility.ListStudentsWithoutCV(ctx, sessionLabel)
	case RosterWithInternship:
		return s.eligibility.ListStudentsWithInternship(ctx, sessionLabel)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown roster view %q", view))
	}
}
