package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/eq3-dev/internship-api/internal/models"
	appErrors "github.com/eq3-dev/internship-api/pkg/errors"
)

type signatureStudentRepository interface {
	FindActiveByUsername(ctx context.Context, username string) (*models.Student, error)
	Save(ctx context.Context, student *models.Student) error
}

type signatureStaffRepository interface {
	FindActiveByRoleAndUsername(ctx context.Context, role models.Role, username string) (*models.Staff, error)
	SaveSignature(ctx context.Context, id string, signature []byte) error
}

// SignatureService stores uploaded signature images on the account matching
// the username. The account role is resolved once from the username prefix
// convention; an unknown prefix stores nothing.
type SignatureService struct {
	students signatureStudentRepository
	staff    signatureStaffRepository
	cache    *CacheService
	logger   *zap.Logger
}

// NewSignatureService constructs a SignatureService.
func NewSignatureService(students signatureStudentRepository, staff signatureStaffRepository, logger *zap.Logger) *SignatureService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SignatureService{students: students, staff: staff, logger: logger}
}

// WithCache invalidates memoized session views after student writes.
func (s *SignatureService) WithCache(cache *CacheService) *SignatureService {
	s.cache = cache
	return s
}

// Save overwrites the signature image of the active account for username and
// returns the stored bytes. A missing account or unknown role prefix leaves
// the store untouched.
func (s *SignatureService) Save(ctx context.Context, username string, signature []byte) ([]byte, error) {
	if len(signature) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "empty signature upload")
	}
	role, ok := models.RoleForUsername(username)
	if !ok {
		s.logger.Warn("signature upload for unrecognized username prefix", zap.String("username", username))
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no account matches username")
	}

	if role == models.RoleStudent {
		student, err := s.students.FindActiveByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
			}
			return nil, storeFailure(err, "failed to load student")
		}
		student.Signature = signature
		if err := s.students.Save(ctx, student); err != nil {
			return nil, storeFailure(err, "failed to save student signature")
		}
		// Save rewrites the whole student row, sessions column included.
		_ = s.cache.Invalidate(ctx, "sessions:*")
		return signature, nil
	}

	member, err := s.staff.FindActiveByRoleAndUsername(ctx, role, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, storeFailure(err, "failed to load account")
	}
	if err := s.staff.SaveSignature(ctx, member.ID, signature); err != nil {
		return nil, storeFailure(err, "failed to save signature")
	}
	return signature, nil
}
