package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eq3-dev/internship-api/internal/models"
	appErrors "github.com/eq3-dev/internship-api/pkg/errors"
)

type signatureStudentRepoMock struct {
	findActiveByUsername func(ctx context.Context, username string) (*models.Student, error)
	save                 func(ctx context.Context, student *models.Student) error
}

func (m *signatureStudentRepoMock) FindActiveByUsername(ctx context.Context, username string) (*models.Student, error) {
	return m.findActiveByUsername(ctx, username)
}

func (m *signatureStudentRepoMock) Save(ctx context.Context, student *models.Student) error {
	return m.save(ctx, student)
}

type signatureStaffRepoMock struct {
	findActiveByRoleAndUsername func(ctx context.Context, role models.Role, username string) (*models.Staff, error)
	saveSignature               func(ctx context.Context, id string, signature []byte) error
}

func (m *signatureStaffRepoMock) FindActiveByRoleAndUsername(ctx context.Context, role models.Role, username string) (*models.Staff, error) {
	return m.findActiveByRoleAndUsername(ctx, role, username)
}

func (m *signatureStaffRepoMock) SaveSignature(ctx context.Context, id string, signature []byte) error {
	return m.saveSignature(ctx, id, signature)
}

func TestSignatureSaveStudent(t *testing.T) {
	var saved *models.Student
	students := &signatureStudentRepoMock{
		findActiveByUsername: func(ctx context.Context, username string) (*models.Student, error) {
			assert.Equal(t, "E001", username)
			return &models.Student{ID: "s1", Username: "E001"}, nil
		},
		save: func(ctx context.Context, student *models.Student) error {
			saved = student
			return nil
		},
	}
	svc := NewSignatureService(students, nil, nil)

	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	stored, err := svc.Save(context.Background(), "E001", payload)

	require.NoError(t, err)
	assert.Equal(t, payload, stored)
	require.NotNil(t, saved)
	assert.Equal(t, payload, saved.Signature)
}

func TestSignatureSaveStudentInvalidatesSessionViews(t *testing.T) {
	students := &signatureStudentRepoMock{
		findActiveByUsername: func(ctx context.Context, username string) (*models.Student, error) {
			return &models.Student{ID: "s1", Username: "E001"}, nil
		},
		save: func(ctx context.Context, student *models.Student) error {
			return nil
		},
	}
	repo := newCacheRepoFake()
	svc := NewSignatureService(students, nil, nil).WithCache(newTestCache(repo))

	_, err := svc.Save(context.Background(), "E001", []byte("sig"))

	require.NoError(t, err)
	assert.Equal(t, []string{"sessions:*"}, repo.deleted)
}

func TestSignatureSaveStaffByRolePrefix(t *testing.T) {
	cases := []struct {
		username string
		role     models.Role
	}{
		{"G42", models.RoleInternshipManager},
		{"S007", models.RoleSupervisor},
		{"M100", models.RoleMonitor},
	}
	for _, tc := range cases {
		t.Run(tc.username, func(t *testing.T) {
			var savedID string
			staff := &signatureStaffRepoMock{
				findActiveByRoleAndUsername: func(ctx context.Context, role models.Role, username string) (*models.Staff, error) {
					assert.Equal(t, tc.role, role)
					assert.Equal(t, tc.username, username)
					return &models.Staff{ID: "acct-" + username, Username: username, Role: role}, nil
				},
				saveSignature: func(ctx context.Context, id string, signature []byte) error {
					savedID = id
					return nil
				},
			}
			svc := NewSignatureService(nil, staff, nil)

			_, err := svc.Save(context.Background(), tc.username, []byte("sig"))

			require.NoError(t, err)
			assert.Equal(t, "acct-"+tc.username, savedID)
		})
	}
}

func TestSignatureSaveMissingAccountWritesNothing(t *testing.T) {
	writes := 0
	staff := &signatureStaffRepoMock{
		findActiveByRoleAndUsername: func(ctx context.Context, role models.Role, username string) (*models.Staff, error) {
			return nil, sql.ErrNoRows
		},
		saveSignature: func(ctx context.Context, id string, signature []byte) error {
			writes++
			return nil
		},
	}
	svc := NewSignatureService(nil, staff, nil)

	_, err := svc.Save(context.Background(), "G42", []byte("sig"))

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
	assert.Zero(t, writes)
}

func TestSignatureSaveUnknownPrefix(t *testing.T) {
	svc := NewSignatureService(nil, nil, nil)

	_, err := svc.Save(context.Background(), "X123", []byte("sig"))

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestSignatureSaveEmptyPayload(t *testing.T) {
	svc := NewSignatureService(nil, nil, nil)

	_, err := svc.Save(context.Background(), "E001", nil)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}
