package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eq3-dev/internship-api/internal/models"
	appErrors "github.com/eq3-dev/internship-api/pkg/errors"
)

type authStudentRepoMock struct {
	findActiveByUsername func(ctx context.Context, username string) (*models.Student, error)
}

func (m *authStudentRepoMock) FindActiveByUsername(ctx context.Context, username string) (*models.Student, error) {
	return m.findActiveByUsername(ctx, username)
}

type authStaffRepoMock struct {
	findActiveByRoleAndUsername func(ctx context.Context, role models.Role, username string) (*models.Staff, error)
}

func (m *authStaffRepoMock) FindActiveByRoleAndUsername(ctx context.Context, role models.Role, username string) (*models.Staff, error) {
	return m.findActiveByRoleAndUsername(ctx, role, username)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginStudentAndValidate(t *testing.T) {
	students := &authStudentRepoMock{
		findActiveByUsername: func(ctx context.Context, username string) (*models.Student, error) {
			return &models.Student{ID: "s1", Username: username, PasswordHash: hashPassword(t, "secret")}, nil
		},
	}
	svc := NewAuthService(students, nil, nil, nil, AuthConfig{Secret: "test-secret", Expiration: time.Hour})

	result, err := svc.Login(context.Background(), LoginRequest{Username: "E001", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "s1", result.UserID)
	assert.Equal(t, models.RoleStudent, result.Role)
	require.NotEmpty(t, result.Token)

	claims, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "s1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestLoginStaffResolvesRoleFromPrefix(t *testing.T) {
	staff := &authStaffRepoMock{
		findActiveByRoleAndUsername: func(ctx context.Context, role models.Role, username string) (*models.Staff, error) {
			assert.Equal(t, models.RoleMonitor, role)
			return &models.Staff{ID: "m1", Username: username, Role: role, PasswordHash: hashPassword(t, "secret")}, nil
		},
	}
	svc := NewAuthService(nil, staff, nil, nil, AuthConfig{Secret: "test-secret"})

	result, err := svc.Login(context.Background(), LoginRequest{Username: "M007", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, models.RoleMonitor, result.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	students := &authStudentRepoMock{
		findActiveByUsername: func(ctx context.Context, username string) (*models.Student, error) {
			return &models.Student{ID: "s1", Username: username, PasswordHash: hashPassword(t, "secret")}, nil
		},
	}
	svc := NewAuthService(students, nil, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "E001", Password: "nope"})

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}

func TestLoginUnknownAccount(t *testing.T) {
	students := &authStudentRepoMock{
		findActiveByUsername: func(ctx context.Context, username string) (*models.Student, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := NewAuthService(students, nil, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "E404", Password: "secret"})

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}

func TestLoginUnknownPrefix(t *testing.T) {
	svc := NewAuthService(nil, nil, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "X001", Password: "secret"})

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}

func TestLoginMissingFields(t *testing.T) {
	svc := NewAuthService(nil, nil, nil, nil, AuthConfig{Secret: "test-secret"})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "E001"})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	students := &authStudentRepoMock{
		findActiveByUsername: func(ctx context.Context, username string) (*models.Student, error) {
			return &models.Student{ID: "s1", Username: username, PasswordHash: hashPassword(t, "secret")}, nil
		},
	}
	issuer := NewAuthService(students, nil, nil, nil, AuthConfig{Secret: "secret-a"})
	verifier := NewAuthService(nil, nil, nil, nil, AuthConfig{Secret: "secret-b"})

	result, err := issuer.Login(context.Background(), LoginRequest{Username: "E001", Password: "secret"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(result.Token)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}
