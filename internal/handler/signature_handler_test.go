package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/eq3-dev/internship-api/pkg/errors"
)

type signatureServiceMock struct {
	save func(ctx context.Context, username string, signature []byte) ([]byte, error)
}

func (m *signatureServiceMock) Save(ctx context.Context, username string, signature []byte) ([]byte, error) {
	return m.save(ctx, username, signature)
}

func signatureRouter(svc signatureService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/signatures/:username", NewSignatureHandler(svc, nil).Upload)
	return r
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSignatureUpload(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	svc := &signatureServiceMock{
		save: func(ctx context.Context, username string, signature []byte) ([]byte, error) {
			assert.Equal(t, "E001", username)
			assert.Equal(t, payload, signature)
			return signature, nil
		},
	}
	body, contentType := multipartBody(t, "signature", "sig.png", payload)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signatures/E001", body)
	req.Header.Set("Content-Type", contentType)

	signatureRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"size":4`)
}

func TestSignatureUploadMissingFilePart(t *testing.T) {
	svc := &signatureServiceMock{
		save: func(ctx context.Context, username string, signature []byte) ([]byte, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signatures/E001", nil)

	signatureRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignatureUploadUnknownAccount(t *testing.T) {
	svc := &signatureServiceMock{
		save: func(ctx context.Context, username string, signature []byte) ([]byte, error) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no account matches username")
		},
	}
	body, contentType := multipartBody(t, "signature", "sig.png", []byte("sig"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signatures/X999", body)
	req.Header.Set("Content-Type", contentType)

	signatureRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
