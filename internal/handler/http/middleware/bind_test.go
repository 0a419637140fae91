package middleware

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteRequest struct {
	auth.Credentials
	Note string `json:"note" validate:"required,max=10"`
}

func (r *noteRequest) Validate() error {
	return validator.Struct(r)
}

type fakeVerifier struct {
	err   error
	calls int
}

func (v *fakeVerifier) Verify(ctx context.Context, creds auth.Credentials) error {
	v.calls++
	return v.err
}

func bindHandler(verifier auth.TokenVerifier, got **noteRequest) http.Handler {
	return Bind[noteRequest](verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := RequestFrom[noteRequest](r.Context())
		if ok {
			*got = req
		}
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestBind_JSON(t *testing.T) {
	verifier := &fakeVerifier{}
	var got *noteRequest
	h := bindHandler(verifier, &got)

	body := `{"tokenid":"t","uid":"u","cid":"c","note":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "hello", got.Note)
	assert.Equal(t, auth.Credentials{TokenID: "t", UID: "u", CID: "c"}, got.AuthCredentials())
	assert.Equal(t, 1, verifier.calls)
}

func TestBind_Multipart(t *testing.T) {
	var got *noteRequest
	h := bindHandler(&fakeVerifier{}, &got)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField(MultipartDataField, `{"tokenid":"t","uid":"u","cid":"c","note":"scan"}`))
	fw, err := mw.CreateFormFile("file", "a.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.4"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "scan", got.Note)
}

func TestBind_Failures(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		verifyErr error
		wantCode  int
		wantCalls int
	}{
		{"malformed body", `{"note":`, nil, http.StatusBadRequest, 0},
		{"token rejected", `{"tokenid":"t","uid":"u","cid":"c","note":"hi"}`, auth.ErrInvalidToken, http.StatusUnauthorized, 1},
		{"revoked token", `{"tokenid":"t","uid":"u","cid":"c","note":"hi"}`, auth.ErrTokenRevoked, http.StatusUnauthorized, 1},
		{"validation", `{"tokenid":"t","uid":"u","cid":"c","note":"far too long a note"}`, nil, http.StatusUnprocessableEntity, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{err: tt.verifyErr}
			var got *noteRequest
			h := bindHandler(verifier, &got)

			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCalls, verifier.calls)
			assert.Nil(t, got)
		})
	}
}

func TestRequestFrom_Missing(t *testing.T) {
	req, ok := RequestFrom[noteRequest](context.Background())
	assert.False(t, ok)
	assert.Nil(t, req)
}
