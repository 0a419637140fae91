package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/config"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/leave"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/bpm"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTokenID  = "token-1"
	testUID      = "emp-1"
	testCID      = "acme"
	testCallback = "callback-secret"
)

type stubVerifier struct{}

func (stubVerifier) Verify(ctx context.Context, creds auth.Credentials) error {
	if creds.TokenID == "" || creds.UID == "" || creds.CID == "" {
		return auth.ErrMissingCredentials
	}
	if creds.TokenID != testTokenID || creds.UID != testUID || creds.CID != testCID {
		return auth.ErrInvalidToken
	}
	return nil
}

type stubLimiter struct {
	allowed bool
}

func (l *stubLimiter) Allow(ctx context.Context, identifier string, limit int, window time.Duration) (bool, error) {
	return l.allowed, nil
}

type stubAuthService struct {
	stubVerifier
	sent int
}

func (s *stubAuthService) SendVerificationCode(ctx context.Context, req auth.SendCodeRequest) (auth.SendCodeResponse, error) {
	s.sent++
	return auth.SendCodeResponse{MaskedEmail: "m***@acme.test", ExpiresIn: 300}, nil
}

func (s *stubAuthService) VerifyCode(ctx context.Context, req auth.VerifyCodeRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrInvalidCode
}

func (s *stubAuthService) Logout(ctx context.Context, creds auth.Credentials) error {
	return nil
}

type stubLeaveService struct {
	year int
}

func (s *stubLeaveService) GetBalances(ctx context.Context, companyID, employeeID string, year int) (leave.BalancesResponse, error) {
	s.year = year
	return leave.BalancesResponse{
		WindowResponse: leave.WindowResponse{Year: 2025, StartDate: "2025-10-05", EndDate: "2026-10-04"},
	}, nil
}

func (s *stubLeaveService) GetBalanceDetail(ctx context.Context, companyID, employeeID string, year int) (leave.BalanceDetailResponse, error) {
	return leave.BalanceDetailResponse{}, leave.ErrHireDateNotFound
}

func (s *stubLeaveService) ListLeaveTypes(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	return nil, nil
}

type stubAttendanceService struct{}

func (stubAttendanceService) GetDailyRecord(ctx context.Context, companyID, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	return attendance.AttendanceRecord{}, attendance.ErrNoRecord
}

func (stubAttendanceService) GetMonthlyRecords(ctx context.Context, companyID, employeeID string, month time.Time) (attendance.MonthlyRecordsResponse, error) {
	return attendance.MonthlyRecordsResponse{}, nil
}

func (stubAttendanceService) ExportMonthlyRecords(ctx context.Context, companyID, employeeID string, month time.Time, w io.Writer) error {
	_, err := w.Write([]byte("xlsx"))
	return err
}

type stubFormService struct {
	form.FormService
	callbacks []form.StatusCallback
	submitErr error
}

func (s *stubFormService) SubmitLeave(ctx context.Context, companyID, employeeID string, req form.LeaveFormRequest) (form.SubmitResponse, error) {
	if s.submitErr != nil {
		return form.SubmitResponse{}, s.submitErr
	}
	return form.SubmitResponse{FormID: "form-1", BPMInstanceID: "inst-1", Status: form.StatusPending}, nil
}

func (s *stubFormService) ApplyCallback(ctx context.Context, cb form.StatusCallback) error {
	s.callbacks = append(s.callbacks, cb)
	return nil
}

type routerFixture struct {
	router   http.Handler
	auth     *stubAuthService
	leave    *stubLeaveService
	forms    *stubFormService
	limiter  *stubLimiter
	registry *prometheus.Registry
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	f := &routerFixture{
		auth:     &stubAuthService{},
		leave:    &stubLeaveService{},
		forms:    &stubFormService{},
		limiter:  &stubLimiter{allowed: true},
		registry: prometheus.NewRegistry(),
	}
	cfg := &config.Config{
		App:     config.AppConfig{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		Storage: config.StorageConfig{Type: "ftp"},
	}

	f.router = NewRouter(cfg, metrics.New(f.registry), f.registry, stubVerifier{}, f.limiter, Handlers{
		Auth:       NewAuthHandler(f.auth),
		Attendance: NewAttendanceHandler(stubAttendanceService{}),
		Leave:      NewLeaveHandler(f.leave),
		Form:       NewFormHandler(f.forms),
		Approval:   NewApprovalHandler(nil),
		Attachment: NewAttachmentHandler(nil),
		Salary:     NewSalaryHandler(nil),
		Employee:   NewEmployeeHandler(nil),
		Callback:   NewCallbackHandler(f.forms, bpm.NewCallbackVerifier(testCallback)),
	})
	return f
}

func (f *routerFixture) post(t *testing.T, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func credentials(extra map[string]any) map[string]any {
	body := map[string]any{"tokenid": testTokenID, "uid": testUID, "cid": testCID}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRouter_Balances(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.post(t, "/api/v1/leave/balances", credentials(map[string]any{"year": 2025}), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2025, f.leave.year)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, true, env["success"])
	data := env["data"].(map[string]any)
	assert.Equal(t, "2025-10-05", data["start_date"])
	assert.Equal(t, "2026-10-04", data["end_date"])
}

func TestRouter_RejectsBadCredentials(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("missing triple", func(t *testing.T) {
		rec := f.post(t, "/api/v1/leave/balances", map[string]any{"year": 2025}, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("uid mismatch", func(t *testing.T) {
		body := credentials(map[string]any{"uid": "someone-else"})
		rec := f.post(t, "/api/v1/leave/balances", body, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leave/balances", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_MalformedDate(t *testing.T) {
	f := newRouterFixture(t)

	tests := []struct {
		name  string
		path  string
		field string
		value string
	}{
		{"day first", "/api/v1/attendance/daily", "date", "31/10/2025"},
		{"month 13", "/api/v1/attendance/daily", "date", "2025-13-01"},
		{"february 30", "/api/v1/attendance/daily", "date", "2025-02-30"},
		{"slashed month", "/api/v1/attendance/monthly", "month", "2025/10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.post(t, tt.path, credentials(map[string]any{tt.field: tt.value}), nil)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope(t, rec)
			details := env["error"].(map[string]any)["details"].(map[string]any)
			assert.Contains(t, details, tt.field)
		})
	}
}

func TestRouter_ValidationError(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.post(t, "/api/v1/forms/leave", credentials(map[string]any{
		"leave_code": "ANNUAL",
		"start_time": "2025-11-03 09:00",
		"end_time":   "2025-11-03 18:00",
		"hours":      8,
		"reason":     strings.Repeat("x", 600),
	}), nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeEnvelope(t, rec)
	details := env["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details, "reason")
}

func TestRouter_DomainErrorMapping(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.post(t, "/api/v1/attendance/daily", credentials(map[string]any{"date": "2025-10-31"}), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.post(t, "/api/v1/leave/balances/detail", credentials(nil), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	f.forms.submitErr = leave.ErrInsufficientBalance
	rec = f.post(t, "/api/v1/forms/leave", credentials(map[string]any{
		"leave_code": "ANNUAL",
		"start_time": "2025-11-03 09:00",
		"end_time":   "2025-11-03 18:00",
		"hours":      8,
		"reason":     "family",
	}), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_ExportSetsAttachmentHeaders(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.post(t, "/api/v1/attendance/export", credentials(map[string]any{"month": "2025-10"}), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance-2025-10.xlsx")
	assert.Equal(t, "xlsx", rec.Body.String())
}

func TestRouter_AuthRateLimited(t *testing.T) {
	f := newRouterFixture(t)
	body := map[string]any{"cid": testCID, "employee_no": "E001"}

	rec := f.post(t, "/api/v1/auth/code", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.auth.sent)

	f.limiter.allowed = false
	rec = f.post(t, "/api/v1/auth/code", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, 1, f.auth.sent)
}

func TestRouter_VerifyWrongCode(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.post(t, "/api/v1/auth/verify", map[string]any{
		"cid": testCID, "employee_no": "E001", "code": "123456",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_BPMCallback(t *testing.T) {
	cb := map[string]any{"instance_id": "inst-1", "status": "APPROVED", "changed_at": "2025-11-03T10:00:00Z"}

	t.Run("token", func(t *testing.T) {
		f := newRouterFixture(t)
		rec := f.post(t, "/api/v1/bpm/callback", cb, map[string]string{bpm.CallbackTokenHeader: testCallback})

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, f.forms.callbacks, 1)
		assert.Equal(t, "inst-1", f.forms.callbacks[0].InstanceID)
	})

	t.Run("signature", func(t *testing.T) {
		f := newRouterFixture(t)
		raw, err := json.Marshal(cb)
		require.NoError(t, err)
		mac := hmac.New(sha256.New, []byte(testCallback))
		mac.Write(raw)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bpm/callback", bytes.NewReader(raw))
		req.Header.Set(bpm.CallbackSignatureHeader, hex.EncodeToString(mac.Sum(nil)))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, f.forms.callbacks, 1)
	})

	t.Run("wrong token", func(t *testing.T) {
		f := newRouterFixture(t)
		rec := f.post(t, "/api/v1/bpm/callback", cb, map[string]string{bpm.CallbackTokenHeader: "nope"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, f.forms.callbacks)
	})
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	f := newRouterFixture(t)
	f.post(t, "/api/v1/leave/balances", credentials(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hris_selfservice_http_requests_total")
}
