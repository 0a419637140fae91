package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/email"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/metrics"
	"golang.org/x/crypto/bcrypt"
)

const (
	codeLength   = 6
	codeTTL      = 5 * time.Minute
	codeCooldown = 60 * time.Second
	maxAttempts  = 5
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
	codes   auth.VerificationCodeStore
	revoked auth.TokenRevocationStore
	mailer  email.EmailService
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewAuthService(
	employeeRepository employee.EmployeeRepository,
	jwtService jwt.Service,
	codes auth.VerificationCodeStore,
	revoked auth.TokenRevocationStore,
	mailer email.EmailService,
	m *metrics.Metrics,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		codes:              codes,
		revoked:            revoked,
		mailer:             mailer,
		metrics:            m,
		now:                time.Now,
	}
}

// Verify implements auth.TokenVerifier.
func (a *AuthServiceImpl) Verify(ctx context.Context, creds auth.Credentials) error {
	_, err := a.verify(ctx, creds)
	return err
}

func (a *AuthServiceImpl) verify(ctx context.Context, creds auth.Credentials) (jwt.Claims, error) {
	if creds.TokenID == "" || creds.UID == "" || creds.CID == "" {
		return jwt.Claims{}, auth.ErrMissingCredentials
	}

	claims, err := a.Service.Parse(creds.TokenID)
	if err != nil {
		return jwt.Claims{}, auth.ErrInvalidToken
	}
	if claims.UID != creds.UID || claims.CID != creds.CID {
		return jwt.Claims{}, auth.ErrTokenMismatch
	}

	revoked, err := a.revoked.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return jwt.Claims{}, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return jwt.Claims{}, auth.ErrTokenRevoked
	}

	return claims, nil
}

// SendVerificationCode implements auth.AuthService.
func (a *AuthServiceImpl) SendVerificationCode(ctx context.Context, req auth.SendCodeRequest) (auth.SendCodeResponse, error) {
	emp, err := a.EmployeeRepository.GetByEmployeeNo(ctx, req.CID, req.EmployeeNo)
	if err != nil {
		return auth.SendCodeResponse{}, fmt.Errorf("failed to get employee by number: %w", err)
	}
	if !emp.IsActive() {
		return auth.SendCodeResponse{}, auth.ErrEmployeeNotActive
	}
	if emp.Email == nil || *emp.Email == "" {
		return auth.SendCodeResponse{}, auth.ErrNoEmailOnRecord
	}

	acquired, err := a.codes.AcquireCooldown(ctx, req.CID, req.EmployeeNo, codeCooldown)
	if err != nil {
		return auth.SendCodeResponse{}, fmt.Errorf("failed to acquire code cooldown: %w", err)
	}
	if !acquired {
		a.observe("send", "cooldown")
		return auth.SendCodeResponse{}, auth.ErrCodeCooldown
	}

	code, err := generateCode()
	if err != nil {
		return auth.SendCodeResponse{}, fmt.Errorf("failed to generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return auth.SendCodeResponse{}, fmt.Errorf("failed to hash code: %w", err)
	}

	if err := a.codes.Save(ctx, req.CID, req.EmployeeNo, string(hash), codeTTL); err != nil {
		return auth.SendCodeResponse{}, fmt.Errorf("failed to save code: %w", err)
	}

	if err := a.mailer.SendVerificationCode(ctx, *emp.Email, emp.FullName, code, codeTTL); err != nil {
		a.observe("send", "error")
		if delErr := a.codes.Delete(ctx, req.CID, req.EmployeeNo); delErr != nil {
			slog.Error("failed to discard undelivered code", "cid", req.CID, "employee_no", req.EmployeeNo, "error", delErr)
		}
		return auth.SendCodeResponse{}, fmt.Errorf("failed to send verification code: %w", err)
	}

	a.observe("send", "success")
	slog.Info("verification code sent", "cid", req.CID, "employee_no", req.EmployeeNo)

	return auth.SendCodeResponse{
		MaskedEmail: maskEmail(*emp.Email),
		ExpiresIn:   int64(codeTTL.Seconds()),
	}, nil
}

// VerifyCode implements auth.AuthService.
func (a *AuthServiceImpl) VerifyCode(ctx context.Context, req auth.VerifyCodeRequest) (auth.TokenResponse, error) {
	stored, err := a.codes.Get(ctx, req.CID, req.EmployeeNo)
	if err != nil {
		if errors.Is(err, auth.ErrCodeNotFound) {
			a.observe("verify", "expired")
			return auth.TokenResponse{}, err
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get code: %w", err)
	}
	if stored.Attempts >= maxAttempts {
		return auth.TokenResponse{}, a.burnCode(ctx, req)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.Hash), []byte(req.Code)); err != nil {
		attempts, incErr := a.codes.IncrementAttempts(ctx, req.CID, req.EmployeeNo)
		if incErr != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to record attempt: %w", incErr)
		}
		if attempts >= maxAttempts {
			return auth.TokenResponse{}, a.burnCode(ctx, req)
		}
		a.observe("verify", "invalid")
		return auth.TokenResponse{}, auth.ErrInvalidCode
	}

	if err := a.codes.Delete(ctx, req.CID, req.EmployeeNo); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to consume code: %w", err)
	}

	emp, err := a.EmployeeRepository.GetByEmployeeNo(ctx, req.CID, req.EmployeeNo)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by number: %w", err)
	}
	if !emp.IsActive() {
		return auth.TokenResponse{}, auth.ErrEmployeeNotActive
	}

	token, claims, err := a.Service.Issue(emp.ID, req.CID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.observe("verify", "success")
	return auth.TokenResponse{
		TokenID:   token,
		UID:       emp.ID,
		CID:       req.CID,
		Name:      emp.FullName,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

func (a *AuthServiceImpl) burnCode(ctx context.Context, req auth.VerifyCodeRequest) error {
	a.observe("verify", "locked")
	if err := a.codes.Delete(ctx, req.CID, req.EmployeeNo); err != nil {
		return fmt.Errorf("failed to burn code: %w", err)
	}
	slog.Warn("verification code burned after too many attempts", "cid", req.CID, "employee_no", req.EmployeeNo)
	return auth.ErrTooManyAttempts
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, creds auth.Credentials) error {
	claims, err := a.verify(ctx, creds)
	if err != nil {
		return err
	}

	ttl := claims.ExpiresAt.Sub(a.now())
	if ttl <= 0 {
		return nil
	}
	if err := a.revoked.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (a *AuthServiceImpl) observe(event, result string) {
	if a.metrics == nil {
		return
	}
	a.metrics.VerificationCodes.WithLabelValues(event, result).Inc()
}

// generateCode returns a zero-padded random decimal code.
func generateCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < codeLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeLength, n.Int64()), nil
}

// maskEmail keeps the first character of the local part: "ming@acme.test" -> "m***@acme.test".
func maskEmail(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at <= 0 {
		return "***"
	}
	return addr[:1] + "***" + addr[at:]
}
