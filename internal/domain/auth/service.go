package auth

import (
	"context"
	"time"
)

type AuthService interface {
	TokenVerifier

	// SendVerificationCode emails a one-time code to the employee on record
	SendVerificationCode(ctx context.Context, req SendCodeRequest) (SendCodeResponse, error)

	// VerifyCode exchanges a valid code for a self-service token
	VerifyCode(ctx context.Context, req VerifyCodeRequest) (TokenResponse, error)

	// Logout revokes the token until it would have expired anyway
	Logout(ctx context.Context, creds Credentials) error
}

// VerificationCodeStore keeps outstanding codes keyed by company and employee number.
type VerificationCodeStore interface {
	Save(ctx context.Context, cid, employeeNo, hash string, ttl time.Duration) error
	Get(ctx context.Context, cid, employeeNo string) (VerificationCode, error)
	IncrementAttempts(ctx context.Context, cid, employeeNo string) (int64, error)
	Delete(ctx context.Context, cid, employeeNo string) error
	AcquireCooldown(ctx context.Context, cid, employeeNo string, cooldown time.Duration) (bool, error)
}

// TokenRevocationStore remembers logged-out tokens by their id.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
