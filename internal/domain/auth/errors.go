package auth

import "errors"

var (
	ErrMissingCredentials = errors.New("tokenid, uid and cid are required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenMismatch      = errors.New("token was not issued to this user")
	ErrTokenRevoked       = errors.New("token has been revoked")

	ErrCodeNotFound      = errors.New("verification code expired or was never requested")
	ErrInvalidCode       = errors.New("verification code is incorrect")
	ErrTooManyAttempts   = errors.New("too many incorrect attempts, request a new code")
	ErrCodeCooldown      = errors.New("a verification code was sent recently, try again later")
	ErrNoEmailOnRecord   = errors.New("no email address on record for this employee")
	ErrEmployeeNotActive = errors.New("employee is not active")
)
