package auth

import "context"

// Credentials is the token triple every self-service request body carries.
type Credentials struct {
	TokenID string `json:"tokenid"`
	UID     string `json:"uid"`
	CID     string `json:"cid"`
}

// AuthCredentials makes any request that embeds Credentials satisfy Credentialed.
func (c Credentials) AuthCredentials() Credentials {
	return c
}

// Credentialed is implemented by request DTOs that must pass the token check.
type Credentialed interface {
	AuthCredentials() Credentials
}

// TokenVerifier checks that a token is valid and was issued to the uid/cid
// pair it arrives with.
type TokenVerifier interface {
	Verify(ctx context.Context, creds Credentials) error
}
