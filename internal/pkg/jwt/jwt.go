package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenType = "selfservice"

var ErrInvalidClaims = errors.New("token claims are missing or malformed")

// Claims are the values carried by a self-service tokenid.
type Claims struct {
	TokenID   string
	UID       string
	CID       string
	ExpiresAt time.Time
}

type Service interface {
	Issue(uid, cid string) (token string, claims Claims, err error)
	Parse(token string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	expiration time.Duration
	tokenAuth  *jwtauth.JWTAuth
	now        func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, expirationTime string) (*JWTService, error) {
	expiration, err := time.ParseDuration(expirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid token expiration: %w", err)
	}

	return &JWTService{
		expiration: expiration,
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:        time.Now,
	}, nil
}

func (j *JWTService) Issue(uid, cid string) (string, Claims, error) {
	now := j.now()
	claims := Claims{
		TokenID:   uuid.NewString(),
		UID:       uid,
		CID:       cid,
		ExpiresAt: now.Add(j.expiration).Truncate(time.Second),
	}

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"jti":  claims.TokenID,
		"uid":  uid,
		"cid":  cid,
		"type": tokenType,
		"iat":  now.Unix(),
		"exp":  claims.ExpiresAt.Unix(),
	})
	if err != nil {
		return "", Claims{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims, nil
}

// Parse verifies the signature and expiry and returns the token's claims.
func (j *JWTService) Parse(tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Claims{}, err
	}

	if t, ok := token.Get("type"); !ok || t != tokenType {
		return Claims{}, ErrInvalidClaims
	}

	uid, _ := stringClaim(token, "uid")
	cid, _ := stringClaim(token, "cid")
	if uid == "" || cid == "" || token.JwtID() == "" {
		return Claims{}, ErrInvalidClaims
	}

	return Claims{
		TokenID:   token.JwtID(),
		UID:       uid,
		CID:       cid,
		ExpiresAt: token.Expiration(),
	}, nil
}

func stringClaim(token jwt.Token, name string) (string, bool) {
	v, ok := token.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
