package bpm

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

const (
	// CallbackTokenHeader carries the shared secret on status callbacks
	CallbackTokenHeader = "X-Callback-Token"
	// CallbackSignatureHeader carries a hex HMAC-SHA256 of the body instead of the secret
	CallbackSignatureHeader = "X-Callback-Signature"
)

// CallbackVerifier authenticates status callbacks sent by BPM
type CallbackVerifier struct {
	token string
}

func NewCallbackVerifier(token string) *CallbackVerifier {
	return &CallbackVerifier{token: token}
}

// VerifyToken compares the callback token header with the configured secret.
// An unconfigured secret rejects every callback.
func (v *CallbackVerifier) VerifyToken(callbackToken string) bool {
	if v.token == "" {
		return false
	}
	got := strings.TrimSpace(callbackToken)
	return subtle.ConstantTimeCompare([]byte(got), []byte(v.token)) == 1
}

// VerifyHMACSignature verifies a hex HMAC-SHA256 of the raw payload
func (v *CallbackVerifier) VerifyHMACSignature(payload []byte, signature string) bool {
	if v.token == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(v.token))
	mac.Write(payload)
	expectedMAC := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expectedMAC), []byte(strings.ToLower(signature)))
}
