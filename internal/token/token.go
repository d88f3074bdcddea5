package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TTL is fixed rather than caller-configurable so the lifetime of every
// outstanding token can be audited from this one constant.
const TTL = 15 * time.Minute

var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
	ErrProductMismatch  = errors.New("token bound to a different product")
)

// Claims binds a token to one user, one product and one purchase record.
// Timestamps are whole-second unix epoch values.
type Claims struct {
	UserID     string `json:"uid"`
	ProductID  string `json:"pid"`
	PurchaseID string `json:"cid"`
	IssuedAt   int64  `json:"iat"`
	ExpiresAt  int64  `json:"exp"`
}

// Signer issues and verifies download tokens with a server-held secret.
// The secret is injected so tests can swap it; it is never logged.
type Signer struct {
	secret []byte
}

func NewSigner(secret []byte) *Signer {
	return &Signer{secret: secret}
}

// Strict decoding rejects tokens whose trailing base64 padding bits were
// tampered with but still decode to the same bytes.
var b64 = base64.RawURLEncoding.Strict()

// Issue encodes signed claims as base64url(payload).base64url(sig).
// The caller must already have confirmed entitlement and capacity; Issue
// itself performs no authorization checks.
func (s *Signer) Issue(userID, productID, purchaseID string, now time.Time) (string, error) {
	issuedAt := now.Unix()
	payload, err := json.Marshal(Claims{
		UserID:     userID,
		ProductID:  productID,
		PurchaseID: purchaseID,
		IssuedAt:   issuedAt,
		ExpiresAt:  issuedAt + int64(TTL/time.Second),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token claims: %w", err)
	}
	return b64.EncodeToString(payload) + "." + b64.EncodeToString(s.sign(payload)), nil
}

// Verify checks the signature, then expiry, then the product binding, and
// returns the decoded claims. It deliberately does not consult entitlement
// or quota: a token's validity is purely cryptographic and temporal.
func (s *Signer) Verify(tok, expectedProductID string, now time.Time) (Claims, error) {
	var claims Claims

	payloadPart, sigPart, ok := strings.Cut(tok, ".")
	if !ok || payloadPart == "" || sigPart == "" {
		return claims, ErrInvalidSignature
	}

	payload, err := b64.DecodeString(payloadPart)
	if err != nil {
		return claims, ErrInvalidSignature
	}
	sig, err := b64.DecodeString(sigPart)
	if err != nil {
		return claims, ErrInvalidSignature
	}
	// Constant-time comparison; a plain byte compare would leak how many
	// leading signature bytes an attacker has right.
	if !hmac.Equal(sig, s.sign(payload)) {
		return claims, ErrInvalidSignature
	}

	if err := json.Unmarshal(payload, &claims); err != nil {
		return claims, ErrInvalidSignature
	}
	if now.Unix() > claims.ExpiresAt {
		return claims, ErrExpired
	}
	if claims.ProductID != expectedProductID {
		return claims, ErrProductMismatch
	}
	return claims, nil
}

func (s *Signer) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}
