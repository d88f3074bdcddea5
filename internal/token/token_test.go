package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-download-secret")

func TestIssueVerifyRoundtrip(t *testing.T) {
	signer := NewSigner(testSecret)
	now := time.Unix(1700000000, 0)

	tok, err := signer.Issue("u1", "p1", "ord1", now)
	require.NoError(t, err)

	claims, err := signer.Verify(tok, "p1", now)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "p1", claims.ProductID)
	assert.Equal(t, "ord1", claims.PurchaseID)
	assert.Equal(t, now.Unix(), claims.IssuedAt)
}

func TestTTLIsFifteenMinutes(t *testing.T) {
	signer := NewSigner(testSecret)
	now := time.Unix(1700000000, 0)

	tok, err := signer.Issue("u1", "p1", "ord1", now)
	require.NoError(t, err)

	claims, err := signer.Verify(tok, "p1", now)
	require.NoError(t, err)
	assert.Equal(t, int64(900), claims.ExpiresAt-claims.IssuedAt)
}

func TestVerifyRejectsAnySingleByteMutation(t *testing.T) {
	signer := NewSigner(testSecret)
	now := time.Unix(1700000000, 0)

	tok, err := signer.Issue("u1", "p1", "ord1", now)
	require.NoError(t, err)

	for i := 0; i < len(tok); i++ {
		mutated := []byte(tok)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		_, err := signer.Verify(string(mutated), "p1", now)
		assert.ErrorIs(t, err, ErrInvalidSignature, "byte %d", i)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	tok, err := NewSigner(testSecret).Issue("u1", "p1", "ord1", now)
	require.NoError(t, err)

	_, err = NewSigner([]byte("other-secret")).Verify(tok, "p1", now)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyRejectsMalformedTokens(t *testing.T) {
	signer := NewSigner(testSecret)
	now := time.Unix(1700000000, 0)

	for _, tok := range []string{"", ".", "abc", "abc.", ".abc", "not base64!.sig"} {
		_, err := signer.Verify(tok, "p1", now)
		assert.ErrorIs(t, err, ErrInvalidSignature, "token %q", tok)
	}
}

func TestVerifyExpiry(t *testing.T) {
	signer := NewSigner(testSecret)
	issued := time.Unix(1700000000, 0)

	tok, err := signer.Issue("u1", "p1", "ord1", issued)
	require.NoError(t, err)

	_, err = signer.Verify(tok, "p1", issued.Add(TTL-time.Second))
	assert.NoError(t, err)

	// now == expiresAt is still inside the window.
	_, err = signer.Verify(tok, "p1", issued.Add(TTL))
	assert.NoError(t, err)

	_, err = signer.Verify(tok, "p1", issued.Add(TTL+time.Second))
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyProductBinding(t *testing.T) {
	signer := NewSigner(testSecret)
	now := time.Unix(1700000000, 0)

	tok, err := signer.Issue("u1", "product-a", "ord1", now)
	require.NoError(t, err)

	_, err = signer.Verify(tok, "product-b", now)
	assert.ErrorIs(t, err, ErrProductMismatch)
}

func TestTokenIsURLSafe(t *testing.T) {
	signer := NewSigner(testSecret)
	tok, err := signer.Issue("u1", "p1", "ord1", time.Unix(1700000000, 0))
	require.NoError(t, err)

	assert.NotContains(t, tok, "+")
	assert.NotContains(t, tok, "/")
	assert.NotContains(t, tok, "=")
	assert.Equal(t, 2, len(strings.Split(tok, ".")))
}
