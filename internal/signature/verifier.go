// Package signature verifies webhook authenticity with a shared-secret HMAC.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"sms-ingest/internal/common/errors"
)

// Verifier checks webhook signatures against a pre-shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a new signature verifier for the given shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks that signature is the hex-encoded HMAC-SHA256 of body under
// the shared secret. The comparison is constant time. Verification operates
// on the raw body bytes exactly as received; callers must not parse or
// re-serialize the body first, since JSON key reordering or whitespace
// changes would break the signature.
func (v *Verifier) Verify(body []byte, signature string) error {
	if signature == "" {
		return errors.AuthError("missing signature header")
	}

	expected := v.Compute(body)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return errors.AuthError("signature mismatch")
	}

	return nil
}

// Compute returns the hex-encoded HMAC-SHA256 of body under the shared secret.
func (v *Verifier) Compute(body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
