package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

const signatureParam = "signature"

// Signer produces the signature appended to authenticated requests.
type Signer interface {
	Sign(payload string) string
}

// HMACSigner signs payloads with HMAC-SHA256 keyed by the API secret.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner returns a signer for secret.
func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

// Sign returns the lowercase hex HMAC-SHA256 of payload.
func (s *HMACSigner) Sign(payload string) string {
	return Sign(payload, string(s.secret))
}

// Sign computes the lowercase hex HMAC-SHA256 of payload keyed by secret.
func Sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignParams encodes params once and appends the signature over exactly that
// encoding. The returned string is what goes on the wire.
func SignParams(params *Params, signer Signer) string {
	query := params.Encode()
	signature := signer.Sign(query)
	if query == "" {
		return signatureParam + "=" + signature
	}
	return query + "&" + signatureParam + "=" + signature
}
