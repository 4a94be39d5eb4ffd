package identitywebhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
)

const (
	secretPrefix     = "whsec_"
	defaultTolerance = 5 * time.Minute

	headerMessageID = "svix-id"
	headerTimestamp = "svix-timestamp"
	headerSignature = "svix-signature"
)

// Verifier checks webhook signatures using the provider's scheme: an
// HMAC-SHA256 over "{id}.{timestamp}.{body}" keyed with the base64 portion
// of the signing secret, offered as space-separated "v1,<base64>" entries.
type Verifier struct {
	secret    []byte
	tolerance time.Duration
}

// NewVerifier decodes the signing secret and fixes the timestamp tolerance.
func NewVerifier(signingSecret string, tolerance time.Duration) (*Verifier, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(signingSecret), secretPrefix)
	if trimmed == "" {
		return nil, errors.New("signing secret is required")
	}
	secret, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("decoding signing secret: %w", err)
	}
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	return &Verifier{secret: secret, tolerance: tolerance}, nil
}

// SignatureHeader carries the provider-supplied signature headers.
type SignatureHeader struct {
	MessageID string
	Timestamp string
	Signature string
}

// HeaderFromRequest extracts the signature headers from an inbound request.
func HeaderFromRequest(r *http.Request) SignatureHeader {
	return SignatureHeader{
		MessageID: r.Header.Get(headerMessageID),
		Timestamp: r.Header.Get(headerTimestamp),
		Signature: r.Header.Get(headerSignature),
	}
}

// Verify recomputes the expected signature for the payload and enforces the
// timestamp tolerance window. Every failure maps to a validation error so
// the endpoint answers 400 without applying the event.
func (v *Verifier) Verify(now time.Time, header SignatureHeader, payload []byte) error {
	if header.MessageID == "" || header.Timestamp == "" || header.Signature == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "webhook signature headers missing")
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(header.Timestamp), 10, 64)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid webhook timestamp")
	}
	skew := now.Sub(time.Unix(ts, 0))
	if skew > v.tolerance || skew < -v.tolerance {
		return pkgerrors.New(pkgerrors.CodeValidation, "webhook timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%s.%s.", header.MessageID, header.Timestamp)
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, entry := range strings.Fields(header.Signature) {
		version, sig, found := strings.Cut(entry, ",")
		if !found || version != "v1" {
			continue
		}
		offered, decodeErr := base64.StdEncoding.DecodeString(sig)
		if decodeErr != nil {
			continue
		}
		if hmac.Equal(expected, offered) {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "webhook signature mismatch")
}
