package identitywebhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"testing"
	"time"

	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
)

var testSecretKey = []byte("identity-webhook-test-key-material")

func testSecretHeader() string {
	return secretPrefix + base64.StdEncoding.EncodeToString(testSecretKey)
}

func signPayload(key []byte, messageID, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.", messageID, timestamp)
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newTestWebhookVerifier(t *testing.T) *Verifier {
	t.Helper()
	verifier, err := NewVerifier(testSecretHeader(), 5*time.Minute)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	return verifier
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWebhookVerifyAcceptsValidSignature(t *testing.T) {
	verifier := newTestWebhookVerifier(t)
	now := time.Now()
	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	ts := strconv.FormatInt(now.Unix(), 10)

	header := SignatureHeader{
		MessageID: "msg_1",
		Timestamp: ts,
		Signature: signPayload(testSecretKey, "msg_1", ts, payload),
	}
	if err := verifier.Verify(now, header, payload); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestWebhookVerifyAcceptsAnyValidEntryAmongMany(t *testing.T) {
	verifier := newTestWebhookVerifier(t)
	now := time.Now()
	payload := []byte(`{"type":"user.updated","data":{"id":"user_1"}}`)
	ts := strconv.FormatInt(now.Unix(), 10)

	valid := signPayload(testSecretKey, "msg_2", ts, payload)
	header := SignatureHeader{
		MessageID: "msg_2",
		Timestamp: ts,
		Signature: "v1,Zm9yZ2VkLXNpZ25hdHVyZQ== " + valid,
	}
	if err := verifier.Verify(now, header, payload); err != nil {
		t.Fatalf("verify with multiple entries: %v", err)
	}
}

func TestWebhookVerifyRejectsTamperedPayload(t *testing.T) {
	verifier := newTestWebhookVerifier(t)
	now := time.Now()
	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	ts := strconv.FormatInt(now.Unix(), 10)

	header := SignatureHeader{
		MessageID: "msg_3",
		Timestamp: ts,
		Signature: signPayload(testSecretKey, "msg_3", ts, payload),
	}
	tampered := []byte(`{"type":"user.created","data":{"id":"user_ATTACKER"}}`)
	assertValidationError(t, verifier.Verify(now, header, tampered))
}

func TestWebhookVerifyRejectsWrongSecret(t *testing.T) {
	verifier := newTestWebhookVerifier(t)
	now := time.Now()
	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	ts := strconv.FormatInt(now.Unix(), 10)

	header := SignatureHeader{
		MessageID: "msg_4",
		Timestamp: ts,
		Signature: signPayload([]byte("some-other-key"), "msg_4", ts, payload),
	}
	assertValidationError(t, verifier.Verify(now, header, payload))
}

func TestWebhookVerifyRejectsUnknownVersionEntries(t *testing.T) {
	verifier := newTestWebhookVerifier(t)
	now := time.Now()
	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	ts := strconv.FormatInt(now.Unix(), 10)

	v1 := signPayload(testSecretKey, "msg_5", ts, payload)
	header := SignatureHeader{
		MessageID: "msg_5",
		Timestamp: ts,
		Signature: "v2," + v1[len("v1,"):],
	}
	assertValidationError(t, verifier.Verify(now, header, payload))
}

func TestWebhookVerifyRejectsStaleTimestamp(t *testing.T) {
	verifier := newTestWebhookVerifier(t)
	now := time.Now()
	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	stale := strconv.FormatInt(now.Add(-10*time.Minute).Unix(), 10)

	header := SignatureHeader{
		MessageID: "msg_6",
		Timestamp: stale,
		Signature: signPayload(testSecretKey, "msg_6", stale, payload),
	}
	assertValidationError(t, verifier.Verify(now, header, payload))
}

func TestWebhookVerifyRejectsFutureTimestamp(t *testing.T) {
	verifier := newTestWebhookVerifier(t)
	now := time.Now()
	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	future := strconv.FormatInt(now.Add(10*time.Minute).Unix(), 10)

	header := SignatureHeader{
		MessageID: "msg_7",
		Timestamp: future,
		Signature: signPayload(testSecretKey, "msg_7", future, payload),
	}
	assertValidationError(t, verifier.Verify(now, header, payload))
}

func TestWebhookVerifyRejectsMalformedTimestamp(t *testing.T) {
	verifier := newTestWebhookVerifier(t)
	now := time.Now()
	payload := []byte(`{}`)

	header := SignatureHeader{
		MessageID: "msg_8",
		Timestamp: "yesterday",
		Signature: "v1,AAAA",
	}
	assertValidationError(t, verifier.Verify(now, header, payload))
}

func TestWebhookVerifyRejectsMissingHeaders(t *testing.T) {
	verifier := newTestWebhookVerifier(t)
	now := time.Now()

	assertValidationError(t, verifier.Verify(now, SignatureHeader{}, []byte(`{}`)))
	assertValidationError(t, verifier.Verify(now, SignatureHeader{MessageID: "msg_9"}, []byte(`{}`)))
}

func TestNewVerifierRejectsUndecodableSecret(t *testing.T) {
	if _, err := NewVerifier("whsec_%%%", time.Minute); err == nil {
		t.Fatalf("expected error for undecodable secret")
	}
	if _, err := NewVerifier("  ", time.Minute); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
