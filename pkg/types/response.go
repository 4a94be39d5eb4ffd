// Package types holds the wire envelopes shared by every JSON response.
package types

// SuccessEnvelope wraps all 2xx payloads under a data key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ErrorPayload is the public face of a failure. Details carries structured
// field information only for codes that allow it.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an error payload under an error key.
type ErrorEnvelope struct {
	Error ErrorPayload `json:"error"`
}
