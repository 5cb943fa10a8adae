// Package types holds the JSON envelopes shared by the storefront API and
// the cart sync client.
package types

// SuccessEnvelope wraps every 2xx payload under a data key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire form of a coded error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every non-2xx payload under an error key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
