package stayauth

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the session core.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrNoStoredCredential is an exported constant or variable used by the session core.
	ErrNoStoredCredential = errors.New("no stored credential")
	// ErrStoredCredentialExpired is an exported constant or variable used by the session core.
	ErrStoredCredentialExpired = errors.New("stored credential expired")
	// ErrUnrecognizedResponse is an exported constant or variable used by the session core.
	ErrUnrecognizedResponse = errors.New("unrecognized response format")
	// ErrTwoFactorNotPending is an exported constant or variable used by the session core.
	ErrTwoFactorNotPending = errors.New("no two-factor challenge pending")
	// ErrServerRejected is an exported constant or variable used by the session core.
	ErrServerRejected = errors.New("server rejected request")
	// ErrNoResponse is an exported constant or variable used by the session core.
	ErrNoResponse = errors.New("no response from server")
)

const (
	msgNoResponse         = "network error or no response from server"
	msgUnrecognizedFormat = "response status was successful but the payload format was unrecognized"
	msgUnexpected         = "an unexpected error occurred"
)
