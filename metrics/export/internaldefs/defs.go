package internaldefs

import (
	stayauth "github.com/lumenstay/stayauth"
)

// CounterDef defines a public type used by stayauth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   stayauth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by stayauth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   stayauth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session core.
var CounterDefs = []CounterDef{
	{ID: stayauth.MetricLoginSuccess, Name: "stayauth_login_success_total", Help: "Logins resolved to a full session."},
	{ID: stayauth.MetricLoginFailure, Name: "stayauth_login_failure_total", Help: "Logins resolved to a failure."},
	{ID: stayauth.MetricLoginChallengeIssued, Name: "stayauth_login_challenge_issued_total", Help: "Logins resolved to a second-factor challenge."},
	{ID: stayauth.MetricTwoFactorSuccess, Name: "stayauth_two_factor_success_total", Help: "Second-factor confirmations resolved to a full session."},
	{ID: stayauth.MetricTwoFactorFailure, Name: "stayauth_two_factor_failure_total", Help: "Failed second-factor confirmations."},
	{ID: stayauth.MetricTwoFactorCancelled, Name: "stayauth_two_factor_cancelled_total", Help: "Abandoned second-factor challenges."},
	{ID: stayauth.MetricSignupSuccess, Name: "stayauth_signup_success_total", Help: "Successful registrations."},
	{ID: stayauth.MetricSignupFailure, Name: "stayauth_signup_failure_total", Help: "Failed registrations."},
	{ID: stayauth.MetricRestoreSuccess, Name: "stayauth_restore_success_total", Help: "Sessions restored from a persisted credential."},
	{ID: stayauth.MetricRestoreFailure, Name: "stayauth_restore_failure_total", Help: "Failed session restores."},
	{ID: stayauth.MetricLogout, Name: "stayauth_logout_total", Help: "Explicit logout operations."},
	{ID: stayauth.MetricSessionInvalidated, Name: "stayauth_session_invalidated_total", Help: "Forced logouts after a 401 on a non-login request."},
	{ID: stayauth.MetricCredentialPersistFailure, Name: "stayauth_credential_persist_failure_total", Help: "Credential store writes or clears that failed."},
	{ID: stayauth.MetricUnrecognizedPayload, Name: "stayauth_unrecognized_payload_total", Help: "Successful responses whose payload shape matched no known contract."},
}

// HistogramDefs is an exported constant or variable used by the session core.
var HistogramDefs = []HistogramDef{
	{ID: stayauth.MetricLoginLatency, Name: "stayauth_login_latency_seconds", Help: "Login round-trip latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session core.
var HistogramBounds = []string{
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"1",
	"2.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session core.
var HistogramBoundSuffix = []string{
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"1",
	"2_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed width.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into cumulative counts.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
