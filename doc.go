// Package stayauth is the client-side session and authentication core of the
// LumenStay mobile app. It owns the lifecycle of the authenticated session:
// login with an optional second factor, signup, cold-boot session restore,
// bearer-token injection on outbound requests, forced logout on authorization
// expiry, and the normalization of every failure into one canonical record.
//
// The package is a library, not a UI: screens dispatch intents into an
// [Engine] (Login, SubmitTwoFactorCode, CancelTwoFactor, Logout, ClearError)
// and read or subscribe to the published [session.Snapshot] to decide what to
// render. Engine methods are safe to call from multiple goroutines after
// initialization through [Builder.Build].
//
// # Architecture boundaries
//
// stayauth is the public surface. It exposes [Engine], [Builder], [Config],
// the [CredentialStore] backends, and value types. The state machine lives in
// the session subpackage and the HTTP hook plumbing in transport; both are
// leaves that never import upward.
//
// # Failure contract
//
// No operation lets an error escape unconverted: every failure an Engine
// method returns is a [*APIError] produced by [Normalize], and the same
// record is published on the session snapshot until cleared or superseded.
package stayauth
