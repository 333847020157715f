package stayauth

import "github.com/lumenstay/stayauth/session"

// User is the identity record attached to an authenticated session.
type User = session.User

// Preferences holds the user's client preferences.
type Preferences = session.Preferences

// APIError is the canonical error record all failures are normalized into.
type APIError = session.APIError

// Snapshot is a read-only copy of the current session state.
type Snapshot = session.Snapshot

// Status is the session lifecycle state enumeration.
type Status = session.Status

const (
	// StatusIdle is an exported constant re-exported from the session package.
	StatusIdle = session.StatusIdle
	// StatusLoading is an exported constant re-exported from the session package.
	StatusLoading = session.StatusLoading
	// StatusSucceeded is an exported constant re-exported from the session package.
	StatusSucceeded = session.StatusSucceeded
	// StatusFailed is an exported constant re-exported from the session package.
	StatusFailed = session.StatusFailed
	// StatusTwoFactorRequired is an exported constant re-exported from the session package.
	StatusTwoFactorRequired = session.StatusTwoFactorRequired
)

// LoginRequest is the credential payload for [Engine.Login]. TwoFactorCode
// and UserID are set only when completing a pending second-factor challenge;
// the backend uses one endpoint for both steps.
type LoginRequest struct {
	Email         string `json:"email,omitempty"`
	Password      string `json:"password,omitempty"`
	TwoFactorCode string `json:"twoFactorCode,omitempty"`
	UserID        string `json:"userId,omitempty"`
}

// SignupRequest is the registration payload for [Engine.Signup]. Username,
// Email, and Password are required by the backend; the rest is profile data.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

// LoginResult is returned by [Engine.Login], [Engine.SubmitTwoFactorCode],
// and [Engine.RestoreSession]. Exactly one of the two arms is populated:
// Token+User for a full session, or TwoFactorRequired+TwoFactorUserID when
// the backend demands a second factor before granting one.
type LoginResult struct {
	Token string
	User  *User

	TwoFactorRequired bool
	TwoFactorUserID   string
}

// TopicSessionChanged is the event bus topic session snapshots are published
// on when the engine is built with [Builder.WithEventBus].
const TopicSessionChanged = "stayauth:session:changed"
