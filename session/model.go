package session

// Status is the lifecycle state of the most recent session operation.
type Status uint8

const (
	// StatusIdle is the initial state: no operation pending, no session.
	StatusIdle Status = iota
	// StatusLoading means a login, signup, or restore attempt is in flight.
	StatusLoading
	// StatusSucceeded means the most recent attempt established a session.
	StatusSucceeded
	// StatusFailed means the most recent attempt resolved to an error.
	StatusFailed
	// StatusTwoFactorRequired means primary credentials were accepted and a
	// second-factor code is awaited before any session exists.
	StatusTwoFactorRequired
)

var statusNames = [...]string{
	StatusIdle:              "idle",
	StatusLoading:           "loading",
	StatusSucceeded:         "succeeded",
	StatusFailed:            "failed",
	StatusTwoFactorRequired: "two_factor_required",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so snapshots serialize with
// readable status values.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// NotificationPrefs mirrors the per-channel notification switches carried on
// the backend user record.
type NotificationPrefs struct {
	Email *bool `json:"email,omitempty"`
	SMS   *bool `json:"sms,omitempty"`
	Push  *bool `json:"push,omitempty"`
}

// Preferences holds the user's client preferences as returned by the backend.
type Preferences struct {
	Language      string             `json:"language,omitempty"`
	Theme         string             `json:"theme,omitempty"`
	Notifications *NotificationPrefs `json:"notifications,omitempty"`
}

// User is the identity record attached to an authenticated session. Field
// names follow the backend's wire contract; ID maps the Mongo-style "_id".
type User struct {
	ID          string       `json:"_id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FullName    string       `json:"fullName,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Role        string       `json:"role,omitempty"`
	Status      string       `json:"status,omitempty"`
	Avatar      string       `json:"avatar,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
	LastLogin   string       `json:"lastLogin,omitempty"`
	CreatedAt   string       `json:"createdAt,omitempty"`
	UpdatedAt   string       `json:"updatedAt,omitempty"`
}

// APIError is the canonical error record. Every failure surfaced by the
// engine — transport, HTTP error body, malformed payload, plain exception —
// is converted into this one shape before it is stored or returned.
type APIError struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Detail     string `json:"error,omitempty"`
	HTTPStatus int    `json:"status,omitempty"`

	cause error
}

// NewAPIError builds a canonical error with Success pinned to false.
func NewAPIError(message string) *APIError {
	return &APIError{Message: message}
}

// WithCause attaches a sentinel or underlying error for errors.Is checks.
func (e *APIError) WithCause(cause error) *APIError {
	e.cause = cause
	return e
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap exposes the underlying cause, when one was attached.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Snapshot is an immutable copy of the session state. The User pointer is
// shared; treat the record as read-only.
type Snapshot struct {
	User                *User     `json:"user"`
	Token               string    `json:"token,omitempty"`
	IsAuthenticated     bool      `json:"isAuthenticated"`
	Status              Status    `json:"status"`
	Error               *APIError `json:"error,omitempty"`
	IsTwoFactorRequired bool      `json:"isTwoFactorRequired"`
	TwoFactorUserID     string    `json:"twoFactorUserId,omitempty"`
}
