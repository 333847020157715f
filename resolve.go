package stayauth

import (
	"encoding/json"

	"github.com/lumenstay/stayauth/session"
)

// loginPayload is the superset of every login response shape the backend is
// known to produce: a bare full session, a bare second-factor challenge, or
// an envelope wrapping either.
type loginPayload struct {
	Token            string          `json:"token"`
	User             *session.User   `json:"user"`
	RequireTwoFactor *bool           `json:"requireTwoFactor"`
	UserID           string          `json:"userId"`
	Success          *bool           `json:"success"`
	Message          string          `json:"message"`
	Detail           string          `json:"error"`
	Data             json.RawMessage `json:"data"`
}

// shapeMatcher inspects a decoded payload and either claims it or passes.
// Matchers run in priority order; new backend shapes are supported by adding
// a matcher, not by branching deeper into existing ones.
type shapeMatcher func(p *loginPayload) (*LoginResult, bool)

var loginShapeMatchers = []shapeMatcher{
	matchFullSession,
	matchTwoFactorChallenge,
}

func matchFullSession(p *loginPayload) (*LoginResult, bool) {
	if p.Token == "" || p.User == nil {
		return nil, false
	}
	return &LoginResult{Token: p.Token, User: p.User}, true
}

func matchTwoFactorChallenge(p *loginPayload) (*LoginResult, bool) {
	if p.RequireTwoFactor == nil || !*p.RequireTwoFactor || p.UserID == "" {
		return nil, false
	}
	return &LoginResult{TwoFactorRequired: true, TwoFactorUserID: p.UserID}, true
}

// resolveLoginPayload classifies a 2xx login response body into the outcome
// union. A body matching no known shape is a failure, never a silent
// success: guessing here would corrupt the session.
func resolveLoginPayload(raw []byte) (*LoginResult, error) {
	return resolveLoginLevel(raw, false)
}

func resolveLoginLevel(raw []byte, nested bool) (*LoginResult, error) {
	var p loginPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, unrecognizedResponse()
	}

	for _, match := range loginShapeMatchers {
		if result, ok := match(&p); ok {
			return result, nil
		}
	}

	if !nested && p.Success != nil {
		if !*p.Success {
			apiErr := session.NewAPIError(messageOr(p.Message, "login failed")).WithCause(ErrServerRejected)
			apiErr.Detail = p.Detail
			return nil, apiErr
		}
		if len(p.Data) > 0 {
			return resolveLoginLevel(p.Data, true)
		}
		return nil, unrecognizedResponse()
	}

	return nil, unrecognizedResponse()
}

// userEnvelope is the {success, data, message} contract of the me endpoint.
type userEnvelope struct {
	Success *bool         `json:"success"`
	Message string        `json:"message"`
	Detail  string        `json:"error"`
	Data    *session.User `json:"data"`
}

func resolveUserEnvelope(raw []byte) (*session.User, error) {
	var env userEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, unrecognizedResponse()
	}
	if env.Success != nil && *env.Success && env.Data != nil {
		return env.Data, nil
	}
	if env.Success != nil && !*env.Success {
		apiErr := session.NewAPIError(messageOr(env.Message, "invalid token or failed to fetch user data")).WithCause(ErrServerRejected)
		apiErr.Detail = env.Detail
		return nil, apiErr
	}
	return nil, unrecognizedResponse()
}

// messageEnvelope is the {success, message} contract of the signup endpoint.
type messageEnvelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"error"`
}

func resolveMessageEnvelope(raw []byte, defaultOK, defaultFail string) (string, error) {
	var env messageEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", unrecognizedResponse()
	}
	if env.Success == nil {
		return "", unrecognizedResponse()
	}
	if !*env.Success {
		apiErr := session.NewAPIError(messageOr(env.Message, defaultFail)).WithCause(ErrServerRejected)
		apiErr.Detail = env.Detail
		return "", apiErr
	}
	return messageOr(env.Message, defaultOK), nil
}

func unrecognizedResponse() *APIError {
	return session.NewAPIError(msgUnrecognizedFormat).WithCause(ErrUnrecognizedResponse)
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
