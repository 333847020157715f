package stayauth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lumenstay/stayauth/session"
)

// RestoreSession rebuilds the session from the persisted credential at cold
// boot. Without a stored token it fails immediately, no network call. With
// one, it asks the me endpoint who the token belongs to; any failure there
// means the credential is invalid or expired, so it is cleared.
//
// A token that parses as a JWT with an exp claim already in the past is
// rejected locally, skipping a doomed round trip. Opaque tokens pass
// through; only the server can judge those.
func (e *Engine) RestoreSession(ctx context.Context) (*LoginResult, error) {
	if e == nil || e.machine == nil || e.pipeline == nil {
		return nil, Normalize(ErrEngineNotReady)
	}

	seq := e.machine.AttemptStarted()

	token, ok, err := e.store.Get(ctx)
	if err != nil {
		return nil, e.failRestore(ctx, seq, Normalize(err), false)
	}
	if !ok {
		apiErr := session.NewAPIError("no stored credential, login required").WithCause(ErrNoStoredCredential)
		return nil, e.failRestore(ctx, seq, apiErr, false)
	}

	if tokenExpired(token, time.Now()) {
		apiErr := session.NewAPIError("stored credential has expired, login required").WithCause(ErrStoredCredentialExpired)
		return nil, e.failRestore(ctx, seq, apiErr, true)
	}

	// The token is passed explicitly: the machine holds no token yet, so the
	// pipeline's own accessor would send this request anonymously.
	body, err := e.pipeline.GetJSON(ctx, e.config.Endpoints.Me, token)
	if err != nil {
		return nil, e.failRestore(ctx, seq, Normalize(err), true)
	}

	user, err := resolveUserEnvelope(body)
	if err != nil {
		return nil, e.failRestore(ctx, seq, Normalize(err), true)
	}

	e.machine.ResolveFullSession(seq, token, user)
	e.metricInc(MetricRestoreSuccess)
	e.emitAudit(ctx, auditEventRestoreSuccess, true, user.ID, user.Email, nil, nil)
	return &LoginResult{Token: token, User: user}, nil
}

func (e *Engine) failRestore(ctx context.Context, seq uint64, apiErr *APIError, clearStored bool) *APIError {
	if clearStored {
		if err := e.store.Clear(ctx); err != nil {
			e.logger.Warn("failed to clear invalid credential", "error", err)
		}
	}
	e.machine.ResolveFailure(seq, apiErr)
	e.metricInc(MetricRestoreFailure)
	e.emitAudit(ctx, auditEventRestoreFailure, false, "", "", apiErr, nil)
	return apiErr
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Signature verification is deliberately absent: the client cannot verify
// server-side keys and only needs a cheap expiry read.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
