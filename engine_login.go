package stayauth

import (
	"context"
	"errors"
	"time"

	"github.com/lumenstay/stayauth/session"
)

// Login posts credentials to the login endpoint and resolves the response to
// one of the outcome union's arms: a full session (token committed and
// persisted before Login returns), a pending second-factor challenge, or a
// canonical error. A 200 response whose shape matches nothing known resolves
// to a failure, never to a silent success.
//
// Login drives the session machine: loading on entry, then exactly one of
// succeeded, two_factor_required, or failed on exit.
func (e *Engine) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if e == nil || e.machine == nil || e.pipeline == nil {
		return nil, Normalize(ErrEngineNotReady)
	}

	start := time.Now()
	confirming := req.TwoFactorCode != ""
	seq := e.machine.AttemptStarted()

	body, err := e.pipeline.PostJSON(ctx, e.config.Endpoints.Login, req)
	if err != nil {
		return nil, e.failLogin(ctx, seq, req.Email, confirming, err)
	}

	result, err := resolveLoginPayload(body)
	if err != nil {
		if errors.Is(err, ErrUnrecognizedResponse) {
			e.metricInc(MetricUnrecognizedPayload)
		}
		return nil, e.failLogin(ctx, seq, req.Email, confirming, err)
	}

	e.metrics.Observe(MetricLoginLatency, time.Since(start))

	if result.TwoFactorRequired {
		e.machine.ResolveChallenge(seq, result.TwoFactorUserID)
		e.metricInc(MetricLoginChallengeIssued)
		e.emitAudit(ctx, auditEventLoginChallenge, true, result.TwoFactorUserID, req.Email, nil, nil)
		return result, nil
	}

	e.machine.ResolveFullSession(seq, result.Token, result.User)
	if confirming {
		e.metricInc(MetricTwoFactorSuccess)
		e.emitAudit(ctx, auditEventTwoFactorSuccess, true, result.User.ID, req.Email, nil, nil)
	} else {
		e.metricInc(MetricLoginSuccess)
		e.emitAudit(ctx, auditEventLoginSuccess, true, result.User.ID, req.Email, nil, nil)
	}
	return result, nil
}

// SubmitTwoFactorCode completes a pending challenge by re-posting to the
// login endpoint with the stored pending user id and the code; the backend
// does not use a separate confirmation route.
func (e *Engine) SubmitTwoFactorCode(ctx context.Context, code string) (*LoginResult, error) {
	if e == nil || e.machine == nil {
		return nil, Normalize(ErrEngineNotReady)
	}

	snap := e.machine.Snapshot()
	if !snap.IsTwoFactorRequired || snap.TwoFactorUserID == "" {
		return nil, session.NewAPIError("no two-factor challenge pending").WithCause(ErrTwoFactorNotPending)
	}

	return e.Login(ctx, LoginRequest{
		UserID:        snap.TwoFactorUserID,
		TwoFactorCode: code,
	})
}

func (e *Engine) failLogin(ctx context.Context, seq uint64, email string, confirming bool, cause error) *APIError {
	apiErr := Normalize(cause)
	e.machine.ResolveFailure(seq, apiErr)
	if confirming {
		e.metricInc(MetricTwoFactorFailure)
		e.emitAudit(ctx, auditEventTwoFactorFailure, false, "", email, apiErr, nil)
	} else {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", email, apiErr, nil)
	}
	return apiErr
}
