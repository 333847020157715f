package stayauth

import "context"

// Signup posts registration data and resolves to the server's confirmation
// message or a canonical error. It never establishes a session: the backend
// does not auto-login after registration, so the session machine is not
// driven here.
func (e *Engine) Signup(ctx context.Context, req SignupRequest) (string, error) {
	if e == nil || e.pipeline == nil {
		return "", Normalize(ErrEngineNotReady)
	}

	body, err := e.pipeline.PostJSON(ctx, e.config.Endpoints.Signup, req)
	if err != nil {
		return "", e.failSignup(ctx, req.Email, err)
	}

	message, err := resolveMessageEnvelope(body, "signup successful", "signup failed")
	if err != nil {
		return "", e.failSignup(ctx, req.Email, err)
	}

	e.metricInc(MetricSignupSuccess)
	e.emitAudit(ctx, auditEventSignupSuccess, true, "", req.Email, nil, nil)
	return message, nil
}

func (e *Engine) failSignup(ctx context.Context, email string, cause error) *APIError {
	apiErr := Normalize(cause)
	e.metricInc(MetricSignupFailure)
	e.emitAudit(ctx, auditEventSignupFailure, false, "", email, apiErr, nil)
	return apiErr
}
