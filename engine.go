package stayauth

import (
	"context"
	"log/slog"

	"github.com/lumenstay/stayauth/session"
	"github.com/lumenstay/stayauth/transport"
)

// Engine defines a public type used by stayauth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config   Config
	machine  *session.Machine
	pipeline *transport.Pipeline
	store    CredentialStore
	audit    *auditDispatcher
	metrics  *Metrics
	logger   *slog.Logger

	unsubscribeBus func()
}

// Close releases background resources (the audit dispatcher and any event
// bus subscription). The engine must not be used after Close.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.unsubscribeBus != nil {
		e.unsubscribeBus()
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// State returns a read-only copy of the current session state.
func (e *Engine) State() Snapshot {
	if e == nil || e.machine == nil {
		return Snapshot{Status: StatusIdle}
	}
	return e.machine.Snapshot()
}

// Subscribe registers fn to receive a snapshot after every committed session
// transition. The returned func removes the subscription.
func (e *Engine) Subscribe(fn func(Snapshot)) func() {
	if e == nil || e.machine == nil {
		return func() {}
	}
	return e.machine.Subscribe(fn)
}

// Logout resets the session to the initial logged-out state and removes the
// persisted credential. It is also the transition forced by an authorization
// expiry detected on any response.
func (e *Engine) Logout() {
	if e == nil || e.machine == nil {
		return
	}
	e.machine.Logout()
	e.metricInc(MetricLogout)
	e.emitAudit(context.Background(), auditEventLogout, true, "", "", nil, nil)
}

// CancelTwoFactor abandons a pending second-factor challenge and returns the
// session to idle. A late-arriving resolution of the abandoned attempt is
// discarded.
func (e *Engine) CancelTwoFactor() {
	if e == nil || e.machine == nil {
		return
	}
	e.machine.CancelTwoFactor()
	e.metricInc(MetricTwoFactorCancelled)
	e.emitAudit(context.Background(), auditEventTwoFactorCancelled, true, "", "", nil, nil)
}

// ClearError drops the published error without any other state change.
func (e *Engine) ClearError() {
	if e == nil || e.machine == nil {
		return
	}
	e.machine.ClearError()
}

// MetricsSnapshot returns a point-in-time copy of all engine metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// AuditDropped reports audit events discarded under backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// sessionInvalidated is the inbound hook's 401 reaction: the server no
// longer honors the session, so force the logged-out state.
func (e *Engine) sessionInvalidated() {
	e.machine.Logout()
	e.metricInc(MetricSessionInvalidated)
	e.logger.Warn("session invalidated by server, forcing logout")
	e.emitAudit(context.Background(), auditEventSessionInvalidated, false, "", "", ErrServerRejected, nil)
}

// storeSink adapts the CredentialStore to the machine's fire-and-forget
// persistence contract. Failures are counted and logged, never propagated:
// a persist error must not veto an already-committed in-memory transition.
type storeSink struct {
	e *Engine
}

func (s storeSink) Persist(token string) {
	if err := s.e.store.Set(context.Background(), token); err != nil {
		s.e.metricInc(MetricCredentialPersistFailure)
		s.e.logger.Warn("failed to persist credential", "error", err)
	}
}

func (s storeSink) Clear() {
	if err := s.e.store.Clear(context.Background()); err != nil {
		s.e.metricInc(MetricCredentialPersistFailure)
		s.e.logger.Warn("failed to clear persisted credential", "error", err)
	}
}
