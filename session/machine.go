package session

import "sync"

// TokenSink receives fire-and-forget persistence side effects committed by
// the [Machine]. Implementations must not block; a failure to persist never
// vetoes the in-memory transition that triggered it.
type TokenSink interface {
	Persist(token string)
	Clear()
}

type noopSink struct{}

func (noopSink) Persist(string) {}
func (noopSink) Clear()         {}

// Machine is the session state machine. All transitions are serialized
// under one mutex; subscribers are notified after each committed transition
// in commit order.
//
// Machine instances are safe for concurrent use.
type Machine struct {
	mu   sync.Mutex
	snap Snapshot
	seq  uint64
	sink TokenSink

	subMu  sync.Mutex
	subSeq int
	subs   map[int]func(Snapshot)
}

// NewMachine creates a Machine in the initial idle state. sink may be nil.
func NewMachine(sink TokenSink) *Machine {
	if sink == nil {
		sink = noopSink{}
	}
	return &Machine{
		snap: Snapshot{Status: StatusIdle},
		sink: sink,
		subs: make(map[int]func(Snapshot)),
	}
}

// Snapshot returns a copy of the current session state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Token returns the current bearer token, or "" when no session exists.
// It is the late-bound accessor handed to the request pipeline.
func (m *Machine) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.Token
}

// Subscribe registers fn to be called with a snapshot after every committed
// transition. The returned func removes the subscription.
func (m *Machine) Subscribe(fn func(Snapshot)) func() {
	m.subMu.Lock()
	id := m.subSeq
	m.subSeq++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

func (m *Machine) notify(snap Snapshot) {
	m.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// AttemptStarted marks a fresh login or restore attempt: status becomes
// loading, the previous error and any stale second-factor challenge are
// cleared. The returned sequence number must be passed to the matching
// Resolve call; it identifies the attempt so stale resolutions can be
// discarded.
func (m *Machine) AttemptStarted() uint64 {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.snap.Status = StatusLoading
	m.snap.Error = nil
	m.snap.IsTwoFactorRequired = false
	m.snap.TwoFactorUserID = ""
	snap := m.snap
	m.mu.Unlock()

	m.notify(snap)
	return seq
}

// ResolveFullSession commits a full session for the attempt identified by
// seq: token and user are set, the session becomes authenticated, and the
// token is persisted through the sink. Returns false when seq is stale.
func (m *Machine) ResolveFullSession(seq uint64, token string, user *User) bool {
	m.mu.Lock()
	if seq != m.seq {
		m.mu.Unlock()
		return false
	}
	m.snap.Token = token
	m.snap.User = user
	m.snap.IsAuthenticated = true
	m.snap.Status = StatusSucceeded
	m.snap.Error = nil
	m.snap.IsTwoFactorRequired = false
	m.snap.TwoFactorUserID = ""
	snap := m.snap
	m.mu.Unlock()

	m.sink.Persist(token)
	m.notify(snap)
	return true
}

// ResolveChallenge commits a pending second-factor challenge: no token, no
// user, not authenticated. Returns false when seq is stale.
func (m *Machine) ResolveChallenge(seq uint64, userID string) bool {
	m.mu.Lock()
	if seq != m.seq {
		m.mu.Unlock()
		return false
	}
	m.snap.Token = ""
	m.snap.User = nil
	m.snap.IsAuthenticated = false
	m.snap.Status = StatusTwoFactorRequired
	m.snap.Error = nil
	m.snap.IsTwoFactorRequired = true
	m.snap.TwoFactorUserID = userID
	snap := m.snap
	m.mu.Unlock()

	m.notify(snap)
	return true
}

// ResolveFailure commits a failed attempt with its canonical error.
// Returns false when seq is stale.
func (m *Machine) ResolveFailure(seq uint64, apiErr *APIError) bool {
	if apiErr == nil {
		apiErr = NewAPIError("unknown error")
	}
	m.mu.Lock()
	if seq != m.seq {
		m.mu.Unlock()
		return false
	}
	m.snap.Token = ""
	m.snap.User = nil
	m.snap.IsAuthenticated = false
	m.snap.Status = StatusFailed
	m.snap.Error = apiErr
	m.snap.IsTwoFactorRequired = false
	m.snap.TwoFactorUserID = ""
	snap := m.snap
	m.mu.Unlock()

	m.notify(snap)
	return true
}

// CancelTwoFactor abandons a pending challenge and returns to idle. It is a
// no-op in any other state. The sequence is bumped so the resolution of an
// attempt still in flight is discarded.
func (m *Machine) CancelTwoFactor() {
	m.mu.Lock()
	if m.snap.Status != StatusTwoFactorRequired {
		m.mu.Unlock()
		return
	}
	m.seq++
	m.snap.Status = StatusIdle
	m.snap.Error = nil
	m.snap.IsTwoFactorRequired = false
	m.snap.TwoFactorUserID = ""
	snap := m.snap
	m.mu.Unlock()

	m.notify(snap)
}

// ClearError drops the stored error without touching anything else. Calling
// it when no error is present is a no-op and notifies nobody.
func (m *Machine) ClearError() {
	m.mu.Lock()
	if m.snap.Error == nil {
		m.mu.Unlock()
		return
	}
	m.snap.Error = nil
	snap := m.snap
	m.mu.Unlock()

	m.notify(snap)
}

// Logout resets the machine to the initial state and clears the persisted
// token. Any in-flight attempt becomes stale.
func (m *Machine) Logout() {
	m.mu.Lock()
	m.seq++
	m.snap = Snapshot{Status: StatusIdle}
	snap := m.snap
	m.mu.Unlock()

	m.sink.Clear()
	m.notify(snap)
}
