// Package session owns the client-side authentication session: the single
// source of truth for session status, user identity, bearer token, and the
// pending second-factor sub-state.
//
// # State machine
//
// A [Machine] holds one [Snapshot] and mutates it only through named
// transitions (AttemptStarted, ResolveFullSession, ResolveChallenge,
// ResolveFailure, CancelTwoFactor, ClearError, Logout). Every transition is
// an atomic, non-interleaved update; callers never write fields directly.
//
// Each attempt is tagged with a monotonically increasing sequence number.
// A resolution carrying a stale sequence is discarded, so the result of an
// in-flight network call can never overwrite state committed by a newer
// attempt, a logout, or a cancelled challenge.
//
// # Architecture boundaries
//
// This package owns the [Machine], the [Snapshot] model, and the canonical
// [APIError] record. It performs no I/O of its own: network calls belong to
// the Engine, and durable token persistence is delegated through the
// [TokenSink] callback interface.
//
// # What this package must NOT do
//
//   - Import stayauth or transport (no upward imports).
//   - Issue, parse, or validate tokens.
//   - Retry or re-drive a failed attempt; retry policy belongs to the caller.
package session
