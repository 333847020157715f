// Package transport wraps outbound HTTP calls to the backend with the two
// cross-cutting hooks the session core depends on.
//
// # Hooks
//
// The outbound hook reads the current bearer token through a late-bound
// [TokenFunc] on every request and attaches it as an Authorization header.
// Binding a function rather than a value means the pipeline can be built
// before the session machine exists and still serve the very first request
// at app start. Each request also carries a generated X-Request-ID.
//
// The inbound hook watches every response: a 401 on any path other than the
// login path fires the bound OnUnauthorized callback, which the engine wires
// to a forced logout. Login itself legitimately answers 401 for bad
// credentials, so it is exempt to avoid a logout loop.
//
// # Error unwrapping
//
// Non-2xx responses are returned as [*HTTPError] carrying the parsed
// {success, message, error} body when one is present, so callers always see
// the server's own message rather than a bare status line. Transport-level
// failures (no response at all) pass through as the client error.
//
// # What this package must NOT do
//
//   - Import stayauth or session (no upward imports).
//   - Interpret login payload shapes; that is the engine's resolver.
//   - Retry requests or mutate session state beyond the callback.
package transport
