package stayauth

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/lumenstay/stayauth/session"
	"github.com/lumenstay/stayauth/transport"
)

// Normalize converts any caught failure into the canonical [*APIError].
// Rules, in priority order: an HTTP error body with a server message keeps
// that message and the status; a transport-level failure with no response
// maps to a fixed no-response message; a plain error keeps its message; a
// plain string is used verbatim; anything else yields a fixed fallback.
//
// Normalize is total: it never panics and never returns nil.
func Normalize(v any) *APIError {
	switch failure := v.(type) {
	case nil:
		return session.NewAPIError(msgUnexpected)

	case *session.APIError:
		if failure == nil {
			return session.NewAPIError(msgUnexpected)
		}
		return failure

	case *transport.HTTPError:
		return normalizeHTTP(failure)

	case error:
		return normalizeErr(failure)

	case string:
		if strings.TrimSpace(failure) == "" {
			return session.NewAPIError(msgUnexpected)
		}
		return session.NewAPIError(failure)

	default:
		return session.NewAPIError(msgUnexpected)
	}
}

func normalizeErr(err error) *APIError {
	var apiErr *session.APIError
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr
	}

	var httpErr *transport.HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		return normalizeHTTP(httpErr)
	}

	if isNoResponse(err) {
		out := session.NewAPIError(msgNoResponse).WithCause(ErrNoResponse)
		out.Detail = err.Error()
		return out
	}

	if msg := err.Error(); msg != "" {
		return session.NewAPIError(msg).WithCause(err)
	}
	return session.NewAPIError(msgUnexpected).WithCause(err)
}

func normalizeHTTP(httpErr *transport.HTTPError) *APIError {
	if httpErr == nil {
		return session.NewAPIError(msgUnexpected)
	}

	out := session.NewAPIError("").WithCause(ErrServerRejected)
	out.HTTPStatus = httpErr.StatusCode
	out.Detail = httpErr.Detail

	switch {
	case httpErr.HasMessage():
		out.Message = httpErr.Message
	case len(httpErr.Body) > 0:
		// Non-envelope bodies (HTML error pages and the like) are surfaced raw.
		out.Message = strings.TrimSpace(string(httpErr.Body))
	default:
		out.Message = httpErr.Error()
	}
	if out.Message == "" {
		out.Message = httpErr.Error()
	}
	return out
}

// isNoResponse reports whether err is a transport-level failure where no
// HTTP response arrived at all (DNS, refused connection, timeout, offline).
func isNoResponse(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
