package transport

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// TokenFunc is the late-bound accessor for the current bearer token. It is
// consulted on every request; returning "" sends the request anonymously.
type TokenFunc func() string

// Config carries the pipeline's construction parameters.
type Config struct {
	// BaseURL is the backend origin, e.g. "https://api.example.com".
	BaseURL string
	// LoginPath is exempt from the 401 forced-logout hook.
	LoginPath string
	// Timeout bounds each request end to end. Zero means no timeout.
	Timeout time.Duration
	// UserAgent overrides the default client User-Agent when non-empty.
	UserAgent string
}

// Pipeline is the configured HTTP client wrapper. Build it once, then bind
// the token source and the unauthorized callback at composition time.
//
// Pipeline instances are safe for concurrent use after the Bind* calls.
type Pipeline struct {
	client         *resty.Client
	loginPath      string
	tokenFn        TokenFunc
	onUnauthorized func()
}

// New creates a Pipeline around a fresh resty client with the outbound and
// inbound hooks installed.
func New(cfg Config) *Pipeline {
	p := &Pipeline{loginPath: cfg.LoginPath}

	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		c.SetHeader("User-Agent", cfg.UserAgent)
	}

	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.NewString())
		if req.Header.Get("Authorization") != "" {
			return nil // explicit per-request credential wins
		}
		if p.tokenFn != nil {
			if token := p.tokenFn(); token != "" {
				req.SetHeader("Authorization", "Bearer "+token)
			}
		}
		return nil
	})

	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() != 401 {
			return nil
		}
		if p.loginPath != "" && strings.HasSuffix(resp.Request.URL, p.loginPath) {
			return nil
		}
		if p.onUnauthorized != nil {
			p.onUnauthorized()
		}
		return nil
	})

	p.client = c
	return p
}

// BindTokenSource installs the accessor consulted by the outbound hook.
func (p *Pipeline) BindTokenSource(fn TokenFunc) {
	p.tokenFn = fn
}

// BindOnUnauthorized installs the callback fired when any non-login request
// answers 401.
func (p *Pipeline) BindOnUnauthorized(fn func()) {
	p.onUnauthorized = fn
}

// PostJSON sends body as JSON to path and returns the raw 2xx response body.
// Non-2xx responses come back as [*HTTPError]; transport failures as the
// underlying client error.
func (p *Pipeline) PostJSON(ctx context.Context, path string, body any) ([]byte, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return nil, err
	}
	return unwrap(resp)
}

// GetJSON issues a GET against path. A non-empty bearer overrides the
// token source for this one request, which restore needs before any session
// state exists.
func (p *Pipeline) GetJSON(ctx context.Context, path, bearer string) ([]byte, error) {
	req := p.client.R().SetContext(ctx)
	if bearer != "" {
		req.SetHeader("Authorization", "Bearer "+bearer)
	}
	resp, err := req.Get(path)
	if err != nil {
		return nil, err
	}
	return unwrap(resp)
}

// errorEnvelope is the backend's error body contract.
type errorEnvelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"error"`
}

func unwrap(resp *resty.Response) ([]byte, error) {
	if !resp.IsError() {
		return resp.Body(), nil
	}

	httpErr := &HTTPError{
		StatusCode: resp.StatusCode(),
		Body:       append([]byte(nil), resp.Body()...),
	}
	var env errorEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err == nil {
		httpErr.Message = env.Message
		httpErr.Detail = env.Detail
	}
	return nil, httpErr
}
