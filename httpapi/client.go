package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/identkit/identkit"
)

// Backend routes, matching the server's OpenAPI surface.
const (
	pathMe       = "/api/auth/me"
	pathLogin    = "/api/auth/login"
	pathLogout   = "/api/auth/logout"
	pathRegister = "/api/auth/register"
	pathVerify   = "/api/auth/verify-email"
)

// sessionCookieName is the cookie the backend stores the session JWT in.
const sessionCookieName = "jwt"

// Client talks to the backend API. The zero value is not usable; construct
// with [NewClient]. The session cookie set by Login lives in the client's
// jar, so one Client represents one browser session.
//
// Client implements identkit.IdentityProvider, identkit.LogoutProvider,
// and identkit.EmailVerifier.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger zerolog.Logger
}

var (
	_ identkit.IdentityProvider = (*Client)(nil)
	_ identkit.LogoutProvider   = (*Client)(nil)
	_ identkit.EmailVerifier    = (*Client)(nil)
)

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger used for request outcomes.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client. The caller keeps
// responsibility for attaching a cookie jar when replacing it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient builds a client with its own cookie jar.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("httpapi: invalid base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("httpapi: cookie jar: %w", err)
	}

	c := &Client{
		base: base,
		http: &http.Client{
			Jar:     jar,
			Timeout: cfg.Timeout,
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type profileBody struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Identity confirms the caller's authentication state against the me
// endpoint. Any non-200 answer, including an expired or missing session
// cookie, maps to identkit.ErrIdentityRejected.
func (c *Client) Identity(ctx context.Context) (identkit.Identity, error) {
	resp, err := c.get(ctx, pathMe, nil)
	if err != nil {
		return identkit.Identity{}, fmt.Errorf("%w: %v", identkit.ErrIdentityRejected, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug().Int("status", resp.StatusCode).Msg("identity rejected")
		return identkit.Identity{}, fmt.Errorf("%w: status %d", identkit.ErrIdentityRejected, resp.StatusCode)
	}

	var body profileBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return identkit.Identity{}, fmt.Errorf("%w: decode: %v", identkit.ErrIdentityRejected, err)
	}

	return identkit.Identity{
		ID:    body.ID,
		Email: body.Email,
		Role:  identkit.Role(body.Role),
	}, nil
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, email, password string) error {
	resp, err := c.postJSON(ctx, pathLogin, credentialsBody{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("httpapi: login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpapi: login: status %d", resp.StatusCode)
	}
	c.logger.Debug().Str("email", email).Msg("logged in")
	return nil
}

// Register creates an account. The backend mails the verification link;
// the caller records the pending-email marker afterwards.
func (c *Client) Register(ctx context.Context, email, password string) error {
	resp, err := c.postJSON(ctx, pathRegister, credentialsBody{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("httpapi: register: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpapi: register: status %d", resp.StatusCode)
	}
	return nil
}

// Logout asks the server to invalidate the session. Best effort: any
// response counts as success, only transport failures are reported, and
// the caller clears local state regardless.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.get(ctx, pathLogout, nil)
	if err != nil {
		return fmt.Errorf("httpapi: logout: %w", err)
	}
	resp.Body.Close()
	return nil
}

// VerifyEmail submits a one-time verification token. A non-200 answer maps
// to identkit.ErrVerificationRejected.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	query := url.Values{"token": {token}}
	resp, err := c.get(ctx, pathVerify, query)
	if err != nil {
		return fmt.Errorf("%w: %v", identkit.ErrVerificationRejected, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", identkit.ErrVerificationRejected, resp.StatusCode)
	}
	return nil
}

// TokenExpiry inspects the session cookie's JWT for its expiry claim. The
// signature is NOT verified — the value is advisory, for UIs that warn
// before a session lapses. ok is false when no session cookie is held or
// the token carries no expiry.
func (c *Client) TokenExpiry() (time.Time, bool) {
	if c.http.Jar == nil {
		return time.Time{}, false
	}

	for _, cookie := range c.http.Jar.Cookies(c.base) {
		if cookie.Name != sessionCookieName {
			continue
		}

		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(cookie.Value, claims); err != nil {
			return time.Time{}, false
		}
		exp, err := claims.GetExpirationTime()
		if err != nil || exp == nil {
			return time.Time{}, false
		}
		return exp.Time, true
	}
	return time.Time{}, false
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	u := c.base.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return c.http.Do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.JoinPath(path).String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}
