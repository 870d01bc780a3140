package identkit

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Builder assembles a [Core] from explicit collaborators. Construction is
// allocation-only: no collaborator is called until the core is used.
//
// There is deliberately no package-level singleton; the embedding
// application constructs one core per application session and tears it
// down with [Core.Close] when the session ends.
type Builder struct {
	config   Config
	session  *SessionState
	identity IdentityProvider
	logout   LogoutProvider
	verifier EmailVerifier
	pending  PendingEmailStore
	logger   zerolog.Logger
	built    bool
}

// New returns a Builder preloaded with [DefaultConfig] and a no-op logger.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
		logger: zerolog.Nop(),
	}
}

// WithConfig replaces the configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithIdentityProvider sets the collaborator the guard confirms identity
// with. Required.
func (b *Builder) WithIdentityProvider(p IdentityProvider) *Builder {
	b.identity = p
	return b
}

// WithLogoutProvider sets the best-effort server-side logout collaborator.
func (b *Builder) WithLogoutProvider(p LogoutProvider) *Builder {
	b.logout = p
	return b
}

// WithVerifier sets the email-verification collaborator. Required together
// with WithPendingEmailStore to enable the verification flow.
func (b *Builder) WithVerifier(v EmailVerifier) *Builder {
	b.verifier = v
	return b
}

// WithPendingEmailStore sets the store holding the pending-email marker.
func (b *Builder) WithPendingEmailStore(s PendingEmailStore) *Builder {
	b.pending = s
	return b
}

// WithSessionState supplies an existing session container, for callers
// that subscribe observers before building. Defaults to a fresh one.
func (b *Builder) WithSessionState(s *SessionState) *Builder {
	b.session = s
	return b
}

// WithLogger sets the logger used by the guard and the verification flow.
func (b *Builder) WithLogger(l zerolog.Logger) *Builder {
	b.logger = l
	return b
}

// Build validates the wiring and returns the assembled core. A Builder is
// single-use.
func (b *Builder) Build() (*Core, error) {
	if b.built {
		return nil, fmt.Errorf("%w: builder already used", ErrNotReady)
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	if b.identity == nil {
		return nil, fmt.Errorf("%w: identity provider is required", ErrNotReady)
	}
	if (b.verifier == nil) != (b.pending == nil) {
		return nil, fmt.Errorf("%w: verifier and pending email store must be set together", ErrNotReady)
	}
	b.built = true

	session := b.session
	if session == nil {
		session = NewSessionState()
	}

	core := &Core{
		Session: session,
		Guard:   NewGuard(session, b.identity, b.logout, b.config.Routes, b.logger),
		Config:  b.config,
	}
	if b.verifier != nil {
		core.Verification = NewVerificationFlow(b.pending, b.verifier, b.config, b.logger)
	}
	return core, nil
}

// Core is the assembled identity layer: session container, route guard,
// and (when wired) the email-verification flow.
type Core struct {
	Session      *SessionState
	Guard        *Guard
	Verification *VerificationFlow
	Config       Config
}

// Close tears the core down at application-session end. Local identity is
// discarded; collaborators are not contacted (server-side logout is
// [Guard.Logout], an explicit user action).
func (c *Core) Close() {
	c.Session.Clear()
}
