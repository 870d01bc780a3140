package identkit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GuardState is the lifecycle of a single protected-navigation evaluation.
type GuardState uint8

const (
	// GuardIdle is the state between navigations.
	GuardIdle GuardState = iota
	// GuardChecking means the identity collaborator call is in flight.
	GuardChecking
	// GuardAdmitted is terminal for a navigation: the route may render.
	GuardAdmitted
	// GuardDenied is terminal for a navigation: the visitor is redirected.
	GuardDenied
)

func (s GuardState) String() string {
	switch s {
	case GuardIdle:
		return "idle"
	case GuardChecking:
		return "checking"
	case GuardAdmitted:
		return "admitted"
	case GuardDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Decision is the outcome of one guard evaluation. When State is
// [GuardAdmitted], User carries the confirmed identity and the route
// receives it as load data. When RedirectTo is non-empty, the caller must
// navigate there instead of rendering.
type Decision struct {
	State        GuardState
	User         Identity
	RedirectTo   string
	NavigationID string
	Err          error
}

// Admitted reports whether the navigation may proceed.
func (d Decision) Admitted() bool {
	return d.State == GuardAdmitted
}

// Guard decides, on each navigation into a protected subtree, whether
// session state accurately reflects the caller's authentication state, and
// acts on mismatches. The check is re-performed on every protected
// navigation — correctness over latency: a cached flag could silently
// admit a revoked user.
//
// Guard is the only component that mutates [SessionState] besides the
// logout action, and every mutation is a full set or a full clear.
type Guard struct {
	identity IdentityProvider
	logout   LogoutProvider
	session  *SessionState
	routes   RoutesConfig
	logger   zerolog.Logger
}

// NewGuard wires a guard to its collaborators. session and identity must be
// non-nil; logout may be nil when the embedding application has no logout
// surface.
func NewGuard(session *SessionState, identity IdentityProvider, logout LogoutProvider, routes RoutesConfig, logger zerolog.Logger) *Guard {
	return &Guard{
		identity: identity,
		logout:   logout,
		session:  session,
		routes:   routes,
		logger:   logger,
	}
}

// Check runs one protected-navigation evaluation: Checking, then Admitted
// or Denied. On success the identity is stored in session state and
// returned as load data. On failure session state is cleared and the
// decision redirects to the login route. Check never panics and never
// returns an error outside the Decision.
func (g *Guard) Check(ctx context.Context) Decision {
	nav := uuid.NewString()

	if g.identity == nil {
		return g.deny(nav, ErrNotReady)
	}

	g.logger.Debug().Str("navigation", nav).Str("state", GuardChecking.String()).Msg("identity check")

	id, err := g.identity.Identity(ctx)
	if err != nil {
		if !errors.Is(err, ErrIdentityRejected) {
			err = fmt.Errorf("%w: %v", ErrIdentityRejected, err)
		}
		return g.deny(nav, err)
	}

	if !id.Role.IsValid() {
		// Data-integrity violation, treated like a rejected identity.
		return g.deny(nav, fmt.Errorf("%w: %q", ErrInvalidRole, id.Role))
	}

	g.session.Set(id)
	g.logger.Debug().
		Str("navigation", nav).
		Str("state", GuardAdmitted.String()).
		Int64("user_id", id.ID).
		Str("role", id.Role.String()).
		Msg("navigation admitted")

	return Decision{State: GuardAdmitted, User: id, NavigationID: nav}
}

// Logout is a distinct, always-available transition. It calls the logout
// collaborator best-effort, unconditionally clears session state, and
// redirects to the home route — regardless of any in-flight check and of
// the collaborator's response.
func (g *Guard) Logout(ctx context.Context) Decision {
	nav := uuid.NewString()

	if g.logout != nil {
		if err := g.logout.Logout(ctx); err != nil {
			g.logger.Debug().Str("navigation", nav).Err(err).Msg("server logout failed, clearing locally anyway")
		}
	}

	g.session.Clear()
	g.logger.Debug().Str("navigation", nav).Msg("logged out")

	return Decision{State: GuardIdle, RedirectTo: g.routes.Home, NavigationID: nav}
}

func (g *Guard) deny(nav string, err error) Decision {
	g.session.Clear()
	g.logger.Debug().Str("navigation", nav).Str("state", GuardDenied.String()).Err(err).Msg("navigation denied")

	return Decision{State: GuardDenied, RedirectTo: g.routes.Login, NavigationID: nav, Err: err}
}
