package identkit

import "context"

// Role is the closed set of authorization levels a session may carry.
// Any other value is a data-integrity violation and is rejected by the
// route guard before it can reach session state.
type Role string

const (
	// RoleAdmin grants administrative access.
	RoleAdmin Role = "admin"
	// RoleUser is the default authenticated role.
	RoleUser Role = "user"
	// RoleEditor grants content-editing access.
	RoleEditor Role = "editor"
)

// IsValid reports whether r is one of the three known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleEditor:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// Identity is a server-confirmed identity payload. It is produced by an
// [IdentityProvider] and held by [SessionState]; nothing else creates one.
type Identity struct {
	ID    int64
	Email string
	Role  Role
}

// IdentityProvider confirms the caller's authentication state with the
// server. It is called once per protected navigation, takes no input, and
// returns the confirmed identity or an error when there is no live session
// (expired, revoked, or rejected by the network).
type IdentityProvider interface {
	Identity(ctx context.Context) (Identity, error)
}

// LogoutProvider performs best-effort server-side session invalidation.
// The core treats any response as success and clears local state regardless
// of the returned error.
type LogoutProvider interface {
	Logout(ctx context.Context) error
}

// EmailVerifier consumes a one-time verification token delivered
// out-of-band (emailed link). A nil return means the email address is
// proven; any error means the token was not accepted.
type EmailVerifier interface {
	VerifyEmail(ctx context.Context, token string) error
}

// PendingEmailStore persists the single pending-email marker across page
// loads: which address awaits verification. It is written at registration
// time and read by [VerificationFlow].
//
// Get returns [ErrNoPendingEmail] when no marker is set. Clear is
// idempotent.
type PendingEmailStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, email string) error
	Clear(ctx context.Context) error
}
