package identkit

import "errors"

var (
	// ErrIdentityRejected is returned when the identity collaborator cannot
	// confirm a live session. It is not fatal: the guard clears session
	// state and redirects to the login route.
	ErrIdentityRejected = errors.New("identity rejected")

	// ErrInvalidRole is returned when a confirmed identity carries a role
	// outside the closed {admin, user, editor} set.
	ErrInvalidRole = errors.New("invalid role")

	// ErrVerificationRejected is returned when the verify collaborator does
	// not accept the token. The visitor stays on the verification route.
	ErrVerificationRejected = errors.New("email verification rejected")

	// ErrNoPendingEmail is returned by a PendingEmailStore when no marker
	// is set. The verification flow redirects to login in that case.
	ErrNoPendingEmail = errors.New("no pending email marker")

	// ErrPendingStoreUnavailable wraps infrastructure failures of a
	// PendingEmailStore, as opposed to an absent marker.
	ErrPendingStoreUnavailable = errors.New("pending email store unavailable")

	// ErrNotReady is returned by Builder.Build when a required collaborator
	// is missing.
	ErrNotReady = errors.New("identity core not ready")
)
