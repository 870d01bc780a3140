// Package identkit is the client-side identity core of a web application:
// it mirrors server-confirmed identity in a session container, gates
// navigation into protected areas, validates credential forms before
// submission, and completes the email-verification handshake.
//
// The package is the public surface. It exposes [SessionState], [Guard],
// [VerificationFlow], [Builder], [Config], and the collaborator interfaces
// ([IdentityProvider], [LogoutProvider], [EmailVerifier],
// [PendingEmailStore]). Form validation lives in the validation subpackage,
// net/http adapters in middleware, and a reference collaborator client in
// httpapi.
//
// # Architecture boundaries
//
// identkit decides, it does not render or transport. All network calls go
// through collaborator interfaces; all validation outcomes are data; all
// guard outcomes are explicit admit/redirect decisions the embedding
// application acts on.
//
// # What this package must NOT do
//
//   - Render UI or own routing — it returns decisions, callers navigate.
//   - Persist identity beyond one application session. The pending-email
//     marker is the single externally persisted value, and it is owned by
//     a [PendingEmailStore] implementation, not by the core.
//   - Make authorization decisions beyond the single role field.
//
// # Consistency contract
//
// SessionState.Valid is true if and only if an identity payload is held.
// The identity check is re-performed on every protected navigation; a stale
// session flag must never admit a revoked user.
package identkit
