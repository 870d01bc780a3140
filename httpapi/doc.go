// Package httpapi is the reference collaborator client for the backend
// REST API. [Client] implements the identkit collaborator interfaces
// (IdentityProvider, LogoutProvider, EmailVerifier) over plain HTTP with a
// cookie-held JWT session, plus the login and registration calls the forms
// submit after validation.
//
// # Architecture boundaries
//
// httpapi owns transport: URLs, status codes, the session cookie. It holds
// no identity state of its own beyond the cookie jar and makes no
// admit/redirect decisions — failures are reported as the core's sentinel
// errors and the guard decides what they mean.
//
// # What this package must NOT do
//
//   - Mutate SessionState or the pending-email marker.
//   - Retry or re-authenticate on its own.
//   - Verify the session JWT's signature; the token is server-owned and
//     only inspected (unverified) for its expiry claim.
package httpapi
