// Package middleware exposes net/http adapters for the identkit core.
//
//   - [Protect] — wraps a protected subtree; runs the route guard on every
//     request and injects the admitted identity into the request context.
//   - [VerifyEmail] — serves the verification route; runs the one-shot
//     email-verification flow against the request's query parameters.
//   - [Logout] — serves the logout action; always clears local state and
//     redirects home.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into core calls. It does NOT
// implement identity logic itself — all decisions are delegated to
// [identkit.Guard] and [identkit.VerificationFlow].
//
// # What this package must NOT do
//
//   - Call collaborators directly (the core owns that).
//   - Mutate session state (only guard and logout transitions do).
//   - Render protected content before the identity check has resolved.
package middleware
