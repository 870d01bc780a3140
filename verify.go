package identkit

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

// VerifyOutcome classifies the result of one verification-flow run.
type VerifyOutcome uint8

const (
	// OutcomeRedirectLogin means there is nothing to verify: no pending
	// email marker is set. The verifier is not called.
	OutcomeRedirectLogin VerifyOutcome = iota
	// OutcomeIdle means a marker is present but the URL carries no token
	// yet. The flow halts without redirecting and makes no network call.
	OutcomeIdle
	// OutcomeVerified means the token was accepted. The visitor is
	// redirected to the login route.
	OutcomeVerified
	// OutcomeFailed means the token was rejected or the pending store was
	// unreachable. The visitor stays on the verification route; the flow
	// does not retry.
	OutcomeFailed
)

func (o VerifyOutcome) String() string {
	switch o {
	case OutcomeRedirectLogin:
		return "redirect-login"
	case OutcomeIdle:
		return "idle"
	case OutcomeVerified:
		return "verified"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// VerificationResult is the outcome of one flow run. RedirectTo is
// non-empty when the caller must navigate; Err carries the failure for
// display and is nil otherwise.
type VerificationResult struct {
	Outcome    VerifyOutcome
	RedirectTo string
	Err        error
}

// VerificationFlow completes an email-ownership proof initiated
// out-of-band: the visitor follows an emailed link carrying a one-time
// token to the verification route. The flow consumes the pending-email
// marker and the token exactly once per run.
type VerificationFlow struct {
	pending  PendingEmailStore
	verifier EmailVerifier
	routes   RoutesConfig
	// clearPending controls whether a consumed marker is removed after a
	// successful verification, preventing redundant redirects on a later
	// visit. Removal is best-effort and never undoes the success.
	clearPending bool
	logger       zerolog.Logger
}

// NewVerificationFlow wires a flow to its collaborators.
func NewVerificationFlow(pending PendingEmailStore, verifier EmailVerifier, cfg Config, logger zerolog.Logger) *VerificationFlow {
	return &VerificationFlow{
		pending:      pending,
		verifier:     verifier,
		routes:       cfg.Routes,
		clearPending: cfg.Verification.ClearPendingOnSuccess,
		logger:       logger,
	}
}

// Run executes the handshake against the current URL's query parameters.
// Preconditions are checked in order: the pending-email marker first, the
// token parameter second. Run never panics; every failure is represented
// in the returned [VerificationResult].
func (f *VerificationFlow) Run(ctx context.Context, query url.Values) VerificationResult {
	if f.pending == nil || f.verifier == nil {
		return VerificationResult{Outcome: OutcomeFailed, Err: ErrNotReady}
	}

	email, err := f.pending.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNoPendingEmail) {
			f.logger.Debug().Msg("no pending email marker, nothing to verify")
			return VerificationResult{Outcome: OutcomeRedirectLogin, RedirectTo: f.routes.Login}
		}
		// An unreachable store is not an absent marker: stay on the page
		// rather than bouncing a visitor who may have something to verify.
		return VerificationResult{
			Outcome: OutcomeFailed,
			Err:     fmt.Errorf("%w: %v", ErrPendingStoreUnavailable, err),
		}
	}

	token := query.Get("token")
	if token == "" {
		return VerificationResult{Outcome: OutcomeIdle}
	}

	if err := f.verifier.VerifyEmail(ctx, token); err != nil {
		if !errors.Is(err, ErrVerificationRejected) {
			err = fmt.Errorf("%w: %v", ErrVerificationRejected, err)
		}
		f.logger.Debug().Str("email", email).Err(err).Msg("email verification failed")
		return VerificationResult{Outcome: OutcomeFailed, Err: err}
	}

	if f.clearPending {
		if err := f.pending.Clear(ctx); err != nil {
			f.logger.Debug().Str("email", email).Err(err).Msg("pending marker not cleared")
		}
	}

	f.logger.Debug().Str("email", email).Msg("email verified")
	return VerificationResult{Outcome: OutcomeVerified, RedirectTo: f.routes.Login}
}
