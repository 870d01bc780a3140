package identkit

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the tunable surface of the identity core. The zero value is
// not usable; start from [DefaultConfig] or [LoadConfig].
type Config struct {
	Routes       RoutesConfig
	Verification VerificationConfig
}

// RoutesConfig names the application routes the core redirects to. The
// core never renders them; it only hands their paths back in decisions.
type RoutesConfig struct {
	// Login receives denied navigations and completed verifications.
	Login string `env:"IDENTKIT_ROUTE_LOGIN, default=/login"`
	// Home receives the visitor after logout.
	Home string `env:"IDENTKIT_ROUTE_HOME, default=/"`
	// Verify is the route the emailed verification link lands on.
	Verify string `env:"IDENTKIT_ROUTE_VERIFY, default=/verify"`
}

// VerificationConfig tunes the email-verification handshake.
type VerificationConfig struct {
	// ClearPendingOnSuccess removes the pending-email marker once a token
	// is accepted, so a later visit to the verification route redirects to
	// login instead of re-running the handshake.
	ClearPendingOnSuccess bool `env:"IDENTKIT_VERIFY_CLEAR_PENDING, default=true"`
	// PendingTTL bounds how long a pending-email marker survives in stores
	// that support expiry.
	PendingTTL time.Duration `env:"IDENTKIT_VERIFY_PENDING_TTL, default=24h"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Routes: RoutesConfig{
			Login:  "/login",
			Home:   "/",
			Verify: "/verify",
		},
		Verification: VerificationConfig{
			ClearPendingOnSuccess: true,
			PendingTTL:            24 * time.Hour,
		},
	}
}

// LoadConfig reads configuration from the process environment, falling
// back to the defaults baked into the struct tags.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the core cannot act on.
func (c Config) Validate() error {
	if c.Routes.Login == "" {
		return errors.New("config: login route must not be empty")
	}
	if c.Routes.Home == "" {
		return errors.New("config: home route must not be empty")
	}
	if c.Routes.Verify == "" {
		return errors.New("config: verify route must not be empty")
	}
	if c.Verification.PendingTTL <= 0 {
		return errors.New("config: pending TTL must be positive")
	}
	return nil
}
