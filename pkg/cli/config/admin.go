package config

import (
	"log/slog"
	"time"

	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Admin holds the shared secret of the admin area and session settings.
type Admin struct {
	password     string
	sessionTTL   time.Duration
	secureCookie bool
}

func (a *Admin) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "admin-password",
			Category:    "Admin",
			Usage:       "Shared password of the admin area (empty disables it)",
			Sources:     cli.EnvVars("ATHELAS_ADMIN_PASSWORD"),
			Destination: &a.password,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Category:    "Admin",
			Usage:       "Idle lifetime of a browser session",
			Value:       usecase.DefaultSessionTTL,
			Sources:     cli.EnvVars("ATHELAS_SESSION_TTL"),
			Destination: &a.sessionTTL,
		},
		&cli.BoolFlag{
			Name:        "secure-cookie",
			Category:    "Admin",
			Usage:       "Mark the session cookie Secure (serve over TLS)",
			Sources:     cli.EnvVars("ATHELAS_SECURE_COOKIE"),
			Destination: &a.secureCookie,
		},
	}
}

func (a Admin) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", a.password != ""),
		slog.Duration("session_ttl", a.sessionTTL),
		slog.Bool("secure_cookie", a.secureCookie),
	)
}

// Options returns the use case options for the admin gate.
func (a *Admin) Options() []usecase.Option {
	if a.password == "" {
		logging.Default().Warn("Admin password not configured, admin area is disabled")
	}
	return []usecase.Option{
		usecase.WithAdminPassword(a.password),
		usecase.WithSessionTTL(a.sessionTTL),
	}
}

func (a *Admin) SecureCookie() bool {
	return a.secureCookie
}
