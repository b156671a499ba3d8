package config

import (
	"time"

	"github.com/athelas-portal/athelas/pkg/utils/querycache"
	"github.com/urfave/cli/v3"
)

// Cache holds CLI flags for the read cache of users and projects.
type Cache struct {
	ttl      time.Duration
	maxBytes int
}

func (c *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "cache-ttl",
			Category:    "Cache",
			Usage:       "Lifetime of cached user and project lists (0 disables the cache)",
			Value:       60 * time.Second,
			Sources:     cli.EnvVars("ATHELAS_CACHE_TTL"),
			Destination: &c.ttl,
		},
		&cli.IntFlag{
			Name:        "cache-max-bytes",
			Category:    "Cache",
			Usage:       "Memory budget of the cache",
			Value:       32 * 1024 * 1024,
			Sources:     cli.EnvVars("ATHELAS_CACHE_MAX_BYTES"),
			Destination: &c.maxBytes,
		},
	}
}

// Configure returns nil when the cache is disabled.
func (c *Cache) Configure() *querycache.Cache {
	if c.ttl <= 0 {
		return nil
	}
	return querycache.New(c.ttl, querycache.WithMaxBytes(c.maxBytes))
}
