package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/jroosing/hydrazone/internal/resolvers"
)

// Janitor periodically drops expired rows from the durable flattening tier.
type Janitor struct {
	Logger   *slog.Logger
	Purger   resolvers.ExpiredPurger
	Interval time.Duration
}

// Run purges every Interval until ctx is canceled. A non-positive Interval
// disables purging.
func (j *Janitor) Run(ctx context.Context) {
	if j.Interval <= 0 || j.Purger == nil {
		return
	}
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.purge(ctx)
		}
	}
}

func (j *Janitor) purge(ctx context.Context) {
	n, err := j.Purger.PurgeExpired(ctx)
	if err != nil {
		if ctx.Err() == nil && j.Logger != nil {
			j.Logger.Warn("flattening cache purge failed", "err", err)
		}
		return
	}
	if n > 0 && j.Logger != nil {
		j.Logger.Debug("flattening cache purged", "rows", n)
	}
}
