package db

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger removes records that expired before now and reports how many.
type Purger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Target names a Purger for logging.
type Target struct {
	Name   string
	Purger Purger
}

// StartExpiryCleaner sweeps every target with interval until ctx is done.
func StartExpiryCleaner(
	ctx context.Context,
	interval time.Duration,
	log *zap.Logger,
	targets ...Target,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				for _, t := range targets {
					removed, err := t.Purger.DeleteExpired(ctx, now)
					if err != nil {
						log.Error("failed to clean expired records", zap.String("target", t.Name), zap.Error(err))
						continue
					}
					if removed > 0 {
						log.Info("cleaned expired records", zap.String("target", t.Name), zap.Int64("removed", removed))
					}
				}
			}
		}
	}()
}
