package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Expirer drops cached graph state
type Expirer interface {
	Expire(ctx context.Context) error
}

// NewExpiryScheduler returns a stopped cron scheduler that expires the graph
// cache every period. The caller starts and stops it.
func NewExpiryScheduler(target Expirer, every time.Duration, logger *slog.Logger) (*cron.Cron, error) {
	if every < time.Second {
		return nil, fmt.Errorf("cache expiry period %s is shorter than one second", every)
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := cron.New()
	schedule := "@every " + every.String()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := target.Expire(ctx); err != nil {
			logger.Error("cache expiry failed", "error", err)
			return
		}
		logger.Info("cache expired", "period", every)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule cache expiry %q: %w", schedule, err)
	}
	return c, nil
}
