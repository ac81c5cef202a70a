package collector

import (
	"context"
	"fmt"

	"github.com/ougirez/demostats/internal/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Schedule runs CollectAll on the cron spec until the returned cron is stopped.
func (s *Service) Schedule(ctx context.Context, spec string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		reports, err := s.CollectAll(ctx)
		if err != nil {
			logger.Warnf(ctx, "scheduled collection: %s", err.Error())
			return
		}

		failed := 0
		for _, r := range reports {
			if r.Error != "" {
				failed++
			}
		}
		logger.Infof(ctx, "scheduled collection done: %d indicators, %d with errors", len(reports), failed)
	})
	if err != nil {
		return nil, fmt.Errorf("cron.AddFunc: %w", err)
	}

	c.Start()
	return c, nil
}
