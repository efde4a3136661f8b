package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_INTERVAL = 30 * time.Second

// HealthChecker is implemented by translators that can check their backend.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// MonitorTranslatorHealth checks checker every interval and stores the
// outcome in healthy until ctx is done.
func MonitorTranslatorHealth(ctx context.Context, checker HealthChecker, healthy *atomic.Bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, interval)
			isHealthy := checker.HealthCheck(checkCtx)
			cancel()

			if was := healthy.Swap(isHealthy); was != isHealthy {
				if isHealthy {
					slog.Info("[HealthCheck] Translator recovered")
				} else {
					slog.Warn("[HealthCheck] Translator is unhealthy")
				}
			}
		}
	}
}
