package monitoring

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type flakyChecker struct {
	healthy atomic.Bool
	checks  atomic.Int32
}

func (f *flakyChecker) HealthCheck(context.Context) bool {
	f.checks.Add(1)
	return f.healthy.Load()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestMonitorTranslatorHealth(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checker := &flakyChecker{}
	healthy := &atomic.Bool{}
	healthy.Store(true)

	done := make(chan struct{})
	go func() {
		MonitorTranslatorHealth(ctx, checker, healthy, 10*time.Millisecond)
		close(done)
	}()

	waitFor(t, func() bool { return !healthy.Load() })

	checker.healthy.Store(true)
	waitFor(t, func() bool { return healthy.Load() })

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
	if checker.checks.Load() < 2 {
		t.Errorf("expected at least 2 health checks, got %d", checker.checks.Load())
	}
}
