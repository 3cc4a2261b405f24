package server

import (
	"context"
	"time"
)

// Check reports an error while a dependency is unavailable
type Check func(ctx context.Context) error

// MonitorHealth runs dep every interval and mirrors the outcome into the
// health service until ctx is done. Status changes are logged once.
func (s *Server) MonitorHealth(ctx context.Context, interval time.Duration, dep Check) {
	if dep == nil || interval <= 0 {
		return
	}

	serving := true
	tick := func() {
		pctx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()

		err := dep(pctx)
		if ok := err == nil; ok != serving {
			serving = ok
			s.SetServing(ok)
			fields := map[string]interface{}{"serving": ok}
			if err != nil {
				fields["error"] = err.Error()
			}
			s.logger.Warn("grpc.health.changed", fields)
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}
