package manager

import (
	"context"
	"time"

	"github.com/kasuboski/animez/pkg/logger"
	"go.uber.org/zap"
)

// RunCachePruning removes expired anime info from the cache every period until ctx is done.
// It returns immediately when caching is disabled or period is not positive.
func (m MediaManager) RunCachePruning(ctx context.Context, period time.Duration) {
	if m.cache == nil || period <= 0 {
		return
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.pruneCache(ctx)
		}
	}
}

func (m MediaManager) pruneCache(ctx context.Context) int {
	if m.cache == nil {
		return 0
	}

	pruned := m.cache.Prune()
	if pruned > 0 {
		logger.FromCtx(ctx).Debugw("pruned anime info cache", zap.Int("count", pruned), zap.Int("remaining", m.cache.Size()))
	}
	return pruned
}
