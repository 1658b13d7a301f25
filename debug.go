package sparktrail

import (
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame simulation counters. Spawn and eviction
// counts accumulate across the move events between two ticks.
type frameStats struct {
	tickTime time.Duration
	live     int
	spawned  int
	evicted  int
	expired  int
	skipped  int
}

// debugLog writes the stats for the frame just simulated and resets the
// counters. Only called when Config.Debug is set.
func (e *Engine) debugLog() {
	st := &e.stats
	e.log.Debug("frame",
		zap.Duration("tick", st.tickTime),
		zap.Int("live", st.live),
		zap.Int("spawned", st.spawned),
		zap.Int("evicted", st.evicted),
		zap.Int("expired", st.expired),
		zap.Int("skipped_events", st.skipped),
	)
	*st = frameStats{}
}
