package metrics

import (
	"time"

	"github.com/tarpehcare/portal/internal/observability/statsd"
)

// EmitShiftTransition records a shift moving between statuses, including the
// reaper's scheduled-to-missed sweeps.
func EmitShiftTransition(sink statsd.Sink, transition, result string, count int64) {
	if sink == nil || count == 0 {
		return
	}
	sink.Count("shift.transition", count, map[string]string{
		"transition": transition,
		"result":     result,
	})
}

// EmitSweepDuration records how long a background sweep took.
func EmitSweepDuration(sink statsd.Sink, sweep string, d time.Duration) {
	if sink == nil || d <= 0 {
		return
	}
	sink.Timing("sweep.duration", d, map[string]string{"sweep": sweep})
}
