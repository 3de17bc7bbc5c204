package runtime

import (
	"time"

	"github.com/benbjohnson/clock"
)

// monotonic reports elapsed time since the runtime was created, so log
// timestamps and wake deadlines never go backwards with wall-clock
// adjustments. Backed by a clock.Clock so tests can substitute a mock.
type monotonic struct {
	clk   clock.Clock
	start time.Time
}

func newMonotonic(clk clock.Clock) *monotonic {
	return &monotonic{clk: clk, start: clk.Now()}
}

func (m *monotonic) nowUS() int64 {
	return m.clk.Since(m.start).Microseconds()
}

func (m *monotonic) nowMS() int64 {
	return m.clk.Since(m.start).Milliseconds()
}

func (m *monotonic) sleep(d time.Duration) {
	m.clk.Sleep(d)
}
