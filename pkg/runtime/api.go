package runtime

import "sync"

// Default runtime instance behind the package-level API. Example programs
// use these; embedders that want isolation create their own Runtime.
var (
	std   *Runtime
	stdMu sync.Mutex
)

// Default returns the package-level runtime, creating it on first use.
func Default() *Runtime {
	stdMu.Lock()
	defer stdMu.Unlock()
	if std == nil {
		std = New()
	}
	return std
}

// SetDefault replaces the package-level runtime. Must be called before any
// other package-level call.
func SetDefault(r *Runtime) {
	stdMu.Lock()
	std = r
	stdMu.Unlock()
}

// Create registers a new thread on the default runtime.
func Create(fn func(), name string, priority int) int {
	return Default().Create(fn, name, priority)
}

// Run drives the default runtime until all threads finish.
func Run() { Default().Run() }

// Yield gives up the processor; the thread stays ready.
func Yield() { Default().Yield() }

// Sleep suspends the running thread for at least ms milliseconds.
func Sleep(ms int) { Default().Sleep(ms) }

// Wait blocks the running thread on a named resource.
func Wait(resource string) { Default().Wait(resource) }

// Signal releases the oldest waiter on a named resource.
func Signal(resource string) { Default().Signal(resource) }

// Work charges work units and auto-yields on quantum expiry.
func Work(units int) int { return Default().Work(units) }

// SetPolicy selects the scheduling policy.
func SetPolicy(p Policy) { Default().SetPolicy(p) }

// TLSSet stores a thread-local value for the running thread.
func TLSSet(key string, value int64) { Default().TLSSet(key, value) }

// TLSGet reads a thread-local value for the running thread.
func TLSGet(key string) (int64, bool) { return Default().TLSGet(key) }

// MLFQSetLevels sets the number of MLFQ levels.
func MLFQSetLevels(n int) { Default().MLFQSetLevels(n) }

// MLFQSetQuantum sets the work quantum for one MLFQ level.
func MLFQSetQuantum(level, units int) { Default().MLFQSetQuantum(level, units) }

// MLFQEnableAging toggles MLFQ aging.
func MLFQEnableAging(enable bool) { Default().MLFQEnableAging(enable) }

// MLFQSetAgingIntervalMS sets the MLFQ aging interval.
func MLFQSetAgingIntervalMS(ms int) { Default().MLFQSetAgingIntervalMS(ms) }

// Events returns the default runtime's recorded event trace.
func Events() []Event { return Default().Events() }
