package runtime

// State is the lifecycle state of a thread.
type State uint8

const (
	StateNew State = iota
	StateReady
	StateRunning
	StateBlocked
	StateSleeping
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateBlocked:
		return "blocked"
	case StateSleeping:
		return "sleeping"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Thread is the record for one green thread. Records are owned by the
// thread table for the lifetime of the runtime; queues and wait FIFOs hold
// only TIDs and resolve them through the table.
type Thread struct {
	tid          int
	name         string
	basePriority int // 1..10, 10 highest
	dynPriority  int // reserved
	state        State
	fn           func()
	ctx          *taskContext
	wakeTimeMS   int64 // meaningful only while sleeping
	quantum      int   // remaining work units before auto-yield
	mlfqLevel    int   // 0 is highest
}

// TID returns the thread's identifier.
func (t *Thread) TID() int { return t.tid }

// Name returns the thread's display name.
func (t *Thread) Name() string { return t.name }

// State returns the thread's current lifecycle state.
func (t *Thread) State() State { return t.state }

// Level returns the thread's MLFQ level.
func (t *Thread) Level() int { return t.mlfqLevel }
