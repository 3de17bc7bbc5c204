// Package runtime implements a cooperative green-thread runtime: N tasks
// multiplexed onto a single runner, with round-robin, static-priority and
// multi-level feedback queue scheduling. Tasks give up the processor only
// at explicit yield points (Yield, Sleep, Wait, and Work on quantum
// expiry), so no locking is needed around state a single task owns.
package runtime

import (
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
)

// Runtime owns all scheduler state: the thread table, the ready queues,
// the resource wait FIFOs, thread-local storage, the event log and the
// clock. Create one, add threads, then call Run.
type Runtime struct {
	table     *threadTable
	sched     *scheduler
	resources *resourceRegistry
	tls       *tlsStore
	log       *eventLog
	clk       *monotonic

	// current is the TID of the running thread, or -1 while the
	// scheduler context itself is executing.
	current int

	// yielded is the baton a task passes back when it suspends.
	yielded chan struct{}
}

// New creates a runtime on the wall clock, logging to LogPath.
func New() *Runtime {
	return NewWithClock(clock.New(), LogPath)
}

// NewWithClock creates a runtime on the given clock. An empty logPath
// disables file logging; events are still retained in memory.
func NewWithClock(clk clock.Clock, logPath string) *Runtime {
	mono := newMonotonic(clk)
	tt := newThreadTable()
	return &Runtime{
		table:     tt,
		sched:     newScheduler(tt, mono.nowMS()),
		resources: newResourceRegistry(),
		tls:       newTLSStore(),
		log:       newEventLog(logPath),
		clk:       mono,
		current:   -1,
		yielded:   make(chan struct{}),
	}
}

// Create registers a new thread running fn. The priority is clamped to
// [1,10], 10 highest. The thread starts in the NEW state and is picked up
// by the next scheduler tick; creating threads from inside a running task
// works the same way. Returns the new TID.
func (r *Runtime) Create(fn func(), name string, priority int) int {
	return r.table.add(fn, name, priority).tid
}

// SetPolicy selects the scheduling policy. The SCHED environment variable,
// if set to a known value, overrides this at Run.
func (r *Runtime) SetPolicy(p Policy) {
	r.sched.policy = p
}

// Run drives the scheduler loop until every thread has finished. A program
// whose remaining threads are all blocked with no signaler will hang here;
// there is no deadlock detection.
func (r *Runtime) Run() {
	r.sched.policyFromEnv()
	r.log.record(Event{TimeUS: r.clk.nowUS(), Kind: KindBoot, TID: -1, Info: r.sched.policy.String()})

	for !r.table.allFinished() {
		r.scheduleOnce()
		if r.sched.empty() && !r.table.allFinished() {
			r.clk.sleep(time.Millisecond)
		}
	}

	r.log.record(Event{TimeUS: r.clk.nowUS(), Kind: KindHalt, TID: -1})
	r.log.flush()
}

// scheduleOnce is one tick of the loop: admit NEW threads, wake due
// sleepers, run aging, then dispatch the next runnable thread if any.
func (r *Runtime) scheduleOnce() {
	for _, t := range r.table.threads {
		if t.state == StateNew {
			t.state = StateReady
			r.sched.enqueue(t.tid)
			r.log.record(Event{TimeUS: r.clk.nowUS(), Kind: KindReady, TID: t.tid})
		}
	}

	r.wakeSleepers()

	if tid := r.sched.maybeAge(r.clk.nowMS()); tid >= 0 {
		r.log.record(Event{TimeUS: r.clk.nowUS(), Kind: KindAge, TID: tid, Info: "promote"})
	}

	if r.sched.empty() {
		return
	}
	if tid, ok := r.sched.pop(); ok {
		r.switchToTask(r.table.get(tid))
	}
}

// wakeSleepers readies every sleeping thread whose deadline has passed, in
// TID order.
func (r *Runtime) wakeSleepers() {
	now := r.clk.nowMS()
	for _, t := range r.table.threads {
		if t.state == StateSleeping && t.wakeTimeMS <= now {
			t.state = StateReady
			r.sched.enqueue(t.tid)
			r.log.record(Event{TimeUS: r.clk.nowUS(), Kind: KindWakeup, TID: t.tid})
		}
	}
}

// Yield re-queues the running thread and switches to the scheduler.
// Calling it with no running thread is a no-op on the state.
func (r *Runtime) Yield() {
	if t := r.table.get(r.current); t != nil && t.state == StateRunning {
		t.state = StateReady
		r.sched.enqueue(t.tid)
		r.log.record(Event{TimeUS: r.clk.nowUS(), Kind: KindYield, TID: t.tid})
	}
	r.yieldToScheduler()
}

// Sleep suspends the running thread for at least ms milliseconds. The
// wake-up is checked on loop ticks, so the 1 ms idle tick is the worst-case
// overshoot. Under MLFQ the thread is promoted one level; sleeping counts
// as interactive behavior.
func (r *Runtime) Sleep(ms int) {
	t := r.table.get(r.current)
	if t == nil {
		return
	}
	t.wakeTimeMS = r.clk.nowMS() + int64(ms)
	t.state = StateSleeping
	r.log.record(Event{TimeUS: r.clk.nowUS(), Kind: KindSleep, TID: t.tid, Info: strconv.Itoa(ms)})
	r.sched.promote(t.tid)
	r.yieldToScheduler()
}

// Wait blocks the running thread on the named resource until a Signal
// releases it. Waiters are released oldest-first. Under MLFQ the thread is
// promoted one level.
func (r *Runtime) Wait(resource string) {
	t := r.table.get(r.current)
	if t == nil {
		return
	}
	t.state = StateBlocked
	r.resources.push(resource, t.tid)
	r.log.record(Event{TimeUS: r.clk.nowUS(), Kind: KindWait, TID: t.tid, Info: resource})
	r.sched.promote(t.tid)
	r.yieldToScheduler()
}

// Signal releases the oldest waiter on the named resource, if any. A signal
// with no waiter is lost. The caller keeps running.
func (r *Runtime) Signal(resource string) {
	tid, ok := r.resources.pop(resource)
	if !ok {
		return
	}
	t := r.table.get(tid)
	if t.state != StateBlocked {
		return
	}
	t.state = StateReady
	r.sched.enqueue(t.tid)
	r.log.record(Event{TimeUS: r.clk.nowUS(), Kind: KindSignal, TID: t.tid, Info: resource})
}

// Work charges max(1, units) work units against the running thread's
// quantum. When the budget reaches zero the thread auto-yields, after a
// demotion under MLFQ; by the time the call returns the thread has already
// been re-dispatched with a fresh budget. The returned remaining budget is
// advisory.
func (r *Runtime) Work(units int) int {
	t := r.table.get(r.current)
	if t == nil {
		return 0
	}
	if units < 1 {
		units = 1
	}
	t.quantum -= units
	if t.quantum <= 0 {
		r.log.record(Event{TimeUS: r.clk.nowUS(), Kind: KindQExpire, TID: t.tid, Info: "auto-yield"})
		r.sched.demote(t.tid)
		if t.state == StateRunning {
			t.state = StateReady
			r.sched.enqueue(t.tid)
		}
		r.yieldToScheduler()
	}
	return t.quantum
}

// TLSSet stores a value under key for the running thread.
func (r *Runtime) TLSSet(key string, value int64) {
	r.tls.set(r.current, key, value)
}

// TLSGet reads the running thread's value for key.
func (r *Runtime) TLSGet(key string) (int64, bool) {
	return r.tls.get(r.current, key)
}

// MLFQSetLevels sets the number of MLFQ levels, clamped to [1,8]. Levels of
// existing threads are clamped on their next enqueue.
func (r *Runtime) MLFQSetLevels(n int) {
	r.sched.mlfq.setLevels(n)
}

// MLFQSetQuantum sets the work quantum for one MLFQ level, minimum 1.
func (r *Runtime) MLFQSetQuantum(level, units int) {
	r.sched.mlfq.setQuantum(level, units)
}

// MLFQEnableAging turns periodic anti-starvation promotion on or off.
func (r *Runtime) MLFQEnableAging(enable bool) {
	r.sched.mlfq.setAging(enable)
}

// MLFQSetAgingIntervalMS sets the aging interval, minimum 1 ms.
func (r *Runtime) MLFQSetAgingIntervalMS(ms int) {
	r.sched.mlfq.setAgingInterval(int64(ms))
}

// Events returns a snapshot of the event trace recorded so far.
func (r *Runtime) Events() []Event {
	return r.log.events()
}

// Thread returns the record for tid, or nil if no such thread exists.
func (r *Runtime) Thread(tid int) *Thread {
	return r.table.get(tid)
}
