package runtime

import "os"

// Policy selects the scheduling discipline.
type Policy uint8

const (
	RoundRobin Policy = iota
	Priority
	MLFQ
)

func (p Policy) String() string {
	switch p {
	case RoundRobin:
		return "rr"
	case Priority:
		return "prio"
	case MLFQ:
		return "mlfq"
	default:
		return "unknown"
	}
}

// defaultQuantum is the work budget of a fresh thread outside MLFQ.
const defaultQuantum = 8

// scheduler is the ready-set for runnable TIDs. The round-robin and
// priority policies share one ordered queue; MLFQ keeps its own per-level
// FIFOs. Queues hold TIDs only and resolve them through the thread table.
type scheduler struct {
	policy Policy
	rrq    *rrQueue
	mlfq   *mlfqQueue
	table  *threadTable
}

func newScheduler(tt *threadTable, nowMS int64) *scheduler {
	return &scheduler{
		policy: RoundRobin,
		rrq:    &rrQueue{},
		mlfq:   newMLFQQueue(tt, nowMS),
		table:  tt,
	}
}

// policyFromEnv applies the SCHED environment variable once at runtime
// start. Unknown values and an unset variable keep the explicit setting;
// an invalid explicit setting falls back to round-robin.
func (s *scheduler) policyFromEnv() {
	if s.policy != RoundRobin && s.policy != Priority && s.policy != MLFQ {
		s.policy = RoundRobin
	}
	v, ok := os.LookupEnv("SCHED")
	if !ok {
		return
	}
	switch v {
	case "rr":
		s.policy = RoundRobin
	case "prio", "priority":
		s.policy = Priority
	case "mlfq":
		s.policy = MLFQ
	}
}

func (s *scheduler) enqueue(tid int) {
	switch s.policy {
	case Priority:
		enqueuePriority(s.rrq, s.table, tid)
	case MLFQ:
		s.mlfq.enqueue(tid)
	default:
		s.rrq.enqueue(tid)
	}
}

func (s *scheduler) pop() (int, bool) {
	if s.policy == MLFQ {
		return s.mlfq.pop()
	}
	return s.rrq.pop()
}

func (s *scheduler) empty() bool {
	if s.policy == MLFQ {
		return s.mlfq.empty()
	}
	return s.rrq.empty()
}

func (s *scheduler) demote(tid int) {
	if s.policy != MLFQ {
		return
	}
	s.mlfq.demote(tid)
}

func (s *scheduler) promote(tid int) {
	if s.policy != MLFQ {
		return
	}
	s.mlfq.promote(tid)
}

// maybeAge runs the MLFQ aging step and returns the promoted TID, or -1.
func (s *scheduler) maybeAge(nowMS int64) int {
	if s.policy != MLFQ {
		return -1
	}
	return s.mlfq.age(nowMS)
}
