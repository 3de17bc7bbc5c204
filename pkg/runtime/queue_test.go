package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTableWithThreads(t *testing.T, priorities ...int) *threadTable {
	t.Helper()
	tt := newThreadTable()
	for i, p := range priorities {
		th := tt.add(func() {}, "t", p)
		require.Equal(t, i, th.tid)
	}
	return tt
}

func TestRRQueueFIFO(t *testing.T) {
	q := &rrQueue{}
	assert.True(t, q.empty())

	q.enqueue(0)
	q.enqueue(1)
	q.enqueue(2)

	for want := 0; want < 3; want++ {
		tid, ok := q.pop()
		require.True(t, ok)
		assert.Equal(t, want, tid)
	}
	assert.True(t, q.empty())

	_, ok := q.pop()
	assert.False(t, ok)
}

func TestPriorityEnqueueOrdersByBasePriority(t *testing.T) {
	tt := newTableWithThreads(t, 1, 5, 9, 5)
	q := &rrQueue{}

	for tid := 0; tid < 4; tid++ {
		enqueuePriority(q, tt, tid)
	}

	// Highest first; equal priorities keep insertion order.
	assert.Equal(t, []int{2, 1, 3, 0}, q.q)
}

func TestPriorityEnqueueStableAmongEquals(t *testing.T) {
	tt := newTableWithThreads(t, 5, 5, 5)
	q := &rrQueue{}

	enqueuePriority(q, tt, 0)
	enqueuePriority(q, tt, 1)
	enqueuePriority(q, tt, 2)

	assert.Equal(t, []int{0, 1, 2}, q.q)
}

func TestPriorityIsClampedOnCreate(t *testing.T) {
	tt := newThreadTable()
	low := tt.add(func() {}, "low", -3)
	high := tt.add(func() {}, "high", 99)

	assert.Equal(t, 1, low.basePriority)
	assert.Equal(t, 10, high.basePriority)
}

func TestMLFQEnqueueClampsLevelAndRefillsBudget(t *testing.T) {
	tt := newTableWithThreads(t, 1)
	m := newMLFQQueue(tt, 0)

	th := tt.get(0)
	th.mlfqLevel = 7 // beyond the default 3 levels
	th.quantum = -4

	m.enqueue(0)

	assert.Equal(t, 2, th.mlfqLevel)
	assert.Equal(t, 2, th.quantum)
}

func TestMLFQPopScansTopLevelFirst(t *testing.T) {
	tt := newTableWithThreads(t, 1, 1, 1)
	m := newMLFQQueue(tt, 0)

	tt.get(0).mlfqLevel = 2
	tt.get(1).mlfqLevel = 0
	tt.get(2).mlfqLevel = 1
	m.enqueue(0)
	m.enqueue(1)
	m.enqueue(2)

	var got []int
	for !m.empty() {
		tid, ok := m.pop()
		require.True(t, ok)
		got = append(got, tid)
	}
	assert.Equal(t, []int{1, 2, 0}, got)
}

func TestMLFQDemotePromoteSaturateAndRefill(t *testing.T) {
	tt := newTableWithThreads(t, 1)
	m := newMLFQQueue(tt, 0)
	m.ensure()
	th := tt.get(0)

	m.demote(0)
	assert.Equal(t, 1, th.mlfqLevel)
	assert.Equal(t, 4, th.quantum)

	m.demote(0)
	m.demote(0) // saturates at the bottom level
	assert.Equal(t, 2, th.mlfqLevel)
	assert.Equal(t, 2, th.quantum)

	m.promote(0)
	assert.Equal(t, 1, th.mlfqLevel)
	assert.Equal(t, 4, th.quantum)

	m.promote(0)
	m.promote(0) // saturates at the top level
	assert.Equal(t, 0, th.mlfqLevel)
	assert.Equal(t, 8, th.quantum)
}

func TestMLFQAgePromotesOnePerInterval(t *testing.T) {
	tt := newTableWithThreads(t, 1, 1)
	m := newMLFQQueue(tt, 0)

	tt.get(0).mlfqLevel = 2
	tt.get(1).mlfqLevel = 2
	m.enqueue(0)
	m.enqueue(1)

	// Interval not yet elapsed.
	assert.Equal(t, -1, m.age(499))

	// One promotion per elapsed interval, oldest waiter of the lowest
	// non-empty level first.
	tid := m.age(500)
	require.Equal(t, 0, tid)
	assert.Equal(t, 1, tt.get(0).mlfqLevel)
	assert.Equal(t, 4, tt.get(0).quantum)
	assert.Equal(t, []int{0}, m.queues[1])
	assert.Equal(t, []int{1}, m.queues[2])

	// The interval restarts from the last promotion.
	assert.Equal(t, -1, m.age(900))
	assert.Equal(t, 1, m.age(1000))
}

func TestMLFQAgeDisabled(t *testing.T) {
	tt := newTableWithThreads(t, 1)
	m := newMLFQQueue(tt, 0)
	m.setAging(false)

	tt.get(0).mlfqLevel = 2
	m.enqueue(0)

	assert.Equal(t, -1, m.age(10_000))
	assert.Equal(t, 2, tt.get(0).mlfqLevel)
}

func TestMLFQConfigClamps(t *testing.T) {
	tt := newTableWithThreads(t, 1)
	m := newMLFQQueue(tt, 0)

	m.setLevels(0)
	assert.Equal(t, 1, m.levels)
	m.setLevels(99)
	assert.Equal(t, 8, m.levels)

	m.setQuantum(0, 0)
	assert.Equal(t, 1, m.quantum[0])
	m.setQuantum(-1, 5) // ignored
	assert.Equal(t, 1, m.quantum[0])

	m.setAgingInterval(0)
	assert.Equal(t, int64(1), m.agingMS)
}

func TestMLFQLevelsResizeRebuildsQuanta(t *testing.T) {
	tt := newTableWithThreads(t, 1)
	m := newMLFQQueue(tt, 0)

	m.setLevels(5)
	m.ensure()

	require.Len(t, m.quantum, 5)
	// Defaults halve per level with a floor of 1.
	assert.Equal(t, []int{8, 4, 2, 1, 1}, m.quantum)
}

func TestMLFQLevelsResizePreservesQueuedThreads(t *testing.T) {
	tt := newTableWithThreads(t, 1, 1, 1)
	m := newMLFQQueue(tt, 0)

	tt.get(0).mlfqLevel = 0
	tt.get(1).mlfqLevel = 1
	tt.get(2).mlfqLevel = 2
	m.enqueue(0)
	m.enqueue(1)
	m.enqueue(2)

	m.setLevels(2)
	m.ensure()

	// The thread queued at the removed level lands in the new bottom
	// level with a fresh budget.
	assert.Equal(t, 1, tt.get(2).mlfqLevel)
	assert.Equal(t, m.quantum[1], tt.get(2).quantum)

	var got []int
	for !m.empty() {
		tid, ok := m.pop()
		require.True(t, ok)
		got = append(got, tid)
	}
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestSchedulerPolicyFromEnv(t *testing.T) {
	tt := newThreadTable()

	t.Run("env overrides explicit setting", func(t *testing.T) {
		s := newScheduler(tt, 0)
		s.policy = RoundRobin
		t.Setenv("SCHED", "mlfq")
		s.policyFromEnv()
		assert.Equal(t, MLFQ, s.policy)
	})

	t.Run("priority spelling variants", func(t *testing.T) {
		for _, v := range []string{"prio", "priority"} {
			s := newScheduler(tt, 0)
			t.Setenv("SCHED", v)
			s.policyFromEnv()
			assert.Equal(t, Priority, s.policy)
		}
	})

	t.Run("unknown value keeps explicit setting", func(t *testing.T) {
		s := newScheduler(tt, 0)
		s.policy = Priority
		t.Setenv("SCHED", "fifo")
		s.policyFromEnv()
		assert.Equal(t, Priority, s.policy)
	})

	t.Run("invalid explicit setting defaults to round robin", func(t *testing.T) {
		s := newScheduler(tt, 0)
		s.policy = Policy(42)
		t.Setenv("SCHED", "nope")
		s.policyFromEnv()
		assert.Equal(t, RoundRobin, s.policy)
	})
}
