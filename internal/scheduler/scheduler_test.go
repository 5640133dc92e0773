package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchedulerDrainsOnlyDueTasks(t *testing.T) {
	s := New()
	s.Schedule(NewTask(EconomicTick, 5))
	s.Schedule(NewTask(EventTrigger, 120))
	s.Schedule(NewTask(PolicyResolution, OneYearMinutes+120))

	ready := s.NextReadyTasks(5)
	require.Len(t, ready, 1)
	require.Equal(t, EconomicTick, ready[0].Kind)

	ready = s.NextReadyTasks(180)
	require.Len(t, ready, 1)
	require.Equal(t, EventTrigger, ready[0].Kind)

	ready = s.NextReadyTasks(OneYearMinutes + 200)
	require.Len(t, ready, 1)
	require.Equal(t, PolicyResolution, ready[0].Kind)
}

func TestSchedulerRecurrenceReschedulesExactlyOnce(t *testing.T) {
	s := New()
	s.Schedule(NewTask(EconomicTick, 5).WithSpec(EveryMinutesSpec(60)))

	ready := s.NextReadyTasks(5)
	require.Len(t, ready, 1)

	ready = s.NextReadyTasks(5)
	require.Empty(t, ready, "task should not fire again before its next execute_at")

	ready = s.NextReadyTasks(65)
	require.Len(t, ready, 1)

	next, ok := s.PeekNextMinutes()
	require.True(t, ok)
	require.GreaterOrEqual(t, next, uint64(60))
}

func TestSchedulerImmediateTierTieBreakKeepsInsertionOrder(t *testing.T) {
	s := New()
	s.Schedule(NewTask(EventTrigger, 3))
	s.Schedule(NewTask(EconomicTick, 3))

	ready := s.NextReadyTasks(3)
	require.Len(t, ready, 2)
	require.Equal(t, EventTrigger, ready[0].Kind, "insertion order is preserved within a tier")
	require.Equal(t, EconomicTick, ready[1].Kind)
}

func TestSchedulerPromotesLongTermBucket(t *testing.T) {
	s := New()
	target := OneYearMinutes + 100
	s.Schedule(NewTask(EconomicTick, target))

	ready := s.NextReadyTasks(OneYearMinutes)
	require.Empty(t, ready)

	ready = s.NextReadyTasks(target)
	require.Len(t, ready, 1)
}
