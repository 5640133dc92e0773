// Package scheduler implements a three-tier task scheduler:
// an immediate FIFO queue, a short-term min-heap, and
// a long-term vector of day-wide buckets. This shape is intentional — do not
// collapse it into a single heap; the long-term bucket promotion is a
// deliberate cost amortisation for tasks scheduled years out.
package scheduler

import "container/heap"

// OneYearMinutes is the short-term/long-term boundary.
const OneYearMinutes uint64 = 365 * 24 * 60

const (
	immediateThresholdMinutes = 10
	compressedBucketMinutes   = 24 * 60
	dayMinutes                = 24 * 60
	weekMinutes               = 7 * dayMinutes
)

// TaskKind tags a scheduled task. Dispatch is a switch over this tag, not a
// set of interface implementations.
type TaskKind int

const (
	EconomicTick TaskKind = iota
	EventTrigger
	PolicyResolution
	DiplomaticPulse
	ScriptedEvent
)

// Spec describes a task's recurrence. The zero value means "one-shot".
type Spec struct {
	Recurring     bool
	EveryMinutes  uint64
	Daily         bool
	Weekly        bool
}

// EveryMinutesSpec returns a recurrence spec firing every n minutes.
func EveryMinutesSpec(n uint64) Spec { return Spec{Recurring: true, EveryMinutes: n} }

// DailySpec returns a recurrence spec firing once per simulation day.
func DailySpec() Spec { return Spec{Recurring: true, Daily: true} }

// WeeklySpec returns a recurrence spec firing once per simulation week.
func WeeklySpec() Spec { return Spec{Recurring: true, Weekly: true} }

func (s Spec) next(last uint64) uint64 {
	switch {
	case s.Daily:
		return last + dayMinutes
	case s.Weekly:
		return last + weekMinutes
	default:
		return last + s.EveryMinutes
	}
}

// Task is a unit of work the scheduler holds until its ExecuteAt minute is
// reached. TemplateIndex is only meaningful for ScriptedEvent tasks.
type Task struct {
	Kind          TaskKind
	ExecuteAt     uint64
	TemplateIndex int
	Spec          Spec
	seq           uint64 // insertion order, for stable tie-breaking
}

// NewTask creates a one-shot task.
func NewTask(kind TaskKind, executeAt uint64) Task {
	return Task{Kind: kind, ExecuteAt: executeAt}
}

// WithSpec attaches a recurrence spec and returns the task by value.
func (t Task) WithSpec(spec Spec) Task {
	t.Spec = spec
	return t
}

func (t Task) reschedule() (Task, bool) {
	if !t.Spec.Recurring {
		return Task{}, false
	}
	next := t
	next.ExecuteAt = t.Spec.next(t.ExecuteAt)
	return next, true
}

// taskHeap is a min-heap of tasks ordered by ExecuteAt, insertion order as
// tie-break.
type taskHeap []Task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].ExecuteAt != h[j].ExecuteAt {
		return h[i].ExecuteAt < h[j].ExecuteAt
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(Task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Scheduler holds tasks across the three horizons.
type Scheduler struct {
	immediate  []Task
	shortTerm  taskHeap
	longTerm   [][]Task
	nextSeq    uint64
}

// New returns an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Schedule files a task into the appropriate tier based on ExecuteAt.
func (s *Scheduler) Schedule(task Task) {
	task.seq = s.nextSeq
	s.nextSeq++

	switch {
	case task.ExecuteAt <= immediateThresholdMinutes:
		s.immediate = append(s.immediate, task)
	case task.ExecuteAt <= OneYearMinutes:
		heap.Push(&s.shortTerm, task)
	default:
		bucketIndex := (task.ExecuteAt - OneYearMinutes) / compressedBucketMinutes
		for uint64(len(s.longTerm)) <= bucketIndex {
			s.longTerm = append(s.longTerm, nil)
		}
		s.longTerm[bucketIndex] = append(s.longTerm[bucketIndex], task)
	}
}

// promoteLongTerm moves buckets whose earliest task is now due out of the
// long-term tier and into short-term or immediate, as appropriate.
func (s *Scheduler) promoteLongTerm(currentMinutes uint64) {
	if currentMinutes < OneYearMinutes {
		return
	}
	elapsed := currentMinutes - OneYearMinutes
	bucketsToPromote := elapsed/compressedBucketMinutes + 1

	for i := uint64(0); i < bucketsToPromote && i < uint64(len(s.longTerm)); i++ {
		bucket := s.longTerm[i]
		earliest := uint64(1<<64 - 1)
		for _, t := range bucket {
			if t.ExecuteAt < earliest {
				earliest = t.ExecuteAt
			}
		}
		if len(bucket) == 0 || earliest > currentMinutes {
			continue
		}
		s.longTerm[i] = nil
		for _, t := range bucket {
			if t.ExecuteAt > currentMinutes {
				heap.Push(&s.shortTerm, t)
			} else {
				s.immediate = append(s.immediate, t)
			}
		}
	}
}

// NextReadyTasks promotes due long-term buckets, then drains every
// short-term and immediate task whose ExecuteAt has arrived, rescheduling
// recurring tasks before returning them.
func (s *Scheduler) NextReadyTasks(currentMinutes uint64) []Task {
	s.promoteLongTerm(currentMinutes)

	var ready []Task
	for s.shortTerm.Len() > 0 && s.shortTerm[0].ExecuteAt <= currentMinutes {
		task := heap.Pop(&s.shortTerm).(Task)
		if next, ok := task.reschedule(); ok {
			s.Schedule(next)
		}
		ready = append(ready, task)
	}

	remaining := s.immediate[:0]
	for _, task := range s.immediate {
		if task.ExecuteAt <= currentMinutes {
			if next, ok := task.reschedule(); ok {
				s.Schedule(next)
			}
			ready = append(ready, task)
		} else {
			remaining = append(remaining, task)
		}
	}
	s.immediate = remaining

	return ready
}

// PeekNextMinutes returns the minimum ExecuteAt across every tier, or false
// if the scheduler holds no tasks. Used to report time-to-next-event.
func (s *Scheduler) PeekNextMinutes() (uint64, bool) {
	found := false
	var min uint64
	consider := func(v uint64) {
		if !found || v < min {
			min = v
			found = true
		}
	}
	for _, t := range s.immediate {
		consider(t.ExecuteAt)
	}
	if s.shortTerm.Len() > 0 {
		consider(s.shortTerm[0].ExecuteAt)
	}
	for _, bucket := range s.longTerm {
		for _, t := range bucket {
			consider(t.ExecuteAt)
		}
	}
	return min, found
}
