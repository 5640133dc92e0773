package game

import (
	"fmt"
	"math"

	"github.com/talgya/geopolitics-core/internal/clock"
	"github.com/talgya/geopolitics-core/internal/domain"
	"github.com/talgya/geopolitics-core/internal/scheduler"
)

// simulationClock composes the minute counter, the projected calendar date,
// the scheduler, and the caller-adjustable time multiplier into the single
// per-tick "how far did we move, and what fired" unit.
type simulationClock struct {
	clock              clock.GameClock
	calendar           clock.Date
	dayProgressMinutes uint32
	timeMultiplier     float64
	scheduler          *scheduler.Scheduler
}

func newSimulationClock(sched *scheduler.Scheduler) simulationClock {
	return simulationClock{
		clock:          clock.NewGameClock(),
		calendar:       clock.StartDate(),
		timeMultiplier: 1.0,
		scheduler:      sched,
	}
}

func (s *simulationClock) TimeMultiplier() float64 { return s.timeMultiplier }

// SetTimeMultiplier clamps to [0.1, 5.0] after validating the requested
// value is finite and positive.
func (s *simulationClock) SetTimeMultiplier(multiplier float64) error {
	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) || multiplier <= 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidMultiplier, multiplier)
	}
	s.timeMultiplier = clampF(multiplier, 0.1, 5.0)
	return nil
}

func (s *simulationClock) CalendarDate() clock.Date { return s.calendar }

func (s *simulationClock) SimulationMinutes() float64 { return s.clock.TotalMinutesF64() }

// NextEventInMinutes returns how many minutes remain until the scheduler's
// earliest pending task, or false if nothing is scheduled.
func (s *simulationClock) NextEventInMinutes() (uint64, bool) {
	current := s.clock.TotalMinutes()
	next, ok := s.scheduler.PeekNextMinutes()
	if !ok {
		return 0, false
	}
	if next < current {
		return 0, true
	}
	return next - current, true
}

// tickOutcome is the result of advancing the clock by one caller-requested
// duration.
type tickOutcome struct {
	EffectiveMinutes float64
	Scale            float64
	ReadyTasks       []scheduler.Task
}

// Advance scales minutes by the time multiplier, advances the underlying
// clock and calendar, and drains every scheduler task now due.
func (s *simulationClock) Advance(minutes float64) (tickOutcome, error) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return tickOutcome{}, fmt.Errorf("%w: %v", domain.ErrInvalidTickMinutes, minutes)
	}
	if minutes <= 0 {
		return tickOutcome{}, fmt.Errorf("%w: %v", domain.ErrInvalidTickMinutes, minutes)
	}

	effectiveMinutes := minutes * s.timeMultiplier
	advanced := s.clock.AdvanceMinutes(effectiveMinutes)
	s.updateCalendar(advanced)
	scale := effectiveMinutes / clock.BaseTickMinutes
	ready := s.scheduler.NextReadyTasks(s.clock.TotalMinutes())

	return tickOutcome{EffectiveMinutes: effectiveMinutes, Scale: scale, ReadyTasks: ready}, nil
}

func (s *simulationClock) updateCalendar(advancedMinutes uint64) {
	totalDays := advancedMinutes / clock.MinutesPerDay
	remainder := advancedMinutes % clock.MinutesPerDay
	s.dayProgressMinutes += uint32(remainder)
	if uint64(s.dayProgressMinutes) >= clock.MinutesPerDay {
		totalDays += uint64(s.dayProgressMinutes) / clock.MinutesPerDay
		s.dayProgressMinutes %= clock.MinutesPerDay
	}
	if totalDays > 0 {
		s.calendar.AdvanceDays(totalDays)
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
