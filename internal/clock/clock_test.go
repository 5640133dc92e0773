package clock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGameClockAdvanceMinutesIsMonotonic(t *testing.T) {
	c := NewGameClock()
	delta := c.AdvanceMinutes(59.6)
	require.Equal(t, uint64(60), delta)
	require.Equal(t, uint64(60), c.TotalMinutes())

	c.AdvanceMinutes(10)
	require.Equal(t, uint64(70), c.TotalMinutes())
}

func TestGameClockAdvanceMinutesPanicsOnNegative(t *testing.T) {
	c := NewGameClock()
	require.Panics(t, func() {
		c.AdvanceMinutes(-1)
	})
}

func TestDateAdvanceDaysRollsOverMonthAndYear(t *testing.T) {
	d := StartDate()
	d.AdvanceDays(31)
	require.Equal(t, Date{Year: 2025, Month: 2, Day: 1}, d)

	d = StartDate()
	d.AdvanceDays(365)
	require.Equal(t, Date{Year: 2026, Month: 1, Day: 1}, d)
}

func TestDateAdvanceDaysHandlesLeapFebruary(t *testing.T) {
	d := Date{Year: 2028, Month: 2, Day: 28}
	d.AdvanceDays(1)
	require.Equal(t, Date{Year: 2028, Month: 2, Day: 29}, d)

	d = Date{Year: 2100, Month: 2, Day: 28}
	d.AdvanceDays(1)
	require.Equal(t, Date{Year: 2100, Month: 3, Day: 1}, d)
}
