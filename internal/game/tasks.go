package game

import (
	"github.com/talgya/geopolitics-core/internal/scheduler"
)

// executeTask dispatches a due scheduler.Task against s. This logic mirrors
// a dispatch switch over scheduled-task kinds, but lives in this package rather than in
// internal/systems: it needs to call back into s's own process* methods,
// and systems cannot import game without creating a cycle.
func executeTask(task scheduler.Task, s *State, scale float64) []string {
	switch task.Kind {
	case scheduler.EconomicTick:
		return s.processEconomicTick(scale)
	case scheduler.EventTrigger:
		return s.processEventTrigger()
	case scheduler.PolicyResolution:
		return s.processPolicyResolution()
	case scheduler.DiplomaticPulse:
		return s.processDiplomaticPulse()
	case scheduler.ScriptedEvent:
		return s.processScriptedEvent(task.TemplateIndex)
	default:
		return nil
	}
}
