package events

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/talgya/geopolitics-core/internal/country"
	"github.com/talgya/geopolitics-core/internal/domain"
)

// ScriptedEventEngine holds every compiled template and its per-country
// cooldown tracking instance.
type ScriptedEventEngine struct {
	templates []CompiledEventTemplate
	instances []scriptedEventInstance
}

type scriptedEventInstance struct {
	lastTriggered []*float64
}

// FromBuiltin loads the embedded built-in templates and wires up tracking
// for countryCount countries.
func FromBuiltin(countryCount int) (*ScriptedEventEngine, error) {
	templates, err := LoadEventTemplates()
	if err != nil {
		return nil, err
	}
	return WithTemplates(templates, countryCount), nil
}

// WithTemplates builds an engine from an already-compiled template set.
func WithTemplates(templates []CompiledEventTemplate, countryCount int) *ScriptedEventEngine {
	instances := make([]scriptedEventInstance, len(templates))
	for i := range instances {
		instances[i] = newScriptedEventInstance(countryCount)
	}
	return &ScriptedEventEngine{templates: templates, instances: instances}
}

func newScriptedEventInstance(countryCount int) scriptedEventInstance {
	return scriptedEventInstance{lastTriggered: make([]*float64, countryCount)}
}

// Len returns the number of compiled templates.
func (e *ScriptedEventEngine) Len() int { return len(e.templates) }

// CheckMinutes returns the check cadence of the template at idx.
func (e *ScriptedEventEngine) CheckMinutes(idx int) uint64 {
	return e.templateRef(idx).CheckMinutes()
}

// InitialDelayMinutes returns the initial delay of the template at idx.
func (e *ScriptedEventEngine) InitialDelayMinutes(idx int) uint64 {
	return e.templateRef(idx).InitialDelayMinutes()
}

// FindIndex looks up a template by case-insensitive id or name.
func (e *ScriptedEventEngine) FindIndex(id string) (int, bool) {
	needle := strings.ToLower(id)
	for idx, template := range e.templates {
		if strings.ToLower(template.ID()) == needle || strings.ToLower(template.Name()) == needle {
			return idx, true
		}
	}
	return 0, false
}

// DescriptionOf returns the description of the template matching id.
func (e *ScriptedEventEngine) DescriptionOf(id string) (string, bool) {
	idx, ok := e.FindIndex(id)
	if !ok {
		return "", false
	}
	return e.templateRef(idx).Description(), true
}

// Execute runs the template at idx against every country, applying effects
// and recording a trigger time for each country whose condition matched.
func (e *ScriptedEventEngine) Execute(idx int, countries []*country.State, currentMinutes float64) []string {
	if idx < 0 || idx >= len(e.templates) {
		panic(fmt.Errorf("%w: %d", domain.ErrScriptedEventIndex, idx))
	}
	template := &e.templates[idx]
	instance := &e.instances[idx]
	instance.ensureCapacity(len(countries))

	var reports []string
	triggered := 0
	for i, c := range countries {
		if !template.CanTrigger(c, instance.lastTriggered[i], currentMinutes) {
			continue
		}
		reports = append(reports, template.ApplyEffects(c)...)
		minutes := currentMinutes
		instance.lastTriggered[i] = &minutes
		triggered++
		slog.Info("scripted event triggered", "event", template.ID(), "country", c.Name, "minute", currentMinutes)
	}
	if triggered > 0 {
		slog.Debug("scripted event pass complete", "event", template.ID(), "triggered", triggered, "countries", len(countries))
	}
	return reports
}

func (e *ScriptedEventEngine) templateRef(idx int) *CompiledEventTemplate {
	if idx < 0 || idx >= len(e.templates) {
		panic(fmt.Errorf("%w: %d", domain.ErrScriptedEventIndex, idx))
	}
	return &e.templates[idx]
}

func (inst *scriptedEventInstance) ensureCapacity(countryCount int) {
	if len(inst.lastTriggered) < countryCount {
		grown := make([]*float64, countryCount)
		copy(grown, inst.lastTriggered)
		inst.lastTriggered = grown
	}
}
