// Package events implements the scripted-event engine: compiled templates
// pairing an eventdsl condition with a list of effects, executed on a
// fixed check-cadence with per-country cooldowns.
package events

import (
	"fmt"
	"strings"

	"github.com/talgya/geopolitics-core/internal/country"
	"github.com/talgya/geopolitics-core/internal/domain"
	"github.com/talgya/geopolitics-core/internal/eventdsl"
)

// EventTemplateRaw is the on-disk (YAML or JSON) representation of one
// scripted event template.
type EventTemplateRaw struct {
	ID                  string           `yaml:"id" json:"id"`
	Name                string           `yaml:"name" json:"name"`
	Description         string           `yaml:"description" json:"description"`
	Condition           string           `yaml:"condition" json:"condition"`
	CheckMinutes        uint64           `yaml:"check_minutes" json:"check_minutes"`
	InitialDelayMinutes uint64           `yaml:"initial_delay_minutes" json:"initial_delay_minutes"`
	CooldownMinutes     uint64           `yaml:"cooldown_minutes" json:"cooldown_minutes"`
	Effects             []EventEffectRaw `yaml:"effects" json:"effects"`
}

const defaultCooldownMinutes = 720

// EventEffectRaw is a single tagged-union effect entry.
type EventEffectRaw struct {
	Type    string  `yaml:"type" json:"type"`
	Metric  string  `yaml:"metric" json:"metric"`
	Delta   float64 `yaml:"delta" json:"delta"`
	Message string  `yaml:"message" json:"message"`
}

// compiledEffect is one compiled, ready-to-apply effect.
type compiledEffect struct {
	kind    effectKind
	metric  MetricField
	delta   float64
	message string
}

type effectKind int

const (
	effectAdjustMetric effectKind = iota
	effectReport
)

func compileEffect(raw EventEffectRaw) (compiledEffect, error) {
	switch raw.Type {
	case "adjust_metric":
		field, err := parseMetricField(raw.Metric)
		if err != nil {
			return compiledEffect{}, err
		}
		return compiledEffect{kind: effectAdjustMetric, metric: field, delta: raw.Delta}, nil
	case "report":
		return compiledEffect{kind: effectReport, message: raw.Message}, nil
	default:
		return compiledEffect{}, fmt.Errorf("%w: unknown effect type %q", domain.ErrMalformedCondition, raw.Type)
	}
}

// MetricField identifies which CountryState field an adjust_metric effect
// mutates. Distinct from eventdsl.MetricKey, which is read-only.
type MetricField int

const (
	FieldStability MetricField = iota
	FieldApproval
	FieldMilitary
	FieldResources
	FieldGDP
	FieldDebt
	FieldCashReserve
)

func parseMetricField(raw string) (MetricField, error) {
	switch raw {
	case "stability":
		return FieldStability, nil
	case "approval":
		return FieldApproval, nil
	case "military":
		return FieldMilitary, nil
	case "resources":
		return FieldResources, nil
	case "gdp":
		return FieldGDP, nil
	case "debt":
		return FieldDebt, nil
	case "cash_reserve":
		return FieldCashReserve, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, raw)
	}
}

func (f MetricField) apply(c *country.State, delta float64) {
	switch f {
	case FieldStability:
		c.ApplyStabilityDelta(delta)
	case FieldApproval:
		c.ApplyApprovalDelta(delta)
	case FieldMilitary:
		c.ApplyMilitaryDelta(delta)
	case FieldResources:
		c.ApplyResourcesDelta(delta)
	case FieldGDP:
		c.ApplyGDPDelta(delta)
	case FieldDebt:
		c.ApplyDebtDelta(delta)
	case FieldCashReserve:
		c.ApplyCashReserveDelta(delta)
	}
}

// CompiledEventTemplate is a fully parsed, ready-to-evaluate scripted event.
type CompiledEventTemplate struct {
	id                  string
	name                string
	description         string
	checkMinutes        uint64
	initialDelayMinutes uint64
	cooldownMinutes     float64
	condition           eventdsl.Condition
	effects             []compiledEffect
}

// CompileTemplate compiles a raw template, validating check_minutes and the
// condition expression.
func CompileTemplate(sourceIndex int, raw EventTemplateRaw) (CompiledEventTemplate, error) {
	if raw.CheckMinutes == 0 {
		return CompiledEventTemplate{}, fmt.Errorf("%w: template %d: check_minutes must be >= 1", domain.ErrZeroCheckMinutes, sourceIndex)
	}
	cooldownMinutes := raw.CooldownMinutes
	if cooldownMinutes == 0 {
		cooldownMinutes = defaultCooldownMinutes
	}
	condition, err := eventdsl.Parse(raw.Condition)
	if err != nil {
		return CompiledEventTemplate{}, fmt.Errorf("template %d: %w", sourceIndex, err)
	}
	effects := make([]compiledEffect, 0, len(raw.Effects))
	for _, e := range raw.Effects {
		compiled, err := compileEffect(e)
		if err != nil {
			return CompiledEventTemplate{}, fmt.Errorf("template %d: %w", sourceIndex, err)
		}
		effects = append(effects, compiled)
	}
	return CompiledEventTemplate{
		id:                  raw.ID,
		name:                raw.Name,
		description:         raw.Description,
		checkMinutes:        raw.CheckMinutes,
		initialDelayMinutes: raw.InitialDelayMinutes,
		cooldownMinutes:     float64(cooldownMinutes),
		condition:           condition,
		effects:             effects,
	}, nil
}

func (t *CompiledEventTemplate) ID() string                  { return t.id }
func (t *CompiledEventTemplate) Name() string                { return t.name }
func (t *CompiledEventTemplate) Description() string         { return t.description }
func (t *CompiledEventTemplate) CheckMinutes() uint64         { return t.checkMinutes }
func (t *CompiledEventTemplate) InitialDelayMinutes() uint64  { return t.initialDelayMinutes }

// CanTrigger reports whether this template's condition matches c and its
// cooldown (if any last trigger time is known) has elapsed.
func (t *CompiledEventTemplate) CanTrigger(c *country.State, lastTriggeredAt *float64, currentMinutes float64) bool {
	if !t.condition.Evaluate(c.MetricValues()) {
		return false
	}
	if lastTriggeredAt != nil && currentMinutes-*lastTriggeredAt < t.cooldownMinutes {
		return false
	}
	return true
}

// ApplyEffects mutates c according to this template's compiled effects and
// returns any report messages produced.
func (t *CompiledEventTemplate) ApplyEffects(c *country.State) []string {
	var reports []string
	for _, effect := range t.effects {
		switch effect.kind {
		case effectAdjustMetric:
			effect.metric.apply(c, effect.delta)
		case effectReport:
			reports = append(reports, formatMessage(effect.message, c))
		}
	}
	return reports
}

func formatMessage(template string, c *country.State) string {
	return strings.ReplaceAll(template, "{country}", c.Name)
}
