package events

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/geopolitics-core/internal/country"
	"github.com/talgya/geopolitics-core/internal/economy"
)

func sampleCountry(name string) *country.State {
	fiscal := economy.NewFiscalAccount(200, economy.A)
	taxPolicy := economy.NewTaxPolicy(economy.TaxPolicyConfig{})
	return country.New(name, "Republic", 10, 500, 50, 40, 45, 60, fiscal, taxPolicy, country.DefaultAllocation())
}

func TestCompileTemplateRejectsZeroCheckMinutes(t *testing.T) {
	raw := EventTemplateRaw{
		ID: "invalid", Name: "Invalid", Description: "desc",
		Condition: "approval > 0", CheckMinutes: 0, CooldownMinutes: 60,
	}
	_, err := CompileTemplate(3, raw)
	require.Error(t, err)
	require.ErrorContains(t, err, "check_minutes")
}

func TestCompiledTemplateExposesMetadataAndEffects(t *testing.T) {
	raw := EventTemplateRaw{
		ID: "approval_push", Name: "Approval Push", Description: "desc",
		Condition: "approval >= 40", CheckMinutes: 60, InitialDelayMinutes: 5, CooldownMinutes: 120,
		Effects: []EventEffectRaw{
			{Type: "adjust_metric", Metric: "approval", Delta: 10.0},
			{Type: "report", Message: "{country} improved approval"},
		},
	}
	template, err := CompileTemplate(0, raw)
	require.NoError(t, err)
	require.Equal(t, uint64(60), template.CheckMinutes())
	require.Equal(t, uint64(5), template.InitialDelayMinutes())
	require.Equal(t, "approval_push", template.ID())

	c := sampleCountry("Testland")
	require.True(t, template.CanTrigger(c, nil, 300.0))
	reports := template.ApplyEffects(c)
	require.Equal(t, []string{"Testland improved approval"}, reports)
	require.Equal(t, 55, c.Approval)

	last := 300.0
	require.False(t, template.CanTrigger(c, &last, 360.0))
}

func TestEngineExecuteAppliesEffectsAndRespectsCooldown(t *testing.T) {
	raw := EventTemplateRaw{
		ID: "approval_push", Name: "Approval Push", Description: "desc",
		Condition: "approval >= 40", CheckMinutes: 60, InitialDelayMinutes: 5, CooldownMinutes: 120,
		Effects: []EventEffectRaw{
			{Type: "adjust_metric", Metric: "approval", Delta: 10.0},
			{Type: "report", Message: "{country} improved approval"},
		},
	}
	template, err := CompileTemplate(0, raw)
	require.NoError(t, err)
	engine := WithTemplates([]CompiledEventTemplate{template}, 1)

	require.Equal(t, 1, engine.Len())
	require.Equal(t, uint64(60), engine.CheckMinutes(0))
	require.Equal(t, uint64(5), engine.InitialDelayMinutes(0))
	desc, ok := engine.DescriptionOf("approval_push")
	require.True(t, ok)
	require.Equal(t, "desc", desc)

	countries := []*country.State{sampleCountry("Testland")}
	reports := engine.Execute(0, countries, 300.0)
	require.Equal(t, []string{"Testland improved approval"}, reports)
	require.Equal(t, 55, countries[0].Approval)

	reportsSecond := engine.Execute(0, countries, 360.0)
	require.Empty(t, reportsSecond)
	require.Equal(t, 55, countries[0].Approval)
}

func TestEngineExpandsInstanceCapacityForAdditionalCountries(t *testing.T) {
	raw := EventTemplateRaw{
		ID: "broad_effect", Name: "Broad Effect", Description: "desc",
		Condition: "approval >= 0", CheckMinutes: 30, CooldownMinutes: 30,
		Effects: []EventEffectRaw{{Type: "adjust_metric", Metric: "approval", Delta: 5.0}},
	}
	template, err := CompileTemplate(0, raw)
	require.NoError(t, err)
	engine := WithTemplates([]CompiledEventTemplate{template}, 1)

	countries := []*country.State{sampleCountry("Alpha"), sampleCountry("Beta")}
	baselineAlpha, baselineBeta := countries[0].Approval, countries[1].Approval
	reports := engine.Execute(0, countries, 45.0)
	require.Empty(t, reports)
	require.Equal(t, baselineAlpha+5, countries[0].Approval)
	require.Equal(t, baselineBeta+5, countries[1].Approval)
}

func TestLoadBuiltinTemplatesSuccess(t *testing.T) {
	templates, err := LoadEventTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 2)
	require.Equal(t, "debt_crisis", templates[0].ID())
	require.Equal(t, uint64(180), templates[0].CheckMinutes())
	require.Equal(t, "resource_boom", templates[1].ID())
	require.Equal(t, uint64(120), templates[1].InitialDelayMinutes())
}

func TestLoadFromSourcesReportsParseErrors(t *testing.T) {
	_, err := loadFromSources([]templateSource{{name: "broken.yaml", format: "yaml", body: []byte("id: [unterminated")}})
	require.Error(t, err)
}

func TestLoadFromSourcesReportsCompileErrors(t *testing.T) {
	body := []byte(`{
		"id": "invalid",
		"name": "Invalid",
		"description": "Invalid template",
		"condition": "approval > 10",
		"check_minutes": 0,
		"effects": []
	}`)
	_, err := loadFromSources([]templateSource{{name: "invalid.json", format: "json", body: body}})
	require.Error(t, err)
	require.ErrorContains(t, err, "check_minutes")
}
