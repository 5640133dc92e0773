package events

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templatedata/debt_crisis.yaml templatedata/resource_boom.json
var embeddedTemplates embed.FS

type templateSource struct {
	name   string
	format string
	body   []byte
}

// LoadEventTemplates loads and compiles every built-in scripted event
// template (one YAML, one JSON, to exercise both parsers as the original
// dual-format loader did).
func LoadEventTemplates() ([]CompiledEventTemplate, error) {
	sources, err := builtinSources()
	if err != nil {
		return nil, err
	}
	return loadFromSources(sources)
}

func builtinSources() ([]templateSource, error) {
	names := []struct {
		path   string
		format string
	}{
		{"templatedata/debt_crisis.yaml", "yaml"},
		{"templatedata/resource_boom.json", "json"},
	}
	sources := make([]templateSource, 0, len(names))
	for _, n := range names {
		body, err := embeddedTemplates.ReadFile(n.path)
		if err != nil {
			return nil, fmt.Errorf("events: reading embedded template %s: %w", n.path, err)
		}
		sources = append(sources, templateSource{name: n.path, format: n.format, body: body})
	}
	return sources, nil
}

func loadFromSources(sources []templateSource) ([]CompiledEventTemplate, error) {
	templates := make([]CompiledEventTemplate, 0, len(sources))
	for idx, source := range sources {
		raw, err := parseTemplate(source)
		if err != nil {
			return nil, err
		}
		compiled, err := CompileTemplate(idx, raw)
		if err != nil {
			return nil, err
		}
		templates = append(templates, compiled)
	}
	return templates, nil
}

func parseTemplate(source templateSource) (EventTemplateRaw, error) {
	var raw EventTemplateRaw
	switch strings.ToLower(source.format) {
	case "yaml":
		if err := yaml.Unmarshal(source.body, &raw); err != nil {
			return EventTemplateRaw{}, fmt.Errorf("events: parsing YAML template %s: %w", source.name, err)
		}
	case "json":
		if err := json.Unmarshal(source.body, &raw); err != nil {
			return EventTemplateRaw{}, fmt.Errorf("events: parsing JSON template %s: %w", source.name, err)
		}
	default:
		return EventTemplateRaw{}, fmt.Errorf("events: unknown template format %q", source.format)
	}
	return raw, nil
}
