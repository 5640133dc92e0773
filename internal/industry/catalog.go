package industry

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalogdata/*.yaml
var embeddedCatalog embed.FS

// categoryFile mirrors one category YAML's top-level shape:
// {category: primary|secondary|tertiary|energy, sectors: [...]}.
type categoryFile struct {
	Category string            `yaml:"category"`
	Sectors  []sectorFileEntry `yaml:"sectors"`
}

type sectorFileEntry struct {
	Key              string                 `yaml:"key"`
	Name             string                 `yaml:"name"`
	Description      string                 `yaml:"description"`
	BaseOutput       float64                `yaml:"base_output"`
	BaseCost         float64                `yaml:"base_cost"`
	PriceSensitivity float64                `yaml:"price_sensitivity"`
	Employment       float64                `yaml:"employment"`
	Dependencies     []sectorDependencyFile `yaml:"dependencies"`
}

type sectorDependencyFile struct {
	Sector      string  `yaml:"sector"`
	Category    string  `yaml:"category"`
	Requirement float64 `yaml:"requirement"`
	Elasticity  float64 `yaml:"elasticity"`
	Dependency  string  `yaml:"dependency"`
}

// FromEmbedded loads the four built-in category YAML files bundled with the
// binary, in the industry-catalog format below.
func FromEmbedded() (*Catalog, error) {
	names := []string{
		"catalogdata/energy.yaml",
		"catalogdata/primary.yaml",
		"catalogdata/secondary.yaml",
		"catalogdata/tertiary.yaml",
	}

	catalog := NewCatalog()
	for _, name := range names {
		raw, err := embeddedCatalog.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("industry: reading embedded catalog %s: %w", name, err)
		}
		if err := loadCategoryFile(catalog, raw, name); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func loadCategoryFile(catalog *Catalog, raw []byte, source string) error {
	var file categoryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("industry: parsing %s: %w", source, err)
	}
	category, err := ParseCategory(file.Category)
	if err != nil {
		return fmt.Errorf("industry: %s: %w", source, err)
	}
	for _, entry := range file.Sectors {
		def, err := entry.toDefinition()
		if err != nil {
			return fmt.Errorf("industry: %s sector %q: %w", source, entry.Key, err)
		}
		if err := catalog.InsertDefinition(category, def); err != nil {
			return fmt.Errorf("industry: %s: %w", source, err)
		}
	}
	return nil
}

func (e sectorFileEntry) toDefinition() (SectorDefinition, error) {
	deps := make([]SectorDependency, 0, len(e.Dependencies))
	for _, d := range e.Dependencies {
		dep, err := d.toDependency()
		if err != nil {
			return SectorDefinition{}, err
		}
		deps = append(deps, dep)
	}
	return SectorDefinition{
		Key:              e.Key,
		Name:             e.Name,
		Description:      e.Description,
		BaseOutput:       e.BaseOutput,
		BaseCost:         e.BaseCost,
		PriceSensitivity: e.PriceSensitivity,
		Employment:       e.Employment,
		Dependencies:     deps,
	}, nil
}

func (d sectorDependencyFile) toDependency() (SectorDependency, error) {
	var kind DependencyKind
	switch d.Dependency {
	case "", "input":
		kind = Input
	case "cost":
		kind = Cost
	case "demand":
		kind = Demand
	default:
		return SectorDependency{}, fmt.Errorf("industry: unknown dependency kind %q", d.Dependency)
	}

	var category *Category
	if d.Category != "" {
		parsed, err := ParseCategory(d.Category)
		if err != nil {
			return SectorDependency{}, err
		}
		category = &parsed
	}

	return SectorDependency{
		Sector:      d.Sector,
		Category:    category,
		Requirement: d.Requirement,
		Elasticity:  d.Elasticity,
		Dependency:  kind,
	}, nil
}
