// Package industry implements the multi-category production network:
// sector definitions with input/cost/demand dependencies, per-tick
// simulation, subsidy modifiers, and inventory/unmet-demand bookkeeping.
package industry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/talgya/geopolitics-core/internal/domain"
)

// Category is one of the four fixed production tiers.
type Category int

const (
	Primary Category = iota
	Secondary
	Tertiary
	Energy
)

// SimulationOrder returns the four categories in their fixed simulation order:
// Energy first, then the Primary→Secondary→Tertiary chain.
func SimulationOrder() []Category {
	return []Category{Energy, Primary, Secondary, Tertiary}
}

func (c Category) String() string {
	switch c {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Tertiary:
		return "tertiary"
	case Energy:
		return "energy"
	default:
		return "unknown"
	}
}

// ParseCategory accepts the English name, the Japanese name, or the 1..4
// numeric alias, per the sector-token syntax below.
func ParseCategory(raw string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "primary", "一次", "1":
		return Primary, nil
	case "secondary", "二次", "2":
		return Secondary, nil
	case "tertiary", "三次", "3":
		return Tertiary, nil
	case "energy", "エネルギー", "4":
		return Energy, nil
	default:
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownSectorToken, raw)
	}
}

// SectorID uniquely identifies a sector within the catalog.
type SectorID struct {
	Category Category
	Key      string
}

func NewSectorID(category Category, key string) SectorID {
	return SectorID{Category: category, Key: key}
}

func (id SectorID) String() string {
	return fmt.Sprintf("%s:%s", id.Category, id.Key)
}

// DependencyKind classifies how a dependency's supply ratio feeds into the
// dependent sector's simulation.
type DependencyKind int

const (
	Input DependencyKind = iota
	Cost
	Demand
)

// SectorDependency is one edge in the production network.
type SectorDependency struct {
	Sector      string
	Category    *Category // nil falls back to the owning sector's own category
	Requirement float64   // default 1.0
	Elasticity  float64   // default 0.0
	Dependency  DependencyKind
}

// ResolveSector returns the SectorID this dependency targets, defaulting the
// category to fallback when the definition left it unset.
func (d SectorDependency) ResolveSector(fallback Category) SectorID {
	if d.Category != nil {
		return NewSectorID(*d.Category, d.Sector)
	}
	return NewSectorID(fallback, d.Sector)
}

func (d SectorDependency) requirement() float64 {
	if d.Requirement > 0 {
		return d.Requirement
	}
	return 1.0
}

// SectorDefinition is the static, catalog-loaded description of one sector.
type SectorDefinition struct {
	Key              string
	Name             string
	Description      string
	BaseOutput       float64
	BaseCost         float64
	PriceSensitivity float64
	Employment       float64
	Dependencies     []SectorDependency
}

// ID returns this definition's identifier under the given category.
func (d SectorDefinition) ID(category Category) SectorID {
	return NewSectorID(category, d.Key)
}

func (d SectorDefinition) baseOutput() float64 {
	if d.BaseOutput > 0 {
		return d.BaseOutput
	}
	return 100.0
}

func (d SectorDefinition) baseCost() float64 {
	if d.BaseCost > 0 {
		return d.BaseCost
	}
	return 50.0
}

func (d SectorDefinition) priceSensitivity() float64 {
	if d.PriceSensitivity != 0 {
		return d.PriceSensitivity
	}
	return 0.5
}

// SectorState is the mutable runtime state carried tick to tick.
type SectorState struct {
	ID              SectorID
	LastOutput      float64
	SupplyCapacity  float64
	PotentialDemand float64
	Inventory       float64
	UnmetDemand     float64
	SubsidyRate     float64
	Efficiency      float64
}

// NewSectorState seeds a state from its definition: output, capacity, and
// demand all start at base_output; efficiency starts at 1.
func NewSectorState(def SectorDefinition, category Category) SectorState {
	base := def.baseOutput()
	return SectorState{
		ID:              def.ID(category),
		LastOutput:      base,
		SupplyCapacity:  base,
		PotentialDemand: base,
		Efficiency:      1.0,
	}
}

// Catalog is the full set of sector definitions, keyed by (category,key).
type Catalog struct {
	sectors map[SectorID]SectorDefinition
	order   []SectorID // insertion order, for deterministic overview listing
}

func NewCatalog() *Catalog {
	return &Catalog{sectors: make(map[SectorID]SectorDefinition)}
}

// InsertDefinition adds def under (category, def.Key). Duplicate keys are
// rejected.
func (c *Catalog) InsertDefinition(category Category, def SectorDefinition) error {
	id := def.ID(category)
	if _, exists := c.sectors[id]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateSector, id)
	}
	c.sectors[id] = def
	c.order = append(c.order, id)
	return nil
}

func (c *Catalog) Get(id SectorID) (SectorDefinition, bool) {
	def, ok := c.sectors[id]
	return def, ok
}

// Sectors returns every sector id in insertion order.
func (c *Catalog) Sectors() []SectorID {
	out := make([]SectorID, len(c.order))
	copy(out, c.order)
	return out
}

// SectorsByCategory returns the ids belonging to category, in insertion
// order.
func (c *Catalog) SectorsByCategory(category Category) []SectorID {
	var out []SectorID
	for _, id := range c.order {
		if id.Category == category {
			out = append(out, id)
		}
	}
	return out
}

// SectorModifier is a transient, decaying bonus applied to one sector.
type SectorModifier struct {
	SubsidyBonus     float64
	EfficiencyBonus  float64
	RemainingMinutes float64
}

// Decay reduces RemainingMinutes by minutes, zeroing both bonuses once it
// reaches (or was already at) zero.
func (m *SectorModifier) Decay(minutes float64) {
	if m.RemainingMinutes <= 0 {
		m.SubsidyBonus = 0
		m.EfficiencyBonus = 0
		return
	}
	m.RemainingMinutes -= max(minutes, 0)
	if m.RemainingMinutes <= 0 {
		m.RemainingMinutes = 0
		m.SubsidyBonus = 0
		m.EfficiencyBonus = 0
	}
}

// SectorMetrics is one tick's measured output for a sector.
type SectorMetrics struct {
	Output      float64
	Revenue     float64
	Cost        float64
	Sales       float64
	Demand      float64
	Inventory   float64
	UnmetDemand float64
}

// SectorOverview is a read-only summary for GameState.IndustryOverview.
type SectorOverview struct {
	ID             SectorID
	Name           string
	Category       Category
	SubsidyPercent float64
	LastOutput     float64
	LastRevenue    float64
	LastCost       float64
}

// TickOutcome summarizes one call to Runtime.SimulateTick.
type TickOutcome struct {
	TotalRevenue  float64
	TotalCost     float64
	TotalGDP      float64
	SectorMetrics map[SectorID]SectorMetrics
	Reports       []string
}

// sortOverviews orders by (category, name) for deterministic output.
func sortOverviews(entries []SectorOverview) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		return entries[i].Name < entries[j].Name
	})
}
