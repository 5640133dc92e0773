// Package diplomacy maintains the symmetric bilateral relation matrix
// between countries and the per-tick drift/adjustment logic applied to it.
package diplomacy

import (
	"fmt"
	"log/slog"

	"github.com/talgya/geopolitics-core/internal/country"
	"github.com/talgya/geopolitics-core/internal/domain"
)

const (
	minRelation     = country.MinRelation
	maxRelation     = country.MaxRelation
	initialRelation = 50
)

// InitialiseRelations seeds every ordered pair of distinct countries with
// the neutral starting relation value.
func InitialiseRelations(countries []*country.State) {
	for i := range countries {
		for j := range countries {
			if i == j {
				continue
			}
			countries[i].Relations[countries[j].Name] = initialRelation
		}
	}
}

// Pulse walks every unordered pair once, nudging relations toward the
// neutral band: very friendly relations cool slightly, very hostile ones
// warm slightly, and mildly hostile ones warm a touch. Reports are emitted
// only when an adjustment actually occurred.
func Pulse(countries []*country.State) []string {
	var reports []string
	n := len(countries)
	for idx := 0; idx < n; idx++ {
		for other := idx + 1; other < n; other++ {
			partnerName := countries[other].Name
			relation, ok := countries[idx].Relations[partnerName]
			if !ok {
				continue
			}
			var adjustment int
			switch {
			case relation > 75:
				adjustment = -1
			case relation < -60:
				adjustment = 2
			case relation < 30:
				adjustment = 1
			default:
				adjustment = 0
			}
			if adjustment == 0 {
				continue
			}
			AdjustBilateralRelation(countries, idx, other, adjustment, adjustment)
			slog.Debug("diplomatic pulse adjustment",
				"country", countries[idx].Name,
				"partner", partnerName,
				"delta", adjustment,
			)
			reports = append(reports, fmt.Sprintf("Adjusted relations between %s and %s (delta %d)", countries[idx].Name, partnerName, adjustment))
		}
	}
	return reports
}

// AdjustBilateralRelation applies deltaA to idxA's view of idxB and deltaB
// to idxB's view of idxA, clamping both to the valid relation range. Panics
// if idxA == idxB.
func AdjustBilateralRelation(countries []*country.State, idxA, idxB int, deltaA, deltaB int) {
	if idxA == idxB {
		panic(fmt.Errorf("%w: index %d", domain.ErrSelfRelation, idxA))
	}
	a, b := countries[idxA], countries[idxB]
	if value, ok := a.Relations[b.Name]; ok {
		a.Relations[b.Name] = clampRelation(value + deltaA)
	}
	if value, ok := b.Relations[a.Name]; ok {
		b.Relations[a.Name] = clampRelation(value + deltaB)
	}
}

func clampRelation(value int) int {
	if value < minRelation {
		return minRelation
	}
	if value > maxRelation {
		return maxRelation
	}
	return value
}

// ImproveRelations nudges idx's relation with every other country upward,
// scaled by scale (diplomacy budget spending effect).
func ImproveRelations(countries []*country.State, idx int, scale float64) {
	deltaPrimary := int(5.0 * scale)
	deltaSecondary := int(3.0 * scale)
	for partnerIdx := range countries {
		if partnerIdx == idx {
			continue
		}
		AdjustBilateralRelation(countries, idx, partnerIdx, deltaPrimary, deltaSecondary)
	}
}

// PenaliseAfterMilitary applies a symmetric relation penalty after idx
// takes a military action, hitting idx's own view harder than its
// partners'. No-op if delta is zero.
func PenaliseAfterMilitary(countries []*country.State, idx int, delta int) {
	if delta == 0 {
		return
	}
	for partnerIdx := range countries {
		if partnerIdx == idx {
			continue
		}
		AdjustBilateralRelation(countries, idx, partnerIdx, delta, delta/2)
	}
}
