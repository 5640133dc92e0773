package industry

import (
	"fmt"
	"strings"
)

// reporter collects the human-readable activity lines produced during one
// SimulateTick call.
type reporter struct {
	entries []string
}

func (r *reporter) push(message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	r.entries = append(r.entries, message)
}

// recordSectorActivity appends a line describing one sector's tick, unless
// the sector produced and sold nothing.
func (r *reporter) recordSectorActivity(name string, production, demandWithBacklog, inventory, unmetDemand, sales float64) {
	if production <= 1e-9 && sales <= 1e-9 {
		return
	}
	r.push(fmt.Sprintf("%s: output %.1f / demand %.1f / inventory %.1f / unmet %.1f",
		name, production, demandWithBacklog, inventory, unmetDemand))
}

func (r *reporter) reports() []string {
	return r.entries
}
