// Package economy implements the fiscal account, tax policy, and the
// credit rating ladder and its downgrade lifecycle.
package economy

// CreditRating is an ordered ladder from AAA (safest) down to D (default),
// each with a base interest rate. It only ever moves downward during a run —
// see FiscalAccount.UpdateFiscalCycle.
type CreditRating int

const (
	AAA CreditRating = iota
	AA
	A
	BBB
	BB
	B
	CCC
	CC
	C
	D
)

var ratingNames = [...]string{"AAA", "AA", "A", "BBB", "BB", "B", "CCC", "CC", "C", "D"}

func (r CreditRating) String() string {
	if r < AAA || r > D {
		return "UNKNOWN"
	}
	return ratingNames[r]
}

// BaseInterestRate returns the rating's base annual interest rate.
func (r CreditRating) BaseInterestRate() float64 {
	switch r {
	case AAA:
		return 0.02
	case AA:
		return 0.025
	case A:
		return 0.03
	case BBB:
		return 0.035
	case BB:
		return 0.04
	case B:
		return 0.05
	case CCC:
		return 0.065
	case CC:
		return 0.08
	case C:
		return 0.1
	default:
		return 0.18
	}
}

// Downgrade moves the rating one notch down the ladder. D is absorbing.
func (r CreditRating) Downgrade() CreditRating {
	if r >= D {
		return D
	}
	return r + 1
}

// Tier returns the condition-DSL's credit_rating_tier value: 0 for D, 9 for
// AAA.
func (r CreditRating) Tier() int {
	return int(D - r)
}
