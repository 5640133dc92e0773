package market

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommodityUpdateStaysWithinBand(t *testing.T) {
	c := New(120, 7.5, 0.04)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		c.Update(rng, 1.0)
		require.GreaterOrEqual(t, c.Price(), 120*0.4)
		require.LessOrEqual(t, c.Price(), 120*1.9)
	}
}

func TestCommodityRevenueForIsNonNegative(t *testing.T) {
	c := New(120, 7.5, 0.04)
	require.GreaterOrEqual(t, c.RevenueFor(-10, 1.0), 0.0)
	require.Greater(t, c.RevenueFor(70, 1.0), 0.0)
}
