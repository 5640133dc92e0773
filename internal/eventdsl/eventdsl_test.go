package eventdsl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleValues() MetricValues {
	return MetricValues{Stability: 55, Approval: 45, DebtRatio: 48}
}

func TestParseSupportsAndOrGrouping(t *testing.T) {
	cond, err := Parse("stability > 50 && (approval >= 45 || debt_ratio < 60)")
	require.NoError(t, err)

	v := sampleValues()
	require.True(t, cond.Evaluate(v))

	v.Approval = 40
	require.True(t, cond.Evaluate(v))

	v.Stability = 40
	require.False(t, cond.Evaluate(v))
}

func TestParseRejectsUnknownMetric(t *testing.T) {
	_, err := Parse("unknown_metric > 0")
	require.Error(t, err)
}

func TestParseRejectsUnbalancedParens(t *testing.T) {
	_, err := Parse("(stability > 10")
	require.Error(t, err)
}

func TestParseRejectsSingleAmpersand(t *testing.T) {
	_, err := Parse("stability > 10 & approval > 10")
	require.Error(t, err)
}

func TestParseHandlesEqualityWithEpsilon(t *testing.T) {
	cond, err := Parse("gdp == 100")
	require.NoError(t, err)
	require.True(t, cond.Evaluate(MetricValues{GDP: 100}))
	require.False(t, cond.Evaluate(MetricValues{GDP: 100.5}))
}
