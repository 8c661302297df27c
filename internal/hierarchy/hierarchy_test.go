package hierarchy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLead(t *testing.T, name string, value float64) Lead {
	t.Helper()
	l, err := NewLead(name, value)
	require.NoError(t, err)
	return l
}

func TestNewLeadRejectsBadValues(t *testing.T) {
	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := NewLead("x", v)
		assert.ErrorIs(t, err, ErrInvalidLead)
	}
	l, err := NewLead("zero", 0)
	require.NoError(t, err)
	assert.Equal(t, "zero", l.Name())
	assert.Equal(t, 0.0, l.Value())
}

func TestParseVariantAliases(t *testing.T) {
	cases := map[string]Variant{
		"Aggressive":      Aggressive,
		"Sociopath":       Aggressive,
		"Indifferent":     Indifferent,
		"Clueless":        Indifferent,
		"SelfDeprecating": SelfDeprecating,
		"Loser":           SelfDeprecating,
	}
	for name, want := range cases {
		got, err := ParseVariant(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseVariant("aggressive")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestSuccessRates(t *testing.T) {
	h, err := Build("{A|Aggressive}0{B|Indifferent}0{C|Indifferent}1{D|SelfDeprecating}0{E|SelfDeprecating}0{F|SelfDeprecating}")
	require.NoError(t, err)

	assert.Equal(t, 0.85, h.SuccessRate(findByName(t, h, "A")))
	assert.Equal(t, 0.65, h.SuccessRate(findByName(t, h, "B")))
	assert.Equal(t, 0.45, h.SuccessRate(findByName(t, h, "C")))
	assert.Equal(t, 0.02, h.SuccessRate(findByName(t, h, "D")))
	assert.Equal(t, 0.01, h.SuccessRate(findByName(t, h, "E")))
	assert.Equal(t, 0.005, h.SuccessRate(findByName(t, h, "F")))
}

func TestSuccessRateOfRootIndifferent(t *testing.T) {
	h, err := Build("{A|Indifferent}")
	require.NoError(t, err)
	assert.Equal(t, 0.45, h.SuccessRate(h.Root()))
}

func TestAssignScenario(t *testing.T) {
	h, err := Build("{A|Aggressive}0{B|Indifferent}1{C|SelfDeprecating}")
	require.NoError(t, err)

	id, ok := h.AssignToBestRep(mustLead(t, "small", 50))
	require.True(t, ok)
	assert.Equal(t, "B", h.Name(id))
	assert.InDelta(t, 17.5, h.TotalRisk(), 1e-9)

	_, held := h.CurrentLead(h.Root())
	assert.False(t, held, "aggressive root must refuse small leads")
}

func TestAggressiveRootTakesBigLead(t *testing.T) {
	h, err := Build("{A|Aggressive}")
	require.NoError(t, err)

	assert.Equal(t, 0.0, h.TotalRisk())
	id, ok := h.AssignToBestRep(mustLead(t, "big", 2_000_000))
	require.True(t, ok)
	assert.Equal(t, h.Root(), id)
	assert.InDelta(t, 300_000, h.TotalRisk(), 1e-6)
}

func TestAggressiveFloorIsInclusive(t *testing.T) {
	h, err := Build("{A|Aggressive}")
	require.NoError(t, err)

	_, ok := h.AssignToBestRep(mustLead(t, "almost", 999_999.99))
	assert.False(t, ok)
	_, ok = h.AssignToBestRep(mustLead(t, "exact", AggressiveLeadFloor))
	assert.True(t, ok)
}

func TestBestRepPrefersHigherRateDeeper(t *testing.T) {
	// root is a low performer; a deep Indifferent under an Aggressive wins
	h, err := Build("{L|Loser}0{X|Clueless}1{S|Sociopath}0{C|Clueless}")
	require.NoError(t, err)

	id, ok := h.BestRep(mustLead(t, "deal", 10))
	require.True(t, ok)
	assert.Equal(t, "C", h.Name(id))
}

func TestBestRepTieGoesToFirstVisited(t *testing.T) {
	h, err := Build("{A|Aggressive}0{B|Indifferent}1{C|Indifferent}")
	require.NoError(t, err)

	lead := mustLead(t, "deal", 10)
	id, ok := h.AssignToBestRep(lead)
	require.True(t, ok)
	assert.Equal(t, "B", h.Name(id))

	id, ok = h.AssignToBestRep(lead)
	require.True(t, ok)
	assert.Equal(t, "C", h.Name(id))

	_, ok = h.AssignToBestRep(lead)
	assert.False(t, ok)
}

func TestBestRepSelfBeforeChildrenOnTie(t *testing.T) {
	h, err := Build("{A|Clueless}0{B|Clueless}1{C|Clueless}")
	require.NoError(t, err)

	id, ok := h.BestRep(mustLead(t, "deal", 1))
	require.True(t, ok)
	assert.Equal(t, h.Root(), id)
}

func TestAssignNoCandidate(t *testing.T) {
	h, err := Build("{A|Aggressive}0{B|Sociopath}")
	require.NoError(t, err)

	id, ok := h.AssignToBestRep(mustLead(t, "tiny", 5))
	assert.False(t, ok)
	assert.Equal(t, NoNode, id)
	assert.Equal(t, 0.0, h.TotalRisk())
}

func TestTotalRiskSumsAllHolders(t *testing.T) {
	h, err := Build("{A|Aggressive}0{B|Indifferent}0{C|Loser}1{D|Indifferent}")
	require.NoError(t, err)

	for _, v := range []float64{2_000_000, 100, 100, 100} {
		_, ok := h.AssignToBestRep(mustLead(t, "l", v))
		require.True(t, ok)
	}
	// A 2e6*0.15, B 100*0.35, D 100*0.55, C 100*0.98
	want := 2_000_000*(1-0.85) + 100*(1-0.65) + 100*(1-0.45) + 100*(1-0.02)
	assert.InDelta(t, want, h.TotalRisk(), 1e-6)
	assert.Equal(t, h.TotalRisk(), h.TotalRisk())
}

func TestViewAndWalk(t *testing.T) {
	h, err := Build("{A|Aggressive}0{B|Indifferent}")
	require.NoError(t, err)
	_, ok := h.AssignToBestRep(mustLead(t, "deal", 10))
	require.True(t, ok)

	v, err := h.View(findByName(t, h, "B"))
	require.NoError(t, err)
	assert.Equal(t, Indifferent, v.Variant)
	assert.Equal(t, h.Root(), v.Parent)
	require.NotNil(t, v.Lead)
	assert.Equal(t, "deal", v.Lead.Name())
	assert.InDelta(t, 3.5, v.Risk, 1e-9)

	_, err = h.View(NodeID(7))
	assert.Error(t, err)
}
