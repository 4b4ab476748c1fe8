package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comparison-cli/internal/model"
)

func TestValueMetrics(t *testing.T) {
	t.Parallel()

	vm, plan := chartFixture()
	features := []model.Feature{feat("f1", "", "", nil), feat("f2", "", "", nil), feat("f3", "", "", nil), feat("f4", "", "", nil)}
	prices := PriceChart(vm, plan, vm.Competitors, BuildPlanIndex(vm.Competitors), false)

	m := ValueMetrics(features, vm.Competitors, BuildFeatureIndex(vm.Competitors), prices)
	assert.Equal(t, 3, m.CompetitorCount)
	assert.Equal(t, 4, m.FeatureCount)
	assert.Equal(t, 1, m.AdvantageCount, "only f4 is available nowhere")
	require.NotNil(t, m.PriceMin)
	require.NotNil(t, m.PriceMax)
	assert.InDelta(t, 40.0, *m.PriceMin, 0.001)
	assert.InDelta(t, 50.0, *m.PriceMax, 0.001)
	assert.Equal(t, "$40 - $50", m.PriceRange("$"))
}

func TestValueMetrics_PartialIsAnAdvantage(t *testing.T) {
	t.Parallel()

	competitors := []model.Competitor{
		{ID: "c1", Features: []model.CompetitorFeature{cfeat("f1", model.StatusPartial), cfeat("f2", model.StatusAmount)}},
		{ID: "c2", Features: []model.CompetitorFeature{cfeat("f1", model.StatusUnknown)}},
	}
	features := []model.Feature{feat("f1", "", "", nil), feat("f2", "", "", nil)}

	m := ValueMetrics(features, competitors, BuildFeatureIndex(competitors), nil)
	assert.Equal(t, 2, m.AdvantageCount)
}

func TestValueMetrics_NoCompetitors(t *testing.T) {
	t.Parallel()

	features := []model.Feature{feat("f1", "", "", nil), feat("f2", "", "", nil)}
	m := ValueMetrics(features, nil, FeatureIndex{}, nil)

	assert.Equal(t, 0, m.CompetitorCount)
	assert.Equal(t, 2, m.AdvantageCount)
	assert.Nil(t, m.PriceMin)
	assert.Equal(t, "N/A", m.PriceRange("$"))
}

func TestMetrics_PriceRange(t *testing.T) {
	t.Parallel()

	one := ValueMetrics(nil, nil, FeatureIndex{}, []PricePoint{{Name: "Acme", Price: 1234.4, Ours: true}})
	assert.Equal(t, "€1,234", one.PriceRange("€"))

	spread := ValueMetrics(nil, nil, FeatureIndex{}, []PricePoint{{Price: 99.6}, {Price: 2500}, {Price: 10}})
	assert.Equal(t, "$10 - $2,500", spread.PriceRange("$"))
}
