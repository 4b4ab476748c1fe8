package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comparison-cli/internal/model"
)

func moduleWithChildren(ids ...string) *Module {
	m := &Module{Name: "Reports"}
	for _, id := range ids {
		m.Features = append(m.Features, feat(id, "Analytics", "Reports", nil))
	}
	return m
}

func indexFor(competitorID string, records ...model.CompetitorFeature) FeatureIndex {
	return BuildFeatureIndex([]model.Competitor{{ID: competitorID, Features: records}})
}

func TestAggregateStatus_AllAvailable(t *testing.T) {
	t.Parallel()

	m := moduleWithChildren("f1", "f2", "f3")
	idx := indexFor("x",
		cfeat("f1", model.StatusAvailable),
		cfeat("f2", model.StatusAvailable),
		cfeat("f3", model.StatusAvailable),
	)
	assert.Equal(t, model.StatusAvailable, AggregateStatus(m, "x", idx))
}

func TestAggregateStatus_Mixed(t *testing.T) {
	t.Parallel()

	m := moduleWithChildren("f1", "f2", "f3")
	idx := indexFor("x",
		cfeat("f1", model.StatusAvailable),
		cfeat("f2", model.StatusUnavailable),
		cfeat("f3", model.StatusUnavailable),
	)
	assert.Equal(t, model.StatusPartial, AggregateStatus(m, "x", idx))
}

func TestAggregateStatus_PartialOnly(t *testing.T) {
	t.Parallel()

	m := moduleWithChildren("f1", "f2")
	idx := indexFor("x", cfeat("f1", model.StatusPartial))
	assert.Equal(t, model.StatusPartial, AggregateStatus(m, "x", idx))
}

func TestAggregateStatus_NoneAvailable(t *testing.T) {
	t.Parallel()

	m := moduleWithChildren("f1", "f2", "f3")
	idx := indexFor("x",
		cfeat("f1", model.StatusUnavailable),
		cfeat("f2", model.StatusUnknown),
	)
	assert.Equal(t, model.StatusUnavailable, AggregateStatus(m, "x", idx))
}

func TestAggregateStatus_AmountDoesNotCount(t *testing.T) {
	t.Parallel()

	m := moduleWithChildren("f1", "f2")
	idx := indexFor("x",
		cfeat("f1", model.StatusAvailable),
		cfeat("f2", model.StatusAmount),
	)
	assert.Equal(t, model.StatusPartial, AggregateStatus(m, "x", idx))

	idx = indexFor("x", cfeat("f1", model.StatusAmount), cfeat("f2", model.StatusAmount))
	assert.Equal(t, model.StatusUnavailable, AggregateStatus(m, "x", idx))
}

func TestAggregateStatus_LeafModuleUsesOwnRecord(t *testing.T) {
	t.Parallel()

	own := feat("Reports", "Analytics", "Reports", nil)
	m := &Module{Name: "Reports", Feature: &own}

	tests := []struct {
		status model.Status
		want   model.Status
	}{
		{model.StatusAvailable, model.StatusAvailable},
		{model.StatusPartial, model.StatusPartial},
		{model.StatusUnavailable, model.StatusUnavailable},
		{model.StatusAmount, model.StatusUnavailable},
		{model.StatusUnknown, model.StatusUnavailable},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			idx := indexFor("x", cfeat("Reports", tt.status))
			assert.Equal(t, tt.want, AggregateStatus(m, "x", idx))
		})
	}

	assert.Equal(t, model.StatusUnavailable, AggregateStatus(m, "x", FeatureIndex{}))
	assert.Equal(t, model.StatusUnavailable, AggregateStatus(&Module{Name: "bare"}, "x", FeatureIndex{}))
}

func TestGroupFeatures(t *testing.T) {
	t.Parallel()

	features := []model.Feature{
		feat("Analytics", "Analytics", "", ord(5)),
		feat("Dashboards", "Analytics", "Dashboards", nil),
		feat("Charts", "Analytics", "Dashboards", ord(2)),
		feat("Exports", "Analytics", "Dashboards", ord(1)),
		feat("Alerts", "Analytics", "", nil),
		feat("SSO", "", "", nil),
	}

	hubs := GroupFeatures(features)
	require.Len(t, hubs, 2)

	analytics := hubs[0]
	assert.Equal(t, "Analytics", analytics.Name)
	require.NotNil(t, analytics.Feature)
	assert.Equal(t, "Analytics", analytics.Feature.ID)
	require.Len(t, analytics.Modules, 2)

	dashboards := analytics.Modules[0]
	assert.Equal(t, "Dashboards", dashboards.Name)
	require.NotNil(t, dashboards.Feature)
	assert.Equal(t, []string{"Charts", "Exports"}, names(dashboards.Features))

	alerts := analytics.Modules[1]
	assert.Equal(t, "Alerts", alerts.Name)
	require.NotNil(t, alerts.Feature)
	assert.Empty(t, alerts.Features)

	general := hubs[1]
	assert.Equal(t, DefaultHub, general.Name)
	require.Len(t, general.Modules, 1)
	assert.Equal(t, "SSO", general.Modules[0].Name)

	// Every feature lands exactly once.
	count := 0
	for _, h := range hubs {
		if h.Feature != nil {
			count++
		}
		for _, m := range h.Modules {
			if m.Feature != nil {
				count++
			}
			count += len(m.Features)
		}
	}
	assert.Equal(t, len(features), count)
}

func TestBuildHierarchy_SortsEveryLevel(t *testing.T) {
	t.Parallel()

	features := []model.Feature{
		feat("z-late", "Zeta", "Only", ord(50)),
		feat("b", "Alpha", "Second", ord(20)),
		feat("a", "Alpha", "First", ord(10)),
		feat("c", "Alpha", "First", nil),
		feat("early", "Omega", "M", ord(1)),
	}

	h := BuildHierarchy(features, nil, FeatureIndex{})
	assert.Equal(t, []string{"Omega", "Alpha", "Zeta"}, h.HubNames())

	alpha := h.Hubs[1]
	require.Len(t, alpha.Modules, 2)
	assert.Equal(t, "First", alpha.Modules[0].Name)
	assert.Equal(t, []string{"a", "c"}, names(alpha.Modules[0].Features))
	assert.Equal(t, "Second", alpha.Modules[1].Name)
	assert.Empty(t, h.Statuses)
}

func TestBuildHierarchy_StatusCache(t *testing.T) {
	t.Parallel()

	features := []model.Feature{
		feat("f1", "Hub", "M1", ord(1)),
		feat("f2", "Hub", "M1", ord(2)),
		feat("f3", "Hub", "M2", ord(3)),
	}
	competitors := []model.Competitor{
		{ID: "c1", Features: []model.CompetitorFeature{cfeat("f1", model.StatusAvailable), cfeat("f2", model.StatusAvailable)}},
		{ID: "c2", Features: []model.CompetitorFeature{cfeat("f1", model.StatusPartial), cfeat("f3", model.StatusAvailable)}},
	}

	h := BuildHierarchy(features, competitors, BuildFeatureIndex(competitors))
	assert.Len(t, h.Statuses, 4)
	assert.Equal(t, model.StatusAvailable, h.StatusFor("Hub", "M1", "c1"))
	assert.Equal(t, model.StatusUnavailable, h.StatusFor("Hub", "M2", "c1"))
	assert.Equal(t, model.StatusPartial, h.StatusFor("Hub", "M1", "c2"))
	assert.Equal(t, model.StatusAvailable, h.StatusFor("Hub", "M2", "c2"))
	assert.Equal(t, model.StatusUnavailable, h.StatusFor("Hub", "missing", "c2"))
	assert.Equal(t, 2, h.ModuleCount())

	for _, s := range h.Statuses {
		assert.NotEqual(t, model.StatusUnknown, s)
	}
}

func TestBuildHierarchy_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	features := []model.Feature{feat("b", "H", "M", ord(2)), feat("a", "H", "M", ord(1))}
	BuildHierarchy(features, nil, FeatureIndex{})
	assert.Equal(t, []string{"b", "a"}, names(features))
}
