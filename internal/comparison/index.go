// Package comparison indexes competitor data and aggregates our feature
// catalog into a sorted hub/module/feature tree with rolled-up statuses.
//
// Everything here is a pure function over read-only snapshots.
package comparison

import (
	"strconv"

	"github.com/sells-group/comparison-cli/internal/model"
)

// MakeKey builds the composite key for a (plan, feature) pair. The plan id is
// length-prefixed so no pair of inputs can collide, whatever characters the
// ids contain.
func MakeKey(planID, featureID string) string {
	return strconv.Itoa(len(planID)) + ":" + planID + "|" + featureID
}

// FeatureIndex maps competitor id -> composite key -> competitor feature.
type FeatureIndex map[string]map[string]model.CompetitorFeature

// PlanIndex maps competitor id -> our plan id -> competitor plan.
type PlanIndex map[string]map[string]model.CompetitorPlan

// BuildFeatureIndex indexes every competitor's features by composite key.
// Every competitor gets an entry, possibly empty. A duplicate (plan, feature)
// pair within one competitor keeps the last record.
func BuildFeatureIndex(competitors []model.Competitor) FeatureIndex {
	idx := make(FeatureIndex, len(competitors))
	for _, c := range competitors {
		inner := make(map[string]model.CompetitorFeature, len(c.Features))
		for _, cf := range c.Features {
			cf.Status = model.ParseStatus(string(cf.Status))
			inner[MakeKey(cf.PlanID, cf.FeatureID)] = cf
		}
		idx[c.ID] = inner
	}
	return idx
}

// BuildPlanIndex indexes every competitor's plans by our plan id, with the
// same every-competitor and last-write-wins rules as BuildFeatureIndex.
func BuildPlanIndex(competitors []model.Competitor) PlanIndex {
	idx := make(PlanIndex, len(competitors))
	for _, c := range competitors {
		inner := make(map[string]model.CompetitorPlan, len(c.Plans))
		for _, p := range c.Plans {
			inner[p.ID] = p
		}
		idx[c.ID] = inner
	}
	return idx
}

// Lookup returns the competitor's record for the (plan, feature) pair.
func (idx FeatureIndex) Lookup(competitorID, planID, featureID string) (model.CompetitorFeature, bool) {
	cf, ok := idx[competitorID][MakeKey(planID, featureID)]
	return cf, ok
}

// Status returns the competitor's status for a feature, unknown when absent.
func (idx FeatureIndex) Status(competitorID string, f model.Feature) model.Status {
	cf, ok := idx.Lookup(competitorID, f.PlanID, f.ID)
	if !ok {
		return model.StatusUnknown
	}
	return cf.Status
}

// Lookup returns the competitor's plan mapped onto our plan.
func (idx PlanIndex) Lookup(competitorID, planID string) (model.CompetitorPlan, bool) {
	p, ok := idx[competitorID][planID]
	return p, ok
}
