package comparison

import "github.com/sells-group/comparison-cli/internal/model"

func ord(v float64) *float64 { return &v }

func flag(v bool) *bool { return &v }

func feat(id, hub, module string, order *float64) model.Feature {
	return model.Feature{ID: id, Name: id, PlanID: "plan-1", Hub: hub, Module: module, Order: order}
}

func cfeat(featureID string, status model.Status) model.CompetitorFeature {
	return model.CompetitorFeature{FeatureID: featureID, PlanID: "plan-1", Status: status}
}

func names(features []model.Feature) []string {
	out := make([]string, len(features))
	for i, f := range features {
		out[i] = f.Name
	}
	return out
}
