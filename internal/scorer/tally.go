package scorer

import (
	"github.com/sells-group/comparison-cli/internal/comparison"
	"github.com/sells-group/comparison-cli/internal/model"
)

// Tally counts a competitor's coverage of our features into a ScoreInput.
// Prices and transparency are left for the caller.
//
// available counts as included and partial as partial. An amount in currency
// counts as paid, any other amount as custom.
func Tally(features []model.Feature, competitorID string, idx comparison.FeatureIndex) model.ScoreInput {
	in := model.ScoreInput{TotalFeatures: len(features)}
	for _, f := range features {
		cf, ok := idx.Lookup(competitorID, f.PlanID, f.ID)
		if !ok {
			continue
		}
		switch cf.Status {
		case model.StatusAvailable:
			in.IncludedFeatures++
		case model.StatusPartial:
			in.PartialFeatures++
		case model.StatusAmount:
			if cf.EffectiveUnit() == model.UnitCurrency {
				in.PaidFeatures++
			} else {
				in.CustomFeatures++
			}
		}
	}
	return in
}
