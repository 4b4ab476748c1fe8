package scorer

import (
	"math"

	"github.com/sells-group/comparison-cli/internal/model"
)

// neutral is the sub-score used when a component has no data to judge.
const neutral = 50

// Score computes the weighted score for one competitor. Nil weights use
// DefaultWeights. Score is pure: identical inputs always give identical output.
func Score(in model.ScoreInput, weights *model.ScoreWeights) model.ScoreResult {
	w := effectiveWeights(weights)

	coverage := scoreFeatureCoverage(in.IncludedFeatures, in.PartialFeatures, in.TotalFeatures)
	breakdown := model.ScoreBreakdown{
		FeatureCoverage:      coverage,
		PriceCompetitiveness: scorePriceCompetitiveness(in.CompetitorPrice, in.OurPrice),
		ValueRatio:           scoreValueRatio(coverage, in.CompetitorPrice, in.OurPrice),
		Transparency:         clamp(in.PricingTransparency),
	}

	total := breakdown.FeatureCoverage*w.FeatureCoverage +
		breakdown.PriceCompetitiveness*w.PriceCompetitiveness +
		breakdown.ValueRatio*w.ValueRatio +
		breakdown.Transparency*w.Transparency

	return model.ScoreResult{
		Overall:   int(clamp(math.Round(total / WeightSum(w)))),
		Breakdown: breakdown,
	}
}

// scoreFeatureCoverage returns 0-100; partial features count half. No
// features means no data, which scores 0.
func scoreFeatureCoverage(included, partial, total int) float64 {
	if total <= 0 {
		return 0
	}
	included = max(included, 0)
	partial = max(partial, 0)
	return clamp((float64(included) + 0.5*float64(partial)) / float64(total) * 100)
}

// scorePriceCompetitiveness is 100 when a competitor matches or undercuts our
// price. Above our price it starts below neutral and decays as 50*ours/competitor.
func scorePriceCompetitiveness(competitor, ours float64) float64 {
	if !positive(competitor) || !positive(ours) {
		return neutral
	}
	if competitor <= ours {
		return 100
	}
	return clamp(neutral * ours / competitor)
}

// scoreValueRatio compares coverage per currency unit against ours, where we
// offer full coverage at our own price.
func scoreValueRatio(coverage, competitor, ours float64) float64 {
	if !positive(competitor) || !positive(ours) {
		return neutral
	}
	return clamp(coverage * ours / competitor)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// clamp bounds v to [0, 100]. NaN maps to 0.
func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
