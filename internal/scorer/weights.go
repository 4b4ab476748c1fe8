// Package scorer computes a weighted 0-100 competitiveness score for one
// competitor against one of our plans.
package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/comparison-cli/internal/model"
)

// DefaultWeights returns the stock weights. They sum to 100.
func DefaultWeights() model.ScoreWeights {
	return model.ScoreWeights{
		FeatureCoverage:      40,
		PriceCompetitiveness: 30,
		ValueRatio:           20,
		Transparency:         10,
	}
}

// WeightSum returns the sum of all component weights.
func WeightSum(w model.ScoreWeights) float64 {
	return w.FeatureCoverage + w.PriceCompetitiveness + w.ValueRatio + w.Transparency
}

// ValidateWeights checks that weights are non-negative and total 100.
// Score itself tolerates any weights; this is for operator-supplied config.
func ValidateWeights(w model.ScoreWeights) error {
	var errs []string

	named := []struct {
		name string
		v    float64
	}{
		{"feature_coverage", w.FeatureCoverage},
		{"price_competitiveness", w.PriceCompetitiveness},
		{"value_ratio", w.ValueRatio},
		{"transparency", w.Transparency},
	}
	for _, n := range named {
		if n.v < 0 || math.IsNaN(n.v) {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", n.name))
		}
	}

	sum := WeightSum(w)
	if sum <= 0 {
		errs = append(errs, "weight sum must be > 0")
	}

	// Allow tolerance for floating-point.
	if math.Abs(sum-100) > 1 {
		errs = append(errs, fmt.Sprintf("weights should sum to 100, got %.1f", sum))
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: weight validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// effectiveWeights zeroes negative or NaN weights and falls back to the
// defaults when nothing positive remains.
func effectiveWeights(w *model.ScoreWeights) model.ScoreWeights {
	if w == nil {
		return DefaultWeights()
	}
	out := model.ScoreWeights{
		FeatureCoverage:      nonNegative(w.FeatureCoverage),
		PriceCompetitiveness: nonNegative(w.PriceCompetitiveness),
		ValueRatio:           nonNegative(w.ValueRatio),
		Transparency:         nonNegative(w.Transparency),
	}
	if s := WeightSum(out); s <= 0 || math.IsInf(s, 0) {
		return DefaultWeights()
	}
	return out
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
