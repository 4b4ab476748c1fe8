package comparison

import (
	"math"

	"github.com/sells-group/comparison-cli/internal/format"
	"github.com/sells-group/comparison-cli/internal/model"
)

// Metrics are the headline numbers shown above a comparison.
type Metrics struct {
	CompetitorCount int      `json:"competitor_count"`
	FeatureCount    int      `json:"feature_count"`
	AdvantageCount  int      `json:"advantage_count"` // features no competitor has fully available
	PriceMin        *float64 `json:"price_min,omitempty"`
	PriceMax        *float64 `json:"price_max,omitempty"`
}

// ValueMetrics summarises features against competitors, and the rounded
// price range of the price chart. The range is unset when the chart is empty.
func ValueMetrics(features []model.Feature, competitors []model.Competitor, idx FeatureIndex, prices []PricePoint) Metrics {
	m := Metrics{
		CompetitorCount: len(competitors),
		FeatureCount:    len(features),
	}
	for _, f := range features {
		if !anyAvailable(f, competitors, idx) {
			m.AdvantageCount++
		}
	}

	if len(prices) > 0 {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, p := range prices {
			lo = min(lo, p.Price)
			hi = max(hi, p.Price)
		}
		lo, hi = math.Round(lo), math.Round(hi)
		m.PriceMin, m.PriceMax = &lo, &hi
	}
	return m
}

func anyAvailable(f model.Feature, competitors []model.Competitor, idx FeatureIndex) bool {
	for _, c := range competitors {
		if idx.Status(c.ID, f) == model.StatusAvailable {
			return true
		}
	}
	return false
}

// PriceRange renders the price range as "$10 - $50", a single price when
// both ends match, or "N/A" without prices.
func (m Metrics) PriceRange(symbol string) string {
	if m.PriceMin == nil || m.PriceMax == nil {
		return "N/A"
	}
	lo := symbol + format.FormatMoney(*m.PriceMin)
	if *m.PriceMin == *m.PriceMax {
		return lo
	}
	return lo + " - " + symbol + format.FormatMoney(*m.PriceMax)
}
