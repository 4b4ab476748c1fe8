package model

// ScoreWeights are percentage weights for the four score components.
// They conceptually sum to 100; the scorer normalises by their total.
type ScoreWeights struct {
	FeatureCoverage      float64 `json:"featureCoverage" mapstructure:"feature_coverage"`
	PriceCompetitiveness float64 `json:"priceCompetitiveness" mapstructure:"price_competitiveness"`
	ValueRatio           float64 `json:"valueRatio" mapstructure:"value_ratio"`
	Transparency         float64 `json:"transparency" mapstructure:"transparency"`
}

// ScoreInput is the raw material for scoring one competitor against our plan.
type ScoreInput struct {
	IncludedFeatures    int     `json:"includedFeatures"`
	PartialFeatures     int     `json:"partialFeatures"`
	PaidFeatures        int     `json:"paidFeatures"`
	CustomFeatures      int     `json:"customFeatures"`
	TotalFeatures       int     `json:"totalFeatures"`
	CompetitorPrice     float64 `json:"competitorPrice"`
	OurPrice            float64 `json:"ourPrice"`
	PricingTransparency float64 `json:"pricingTransparency"`
}

// ScoreBreakdown holds the 0-100 component scores.
type ScoreBreakdown struct {
	FeatureCoverage      float64 `json:"featureCoverage"`
	PriceCompetitiveness float64 `json:"priceCompetitiveness"`
	ValueRatio           float64 `json:"valueRatio"`
	Transparency         float64 `json:"transparency"`
}

// ScoreResult is the weighted outcome of scoring.
type ScoreResult struct {
	Overall   int            `json:"overall"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// Scorecard ties a score to the competitor it was computed for.
type Scorecard struct {
	CompetitorID   string      `json:"competitor_id"`
	CompetitorName string      `json:"competitor_name"`
	Input          ScoreInput  `json:"input"`
	Result         ScoreResult `json:"result"`
}
