package model

// Mode selects which tables a comparison section shows.
type Mode string

const (
	ModePricing  Mode = "pricing"
	ModeFeatures Mode = "features"
	ModeBoth     Mode = "both"
)

// ViewModel is the snapshot the data layer hands to a comparison pass.
type ViewModel struct {
	OurFeatures           []Feature     `json:"ourFeatures"`
	Competitors           []Competitor  `json:"competitors"`
	OurPricingPlans       []Plan        `json:"ourPricingPlans"`
	AvailablePricingPlans []Plan        `json:"availablePricingPlans,omitempty"`
	AvailableCompetitors  []Competitor  `json:"availableCompetitors,omitempty"`
	Config                SectionConfig `json:"config"`
	Currency              string        `json:"currency,omitempty"`
	SiteName              string        `json:"siteName,omitempty"`
	OrganizationLogo      string        `json:"organizationLogo,omitempty"`
}

// SectionConfig is the per-section comparison configuration.
type SectionConfig struct {
	Mode     Mode           `json:"mode,omitempty"`
	Scoring  ScoringConfig  `json:"scoring"`
	UI       UIConfig       `json:"ui"`
	Features FeaturesConfig `json:"features"`
	Pricing  PricingConfig  `json:"pricing"`
}

// EffectiveMode returns the mode, defaulting to both.
func (c SectionConfig) EffectiveMode() Mode {
	switch c.Mode {
	case ModePricing, ModeFeatures:
		return c.Mode
	default:
		return ModeBoth
	}
}

// ShowsPricing reports whether the pricing table is part of the section.
func (c SectionConfig) ShowsPricing() bool {
	m := c.EffectiveMode()
	return m == ModePricing || m == ModeBoth
}

// ShowsFeatures reports whether the feature table is part of the section.
func (c SectionConfig) ShowsFeatures() bool {
	m := c.EffectiveMode()
	return m == ModeFeatures || m == ModeBoth
}

// ScoringConfig toggles competitor scoring and carries optional weights.
type ScoringConfig struct {
	Enabled bool          `json:"enabled"`
	Weights *ScoreWeights `json:"weights,omitempty"`
}

// UIConfig holds display toggles. Nil pointers mean "use the default".
type UIConfig struct {
	ShowTitle          *bool  `json:"show_title,omitempty"`
	ShowDescription    *bool  `json:"show_description,omitempty"`
	ShowSearch         *bool  `json:"show_search,omitempty"`
	ShowVisuals        *bool  `json:"show_visuals,omitempty"`
	ShowDisclaimer     bool   `json:"show_disclaimer,omitempty"`
	DisclaimerText     string `json:"disclaimer_text,omitempty"`
	HighlightOurs      bool   `json:"highlight_ours,omitempty"`
	AllowPlanSelection *bool  `json:"allow_plan_selection,omitempty"`
	ShowScores         bool   `json:"show_scores,omitempty"`
}

// FeaturesConfig holds feature-table options.
type FeaturesConfig struct {
	Filter FeatureFilter `json:"filter"`
}

// FeatureFilter restricts which features are listed.
type FeatureFilter struct {
	DisplayOnProduct bool `json:"display_on_product,omitempty"`
}

// PricingConfig holds pricing-table options.
type PricingConfig struct {
	ShowInterval bool `json:"show_interval,omitempty"`
}
