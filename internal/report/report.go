// Package report assembles a full comparison pass: plan and competitor
// selection, feature filtering, the hub tree, scorecards and charts.
package report

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/comparison-cli/internal/comparison"
	"github.com/sells-group/comparison-cli/internal/model"
	"github.com/sells-group/comparison-cli/internal/scorer"
)

// fullTransparency is the transparency input when a competitor publishes a
// price for the plan being compared.
const fullTransparency = 100

// Options are the user-controlled inputs of one comparison pass.
type Options struct {
	PlanID          string   `json:"plan_id,omitempty"`
	CompetitorIDs   []string `json:"competitor_ids,omitempty"`
	Query           string   `json:"query,omitempty"`
	DifferencesOnly bool     `json:"differences_only,omitempty"`
	Yearly          bool     `json:"yearly,omitempty"`
}

// Report is the computed comparison for one section.
type Report struct {
	SiteName      string                     `json:"site_name"`
	Currency      string                     `json:"currency,omitempty"`
	Mode          model.Mode                 `json:"mode"`
	Plan          *model.Plan                `json:"plan,omitempty"`
	Yearly        bool                       `json:"yearly"`
	Competitors   []model.Competitor         `json:"competitors"`
	Features      []model.Feature            `json:"features"`
	Hierarchy     *comparison.Hierarchy      `json:"hierarchy"`
	Scorecards    []model.Scorecard          `json:"scorecards,omitempty"`
	PriceChart    []comparison.PricePoint    `json:"price_chart,omitempty"`
	CoverageChart []comparison.CoveragePoint `json:"coverage_chart,omitempty"`
	Metrics       comparison.Metrics         `json:"metrics"`

	index comparison.FeatureIndex
}

// Cell returns the competitor's record for one of our features.
func (r *Report) Cell(competitorID string, f model.Feature) (model.CompetitorFeature, bool) {
	return r.index.Lookup(competitorID, f.PlanID, f.ID)
}

// Scorecard returns the scorecard for a competitor, or nil when scoring is off.
func (r *Report) Scorecard(competitorID string) *model.Scorecard {
	for i := range r.Scorecards {
		if r.Scorecards[i].CompetitorID == competitorID {
			return &r.Scorecards[i]
		}
	}
	return nil
}

// Run captures the scorecards of r as a persistable run for sectionID.
func (r *Report) Run(sectionID string) *model.Run {
	run := &model.Run{
		SectionID:     sectionID,
		CompetitorIDs: make([]string, len(r.Competitors)),
		Scorecards:    slices.Clone(r.Scorecards),
	}
	if r.Plan != nil {
		run.PlanID = r.Plan.ID
	}
	for i, c := range r.Competitors {
		run.CompetitorIDs[i] = c.ID
	}
	return run
}

// Builder computes reports. Weights are used when a section enables scoring
// without configuring its own.
type Builder struct {
	weights model.ScoreWeights
}

// NewBuilder creates a Builder. Nil weights use scorer.DefaultWeights.
func NewBuilder(weights *model.ScoreWeights) *Builder {
	w := scorer.DefaultWeights()
	if weights != nil {
		w = *weights
	}
	return &Builder{weights: w}
}

// Build runs one comparison pass over a snapshot. It does not modify vm.
func (b *Builder) Build(vm *model.ViewModel, opts Options) *Report {
	start := time.Now()

	plan := selectPlan(vm.OurPricingPlans, opts.PlanID)
	competitors := selectCompetitors(vm.Competitors, opts.CompetitorIDs)
	featureIdx := comparison.BuildFeatureIndex(competitors)
	planIdx := comparison.BuildPlanIndex(competitors)

	catalog := comparison.FilterFeatures(vm.OurFeatures, comparison.FilterOptions{
		DisplayOnProductOnly: vm.Config.Features.Filter.DisplayOnProduct,
	}, competitors, featureIdx)
	visible := comparison.FilterFeatures(catalog, comparison.FilterOptions{
		Query:           opts.Query,
		DifferencesOnly: opts.DifferencesOnly,
	}, competitors, featureIdx)

	r := &Report{
		SiteName:    vm.SiteName,
		Currency:    vm.Currency,
		Mode:        vm.Config.EffectiveMode(),
		Plan:        plan,
		Yearly:      opts.Yearly,
		Competitors: competitors,
		Features:    visible,
		Hierarchy:   comparison.BuildHierarchy(visible, competitors, featureIdx),
		index:       featureIdx,
	}
	if r.SiteName == "" {
		r.SiteName = comparison.DefaultSiteName
	}

	if vm.Config.Scoring.Enabled {
		weights := &b.weights
		if vm.Config.Scoring.Weights != nil {
			weights = vm.Config.Scoring.Weights
		}
		r.Scorecards = scoreAll(catalog, competitors, plan, featureIdx, planIdx, weights, opts.Yearly)
	}

	r.PriceChart = comparison.PriceChart(vm, plan, competitors, planIdx, opts.Yearly)
	r.CoverageChart = comparison.CoverageChart(vm, competitors, catalog, featureIdx)
	r.Metrics = comparison.ValueMetrics(catalog, competitors, featureIdx, r.PriceChart)

	zap.L().Debug("report: built",
		zap.Int("features", len(visible)),
		zap.Int("hubs", len(r.Hierarchy.Hubs)),
		zap.Int("competitors", len(competitors)),
		zap.Int("scorecards", len(r.Scorecards)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return r
}

// scoreAll scores every competitor over the full catalog, so search and
// difference filters never move a score.
func scoreAll(
	catalog []model.Feature,
	competitors []model.Competitor,
	plan *model.Plan,
	featureIdx comparison.FeatureIndex,
	planIdx comparison.PlanIndex,
	weights *model.ScoreWeights,
	yearly bool,
) []model.Scorecard {
	var ours float64
	if plan != nil {
		ours = comparison.OurPrice(*plan, yearly)
	}

	cards := make([]model.Scorecard, 0, len(competitors))
	for _, c := range competitors {
		in := scorer.Tally(catalog, c.ID, featureIdx)
		in.OurPrice = ours
		if plan != nil {
			if cp, ok := planIdx.Lookup(c.ID, plan.ID); ok {
				in.CompetitorPrice = comparison.CompetitorPrice(cp, plan.IsRecurring(), yearly)
			}
		}
		if in.CompetitorPrice > 0 {
			in.PricingTransparency = fullTransparency
		}
		cards = append(cards, model.Scorecard{
			CompetitorID:   c.ID,
			CompetitorName: c.Name,
			Input:          in,
			Result:         scorer.Score(in, weights),
		})
	}
	return cards
}

// selectPlan returns the plan with the given id, else the first plan, else nil.
func selectPlan(plans []model.Plan, id string) *model.Plan {
	if len(plans) == 0 {
		return nil
	}
	if id != "" {
		if i := slices.IndexFunc(plans, func(p model.Plan) bool { return p.ID == id }); i >= 0 {
			p := plans[i]
			return &p
		}
	}
	p := plans[0]
	return &p
}

// selectCompetitors returns the competitors named in ids, in ids order.
// Unknown and repeated ids are skipped. No ids selects everyone.
func selectCompetitors(all []model.Competitor, ids []string) []model.Competitor {
	if len(ids) == 0 {
		return slices.Clone(all)
	}
	byID := make(map[string]model.Competitor, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	out := make([]model.Competitor, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, c)
	}
	return out
}
