package comparison

import (
	"math"

	"github.com/sells-group/comparison-cli/internal/model"
)

// DefaultSiteName labels our own column when the view model has no site name.
const DefaultSiteName = "You"

// PricePoint is one bar of the price comparison chart.
type PricePoint struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Ours  bool    `json:"ours,omitempty"`
}

// CoveragePoint is one bar of the feature coverage chart.
type CoveragePoint struct {
	Name           string `json:"name"`
	Coverage       int    `json:"coverage"`
	AvailableCount int    `json:"availableCount"`
	TotalCount     int    `json:"totalCount"`
	Ours           bool   `json:"ours,omitempty"`
}

func siteName(vm *model.ViewModel) string {
	if vm.SiteName == "" {
		return DefaultSiteName
	}
	return vm.SiteName
}

// PriceChart lists our price followed by every competitor whose plan matched
// ours at a positive price. It is empty when the section hides pricing or we
// have no price for the selected interval.
func PriceChart(vm *model.ViewModel, plan *model.Plan, competitors []model.Competitor, idx PlanIndex, yearly bool) []PricePoint {
	if plan == nil || !vm.Config.ShowsPricing() {
		return nil
	}
	ours := OurPrice(*plan, yearly)
	if ours <= 0 {
		return nil
	}

	points := []PricePoint{{Name: siteName(vm), Price: ours, Ours: true}}
	for _, c := range competitors {
		cp, ok := idx.Lookup(c.ID, plan.ID)
		if !ok {
			continue
		}
		if price := CompetitorPrice(cp, plan.IsRecurring(), yearly); price > 0 {
			points = append(points, PricePoint{Name: c.Name, Price: price})
		}
	}
	return points
}

// CoverageChart reports the share of features each competitor has fully available.
// We always cover our own catalog. Callers pass the whole catalog, not a
// search-filtered view of it.
func CoverageChart(vm *model.ViewModel, competitors []model.Competitor, features []model.Feature, idx FeatureIndex) []CoveragePoint {
	if len(features) == 0 || !vm.Config.ShowsFeatures() {
		return nil
	}
	total := len(features)
	points := []CoveragePoint{{
		Name:           siteName(vm),
		Coverage:       100,
		AvailableCount: total,
		TotalCount:     total,
		Ours:           true,
	}}
	for _, c := range competitors {
		available := 0
		for _, f := range features {
			if idx.Status(c.ID, f) == model.StatusAvailable {
				available++
			}
		}
		points = append(points, CoveragePoint{
			Name:           c.Name,
			Coverage:       int(math.Round(float64(available) / float64(total) * 100)),
			AvailableCount: available,
			TotalCount:     total,
		})
	}
	return points
}
