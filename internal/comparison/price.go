package comparison

import "github.com/sells-group/comparison-cli/internal/model"

// OurPrice converts a plan's cent price into currency units. Yearly pricing
// for recurring plans is twelve months less the annual discount percentage.
func OurPrice(p model.Plan, yearly bool) float64 {
	if p.Price <= 0 {
		return 0
	}
	if p.IsRecurring() && yearly {
		return float64(p.Price) * 12 * (1 - p.AnnualSizeDiscount/100) / 100
	}
	return float64(p.Price) / 100
}

// CompetitorPrice picks the competitor's price for our plan's billing model.
// Recurring plans use yearly or monthly; one-time plans take the first of
// monthly, yearly, price. Non-positive prices are 0.
func CompetitorPrice(cp model.CompetitorPlan, recurring, yearly bool) float64 {
	var v float64
	switch {
	case recurring && yearly:
		v = deref(cp.Yearly)
	case recurring:
		v = deref(cp.Monthly)
	default:
		v = firstPositive(cp.Monthly, cp.Yearly, cp.Price)
	}
	if v <= 0 {
		return 0
	}
	return v
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func firstPositive(vals ...*float64) float64 {
	for _, p := range vals {
		if v := deref(p); v > 0 {
			return v
		}
	}
	return 0
}
