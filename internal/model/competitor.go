package model

// Competitor is a product we compare against.
type Competitor struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	LogoURL    string              `json:"logo_url,omitempty"`
	WebsiteURL string              `json:"website_url,omitempty"`
	Features   []CompetitorFeature `json:"features,omitempty"`
	Plans      []CompetitorPlan    `json:"plans,omitempty"`
}

// CompetitorPlan is a competitor's pricing mapped onto one of our plans.
// ID is our plan id.
type CompetitorPlan struct {
	ID      string   `json:"id"`
	Monthly *float64 `json:"monthly,omitempty"`
	Yearly  *float64 `json:"yearly,omitempty"`
	Price   *float64 `json:"price,omitempty"`
	Note    string   `json:"note,omitempty"`
}

// PlanType distinguishes subscription plans from one-off purchases.
type PlanType string

const (
	PlanTypeRecurring PlanType = "recurring"
	PlanTypeOneTime   PlanType = "one_time"
)

// Plan is one of our pricing plans. Price is in cents.
type Plan struct {
	ID                 string   `json:"id"`
	Price              int64    `json:"price"`
	Type               PlanType `json:"type"`
	AnnualSizeDiscount float64  `json:"annual_size_discount,omitempty"`
	ProductName        string   `json:"product_name"`
	Package            string   `json:"package,omitempty"`
}

// IsRecurring reports whether the plan bills on an interval.
func (p Plan) IsRecurring() bool {
	return p.Type == PlanTypeRecurring
}
