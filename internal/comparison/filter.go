package comparison

import (
	"strings"

	"github.com/sells-group/comparison-cli/internal/model"
)

// FilterOptions narrows the feature list shown in a comparison.
type FilterOptions struct {
	// Query matches name or description, case-insensitively. Blank matches all.
	Query string
	// DifferencesOnly keeps features some competitor does not fully offer.
	DifferencesOnly bool
	// DisplayOnProductOnly keeps features flagged for the product card.
	DisplayOnProductOnly bool
}

// FilterFeatures returns the features that pass every enabled filter, in input order.
// The input slice is not modified.
func FilterFeatures(features []model.Feature, opts FilterOptions, competitors []model.Competitor, idx FeatureIndex) []model.Feature {
	query := strings.ToLower(strings.TrimSpace(opts.Query))
	out := make([]model.Feature, 0, len(features))
	for _, f := range features {
		if opts.DisplayOnProductOnly && (f.DisplayOnProductCard == nil || !*f.DisplayOnProductCard) {
			continue
		}
		if query != "" && !matchesQuery(f, query) {
			continue
		}
		if opts.DifferencesOnly && !differs(f, competitors, idx) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func matchesQuery(f model.Feature, query string) bool {
	return strings.Contains(strings.ToLower(f.Name), query) ||
		strings.Contains(strings.ToLower(f.Description), query)
}

// differs reports whether any competitor lacks full availability. We offer
// every feature in our own catalog.
func differs(f model.Feature, competitors []model.Competitor, idx FeatureIndex) bool {
	for _, c := range competitors {
		if idx.Status(c.ID, f) != model.StatusAvailable {
			return true
		}
	}
	return false
}
