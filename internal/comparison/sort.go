package comparison

import (
	"math"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// OrderValue returns the explicit order, or +Inf so that missing orders sort last.
func OrderValue(order *float64) float64 {
	if order == nil || math.IsNaN(*order) {
		return math.Inf(1)
	}
	return *order
}

// ModuleSortKey is the module feature's own order if present, else the
// smallest order among its children, else +Inf.
func ModuleSortKey(m *Module) float64 {
	if m.Feature != nil && m.Feature.Order != nil {
		return OrderValue(m.Feature.Order)
	}
	key := math.Inf(1)
	for _, f := range m.Features {
		key = math.Min(key, OrderValue(f.Order))
	}
	return key
}

// HubSortKey is the smallest module sort key in the hub, else the hub
// feature's own order, else +Inf.
func HubSortKey(h *Hub) float64 {
	key := math.Inf(1)
	for _, m := range h.Modules {
		key = math.Min(key, ModuleSortKey(m))
	}
	if !math.IsInf(key, 1) {
		return key
	}
	if h.Feature != nil {
		return OrderValue(h.Feature.Order)
	}
	return key
}

// collator is not safe for concurrent use; guard it.
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English)
)

// CompareNames orders names the way a locale-aware string compare would.
func CompareNames(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// compareKeyed orders by numeric key first, then by name.
func compareKeyed(ka, kb float64, na, nb string) int {
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	}
	return CompareNames(na, nb)
}
