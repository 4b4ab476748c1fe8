package comparison

import (
	"slices"

	"github.com/sells-group/comparison-cli/internal/model"
)

// DefaultHub collects features that carry no hub label.
const DefaultHub = "General"

// Hub is a top-level feature group. Feature is the optional record that
// represents the hub header itself.
type Hub struct {
	Name    string         `json:"name"`
	Feature *model.Feature `json:"feature,omitempty"`
	Modules []*Module      `json:"modules"`
}

// Module is a second-level group within a hub. Feature is the optional
// record that represents the module row itself.
type Module struct {
	Name     string          `json:"name"`
	Feature  *model.Feature  `json:"feature,omitempty"`
	Features []model.Feature `json:"features"`
}

// Hierarchy is the sorted tree plus the pre-computed aggregated statuses.
type Hierarchy struct {
	Hubs     []*Hub                  `json:"hubs"`
	Statuses map[string]model.Status `json:"statuses"`
}

// StatusKey is the aggregated status cache key for a (hub, module, competitor) triple.
func StatusKey(hub, module, competitorID string) string {
	return hub + "|" + module + "|" + competitorID
}

// ModuleKey identifies a module within the tree.
func ModuleKey(hub, module string) string {
	return hub + "|" + module
}

// StatusFor returns the aggregated status, unavailable when the triple was never computed.
func (h *Hierarchy) StatusFor(hub, module, competitorID string) model.Status {
	if s, ok := h.Statuses[StatusKey(hub, module, competitorID)]; ok {
		return s
	}
	return model.StatusUnavailable
}

// HubNames returns hub names in sorted order.
func (h *Hierarchy) HubNames() []string {
	names := make([]string, len(h.Hubs))
	for i, hub := range h.Hubs {
		names[i] = hub.Name
	}
	return names
}

// ModuleCount returns the number of modules across all hubs.
func (h *Hierarchy) ModuleCount() int {
	n := 0
	for _, hub := range h.Hubs {
		n += len(hub.Modules)
	}
	return n
}

// BuildHierarchy groups, sorts and aggregates in one pass. Statuses holds one
// entry per (hub, module, competitor).
func BuildHierarchy(features []model.Feature, competitors []model.Competitor, idx FeatureIndex) *Hierarchy {
	hubs := GroupFeatures(features)
	SortHubs(hubs)
	return &Hierarchy{
		Hubs:     hubs,
		Statuses: BuildStatusCache(hubs, competitors, idx),
	}
}

// GroupFeatures buckets features into hubs and modules in first-seen order.
//
//   - no hub label: DefaultHub
//   - hub label, no module, name equal to the hub: the hub's own record
//   - module label, name equal to the module: the module's own record
//   - module label otherwise: a child of that module
//   - no module: a module of its own, with the feature as its record and no children
func GroupFeatures(features []model.Feature) []*Hub {
	var hubs []*Hub
	hubByName := make(map[string]*Hub)
	moduleByKey := make(map[string]*Module)

	hubFor := func(name string) *Hub {
		if h, ok := hubByName[name]; ok {
			return h
		}
		h := &Hub{Name: name}
		hubByName[name] = h
		hubs = append(hubs, h)
		return h
	}
	moduleFor := func(h *Hub, name string) *Module {
		key := ModuleKey(h.Name, name)
		if m, ok := moduleByKey[key]; ok {
			return m
		}
		m := &Module{Name: name}
		moduleByKey[key] = m
		h.Modules = append(h.Modules, m)
		return m
	}

	for i := range features {
		f := features[i]
		hubName := f.Hub
		if hubName == "" {
			hubName = DefaultHub
		}
		h := hubFor(hubName)

		if f.Module == "" && f.Hub != "" && f.Name == f.Hub && h.Feature == nil {
			h.Feature = &f
			continue
		}

		moduleName := f.Module
		if moduleName == "" {
			moduleName = f.Name
		}
		m := moduleFor(h, moduleName)
		if f.Name == moduleName && m.Feature == nil {
			m.Feature = &f
			continue
		}
		m.Features = append(m.Features, f)
	}
	return hubs
}

// SortHubs sorts hubs, their modules and each module's features in place.
func SortHubs(hubs []*Hub) {
	for _, h := range hubs {
		for _, m := range h.Modules {
			SortFeatures(m.Features)
		}
		slices.SortStableFunc(h.Modules, func(a, b *Module) int {
			return compareKeyed(ModuleSortKey(a), ModuleSortKey(b), a.Name, b.Name)
		})
	}
	slices.SortStableFunc(hubs, func(a, b *Hub) int {
		return compareKeyed(HubSortKey(a), HubSortKey(b), a.Name, b.Name)
	})
}

// SortFeatures orders features by explicit order, then name.
func SortFeatures(features []model.Feature) {
	slices.SortStableFunc(features, func(a, b model.Feature) int {
		return compareKeyed(OrderValue(a.Order), OrderValue(b.Order), a.Name, b.Name)
	})
}

// AggregateStatus rolls a module's child statuses up for one competitor.
// A module without children reports its own record's status (available or
// partial, anything else unavailable). With children: all available is
// available, any available or partial child is partial, otherwise unavailable.
func AggregateStatus(m *Module, competitorID string, idx FeatureIndex) model.Status {
	if len(m.Features) == 0 {
		if m.Feature == nil {
			return model.StatusUnavailable
		}
		switch idx.Status(competitorID, *m.Feature) {
		case model.StatusAvailable:
			return model.StatusAvailable
		case model.StatusPartial:
			return model.StatusPartial
		default:
			return model.StatusUnavailable
		}
	}

	var available, partial int
	for _, f := range m.Features {
		switch idx.Status(competitorID, f) {
		case model.StatusAvailable:
			available++
		case model.StatusPartial:
			partial++
		}
	}

	switch {
	case available == len(m.Features):
		return model.StatusAvailable
	case available > 0 || partial > 0:
		return model.StatusPartial
	default:
		return model.StatusUnavailable
	}
}

// BuildStatusCache computes AggregateStatus for every (hub, module, competitor).
func BuildStatusCache(hubs []*Hub, competitors []model.Competitor, idx FeatureIndex) map[string]model.Status {
	n := 0
	for _, h := range hubs {
		n += len(h.Modules)
	}
	cache := make(map[string]model.Status, n*len(competitors))
	for _, h := range hubs {
		for _, m := range h.Modules {
			for _, c := range competitors {
				cache[StatusKey(h.Name, m.Name, c.ID)] = AggregateStatus(m, c.ID, idx)
			}
		}
	}
	return cache
}
