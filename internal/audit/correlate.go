package audit

import "strings"

// planKey scopes plan-name matching per resource group. Resource-group names
// compare case-insensitively per ARM semantics; plan names stay case-sensitive.
type planKey struct {
	rg   string
	name string
}

// Correlate builds the applications-per-plan occupancy mapping, keyed by plan
// ID. An application attaches to a plan when its plan reference, reduced to
// the trailing path segment, equals the plan's name — scoped to the plan's
// resource group when the reference carries one. Applications without a plan
// reference never contribute to occupancy. Plans are indexed up front, so the
// pass is linear in plans plus apps.
func Correlate(plans []HostingPlan, funcApps, webApps []ComputeApplication) map[string]Occupancy {
	occupancy := make(map[string]Occupancy, len(plans))
	byKey := make(map[planKey]string, len(plans))
	byName := make(map[string][]string, len(plans))

	for _, p := range plans {
		occupancy[p.ID] = Occupancy{}
		byKey[planKey{rg: strings.ToLower(p.ResourceGroup), name: p.Name}] = p.ID
		byName[p.Name] = append(byName[p.Name], p.ID)
	}

	attach := func(app ComputeApplication, isFunction bool) {
		if app.PlanRef == "" {
			return
		}
		name := lastSegment(app.PlanRef)

		var planID string
		if rg := ResourceGroupFromID(app.PlanRef); rg != "" {
			planID = byKey[planKey{rg: strings.ToLower(rg), name: name}]
		} else if ids := byName[name]; len(ids) == 1 {
			// A bare-name reference is only attached when unambiguous;
			// two same-named plans in different resource groups must not
			// cross-attribute occupancy.
			planID = ids[0]
		}
		if planID == "" {
			return
		}

		o := occupancy[planID]
		if isFunction {
			o.FunctionApps++
		} else {
			o.WebApps++
		}
		o.Total++
		occupancy[planID] = o
	}

	for _, app := range funcApps {
		attach(app, true)
	}
	for _, app := range webApps {
		attach(app, false)
	}

	return occupancy
}
