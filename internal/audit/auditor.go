package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ppiankov/azspectre/internal/pricing"
)

// ExcludeConfig holds resource exclusion rules applied during normalization.
// Tag entries with an empty value match any value for that key.
type ExcludeConfig struct {
	ResourceIDs map[string]bool
	Tags        map[string]string
}

func (e ExcludeConfig) matches(id string, tags map[string]string) bool {
	if e.ResourceIDs != nil && e.ResourceIDs[id] {
		return true
	}
	for key, want := range e.Tags {
		if got, ok := tags[key]; ok && (want == "" || want == got) {
			return true
		}
	}
	return false
}

// Options controls per-subscription audit behavior.
type Options struct {
	SkipEmptyPlans bool
	OwnerTagKeys   []string
	Pricing        *pricing.Table
	Exclude        ExcludeConfig
}

// Audit runs the full per-subscription pipeline: normalize raw records,
// correlate applications to plans, detect empty plans, and score every
// application. Malformed records are skipped with a recorded error; nothing
// here aborts the subscription.
func Audit(ctx context.Context, sub Subscription, inv RawInventory, opts Options) PartialResult {
	result := PartialResult{Subscription: sub}
	result.Errors = append(result.Errors, inv.Errors...)

	table := opts.Pricing
	if table == nil {
		table = pricing.Default()
	}

	var funcApps, webApps []ComputeApplication
	normalize := func(raws []RawSite, isFunction bool) []ComputeApplication {
		var apps []ComputeApplication
		for _, raw := range raws {
			if opts.Exclude.matches(raw.ID, raw.Tags) {
				slog.Debug("Excluding site", "subscription", sub.Name, "site", raw.Name)
				continue
			}
			app, err := normalizeSite(sub, raw, opts.OwnerTagKeys, isFunction)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", sub.Name, err))
				continue
			}
			apps = append(apps, app)
		}
		return apps
	}
	funcApps = normalize(inv.FunctionApps, true)
	webApps = normalize(inv.WebApps, false)

	var plans []HostingPlan
	for _, raw := range inv.Plans {
		if opts.Exclude.matches(raw.ID, nil) {
			slog.Debug("Excluding plan", "subscription", sub.Name, "plan", raw.Name)
			continue
		}
		plan, err := normalizePlan(sub, raw)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", sub.Name, err))
			continue
		}
		plans = append(plans, plan)
	}

	result.Apps = append(funcApps, webApps...)
	result.Plans = plans
	result.Occupancy = Correlate(plans, funcApps, webApps)

	if !opts.SkipEmptyPlans {
		findings, errs := DetectEmpty(plans, result.Occupancy, table)
		result.EmptyPlans = findings
		for _, e := range errs {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", sub.Name, e))
		}
	}

	result.Risks = ScoreAll(result.Apps)

	if err := ctx.Err(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: audit interrupted: %v", sub.Name, err))
	}

	slog.Debug("Subscription audited",
		"subscription", sub.Name,
		"apps", len(result.Apps),
		"plans", len(result.Plans),
		"empty_plans", len(result.EmptyPlans),
		"risks", len(result.Risks),
		"errors", len(result.Errors))

	return result
}
