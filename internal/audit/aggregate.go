package audit

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTopN bounds the attention and waste lists in the final report.
const DefaultTopN = 10

// AggregateOptions controls report assembly.
type AggregateOptions struct {
	TopN     int
	Duration time.Duration
}

// Aggregate merges per-subscription partial results into the final report.
// Partials are ordered by subscription ID before merging, so the same set of
// partials produces an identical report regardless of worker completion
// order. Empty-plan cost totals use exact decimal addition.
func Aggregate(partials []PartialResult, opts AggregateOptions) *Report {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	ordered := make([]PartialResult, len(partials))
	copy(ordered, partials)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Subscription.ID < ordered[j].Subscription.ID
	})

	report := &Report{
		GeneratedAt:        time.Now().UTC(),
		Duration:           opts.Duration,
		Subscriptions:      len(ordered),
		EmptyPlanMonthly:   decimal.Zero,
		EmptyPlanAnnual:    decimal.Zero,
		ByState:            make(map[string]int),
		ByOS:               make(map[string]int),
		ByTLS:              make(map[string]int),
		ByIdentity:         make(map[string]int),
		ByKind:             make(map[string]int),
		AppsBySubscription: make(map[string]int),
	}

	var risks []RiskFinding
	for _, partial := range ordered {
		for _, app := range partial.Apps {
			report.TotalApps++
			report.ByState[string(app.State)]++
			report.ByOS[app.OS]++
			report.ByIdentity[string(app.Identity)]++
			report.ByKind[app.Kind]++
			report.AppsBySubscription[partial.Subscription.Name]++

			tls := app.MinTLSVersion
			if tls == "" {
				tls = "Unknown"
			}
			report.ByTLS[tls]++

			if app.Owner == "" {
				report.MissingOwner++
			}
		}

		report.TotalPlans += len(partial.Plans)

		for _, finding := range partial.EmptyPlans {
			report.TotalEmptyPlans++
			report.EmptyPlanMonthly = report.EmptyPlanMonthly.Add(finding.Cost.MonthlyUSD)
			report.EmptyPlanAnnual = report.EmptyPlanAnnual.Add(finding.Cost.AnnualUSD)
		}

		report.Applications = append(report.Applications, partial.Apps...)
		report.EmptyPlans = append(report.EmptyPlans, partial.EmptyPlans...)
		risks = append(risks, partial.Risks...)
		report.Errors = append(report.Errors, partial.Errors...)
	}

	// Stable sorts keep first-seen order as the tie-break.
	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].Score > risks[j].Score
	})
	if len(risks) > topN {
		risks = risks[:topN]
	}
	report.TopRisks = risks

	topEmpty := make([]EmptyPlanFinding, len(report.EmptyPlans))
	copy(topEmpty, report.EmptyPlans)
	sort.SliceStable(topEmpty, func(i, j int) bool {
		return topEmpty[i].Cost.MonthlyUSD.GreaterThan(topEmpty[j].Cost.MonthlyUSD)
	})
	if len(topEmpty) > topN {
		topEmpty = topEmpty[:topN]
	}
	report.TopEmptyPlans = topEmpty

	return report
}
