package audit

import (
	"fmt"

	"github.com/ppiankov/azspectre/internal/pricing"
	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// DetectEmpty flags every plan with zero attached applications and estimates
// its recurring cost. Output preserves input plan order; presentation sorting
// belongs to the aggregator. A plan that cannot be costed is reported as a
// non-fatal error and skipped without blocking its siblings.
func DetectEmpty(plans []HostingPlan, occupancy map[string]Occupancy, table *pricing.Table) ([]EmptyPlanFinding, []string) {
	var findings []EmptyPlanFinding
	var errs []string

	for _, plan := range plans {
		if occupancy[plan.ID].Total != 0 {
			continue
		}

		if plan.SKU.Tier == "" && plan.SKU.Size == "" {
			errs = append(errs, fmt.Sprintf("plan %s: no SKU information, cannot estimate cost", plan.Name))
			continue
		}

		monthly := table.EstimateMonthly(string(plan.SKU.Tier), plan.SKU.Size, plan.SKU.Capacity)
		findings = append(findings, EmptyPlanFinding{
			Plan: plan,
			Cost: CostEstimate{
				MonthlyUSD: monthly,
				AnnualUSD:  monthly.Mul(twelve),
			},
		})
	}

	return findings, errs
}
