package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
)

// TextReporter renders a terminal-friendly summary.
type TextReporter struct {
	Writer io.Writer
}

// Generate writes the text report.
func (r *TextReporter) Generate(data Data) error {
	rep := data.Report
	w := r.Writer

	fmt.Fprintf(w, "%s %s — App Service audit\n", data.Tool, data.Version)
	fmt.Fprintf(w, "Generated %s in %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 UTC"), rep.Duration.Round(10*time.Millisecond))

	fmt.Fprintln(w, "Summary")
	fmt.Fprintf(w, "  Subscriptions audited:  %d\n", rep.Subscriptions)
	fmt.Fprintf(w, "  Applications:           %d\n", rep.TotalApps)
	fmt.Fprintf(w, "  Hosting plans:          %d\n", rep.TotalPlans)
	fmt.Fprintf(w, "  Empty plans:            %d\n", rep.TotalEmptyPlans)
	fmt.Fprintf(w, "  Empty-plan waste:       $%s/month ($%s/year)\n", rep.EmptyPlanMonthly.StringFixed(2), rep.EmptyPlanAnnual.StringFixed(2))
	fmt.Fprintf(w, "  Missing owner tag:      %d\n\n", rep.MissingOwner)

	writeDistribution(w, "By state", rep.ByState)
	writeDistribution(w, "By OS", rep.ByOS)
	writeDistribution(w, "By minimum TLS", rep.ByTLS)
	writeDistribution(w, "By managed identity", rep.ByIdentity)
	writeDistribution(w, "By subscription", rep.AppsBySubscription)

	if len(rep.TopRisks) == 0 {
		fmt.Fprintln(w, "No risk findings.")
	} else {
		fmt.Fprintf(w, "Top %d risk findings\n", len(rep.TopRisks))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  SCORE\tAPP\tSUBSCRIPTION\tISSUES")
		for _, f := range rep.TopRisks {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", f.Score, f.App.Name, f.App.Subscription, strings.Join(f.Issues, ", "))
		}
		tw.Flush()
	}
	fmt.Fprintln(w)

	if len(rep.TopEmptyPlans) == 0 {
		fmt.Fprintln(w, "No empty hosting plans.")
	} else {
		fmt.Fprintf(w, "Top %d empty plans by monthly cost\n", len(rep.TopEmptyPlans))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  MONTHLY\tANNUAL\tPLAN\tSKU\tSUBSCRIPTION")
		for _, f := range rep.TopEmptyPlans {
			fmt.Fprintf(tw, "  $%s\t$%s\t%s\t%s/%s x%d\t%s\n",
				f.Cost.MonthlyUSD.StringFixed(2), f.Cost.AnnualUSD.StringFixed(2),
				f.Plan.Name, f.Plan.SKU.Tier, f.Plan.SKU.Size, f.Plan.SKU.Capacity, f.Plan.Subscription)
		}
		tw.Flush()
	}

	if len(rep.Errors) > 0 {
		fmt.Fprintf(w, "\n%d non-fatal errors:\n", len(rep.Errors))
		for _, e := range rep.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}

	return nil
}

func writeDistribution(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(w, title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-24s%d\n", k, counts[k])
	}
	fmt.Fprintln(w)
}

var _ Reporter = (*TextReporter)(nil)
var _ Reporter = (*JSONReporter)(nil)
