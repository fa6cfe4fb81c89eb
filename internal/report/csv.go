package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ppiankov/azspectre/internal/audit"
)

// CSVReporter writes one row per application followed by one row per empty
// plan, each section with its own header.
type CSVReporter struct {
	Writer io.Writer
}

// Generate writes the CSV report.
func (r *CSVReporter) Generate(data Data) error {
	w := csv.NewWriter(r.Writer)

	appHeader := []string{
		"subscription", "resource_group", "name", "kind", "os", "region",
		"state", "plan", "https_only", "min_tls", "ftps", "identity",
		"owner", "risk_issues", "risk_score",
	}
	if err := w.Write(appHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, app := range data.Report.Applications {
		appIssues, score := audit.Score(app)
		issues := strings.Join(appIssues, "; ")
		row := []string{
			app.Subscription, app.ResourceGroup, app.Name, app.Kind, app.OS, app.Region,
			string(app.State), app.PlanRef, strconv.FormatBool(app.HTTPSOnly),
			app.MinTLSVersion, string(app.FTPS), string(app.Identity),
			app.Owner, issues, strconv.Itoa(score),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	planHeader := []string{
		"subscription", "resource_group", "plan", "region", "tier", "size",
		"capacity", "monthly_usd", "annual_usd",
	}
	if err := w.Write(planHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, f := range data.Report.EmptyPlans {
		row := []string{
			f.Plan.Subscription, f.Plan.ResourceGroup, f.Plan.Name, f.Plan.Region,
			string(f.Plan.SKU.Tier), f.Plan.SKU.Size,
			strconv.Itoa(int(f.Plan.SKU.Capacity)),
			f.Cost.MonthlyUSD.StringFixed(2), f.Cost.AnnualUSD.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}
	return nil
}

var _ Reporter = (*CSVReporter)(nil)
