package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ppiankov/azspectre/internal/audit"
	"github.com/ppiankov/azspectre/internal/azure"
	"github.com/ppiankov/azspectre/internal/pricing"
	"github.com/ppiankov/azspectre/internal/report"
	"github.com/spf13/cobra"
)

var auditFlags struct {
	subscriptions  []string
	concurrency    int
	topN           int
	skipEmptyPlans bool
	format         string
	outputFile     string
	pricingFile    string
	timeout        time.Duration
	subTimeout     time.Duration
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit App Service plans and apps across subscriptions",
	Long: `Audit every visible subscription for empty hosting plans (with estimated
monthly waste in USD) and applications with technical-risk findings.`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringSliceVar(&auditFlags.subscriptions, "subscriptions", nil, "Comma-separated subscription ID filter")
	auditCmd.Flags().IntVar(&auditFlags.concurrency, "concurrency", 0, "Max parallel subscription audits (default: min(subscriptions, 8))")
	auditCmd.Flags().IntVar(&auditFlags.topN, "top", audit.DefaultTopN, "Size of the top-risk and top-waste lists")
	auditCmd.Flags().BoolVar(&auditFlags.skipEmptyPlans, "skip-empty-plans", false, "Skip empty-plan detection and costing")
	auditCmd.Flags().StringVar(&auditFlags.format, "format", "text", "Output format: text, json, csv")
	auditCmd.Flags().StringVarP(&auditFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	auditCmd.Flags().StringVar(&auditFlags.pricingFile, "pricing-file", "", "Pricing table override (JSON)")
	auditCmd.Flags().DurationVar(&auditFlags.timeout, "timeout", 15*time.Minute, "Overall audit timeout")
	auditCmd.Flags().DurationVar(&auditFlags.subTimeout, "sub-timeout", 2*time.Minute, "Per-subscription timeout")
}

func runAudit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if auditFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, auditFlags.timeout)
		defer cancel()
	}

	applyConfigDefaults()

	tenantID := tenant
	if tenantID == "" {
		tenantID = cfg.TenantID
	}

	client, err := azure.NewClient(tenantID)
	if err != nil {
		return enhanceError("initialize Azure client", err)
	}

	subs, err := client.ListSubscriptions(ctx, auditFlags.subscriptions)
	if err != nil {
		return enhanceError("list subscriptions", err)
	}
	if len(subs) == 0 {
		return fmt.Errorf("no subscriptions visible to this credential; check RBAC assignments or --subscriptions filter")
	}
	slog.Info("Auditing subscriptions", "count", len(subs))

	table := pricing.Default()
	if auditFlags.pricingFile != "" {
		table, err = pricing.LoadFile(auditFlags.pricingFile)
		if err != nil {
			return enhanceError("load pricing table", err)
		}
	}

	opts := audit.Options{
		SkipEmptyPlans: auditFlags.skipEmptyPlans,
		OwnerTagKeys:   cfg.OwnerTagKeys,
		Pricing:        table,
		Exclude: audit.ExcludeConfig{
			ResourceIDs: cfg.Exclude.ParseResourceIDs(),
			Tags:        cfg.Exclude.ParseTags(),
		},
	}

	start := time.Now()
	runner := audit.NewRunner(client, auditFlags.concurrency, auditFlags.subTimeout, opts)
	partials := runner.Run(ctx, subs)

	rep := audit.Aggregate(partials, audit.AggregateOptions{
		TopN:     auditFlags.topN,
		Duration: time.Since(start),
	})

	if len(rep.Errors) > 0 {
		slog.Warn("Audit completed with non-fatal errors", "count", len(rep.Errors))
	}

	reporter, err := selectReporter(auditFlags.format, auditFlags.outputFile)
	if err != nil {
		return err
	}
	return reporter.Generate(report.NewData("azspectre", version, rep))
}

func applyConfigDefaults() {
	if auditFlags.format == "text" && cfg.Format != "" {
		auditFlags.format = cfg.Format
	}
	if len(auditFlags.subscriptions) == 0 && len(cfg.Subscriptions) > 0 {
		auditFlags.subscriptions = cfg.Subscriptions
	}
	if auditFlags.concurrency == 0 && cfg.Concurrency > 0 {
		auditFlags.concurrency = cfg.Concurrency
	}
	if auditFlags.topN == audit.DefaultTopN && cfg.TopN > 0 {
		auditFlags.topN = cfg.TopN
	}
	if !auditFlags.skipEmptyPlans && cfg.SkipEmptyPlans {
		auditFlags.skipEmptyPlans = true
	}
	if auditFlags.pricingFile == "" && cfg.PricingFile != "" {
		auditFlags.pricingFile = cfg.PricingFile
	}
	if auditFlags.timeout == 15*time.Minute && cfg.TimeoutDuration() > 0 {
		auditFlags.timeout = cfg.TimeoutDuration()
	}
	if auditFlags.subTimeout == 2*time.Minute && cfg.SubscriptionTimeoutDuration() > 0 {
		auditFlags.subTimeout = cfg.SubscriptionTimeoutDuration()
	}
}

func selectReporter(format, outputFile string) (report.Reporter, error) {
	w := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, fmt.Errorf("create output file: %w", err)
		}
		w = f
	}

	switch format {
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "text":
		return &report.TextReporter{Writer: w}, nil
	case "csv":
		return &report.CSVReporter{Writer: w}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text, json, or csv)", format)
	}
}
