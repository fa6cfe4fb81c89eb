package audit

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func partialFixture(subID, subName string) PartialResult {
	apps := []ComputeApplication{
		{ID: subID + "/a1", Name: "a1", Subscription: subName, Kind: "app", OS: "Windows", State: StateRunning, HTTPSOnly: true, MinTLSVersion: "1.2", FTPS: FtpsDisabled, Identity: IdentitySystemAssigned, Owner: "alice"},
		{ID: subID + "/a2", Name: "a2", Subscription: subName, Kind: "functionapp", OS: "Linux", State: StateStopped, HTTPSOnly: false, MinTLSVersion: "1.0", FTPS: FtpsAllAllowed, Identity: IdentityNone},
	}
	return PartialResult{
		Subscription: Subscription{ID: subID, Name: subName},
		Apps:         apps,
		Plans: []HostingPlan{
			{ID: subID + "/p1", Name: "p1", Subscription: subName, SKU: SKU{Tier: TierStandard, Size: "S1", Capacity: 1}},
		},
		EmptyPlans: []EmptyPlanFinding{
			{
				Plan: HostingPlan{ID: subID + "/p1", Name: "p1", Subscription: subName},
				Cost: CostEstimate{
					MonthlyUSD: decimal.RequireFromString("0.10"),
					AnnualUSD:  decimal.RequireFromString("1.20"),
				},
			},
		},
		Risks: ScoreAll(apps),
	}
}

func TestAggregate_Distributions(t *testing.T) {
	partials := []PartialResult{
		partialFixture("s1", "prod"),
		partialFixture("s2", "dev"),
	}

	report := Aggregate(partials, AggregateOptions{Duration: 2 * time.Second})

	if report.TotalApps != 4 {
		t.Fatalf("total apps = %d", report.TotalApps)
	}
	if report.Subscriptions != 2 {
		t.Fatalf("subscriptions = %d", report.Subscriptions)
	}
	if report.ByState["Running"] != 2 || report.ByState["Stopped"] != 2 {
		t.Fatalf("by state = %v", report.ByState)
	}
	if report.ByOS["Windows"] != 2 || report.ByOS["Linux"] != 2 {
		t.Fatalf("by os = %v", report.ByOS)
	}
	if report.ByTLS["1.2"] != 2 || report.ByTLS["1.0"] != 2 {
		t.Fatalf("by tls = %v", report.ByTLS)
	}
	if report.ByIdentity[string(IdentityNone)] != 2 {
		t.Fatalf("by identity = %v", report.ByIdentity)
	}
	if report.ByKind["functionapp"] != 2 {
		t.Fatalf("by kind = %v", report.ByKind)
	}
	if report.AppsBySubscription["prod"] != 2 || report.AppsBySubscription["dev"] != 2 {
		t.Fatalf("apps by subscription = %v", report.AppsBySubscription)
	}
	if report.MissingOwner != 2 {
		t.Fatalf("missing owner = %d", report.MissingOwner)
	}
	if report.Duration != 2*time.Second {
		t.Fatalf("duration = %v", report.Duration)
	}
}

func TestAggregate_ExactDecimalCostSum(t *testing.T) {
	// Three 0.10 plans must sum to exactly 0.30.
	partials := []PartialResult{
		partialFixture("s1", "a"),
		partialFixture("s2", "b"),
		partialFixture("s3", "c"),
	}

	report := Aggregate(partials, AggregateOptions{})

	if !report.EmptyPlanMonthly.Equal(decimal.RequireFromString("0.30")) {
		t.Fatalf("monthly sum = %s, want 0.30", report.EmptyPlanMonthly)
	}
	if !report.EmptyPlanAnnual.Equal(decimal.RequireFromString("3.60")) {
		t.Fatalf("annual sum = %s, want 3.60", report.EmptyPlanAnnual)
	}
	if report.TotalEmptyPlans != 3 {
		t.Fatalf("total empty plans = %d", report.TotalEmptyPlans)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	a := partialFixture("s1", "prod")
	b := partialFixture("s2", "dev")

	r1 := Aggregate([]PartialResult{a, b}, AggregateOptions{})
	r2 := Aggregate([]PartialResult{b, a}, AggregateOptions{})

	if r1.TotalApps != r2.TotalApps || r1.MissingOwner != r2.MissingOwner {
		t.Fatal("counts differ across merge orders")
	}
	if !r1.EmptyPlanMonthly.Equal(r2.EmptyPlanMonthly) {
		t.Fatal("cost sums differ across merge orders")
	}
	if len(r1.TopRisks) != len(r2.TopRisks) {
		t.Fatal("top risk lengths differ across merge orders")
	}
	for i := range r1.TopRisks {
		if r1.TopRisks[i].App.ID != r2.TopRisks[i].App.ID {
			t.Fatalf("top risk %d differs: %s vs %s", i, r1.TopRisks[i].App.ID, r2.TopRisks[i].App.ID)
		}
	}
}

func TestAggregate_TopRisksOrderedAndBounded(t *testing.T) {
	var partial PartialResult
	partial.Subscription = Subscription{ID: "s1", Name: "prod"}
	// 12 stopped apps (score 20) and one max-score app.
	for i := 0; i < 12; i++ {
		partial.Apps = append(partial.Apps, ComputeApplication{
			ID: string(rune('a' + i)), State: StateStopped, HTTPSOnly: true, MinTLSVersion: "1.2", FTPS: FtpsDisabled,
		})
	}
	partial.Apps = append(partial.Apps, ComputeApplication{
		ID: "worst", State: StateStopped, HTTPSOnly: false, MinTLSVersion: "1.0", FTPS: FtpsAllAllowed,
	})
	partial.Risks = ScoreAll(partial.Apps)

	report := Aggregate([]PartialResult{partial}, AggregateOptions{})

	if len(report.TopRisks) != DefaultTopN {
		t.Fatalf("expected %d top risks, got %d", DefaultTopN, len(report.TopRisks))
	}
	if report.TopRisks[0].App.ID != "worst" {
		t.Fatalf("expected worst app first, got %s", report.TopRisks[0].App.ID)
	}
	// Ties broken by first-seen order.
	if report.TopRisks[1].App.ID != "a" || report.TopRisks[2].App.ID != "b" {
		t.Fatalf("tie-break order broken: %s, %s", report.TopRisks[1].App.ID, report.TopRisks[2].App.ID)
	}
}

func TestAggregate_TopEmptyPlansByCostDescending(t *testing.T) {
	partial := PartialResult{
		Subscription: Subscription{ID: "s1", Name: "prod"},
		EmptyPlans: []EmptyPlanFinding{
			{Plan: HostingPlan{ID: "cheap"}, Cost: CostEstimate{MonthlyUSD: decimal.RequireFromString("9.49")}},
			{Plan: HostingPlan{ID: "pricey"}, Cost: CostEstimate{MonthlyUSD: decimal.RequireFromString("281.05")}},
			{Plan: HostingPlan{ID: "mid"}, Cost: CostEstimate{MonthlyUSD: decimal.RequireFromString("73.00")}},
		},
	}

	report := Aggregate([]PartialResult{partial}, AggregateOptions{TopN: 2})

	if len(report.TopEmptyPlans) != 2 {
		t.Fatalf("expected 2 top empty plans, got %d", len(report.TopEmptyPlans))
	}
	if report.TopEmptyPlans[0].Plan.ID != "pricey" || report.TopEmptyPlans[1].Plan.ID != "mid" {
		t.Fatalf("unexpected order: %s, %s", report.TopEmptyPlans[0].Plan.ID, report.TopEmptyPlans[1].Plan.ID)
	}
	// Full list keeps insertion order.
	if report.EmptyPlans[0].Plan.ID != "cheap" {
		t.Fatalf("full empty-plan list reordered: %s", report.EmptyPlans[0].Plan.ID)
	}
}

func TestAggregate_ErrorsMerged(t *testing.T) {
	partials := []PartialResult{
		{Subscription: Subscription{ID: "s1", Name: "prod"}, Errors: []string{"prod: boom"}},
		{Subscription: Subscription{ID: "s2", Name: "dev"}, Errors: []string{"dev: bust", "dev: broke"}},
	}

	report := Aggregate(partials, AggregateOptions{})

	if len(report.Errors) != 3 {
		t.Fatalf("expected 3 merged errors, got %v", report.Errors)
	}
}
