package audit

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppState is the running state of an App Service site.
type AppState string

const (
	StateRunning AppState = "Running"
	StateStopped AppState = "Stopped"
	StateUnknown AppState = "Unknown"
)

// FtpsPolicy is the FTP/FTPS deployment setting of a site.
type FtpsPolicy string

const (
	FtpsDisabled   FtpsPolicy = "Disabled"
	FtpsOnly       FtpsPolicy = "FtpsOnly"
	FtpsAllAllowed FtpsPolicy = "AllAllowed"
	FtpsUnknown    FtpsPolicy = "Unknown"
)

// IdentityKind is the managed-identity assignment of a site.
type IdentityKind string

const (
	IdentityNone           IdentityKind = "None"
	IdentitySystemAssigned IdentityKind = "SystemAssigned"
	IdentityUserAssigned   IdentityKind = "UserAssigned"
	IdentityBoth           IdentityKind = "SystemAssigned, UserAssigned"
)

// PlanTier is the App Service plan pricing tier.
type PlanTier string

const (
	TierFree           PlanTier = "Free"
	TierShared         PlanTier = "Shared"
	TierBasic          PlanTier = "Basic"
	TierStandard       PlanTier = "Standard"
	TierPremium        PlanTier = "Premium"
	TierPremiumV2      PlanTier = "PremiumV2"
	TierPremiumV3      PlanTier = "PremiumV3"
	TierElasticPremium PlanTier = "ElasticPremium"
	TierIsolated       PlanTier = "Isolated"
	TierIsolatedV2     PlanTier = "IsolatedV2"
	TierOther          PlanTier = "Other"
)

// Subscription identifies one audit unit.
type Subscription struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ComputeApplication is one normalized web or function app. Read-only facts
// pulled from inventory; never mutated after construction.
type ComputeApplication struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	ResourceGroup string            `json:"resource_group"`
	Subscription  string            `json:"subscription"`
	Kind          string            `json:"kind"`
	OS            string            `json:"os"`
	Region        string            `json:"region"`
	State         AppState          `json:"state"`
	PlanRef       string            `json:"plan_ref,omitempty"`
	HTTPSOnly     bool              `json:"https_only"`
	MinTLSVersion string            `json:"min_tls_version,omitempty"`
	FTPS          FtpsPolicy        `json:"ftps"`
	Identity      IdentityKind      `json:"identity"`
	Owner         string            `json:"owner,omitempty"`
	Tags          map[string]string `json:"tags,omitempty"`
	IsFunctionApp bool              `json:"is_function_app"`
}

// SKU describes an App Service plan's pricing tier, size code, and worker
// count.
type SKU struct {
	Tier     PlanTier `json:"tier"`
	Size     string   `json:"size"`
	Family   string   `json:"family,omitempty"`
	Capacity int32    `json:"capacity"`
}

// HostingPlan is one normalized App Service plan.
type HostingPlan struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ResourceGroup string `json:"resource_group"`
	Subscription  string `json:"subscription"`
	Region        string `json:"region"`
	SKU           SKU    `json:"sku"`
}

// Occupancy counts the applications attached to one hosting plan.
type Occupancy struct {
	FunctionApps int `json:"function_apps"`
	WebApps      int `json:"web_apps"`
	Total        int `json:"total"`
}

// CostEstimate is a derived monthly/annual cost for a plan. Annual is always
// exactly twelve times monthly.
type CostEstimate struct {
	MonthlyUSD decimal.Decimal `json:"monthly_usd"`
	AnnualUSD  decimal.Decimal `json:"annual_usd"`
}

// EmptyPlanFinding flags a hosting plan with zero attached applications.
type EmptyPlanFinding struct {
	Plan HostingPlan  `json:"plan"`
	Cost CostEstimate `json:"cost"`
}

// RiskFinding flags an application that matched at least one risk rule.
type RiskFinding struct {
	App    ComputeApplication `json:"app"`
	Issues []string           `json:"issues"`
	Score  int                `json:"score"`
}

// RawSite is the minimal site record the core needs from the inventory
// collector. All fields are plain strings so the core stays SDK-free.
type RawSite struct {
	ID            string
	Name          string
	Kind          string
	Location      string
	State         string
	PlanRef       string
	HTTPSOnly     bool
	MinTLSVersion string
	FtpsState     string
	IdentityType  string
	Tags          map[string]string
}

// RawPlanSKU is the SKU block of a raw hosting-plan record.
type RawPlanSKU struct {
	Tier     string
	Size     string
	Family   string
	Capacity int32
}

// RawPlan is the minimal hosting-plan record the core needs from the
// inventory collector.
type RawPlan struct {
	ID       string
	Name     string
	Location string
	SKU      *RawPlanSKU
}

// RawInventory is one subscription's worth of raw records plus any
// resource-level errors the collector hit while fetching them.
type RawInventory struct {
	FunctionApps []RawSite
	WebApps      []RawSite
	Plans        []RawPlan
	Errors       []string
}

// PartialResult is one subscription's correlation, detection, and scoring
// output, owned by its producing worker until aggregation.
type PartialResult struct {
	Subscription Subscription         `json:"subscription"`
	Apps         []ComputeApplication `json:"apps"`
	Plans        []HostingPlan        `json:"plans"`
	Occupancy    map[string]Occupancy `json:"occupancy"`
	EmptyPlans   []EmptyPlanFinding   `json:"empty_plans"`
	Risks        []RiskFinding        `json:"risks"`
	Errors       []string             `json:"errors,omitempty"`
}

// Report is the final cross-subscription audit model, built once and
// immutable thereafter.
type Report struct {
	GeneratedAt        time.Time            `json:"generated_at"`
	Duration           time.Duration        `json:"duration"`
	Subscriptions      int                  `json:"subscriptions"`
	TotalApps          int                  `json:"total_apps"`
	TotalPlans         int                  `json:"total_plans"`
	TotalEmptyPlans    int                  `json:"total_empty_plans"`
	EmptyPlanMonthly   decimal.Decimal      `json:"empty_plan_monthly_usd"`
	EmptyPlanAnnual    decimal.Decimal      `json:"empty_plan_annual_usd"`
	ByState            map[string]int       `json:"by_state"`
	ByOS               map[string]int       `json:"by_os"`
	ByTLS              map[string]int       `json:"by_tls"`
	ByIdentity         map[string]int       `json:"by_identity"`
	ByKind             map[string]int       `json:"by_kind"`
	AppsBySubscription map[string]int       `json:"apps_by_subscription"`
	MissingOwner       int                  `json:"missing_owner"`
	TopRisks           []RiskFinding        `json:"top_risks"`
	TopEmptyPlans      []EmptyPlanFinding   `json:"top_empty_plans"`
	Applications       []ComputeApplication `json:"applications"`
	EmptyPlans         []EmptyPlanFinding   `json:"empty_plans"`
	Errors             []string             `json:"errors,omitempty"`
}
