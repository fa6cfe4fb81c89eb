package pricing

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
)

// tierDefaultKey is the size entry used when a size code has no exact match.
const tierDefaultKey = "default"

// Table maps App Service plan SKUs to estimated monthly retail prices in USD.
// Prices are per worker; the estimate scales linearly with plan capacity.
type Table struct {
	DefaultMonthlyUSD decimal.Decimal     `json:"default_monthly_usd"`
	Tiers             map[string]TierCost `json:"tiers"`
}

// TierCost holds per-size monthly prices for one plan tier plus the tier's
// fallback price for size codes not in the table.
type TierCost struct {
	Default decimal.Decimal            `json:"default"`
	Sizes   map[string]decimal.Decimal `json:"sizes"`
}

// defaultTable holds the embedded pricing data, parsed at startup.
var defaultTable *Table

func init() {
	t, err := parse(pricingData)
	if err != nil {
		slog.Warn("Failed to parse embedded pricing data", "error", err)
		t = &Table{DefaultMonthlyUSD: decimal.NewFromInt(50)}
	}
	defaultTable = t
}

// Default returns the built-in pricing table.
func Default() *Table {
	return defaultTable
}

// LoadFile reads a pricing table from a JSON file, allowing price updates
// without a new binary.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing file %s: %w", path, err)
	}
	t, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse pricing file %s: %w", path, err)
	}
	return t, nil
}

func parse(data []byte) (*Table, error) {
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if t.DefaultMonthlyUSD.IsZero() {
		t.DefaultMonthlyUSD = decimal.NewFromInt(50)
	}
	return &t, nil
}

// EstimateMonthly returns the exact monthly cost estimate for a plan SKU.
// Lookup order: exact (tier, size), then the tier's default price, then the
// global default. Unknown SKUs degrade to conservative defaults rather than
// failing, so cost estimation never blocks an audit. Capacity below 1 is
// treated as a single worker.
func (t *Table) EstimateMonthly(tier, size string, capacity int32) decimal.Decimal {
	if capacity < 1 {
		capacity = 1
	}

	unit := t.DefaultMonthlyUSD
	if tc, ok := t.Tiers[tier]; ok {
		unit = tc.Default
		if price, ok := tc.Sizes[size]; ok {
			unit = price
		}
	}

	return unit.Mul(decimal.NewFromInt32(capacity)).Round(2)
}

// EstimateMonthlyCost is the float64 presentation form of EstimateMonthly,
// rounded half away from zero to two decimal places.
func (t *Table) EstimateMonthlyCost(tier, size string, capacity int32) float64 {
	return t.EstimateMonthly(tier, size, capacity).InexactFloat64()
}
