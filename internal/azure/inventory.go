package azure

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v4"
	"github.com/ppiankov/azspectre/internal/audit"
)

// CollectInventory pages all App Service plans and sites in one subscription
// and maps them to the minimal raw records the audit core consumes. A failed
// per-site configuration lookup is recorded as a resource-level error; the
// site is kept with an unknown TLS/FTPS posture.
func (c *Client) CollectInventory(ctx context.Context, subscriptionID string) (audit.RawInventory, error) {
	factory, err := armappservice.NewClientFactory(subscriptionID, c.cred, nil)
	if err != nil {
		return audit.RawInventory{}, fmt.Errorf("create appservice clients: %w", err)
	}

	var inv audit.RawInventory

	plansPager := factory.NewPlansClient().NewListPager(nil)
	for plansPager.More() {
		page, err := plansPager.NextPage(ctx)
		if err != nil {
			return audit.RawInventory{}, fmt.Errorf("list plans: %w", err)
		}
		for _, plan := range page.Value {
			if plan == nil {
				continue
			}
			inv.Plans = append(inv.Plans, mapPlan(plan))
		}
	}

	webApps := factory.NewWebAppsClient()
	sitesPager := webApps.NewListPager(nil)
	for sitesPager.More() {
		page, err := sitesPager.NextPage(ctx)
		if err != nil {
			return audit.RawInventory{}, fmt.Errorf("list sites: %w", err)
		}
		for _, site := range page.Value {
			if site == nil {
				continue
			}

			raw := mapSite(site)

			// Minimum TLS version and FTPS state only live on the site
			// configuration, which the list call does not return.
			rg := audit.ResourceGroupFromID(raw.ID)
			if rg != "" && raw.Name != "" {
				cfg, err := webApps.GetConfiguration(ctx, rg, raw.Name, nil)
				if err != nil {
					inv.Errors = append(inv.Errors, fmt.Sprintf("site %s: get configuration: %v", raw.Name, err))
					slog.Warn("Site configuration lookup failed", "site", raw.Name, "error", err)
				} else if cfg.Properties != nil {
					if cfg.Properties.MinTLSVersion != nil {
						raw.MinTLSVersion = string(*cfg.Properties.MinTLSVersion)
					}
					if cfg.Properties.FtpsState != nil {
						raw.FtpsState = string(*cfg.Properties.FtpsState)
					}
				}
			}

			if isFunctionApp(raw.Kind) {
				inv.FunctionApps = append(inv.FunctionApps, raw)
			} else {
				inv.WebApps = append(inv.WebApps, raw)
			}
		}
	}

	slog.Debug("Collected inventory",
		"subscription", subscriptionID,
		"plans", len(inv.Plans),
		"web_apps", len(inv.WebApps),
		"function_apps", len(inv.FunctionApps),
		"errors", len(inv.Errors))

	return inv, nil
}

func mapSite(site *armappservice.Site) audit.RawSite {
	raw := audit.RawSite{
		ID:       deref(site.ID),
		Name:     deref(site.Name),
		Kind:     deref(site.Kind),
		Location: deref(site.Location),
	}

	if site.Properties != nil {
		raw.State = deref(site.Properties.State)
		raw.PlanRef = deref(site.Properties.ServerFarmID)
		if site.Properties.HTTPSOnly != nil {
			raw.HTTPSOnly = *site.Properties.HTTPSOnly
		}
	}

	if site.Identity != nil && site.Identity.Type != nil {
		raw.IdentityType = string(*site.Identity.Type)
	}

	if len(site.Tags) > 0 {
		raw.Tags = make(map[string]string, len(site.Tags))
		for k, v := range site.Tags {
			raw.Tags[k] = deref(v)
		}
	}

	return raw
}

func mapPlan(plan *armappservice.Plan) audit.RawPlan {
	raw := audit.RawPlan{
		ID:       deref(plan.ID),
		Name:     deref(plan.Name),
		Location: deref(plan.Location),
	}

	if plan.SKU != nil {
		sku := &audit.RawPlanSKU{
			Tier:     deref(plan.SKU.Tier),
			Size:     deref(plan.SKU.Size),
			Family:   deref(plan.SKU.Family),
			Capacity: 1,
		}
		if plan.SKU.Capacity != nil {
			sku.Capacity = *plan.SKU.Capacity
		}
		raw.SKU = sku
	}

	return raw
}

func isFunctionApp(kind string) bool {
	for _, part := range strings.Split(strings.ToLower(kind), ",") {
		if part == "functionapp" {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
