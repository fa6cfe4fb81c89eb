package azure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/ppiankov/azspectre/internal/audit"
)

// ListSubscriptions returns every subscription visible to the credential.
// If filter is non-empty, only subscriptions whose ID appears in it are
// returned.
func (c *Client) ListSubscriptions(ctx context.Context, filter []string) ([]audit.Subscription, error) {
	client, err := armsubscriptions.NewClient(c.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create subscriptions client: %w", err)
	}

	allowed := make(map[string]bool, len(filter))
	for _, id := range filter {
		allowed[id] = true
	}

	var subs []audit.Subscription
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list subscriptions: %w", err)
		}
		for _, s := range page.Value {
			if s == nil || s.SubscriptionID == nil {
				continue
			}
			if len(allowed) > 0 && !allowed[*s.SubscriptionID] {
				continue
			}
			sub := audit.Subscription{ID: *s.SubscriptionID, Name: *s.SubscriptionID}
			if s.DisplayName != nil {
				sub.Name = *s.DisplayName
			}
			subs = append(subs, sub)
		}
	}

	slog.Debug("Discovered subscriptions", "count", len(subs))
	return subs, nil
}
