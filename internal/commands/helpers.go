package commands

import (
	"fmt"
	"strings"
)

// enhanceError wraps an error with context and suggestions for common Azure issues.
func enhanceError(action string, err error) error {
	msg := err.Error()

	var hint string
	switch {
	case strings.Contains(msg, "DefaultAzureCredential"):
		hint = "No usable credential found. Run 'az login', or set AZURE_TENANT_ID/AZURE_CLIENT_ID/AZURE_CLIENT_SECRET for a service principal"
	case strings.Contains(msg, "AADSTS700082") || strings.Contains(msg, "AADSTS50173"):
		hint = "Azure token expired. Run 'az login' again to refresh credentials"
	case strings.Contains(msg, "AuthorizationFailed") || strings.Contains(msg, "Forbidden"):
		hint = "Insufficient permissions. Assign the role from 'azspectre init' to your principal"
	case strings.Contains(msg, "InvalidAuthenticationTokenTenant"):
		hint = "Credential belongs to a different tenant. Pass --tenant or set AZURE_TENANT_ID"
	case strings.Contains(msg, "SubscriptionNotFound"):
		hint = "Subscription not visible to this credential. Check the --subscriptions filter and RBAC assignments"
	case strings.Contains(msg, "429") || strings.Contains(msg, "TooManyRequests"):
		hint = "Azure API rate limit hit. Retry with lower --concurrency or a larger --sub-timeout"
	}

	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}
