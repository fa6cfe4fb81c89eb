package azure

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Client wraps the Azure credential used to create resource-manager clients.
type Client struct {
	cred azcore.TokenCredential
}

// NewClient resolves a credential via the default chain (environment,
// workload identity, managed identity, Azure CLI). If tenantID is empty the
// credential's default tenant is used.
func NewClient(tenantID string) (*Client, error) {
	cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		TenantID: tenantID,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve Azure credential: %w", err)
	}
	return &Client{cred: cred}, nil
}

// Credential returns the underlying token credential.
func (c *Client) Credential() azcore.TokenCredential {
	return c.cred
}
